// Package events defines the typed event sum type published by the
// decoders to downstream subscribers, and the small set of named event
// kinds listed for the broadcast channel.
package events

import "time"

// Kind discriminates the concrete type carried by a TypedEvent.
type Kind int

const (
	KindUnknown Kind = iota
	KindPvtUpdate
	KindSatelliteUpdate
	KindDopUpdate
	KindSurveyInStatus
	KindNavigationSignalUpdate
	KindVersionUpdate
	KindCommunicationStatusUpdate
	KindBroadcastDataUpdate
	KindCorrectionStatusUpdate
	KindReferenceStationPosition
	KindMessageRatesUpdate
	KindDataRatesUpdate
	KindAcknowledge
	KindCorrectionObserved
)

func (k Kind) String() string {
	switch k {
	case KindPvtUpdate:
		return "PvtUpdate"
	case KindSatelliteUpdate:
		return "SatelliteUpdate"
	case KindDopUpdate:
		return "DopUpdate"
	case KindSurveyInStatus:
		return "SurveyInStatus"
	case KindNavigationSignalUpdate:
		return "NavigationSignalUpdate"
	case KindVersionUpdate:
		return "VersionUpdate"
	case KindCommunicationStatusUpdate:
		return "CommunicationStatusUpdate"
	case KindBroadcastDataUpdate:
		return "BroadcastDataUpdate"
	case KindCorrectionStatusUpdate:
		return "CorrectionStatusUpdate"
	case KindReferenceStationPosition:
		return "ReferenceStationPosition"
	case KindMessageRatesUpdate:
		return "MessageRatesUpdate"
	case KindDataRatesUpdate:
		return "DataRatesUpdate"
	case KindAcknowledge:
		return "Acknowledge"
	case KindCorrectionObserved:
		return "CorrectionObserved"
	default:
		return "Unknown"
	}
}

// Received carries the monotonic+wall-clock receipt stamp every TypedEvent
// embeds, per the data model's received_at requirement.
type Received struct {
	Wall      time.Time
	Monotonic time.Duration // value of a monotonic clock reading at receipt
}

// TypedEvent is the sum type published on the broadcast channel. Each
// concrete event embeds Received and implements Kind().
type TypedEvent interface {
	Kind() Kind
	ReceivedAt() Received
}

// base is embedded by every concrete event to provide ReceivedAt().
type base struct {
	Received Received
}

func (b base) ReceivedAt() Received { return b.Received }

func NewReceived(mono time.Duration) Received {
	return Received{Wall: time.Now(), Monotonic: mono}
}

// CarrierSolution mirrors UBX carrSoln encoding.
type CarrierSolution uint8

const (
	CarrierNone CarrierSolution = iota
	CarrierFloat
	CarrierFixed
)

// FixType mirrors UBX NAV-PVT fixType.
type FixType uint8

const (
	FixNoFix FixType = iota
	FixDeadReckoning
	Fix2D
	Fix3D
	FixGnssDR
	FixTimeOnly
)

// PositionFix is the decoded NAV-PVT payload.
type PositionFix struct {
	base
	ITowMs          uint32
	Year            uint16
	Month, Day      uint8
	Hour, Min, Sec  uint8
	FixType         FixType
	GnssFixOK       bool
	DiffSoln        bool
	CarrierSolution CarrierSolution
	NumSV           uint8
	LonDeg          float64
	LatDeg          float64
	HeightEllipMm   int32
	HeightMSLMm     int32
	HAccMm          uint32
	VAccMm          uint32
	DiffAgeMs       *uint16 // nil when field absent (0xFFFF)
	Label           string
}

func (PositionFix) Kind() Kind { return KindPvtUpdate }

// SatelliteInfo is a single NAV-SAT per-SV record.
type SatelliteInfo struct {
	GnssID     uint8
	SvID       uint8
	CnoDbHz    uint8
	ElevDeg    int8
	AzimDeg    int16
	PrResM     float64
	QualityInd uint8
	SvUsed     bool
	Health     uint8
	DiffCorr   bool
	Smoothed   bool
}

// SatelliteSnapshot is the decoded NAV-SAT payload.
type SatelliteSnapshot struct {
	base
	ITowMs         uint32
	Satellites     []SatelliteInfo
	SbasInUse      bool
	DiffCorrInUse  bool
	DiffCorrCount  int
}

func (SatelliteSnapshot) Kind() Kind { return KindSatelliteUpdate }

// Dop is the decoded NAV-DOP payload.
type Dop struct {
	base
	ITowMs                          uint32
	GDOP, PDOP, TDOP, VDOP          float64
	HDOP, NDOP, EDOP                float64
}

func (Dop) Kind() Kind { return KindDopUpdate }

// SurveyIn is the decoded NAV-SVIN payload. MeanX/Y/ZCm fold in the
// high-precision sub-centimeter component (meanX/Y/Z-HP, ×0.1 mm).
type SurveyIn struct {
	base
	DurationS    uint32
	MeanXCm      float64
	MeanYCm      float64
	MeanZCm      float64
	MeanAccMm    float64
	Observations uint32
	Valid        bool
	Active       bool
}

func (SurveyIn) Kind() Kind { return KindSurveyInStatus }

// SignalInfo is a single NAV-SIG per-signal record.
type SignalInfo struct {
	GnssID, SvID uint8
	SigID        uint8
	CnoDbHz      uint8
	Quality      uint8
	Health       uint8
	PrUsed       bool
	CrUsed       bool
	DoUsed       bool
	CorrectionsUsed uint8
}

// SignalInfoSnapshot is the decoded NAV-SIG payload.
type SignalInfoSnapshot struct {
	base
	ITowMs  uint32
	Signals []SignalInfo
}

func (SignalInfoSnapshot) Kind() Kind { return KindNavigationSignalUpdate }

// ReceiverVersion is the decoded MON-VER payload.
type ReceiverVersion struct {
	base
	SwVersion  string
	HwVersion  string
	Extensions []string
}

func (ReceiverVersion) Kind() Kind { return KindVersionUpdate }

// PortCommsStats is a single MON-COMMS port record.
type PortCommsStats struct {
	PortID          uint8
	TxBytes         uint32
	RxBytes         uint32
	TxUsagePct      uint8
	RxUsagePct      uint8
	TxOverruns      bool
	RxOverruns      bool
	ProtoMsgCounts  [8]uint16 // index 0=UBX,1=NMEA,5=RTCM3
}

// CommsStatus is the decoded MON-COMMS payload.
type CommsStatus struct {
	base
	Ports []PortCommsStats
}

func (CommsStatus) Kind() Kind { return KindCommunicationStatusUpdate }

// Broadcast carries minimal presence information extracted from
// RXM-SFRBX/RXM-RAWX frames; their value is frequency signal, not payload.
type Broadcast struct {
	base
	Source         string // "RXM-SFRBX" or "RXM-RAWX"
	GnssID, SvID   uint8
	MeasurementCnt int
}

func (Broadcast) Kind() Kind { return KindBroadcastDataUpdate }

// CorrectionSourceKind enumerates the correction source reported by RXM-COR.
type CorrectionSourceKind uint8

const (
	CorrSrcNone CorrectionSourceKind = iota
	CorrSrcSBAS
	CorrSrcRTCM
	CorrSrcSPARTN
)

// Correction is the decoded RXM-COR payload.
type Correction struct {
	base
	Version     uint8
	Valid       bool
	Stale       bool
	SBAS        bool
	RTCM        bool
	SPARTN      bool
	MsgType     uint16
	SubType     uint16
	NumMsgs     uint16
	CorrAgeMs   uint32
	Source      CorrectionSourceKind
}

func (Correction) Kind() Kind { return KindCorrectionObserved }

// Ack is the decoded UBX-ACK-ACK/NAK payload.
type Ack struct {
	base
	Acked     bool
	AckedClass uint8
	AckedID    uint8
}

func (Ack) Kind() Kind { return KindAcknowledge }

// ReferenceStation is the decoded RTCM 1005 payload.
type ReferenceStation struct {
	base
	StationID uint16
	X, Y, Z   float64 // ECEF meters
	LatDeg    float64
	LonDeg    float64
	HeightM   float64
}

func (ReferenceStation) Kind() Kind { return KindReferenceStationPosition }

// CorrectionStatusLabel mirrors spec.md §3's CorrectionStatus.source values.
type CorrectionStatusLabel string

const (
	StatusSPARTN CorrectionStatusLabel = "SPARTN"
	StatusRTCM   CorrectionStatusLabel = "RTCM"
	StatusDGPS   CorrectionStatusLabel = "DGPS"
	StatusSBAS   CorrectionStatusLabel = "SBAS"
	StatusNone   CorrectionStatusLabel = "None"
)

// CorrectionStatus is the single reconciled status emitted by the
// correction aggregator (C5).
type CorrectionStatus struct {
	base
	Source      CorrectionStatusLabel
	StatusLabel string
	Valid       bool
	Stale       bool
	AgeMs       *uint32
	Flags       uint8
	Timestamp   time.Time
}

func (CorrectionStatus) Kind() Kind { return KindCorrectionStatusUpdate }

// MessageRate is a single message key's rolling rate.
type MessageRate struct {
	Key          string
	CountPerWindow int
	RatePerSec   float64
}

// MessageRatesUpdate is C7's periodic per-message-type rate publication.
type MessageRatesUpdate struct {
	base
	Rates []MessageRate
}

func (MessageRatesUpdate) Kind() Kind { return KindMessageRatesUpdate }

// DataRatesUpdate is C7's periodic byte-rate publication.
type DataRatesUpdate struct {
	base
	Kbps map[string]float64
}

func (DataRatesUpdate) Kind() Kind { return KindDataRatesUpdate }

// Unknown represents a frame whose kind was recognized but whose specific
// message type was not among the curated decoders.
type Unknown struct {
	base
	Protocol string
	Class    uint8
	ID       uint8
}

func (Unknown) Kind() Kind { return KindUnknown }

// Publisher is the single typed broadcast channel of spec.md §6.4.
type Publisher interface {
	Publish(event TypedEvent)
}
