package decode

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zedbridge/gnssgateway/internal/events"
	"github.com/zedbridge/gnssgateway/internal/frame"
)

// UBX class/id pairs for the curated message set of spec.md §4.3.
const (
	classNav = 0x01
	classRxm = 0x02
	classAck = 0x05
	classMon = 0x0A

	idNavPvt  = 0x07
	idNavDop  = 0x04
	idNavSat  = 0x35
	idNavSvin = 0x3B
	idNavSig  = 0x43

	idRxmSfrbx = 0x13
	idRxmRawx  = 0x15
	idRxmCor   = 0x34

	idAckAck = 0x01
	idAckNak = 0x00

	idMonVer    = 0x04
	idMonComms  = 0x36
)

// ubxSymbolicNames maps the curated class/id pairs to the symbolic rate
// keys spec.md §4.7 and its scenario-2 contract document (e.g.
// "UBX.NAV_PVT"), keyed the same way the RTCM3/NMEA rate keys already
// are by their own symbolic identifiers (message type, sentence tag).
var ubxSymbolicNames = map[[2]byte]string{
	{classNav, idNavPvt}:  "UBX.NAV_PVT",
	{classNav, idNavDop}:  "UBX.NAV_DOP",
	{classNav, idNavSat}:  "UBX.NAV_SAT",
	{classNav, idNavSvin}: "UBX.NAV_SVIN",
	{classNav, idNavSig}:  "UBX.NAV_SIG",

	{classRxm, idRxmSfrbx}: "UBX.RXM_SFRBX",
	{classRxm, idRxmRawx}:  "UBX.RXM_RAWX",
	{classRxm, idRxmCor}:   "UBX.RXM_COR",

	{classAck, idAckAck}: "UBX.ACK_ACK",
	{classAck, idAckNak}: "UBX.ACK_NAK",

	{classMon, idMonVer}:   "UBX.MON_VER",
	{classMon, idMonComms}: "UBX.MON_COMMS",
}

// ubxRateKey returns the symbolic rate key for a curated class/id pair,
// falling back to a hex-qualified key for anything outside the curated
// set so an unrecognized message still gets a stable, if less readable,
// rate-tracking identity.
func ubxRateKey(class, id byte) string {
	if name, ok := ubxSymbolicNames[[2]byte{class, id}]; ok {
		return name
	}
	return fmt.Sprintf("UBX.0x%02X_0x%02X", class, id)
}

// CorrectionSink receives decoder updates destined for the correction
// store/aggregator (C4/C5).
type CorrectionSink interface {
	PutRxmCor(c events.Correction, at time.Time)
	PutNavSat(s events.SatelliteSnapshot, at time.Time)
	PutNavPvt(p events.PositionFix, at time.Time)
	OnUpdate(now time.Time)
}

// RtcmForwarder receives every extracted RTCM3 frame (C6 decides
// acceptance by message type internally).
type RtcmForwarder interface {
	ForwardOutbound(ctx context.Context, frameBytes []byte)
}

// RateObserver receives per-key observation events for C7.
type RateObserver interface {
	Observe(key string, now time.Time)
	ObserveBytes(key string, nbytes int)
}

// NmeaSink receives complete NMEA sentences (with CRLF) for relay,
// independent of the frequency-only tag tracking.
type NmeaSink interface {
	Write(sentence []byte)
}

// Dispatcher implements the demultiplexer's FrameHandler by routing each
// extracted frame to its decoder, publishing the resulting TypedEvent,
// and feeding the correction store, RTCM router, and rate meter.
type Dispatcher struct {
	Publisher events.Publisher
	Store     CorrectionSink
	Router    RtcmForwarder
	Rates     RateObserver
	NmeaOut   NmeaSink
	Logger    logrus.FieldLogger

	start time.Time
	ctx   context.Context
}

// NewDispatcher constructs a Dispatcher. ctx governs RTCM outbound
// forwarding calls; start is the ingestion actor's reference time for
// computing each event's monotonic offset.
func NewDispatcher(ctx context.Context, start time.Time, pub events.Publisher, store CorrectionSink, router RtcmForwarder, rates RateObserver, nmeaOut NmeaSink, logger logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{
		Publisher: pub,
		Store:     store,
		Router:    router,
		Rates:     rates,
		NmeaOut:   nmeaOut,
		Logger:    logger,
		start:     start,
		ctx:       ctx,
	}
}

// HandleFrame implements demux.FrameHandler.
func (d *Dispatcher) HandleFrame(kind frame.Kind, frameBytes []byte) error {
	now := time.Now()
	mono := now.Sub(d.start)

	switch kind {
	case frame.KindUbx:
		return d.handleUBX(frameBytes, now, mono)
	case frame.KindRtcm3:
		return d.handleRTCM3(frameBytes, now, mono)
	case frame.KindNmea:
		return d.handleNMEA(frameBytes, now)
	default:
		return fmt.Errorf("dispatch: unrecognized frame kind %v", kind)
	}
}

func (d *Dispatcher) handleUBX(frameBytes []byte, now time.Time, mono time.Duration) error {
	if len(frameBytes) < 8 {
		return fmt.Errorf("dispatch: ubx frame too short (%d)", len(frameBytes))
	}
	class, id := frameBytes[2], frameBytes[3]
	payload := frameBytes[6 : len(frameBytes)-2]

	d.observeRate(ubxRateKey(class, id), now, len(frameBytes))

	switch {
	case class == classNav && id == idNavPvt:
		pvt, err := decodeNavPvt(payload, mono)
		if err != nil {
			return err
		}
		d.Store.PutNavPvt(pvt, now)
		d.Publisher.Publish(pvt)
		d.Store.OnUpdate(now)
		return nil

	case class == classNav && id == idNavSat:
		sat, err := decodeNavSat(payload, mono)
		if err != nil {
			return err
		}
		d.Store.PutNavSat(sat, now)
		d.Publisher.Publish(sat)
		d.Store.OnUpdate(now)
		return nil

	case class == classNav && id == idNavDop:
		dop, err := decodeNavDop(payload, mono)
		if err != nil {
			return err
		}
		d.Publisher.Publish(dop)
		return nil

	case class == classNav && id == idNavSvin:
		svin, err := decodeNavSvin(payload, mono)
		if err != nil {
			return err
		}
		d.Publisher.Publish(svin)
		return nil

	case class == classNav && id == idNavSig:
		sig, err := decodeNavSig(payload, mono)
		if err != nil {
			return err
		}
		d.Publisher.Publish(sig)
		return nil

	case class == classMon && id == idMonVer:
		ver, err := decodeMonVer(payload, mono)
		if err != nil {
			return err
		}
		d.Publisher.Publish(ver)
		return nil

	case class == classMon && id == idMonComms:
		comms, err := decodeMonComms(payload, mono)
		if err != nil {
			return err
		}
		d.Publisher.Publish(comms)
		return nil

	case class == classRxm && id == idRxmCor:
		cor, err := decodeRxmCor(payload, mono)
		if err != nil {
			return err
		}
		d.Store.PutRxmCor(cor, now)
		d.Publisher.Publish(cor)
		d.Store.OnUpdate(now)
		return nil

	case class == classRxm && id == idRxmSfrbx:
		b, err := decodeRxmSfrbx(payload, mono)
		if err != nil {
			return err
		}
		d.Publisher.Publish(b)
		return nil

	case class == classRxm && id == idRxmRawx:
		b, err := decodeRxmRawx(payload, mono)
		if err != nil {
			return err
		}
		d.Publisher.Publish(b)
		return nil

	case class == classAck && (id == idAckAck || id == idAckNak):
		ack, err := decodeAck(payload, id == idAckAck, mono)
		if err != nil {
			return err
		}
		d.Publisher.Publish(ack)
		return nil

	default:
		u := events.Unknown{Protocol: "UBX", Class: class, ID: id}
		u.Received = events.NewReceived(mono)
		d.Publisher.Publish(u)
		return nil
	}
}

func (d *Dispatcher) handleRTCM3(frameBytes []byte, now time.Time, mono time.Duration) error {
	msgType := frame.MessageType(frameBytes)
	key := fmt.Sprintf("RTCM3.%d", msgType)
	d.observeRate(key, now, len(frameBytes))

	if d.Router != nil {
		d.Router.ForwardOutbound(d.ctx, frameBytes)
	}

	if msgType == 1005 {
		payload := frameBytes[3 : len(frameBytes)-3]
		stationID, x, y, z, err := decodeRTCM1005(payload)
		if err != nil {
			return err
		}
		lat, lon, h := ecefToGeodetic(x, y, z)
		ref := events.ReferenceStation{
			StationID: stationID,
			X:         x, Y: y, Z: z,
			LatDeg: lat, LonDeg: lon, HeightM: h,
		}
		ref.Received = events.NewReceived(mono)
		d.Publisher.Publish(ref)
	}
	return nil
}

func (d *Dispatcher) handleNMEA(frameBytes []byte, now time.Time) error {
	tag, err := nmeaTag(frameBytes)
	if err != nil {
		return err
	}
	d.observeRate("NMEA."+tag, now, len(frameBytes))
	if d.NmeaOut != nil {
		d.NmeaOut.Write(frameBytes)
	}
	return nil
}

func (d *Dispatcher) observeRate(key string, now time.Time, nbytes int) {
	if d.Rates == nil {
		return
	}
	d.Rates.Observe(key, now)
	d.Rates.ObserveBytes(key, nbytes)
}
