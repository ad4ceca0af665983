// Package frame implements the frame-synchronized demultiplexer's
// protocol-recognition core (C1, "FrameFinder" in the design). It scans
// a byte buffer for the earliest valid, complete frame among three
// concurrently multiplexed framings — UBX, RTCM3, and NMEA 0183 — or
// reports that the earliest plausible candidate is still incomplete.
//
// Grounded in the teacher's pkg/gnssgo/rtcm.RTCMParser.extractMessage
// (header.go bit-field extraction style) and hardware/topgnss/top708's
// sync-byte + checksum-validated parsers, generalized here to support
// byte-accurate partial-frame reporting and checksum-gated resync
// across three interleaved protocols rather than one.
package frame

// Kind identifies which of the three wire protocols a frame belongs to.
type Kind int

const (
	KindUnknown Kind = iota
	KindUbx
	KindRtcm3
	KindNmea
)

func (k Kind) String() string {
	switch k {
	case KindUbx:
		return "UBX"
	case KindRtcm3:
		return "RTCM3"
	case KindNmea:
		return "NMEA"
	default:
		return "Unknown"
	}
}

// Found describes a complete, checksum-valid frame located in a buffer.
type Found struct {
	Kind        Kind
	StartOffset int
	TotalLen    int
}

// Partial describes the earliest plausible-but-incomplete candidate; the
// caller (the demultiplexer) must wait for at least BytesNeeded more
// bytes before re-scanning.
type Partial struct {
	Kind        Kind
	BytesNeeded int
}

// Limits bounds the accepted payload sizes, configurable per deployment.
type Limits struct {
	UbxMaxPayload  int
	RtcmMaxPayload int
}

// DefaultLimits matches spec.md §6.5's defaults.
var DefaultLimits = Limits{UbxMaxPayload: 1024, RtcmMaxPayload: 1024}

// candidate is the internal result of scanning one protocol family.
type candidate struct {
	kind        Kind
	offset      int
	complete    bool
	totalLen    int
	bytesNeeded int
}

// Find scans buf for the earliest valid complete frame across all three
// protocols. It returns exactly one of (found, partial) non-nil, or both
// nil for "no plausible candidate visible" (None).
func Find(buf []byte, limits Limits) (*Found, *Partial) {
	candidates := make([]*candidate, 0, 3)
	if c := scanUBX(buf, limits.UbxMaxPayload); c != nil {
		candidates = append(candidates, c)
	}
	if c := scanRTCM3(buf, limits.RtcmMaxPayload); c != nil {
		candidates = append(candidates, c)
	}
	if c := scanNMEA(buf); c != nil {
		candidates = append(candidates, c)
	}

	var best *candidate
	for _, c := range candidates {
		if best == nil || c.offset < best.offset {
			best = c
		}
	}
	if best == nil {
		return nil, nil
	}
	if best.complete {
		return &Found{Kind: best.kind, StartOffset: best.offset, TotalLen: best.totalLen}, nil
	}
	return nil, &Partial{Kind: best.kind, BytesNeeded: best.bytesNeeded}
}
