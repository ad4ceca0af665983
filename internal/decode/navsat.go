package decode

import (
	"fmt"
	"time"

	"github.com/zedbridge/gnssgateway/internal/events"
)

const (
	navSatHeaderLen = 8
	navSatRecordLen = 12
	gnssIDSBAS      = 1
)

// decodeNavSat decodes a NAV-SAT payload (UBX id 0x35) per spec.md §4.3:
// an 8-byte header followed by N 12-byte per-satellite records. Aggregates
// sbas_in_use and diff_corr_count across all records, grounded in the same
// per-SV flag extraction style as the gnssgo family's satellite-status
// decoders.
func decodeNavSat(payload []byte, mono time.Duration) (events.SatelliteSnapshot, error) {
	if len(payload) < navSatHeaderLen {
		return events.SatelliteSnapshot{}, fmt.Errorf("nav-sat: payload too short (%d < %d)", len(payload), navSatHeaderLen)
	}
	numSvs := int(u8(payload, 5))
	want := navSatHeaderLen + numSvs*navSatRecordLen
	if len(payload) < want {
		return events.SatelliteSnapshot{}, fmt.Errorf("nav-sat: payload too short for %d svs (%d < %d)", numSvs, len(payload), want)
	}

	snap := events.SatelliteSnapshot{
		ITowMs:     u32(payload, 0),
		Satellites: make([]events.SatelliteInfo, 0, numSvs),
	}

	for i := 0; i < numSvs; i++ {
		off := navSatHeaderLen + i*navSatRecordLen
		flags := u32(payload, off+8)
		sv := events.SatelliteInfo{
			GnssID:     u8(payload, off+0),
			SvID:       u8(payload, off+1),
			CnoDbHz:    u8(payload, off+2),
			ElevDeg:    i8(payload, off+3),
			AzimDeg:    i16(payload, off+4),
			PrResM:     float64(i16(payload, off+6)) * 0.1,
			QualityInd: uint8(flags & 0x07),
			SvUsed:     flags&0x08 != 0,
			Health:     uint8((flags >> 4) & 0x03),
			DiffCorr:   flags&0x40 != 0,
			Smoothed:   flags&0x80 != 0,
		}
		snap.Satellites = append(snap.Satellites, sv)
		if sv.GnssID == gnssIDSBAS && sv.SvUsed && sv.DiffCorr {
			snap.SbasInUse = true
		}
		if sv.DiffCorr {
			snap.DiffCorrCount++
		}
	}
	snap.DiffCorrInUse = snap.DiffCorrCount > 0
	snap.Received = events.NewReceived(mono)
	return snap, nil
}
