package decode

import (
	"fmt"
	"time"

	"github.com/zedbridge/gnssgateway/internal/events"
)

const navPvtMinLen = 84

// decodeNavPvt decodes a NAV-PVT payload (UBX class 0x01, id 0x07) per
// spec.md §4.3, grounded in the fixed-offset scalar layout the u-blox
// receiver family uses for this message. The trailing differential-age
// field is a curated addition beyond the base 84-byte payload: when
// present (payload ≥ 86 bytes) it is read immediately following the
// standard fields, with 0xFFFF meaning "not present".
func decodeNavPvt(payload []byte, mono time.Duration) (events.PositionFix, error) {
	if len(payload) < navPvtMinLen {
		return events.PositionFix{}, fmt.Errorf("nav-pvt: payload too short (%d < %d)", len(payload), navPvtMinLen)
	}

	flags := u8(payload, 21)
	gnssFixOK := flags&0x01 != 0
	diffSoln := flags&0x02 != 0
	carrSoln := events.CarrierSolution((flags >> 6) & 0x03)

	fix := events.PositionFix{
		ITowMs:          u32(payload, 0),
		Year:            u16(payload, 4),
		Month:           u8(payload, 6),
		Day:             u8(payload, 7),
		Hour:            u8(payload, 8),
		Min:             u8(payload, 9),
		Sec:             u8(payload, 10),
		FixType:         events.FixType(u8(payload, 20)),
		GnssFixOK:       gnssFixOK,
		DiffSoln:        diffSoln,
		CarrierSolution: carrSoln,
		NumSV:           u8(payload, 23),
		LonDeg:          float64(i32(payload, 24)) * 1e-7,
		LatDeg:          float64(i32(payload, 28)) * 1e-7,
		HeightEllipMm:   i32(payload, 32),
		HeightMSLMm:     i32(payload, 36),
		HAccMm:          u32(payload, 40),
		VAccMm:          u32(payload, 44),
	}

	const diffAgeOffset = 84
	if len(payload) >= diffAgeOffset+2 {
		raw := u16(payload, diffAgeOffset)
		if raw != 0xFFFF {
			v := raw
			fix.DiffAgeMs = &v
		}
	}

	fix.Label = fixLabel(fix.FixType, fix.DiffSoln, fix.CarrierSolution)
	fix.Received = events.NewReceived(mono)
	return fix, nil
}
