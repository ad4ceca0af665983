package decode

import (
	"fmt"
	"time"

	"github.com/zedbridge/gnssgateway/internal/events"
)

const navDopMinLen = 18

// decodeNavDop decodes a NAV-DOP payload (UBX id 0x04) per spec.md §4.3:
// seven DOP fields, each a u16 scaled by 0.01.
func decodeNavDop(payload []byte, mono time.Duration) (events.Dop, error) {
	if len(payload) < navDopMinLen {
		return events.Dop{}, fmt.Errorf("nav-dop: payload too short (%d < %d)", len(payload), navDopMinLen)
	}
	scaled := func(off int) float64 { return float64(u16(payload, off)) * 0.01 }
	dop := events.Dop{
		GDOP: scaled(4),
		PDOP: scaled(6),
		TDOP: scaled(8),
		VDOP: scaled(10),
		HDOP: scaled(12),
		NDOP: scaled(14),
		EDOP: scaled(16),
	}
	dop.ITowMs = u32(payload, 0)
	dop.Received = events.NewReceived(mono)
	return dop, nil
}
