package decode

import (
	"fmt"
	"time"

	"github.com/zedbridge/gnssgateway/internal/events"
)

// decodeRxmSfrbx extracts minimal presence fields from an RXM-SFRBX
// payload per spec.md §4.3: this message's value lies in signaling
// broadcast-data activity, not in decoding the subframe words it carries.
func decodeRxmSfrbx(payload []byte, mono time.Duration) (events.Broadcast, error) {
	if len(payload) < 8 {
		return events.Broadcast{}, fmt.Errorf("rxm-sfrbx: payload too short (%d < 8)", len(payload))
	}
	numWords := int(u8(payload, 4))
	b := events.Broadcast{
		Source:         "RXM-SFRBX",
		GnssID:         u8(payload, 0),
		SvID:           u8(payload, 1),
		MeasurementCnt: numWords,
	}
	b.Received = events.NewReceived(mono)
	return b, nil
}

// decodeRxmRawx extracts minimal presence fields from an RXM-RAWX
// payload: the measurement-count header and, when at least one
// measurement block is present, its GNSS/SV identifiers.
func decodeRxmRawx(payload []byte, mono time.Duration) (events.Broadcast, error) {
	const headerLen = 16
	const measLen = 32
	if len(payload) < headerLen {
		return events.Broadcast{}, fmt.Errorf("rxm-rawx: payload too short (%d < %d)", len(payload), headerLen)
	}
	numMeas := int(u8(payload, 11))
	b := events.Broadcast{
		Source:         "RXM-RAWX",
		MeasurementCnt: numMeas,
	}
	if numMeas > 0 && len(payload) >= headerLen+measLen {
		b.GnssID = u8(payload, headerLen+20)
		b.SvID = u8(payload, headerLen+21)
	}
	b.Received = events.NewReceived(mono)
	return b, nil
}
