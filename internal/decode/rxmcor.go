package decode

import (
	"fmt"
	"time"

	"github.com/zedbridge/gnssgateway/internal/events"
)

const rxmCorMinLen = 16

// decodeRxmCor decodes an RXM-COR payload (UBX id 0x34) per spec.md
// §4.3: a correction-stream status report consumed directly by the
// correction store (C4) and aggregator (C5).
func decodeRxmCor(payload []byte, mono time.Duration) (events.Correction, error) {
	if len(payload) < rxmCorMinLen {
		return events.Correction{}, fmt.Errorf("rxm-cor: payload too short (%d < %d)", len(payload), rxmCorMinLen)
	}

	flags := u16(payload, 1)
	corr := events.Correction{
		Version:   u8(payload, 0),
		Valid:     flags&0x01 != 0,
		Stale:     flags&0x02 != 0,
		SBAS:      flags&0x10 != 0,
		RTCM:      flags&0x20 != 0,
		SPARTN:    flags&0x40 != 0,
		MsgType:   u16(payload, 3),
		SubType:   u16(payload, 5),
		NumMsgs:   u16(payload, 7),
		CorrAgeMs: u32(payload, 12),
	}

	switch {
	case corr.SPARTN:
		corr.Source = events.CorrSrcSPARTN
	case corr.RTCM:
		corr.Source = events.CorrSrcRTCM
	case corr.SBAS:
		corr.Source = events.CorrSrcSBAS
	default:
		corr.Source = events.CorrSrcNone
	}

	corr.Received = events.NewReceived(mono)
	return corr, nil
}
