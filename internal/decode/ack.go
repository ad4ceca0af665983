package decode

import (
	"fmt"
	"time"

	"github.com/zedbridge/gnssgateway/internal/events"
)

const ackMinLen = 2

// decodeAck decodes a UBX-ACK-ACK or UBX-ACK-NAK payload (class 0x05)
// per spec.md §4.3. acked reports whether this is an ACK (true) or a
// NAK (false), taken from the frame's id byte at dispatch time.
func decodeAck(payload []byte, acked bool, mono time.Duration) (events.Ack, error) {
	if len(payload) < ackMinLen {
		return events.Ack{}, fmt.Errorf("ack: payload too short (%d < %d)", len(payload), ackMinLen)
	}
	a := events.Ack{
		Acked:      acked,
		AckedClass: u8(payload, 0),
		AckedID:    u8(payload, 1),
	}
	a.Received = events.NewReceived(mono)
	return a, nil
}
