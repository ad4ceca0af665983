package decode

import (
	"bytes"
	"fmt"
	"time"

	"github.com/zedbridge/gnssgateway/internal/events"
)

const (
	monVerMinLen = 40
	monVerSwLen  = 30
	monVerHwLen  = 10
	monVerExtLen = 30
)

// decodeMonVer decodes a MON-VER payload (UBX class 0x0A, id 0x04) per
// spec.md §4.3: a fixed 30-byte NUL-trimmed ASCII software version, a
// fixed 10-byte NUL-trimmed hardware version, and zero or more trailing
// 30-byte NUL-terminated extension strings.
func decodeMonVer(payload []byte, mono time.Duration) (events.ReceiverVersion, error) {
	if len(payload) < monVerMinLen {
		return events.ReceiverVersion{}, fmt.Errorf("mon-ver: payload too short (%d < %d)", len(payload), monVerMinLen)
	}

	ver := events.ReceiverVersion{
		SwVersion: trimNUL(payload[0:monVerSwLen]),
		HwVersion: trimNUL(payload[monVerSwLen : monVerSwLen+monVerHwLen]),
	}

	rest := payload[monVerSwLen+monVerHwLen:]
	for off := 0; off+monVerExtLen <= len(rest); off += monVerExtLen {
		ver.Extensions = append(ver.Extensions, trimNUL(rest[off:off+monVerExtLen]))
	}
	ver.Received = events.NewReceived(mono)
	return ver, nil
}

func trimNUL(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
