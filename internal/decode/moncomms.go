package decode

import (
	"fmt"
	"time"

	"github.com/zedbridge/gnssgateway/internal/events"
)

const (
	monCommsHeaderLen = 8
	monCommsPortLen   = 40
)

// decodeMonComms decodes a MON-COMMS payload (UBX id 0x36) per spec.md
// §4.3: an 8-byte header followed by N 40-byte per-port records, each
// carrying TX/RX byte counters, buffer usage percentages, overrun flags,
// and an 8-slot protocol-message-count array (index 0=UBX, 1=NMEA,
// 5=RTCM3; other indices reserved for protocols this gateway does not
// decode).
//
// Open question resolved: two variant MSGOUT configuration key
// constants exist for enabling this message on UART1 (the first-listed
// one is 0x2091034F); this decoder is agnostic to which key enabled it
// and simply decodes whatever MON-COMMS frame arrives, so the choice
// only matters to receiver configuration, which this module does not
// perform.
func decodeMonComms(payload []byte, mono time.Duration) (events.CommsStatus, error) {
	if len(payload) < monCommsHeaderLen {
		return events.CommsStatus{}, fmt.Errorf("mon-comms: payload too short (%d < %d)", len(payload), monCommsHeaderLen)
	}
	numPorts := int(u8(payload, 1))
	want := monCommsHeaderLen + numPorts*monCommsPortLen
	if len(payload) < want {
		return events.CommsStatus{}, fmt.Errorf("mon-comms: payload too short for %d ports (%d < %d)", numPorts, len(payload), want)
	}

	status := events.CommsStatus{Ports: make([]events.PortCommsStats, 0, numPorts)}
	for i := 0; i < numPorts; i++ {
		off := monCommsHeaderLen + i*monCommsPortLen
		var protoCounts [8]uint16
		for p := 0; p < 8; p++ {
			protoCounts[p] = u16(payload, off+24+p*2)
		}
		txUsage, rxUsage := u8(payload, off+8), u8(payload, off+9)
		overrunFlags := u8(payload, off+10)
		status.Ports = append(status.Ports, events.PortCommsStats{
			PortID:         u8(payload, off+0),
			TxBytes:        u32(payload, off+16),
			RxBytes:        u32(payload, off+20),
			TxUsagePct:     txUsage,
			RxUsagePct:     rxUsage,
			TxOverruns:     overrunFlags&0x01 != 0,
			RxOverruns:     overrunFlags&0x02 != 0,
			ProtoMsgCounts: protoCounts,
		})
	}
	status.Received = events.NewReceived(mono)
	return status, nil
}
