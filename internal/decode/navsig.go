package decode

import (
	"fmt"
	"time"

	"github.com/zedbridge/gnssgateway/internal/events"
)

const (
	navSigHeaderLen = 8
	navSigRecordLen = 16
)

// decodeNavSig decodes a NAV-SIG payload (UBX id 0x43) per spec.md §4.3:
// an 8-byte header followed by N 16-byte per-signal records.
func decodeNavSig(payload []byte, mono time.Duration) (events.SignalInfoSnapshot, error) {
	if len(payload) < navSigHeaderLen {
		return events.SignalInfoSnapshot{}, fmt.Errorf("nav-sig: payload too short (%d < %d)", len(payload), navSigHeaderLen)
	}
	numSigs := int(u8(payload, 5))
	want := navSigHeaderLen + numSigs*navSigRecordLen
	if len(payload) < want {
		return events.SignalInfoSnapshot{}, fmt.Errorf("nav-sig: payload too short for %d signals (%d < %d)", numSigs, len(payload), want)
	}

	snap := events.SignalInfoSnapshot{
		ITowMs:  u32(payload, 0),
		Signals: make([]events.SignalInfo, 0, numSigs),
	}
	for i := 0; i < numSigs; i++ {
		off := navSigHeaderLen + i*navSigRecordLen
		sigFlags := u16(payload, off+12)
		snap.Signals = append(snap.Signals, events.SignalInfo{
			GnssID:          u8(payload, off+0),
			SvID:            u8(payload, off+1),
			SigID:           u8(payload, off+2),
			CnoDbHz:         u8(payload, off+4),
			Quality:         u8(payload, off+6),
			Health:          uint8(sigFlags & 0x03),
			PrUsed:          sigFlags&0x08 != 0,
			CrUsed:          sigFlags&0x10 != 0,
			DoUsed:          sigFlags&0x20 != 0,
			CorrectionsUsed: uint8((sigFlags >> 6) & 0x07),
		})
	}
	snap.Received = events.NewReceived(mono)
	return snap, nil
}
