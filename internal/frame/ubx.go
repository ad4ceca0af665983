package frame

import "bytes"

var ubxSync = []byte{0xB5, 0x62}

const ubxHeaderLen = 6 // sync(2) + class(1) + id(1) + lenL + lenH

// scanUBX locates the earliest UBX candidate in buf. On a checksum
// failure it keeps searching for the next 0xB5 0x62 occurrence instead
// of giving up, matching the "earliest valid wins, continue past a
// failed candidate" rule of spec.md §4.1.
func scanUBX(buf []byte, maxPayload int) *candidate {
	search := 0
	for {
		idx := bytes.Index(buf[search:], ubxSync)
		if idx < 0 {
			// A lone trailing 0xB5 could still be the start of a sync
			// that hasn't fully arrived yet.
			if len(buf) > 0 && buf[len(buf)-1] == ubxSync[0] {
				return &candidate{kind: KindUbx, offset: len(buf) - 1, complete: false, bytesNeeded: ubxHeaderLen - 1}
			}
			return nil
		}
		offset := search + idx
		avail := len(buf) - offset

		if avail < ubxHeaderLen {
			return &candidate{kind: KindUbx, offset: offset, complete: false, bytesNeeded: ubxHeaderLen - avail}
		}

		payloadLen := int(buf[offset+4]) | int(buf[offset+5])<<8
		if payloadLen < 0 || payloadLen > maxPayload {
			search = offset + len(ubxSync)
			continue
		}

		totalLen := ubxHeaderLen + payloadLen + 2
		if avail < totalLen {
			return &candidate{kind: KindUbx, offset: offset, complete: false, bytesNeeded: totalLen - avail}
		}

		frame := buf[offset : offset+totalLen]
		ckA, ckB := fletcher8(frame[2 : 4+2+payloadLen])
		if ckA == frame[totalLen-2] && ckB == frame[totalLen-1] {
			return &candidate{kind: KindUbx, offset: offset, complete: true, totalLen: totalLen}
		}

		// Checksum failure: not a winner. Resume searching for the next
		// sync occurrence beyond this one.
		search = offset + len(ubxSync)
	}
}
