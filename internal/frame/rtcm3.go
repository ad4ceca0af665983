package frame

import "bytes"

const rtcm3Sync = 0xD3
const rtcm3HeaderLen = 3 // preamble(1) + 6 reserved bits + 10 length bits

// scanRTCM3 locates the earliest RTCM3 candidate in buf.
func scanRTCM3(buf []byte, maxPayload int) *candidate {
	search := 0
	for {
		idx := bytes.IndexByte(buf[search:], rtcm3Sync)
		if idx < 0 {
			return nil
		}
		offset := search + idx
		avail := len(buf) - offset

		if avail < rtcm3HeaderLen {
			return &candidate{kind: KindRtcm3, offset: offset, complete: false, bytesNeeded: rtcm3HeaderLen - avail}
		}

		// Upper 6 bits of byte 1 must be zero.
		if buf[offset+1]&0xFC != 0 {
			search = offset + 1
			continue
		}
		payloadLen := (int(buf[offset+1]&0x03) << 8) | int(buf[offset+2])
		if payloadLen < 1 || payloadLen > maxPayload {
			search = offset + 1
			continue
		}

		totalLen := rtcm3HeaderLen + payloadLen + 3
		if avail < totalLen {
			return &candidate{kind: KindRtcm3, offset: offset, complete: false, bytesNeeded: totalLen - avail}
		}

		msg := buf[offset : offset+totalLen]
		crc := crc24q(msg[:rtcm3HeaderLen+payloadLen])
		trailer := uint32(msg[totalLen-3])<<16 | uint32(msg[totalLen-2])<<8 | uint32(msg[totalLen-1])
		if crc == trailer {
			return &candidate{kind: KindRtcm3, offset: offset, complete: true, totalLen: totalLen}
		}

		search = offset + 1
	}
}

// MessageType extracts the 12-bit RTCM message type from a complete
// frame's payload, per spec.md §4.6: (byte[3] << 4) | (byte[4] >> 4).
func MessageType(frameBytes []byte) int {
	if len(frameBytes) < 5 {
		return -1
	}
	return int(frameBytes[3])<<4 | int(frameBytes[4])>>4
}
