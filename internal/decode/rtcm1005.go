package decode

import "errors"

// decodeRTCM1005 bit-decodes a reference-station ARP message (type
// 1005) per spec.md §4.3: 12-bit message number, 12-bit station id,
// 10 skipped bits (ITRF year + constellation indicators), three 38-bit
// signed ECEF coordinates at 0.0001 m resolution separated by the
// single-oscillator/reserved and quarter-cycle bits, which are also
// skipped. payload is the RTCM3 frame's payload (header and CRC
// already stripped).
func decodeRTCM1005(payload []byte) (stationID uint16, x, y, z float64, err error) {
	const minBits = 152
	if len(payload)*8 < minBits {
		return 0, 0, 0, 0, errors.New("rtcm1005: payload too short")
	}

	stationID = uint16(getBitU(payload, 12, 12))

	xRaw := getBitS64(payload, 34, 38)
	yRaw := getBitS64(payload, 74, 38)
	zRaw := getBitS64(payload, 114, 38)

	const resolution = 0.0001
	x = float64(xRaw) * resolution
	y = float64(yRaw) * resolution
	z = float64(zRaw) * resolution
	return stationID, x, y, z, nil
}

// encodeRTCM1005 is the inverse of decodeRTCM1005, used by the round-trip
// test: encoding a well-formed message and decoding it must be identity
// at the 0.0001 m resolution.
func encodeRTCM1005(stationID uint16, x, y, z float64) []byte {
	payload := make([]byte, 19)
	setBitU(payload, 0, 12, 1005)
	setBitU(payload, 12, 12, uint32(stationID))
	// bits 24-33 (ITRF year + constellation indicators) left zero.
	setBitS64(payload, 34, 38, round1e4(x))
	// bit 72 (single oscillator) + 73 (reserved) left zero.
	setBitS64(payload, 74, 38, round1e4(y))
	// bits 112-113 (quarter cycle) left zero.
	setBitS64(payload, 114, 38, round1e4(z))
	return payload
}

func round1e4(v float64) int64 {
	if v >= 0 {
		return int64(v/0.0001 + 0.5)
	}
	return int64(v/0.0001 - 0.5)
}
