package frame

import "bytes"

const nmeaSync = '$'

var nmeaTerminator = []byte{'\r', '\n'}

const nmeaMinLen = 9

// scanNMEA locates the earliest NMEA candidate in buf: a '$' sync byte,
// terminated by the first "\r\n" after it, with a valid XOR checksum.
func scanNMEA(buf []byte) *candidate {
	search := 0
	for {
		idx := bytes.IndexByte(buf[search:], nmeaSync)
		if idx < 0 {
			return nil
		}
		offset := search + idx

		end := bytes.Index(buf[offset:], nmeaTerminator)
		if end < 0 {
			// No CRLF yet. Report a partial demand of at least the
			// minimum sentence length, whichever is greater.
			avail := len(buf) - offset
			needed := nmeaMinLen - avail
			if needed < 1 {
				needed = 1
			}
			return &candidate{kind: KindNmea, offset: offset, complete: false, bytesNeeded: needed}
		}

		totalLen := end + len(nmeaTerminator)
		if totalLen < nmeaMinLen {
			search = offset + 1
			continue
		}

		sentence := buf[offset : offset+totalLen]
		if !validNMEABody(sentence) {
			search = offset + 1
			continue
		}

		star := bytes.LastIndexByte(sentence[:len(sentence)-2], '*')
		if star < 0 || star+3 > len(sentence)-2 {
			search = offset + 1
			continue
		}

		var checksum byte
		for i := 1; i < star; i++ {
			checksum ^= sentence[i]
		}
		hexDigits := sentence[star+1 : star+3]
		want, ok := decodeHexByte(hexDigits[0], hexDigits[1])
		if !ok || checksum != want {
			search = offset + 1
			continue
		}

		return &candidate{kind: KindNmea, offset: offset, complete: true, totalLen: totalLen}
	}
}

// validNMEABody checks the 7-bit ASCII subset required by spec.md §4.1:
// [0x09,0x7E] union {0x0D, 0x0A}.
func validNMEABody(sentence []byte) bool {
	for _, b := range sentence {
		if b == 0x0D || b == 0x0A {
			continue
		}
		if b < 0x09 || b > 0x7E {
			return false
		}
	}
	return true
}

func decodeHexByte(hi, lo byte) (byte, bool) {
	h, ok1 := hexNibble(hi)
	l, ok2 := hexNibble(lo)
	if !ok1 || !ok2 {
		return 0, false
	}
	return h<<4 | l, true
}

func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	default:
		return 0, false
	}
}
