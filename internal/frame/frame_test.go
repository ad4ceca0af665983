package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildUBX(class, id byte, payload []byte) []byte {
	lenL := byte(len(payload) & 0xFF)
	lenH := byte((len(payload) >> 8) & 0xFF)
	body := append([]byte{class, id, lenL, lenH}, payload...)
	ckA, ckB := fletcher8(body)
	out := append([]byte{0xB5, 0x62}, body...)
	return append(out, ckA, ckB)
}

func buildRTCM3(payload []byte) []byte {
	lenHi := byte((len(payload) >> 8) & 0x03)
	lenLo := byte(len(payload) & 0xFF)
	header := []byte{0xD3, lenHi, lenLo}
	msg := append(append([]byte{}, header...), payload...)
	crc := crc24q(msg)
	return append(msg, byte(crc>>16), byte(crc>>8), byte(crc))
}

func buildNMEA(body string) []byte {
	var checksum byte
	for i := 0; i < len(body); i++ {
		checksum ^= body[i]
	}
	return []byte("$" + body + "*" + hexByte(checksum) + "\r\n")
}

func hexByte(b byte) string {
	const hex = "0123456789ABCDEF"
	return string([]byte{hex[b>>4], hex[b&0xF]})
}

func TestFindUBXRoundTrip(t *testing.T) {
	frameBytes := buildUBX(0x06, 0x8B, []byte{0x01, 0x02})
	found, partial := Find(frameBytes, DefaultLimits)
	require.Nil(t, partial)
	require.NotNil(t, found)
	assert.Equal(t, KindUbx, found.Kind)
	assert.Equal(t, 0, found.StartOffset)
	assert.Equal(t, len(frameBytes), found.TotalLen)
}

func TestFindUBXZeroAndMaxPayload(t *testing.T) {
	zero := buildUBX(0x01, 0x07, nil)
	found, partial := Find(zero, DefaultLimits)
	require.Nil(t, partial)
	require.NotNil(t, found)
	assert.Equal(t, len(zero), found.TotalLen)

	max := buildUBX(0x01, 0x07, make([]byte, 1024))
	found, partial = Find(max, DefaultLimits)
	require.Nil(t, partial)
	require.NotNil(t, found)
	assert.Equal(t, len(max), found.TotalLen)
}

func TestFindRTCM3RoundTrip(t *testing.T) {
	frameBytes := buildRTCM3(make([]byte, 20))
	found, partial := Find(frameBytes, DefaultLimits)
	require.Nil(t, partial)
	require.NotNil(t, found)
	assert.Equal(t, KindRtcm3, found.Kind)
	assert.Equal(t, len(frameBytes), found.TotalLen)
}

func TestFindRTCM3BoundaryLengths(t *testing.T) {
	one := buildRTCM3(make([]byte, 1))
	found, partial := Find(one, DefaultLimits)
	require.Nil(t, partial)
	require.NotNil(t, found)

	max := buildRTCM3(make([]byte, 1024))
	found, partial = Find(max, DefaultLimits)
	require.Nil(t, partial)
	require.NotNil(t, found)

	// Zero-length payload is not a valid candidate; scanner should not
	// report it complete. The raw bytes are written out directly: a
	// header declaring length 0, followed by a zero CRC trailer.
	zero := []byte{0xD3, 0x00, 0x00, 0x00, 0x00, 0x00}
	found, _ = Find(zero, DefaultLimits)
	assert.Nil(t, found)
}

func TestFindNMEARoundTrip(t *testing.T) {
	frameBytes := buildNMEA("GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,")
	found, partial := Find(frameBytes, DefaultLimits)
	require.Nil(t, partial)
	require.NotNil(t, found)
	assert.Equal(t, KindNmea, found.Kind)
	assert.Equal(t, len(frameBytes), found.TotalLen)
}

func TestFindNMEAMinLength(t *testing.T) {
	// "$A*00\r\n" style minimal sentence; must be >= 9 bytes total.
	short := []byte("$A*41\r\n") // 7 bytes total, below the 9-byte floor
	found, partial := Find(short, DefaultLimits)
	assert.Nil(t, found)
	assert.Nil(t, partial)
}

func TestFindNMEAMissingCRLFIsPartial(t *testing.T) {
	incomplete := []byte("$GPGGA,1,2,3*1D")
	found, partial := Find(incomplete, DefaultLimits)
	assert.Nil(t, found)
	require.NotNil(t, partial)
	assert.Equal(t, KindNmea, partial.Kind)
}

func TestFindNMEABadChecksumRejected(t *testing.T) {
	bad := []byte("$GPGGA,1,2,3*FF\r\n")
	found, partial := Find(bad, DefaultLimits)
	assert.Nil(t, found)
	assert.Nil(t, partial)
}

func TestFindPicksEarliestOffset(t *testing.T) {
	nmea := buildNMEA("GPRMC,a,b")
	ubx := buildUBX(0x01, 0x07, []byte{1, 2, 3})
	buf := append(append([]byte{}, ubx...), nmea...)
	found, _ := Find(buf, DefaultLimits)
	require.NotNil(t, found)
	assert.Equal(t, KindUbx, found.Kind)
	assert.Equal(t, 0, found.StartOffset)
}

func TestFindSkipsFailedChecksumAndFindsNext(t *testing.T) {
	corrupt := buildUBX(0x06, 0x8B, []byte{1, 2})
	corrupt[len(corrupt)-1] ^= 0xFF // break checksum
	good := buildUBX(0x01, 0x07, []byte{9, 9})
	buf := append(append([]byte{}, corrupt...), good...)
	found, _ := Find(buf, DefaultLimits)
	require.NotNil(t, found)
	assert.Equal(t, KindUbx, found.Kind)
	assert.Equal(t, len(corrupt), found.StartOffset) // scan resumes after the corrupt candidate's sync and finds the next one
}

func TestFindOneByteAtATimeMatchesBulk(t *testing.T) {
	frameBytes := buildUBX(0x01, 0x07, []byte{1, 2, 3, 4})
	bulkFound, _ := Find(frameBytes, DefaultLimits)
	require.NotNil(t, bulkFound)

	for i := 1; i <= len(frameBytes); i++ {
		found, partial := Find(frameBytes[:i], DefaultLimits)
		if i < len(frameBytes) {
			assert.Nil(t, found, "at %d bytes should not be complete", i)
			require.NotNil(t, partial, "at %d bytes should be partial", i)
		} else {
			require.NotNil(t, found)
			assert.Equal(t, bulkFound.TotalLen, found.TotalLen)
		}
	}
}

func TestMessageType(t *testing.T) {
	payload := make([]byte, 3)
	// Type 1005 == 0x3ED -> first 12 bits across byte0 (8 bits) + top 4 of byte1.
	typ := 1005
	payload[0] = byte(typ >> 4)
	payload[1] = byte((typ & 0xF) << 4)
	frameBytes := buildRTCM3(payload)
	assert.Equal(t, 1005, MessageType(frameBytes))
}
