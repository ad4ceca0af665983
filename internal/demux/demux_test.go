package demux

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zedbridge/gnssgateway/internal/frame"
)

type recordedFrame struct {
	kind  frame.Kind
	bytes []byte
}

type recordingHandler struct {
	frames []recordedFrame
	err    error
}

func (h *recordingHandler) HandleFrame(kind frame.Kind, frameBytes []byte) error {
	cp := append([]byte(nil), frameBytes...)
	h.frames = append(h.frames, recordedFrame{kind: kind, bytes: cp})
	return h.err
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(nopWriter{})
	return l
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func buildUBXFrame(t *testing.T, class, id byte, payload []byte) []byte {
	t.Helper()
	lenL := byte(len(payload) & 0xFF)
	lenH := byte((len(payload) >> 8) & 0xFF)
	body := append([]byte{class, id, lenL, lenH}, payload...)
	var ckA, ckB byte
	for _, b := range body {
		ckA += b
		ckB += ckA
	}
	out := append([]byte{0xB5, 0x62}, body...)
	return append(out, ckA, ckB)
}

func TestDemuxMidFrameGarbageRecovery(t *testing.T) {
	// Scenario 1: leading garbage, then a valid ACK-ACK UBX frame.
	ack := buildUBXFrame(t, 0x05, 0x01, []byte{0x06, 0x8B})
	buf := append([]byte{0xFF, 0xFF}, ack...)

	h := &recordingHandler{}
	d := New(DefaultConfig(), h, discardLogger())
	d.Ingest(buf)
	n, err := d.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, h.frames, 1)
	assert.Equal(t, frame.KindUbx, h.frames[0].kind)
	assert.Equal(t, ack, h.frames[0].bytes)
}

func TestDemuxProgressNeverStalls(t *testing.T) {
	h := &recordingHandler{}
	d := New(DefaultConfig(), h, discardLogger())
	d.Ingest([]byte{0x00, 0x01, 0x02, 0x03, 0x04})
	n, err := d.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, d.buf.Len(), "all garbage bytes should be consumed")
}

func TestDemuxPartialWaitsForMoreBytes(t *testing.T) {
	h := &recordingHandler{}
	d := New(DefaultConfig(), h, discardLogger())
	d.Ingest([]byte{0xB5, 0x62, 0x01, 0x07})
	n, err := d.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 4, d.buf.Len(), "partial candidate must not be mutated")
}

func TestDemuxOverflowDropsOldestBytes(t *testing.T) {
	h := &recordingHandler{}
	cfg := DefaultConfig()
	cfg.MaxBufferBytes = 8
	d := New(cfg, h, discardLogger())
	d.Ingest(make([]byte, 20))
	assert.Equal(t, 8, d.buf.Len())
}

func TestDemuxMaxFramesPerDrainCap(t *testing.T) {
	h := &recordingHandler{}
	cfg := DefaultConfig()
	cfg.MaxFramesPerDrain = 2
	d := New(cfg, h, discardLogger())

	var buf []byte
	for i := 0; i < 5; i++ {
		buf = append(buf, buildUBXFrame(t, 0x01, 0x07, []byte{byte(i)})...)
	}
	d.Ingest(buf)
	n, err := d.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n2, err := d.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n2)
}

func TestDemuxOneByteAtATimeMatchesBulk(t *testing.T) {
	frameBytes := buildUBXFrame(t, 0x01, 0x07, []byte{1, 2, 3, 4, 5})

	bulk := &recordingHandler{}
	bd := New(DefaultConfig(), bulk, discardLogger())
	bd.Ingest(frameBytes)
	_, err := bd.Drain(context.Background())
	require.NoError(t, err)

	perByte := &recordingHandler{}
	pd := New(DefaultConfig(), perByte, discardLogger())
	for _, b := range frameBytes {
		pd.Ingest([]byte{b})
		_, err := pd.Drain(context.Background())
		require.NoError(t, err)
	}

	require.Len(t, bulk.frames, 1)
	require.Len(t, perByte.frames, 1)
	assert.Equal(t, bulk.frames[0].bytes, perByte.frames[0].bytes)
}

func TestDemuxDecoderErrorDoesNotStallLoop(t *testing.T) {
	h := &recordingHandler{err: assertError{}}
	d := New(DefaultConfig(), h, discardLogger())
	f1 := buildUBXFrame(t, 0x01, 0x07, []byte{1})
	f2 := buildUBXFrame(t, 0x01, 0x07, []byte{2})
	d.Ingest(append(f1, f2...))
	n, err := d.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

type assertError struct{}

func (assertError) Error() string { return "decoder failed" }
