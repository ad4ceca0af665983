package rtcmrouter

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRadio struct {
	sent      [][]byte
	sendErr   error
	onReceive func([]byte)
}

func (r *fakeRadio) Send(ctx context.Context, frameBytes []byte) error {
	if r.sendErr != nil {
		return r.sendErr
	}
	r.sent = append(r.sent, append([]byte(nil), frameBytes...))
	return nil
}

func (r *fakeRadio) OnReceive(fn func([]byte)) { r.onReceive = fn }

type fakeByteSink struct {
	written [][]byte
	writeErr error
}

func (b *fakeByteSink) Write(ctx context.Context, data []byte) error {
	if b.writeErr != nil {
		return b.writeErr
	}
	b.written = append(b.written, append([]byte(nil), data...))
	return nil
}

type fakeCounter struct {
	observed map[string]int
}

func (c *fakeCounter) ObserveBytes(key string, nbytes int) {
	if c.observed == nil {
		c.observed = make(map[string]int)
	}
	c.observed[key] += nbytes
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(nopWriter{})
	return l
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func buildRTCM3(msgType int, extra int) []byte {
	payload := make([]byte, 2+extra)
	payload[0] = byte(msgType >> 4)
	payload[1] = byte((msgType & 0xF) << 4)
	return append([]byte{0xD3, 0x00, byte(len(payload))}, payload...)
}

func TestRouterForwardsAcceptedType(t *testing.T) {
	radio := &fakeRadio{}
	sink := &fakeByteSink{}
	counter := &fakeCounter{}
	r := New(DefaultAcceptRanges, radio, sink, counter, discardLogger())

	f := buildRTCM3(1077, 5)
	r.ForwardOutbound(context.Background(), f)

	require.Len(t, radio.sent, 1)
	assert.Equal(t, f, radio.sent[0])
	assert.Equal(t, len(f), counter.observed["rtcm.outbound"])
}

func TestRouterDropsOutOfRangeType(t *testing.T) {
	radio := &fakeRadio{}
	sink := &fakeByteSink{}
	r := New(DefaultAcceptRanges, radio, sink, nil, discardLogger())

	f := buildRTCM3(999, 5)
	r.ForwardOutbound(context.Background(), f)
	assert.Empty(t, radio.sent)
}

func TestRouterSendFailureNonFatal(t *testing.T) {
	radio := &fakeRadio{sendErr: errors.New("radio down")}
	sink := &fakeByteSink{}
	r := New(DefaultAcceptRanges, radio, sink, nil, discardLogger())

	assert.NotPanics(t, func() {
		r.ForwardOutbound(context.Background(), buildRTCM3(1005, 0))
	})
}

func TestRouterInboundWritesToByteSink(t *testing.T) {
	radio := &fakeRadio{}
	sink := &fakeByteSink{}
	counter := &fakeCounter{}
	_ = New(DefaultAcceptRanges, radio, sink, counter, discardLogger())

	require.NotNil(t, radio.onReceive)
	radio.onReceive([]byte{0x01, 0x02, 0x03})

	require.Len(t, sink.written, 1)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, sink.written[0])
	assert.Equal(t, 3, counter.observed["rtcm.inbound"])
}

func TestRouterInboundWriteFailureNonFatal(t *testing.T) {
	radio := &fakeRadio{}
	sink := &fakeByteSink{writeErr: errors.New("serial closed")}
	_ = New(DefaultAcceptRanges, radio, sink, nil, discardLogger())

	assert.NotPanics(t, func() {
		radio.onReceive([]byte{0xAA})
	})
}
