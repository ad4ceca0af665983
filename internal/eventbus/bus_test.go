package eventbus

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zedbridge/gnssgateway/internal/events"
)

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(nopWriter{})
	return l
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestBusFanOut(t *testing.T) {
	b := New(4, discardLogger())
	ch1, unsub1 := b.Subscribe()
	ch2, unsub2 := b.Subscribe()
	defer unsub1()
	defer unsub2()

	ev := events.Ack{Acked: true}
	b.Publish(ev)

	require.Len(t, ch1, 1)
	require.Len(t, ch2, 1)
	assert.Equal(t, ev, <-ch1)
	assert.Equal(t, ev, <-ch2)
}

func TestBusUnsubscribeClosesChannel(t *testing.T) {
	b := New(4, discardLogger())
	ch, unsub := b.Subscribe()
	unsub()

	_, ok := <-ch
	assert.False(t, ok, "channel should be closed after unsubscribe")
}

func TestBusDropsOldestWhenSubscriberFull(t *testing.T) {
	b := New(1, discardLogger())
	ch, unsub := b.Subscribe()
	defer unsub()

	b.Publish(events.Ack{AckedClass: 1})
	b.Publish(events.Ack{AckedClass: 2})

	got := <-ch
	assert.Equal(t, uint8(2), got.(events.Ack).AckedClass, "oldest event should have been dropped to make room")
}

func TestBusPublishWithNoSubscribersDoesNotBlock(t *testing.T) {
	b := New(4, discardLogger())
	assert.NotPanics(t, func() { b.Publish(events.Ack{}) })
}
