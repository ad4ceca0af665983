// Package eventbus implements the single typed broadcast channel of
// spec.md §6.4 (Publisher interface, C11), grounded in the teacher's
// pkg/caster/inmemory.go mountPoint fan-out: one mutex-guarded list of
// subscriber channels, non-blocking publish with drop-oldest-and-warn
// on a full subscriber, and google/uuid-keyed subscriber identities.
package eventbus

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/zedbridge/gnssgateway/internal/events"
)

// DefaultSubscriberBuffer bounds each subscriber's channel; a slow
// subscriber drops its oldest queued event rather than blocking the
// publisher.
const DefaultSubscriberBuffer = 64

type subscriber struct {
	id uuid.UUID
	ch chan events.TypedEvent
}

// Bus is the broadcast channel: Publish fans an event out to every
// current subscriber without blocking on any of them.
type Bus struct {
	mu     sync.Mutex
	subs   map[uuid.UUID]*subscriber
	bufLen int
	logger logrus.FieldLogger
}

// New constructs a Bus whose subscriber channels are buffered to bufLen.
func New(bufLen int, logger logrus.FieldLogger) *Bus {
	if bufLen <= 0 {
		bufLen = DefaultSubscriberBuffer
	}
	return &Bus{subs: make(map[uuid.UUID]*subscriber), bufLen: bufLen, logger: logger}
}

// Subscribe registers a new subscriber and returns its channel plus an
// unsubscribe function.
func (b *Bus) Subscribe() (<-chan events.TypedEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := &subscriber{id: uuid.New(), ch: make(chan events.TypedEvent, b.bufLen)}
	b.subs[s.id] = s
	return s.ch, func() { b.unsubscribe(s.id) }
}

func (b *Bus) unsubscribe(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s, ok := b.subs[id]; ok {
		close(s.ch)
		delete(b.subs, id)
	}
}

// Publish implements events.Publisher: it fans event out to every
// subscriber without blocking. A full subscriber channel has its oldest
// queued event dropped to make room, and the drop is logged.
func (b *Bus) Publish(event events.TypedEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, s := range b.subs {
		select {
		case s.ch <- event:
		default:
			select {
			case <-s.ch:
				b.logger.WithFields(logrus.Fields{
					"subscriber": id.String(),
					"event_kind": event.Kind().String(),
				}).Warn("subscriber buffer full, oldest event dropped")
			default:
			}
			select {
			case s.ch <- event:
			default:
			}
		}
	}
}
