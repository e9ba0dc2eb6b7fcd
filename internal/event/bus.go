package event

import (
	"drive-demo/internal/logger"
)

type HandlerFunc func(evt any)

// Bus is a synchronous topic dispatcher. Everything runs on the frame thread, so handlers
// are called inline in subscription order and there is no locking.
type Bus struct {
	log      *logger.Logger
	nextID   uint64
	handlers map[string][]entry
}

type entry struct {
	id uint64
	fn HandlerFunc
}

// Subscription identifies one handler. Release removes it; releasing twice is a no-op.
type Subscription struct {
	bus   *Bus
	topic string
	id    uint64
}

// NewBus returns an empty bus. log may be nil; it only receives handler panics.
func NewBus(log *logger.Logger) *Bus {
	return &Bus{
		log:      log,
		handlers: make(map[string][]entry),
	}
}

func (b *Bus) Subscribe(topic string, fn HandlerFunc) *Subscription {
	b.nextID++
	b.handlers[topic] = append(b.handlers[topic], entry{id: b.nextID, fn: fn})
	return &Subscription{bus: b, topic: topic, id: b.nextID}
}

// Publish calls every handler of topic with evt. A panicking handler is logged and skipped.
func (b *Bus) Publish(topic string, evt any) {
	hs := b.handlers[topic]
	if len(hs) == 0 {
		return
	}
	snapshot := make([]entry, len(hs))
	copy(snapshot, hs)
	for _, h := range snapshot {
		b.call(topic, h.fn, evt)
	}
}

func (b *Bus) call(topic string, fn HandlerFunc, evt any) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Logf("event handler for %s panicked: %v", topic, r)
		}
	}()
	fn(evt)
}

// Count reports how many handlers are subscribed to topic.
func (b *Bus) Count(topic string) int {
	return len(b.handlers[topic])
}

func (s *Subscription) Release() {
	if s == nil || s.bus == nil {
		return
	}
	hs := s.bus.handlers[s.topic]
	for i, h := range hs {
		if h.id == s.id {
			s.bus.handlers[s.topic] = append(hs[:i:i], hs[i+1:]...)
			break
		}
	}
	if len(s.bus.handlers[s.topic]) == 0 {
		delete(s.bus.handlers, s.topic)
	}
	s.bus = nil
}
