package specials

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

// EventType names what happened to a special.
type EventType string

const (
	// EventNew is published the first time a special is seen.
	EventNew EventType = "new"

	// EventEnded is published when a previously seen special is no longer active.
	EventEnded EventType = "ended"
)

// Event is delivered to bus subscribers.
type Event struct {
	Type    EventType
	Special Special
}

// Handler receives published events. Handlers run synchronously on the
// publishing goroutine and must not call back into the bus.
type Handler func(Event)

type subscription struct {
	id string
	fn Handler
}

// Bus is an in-process publish/subscribe registry for special events.
// It is safe for concurrent use.
type Bus struct {
	mu   sync.RWMutex
	subs []subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns an id for [Bus.Unsubscribe].
func (b *Bus) Subscribe(fn Handler) string {
	id := uuid.NewString()
	b.mu.Lock()
	b.subs = append(b.subs, subscription{id: id, fn: fn})
	b.mu.Unlock()
	return id
}

// Unsubscribe removes the subscription with the given id and reports
// whether it existed.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := len(b.subs)
	b.subs = slices.DeleteFunc(b.subs, func(s subscription) bool { return s.id == id })
	return len(b.subs) != n
}

// Publish delivers e to every current subscriber in subscription order.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	subs := slices.Clone(b.subs)
	b.mu.RUnlock()
	for _, s := range subs {
		s.fn(e)
	}
}

// Len returns the number of subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
