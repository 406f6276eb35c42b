package events

import (
	"fmt"
	"sync"
)

// Broker records every event it handles and fans it out to subscribers.
// Subscribers that attach late receive the recorded backlog first, then a
// Subscribe event.
type Broker struct {
	mu      sync.Mutex
	history []Event
	subs    map[int]Handler
	nextID  int
}

func NewBroker(handlers ...Handler) *Broker {
	b := &Broker{subs: make(map[int]Handler)}
	for _, h := range handlers {
		if h != nil {
			b.Subscribe(h)
		}
	}
	return b
}

// Handle records event and delivers it to every subscriber in subscription order.
func (b *Broker) Handle(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.history = append(b.history, event)
	for id := 0; id < b.nextID; id++ {
		if h, ok := b.subs[id]; ok {
			h.Handle(event)
		}
	}
}

// Subscribe registers h and returns a function that removes it again.
func (b *Broker) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, event := range b.history {
		h.Handle(event)
	}
	h.Handle(Event{
		Type:    Subscribe,
		Message: fmt.Sprintf("subscribed after %d events", len(b.history)),
	})

	id := b.nextID
	b.nextID++
	b.subs[id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// History returns a copy of all events handled so far.
func (b *Broker) History() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Event, len(b.history))
	copy(out, b.history)
	return out
}
