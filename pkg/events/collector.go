package events

import (
	"slices"
	"sync"
)

func NewCollector(handler Handler) *Collector {
	if handler == nil {
		handler = NewNoopHandler()
	}
	return &Collector{
		events:  make([]Event, 0),
		handler: handler,
	}
}

// Collector keeps every event it sees and forwards it to another handler.
type Collector struct {
	mu      sync.Mutex
	events  []Event
	handler Handler
}

func (c *Collector) Handle(event Event) {
	c.mu.Lock()
	c.events = append(c.events, event)
	c.mu.Unlock()

	c.handler.Handle(event)
}

func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.events)
}

func (c *Collector) OfType(t Type) []Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Event, 0)
	for _, event := range c.events {
		if event.Type == t {
			out = append(out, event)
		}
	}
	return out
}

func (c *Collector) HasType(t Type) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, event := range c.events {
		if event.Type == t {
			return true
		}
	}

	return false
}

func (c *Collector) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = make([]Event, 0)
}

func (c *Collector) Summary() *Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := new(Summary)

	for _, event := range c.events {
		switch event.Type {
		case Message:
			out.Steps = append(out.Steps, event.Step)
		case Error:
			out.ErrorCount++
			out.Errors = append(out.Errors, event)
		}
	}

	out.Full = slices.Clone(c.events)

	return out
}
