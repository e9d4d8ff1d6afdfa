package router

import (
	"sync"
	"time"
)

// Event is a routing diagnostic: a name, the model involved and optional fields.
type Event struct {
	Name    string
	ModelID string
	At      time.Time
	Fields  map[string]any
}

// EventRouteExhausted is published when no candidate was healthy and the last one was returned.
const EventRouteExhausted = "route_exhausted"

// EventPublisher receives router events. Publish must be cheap and must not panic.
type EventPublisher interface {
	Publish(Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}

// MemoryPublisher keeps events in memory; used by tests and the status endpoint.
// With a positive limit only the most recent events are kept.
type MemoryPublisher struct {
	mu     sync.Mutex
	limit  int
	events []Event
}

func NewMemoryPublisher() *MemoryPublisher { return &MemoryPublisher{} }

// NewRecentPublisher keeps at most limit events.
func NewRecentPublisher(limit int) *MemoryPublisher { return &MemoryPublisher{limit: limit} }

func (p *MemoryPublisher) Publish(e Event) {
	p.mu.Lock()
	p.events = append(p.events, e)
	if p.limit > 0 && len(p.events) > p.limit {
		p.events = append(p.events[:0], p.events[len(p.events)-p.limit:]...)
	}
	p.mu.Unlock()
}

func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

// Fanout publishes every event to each non-nil publisher in order.
type Fanout []EventPublisher

func (f Fanout) Publish(e Event) {
	for _, p := range f {
		if p != nil {
			p.Publish(e)
		}
	}
}
