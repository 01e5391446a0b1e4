// Package event is a synchronous in-process event dispatcher. Services fire
// domain events after a successful write; listeners registered at boot
// react to them (metrics, logging).
package event

import (
	"context"
	"sync"
)

// Names of the domain events fired by the services.
const (
	UserRegistered = "user.registered"
	UserDeleted    = "user.deleted"
	StoreCreated   = "store.created"
	RatingCreated  = "rating.created"
	RatingUpdated  = "rating.updated"
)

// Event is one occurrence. Fields carries ids only, never credentials.
type Event struct {
	Name   string
	Fields map[string]any
}

// Handler receives an event.
type Handler func(ctx context.Context, e Event)

// Dispatcher fans events out to listeners.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	wildcard []Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]Handler)}
}

// Listen registers h for the named event.
func (d *Dispatcher) Listen(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = append(d.handlers[name], h)
}

// ListenAll registers h for every event.
func (d *Dispatcher) ListenAll(h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.wildcard = append(d.wildcard, h)
}

// Fire dispatches synchronously. A nil Dispatcher drops the event.
func (d *Dispatcher) Fire(ctx context.Context, name string, fields map[string]any) {
	if d == nil {
		return
	}
	d.mu.RLock()
	hs := make([]Handler, 0, len(d.handlers[name])+len(d.wildcard))
	hs = append(hs, d.handlers[name]...)
	hs = append(hs, d.wildcard...)
	d.mu.RUnlock()

	e := Event{Name: name, Fields: fields}
	for _, h := range hs {
		h(ctx, e)
	}
}
