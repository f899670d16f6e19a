package events

import (
	"fmt"
	"sync"
)

// Bus is a synchronous event bus connecting the combobox services.
// Handlers run on the publishing goroutine, in subscription order, so a
// publish completes only after every downstream stage has reacted.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]func(interface{})
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]func(interface{})),
	}
}

// Subscribe registers a listener for an event type
func (b *Bus) Subscribe(eventType string, handler func(interface{})) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[eventType] = append(b.listeners[eventType], handler)
}

// Publish sends an event to all listeners
func (b *Bus) Publish(event interface{}) {
	b.mu.RLock()
	handlers := append([]func(interface{}){}, b.listeners[TypeOf(event)]...)
	b.mu.RUnlock()

	// Lock released: handlers may publish follow-up events
	for _, handler := range handlers {
		handler(event)
	}
}

// TypeOf returns the subscription key of an event
func TypeOf(event interface{}) string {
	return fmt.Sprintf("%T", event)
}

// On subscribes a typed handler, keyed by the static type E
func On[E any](bus EventBus, handler func(E)) {
	var zero E
	bus.Subscribe(TypeOf(zero), func(e interface{}) {
		if typed, ok := e.(E); ok {
			handler(typed)
		}
	})
}
