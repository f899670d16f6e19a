package diagnostics

import (
	"log"
	"sync"

	"combogrip/internal/ui/services/events"
)

// Service reports non-fatal configuration warnings, once per key
type Service struct {
	mu     sync.Mutex
	source string
	bus    events.EventBus
	warned map[Key]bool
}

// NewService creates a diagnostics service; source names the owning widget in log lines
func NewService(source string, bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		source: source,
		bus:    bus,
		warned: make(map[Key]bool),
	}
}

// Warn logs and publishes the diagnostic unless it was already reported.
// It returns true when this call reported it.
func (s *Service) Warn(key Key, message string) bool {
	s.mu.Lock()
	if s.warned[key] {
		s.mu.Unlock()
		return false
	}
	s.warned[key] = true
	s.mu.Unlock()

	log.Printf("%s: warning: %s", s.source, message)
	s.bus.Publish(DiagnosticEvent{Key: key, Source: s.source, Message: message})
	return true
}

// Warned reports whether key has fired
func (s *Service) Warned(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.warned[key]
}
