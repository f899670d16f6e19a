package toggle

import (
	"combogrip/internal/ui/services/events"
)

// Service is the open/close primitive behind the panel. Subscribers learn
// about transitions through OpenedEvent and ClosedEvent.
type Service struct {
	opened bool
	bus    events.EventBus
}

// NewService creates a closed toggle
func NewService(bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{bus: bus}
}

// Opened returns the current state
func (s *Service) Opened() bool {
	return s.opened
}

// Open opens the panel; it reports whether the state changed
func (s *Service) Open() bool {
	if s.opened {
		return false
	}
	s.opened = true
	s.bus.Publish(OpenedEvent{})
	return true
}

// Close closes the panel; it reports whether the state changed
func (s *Service) Close(reason Reason) bool {
	if !s.opened {
		return false
	}
	s.opened = false
	s.bus.Publish(ClosedEvent{Reason: reason})
	return true
}

// Toggle flips the state
func (s *Service) Toggle() {
	if s.opened {
		s.Close(ReasonToggle)
		return
	}
	s.Open()
}
