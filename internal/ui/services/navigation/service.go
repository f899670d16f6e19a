package navigation

import (
	"combogrip/internal/ui/services/events"
)

// Service tracks the active (highlighted, not committed) row of the
// displayed list
type Service struct {
	state    *State
	bus      events.EventBus
	policy   Policy
	scrollFn func(index int) // scroll-into-view collaborator
}

// NewService creates a new navigation service
func NewService(bus events.EventBus, policy Policy) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	if policy == "" {
		policy = PolicyReset
	}
	return &Service{
		state:  &State{Active: None},
		bus:    bus,
		policy: policy,
	}
}

// SetScrollFunction sets the function called when a row becomes active
func (s *Service) SetScrollFunction(fn func(index int)) {
	s.scrollFn = fn
}

// Active returns the active row, if any
func (s *Service) Active() (int, bool) {
	return s.state.Active, s.state.Active != None
}

// Count returns the number of rows in the displayed list
func (s *Service) Count() int {
	return len(s.state.Keys)
}

// Policy returns the list replacement policy
func (s *Service) Policy() Policy {
	return s.policy
}

// SetList is called when a new list is displayed. keys are the formatted rows.
func (s *Service) SetList(keys []string) {
	previous := ""
	if s.state.Active != None {
		previous = s.state.Keys[s.state.Active]
	}
	s.state.Keys = append([]string(nil), keys...)

	next := None
	if s.policy == PolicyPreserve && previous != "" {
		for i, key := range s.state.Keys {
			if key == previous {
				next = i
				break
			}
		}
	}
	s.moveTo(next)
}

// Clear drops the active row and the displayed list, as when the panel closes
func (s *Service) Clear() {
	s.state.Keys = nil
	s.moveTo(None)
}

// Navigate handles a keyboard move. It reports whether the active row changed.
func (s *Service) Navigate(direction Direction) bool {
	last := len(s.state.Keys) - 1
	if last < 0 {
		return false
	}

	target := s.state.Active
	switch direction {
	case DirectionHome:
		target = 0
	case DirectionEnd:
		target = last
	case DirectionUp:
		target = max(s.state.Active-1, 0)
	case DirectionDown:
		target = min(s.state.Active+1, last)
	}
	return s.moveTo(target)
}

// Hover activates the row under the pointer
func (s *Service) Hover(index int) bool {
	if index < 0 || index >= len(s.state.Keys) {
		return false
	}
	return s.moveTo(index)
}

// Helper methods
func (s *Service) moveTo(index int) bool {
	old := s.state.Active
	if old == index {
		return false
	}
	s.state.Active = index
	if index != None && s.scrollFn != nil {
		s.scrollFn(index)
	}
	s.bus.Publish(ActiveChangedEvent{OldIndex: old, NewIndex: index})
	return true
}
