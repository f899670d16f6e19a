package query

import (
	"context"
	"sync"
	"time"
)

// Debouncer coalesces pushed values until window has passed without a new
// push. It holds no timer: the owner asks for Deadline and calls Flush when
// its clock reaches it, which keeps the stage testable with a virtual clock.
type Debouncer[V any] struct {
	window   time.Duration
	pending  bool
	value    V
	deadline time.Time
}

// NewDebouncer creates a debouncer; negative windows are treated as zero
func NewDebouncer[V any](window time.Duration) *Debouncer[V] {
	if window < 0 {
		window = 0
	}
	return &Debouncer[V]{window: window}
}

// Window returns the debounce window
func (d *Debouncer[V]) Window() time.Duration {
	return d.window
}

// Push replaces the pending value and restarts the window
func (d *Debouncer[V]) Push(v V, now time.Time) {
	d.value = v
	d.pending = true
	d.deadline = now.Add(d.window)
}

// Flush returns the pending value once now has reached the deadline
func (d *Debouncer[V]) Flush(now time.Time) (V, bool) {
	var zero V
	if !d.pending || now.Before(d.deadline) {
		return zero, false
	}
	v := d.value
	d.value = zero
	d.pending = false
	return v, true
}

// Deadline reports when the pending value becomes due
func (d *Debouncer[V]) Deadline() (time.Time, bool) {
	return d.deadline, d.pending
}

// Pending reports whether a value is waiting
func (d *Debouncer[V]) Pending() bool {
	return d.pending
}

// Cancel drops the pending value
func (d *Debouncer[V]) Cancel() {
	var zero V
	d.value = zero
	d.pending = false
}

// Supersede hands out increasing sequence numbers, each with its own
// context. Issuing a new one cancels the previous context, and only the
// newest issued sequence can be accepted, so completions are observed in
// non-decreasing recency.
type Supersede struct {
	mu       sync.Mutex
	issued   uint64
	accepted uint64
	cancel   context.CancelFunc
}

// Next cancels the in-flight computation and starts a new one
func (s *Supersede) Next(parent context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.issued++
	return ctx, s.issued
}

// Accept reports whether a completion for seq may be published
func (s *Supersede) Accept(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.issued || seq <= s.accepted {
		return false
	}
	s.accepted = seq
	return true
}

// Latest returns the newest issued sequence number
func (s *Supersede) Latest() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issued
}

// Stop cancels the in-flight computation
func (s *Supersede) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
