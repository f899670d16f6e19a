// Package binding provides the two-way value binding between a combobox and
// its owner: the owner holds the committed value, the widget reads and
// watches it and proposes commits through a write channel.
package binding

import "sync"

// Source is the readable side of a binding
type Source[T any] interface {
	Get() (T, bool)
	Watch(fn func(v T, ok bool)) (unwatch func())
}

// Sink is the write channel commits are pushed into
type Sink[T any] func(T)

// Value is an observable, optionally empty value
type Value[T any] struct {
	mu       sync.Mutex
	value    T
	ok       bool
	nextID   int
	watchers map[int]func(T, bool)
	order    []int
}

// NewValue creates an empty value
func NewValue[T any]() *Value[T] {
	return &Value[T]{watchers: make(map[int]func(T, bool))}
}

// Of creates a value holding v
func Of[T any](v T) *Value[T] {
	val := NewValue[T]()
	val.value, val.ok = v, true
	return val
}

// Get returns the current value
func (v *Value[T]) Get() (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value, v.ok
}

// Set stores x and notifies watchers
func (v *Value[T]) Set(x T) {
	v.store(x, true)
}

// Clear empties the value and notifies watchers
func (v *Value[T]) Clear() {
	var zero T
	v.store(zero, false)
}

// Writer returns the write channel for this value
func (v *Value[T]) Writer() Sink[T] {
	return v.Set
}

// Watch registers fn for every later change
func (v *Value[T]) Watch(fn func(T, bool)) func() {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextID
	v.nextID++
	v.watchers[id] = fn
	v.order = append(v.order, id)
	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.watchers, id)
	}
}

func (v *Value[T]) store(x T, ok bool) {
	v.mu.Lock()
	v.value, v.ok = x, ok
	fns := make([]func(T, bool), 0, len(v.watchers))
	live := v.order[:0]
	for _, id := range v.order {
		if fn, found := v.watchers[id]; found {
			fns = append(fns, fn)
			live = append(live, id)
		}
	}
	v.order = live
	v.mu.Unlock()

	for _, fn := range fns {
		fn(x, ok)
	}
}
