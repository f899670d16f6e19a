package logic

import "fmt"

// Formatter maps a candidate to its canonical display text
type Formatter[T any] func(T) string

// DefaultFormat renders a value with fmt, which honours fmt.Stringer
func DefaultFormat[T any](v T) string {
	return fmt.Sprint(v)
}

// OrDefault returns f, or DefaultFormat when f is nil
func (f Formatter[T]) OrDefault() Formatter[T] {
	if f == nil {
		return DefaultFormat[T]
	}
	return f
}
