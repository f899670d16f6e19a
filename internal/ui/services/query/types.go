package query

import (
	"time"

	"combogrip/internal/domain"
	"combogrip/internal/ui/logic"
)

// Default debounce windows
const (
	DefaultInputDebounce  = 50 * time.Millisecond
	DefaultRenderDebounce = 50 * time.Millisecond
)

// State is the engine's internal state: the full candidate set and the
// query currently applied to it
type State[T any] struct {
	Items []T
	Query string
}

// Options configures the engine
type Options[T any] struct {
	Format                logic.Formatter[T]
	FilterBy              logic.FilterBy[T]
	Textual               bool // candidates are text; the default filter over Format is intended
	Strategy              logic.Strategy
	MaximumDisplayedItems int
	InputDebounce         time.Duration
	RenderDebounce        time.Duration
}

// DefaultOptions returns the documented defaults
func DefaultOptions[T any]() Options[T] {
	return Options[T]{
		Format:                logic.DefaultFormat[T],
		Strategy:              logic.StrategyManual,
		MaximumDisplayedItems: logic.DefaultMaximumDisplayedItems,
		InputDebounce:         DefaultInputDebounce,
		RenderDebounce:        DefaultRenderDebounce,
	}
}

// Event types

// QueryChangedEvent is published when a debounced query was applied to the state
type QueryChangedEvent struct {
	Query string
}

// ItemsReplacedEvent is published when the candidate set was replaced
type ItemsReplacedEvent struct {
	Count int
}

// ResultComputedEvent is published for every accepted (non-stale) result,
// before the render debounce
type ResultComputedEvent[T any] struct {
	Seq    uint64
	Query  string
	Result domain.QueryResult[T]
}

// ResultRenderedEvent is published when a list passes the render debounce
type ResultRenderedEvent[T any] struct {
	List domain.ItemList[T]
}
