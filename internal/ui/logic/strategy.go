package logic

import (
	"iter"
	"strings"

	"combogrip/internal/domain"
)

// DefaultMaximumDisplayedItems caps result lists when no limit is configured
const DefaultMaximumDisplayedItems = 20

// Strategy decides between auto-selecting an exact match and offering a list
type Strategy string

const (
	StrategyManual Strategy = "manual"
	StrategyAuto   Strategy = "auto"
)

// ParseStrategy maps a config string to a Strategy, falling back to manual
func ParseStrategy(s string) (Strategy, bool) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyManual, "":
		return StrategyManual, true
	case StrategyAuto:
		return StrategyAuto, true
	default:
		return StrategyManual, false
	}
}

// Select builds the QueryResult for an already filtered sequence.
//
// Manual mode always returns an ItemList. Auto mode returns an ExactMatch
// when exactly one filtered candidate formats, case-insensitively, to the
// non-empty query; otherwise it returns the same ItemList as manual mode.
// Auto mode has to see every filtered candidate to know the match is unique,
// manual mode stops after limit+1.
func Select[T any](s Strategy, query string, filtered iter.Seq[T], format Formatter[T], limit int) domain.QueryResult[T] {
	if limit <= 0 {
		limit = DefaultMaximumDisplayedItems
	}
	if s != StrategyAuto || query == "" {
		values, truncated := Take(filtered, limit)
		return domain.NewItemList(query, values, truncated)
	}

	format = format.OrDefault()
	var (
		values    = make([]T, 0, min(limit, 64))
		truncated bool
		exact     T
		exacts    int
	)
	for v := range filtered {
		if text := format(v); text != "" && strings.EqualFold(text, query) {
			exact = v
			exacts++
		}
		if len(values) < limit {
			values = append(values, v)
		} else {
			truncated = true
		}
	}
	if exacts == 1 {
		return domain.ExactMatch[T]{Item: exact}
	}
	return domain.NewItemList(query, values, truncated)
}
