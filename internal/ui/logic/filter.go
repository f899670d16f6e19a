package logic

import (
	"iter"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"
)

// Filter narrows candidates to those matching query. Both the input and the
// output are single-pass lazy sequences; implementations must stop pulling
// candidates as soon as the consumer stops.
type Filter[T any] func(candidates iter.Seq[T], query string) iter.Seq[T]

// FilterKind names a built-in text matcher
type FilterKind string

const (
	FilterSubstring FilterKind = "substring"
	FilterFuzzy     FilterKind = "fuzzy"
	FilterRanked    FilterKind = "ranked"
)

// ParseFilterKind maps a config string to a FilterKind, falling back to substring
func ParseFilterKind(s string) (FilterKind, bool) {
	switch FilterKind(strings.ToLower(strings.TrimSpace(s))) {
	case FilterSubstring, "":
		return FilterSubstring, true
	case FilterFuzzy:
		return FilterFuzzy, true
	case FilterRanked:
		return FilterRanked, true
	default:
		return FilterSubstring, false
	}
}

// FilterBy selects the filter: a full filter function, or a single-field
// selector matched with Kind. Func wins over Field.
type FilterBy[T any] struct {
	Func  Filter[T]
	Field func(T) string
	Kind  FilterKind
}

// Resolve returns the effective filter. warn is true when the default
// formatter-based filter is used on candidates the caller did not declare
// textual.
func (b FilterBy[T]) Resolve(format Formatter[T], textual bool) (f Filter[T], warn bool) {
	if b.Func != nil {
		return b.Func, false
	}
	if b.Field != nil {
		return Build(b.Kind, b.Field), false
	}
	return Build[T](b.Kind, format.OrDefault()), !textual
}

// Build returns the built-in filter of the given kind over text(item)
func Build[T any](kind FilterKind, text func(T) string) Filter[T] {
	switch kind {
	case FilterFuzzy:
		return Fuzzy(text)
	case FilterRanked:
		return Ranked(text)
	default:
		return Substring(text)
	}
}

// Substring keeps candidates whose text contains query, ignoring case.
// An empty query keeps everything.
func Substring[T any](text func(T) string) Filter[T] {
	return Match(text, func(candidate, query string) bool {
		return strings.Contains(strings.ToLower(candidate), query)
	}, strings.ToLower)
}

// Fuzzy keeps candidates containing the query runes in order, ignoring case
func Fuzzy[T any](text func(T) string) Filter[T] {
	return Match(text, func(candidate, query string) bool {
		return lfuzzy.MatchFold(query, candidate)
	}, nil)
}

// Match builds a lazy filter from a per-candidate predicate. prepare, when
// set, normalises the query once per evaluation.
func Match[T any](text func(T) string, matches func(candidate, query string) bool, prepare func(string) string) Filter[T] {
	return func(candidates iter.Seq[T], query string) iter.Seq[T] {
		if prepare != nil {
			query = prepare(query)
		}
		return func(yield func(T) bool) {
			for c := range candidates {
				if matches(text(c), query) && !yield(c) {
					return
				}
			}
		}
	}
}

// rankedSource adapts collected candidates to sahilm/fuzzy
type rankedSource[T any] struct {
	items []T
	text  func(T) string
}

func (s rankedSource[T]) String(i int) string { return s.text(s.items[i]) }
func (s rankedSource[T]) Len() int            { return len(s.items) }

// Ranked orders fuzzy matches by score, best first. Scoring needs every
// candidate, so this filter drains its input before yielding; only the output
// stays lazy. An empty query keeps the input order.
func Ranked[T any](text func(T) string) Filter[T] {
	return func(candidates iter.Seq[T], query string) iter.Seq[T] {
		return func(yield func(T) bool) {
			if query == "" {
				for c := range candidates {
					if !yield(c) {
						return
					}
				}
				return
			}

			src := rankedSource[T]{text: text}
			for c := range candidates {
				src.items = append(src.items, c)
			}
			for _, m := range fuzzy.FindFrom(query, src) {
				if !yield(src.items[m.Index]) {
					return
				}
			}
		}
	}
}

// Take pulls at most limit values from seq and reports whether at least one
// more value was available.
func Take[T any](seq iter.Seq[T], limit int) (values []T, truncated bool) {
	if limit < 0 {
		limit = 0
	}
	values = make([]T, 0, min(limit, 64))
	for v := range seq {
		if len(values) == limit {
			truncated = true
			break
		}
		values = append(values, v)
	}
	return values, truncated
}
