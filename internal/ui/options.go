package ui

import (
	"log"
	"time"

	"github.com/benbjohnson/clock"

	"combogrip/internal/config"
	"combogrip/internal/domain"
	"combogrip/internal/ui/binding"
	"combogrip/internal/ui/combobox"
	"combogrip/internal/ui/logic"
	"combogrip/internal/ui/services/navigation"
	"combogrip/internal/ui/services/query"
	"combogrip/internal/ui/services/selection"
)

// FieldSelector maps a filter_by setting to the candidate field matched
// against the query
func FieldSelector(name string) (func(domain.Candidate) string, bool) {
	switch name {
	case "", "label":
		return func(c domain.Candidate) string { return c.Label }, true
	case "detail":
		return func(c domain.Candidate) string { return c.Detail }, true
	case "source":
		return func(c domain.Candidate) string { return c.Source }, true
	}
	return nil, false
}

// QueryOptions translates the [combobox] settings into engine options
func QueryOptions(cfg *config.Config) query.Options[domain.Candidate] {
	cb := cfg.Combobox
	opts := query.DefaultOptions[domain.Candidate]()
	opts.Format = func(c domain.Candidate) string { return c.Label }
	opts.Textual = true

	kind, ok := logic.ParseFilterKind(cb.Filter)
	if !ok {
		log.Printf("Config: unknown filter %q, using %s", cb.Filter, kind)
	}
	field, ok := FieldSelector(cb.FilterBy)
	if !ok {
		log.Printf("Config: unknown filter_by %q, using label", cb.FilterBy)
		field, _ = FieldSelector("label")
	}
	opts.FilterBy = logic.FilterBy[domain.Candidate]{Field: field, Kind: kind}

	strategy, ok := logic.ParseStrategy(cb.SelectionStrategy)
	if !ok {
		log.Printf("Config: unknown selection_strategy %q, using %s", cb.SelectionStrategy, strategy)
	}
	opts.Strategy = strategy
	opts.MaximumDisplayedItems = cb.MaximumDisplayedItems
	opts.InputDebounce = time.Duration(max(cb.InputDebounceMillis, 0)) * time.Millisecond
	opts.RenderDebounce = time.Duration(max(cb.RenderDebounceMillis, 0)) * time.Millisecond
	return opts
}

// ComboboxConfig builds the candidate picker's widget configuration. value
// is the host-owned committed value; commits are written back to it.
func ComboboxConfig(cfg *config.Config, value *binding.Value[domain.Candidate], clk clock.Clock) combobox.Config[domain.Candidate] {
	cb := cfg.Combobox

	openPolicy, _ := selection.ParseOpenPolicy(cb.OpenDropdown)
	indexPolicy, _ := navigation.ParsePolicy(cb.ActiveIndexPolicy)

	return combobox.Config[domain.Candidate]{
		ID:          "candidates",
		Placeholder: "type to filter",
		Detail:      func(c domain.Candidate) string { return c.Detail },
		Kind:        func(c domain.Candidate) string { return string(c.Kind) },
		Query:       QueryOptions(cfg),
		Selection: selection.Options[domain.Candidate]{
			Value:             value,
			Write:             value.Writer(),
			OpenPolicy:        openPolicy,
			CloseOnAutoSelect: cb.CloseOnAutoSelect,
		},
		ActiveIndex: indexPolicy,
		PanelHeight: cfg.UI.PanelHeight,
		Clock:       clk,
	}
}
