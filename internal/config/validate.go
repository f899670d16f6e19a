package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	filters      = []string{"substring", "fuzzy", "ranked"}
	filterFields = []string{"label", "detail", "source"}
	strategies   = []string{"manual", "auto"}
	openPolicies = []string{"lazy", "eager"}
	indexPolicy  = []string{"reset", "preserve"}
	layouts      = []string{"top", "bottom"}
)

// Validate normalizes the configuration in place. Unknown values fall back
// to their defaults and are reported together.
func (c *Config) Validate() error {
	def := DefaultConfig()
	var errs []error

	choice := func(name string, value *string, allowed []string, fallback string) {
		v := strings.ToLower(strings.TrimSpace(*value))
		if v == "" {
			*value = fallback
			return
		}
		if !slices.Contains(allowed, v) {
			errs = append(errs, fmt.Errorf("%s: unknown value %q, using %q", name, *value, fallback))
			v = fallback
		}
		*value = v
	}
	positive := func(name string, value *int, fallback int) {
		if *value <= 0 {
			if *value < 0 {
				errs = append(errs, fmt.Errorf("%s: must not be negative, using %d", name, fallback))
			}
			*value = fallback
		}
	}

	cb := &c.Combobox
	choice("combobox.filter", &cb.Filter, filters, def.Combobox.Filter)
	choice("combobox.filter_by", &cb.FilterBy, filterFields, def.Combobox.FilterBy)
	choice("combobox.selection_strategy", &cb.SelectionStrategy, strategies, def.Combobox.SelectionStrategy)
	choice("combobox.open_dropdown", &cb.OpenDropdown, openPolicies, def.Combobox.OpenDropdown)
	choice("combobox.active_index_policy", &cb.ActiveIndexPolicy, indexPolicy, def.Combobox.ActiveIndexPolicy)
	positive("combobox.maximum_displayed_items", &cb.MaximumDisplayedItems, def.Combobox.MaximumDisplayedItems)

	// Zero debounce is allowed
	if cb.InputDebounceMillis < 0 {
		errs = append(errs, fmt.Errorf("combobox.input_debounce_millis: must not be negative, using 0"))
		cb.InputDebounceMillis = 0
	}
	if cb.RenderDebounceMillis < 0 {
		errs = append(errs, fmt.Errorf("combobox.render_debounce_millis: must not be negative, using 0"))
		cb.RenderDebounceMillis = 0
	}

	positive("sources.max_depth", &c.Sources.MaxDepth, def.Sources.MaxDepth)
	positive("ui.panel_height", &c.UI.PanelHeight, def.UI.PanelHeight)
	choice("ui.layout", &c.UI.Layout, layouts, def.UI.Layout)

	return errors.Join(errs...)
}
