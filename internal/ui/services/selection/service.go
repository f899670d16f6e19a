package selection

import (
	"log"

	"combogrip/internal/domain"
	"combogrip/internal/ui/binding"
	"combogrip/internal/ui/services/diagnostics"
	"combogrip/internal/ui/services/events"
	"combogrip/internal/ui/services/navigation"
	"combogrip/internal/ui/services/query"
	"combogrip/internal/ui/services/toggle"
)

// Options configures the controller
type Options[T any] struct {
	Value             binding.Source[T] // committed value owned by the host, may be nil
	Write             binding.Sink[T]   // write channel for commits, nil means unbound
	OpenPolicy        OpenPolicy
	CloseOnAutoSelect bool
}

// Service is the selection controller: it reconciles the committed value,
// the displayed text, the panel state and exact-match auto-selection.
type Service[T any] struct {
	state   State
	focused bool
	text    string
	writing bool // set while our own commit goes through the write channel

	bus    events.EventBus
	engine *query.Service[T]
	nav    *navigation.Service
	panel  *toggle.Service
	diag   *diagnostics.Service

	value       binding.Source[T]
	write       binding.Sink[T]
	openPolicy  OpenPolicy
	closeOnAuto bool
	unwatch     func()
}

// NewService wires the controller to the engine, tracker and toggle sharing bus
func NewService[T any](bus events.EventBus, engine *query.Service[T], nav *navigation.Service, panel *toggle.Service, diag *diagnostics.Service, opts Options[T]) *Service[T] {
	if diag == nil {
		diag = diagnostics.NewService("SelectionController", bus)
	}
	if opts.OpenPolicy == "" {
		opts.OpenPolicy = OpenLazy
	}

	s := &Service[T]{
		state:       StateClosed,
		bus:         bus,
		engine:      engine,
		nav:         nav,
		panel:       panel,
		diag:        diag,
		value:       opts.Value,
		write:       opts.Write,
		openPolicy:  opts.OpenPolicy,
		closeOnAuto: opts.CloseOnAutoSelect,
	}

	if s.write == nil {
		diag.Warn(diagnostics.KeyUnboundValue,
			"no write channel for the selected value; the combobox keeps its selection locally")
		local := binding.NewValue[T]()
		if s.value != nil {
			if v, ok := s.value.Get(); ok {
				local.Set(v)
			}
			s.value.Watch(func(v T, ok bool) {
				if ok {
					local.Set(v)
				} else {
					local.Clear()
				}
			})
		}
		s.value = local
		s.write = local.Writer()
	} else if s.value == nil {
		// Write-only binding: mirror commits locally so the text can be restored
		local := binding.NewValue[T]()
		write := s.write
		s.value = local
		s.write = func(v T) {
			write(v)
			local.Set(v)
		}
	}

	s.text = s.committedText()
	s.unwatch = s.value.Watch(func(T, bool) { s.onValueChanged() })

	events.On(bus, s.onComputed)
	events.On(bus, s.onRendered)
	events.On(bus, s.onOpened)
	events.On(bus, s.onClosed)
	return s
}

// State returns the current state
func (s *Service[T]) State() State {
	return s.state
}

// Text returns the text the input should display
func (s *Service[T]) Text() string {
	return s.text
}

// Focused reports whether the input holds focus
func (s *Service[T]) Focused() bool {
	return s.focused
}

// Committed returns the current committed value
func (s *Service[T]) Committed() (T, bool) {
	return s.value.Get()
}

// Focus is called when the input gains focus
func (s *Service[T]) Focus() {
	if s.focused {
		return
	}
	s.focused = true
	if s.openPolicy == OpenEager {
		s.panel.Open()
	}
}

// Blur is called when the input loses focus; an open panel closes without commit
func (s *Service[T]) Blur() {
	if !s.focused {
		return
	}
	s.focused = false
	s.panel.Close(toggle.ReasonBlur)
}

// Input feeds typed text. The panel opens only while the input holds focus.
func (s *Service[T]) Input(text string) {
	if text == s.text {
		return
	}
	s.text = text
	s.engine.UpdateQuery(text)
	if !s.focused {
		return
	}
	if s.state == StateOpenAutoSelected {
		s.setState(StateOpenBrowsing)
	}
	s.panel.Open()
}

// Dismiss closes the panel without committing (Escape, Tab)
func (s *Service[T]) Dismiss(reason toggle.Reason) {
	s.panel.Close(reason)
}

// Commit finalizes v: it is written to the binding, the query is cleared
// and the panel closes.
func (s *Service[T]) Commit(v T) {
	s.commit(v, false)
	s.panel.Close(toggle.ReasonCommit)
}

// CommitActive commits the active row of the displayed list, if any
func (s *Service[T]) CommitActive() bool {
	index, ok := s.nav.Active()
	if !ok {
		return false
	}
	return s.CommitRow(index)
}

// CommitRow commits row index of the displayed list
func (s *Service[T]) CommitRow(index int) bool {
	list, ok := s.engine.Rendered()
	if !ok {
		return false
	}
	v, ok := list.At(index)
	if !ok {
		return false
	}
	s.Commit(v)
	return true
}

// ListActive reports whether list navigation applies: the panel is open and
// the current result is a list
func (s *Service[T]) ListActive() bool {
	if !s.panel.Opened() {
		return false
	}
	if _, ok := domain.AsItemList[T](s.engine.Computed()); !ok {
		return false
	}
	_, ok := s.engine.Rendered()
	return ok
}

// Close detaches from the committed value
func (s *Service[T]) Close() {
	if s.unwatch != nil {
		s.unwatch()
		s.unwatch = nil
	}
}

// Event handlers

func (s *Service[T]) onComputed(e query.ResultComputedEvent[T]) {
	match, ok := domain.AsExactMatch[T](e.Result)
	if !ok {
		return
	}
	if e.Query != s.text {
		// Newer input is still debouncing; its own result decides
		log.Printf("SelectionController: ignoring exact match for stale query %q", e.Query)
		return
	}
	log.Printf("SelectionController: auto-selected exact match for %q", e.Query)
	s.commit(match.Item, true)
	if s.closeOnAuto {
		s.panel.Close(toggle.ReasonAutoSelect)
		return
	}
	if s.panel.Opened() {
		s.setState(StateOpenAutoSelected)
	}
}

func (s *Service[T]) onRendered(e query.ResultRenderedEvent[T]) {
	if s.panel.Opened() {
		s.showList(e.List)
	}
}

func (s *Service[T]) onOpened(toggle.OpenedEvent) {
	s.setState(StateOpenBrowsing)
	if list, ok := s.engine.Rendered(); ok {
		s.showList(list)
	}
}

func (s *Service[T]) onClosed(e toggle.ClosedEvent) {
	s.nav.Clear()
	s.setState(StateClosed)
	if !e.Reason.Committed() {
		s.engine.ResetQuery()
		s.setText(s.committedText())
	}
}

// External writes are authoritative: pending input is dropped, an open panel
// closes and the text re-formats to the new value. The written text is never
// fed to the query.
func (s *Service[T]) onValueChanged() {
	if s.writing {
		return
	}
	if s.panel.Opened() {
		s.panel.Close(toggle.ReasonExternal)
		return
	}
	s.engine.ResetQuery()
	s.setText(s.committedText())
}

// Helper methods

func (s *Service[T]) showList(list domain.ItemList[T]) {
	keys := make([]string, len(list.Items))
	for i, item := range list.Items {
		keys[i] = s.engine.Format(item.Value)
	}
	s.nav.SetList(keys)
}

func (s *Service[T]) commit(v T, auto bool) {
	s.engine.ResetQuery()
	s.writing = true
	s.write(v)
	s.writing = false
	s.setText(s.engine.Format(v))
	s.bus.Publish(CommittedEvent[T]{Value: v, Auto: auto})
}

func (s *Service[T]) committedText() string {
	v, ok := s.value.Get()
	if !ok {
		return ""
	}
	return s.engine.Format(v)
}

func (s *Service[T]) setText(text string) {
	if text == s.text {
		return
	}
	s.text = text
	s.bus.Publish(TextChangedEvent{Text: text})
}

func (s *Service[T]) setState(to State) {
	if s.state == to {
		return
	}
	from := s.state
	s.state = to
	s.bus.Publish(StateChangedEvent{From: from, To: to})
}
