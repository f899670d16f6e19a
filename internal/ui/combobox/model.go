// Package combobox assembles the query engine, active row tracker,
// selection controller and keyboard router into a bubbletea component.
package combobox

import (
	"slices"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"

	"combogrip/internal/domain"
	"combogrip/internal/ui/input"
	"combogrip/internal/ui/input/modes"
	"combogrip/internal/ui/input/types"
	"combogrip/internal/ui/services/diagnostics"
	"combogrip/internal/ui/services/events"
	"combogrip/internal/ui/services/navigation"
	"combogrip/internal/ui/services/query"
	"combogrip/internal/ui/services/selection"
	"combogrip/internal/ui/services/toggle"
	"combogrip/internal/ui/views"
)

// DefaultPanelHeight is the number of rows shown before scrolling
const DefaultPanelHeight = 10

// Config configures a combobox
type Config[T any] struct {
	ID          string
	Placeholder string
	Detail      func(T) string // secondary text shown after the label
	Kind        func(T) string // source tag used for coloring
	Query       query.Options[T]
	Selection   selection.Options[T]
	ActiveIndex navigation.Policy
	PanelHeight int
	Clock       clock.Clock
	// Inline runs recomputations on the update goroutine and skips the
	// debounce timers
	Inline bool
}

// Model is a combobox. It is used through a pointer and is not a tea.Model
// itself: the host forwards messages to Update and draws View.
type Model[T any] struct {
	id     string
	clock  clock.Clock
	bus    *events.Bus
	diag   *diagnostics.Service
	engine *query.Service[T]
	nav    *navigation.Service
	panel  *toggle.Service
	sel    *selection.Service[T]
	input  *input.Handler

	detail   func(T) string
	kind     func(T) string
	viewport *views.Viewport
	renderer *views.PanelRenderer
	styles   *views.Styles

	inline    bool
	panelRows int
	width     int
	anchorY   int
	screenH   int
	tickAt    time.Time
	outbox    []tea.Cmd
}

// New builds a combobox
func New[T any](cfg Config[T]) *Model[T] {
	if cfg.ID == "" {
		cfg.ID = "combobox"
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.PanelHeight <= 0 {
		cfg.PanelHeight = DefaultPanelHeight
	}

	m := &Model[T]{
		id:        cfg.ID,
		clock:     cfg.Clock,
		bus:       events.NewBus(),
		detail:    cfg.Detail,
		kind:      cfg.Kind,
		viewport:  views.NewViewport(cfg.PanelHeight),
		styles:    views.NewStyles(),
		inline:    cfg.Inline,
		panelRows: cfg.PanelHeight,
		input:     input.New(cfg.Placeholder),
	}
	m.renderer = views.NewPanelRenderer(m.styles)

	// Diagnostics raised while wiring are delivered with Init
	events.On(m.bus, func(e diagnostics.DiagnosticEvent) {
		m.outbox = append(m.outbox, emit(DiagnosticMsg{ID: m.id, Message: e.Message}))
	})

	m.diag = diagnostics.NewService(m.id, m.bus)
	m.engine = query.NewService(m.bus, m.clock, m.diag, cfg.Query)
	m.nav = navigation.NewService(m.bus, cfg.ActiveIndex)
	m.nav.SetScrollFunction(func(index int) { m.viewport.EnsureVisible(index) })
	m.panel = toggle.NewService(m.bus)
	m.sel = selection.NewService(m.bus, m.engine, m.nav, m.panel, m.diag, cfg.Selection)
	m.input.SetText(m.sel.Text())

	events.On(m.bus, func(e selection.TextChangedEvent) { m.input.SetText(e.Text) })
	events.On(m.bus, func(e selection.CommittedEvent[T]) {
		m.outbox = append(m.outbox, emit(CommittedMsg[T]{ID: m.id, Value: e.Value, Auto: e.Auto}))
	})
	events.On(m.bus, func(e query.ResultRenderedEvent[T]) {
		if _, active := m.nav.Active(); !active {
			m.viewport.Reset()
		}
		m.viewport.Clamp(len(e.List.Items))
	})
	events.On(m.bus, func(toggle.ClosedEvent) { m.viewport.Reset() })
	return m
}

// ID returns the widget id
func (m *Model[T]) ID() string {
	return m.id
}

// Init returns the pending commands
func (m *Model[T]) Init() tea.Cmd {
	return m.flush()
}

// SetItems replaces the candidate set
func (m *Model[T]) SetItems(items []T) tea.Cmd {
	m.engine.SetItems(items)
	return m.flush()
}

// Focus gives the input focus
func (m *Model[T]) Focus() tea.Cmd {
	cmd := m.input.Focus()
	m.sel.Focus()
	return tea.Batch(cmd, m.flush())
}

// Blur removes focus; an open panel closes without commit
func (m *Model[T]) Blur() tea.Cmd {
	m.input.Blur()
	m.sel.Blur()
	return m.flush()
}

// Focused reports whether the input has focus
func (m *Model[T]) Focused() bool {
	return m.sel.Focused()
}

// SetQuery types text into the input as if the user had entered it
func (m *Model[T]) SetQuery(text string) tea.Cmd {
	m.input.SetText(text)
	m.sel.Input(text)
	return m.flush()
}

// Open opens the panel
func (m *Model[T]) Open() tea.Cmd {
	m.panel.Open()
	return m.flush()
}

// Opened reports whether the panel is open
func (m *Model[T]) Opened() bool {
	return m.panel.Opened()
}

// State returns the selection state
func (m *Model[T]) State() selection.State {
	return m.sel.State()
}

// Committed returns the committed value
func (m *Model[T]) Committed() (T, bool) {
	return m.sel.Committed()
}

// Text returns the displayed input text
func (m *Model[T]) Text() string {
	return m.input.Text()
}

// Query returns the applied query
func (m *Model[T]) Query() string {
	return m.engine.Query()
}

// Active returns the highlighted row
func (m *Model[T]) Active() (int, bool) {
	return m.nav.Active()
}

// Rows returns the formatted rows currently displayed
func (m *Model[T]) Rows() []string {
	list, ok := m.engine.Rendered()
	if !ok {
		return nil
	}
	rows := make([]string, len(list.Items))
	for i, item := range list.Items {
		rows[i] = m.engine.Format(item.Value)
	}
	return rows
}

// KeyMap returns the router's key bindings for help rendering
func (m *Model[T]) KeyMap() modes.KeyMap {
	return m.input.KeyMap()
}

// Bus exposes the widget's service bus for observers
func (m *Model[T]) Bus() events.EventBus {
	return m.bus
}

// SetSize sets the width and the input line's position on a screen of
// height lines; the panel is placed and sized around it
func (m *Model[T]) SetSize(width, anchorY, height int) {
	m.width = width
	m.anchorY = anchorY
	m.screenH = height
	m.input.SetWidth(max(width-4, 1))

	rows := m.panelRows
	if height > 0 {
		// border plus scroll indicators and footer
		rows = min(rows, views.MaxPanelRows(anchorY, height, 5))
	}
	m.viewport.SetHeight(rows, m.nav.Count())
}

// Update handles keys, mouse, timers and job completions
func (m *Model[T]) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		if msg.id != m.id {
			return nil
		}
		if msg.at.Equal(m.tickAt) {
			m.tickAt = time.Time{}
		}
		m.engine.Tick()

	case resultMsg[T]:
		if msg.id != m.id {
			return nil
		}
		m.engine.Deliver(msg.job, msg.result)

	case tea.KeyMsg:
		if !m.sel.Focused() {
			return nil
		}
		actions, consumed, cmd := m.input.HandleKey(msg, m)
		cmds = append(cmds, cmd)
		edited := false
		for _, action := range actions {
			if _, ok := action.(types.UpdateTextAction); ok {
				edited = true
			}
			cmds = append(cmds, m.apply(action))
		}
		if !consumed && !edited {
			cmds = append(cmds, emit(UnhandledKeyMsg{ID: m.id, Key: msg}))
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	default:
		cmds = append(cmds, m.input.Update(msg))
	}

	cmds = append(cmds, m.flush())
	return tea.Batch(cmds...)
}

// Opened, ListActive and HasActive make the widget the router's context
func (m *Model[T]) ListActive() bool {
	return m.sel.ListActive()
}

func (m *Model[T]) HasActive() bool {
	_, ok := m.nav.Active()
	return ok
}

// View renders the input line and, when open, the panel on the side
// chosen by placement
func (m *Model[T]) View() string {
	line := m.styles.Prompt.Render("› ") + m.input.View()
	if !m.panel.Opened() {
		return line
	}
	if _, ok := m.engine.Rendered(); !ok {
		return line
	}
	panel := m.renderer.Render(m.panelState())
	if placement, _ := m.placement(); placement == views.PlaceAbove {
		return panel + "\n" + line
	}
	return line + "\n" + panel
}

// ViewHeight returns the number of lines View produces
func (m *Model[T]) ViewHeight() int {
	return strings.Count(m.View(), "\n") + 1
}

// Close stops in-flight work
func (m *Model[T]) Close() {
	m.sel.Close()
	m.engine.Close()
}

// Internal methods

func (m *Model[T]) apply(action types.Action) tea.Cmd {
	switch a := action.(type) {
	case types.NavigateAction:
		m.nav.Navigate(navigation.Direction(a.Direction))
	case types.CommitActiveAction:
		m.sel.CommitActive()
	case types.OpenAction:
		m.panel.Open()
	case types.DismissAction:
		m.sel.Dismiss(toggle.Reason(a.Reason))
	case types.UpdateTextAction:
		m.sel.Input(a.Text)
	case types.SubmitAction:
		return emit(SubmitMsg{ID: m.id, Text: a.Text})
	case types.ShowMatchesAction:
		lines := make([]string, 0, 64)
		for v := range m.engine.Matches() {
			lines = append(lines, m.engine.Format(v))
		}
		return emit(MatchesMsg{ID: m.id, Query: m.engine.Query(), Lines: lines})
	case types.ShowHelpAction:
		return emit(HelpMsg{ID: m.id})
	case types.QuitAction:
		return emit(QuitMsg{ID: m.id})
	}
	return nil
}

func (m *Model[T]) handleMouse(msg tea.MouseMsg) {
	if !m.panel.Opened() || !m.sel.ListActive() {
		return
	}
	_, top := m.placement()
	row, ok := m.renderer.RowAt(m.panelState(), msg.Y-top)
	if !ok {
		return
	}
	switch {
	case msg.Action == tea.MouseActionMotion:
		m.nav.Hover(row)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.sel.CommitRow(row)
	case msg.Button == tea.MouseButtonWheelUp:
		m.nav.Navigate(navigation.DirectionUp)
	case msg.Button == tea.MouseButtonWheelDown:
		m.nav.Navigate(navigation.DirectionDown)
	}
}

func (m *Model[T]) placement() (views.Placement, int) {
	height := m.renderer.Height(m.panelState())
	return views.Place(m.anchorY, height, m.screenH)
}

func (m *Model[T]) panelState() views.PanelState {
	list, _ := m.engine.Rendered()
	rows := make([]views.Row, len(list.Items))
	for i, item := range list.Items {
		rows[i] = views.Row{Label: m.engine.Format(item.Value)}
		if m.detail != nil {
			rows[i].Detail = m.detail(item.Value)
		}
		if m.kind != nil {
			rows[i].Kind = m.kind(item.Value)
		}
	}
	active, ok := m.nav.Active()
	if !ok {
		active = navigation.None
	}
	return views.PanelState{
		Rows:      rows,
		Active:    active,
		Truncated: list.Truncated,
		Query:     m.engine.Query(),
		Width:     m.width,
		Viewport:  *m.viewport,
	}
}

// flush collects commands produced by the services: the next job, the next
// debounce tick and host notifications
func (m *Model[T]) flush() tea.Cmd {
	if m.inline {
		m.engine.Sync()
	}
	cmds := slices.Clone(m.outbox)
	m.outbox = m.outbox[:0]

	if job := m.engine.NextJob(); job != nil {
		id := m.id
		cmds = append(cmds, func() tea.Msg {
			return resultMsg[T]{id: id, job: job, result: job.Run()}
		})
	}

	if deadline, ok := m.engine.Deadline(); ok && (m.tickAt.IsZero() || deadline.Before(m.tickAt)) {
		m.tickAt = deadline
		id := m.id
		cmds = append(cmds, tea.Tick(deadline.Sub(m.clock.Now()), func(time.Time) tea.Msg {
			return tickMsg{id: id, at: deadline}
		}))
	}

	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Headless helpers

// Sync drains every pipeline stage on the calling goroutine
func (m *Model[T]) Sync() {
	m.engine.Sync()
}

// Select computes the result for queryText over items without timers, for
// non-interactive use. It returns the exact match when one was auto-selected.
func Select[T any](items []T, queryText string, opts query.Options[T]) (list domain.ItemList[T], exact *T) {
	engine := query.NewService[T](nil, nil, nil, opts)
	defer engine.Close()
	engine.SetItems(items)
	engine.UpdateQuery(queryText)
	engine.Sync()

	if match, ok := domain.AsExactMatch[T](engine.Computed()); ok {
		return domain.ItemList[T]{Query: queryText}, &match.Item
	}
	list, _ = engine.Rendered()
	return list, nil
}
