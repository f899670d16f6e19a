package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"combogrip/internal/config"
	"combogrip/internal/domain"
	"combogrip/internal/eventbus"
	"combogrip/internal/logic"
	"combogrip/internal/ui/binding"
	"combogrip/internal/ui/combobox"
	"combogrip/internal/ui/views"
)

// Options carries the command line state the model starts from
type Options struct {
	Query string      // typed into the input on start
	Clock clock.Clock // nil for the wall clock
	// Inline recomputes on the update goroutine without debounce timers
	Inline bool
}

// Model is the application: a candidate combobox fed by the discovery
// sources, a status bar and key help
type Model struct {
	bus    eventbus.EventBus
	config *config.Config

	combo  *combobox.Model[domain.Candidate]
	value  *binding.Value[domain.Candidate]
	layout views.Layout
	query  string

	store       logic.CandidateStore
	scanSources int
	progress    domain.ScanProgress
	frame       int

	width      int
	height     int
	help       help.Model
	renderer   *views.Renderer
	helpRender *HelpRenderer
	status     string
	statusKind views.StatusKind

	result      *domain.Candidate
	inPagerMode bool
	pager       *PagerOps
	copy        func(string) error

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, opts Options) *Model {
	value := binding.NewValue[domain.Candidate]()
	layout := views.Layout(cfg.UI.Layout)
	if layout != views.LayoutBottom {
		layout = views.LayoutTop
	}

	m := &Model{
		bus:        bus,
		config:     cfg,
		value:      value,
		layout:     layout,
		query:      opts.Query,
		store:      logic.NewMemoryCandidateStore(),
		help:       help.New(),
		renderer:   views.NewRenderer(nil),
		helpRender: NewHelpRenderer(),
		copy:       clipboard.WriteAll,
	}
	ccfg := ComboboxConfig(cfg, value, opts.Clock)
	ccfg.Inline = opts.Inline
	m.combo = combobox.New(ccfg)
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// Result returns the committed candidate the user accepted, nil when the
// program was left without a selection
func (m *Model) Result() *domain.Candidate {
	return m.result
}

// Init focuses the combobox and applies the initial query
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.combo.Init(), m.combo.Focus()}
	if m.query != "" {
		cmds = append(cmds, m.combo.SetQuery(m.query))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.combo.SetSize(msg.Width, views.AnchorY(m.layout, msg.Height), msg.Height)
		return m, nil

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case combobox.CommittedMsg[domain.Candidate]:
		return m, m.handleCommit(msg)

	case combobox.SubmitMsg:
		if v, ok := m.value.Get(); ok && v.Label == msg.Text {
			m.result = &v
			return m, tea.Quit
		}
		return m, m.setStatus("Nothing selected", views.StatusWarning)

	case combobox.UnhandledKeyMsg:
		if msg.Key.String() == "esc" {
			// Escape on a closed list leaves without a selection
			return m, tea.Quit
		}
		return m, nil

	case combobox.MatchesMsg:
		return m, m.runPager("matches", m.helpRender.RenderMatches(msg.Query, msg.Lines))

	case combobox.HelpMsg:
		return m, m.runPager("help", m.helpRender.RenderHelpContent(m.combo.KeyMap()))

	case combobox.QuitMsg:
		return m, tea.Quit

	case combobox.DiagnosticMsg:
		return m, m.setStatus(msg.Message, views.StatusWarning)

	case pagerMsg:
		if msg.err != nil {
			log.Printf("%s pager failed: %v", msg.title, msg.err)
			return m, m.setStatus(fmt.Sprintf("Could not open %s: %v", msg.title, msg.err), views.StatusError)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case tickMsg:
		if !m.progress.IsScanning || m.inPagerMode {
			return m, nil
		}
		m.frame++
		return m, tick()

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	return m, m.combo.Update(msg)
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	var committed string
	if v, ok := m.value.Get(); ok {
		committed = v.Label
	}
	var helpLine string
	if m.config.UI.ShowHelp {
		helpLine = m.help.View(m.combo.KeyMap())
	}

	return m.renderer.Render(views.ViewState{
		Width:      m.width,
		Height:     m.height,
		Prompt:     m.config.UI.Prompt,
		Layout:     m.layout,
		Combobox:   m.combo.View(),
		Committed:  committed,
		Scanning:   m.progress.IsScanning,
		Frame:      m.frame,
		Sources:    m.scanSources,
		Candidates: m.progress.CandidatesLoaded,
		Status:     m.status,
		StatusKind: m.statusKind,
		Help:       helpLine,
	})
}

// Close stops the combobox's in-flight work
func (m *Model) Close() {
	m.combo.Close()
}

// handleEvent processes domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ScanStartedEvent:
		m.store.SetOrder(e.Sources)
		m.scanSources = len(e.Sources)
		m.progress.IsScanning = true
		m.setStatus("Loading candidates...", views.StatusLoading)
		return tick()

	case eventbus.CandidatesLoadedEvent:
		m.store.Replace(e.Source, e.Candidates)
		m.progress.SourcesLoaded = len(m.store.Sources())
		m.progress.CandidatesLoaded = m.store.Count()
		return m.combo.SetItems(m.store.All())

	case eventbus.SourceFailedEvent:
		return m.setStatus(fmt.Sprintf("Failed to load %s: %v", e.Source, e.Err), views.StatusError)

	case eventbus.ScanCompletedEvent:
		m.progress.IsScanning = false
		if m.statusKind == views.StatusError {
			return nil
		}
		return m.setStatus(fmt.Sprintf("Loaded %d candidates", e.CandidatesFound), views.StatusSuccess)

	case eventbus.ErrorEvent:
		return m.setStatus(e.Message, views.StatusError)
	}
	return nil
}

func (m *Model) handleCommit(msg combobox.CommittedMsg[domain.Candidate]) tea.Cmd {
	v := msg.Value
	if m.bus != nil {
		m.bus.Publish(eventbus.SelectionCommittedEvent{Candidate: v, Auto: msg.Auto})
	}
	if m.config.UI.CopyToClipboard {
		if err := m.copy(v.Output()); err != nil {
			log.Printf("Clipboard copy failed: %v", err)
			return m.setStatus(fmt.Sprintf("Clipboard copy failed: %v", err), views.StatusError)
		}
	}
	if msg.Auto {
		// An exact match is confirmed with Enter
		return m.setStatus(fmt.Sprintf("Matched %s, press enter to accept", v.Label), views.StatusSuccess)
	}
	m.result = &v
	return tea.Quit
}

func (m *Model) setStatus(text string, kind views.StatusKind) tea.Cmd {
	m.status = text
	m.statusKind = kind
	if kind == views.StatusLoading {
		return nil
	}
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// runPager returns a command that shows content in the ov pager
func (m *Model) runPager(title, content string) tea.Cmd {
	if m.program == nil {
		return func() tea.Msg { return pagerMsg{title: title, err: fmt.Errorf("program not set")} }
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.ShowInPager(content)
		m.program.Send(resumeRenderingMsg{})
		return pagerMsg{title: title, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
