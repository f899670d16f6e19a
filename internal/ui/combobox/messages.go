package combobox

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"combogrip/internal/domain"
	"combogrip/internal/ui/services/query"
)

// Internal messages carry the widget id so several comboboxes can share
// one program

// tickMsg fires when a debounce deadline is due
type tickMsg struct {
	id string
	at time.Time
}

// resultMsg carries a finished recomputation back to the update loop
type resultMsg[T any] struct {
	id     string
	job    *query.Job[T]
	result domain.QueryResult[T]
}

// Messages for the host

// CommittedMsg reports a committed selection
type CommittedMsg[T any] struct {
	ID    string
	Value T
	Auto  bool
}

// SubmitMsg is Enter on a closed panel
type SubmitMsg struct {
	ID   string
	Text string
}

// UnhandledKeyMsg is a key the widget did not consume, such as Tab
type UnhandledKeyMsg struct {
	ID  string
	Key tea.KeyMsg
}

// MatchesMsg asks the host to page every current match
type MatchesMsg struct {
	ID    string
	Query string
	Lines []string
}

// HelpMsg asks the host to show key help
type HelpMsg struct {
	ID string
}

// QuitMsg asks the host to quit
type QuitMsg struct {
	ID string
}

// DiagnosticMsg relays a one-time configuration warning
type DiagnosticMsg struct {
	ID      string
	Message string
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
