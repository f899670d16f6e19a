package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Selection actions
type CommitActiveAction struct{}

func (a CommitActiveAction) Type() string { return "commit_active" }

// Panel actions
type OpenAction struct{}

func (a OpenAction) Type() string { return "open" }

type DismissAction struct {
	Reason string // "escape" or "tab"
}

func (a DismissAction) Type() string { return "dismiss" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

// SubmitAction is Enter on a closed panel, left to the host
type SubmitAction struct {
	Text string
}

func (a SubmitAction) Type() string { return "submit" }

// Pager actions
type ShowMatchesAction struct{}

func (a ShowMatchesAction) Type() string { return "show_matches" }

type ShowHelpAction struct{}

func (a ShowHelpAction) Type() string { return "show_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C
}

func (a QuitAction) Type() string { return "quit" }
