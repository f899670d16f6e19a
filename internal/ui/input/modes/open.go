package modes

import (
	"combogrip/internal/ui/input/types"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// OpenMode handles keys while the panel is open
type OpenMode struct {
	keys *KeyMap
}

func NewOpenMode(keys *KeyMap) *OpenMode {
	return &OpenMode{keys: keys}
}

func (m *OpenMode) Name() string {
	return "open"
}

func (m *OpenMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{Force: true}}, true

	case key.Matches(msg, m.keys.Up):
		return m.navigate("up", ctx)
	case key.Matches(msg, m.keys.Down):
		return m.navigate("down", ctx)
	case key.Matches(msg, m.keys.Home):
		return m.navigate("home", ctx)
	case key.Matches(msg, m.keys.End):
		return m.navigate("end", ctx)

	case key.Matches(msg, m.keys.Commit):
		if ctx.ListActive() && ctx.HasActive() {
			return []types.Action{types.CommitActiveAction{}}, true
		}
		// Nothing to commit; swallow it so the host does not submit
		return nil, true

	case key.Matches(msg, m.keys.Dismiss):
		return []types.Action{types.DismissAction{Reason: "escape"}}, true

	case key.Matches(msg, m.keys.Next):
		// Close, but let focus move on
		return []types.Action{types.DismissAction{Reason: "tab"}}, false

	case key.Matches(msg, m.keys.Matches):
		if ctx.ListActive() {
			return []types.Action{types.ShowMatchesAction{}}, true
		}
		return nil, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ShowHelpAction{}}, true
	}
	return nil, false
}

// List keys only apply when there is a list; otherwise home/end stay with
// the text input
func (m *OpenMode) navigate(direction string, ctx types.Context) ([]types.Action, bool) {
	if !ctx.ListActive() {
		return nil, false
	}
	return []types.Action{types.NavigateAction{Direction: direction}}, true
}
