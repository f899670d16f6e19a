package modes

import (
	"combogrip/internal/ui/input/types"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ClosedMode handles keys while the panel is closed. Almost everything is
// left to the text input.
type ClosedMode struct {
	keys *KeyMap
}

func NewClosedMode(keys *KeyMap) *ClosedMode {
	return &ClosedMode{keys: keys}
}

func (m *ClosedMode) Name() string {
	return "closed"
}

func (m *ClosedMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Open):
		return []types.Action{types.OpenAction{}}, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ShowHelpAction{}}, true
	case key.Matches(msg, m.keys.Commit):
		// The host decides what submitting means
		return []types.Action{types.SubmitAction{}}, false
	}
	return nil, false
}
