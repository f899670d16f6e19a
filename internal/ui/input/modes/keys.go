package modes

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the router's key bindings
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Home    key.Binding
	End     key.Binding
	Commit  key.Binding
	Dismiss key.Binding
	Next    key.Binding
	Open    key.Binding
	Matches key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "previous")),
		Down:    key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next")),
		Home:    key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:     key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Commit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Next:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "leave")),
		Open:    key.NewBinding(key.WithKeys("down", "ctrl+space"), key.WithHelp("↓", "open")),
		Matches: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "all matches")),
		Help:    key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Commit, k.Dismiss, k.Matches, k.Help}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End},
		{k.Commit, k.Dismiss, k.Next, k.Open},
		{k.Matches, k.Help, k.Quit},
	}
}
