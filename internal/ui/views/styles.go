package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Prompt        lipgloss.Style
	Committed     lipgloss.Style
	Panel         lipgloss.Style
	Row           lipgloss.Style
	ActiveRow     lipgloss.Style
	Highlight     lipgloss.Style
	Detail        lipgloss.Style
	Scroll        lipgloss.Style
	Footer        lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Committed: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")),
		Row:           lipgloss.NewStyle(),
		ActiveRow:     lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Detail:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Footer:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Dim:           lipgloss.NewStyle().Faint(true),
		Help:          lipgloss.NewStyle().Faint(true),
		Main:          lipgloss.NewStyle().Padding(0, 1),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}

// SourceColor returns the color used for a candidate's source tag
func SourceColor(kind string) string {
	switch kind {
	case "repo":
		return "33" // blue
	case "stdin":
		return "78" // green
	default:
		return "214" // yellow for files
	}
}
