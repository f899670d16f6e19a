package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Layout says where the input line sits on the screen
type Layout string

const (
	LayoutTop    Layout = "top"
	LayoutBottom Layout = "bottom"
)

// StatusKind selects the status bar style
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusLoading
	StatusSuccess
	StatusWarning
	StatusError
)

// ViewState contains all the state needed for rendering the application
type ViewState struct {
	Width      int
	Height     int
	Prompt     string
	Layout     Layout
	Combobox   string // input line, plus the panel when open
	Committed  string
	Scanning   bool
	Frame      int // spinner frame
	Sources    int
	Candidates int
	Status     string
	StatusKind StatusKind
	Help       string
}

// chrome is the number of lines around the combobox: title, help, status
const chrome = 3

// Renderer renders the application around the combobox
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	if styles == nil {
		styles = NewStyles()
	}
	return &Renderer{styles: styles}
}

// AnchorY returns the screen line holding the input for the layout
func AnchorY(layout Layout, height int) int {
	if layout == LayoutBottom && height > chrome {
		return height - chrome
	}
	return 1
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.Width == 0 {
		return "Loading..."
	}

	title := r.titleLine(state)
	block := state.Combobox
	blockLines := strings.Count(block, "\n") + 1

	filler := ""
	if state.Height > 0 {
		if n := state.Height - chrome - blockLines; n > 0 {
			filler = strings.Repeat("\n", n)
		}
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	if state.Layout == LayoutBottom {
		b.WriteString(filler)
		b.WriteString(block)
	} else {
		b.WriteString(block)
		b.WriteString(filler)
	}
	b.WriteString("\n")
	b.WriteString(state.Help)
	b.WriteString("\n")
	b.WriteString(r.statusLine(state))

	style := r.styles.Main
	if state.Height > 0 {
		style = style.MaxHeight(state.Height)
	}
	return style.Render(b.String())
}

func (r *Renderer) titleLine(state ViewState) string {
	prompt := state.Prompt
	if prompt == "" {
		prompt = "combogrip"
	}
	left := r.styles.Title.Render(prompt)
	if state.Committed != "" {
		left += "  " + r.styles.Committed.Render("✓ "+state.Committed)
	}

	var right string
	if state.Scanning {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		right = r.styles.Dim.Render(fmt.Sprintf("%s Loading %d sources", spinner[state.Frame%len(spinner)], state.Sources))
	} else {
		right = r.styles.Dim.Render(fmt.Sprintf("%d candidates", state.Candidates))
	}

	// Account for main container padding
	padding := state.Width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return left + strings.Repeat(" ", padding) + right
}

func (r *Renderer) statusLine(state ViewState) string {
	if state.Status == "" {
		return ""
	}
	style := r.styles.Status
	switch state.StatusKind {
	case StatusLoading:
		style = r.styles.StatusLoading
	case StatusSuccess:
		style = r.styles.StatusSuccess
	case StatusWarning:
		style = r.styles.StatusWarning
	case StatusError:
		style = r.styles.StatusError
	}
	return style.Render(state.Status)
}
