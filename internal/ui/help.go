package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"combogrip/internal/ui/input/modes"
)

// pagerMsg reports that a pager session ended
type pagerMsg struct {
	title string
	err   error
}

// HelpRenderer renders the key help shown in the pager
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1),
		section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

// RenderHelpContent generates the help page for km
func (r *HelpRenderer) RenderHelpContent(km modes.KeyMap) string {
	var help strings.Builder

	help.WriteString(r.title.Render("combogrip Help"))
	help.WriteString("\n")

	r.writeSection(&help, "Navigation", km.Up, km.Down, km.Home, km.End)
	r.writeSection(&help, "Selection", km.Commit, km.Dismiss, km.Next, km.Open)
	r.writeSection(&help, "Other", km.Matches, km.Help, km.Quit)

	help.WriteString("\n")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  Typing filters the candidates; Enter on a closed list prints the selection and exits."))
	return help.String()
}

// RenderMatches generates the all-matches page
func (r *HelpRenderer) RenderMatches(query string, lines []string) string {
	var b strings.Builder
	header := fmt.Sprintf("%d matches", len(lines))
	if query != "" {
		header = fmt.Sprintf("%d matches for %q", len(lines), query)
	}
	b.WriteString(r.title.Render(header))
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (r *HelpRenderer) writeSection(b *strings.Builder, name string, bindings ...key.Binding) {
	b.WriteString(r.section.Render(name))
	b.WriteString("\n")
	for _, binding := range bindings {
		h := binding.Help()
		keys := strings.Join(binding.Keys(), ", ")
		if keys == "" {
			keys = h.Key
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", r.key.Render(fmt.Sprintf("%-16s", keys)), r.desc.Render(h.Desc)))
	}
}

// PagerOps runs content in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{program: program}
}

// ShowInPager releases the terminal and shows content in ov until the user
// quits the pager
func (p *PagerOps) ShowInPager(content string) error {
	if p == nil || p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Let ov fully exit before taking the terminal back
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
