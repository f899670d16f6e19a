package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Row is one displayed result
type Row struct {
	Label  string
	Detail string
	Kind   string
}

// PanelState is everything the list panel needs to draw one frame
type PanelState struct {
	Rows      []Row
	Active    int // -1 for none
	Truncated bool
	Query     string
	Width     int
	Viewport  Viewport
}

type lineKind int

const (
	lineRow lineKind = iota
	lineAbove
	lineBelow
	lineFooter
)

type panelLine struct {
	kind  lineKind
	index int
}

// PanelRenderer draws the result list
type PanelRenderer struct {
	styles *Styles
}

// NewPanelRenderer creates a new panel renderer
func NewPanelRenderer(styles *Styles) *PanelRenderer {
	return &PanelRenderer{styles: styles}
}

// Render draws the bordered panel
func (p *PanelRenderer) Render(s PanelState) string {
	inner := p.innerWidth(s.Width)
	lines := layout(s)
	out := make([]string, 0, len(lines))
	start, end := s.Viewport.Window(len(s.Rows))

	for _, line := range lines {
		switch line.kind {
		case lineRow:
			out = append(out, p.renderRow(s.Rows[line.index], line.index == s.Active, s.Query, inner))
		case lineAbove:
			out = append(out, p.styles.Scroll.Render(fmt.Sprintf("↑ %d more above", start)))
		case lineBelow:
			out = append(out, p.styles.Scroll.Render(fmt.Sprintf("↓ %d more below", len(s.Rows)-end)))
		case lineFooter:
			if len(s.Rows) == 0 {
				out = append(out, p.styles.Footer.Render("no matches"))
			} else {
				out = append(out, p.styles.Footer.Render("… more matches (ctrl+o)"))
			}
		}
	}
	return p.styles.Panel.Width(inner).Render(strings.Join(out, "\n"))
}

// Height returns the rendered height, border included
func (p *PanelRenderer) Height(s PanelState) int {
	return len(layout(s)) + p.styles.Panel.GetVerticalFrameSize()
}

// RowAt maps a line offset from the panel's top edge to a row index
func (p *PanelRenderer) RowAt(s PanelState, line int) (int, bool) {
	line -= p.styles.Panel.GetBorderTopSize()
	lines := layout(s)
	if line < 0 || line >= len(lines) || lines[line].kind != lineRow {
		return 0, false
	}
	return lines[line].index, true
}

func (p *PanelRenderer) innerWidth(width int) int {
	if width <= 0 {
		width = 80
	}
	inner := width - p.styles.Panel.GetHorizontalFrameSize()
	if inner < 8 {
		inner = 8
	}
	return inner
}

func (p *PanelRenderer) renderRow(row Row, active bool, query string, width int) string {
	label := runewidth.Truncate(row.Label, width, "…")
	detail := ""
	if row.Detail != "" {
		if room := width - runewidth.StringWidth(label) - 2; room > 4 {
			detail = "  " + runewidth.Truncate(row.Detail, room, "…")
		}
	}

	style := p.styles.Row
	if active {
		style = p.styles.ActiveRow
	}
	text := highlightMatch(label, query, p.styles.Highlight.Inherit(style), style)
	if detail != "" {
		detailStyle := p.styles.Detail
		if row.Kind != "" {
			detailStyle = detailStyle.Foreground(lipgloss.Color(SourceColor(row.Kind)))
		}
		text += detailStyle.Inherit(style).Render(detail)
	}
	if pad := width - lipgloss.Width(text); pad > 0 {
		text += style.Render(strings.Repeat(" ", pad))
	}
	return text
}

func layout(s PanelState) []panelLine {
	start, end := s.Viewport.Window(len(s.Rows))
	lines := make([]panelLine, 0, end-start+3)
	if start > 0 {
		lines = append(lines, panelLine{kind: lineAbove})
	}
	for i := start; i < end; i++ {
		lines = append(lines, panelLine{kind: lineRow, index: i})
	}
	if end < len(s.Rows) {
		lines = append(lines, panelLine{kind: lineBelow})
	}
	if s.Truncated || len(s.Rows) == 0 {
		lines = append(lines, panelLine{kind: lineFooter})
	}
	return lines
}

// highlightMatch highlights the first case-insensitive occurrence of query
func highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	if query == "" {
		return normalStyle.Render(text)
	}
	lowerText, lowerQuery := strings.ToLower(text), strings.ToLower(query)
	index := strings.Index(lowerText, lowerQuery)
	if index == -1 || len(lowerText) != len(text) {
		return normalStyle.Render(text)
	}
	end := index + len(lowerQuery)

	var b strings.Builder
	if before := text[:index]; before != "" {
		b.WriteString(normalStyle.Render(before))
	}
	b.WriteString(highlightStyle.Render(text[index:end]))
	if after := text[end:]; after != "" {
		b.WriteString(normalStyle.Render(after))
	}
	return b.String()
}
