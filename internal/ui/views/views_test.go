package views

import (
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(labels ...string) []Row {
	out := make([]Row, len(labels))
	for i, l := range labels {
		out[i] = Row{Label: l}
	}
	return out
}

func TestViewportEnsureVisible(t *testing.T) {
	v := NewViewport(3)
	assert.False(t, v.EnsureVisible(2))
	assert.True(t, v.EnsureVisible(5))
	assert.Equal(t, 3, v.Offset)

	start, end := v.Window(10)
	assert.Equal(t, 3, start)
	assert.Equal(t, 6, end)

	assert.True(t, v.EnsureVisible(1))
	assert.Equal(t, 1, v.Offset)

	v.Clamp(2)
	assert.Equal(t, 0, v.Offset)
}

func TestPanelShowsRowsAndFooters(t *testing.T) {
	p := NewPanelRenderer(NewStyles())

	out := p.Render(PanelState{Rows: rows("Kotlin", "Scala"), Active: 1, Width: 30, Viewport: Viewport{Height: 5}, Truncated: true})
	plain := stripANSI(out)
	assert.Contains(t, plain, "Kotlin")
	assert.Contains(t, plain, "Scala")
	assert.Contains(t, plain, "more matches")

	empty := stripANSI(p.Render(PanelState{Active: -1, Width: 30, Viewport: Viewport{Height: 5}}))
	assert.Contains(t, empty, "no matches")
}

func TestPanelRowAtSkipsIndicators(t *testing.T) {
	p := NewPanelRenderer(NewStyles())
	s := PanelState{Rows: rows("a", "b", "c", "d", "e"), Active: -1, Width: 20, Viewport: Viewport{Offset: 2, Height: 2}}

	// border, "more above", c, d, "more below", border
	assert.Equal(t, 6, p.Height(s))

	_, ok := p.RowAt(s, 1)
	assert.False(t, ok, "scroll indicator")
	index, ok := p.RowAt(s, 2)
	require.True(t, ok)
	assert.Equal(t, 2, index)
	index, ok = p.RowAt(s, 3)
	require.True(t, ok)
	assert.Equal(t, 3, index)
	_, ok = p.RowAt(s, 4)
	assert.False(t, ok)
}

func TestLongLabelsAreTruncated(t *testing.T) {
	p := NewPanelRenderer(NewStyles())
	out := p.Render(PanelState{Rows: rows(strings.Repeat("x", 100)), Active: -1, Width: 20, Viewport: Viewport{Height: 3}})
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 20)
	}
	assert.Contains(t, out, "…")
}

func TestHighlightMatch(t *testing.T) {
	plain := lipgloss.NewStyle()
	assert.Equal(t, "JavaScript", stripANSI(highlightMatch("JavaScript", "SCRIPT", plain, plain)))
	assert.Equal(t, "Kotlin", highlightMatch("Kotlin", "", plain, plain))
}

func TestPlace(t *testing.T) {
	placement, y := Place(2, 5, 24)
	assert.Equal(t, PlaceBelow, placement)
	assert.Equal(t, 3, y)

	placement, y = Place(20, 8, 24)
	assert.Equal(t, PlaceAbove, placement)
	assert.Equal(t, 12, y)

	assert.Equal(t, 20, MaxPanelRows(2, 24, 1))
}

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func TestRenderKeepsInputOnAnchorLine(t *testing.T) {
	r := NewRenderer(nil)
	for _, layout := range []Layout{LayoutTop, LayoutBottom} {
		t.Run(string(layout), func(t *testing.T) {
			out := stripANSI(r.Render(ViewState{
				Width:      60,
				Height:     12,
				Layout:     layout,
				Combobox:   "› query",
				Candidates: 3,
				Help:       "help",
				Status:     "ready",
			}))
			lines := strings.Split(out, "\n")
			require.Len(t, lines, 12)
			assert.Contains(t, lines[AnchorY(layout, 12)], "› query")
			assert.Contains(t, lines[0], "3 candidates")
			assert.Contains(t, lines[10], "help")
			assert.Contains(t, lines[11], "ready")
		})
	}
}

func TestRenderBeforeFirstResize(t *testing.T) {
	assert.Equal(t, "Loading...", NewRenderer(nil).Render(ViewState{}))
}

func TestSourceColor(t *testing.T) {
	assert.Equal(t, "33", SourceColor("repo"))
	assert.Equal(t, "78", SourceColor("stdin"))
	assert.Equal(t, "214", SourceColor("file"))
}
