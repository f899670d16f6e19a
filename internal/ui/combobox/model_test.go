package combobox

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"combogrip/internal/ui/binding"
	"combogrip/internal/ui/logic"
	"combogrip/internal/ui/services/query"
	"combogrip/internal/ui/services/selection"
)

var languages = []string{"Kotlin", "Scala", "Java"}

func newCombo(t *testing.T, strategy logic.Strategy, value *binding.Value[string]) *Model[string] {
	t.Helper()
	opts := query.DefaultOptions[string]()
	opts.Textual = true
	opts.Strategy = strategy

	m := New(Config[string]{
		ID:        "lang",
		Query:     opts,
		Selection: selection.Options[string]{Value: value, Write: value.Writer(), CloseOnAutoSelect: true},
		Inline:    true,
	})
	t.Cleanup(m.Close)
	m.SetSize(40, 0, 24)
	m.SetItems(languages)
	m.Focus()
	return m
}

func typeText(m *Model[string], s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(m *Model[string], k tea.KeyType) {
	m.Update(tea.KeyMsg{Type: k})
}

func TestTypeNavigateCommit(t *testing.T) {
	value := binding.NewValue[string]()
	m := newCombo(t, logic.StrategyManual, value)

	typeText(m, "a")
	require.True(t, m.Opened())
	assert.Equal(t, []string{"Scala", "Java"}, m.Rows())

	press(m, tea.KeyDown)
	press(m, tea.KeyDown)
	active, ok := m.Active()
	require.True(t, ok)
	assert.Equal(t, 1, active)

	press(m, tea.KeyEnter)
	v, ok := value.Get()
	require.True(t, ok)
	assert.Equal(t, "Java", v)
	assert.Equal(t, "Java", m.Text())
	assert.Equal(t, "", m.Query())
	assert.False(t, m.Opened())
}

func TestEnterWithoutActiveRowKeepsPanelOpen(t *testing.T) {
	m := newCombo(t, logic.StrategyManual, binding.NewValue[string]())
	typeText(m, "K")
	press(m, tea.KeyEnter)
	assert.True(t, m.Opened())
	_, ok := m.Committed()
	assert.False(t, ok)
}

func TestEscapeRestoresCommittedText(t *testing.T) {
	m := newCombo(t, logic.StrategyManual, binding.Of("Kotlin"))
	assert.Equal(t, "Kotlin", m.Text())

	press(m, tea.KeyBackspace)
	typeText(m, "x")
	assert.Equal(t, "Kotlix", m.Text())

	press(m, tea.KeyEsc)
	assert.Equal(t, "Kotlin", m.Text())
	assert.False(t, m.Opened())
	assert.Equal(t, selection.StateClosed, m.State())
}

func TestAutoSelectWhileTyping(t *testing.T) {
	value := binding.NewValue[string]()
	m := newCombo(t, logic.StrategyAuto, value)
	typeText(m, "java")

	v, ok := value.Get()
	require.True(t, ok)
	assert.Equal(t, "Java", v)
	assert.Equal(t, "", m.Query())
	assert.False(t, m.Opened())
}

func TestTabClosesPanel(t *testing.T) {
	m := newCombo(t, logic.StrategyManual, binding.NewValue[string]())
	typeText(m, "S")
	require.True(t, m.Opened())
	press(m, tea.KeyTab)
	assert.False(t, m.Opened())
	assert.Equal(t, "", m.Text())
}

func TestMouseHoverAndClick(t *testing.T) {
	value := binding.NewValue[string]()
	m := newCombo(t, logic.StrategyManual, value)
	press(m, tea.KeyDown) // opens
	require.True(t, m.Opened())
	require.Equal(t, languages, m.Rows())

	// input on line 0, panel border on line 1, rows from line 2
	m.Update(tea.MouseMsg{X: 3, Y: 3, Action: tea.MouseActionMotion})
	active, ok := m.Active()
	require.True(t, ok)
	assert.Equal(t, 1, active)

	m.Update(tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	v, _ := value.Get()
	assert.Equal(t, "Java", v)
	assert.False(t, m.Opened())
}

func TestKeysIgnoredWithoutFocus(t *testing.T) {
	m := newCombo(t, logic.StrategyManual, binding.NewValue[string]())
	m.Blur()
	typeText(m, "Sc")
	assert.Equal(t, "", m.Text())
	assert.False(t, m.Opened())
}

func TestViewShowsPanelWhenOpen(t *testing.T) {
	m := newCombo(t, logic.StrategyManual, binding.NewValue[string]())
	assert.Equal(t, 1, m.ViewHeight())

	typeText(m, "a")
	assert.Contains(t, m.View(), "Scala")
	assert.Greater(t, m.ViewHeight(), 3)
}

func TestSelectHeadless(t *testing.T) {
	opts := query.DefaultOptions[string]()
	opts.Textual = true
	list, exact := Select(languages, "ava", opts)
	assert.Nil(t, exact)
	assert.Equal(t, []string{"Java"}, list.Values())

	opts.Strategy = logic.StrategyAuto
	_, exact = Select(languages, "scala", opts)
	require.NotNil(t, exact)
	assert.Equal(t, "Scala", *exact)
}
