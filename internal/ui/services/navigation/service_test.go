package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"combogrip/internal/ui/services/events"
)

func newTracker(policy Policy, keys ...string) *Service {
	s := NewService(nil, policy)
	s.SetList(keys)
	return s
}

func TestKeyboardMoves(t *testing.T) {
	tests := []struct {
		name   string
		start  int
		dir    Direction
		expect int
	}{
		{"down from none", None, DirectionDown, 0},
		{"up from none", None, DirectionUp, 0},
		{"down", 0, DirectionDown, 1},
		{"down at end stays", 2, DirectionDown, 2},
		{"up at start stays", 0, DirectionUp, 0},
		{"home", 2, DirectionHome, 0},
		{"end", None, DirectionEnd, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTracker(PolicyReset, "Kotlin", "Scala", "Java")
			if tt.start != None {
				require.True(t, s.Hover(tt.start))
			}
			s.Navigate(tt.dir)
			got, _ := s.Active()
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestRepeatedDownNeverWraps(t *testing.T) {
	s := newTracker(PolicyReset, "a", "b", "c", "d")
	for i := 0; i < 10; i++ {
		s.Navigate(DirectionDown)
	}
	got, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, 3, got)
}

func TestEmptyListIgnoresMoves(t *testing.T) {
	s := newTracker(PolicyReset)
	assert.False(t, s.Navigate(DirectionEnd))
	assert.False(t, s.Hover(0))
	_, ok := s.Active()
	assert.False(t, ok)
}

func TestNewListResetsActive(t *testing.T) {
	s := newTracker(PolicyReset, "Kotlin", "Scala", "Java")
	s.Navigate(DirectionEnd)

	s.SetList([]string{"Java", "JavaScript"})
	_, ok := s.Active()
	assert.False(t, ok)
}

func TestPreservePolicyFollowsText(t *testing.T) {
	s := newTracker(PolicyPreserve, "Kotlin", "Scala", "Java")
	s.Navigate(DirectionEnd)

	s.SetList([]string{"Java", "JavaScript"})
	got, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, 0, got)

	s.SetList([]string{"Groovy"})
	_, ok = s.Active()
	assert.False(t, ok, "reset when the active text is gone")
}

func TestScrollAndEvents(t *testing.T) {
	bus := events.NewBus()
	var moved []ActiveChangedEvent
	events.On(bus, func(e ActiveChangedEvent) { moved = append(moved, e) })

	s := NewService(bus, PolicyReset)
	var scrolled []int
	s.SetScrollFunction(func(i int) { scrolled = append(scrolled, i) })
	s.SetList([]string{"a", "b"})

	s.Navigate(DirectionDown)
	s.Hover(1)
	s.Clear()

	assert.Equal(t, []int{0, 1}, scrolled, "scroll only when a row becomes active")
	assert.Equal(t, []ActiveChangedEvent{{None, 0}, {0, 1}, {1, None}}, moved)
	assert.Equal(t, 0, s.Count())
}

func TestParsePolicy(t *testing.T) {
	p, ok := ParsePolicy("preserve")
	assert.True(t, ok)
	assert.Equal(t, PolicyPreserve, p)

	p, ok = ParsePolicy("sometimes")
	assert.False(t, ok)
	assert.Equal(t, PolicyReset, p)
}
