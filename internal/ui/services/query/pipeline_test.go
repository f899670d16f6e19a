package query

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	mock := clock.NewMock()
	d := NewDebouncer[string](50 * time.Millisecond)

	d.Push("j", mock.Now())
	mock.Add(30 * time.Millisecond)
	d.Push("ja", mock.Now())
	mock.Add(30 * time.Millisecond)

	_, ok := d.Flush(mock.Now())
	assert.False(t, ok, "window restarts on every push")

	mock.Add(20 * time.Millisecond)
	v, ok := d.Flush(mock.Now())
	require.True(t, ok)
	assert.Equal(t, "ja", v)

	_, ok = d.Flush(mock.Now())
	assert.False(t, ok, "a value is emitted once")
}

func TestDebouncerDeadline(t *testing.T) {
	mock := clock.NewMock()
	d := NewDebouncer[int](10 * time.Millisecond)

	_, ok := d.Deadline()
	assert.False(t, ok)

	d.Push(1, mock.Now())
	deadline, ok := d.Deadline()
	require.True(t, ok)
	assert.Equal(t, mock.Now().Add(10*time.Millisecond), deadline)

	d.Cancel()
	assert.False(t, d.Pending())
}

func TestDebouncerZeroWindowIsImmediate(t *testing.T) {
	now := time.Now()
	d := NewDebouncer[int](-time.Second)
	assert.Equal(t, time.Duration(0), d.Window())

	d.Push(7, now)
	v, ok := d.Flush(now)
	require.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestSupersedeCancelsPrevious(t *testing.T) {
	var s Supersede
	first, seq1 := s.Next(context.Background())
	second, seq2 := s.Next(context.Background())

	assert.Error(t, first.Err())
	assert.NoError(t, second.Err())
	assert.Less(t, seq1, seq2)

	assert.False(t, s.Accept(seq1), "stale completion")
	assert.True(t, s.Accept(seq2))
	assert.False(t, s.Accept(seq2), "accepted once")

	s.Stop()
	assert.Error(t, second.Err())
	assert.Equal(t, seq2, s.Latest())
}
