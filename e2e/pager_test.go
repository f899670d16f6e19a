//go:build e2e && unix

package main

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllMatchesPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = fmt.Sprintf("item-%02d", i)
	}
	file, err := tf.WriteCandidates("items.txt", lines...)
	require.NoError(t, err)

	require.NoError(t, tf.StartApp(file, "--max", "5"))
	require.True(t, tf.Ready())
	require.NoError(t, tf.Type("item"))
	require.True(t, tf.SeePlain("more matches"))

	require.NoError(t, tf.SendKeys(KeyCtrlO))
	require.True(t, tf.OutputContainsPlain("40 matches", 5*time.Second), "pager should list every match")

	require.NoError(t, tf.SendKeys(KeyQuit))
	require.NoError(t, tf.Escape())
	require.NoError(t, tf.Escape())

	code, err := tf.Wait(3 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, code)
}

func TestHelpPager(t *testing.T) {
	t.Parallel()
	tf := startWithLanguages(t)

	require.NoError(t, tf.SendKeys(KeyF1))
	require.True(t, tf.OutputContainsPlain("combogrip Help", 5*time.Second))
	require.NoError(t, tf.SendKeys(KeyQuit))
	require.NoError(t, tf.Quit())

	_, err := tf.Wait(3 * time.Second)
	require.NoError(t, err)
}
