package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"combogrip/internal/eventbus"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cs := NewConfigService(filepath.Join(t.TempDir(), "missing.toml"))
	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[combobox]
selection_strategy = "auto"
maximum_displayed_items = 5

[sources]
files = ["langs.txt"]
`), 0644))

	cfg, err := NewConfigService(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Combobox.SelectionStrategy)
	assert.Equal(t, 5, cfg.Combobox.MaximumDisplayedItems)
	assert.Equal(t, 50, cfg.Combobox.InputDebounceMillis)
	assert.Equal(t, []string{"langs.txt"}, cfg.Sources.Files)
	assert.True(t, cfg.Combobox.CloseOnAutoSelect)
}

func TestLoadRejectsInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[combobox\n"), 0644))

	_, err := NewConfigService(path).Load()
	assert.Error(t, err)
}

func TestSaveRoundTripAndEvents(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	saved := make(chan string, 1)
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		saved <- e.(eventbus.ConfigSavedEvent).Path
	})

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cs := NewConfigServiceWithBus(path, bus)

	cfg := DefaultConfig()
	cfg.Sources.Files = []string{"langs.txt"}
	cfg.Sources.RepoRoots = []string{"~/code"}
	require.NoError(t, cs.Save(cfg))

	loaded, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	select {
	case got := <-saved:
		assert.Equal(t, path, got)
	case <-time.After(time.Second):
		t.Fatal("ConfigSavedEvent not delivered")
	}
}

func TestValidateNormalizes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Combobox.Filter = "Fuzzy"
	cfg.Combobox.SelectionStrategy = "sometimes"
	cfg.Combobox.MaximumDisplayedItems = -3
	cfg.Combobox.RenderDebounceMillis = 0
	cfg.UI.Layout = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selection_strategy")
	assert.Contains(t, err.Error(), "maximum_displayed_items")

	assert.Equal(t, "fuzzy", cfg.Combobox.Filter)
	assert.Equal(t, "manual", cfg.Combobox.SelectionStrategy)
	assert.Equal(t, 20, cfg.Combobox.MaximumDisplayedItems)
	assert.Equal(t, 0, cfg.Combobox.RenderDebounceMillis)
	assert.Equal(t, "top", cfg.UI.Layout)
}

func TestValidateDefaultsIsClean(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}
