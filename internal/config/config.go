package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"combogrip/internal/eventbus"
)

// FileName is the per-directory config file looked up before the user config
const FileName = ".combogrip.toml"

// Config represents the application configuration
type Config struct {
	Version  int              `toml:"version"`
	Combobox ComboboxSettings `toml:"combobox"`
	Sources  SourceSettings   `toml:"sources"`
	UI       UISettings       `toml:"ui"`
}

// ComboboxSettings configures the selection widget
type ComboboxSettings struct {
	Filter                string `toml:"filter"`    // substring, fuzzy, ranked
	FilterBy              string `toml:"filter_by"` // label, detail, source
	SelectionStrategy     string `toml:"selection_strategy"`
	MaximumDisplayedItems int    `toml:"maximum_displayed_items"`
	InputDebounceMillis   int    `toml:"input_debounce_millis"`
	RenderDebounceMillis  int    `toml:"render_debounce_millis"`
	OpenDropdown          string `toml:"open_dropdown"`       // eager, lazy
	ActiveIndexPolicy     string `toml:"active_index_policy"` // reset, preserve
	CloseOnAutoSelect     bool   `toml:"close_on_auto_select"`
}

// SourceSettings lists where candidates come from
type SourceSettings struct {
	Files     []string `toml:"files"`
	RepoRoots []string `toml:"repo_roots"`
	MaxDepth  int      `toml:"max_depth"`
	Watch     bool     `toml:"watch"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	PanelHeight     int    `toml:"panel_height"`
	ShowHelp        bool   `toml:"show_help"`
	CopyToClipboard bool   `toml:"copy_to_clipboard"`
	Prompt          string `toml:"prompt"`
	Layout          string `toml:"layout"` // top, bottom
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service. An explicit path wins; otherwise
// ./.combogrip.toml is used when present, else the user config file.
func NewConfigService(path string) ConfigService {
	return &configService{filePath: resolvePath(path)}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func resolvePath(path string) string {
	if path != "" {
		return path
	}
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "combogrip", "config.toml")
}

// Path returns the file Load and Save use
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration; a missing file yields the defaults
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Missing keys keep
// their defaults.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Combobox: ComboboxSettings{
			Filter:                "substring",
			FilterBy:              "label",
			SelectionStrategy:     "manual",
			MaximumDisplayedItems: 20,
			InputDebounceMillis:   50,
			RenderDebounceMillis:  50,
			OpenDropdown:          "lazy",
			ActiveIndexPolicy:     "reset",
			CloseOnAutoSelect:     true,
		},
		Sources: SourceSettings{
			MaxDepth: 5,
		},
		UI: UISettings{
			PanelHeight: 10,
			ShowHelp:    true,
			Prompt:      "Select",
			Layout:      "top",
		},
	}
}
