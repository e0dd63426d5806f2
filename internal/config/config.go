// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/themepanel/internal/theme"
)

const appName = "themepanel"

// Default configuration values.
const (
	DefaultSelector     = ":root"
	DefaultCSSRoot      = "styles"
	DefaultDelta        = 15.0
	DefaultHueStep      = 5.0
	DefaultStep         = 2.0
	DefaultDocumentName = "document.yaml"
	JournalSuffix       = ".journal.jsonl"
	DefaultDebounce     = 200 * time.Millisecond
)

// ErrNoDocument is returned when no document path can be determined.
var ErrNoDocument = errors.New("no document path configured")

// Kind selects how a document is treated by the commands.
type Kind string

const (
	KindTheme    Kind = "theme"
	KindSettings Kind = "settings"
)

// ValidKinds returns all valid document kinds.
func ValidKinds() []Kind {
	return []Kind{KindTheme, KindSettings}
}

// Config represents the themepanel configuration.
type Config struct {
	Document DocumentConfig `toml:"document"`
	CSS      CSSConfig      `toml:"css"`
	Variants VariantsConfig `toml:"variants"`
	Journal  JournalConfig  `toml:"journal"`
	Editor   EditorConfig   `toml:"editor"`
	Watch    WatchConfig    `toml:"watch"`
}

// DocumentConfig points at the document being edited.
type DocumentConfig struct {
	Path  string `toml:"path"`  // Empty = DocumentPath()
	Kind  Kind   `toml:"kind"`  // theme, settings
	Theme string `toml:"theme"` // Theme used by init when none is given
}

// CSSConfig controls custom property generation.
type CSSConfig struct {
	Selector string            `toml:"selector"`
	Prefix   string            `toml:"prefix"`
	Root     string            `toml:"root"`  // Subtree exported, empty = whole document
	Units    map[string]string `toml:"units"` // Key suffix -> unit for bare numbers
}

// VariantsConfig controls light/dark brand colour derivation.
type VariantsConfig struct {
	LightDelta float64  `toml:"light_delta"`
	DarkDelta  float64  `toml:"dark_delta"`
	Keys       []string `toml:"keys"`
}

// JournalConfig controls the edit journal.
type JournalConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // Empty = JournalPath(document)
}

// EditorConfig holds colour editor key steps.
type EditorConfig struct {
	HueStep float64 `toml:"hue_step"` // Degrees per hue nudge
	Step    float64 `toml:"step"`     // Percentage points per saturation/lightness nudge
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	Debounce Duration `toml:"debounce"` // e.g. "200ms"
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	css := theme.DefaultCSSOptions()
	variants := theme.DefaultVariantOptions()

	return &Config{
		Document: DocumentConfig{
			Kind:  KindTheme,
			Theme: theme.DefaultThemeName,
		},
		CSS: CSSConfig{
			Selector: DefaultSelector,
			Root:     DefaultCSSRoot,
			Units:    css.Units,
		},
		Variants: VariantsConfig{
			LightDelta: DefaultDelta,
			DarkDelta:  DefaultDelta,
			Keys:       variants.Keys,
		},
		Journal: JournalConfig{
			Enabled: true,
		},
		Editor: EditorConfig{
			HueStep: DefaultHueStep,
			Step:    DefaultStep,
		},
		Watch: WatchConfig{
			Debounce: Duration(DefaultDebounce),
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName, "config.toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appName)
}

// DocumentPath returns the default document path.
func DocumentPath() string {
	return filepath.Join(DataPath(), DefaultDocumentName)
}

// JournalPath returns the default journal for document: a hidden sidecar
// file in the same directory.
func JournalPath(document string) string {
	dir, base := filepath.Split(document)
	return filepath.Join(dir, "."+base+JournalSuffix)
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(ValidKinds(), c.Document.Kind) {
		return fmt.Errorf("invalid document kind %q, must be one of: %v", c.Document.Kind, ValidKinds())
	}
	if c.Variants.LightDelta < 0 || c.Variants.LightDelta > 100 {
		return fmt.Errorf("light_delta must be between 0 and 100, got %v", c.Variants.LightDelta)
	}
	if c.Variants.DarkDelta < 0 || c.Variants.DarkDelta > 100 {
		return fmt.Errorf("dark_delta must be between 0 and 100, got %v", c.Variants.DarkDelta)
	}
	if c.Editor.HueStep <= 0 || c.Editor.Step <= 0 {
		return fmt.Errorf("editor steps must be positive, got hue_step=%v step=%v", c.Editor.HueStep, c.Editor.Step)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative, got %s", c.Watch.Debounce.Duration())
	}
	return nil
}

// DocumentFile returns the document to operate on: override when set,
// then the configured path, then DocumentPath().
func (c *Config) DocumentFile(override string) (string, error) {
	path := override
	if path == "" {
		path = c.Document.Path
	}
	if path == "" {
		if DataPath() == "" {
			return "", ErrNoDocument
		}
		path = DocumentPath()
	}
	return expandPath(path), nil
}

// JournalFile returns the journal for document, or "" when journaling is
// disabled.
func (c *Config) JournalFile(document string) string {
	if !c.Journal.Enabled {
		return ""
	}
	if c.Journal.Path != "" {
		return expandPath(c.Journal.Path)
	}
	return JournalPath(document)
}

// CSSOptions converts the [css] section.
func (c *Config) CSSOptions() theme.CSSOptions {
	return theme.CSSOptions{
		Selector: c.CSS.Selector,
		Prefix:   c.CSS.Prefix,
		Root:     c.CSS.Root,
		Units:    c.CSS.Units,
	}
}

// VariantOptions converts the [variants] section. Variants live under the
// same subtree that is exported as CSS.
func (c *Config) VariantOptions() theme.VariantOptions {
	return theme.VariantOptions{
		Root:       c.CSS.Root,
		Keys:       c.Variants.Keys,
		LightDelta: c.Variants.LightDelta,
		DarkDelta:  c.Variants.DarkDelta,
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
