// Package config handles loading and saving mindweave configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/mw/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/mindweave/pkg/layout"
)

// LayoutConfig overrides simulation tuning parameters. Pointer fields
// distinguish "not set" from an explicit zero.
type LayoutConfig struct {
	Margin        *float64 `yaml:"margin,omitempty"`
	LinkDistance  *float64 `yaml:"link_distance,omitempty"`
	LinkStrength  *float64 `yaml:"link_strength,omitempty"`
	Charge        *float64 `yaml:"charge,omitempty"`
	AlphaDecay    *float64 `yaml:"alpha_decay,omitempty"`
	VelocityDecay *float64 `yaml:"velocity_decay,omitempty"`
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	ShowHelp  bool   `yaml:"show_help,omitempty"` // Expanded help footer on startup
	Theme     string `yaml:"theme,omitempty"`     // auto, light, dark
	FrameRate int    `yaml:"frame_rate,omitempty"`
}

// Config is the top-level configuration for mw.
type Config struct {
	Layout LayoutConfig `yaml:"layout,omitempty"`
	UI     UIConfig     `yaml:"ui,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			Theme:     "auto",
			FrameRate: 30,
		},
	}
}

// ConfigDir returns the XDG config directory for mw.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "mw")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mw")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(expandHome(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.UI.FrameRate <= 0 {
		cfg.UI.FrameRate = 30
	}

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ApplyLayout merges the configured overrides onto a set of layout options.
func (c Config) ApplyLayout(opts layout.Options) layout.Options {
	if c.Layout.Margin != nil {
		opts.Margin = *c.Layout.Margin
	}
	if c.Layout.LinkDistance != nil {
		opts.LinkDistance = *c.Layout.LinkDistance
	}
	if c.Layout.LinkStrength != nil {
		opts.LinkStrength = *c.Layout.LinkStrength
	}
	if c.Layout.Charge != nil {
		opts.Charge = *c.Layout.Charge
	}
	if c.Layout.AlphaDecay != nil {
		opts.AlphaDecay = *c.Layout.AlphaDecay
	}
	if c.Layout.VelocityDecay != nil {
		opts.VelocityDecay = *c.Layout.VelocityDecay
	}
	return opts
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
