// Package config provides user preferences for clid: the watched music
// directory, the status preview format, feature options, and keybindings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	configDirName  = ".config/clid"
	configFileName = "config.yaml"
)

// Config is the user configuration loaded from ~/.config/clid/config.yaml.
// Missing values fall back to defaults, so a partial file is fine.
type Config struct {
	// MusicDir is the directory scanned for audio files.
	MusicDir string `yaml:"music_dir"`

	// PreviewFormat is a template rendered into the status line for the
	// file under the cursor. Tag fields are available as .Title, .Artist,
	// .Album, .AlbumArtist, .Genre, .Date, .Track and .Comment.
	PreviewFormat string `yaml:"preview_format"`

	// Options are named feature toggles (vim_mode, smooth_scroll, ...).
	Options map[string]bool `yaml:"options"`

	// Keys maps action names to keys, overriding the defaults.
	Keys map[string]string `yaml:"keys"`
}

var defaultOptions = map[string]bool{
	"vim_mode":      true,
	"smooth_scroll": true,
	"fuzzy_search":  false,
}

var defaultKeys = map[string]string{
	"quit":        "q",
	"reload":      "u",
	"search":      "/",
	"command":     ":",
	"mark":        " ",
	"confirm":     "enter",
	"cancel":      "esc",
	"yank":        "y",
	"up":          "up",
	"down":        "down",
	"top":         "home",
	"bottom":      "end",
	"page_up":     "pgup",
	"page_down":   "pgdown",
	"save_tags":   "ctrl+s",
	"cancel_tags": "esc",
	"complete":    "tab",
	"insert_exit": "esc",
	"field_prev":  "shift+tab",
	"field_next":  "tab",
}

// DefaultPreviewFormat is used when the config file sets no preview_format.
const DefaultPreviewFormat = "{{ .Artist }} - {{ .Album }} - {{ .Title }}"

// Default returns a Config populated with every default.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()

	return cfg
}

// Path returns the config file location under the user's home directory.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, configDirName, configFileName), nil
}

// Load reads the config file at the default location. A missing file is not
// an error: defaults are returned so first runs work out of the box.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads the config file at path, merging defaults for anything the
// file leaves unset.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the user's own config
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}

		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// Save writes the config to the default location, creating the directory
// if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.PreviewFormat == "" {
		c.PreviewFormat = DefaultPreviewFormat
	}

	if c.Options == nil {
		c.Options = map[string]bool{}
	}
	for name, value := range defaultOptions {
		if _, ok := c.Options[name]; !ok {
			c.Options[name] = value
		}
	}

	if c.Keys == nil {
		c.Keys = map[string]string{}
	}
	for action, key := range defaultKeys {
		if _, ok := c.Keys[action]; !ok {
			c.Keys[action] = key
		}
	}
}

// Key returns the key bound to the named action, or "" for an unknown action.
func (c *Config) Key(action string) string {
	return c.Keys[action]
}

// OptionEnabled reports whether the named option is on. Unknown options
// are off.
func (c *Config) OptionEnabled(name string) bool {
	return c.Options[name]
}

// SetOption flips an option at runtime. Returns false for options that do
// not exist, so callers can report a typo instead of silently creating one.
func (c *Config) SetOption(name string, value bool) bool {
	if _, ok := defaultOptions[name]; !ok {
		return false
	}
	c.Options[name] = value

	return true
}
