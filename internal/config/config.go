// Package config handles application configuration via TOML files.
// Configuration is stored at ~/.config/version-tui/config.toml and can be
// overridden by VERSION_TUI_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/litescript/ls-version-tui/internal/notes"
	"github.com/litescript/ls-version-tui/internal/settings"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "VERSION_TUI_"

// Config holds application configuration
type Config struct {
	Project  ProjectConfig  `toml:"project" envPrefix:"PROJECT_"`
	Settings SettingsConfig `toml:"settings" envPrefix:"SETTINGS_"`
	Notes    NotesConfig    `toml:"notes" envPrefix:"NOTES_"`
	Log      LogConfig      `toml:"log" envPrefix:"LOG_"`
}

// ProjectConfig locates the project being versioned
type ProjectConfig struct {
	// Root is the project directory. Settings and notes paths resolve
	// against it. Defaults to the working directory.
	Root string `toml:"root" env:"ROOT"`

	// ProductName overrides the product name read from the settings store.
	ProductName string `toml:"product_name" env:"PRODUCT_NAME"`
}

// SettingsConfig selects the settings store backend
type SettingsConfig struct {
	// Backend is one of unity, toml, ini.
	Backend string `toml:"backend" env:"BACKEND"`

	// Path is the settings file. Empty uses the backend default
	// (ProjectSettings/ProjectSettings.asset for unity).
	Path string `toml:"path" env:"PATH"`

	// Section is the INI section holding product_name and version.
	Section string `toml:"section" env:"SECTION"`

	// Watch refreshes the current version when the settings file changes.
	Watch bool `toml:"watch" env:"WATCH"`
}

// NotesConfig holds patch notes settings
type NotesConfig struct {
	// Dir is where notes files are written, relative to the project root.
	Dir string `toml:"dir" env:"DIR"`
}

// LogConfig holds logging settings
type LogConfig struct {
	// File receives logs. Empty discards them; the TUI owns the terminal.
	File  string `toml:"file" env:"FILE"`
	Level string `toml:"level" env:"LEVEL"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Project: ProjectConfig{
			Root: ".",
		},
		Settings: SettingsConfig{
			Backend: settings.BackendUnity,
			Section: settings.DefaultINISection,
			Watch:   true,
		},
		Notes: NotesConfig{
			Dir: notes.DefaultDir,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "version-tui", "config.toml")
}

// LoadFrom reads config from path or falls back to defaults when the file
// does not exist, then applies env overrides.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// No config file, keep defaults
	case err != nil:
		return cfg, err
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("environment overrides: %w", err)
	}

	return cfg, nil
}

// Save writes config to disk
func Save(path string, cfg Config) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// ProjectRoot returns the absolute project root
func (c Config) ProjectRoot() (string, error) {
	root := c.Project.Root
	if root == "" {
		root = "."
	}
	return filepath.Abs(root)
}

// NotesDir returns the absolute notes directory
func (c Config) NotesDir() (string, error) {
	dir := c.Notes.Dir
	if dir == "" {
		dir = notes.DefaultDir
	}
	if filepath.IsAbs(dir) {
		return dir, nil
	}
	root, err := c.ProjectRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, dir), nil
}

// StoreOptions maps the settings section onto settings.Open options
func (c Config) StoreOptions() (settings.Options, error) {
	root, err := c.ProjectRoot()
	if err != nil {
		return settings.Options{}, err
	}
	return settings.Options{
		Backend: c.Settings.Backend,
		Path:    c.Settings.Path,
		Root:    root,
		Section: c.Settings.Section,
	}, nil
}
