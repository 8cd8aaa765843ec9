// Package config loads tada settings from defaults, TOML files and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultDataFile       = "todos.json"
	DefaultLegacyDataFile = "todos.legacy.json"
	DefaultTheme          = "classic"
	DefaultHistoryLimit   = 25
	DefaultExportDir      = "."
	DefaultLogLevel       = "warn"
	DefaultLogFormat      = "text"

	// ProjectFileName is looked up in the working directory.
	ProjectFileName = ".tada.toml"
)

// Themes known to the ui package.
var Themes = []string{"classic", "neon", "mono"}

// Config holds every tunable.
type Config struct {
	DataFile       string    `toml:"data_file"`
	LegacyDataFile string    `toml:"legacy_data_file"`
	Theme          string    `toml:"theme"`
	HistoryLimit   int       `toml:"history_limit"`
	ExportDir      string    `toml:"export_dir"`
	Log            LogConfig `toml:"log"`
}

// LogConfig selects the logger level and output format.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DataFile:       DefaultDataFile,
		LegacyDataFile: DefaultLegacyDataFile,
		Theme:          DefaultTheme,
		HistoryLimit:   DefaultHistoryLimit,
		ExportDir:      DefaultExportDir,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load loads configuration in priority order:
// 1. Defaults
// 2. User config file (~/.tada/config.toml)
// 3. Project config file (.tada.toml in the working directory)
// 4. Environment variables (TADA_*)
//
// CLI flags are applied on top by the caller.
func Load() (*Config, error) {
	var files []string
	if p, err := UserConfigFile(); err == nil {
		files = append(files, p)
	}
	files = append(files, ProjectFileName)
	return LoadFrom(files, os.Getenv)
}

// LoadFrom layers the given TOML files (missing ones are skipped) and then
// the environment read through getenv.
func LoadFrom(files []string, getenv func(string) string) (*Config, error) {
	cfg := Default()
	for _, path := range files {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := loadEnv(cfg, getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// UserConfigFile returns ~/.tada/config.toml.
func UserConfigFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".tada", "config.toml"), nil
}

// Validate checks values that would break the session or renderer.
func (c *Config) Validate() error {
	themes := make([]any, len(Themes))
	for i, t := range Themes {
		themes[i] = t
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.DataFile, validation.Required),
		validation.Field(&c.HistoryLimit, validation.Required, validation.Min(1)),
		validation.Field(&c.Theme, validation.Required, validation.In(themes...)),
	)
}

func loadFile(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(expandPath(path), cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	return nil
}

func loadEnv(cfg *Config, getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	str("TADA_DATA_FILE", &cfg.DataFile)
	str("TADA_LEGACY_DATA_FILE", &cfg.LegacyDataFile)
	str("TADA_THEME", &cfg.Theme)
	str("TADA_EXPORT_DIR", &cfg.ExportDir)
	str("TADA_LOG_LEVEL", &cfg.Log.Level)
	str("TADA_LOG_FORMAT", &cfg.Log.Format)

	if v := strings.TrimSpace(getenv("TADA_HISTORY_LIMIT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TADA_HISTORY_LIMIT: not a number: %s", v)
		}
		cfg.HistoryLimit = n
	}
	cfg.DataFile = expandPath(cfg.DataFile)
	cfg.LegacyDataFile = expandPath(cfg.LegacyDataFile)
	cfg.ExportDir = expandPath(cfg.ExportDir)
	return nil
}

// expandPath expands a leading ~/ and $VARS.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}
