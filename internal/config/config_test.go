package config

import (
	"os"
	"path/filepath"
	"testing"
)

func noEnv(string) string { return "" }

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom([]string{filepath.Join(t.TempDir(), "missing.toml")}, noEnv)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.DataFile != DefaultDataFile || cfg.HistoryLimit != DefaultHistoryLimit || cfg.Theme != DefaultTheme {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Log.Level != DefaultLogLevel || cfg.Log.Format != DefaultLogFormat {
		t.Errorf("log defaults = %+v", cfg.Log)
	}
}

func TestLoadFromLayering(t *testing.T) {
	dir := t.TempDir()
	user := writeFile(t, dir, "user.toml", `
data_file = "user.json"
theme = "neon"
history_limit = 10

[log]
level = "debug"
`)
	project := writeFile(t, dir, "project.toml", `
data_file = "project.json"
`)

	cfg, err := LoadFrom([]string{user, project}, envMap(map[string]string{
		"TADA_HISTORY_LIMIT": "5",
		"TADA_LOG_FORMAT":    "json",
	}))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.DataFile != "project.json" {
		t.Errorf("DataFile = %q, project file should win", cfg.DataFile)
	}
	if cfg.Theme != "neon" {
		t.Errorf("Theme = %q", cfg.Theme)
	}
	if cfg.HistoryLimit != 5 {
		t.Errorf("HistoryLimit = %d, env should win", cfg.HistoryLimit)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoadFromErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name  string
		files []string
		env   map[string]string
	}{
		{"bad toml", []string{writeFile(t, dir, "bad.toml", "data_file = ")}, nil},
		{"bad history env", nil, map[string]string{"TADA_HISTORY_LIMIT": "lots"}},
		{"zero history", nil, map[string]string{"TADA_HISTORY_LIMIT": "0"}},
		{"unknown theme", nil, map[string]string{"TADA_THEME": "rainbow"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFrom(tt.files, envMap(tt.env)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if got := expandPath("~/todos.json"); got != filepath.Join(home, "todos.json") {
		t.Errorf("expandPath = %q", got)
	}
	t.Setenv("TADA_TEST_DIR", "/tmp/x")
	if got := expandPath("$TADA_TEST_DIR/a.json"); got != "/tmp/x/a.json" {
		t.Errorf("expandPath = %q", got)
	}
}
