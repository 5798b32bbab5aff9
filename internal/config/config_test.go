package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"CONFIG", "DEBUG", "STRICT", "SAVED_RESET", "MIGRATIONS_PATH"} {
		t.Setenv(EnvPrefix+key, "")
		os.Unsetenv(EnvPrefix + key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.ConfigPath != "~/.config/huddle/huddle.db" {
		t.Errorf("ConfigPath = %q", cfg.ConfigPath)
	}
	if cfg.Debug || cfg.Strict {
		t.Errorf("Debug/Strict should default to false, got %v/%v", cfg.Debug, cfg.Strict)
	}
	if cfg.SavedResetDelay != 3*time.Second {
		t.Errorf("SavedResetDelay = %v, want 3s", cfg.SavedResetDelay)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HUDDLE_CONFIG", "/tmp/team.json")
	t.Setenv("HUDDLE_DEBUG", "true")
	t.Setenv("HUDDLE_STRICT", "true")
	t.Setenv("HUDDLE_SAVED_RESET", "500ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.ConfigPath != "/tmp/team.json" {
		t.Errorf("ConfigPath = %q", cfg.ConfigPath)
	}
	if !cfg.Debug || !cfg.Strict {
		t.Error("expected Debug and Strict to be true")
	}
	if cfg.SavedResetDelay != 500*time.Millisecond {
		t.Errorf("SavedResetDelay = %v", cfg.SavedResetDelay)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HUDDLE_SAVED_RESET", "soon")
	if _, err := Load(); err == nil {
		t.Error("Load() expected error for invalid duration")
	}
}

func TestValidateFallsBackToDefaultDelay(t *testing.T) {
	cfg := &Config{ConfigPath: "x.db", SavedResetDelay: -time.Second}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if cfg.SavedResetDelay != 3*time.Second {
		t.Errorf("SavedResetDelay = %v, want 3s", cfg.SavedResetDelay)
	}

	empty := &Config{ConfigPath: "  "}
	if err := empty.Validate(); err == nil {
		t.Error("Validate() expected error for empty config path")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	got, err := ExpandPath("~/.config/huddle/huddle.db")
	if err != nil {
		t.Fatalf("ExpandPath() unexpected error: %v", err)
	}
	if want := filepath.Join(home, ".config/huddle/huddle.db"); got != want {
		t.Errorf("ExpandPath() = %q, want %q", got, want)
	}

	if got, _ := ExpandPath("/abs/path.db"); got != "/abs/path.db" {
		t.Errorf("ExpandPath() changed an absolute path: %q", got)
	}
}

func TestIsJSONPath(t *testing.T) {
	tests := map[string]bool{
		"huddle.json": true,
		"HUDDLE.JSON": true,
		"huddle.db":   false,
		"json":        false,
	}
	for path, want := range tests {
		if got := IsJSONPath(path); got != want {
			t.Errorf("IsJSONPath(%q) = %v, want %v", path, got, want)
		}
	}
}
