package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Paths.Output != "analysis/presentation-pipeline/03_integrate_presentation.json" {
		t.Errorf("unexpected default output path: %s", cfg.Paths.Output)
	}
	if !cfg.Validation.InputSchemas || !cfg.Validation.UniqueSlideIDs {
		t.Error("expected input validation to be enabled by default")
	}
	if cfg.Debounce() != 250*time.Millisecond {
		t.Errorf("expected 250ms debounce, got %s", cfg.Debounce())
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		t.Setenv("TEST_DECK_DIR", "decks/q4")

		result := ResolveEnvVars("${TEST_DECK_DIR}/content.json")
		if result != "decks/q4/content.json" {
			t.Errorf("expected decks/q4/content.json, got %s", result)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		result := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}")
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		result := ResolveEnvVars("literal-value")
		if result != "literal-value" {
			t.Errorf("expected literal-value, got %s", result)
		}
	})
}

func TestConfig_ResolvedPaths(t *testing.T) {
	t.Setenv("TEST_DECK_OUT", "build")

	cfg := DefaultConfig()
	cfg.Paths.Output = "${TEST_DECK_OUT}/presentation.json"

	paths := cfg.ResolvedPaths()
	if paths.Output != "build/presentation.json" {
		t.Errorf("expected build/presentation.json, got %s", paths.Output)
	}
	if paths.Content != cfg.Paths.Content {
		t.Errorf("expected content path unchanged, got %s", paths.Content)
	}
}

func TestLogCfg(t *testing.T) {
	tests := []struct {
		level   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"WARN", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			got, err := LogCfg{Level: tt.level}.SlogLevel()
			if (err != nil) != tt.wantErr {
				t.Fatalf("SlogLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	if !(LogCfg{Format: "JSON"}).JSON() {
		t.Error("expected JSON format to be case-insensitive")
	}
	if (LogCfg{Format: "text"}).JSON() {
		t.Error("expected text format")
	}
}

func TestNewManager(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "deck.yaml")

		configContent := `
paths:
  output: out/presentation.json
log:
  level: debug
validation:
  unique_slide_ids: false
`
		if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}

		cfg := mgr.Get()
		if cfg.Paths.Output != "out/presentation.json" {
			t.Errorf("expected out/presentation.json, got %s", cfg.Paths.Output)
		}
		if cfg.Paths.Content != DefaultConfig().Paths.Content {
			t.Errorf("expected default content path, got %s", cfg.Paths.Content)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("expected debug, got %s", cfg.Log.Level)
		}
		if cfg.Validation.UniqueSlideIDs {
			t.Error("expected unique slide ids to be disabled")
		}
		if !cfg.Validation.InputSchemas {
			t.Error("expected input schemas to keep their default")
		}
		if mgr.ConfigFileUsed() != configFile {
			t.Errorf("expected config file %s, got %s", configFile, mgr.ConfigFileUsed())
		}
	})

	t.Run("finds deck.yaml in search path", func(t *testing.T) {
		tmpDir := t.TempDir()
		if err := os.WriteFile(filepath.Join(tmpDir, "deck.yaml"), []byte("watch:\n  debounce_ms: 10\n"), 0644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		mgr, err := NewManager("", tmpDir)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		if mgr.Get().Watch.DebounceMS != 10 {
			t.Errorf("expected debounce 10, got %d", mgr.Get().Watch.DebounceMS)
		}
	})

	t.Run("defaults without config file", func(t *testing.T) {
		mgr, err := NewManager("", t.TempDir())
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		if mgr.Get().Paths != DefaultConfig().Paths {
			t.Errorf("expected default paths, got %+v", mgr.Get().Paths)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("DECK_PATHS_STYLE", "themes/dark.json")
		t.Setenv("DECK_VALIDATION_INPUT_SCHEMAS", "false")

		mgr, err := NewManager("", t.TempDir())
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		cfg := mgr.Get()
		if cfg.Paths.Style != "themes/dark.json" {
			t.Errorf("expected themes/dark.json, got %s", cfg.Paths.Style)
		}
		if cfg.Validation.InputSchemas {
			t.Error("expected input schemas to be disabled by env")
		}
	})

	t.Run("rejects invalid log level", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "deck.yaml")
		if err := os.WriteFile(configFile, []byte("log:\n  level: loud\n"), 0644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}
		if _, err := NewManager(configFile); err == nil {
			t.Error("expected error for invalid log level")
		}
	})

	t.Run("missing explicit config file", func(t *testing.T) {
		if _, err := NewManager(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}

func TestManager_OnChange_Multiple(t *testing.T) {
	mgr, err := NewManager("", t.TempDir())
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	// Register multiple callbacks
	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})

	mgr.mu.RLock()
	if len(mgr.callbacks) != 3 {
		t.Errorf("expected 3 callbacks, got %d", len(mgr.callbacks))
	}
	mgr.mu.RUnlock()
}

func TestManager_WatchConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "deck.yaml")

	configContent := `
paths:
  output: initial.json
`
	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	if mgr.Get().Paths.Output != "initial.json" {
		t.Errorf("initial value mismatch: expected initial.json, got %s", mgr.Get().Paths.Output)
	}

	// Track callback invocations
	var callbackCount atomic.Int32
	var lastValue atomic.Value

	mgr.OnChange(func(cfg *Config) {
		callbackCount.Add(1)
		lastValue.Store(cfg.Paths.Output)
	})

	mgr.WatchConfig()

	// Give fsnotify time to set up the watcher
	time.Sleep(100 * time.Millisecond)

	newContent := `
paths:
  output: updated.json
`
	if err := os.WriteFile(configFile, []byte(newContent), 0644); err != nil {
		t.Fatalf("failed to write updated config file: %v", err)
	}

	// Wait for the watcher to detect the change (fsnotify is async)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if v, _ := lastValue.Load().(string); v == "updated.json" {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	if callbackCount.Load() == 0 {
		t.Fatal("callback was not invoked after config file change")
	}
	if got := mgr.Get().Paths.Output; got != "updated.json" {
		t.Errorf("config not updated: expected updated.json, got %s", got)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("failed to load written defaults: %v", err)
	}
	if *mgr.Get() != *DefaultConfig() {
		t.Errorf("expected written defaults to round trip, got %+v", mgr.Get())
	}
}
