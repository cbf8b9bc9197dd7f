package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackzampolin/deck/internal/config"
	"github.com/jackzampolin/deck/internal/pipeline"
	"github.com/jackzampolin/deck/internal/testutil"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, exitOK},
		{"no valid input", &pipeline.NoValidInputError{}, exitNoValidInput},
		{"document load", &pipeline.DocumentLoadError{Document: "01_contents_slides.json", Err: errors.New("bad")}, exitLoad},
		{"validation", &pipeline.ValidationError{Failures: []error{pipeline.ErrNoSlides}}, exitValidation},
		{"wrapped load", fmt.Errorf("integrate: %w", &pipeline.DocumentLoadError{Err: errors.New("bad")}), exitLoad},
		{"other", errors.New("disk full"), exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

// execute runs the root command in a fresh project root and returns stdout.
func execute(t *testing.T, root string, args ...string) (string, error) {
	t.Helper()
	cfgFile, homeDir, outputFormat = "", "", "yaml"
	analyzeOut, checkSchema, configForce = "", "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--home", root}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func writeDoc(t *testing.T, root, rel, body string) {
	t.Helper()
	testutil.WriteFiles(t, root, map[string]string{rel: body})
}

func TestIntegrateCommand(t *testing.T) {
	defaults := config.DefaultConfig().Paths

	t.Run("content and theme", func(t *testing.T) {
		root := t.TempDir()
		writeDoc(t, root, defaults.Content, `{"slides":[{"id":"s1","type":"title","elements":{"title":{"text":"Intro"}}}]}`)
		writeDoc(t, root, defaults.Style, `{"designTokens":{},"slideTemplates":{"title":{"background":{"default":"blue"}}}}`)

		out, err := execute(t, root, "integrate", "-o", "json")
		if err != nil {
			t.Fatalf("integrate failed: %v", err)
		}

		var summary runSummary
		if err := json.Unmarshal([]byte(out), &summary); err != nil {
			t.Fatalf("summary is not JSON: %v\n%s", err, out)
		}
		if summary.Mode != "content-and-theme" || summary.Project != "Intro" || !summary.Valid {
			t.Errorf("unexpected summary: %+v", summary)
		}
		if summary.Output != defaults.Output {
			t.Errorf("expected output %s, got %s", defaults.Output, summary.Output)
		}
		if _, err := os.Stat(filepath.Join(root, defaults.Output)); err != nil {
			t.Errorf("expected output file: %v", err)
		}
	})

	t.Run("no inputs", func(t *testing.T) {
		root := t.TempDir()
		_, err := execute(t, root)
		if exitCode(err) != exitNoValidInput {
			t.Errorf("expected no valid input exit code, got %d (%v)", exitCode(err), err)
		}
		if _, statErr := os.Stat(filepath.Join(root, defaults.Output)); !os.IsNotExist(statErr) {
			t.Error("expected no output file")
		}
	})

	t.Run("validation failure prints summary", func(t *testing.T) {
		root := t.TempDir()
		writeDoc(t, root, defaults.Content, `{"slides":[]}`)
		writeDoc(t, root, defaults.Style, `{"slideTemplates":{}}`)

		out, err := execute(t, root, "integrate")
		if exitCode(err) != exitValidation {
			t.Fatalf("expected validation exit code, got %d (%v)", exitCode(err), err)
		}
		if !strings.Contains(out, "valid: false") || !strings.Contains(out, "failures:") {
			t.Errorf("expected failures in summary, got:\n%s", out)
		}
	})
}

func TestConfigInitCommand(t *testing.T) {
	root := t.TempDir()

	if _, err := execute(t, root, "config", "init"); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "deck.yaml")); err != nil {
		t.Fatalf("expected deck.yaml: %v", err)
	}

	if _, err := execute(t, root, "config", "init"); err == nil {
		t.Error("expected error when deck.yaml exists")
	}
	if _, err := execute(t, root, "config", "init", "--force"); err != nil {
		t.Errorf("config init --force failed: %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, t.TempDir(), "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "deck ") {
		t.Errorf("unexpected version output: %s", out)
	}
}
