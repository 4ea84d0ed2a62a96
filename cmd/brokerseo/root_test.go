package main

import (
	"bytes"
	"testing"
)

// runCLI executes the root command with args and an isolated data directory.
// It returns stdout; stderr is discarded.
func runCLI(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--data-dir", dataDir))

	err := cmd.Execute()
	return out.String(), err
}

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "brokerseo" {
			t.Errorf("expected use 'brokerseo', got %q", cmd.Use)
		}
	})

	t.Run("has descriptions and version", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" || cmd.Long == "" {
			t.Error("expected non-empty descriptions")
		}
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has global flags", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name      string
			shorthand string
			def       string
		}{
			{name: "verbose", shorthand: "v", def: "false"},
			{name: "log-json", shorthand: "", def: "false"},
			{name: "config", shorthand: "c", def: ""},
			{name: "data-dir", shorthand: "", def: ""},
		}
		for _, tt := range tests {
			flag := cmd.PersistentFlags().Lookup(tt.name)
			if flag == nil {
				t.Errorf("expected %s flag", tt.name)
				continue
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("%s: expected shorthand %q, got %q", tt.name, tt.shorthand, flag.Shorthand)
			}
			if flag.DefValue != tt.def {
				t.Errorf("%s: expected default %q, got %q", tt.name, tt.def, flag.DefValue)
			}
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		want := []string{"pages", "render", "build", "history", "sitemap", "search", "compare", "serve", "init", "version"}
		have := make(map[string]bool)
		for _, sub := range cmd.Commands() {
			have[sub.Name()] = true
		}
		for _, name := range want {
			if !have[name] {
				t.Errorf("expected %s subcommand", name)
			}
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()
		if !cmd.SilenceUsage {
			t.Error("expected SilenceUsage to be true")
		}
		if !cmd.SilenceErrors {
			t.Error("expected SilenceErrors to be true")
		}
	})
}

func TestRootCmd_MissingExplicitConfig(t *testing.T) {
	t.Parallel()

	_, err := runCLI(t, t.TempDir(), "pages", "--config", "/nonexistent/.brokerseo")
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}
