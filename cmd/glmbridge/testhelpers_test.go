// Copyright 2026 The Glmbridge Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/davetashner/glmbridge/internal/redact"
)

// setupProject isolates the global config dir, sets a fake API key, and
// writes an optional project config. Returns the project directory.
func setupProject(t *testing.T, yaml string) string {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ZAI_API_KEY", "test-key-1234567890")
	redact.ResetForTest()
	t.Cleanup(redact.ResetForTest)

	dir := t.TempDir()
	if yaml != "" {
		if err := os.WriteFile(filepath.Join(dir, ".glmbridge.yaml"), []byte(yaml), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}
	return dir
}

// resetFlags restores every command's flags to their default values so
// tests do not leak state into each other through the package-level flag
// variables.
func resetFlags() {
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, cmd := range rootCmd.Commands() {
		reset(cmd.Flags())
		for _, sub := range cmd.Commands() {
			reset(sub.Flags())
		}
	}
	apiKey = ""
}

// runCLI executes the root command with the given args, capturing output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--no-color"}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}
