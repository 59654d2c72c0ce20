// Copyright 2026 The Glmbridge Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/glmbridge/internal/config"
)

// Init-specific flag values.
var initForce bool

// starterConfig is written by glmbridge init. Kept as a literal so the
// generated file carries comments; a YAML round-trip would lose them.
const starterConfig = `# glmbridge project configuration.
# Values here override ~/.config/glmbridge/config.yaml.

# base_url: https://api.z.ai/api/anthropic
# timeout_ms: 300000

# Remap or extend the built-in alias table.
# models:
#   opus: glm-4.6
#   haiku: glm-4.5-air

# Toggle the built-in tool groups. CLI tools default to on.
tools:
  cli: true
  # web_search: true
  # doc_reader: true

# allowed_tools:
#   - mcp__my_server__my_tool
# disallowed_tools:
#   - WebFetch

# servers:
#   my_server:
#     transport: stdio
#     command: npx
#     args: ["-y", "@example/mcp-server"]
`

// initCmd writes a starter .glmbridge.yaml.
var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter .glmbridge.yaml",
	Long: `Create a commented starter .glmbridge.yaml in the project root.

This command is non-destructive by default: it refuses to overwrite an
existing config file. Use --force to regenerate it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := projectPath(args)
	if err != nil {
		return err
	}

	target := filepath.Join(path, config.FileName)
	if _, err := os.Stat(target); err == nil && !initForce {
		return exitError(ExitInvalidArgs, "glmbridge: %s already exists (use --force to overwrite)", target)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("glmbridge: cannot stat %s (%w)", target, err)
	}

	if err := os.WriteFile(target, []byte(starterConfig), 0o644); err != nil { //nolint:gosec // project config, not a secret
		return fmt.Errorf("glmbridge: cannot write %s (%w)", target, err)
	}

	green := color.New(color.FgGreen)
	_, _ = green.Fprintf(cmd.OutOrStdout(), "wrote %s\n", target)
	return nil
}
