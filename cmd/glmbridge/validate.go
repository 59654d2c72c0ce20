// Copyright 2026 The Glmbridge Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/glmbridge/internal/config"
)

// validateCmd checks the merged config without resolving credentials.
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate the configuration for a project",
	Long: `Validate the merged global and project configuration. All problems are
reported at once: negative timeouts, empty alias mappings, and MCP server
entries whose fields do not match their transport.

No API key is required; validation never touches the network.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path, err := projectPath(args)
	if err != nil {
		return err
	}
	merged, err := loadMergedConfig(path)
	if err != nil {
		return err
	}

	if err := config.Validate(merged); err != nil {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), err)
		return exitError(ExitInvalidArgs, "")
	}

	green := color.New(color.FgGreen)
	_, _ = green.Fprintln(cmd.OutOrStdout(), "configuration is valid")
	return nil
}
