// Copyright 2026 The Glmbridge Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Env-specific flag values.
var envShell bool

// envCmd prints the generated environment for the underlying tooling.
var envCmd = &cobra.Command{
	Use:   "env [path]",
	Short: "Print the environment glmbridge injects",
	Long: `Print the environment variables glmbridge generates for a project: the
GLM base URL, auth token, request timeout, and one model pin per alias.

The output contains the real credential value, since its purpose is to be
consumed by the tooling. Use --shell to emit eval-able export lines:

  eval "$(glmbridge env --shell)"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEnv,
}

func init() {
	envCmd.Flags().BoolVar(&envShell, "shell", false, "emit shell export lines")
	envCmd.Flags().StringVar(&apiKey, "key", "", "API key (defaults to ZAI_API_KEY)")
}

func runEnv(cmd *cobra.Command, args []string) error {
	path, err := projectPath(args)
	if err != nil {
		return err
	}
	res, err := loadSettings(path)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, k := range sortedKeys(res.Env) {
		if envShell {
			_, _ = fmt.Fprintf(w, "export %s='%s'\n", k, shellQuote(res.Env[k]))
		} else {
			_, _ = fmt.Fprintf(w, "%s=%s\n", k, res.Env[k])
		}
	}
	return nil
}

// shellQuote escapes single quotes for use inside a single-quoted string.
func shellQuote(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}
