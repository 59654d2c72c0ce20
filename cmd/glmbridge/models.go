// Copyright 2026 The Glmbridge Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/glmbridge/internal/settings"
)

// modelsCmd lists the alias table in effect for a project.
var modelsCmd = &cobra.Command{
	Use:   "models [path]",
	Short: "List model aliases and the GLM models they resolve to",
	Long: `List the model alias table in effect for a project. The built-in table
maps opus, sonnet, and haiku to GLM models; a project's models section can
remap or extend it.

No credentials are needed; this reads only the config files.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runModels,
}

func runModels(cmd *cobra.Command, args []string) error {
	path, err := projectPath(args)
	if err != nil {
		return err
	}
	merged, err := loadMergedConfig(path)
	if err != nil {
		return err
	}

	table := settings.DefaultAliasTable()
	if len(merged.Models) > 0 {
		table = table.WithOverrides(merged.Models)
	}

	w := cmd.OutOrStdout()
	cyan := color.New(color.FgCyan)
	for _, alias := range table.Aliases() {
		sku, _ := table.SKU(alias)
		_, _ = cyan.Fprintf(w, "%-10s", alias)
		_, _ = fmt.Fprintf(w, " %s\n", sku)
	}
	return nil
}
