// Copyright 2026 The Glmbridge Authors
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/glmbridge/internal/redact"
	"github.com/davetashner/glmbridge/internal/settings"
)

// Resolve-specific flag values.
var (
	resolveModel string
	resolveJSON  bool
)

// resolveCmd prints the fully resolved settings for a project.
var resolveCmd = &cobra.Command{
	Use:   "resolve [path]",
	Short: "Show the effective settings for a project",
	Long: `Resolve and print the effective agent settings for a project: the alias
table, tool allowlists, prompts, generated environment, and MCP server
wiring. Global config (~/.config/glmbridge/config.yaml) is merged with the
project's .glmbridge.yaml, project values winning.

Credential values are redacted in the output; use 'glmbridge env' to emit
the real environment.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveModel, "model", "", "also resolve a model name or alias")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "emit JSON instead of a human-readable summary")
	resolveCmd.Flags().StringVar(&apiKey, "key", "", "API key (defaults to ZAI_API_KEY)")
}

func runResolve(cmd *cobra.Command, args []string) error {
	path, err := projectPath(args)
	if err != nil {
		return err
	}
	res, err := loadSettings(path)
	if err != nil {
		return err
	}

	var resolvedSKU string
	if resolveModel != "" {
		resolvedSKU, err = res.Aliases.ResolveSKU(resolveModel)
		if err != nil {
			return exitError(ExitInvalidArgs, "glmbridge: %v", err)
		}
	}

	w := cmd.OutOrStdout()
	if resolveJSON {
		out := map[string]any{
			"allowed_tools":    res.AllowedTools,
			"disallowed_tools": res.DisallowedTools,
			"system_prompt":    res.SystemPrompt,
			"append_prompt":    res.AppendPrompt,
			"env":              res.Env,
			"servers":          res.Servers,
		}
		if resolvedSKU != "" {
			out["model"] = resolvedSKU
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w, redact.Secret(string(data), apiKey))
		return nil
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	if resolvedSKU != "" {
		_, _ = bold.Fprint(w, "model: ")
		_, _ = fmt.Fprintln(w, resolvedSKU)
		_, _ = fmt.Fprintln(w)
	}

	_, _ = bold.Fprintln(w, "aliases")
	for _, alias := range res.Aliases.Aliases() {
		sku, _ := res.Aliases.SKU(alias)
		_, _ = fmt.Fprintf(w, "  %-8s -> %s\n", alias, sku)
	}

	printList(w, bold, "allowed tools", res.AllowedTools)
	printList(w, bold, "disallowed tools", res.DisallowedTools)

	if res.SystemPrompt != "" {
		_, _ = fmt.Fprintln(w)
		_, _ = bold.Fprintln(w, "system prompt")
		_, _ = dim.Fprintln(w, indent(res.SystemPrompt))
	}
	if res.AppendPrompt != "" {
		_, _ = fmt.Fprintln(w)
		_, _ = bold.Fprintln(w, "append prompt")
		_, _ = dim.Fprintln(w, indent(res.AppendPrompt))
	}

	_, _ = fmt.Fprintln(w)
	_, _ = bold.Fprintln(w, "environment")
	for _, k := range sortedKeys(res.Env) {
		_, _ = fmt.Fprintf(w, "  %s=%s\n", k, redact.Secret(res.Env[k], apiKey))
	}

	if len(res.Servers) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = bold.Fprintln(w, "mcp servers")
		for _, id := range sortedServerIDs(res.Servers) {
			cfg := res.Servers[id]
			switch cfg.Transport {
			case settings.TransportHTTP:
				_, _ = fmt.Fprintf(w, "  %-12s http   %s\n", id, cfg.Endpoint)
			case settings.TransportStdio:
				_, _ = fmt.Fprintf(w, "  %-12s stdio  %s %v\n", id, cfg.Command, cfg.Args)
			}
		}
	}

	return nil
}

func printList(w io.Writer, bold *color.Color, title string, items []string) {
	if len(items) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w)
	_, _ = bold.Fprintln(w, title)
	for _, item := range items {
		_, _ = fmt.Fprintf(w, "  %s\n", item)
	}
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedServerIDs(m map[string]settings.ServerConfig) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
