// Copyright 2026 The Glmbridge Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/davetashner/glmbridge/internal/mcpserver"
	"github.com/davetashner/glmbridge/internal/mcpwire"
)

// MCP-specific flag values.
var mcpListTimeout time.Duration

// mcpCmd is the parent command for MCP-related subcommands.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server commands",
	Long:  "Commands for running glmbridge as an MCP server and for inspecting the MCP servers a project's settings wire up.",
}

// mcpServeCmd runs the MCP server over stdio.
var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout, exposing glmbridge's tools:
  - resolve: Resolve the effective settings for a project
  - env:     Show the generated environment (credentials redacted)
  - models:  List the model alias table

The server communicates using the Model Context Protocol (MCP) over stdio
transport, enabling AI agents to inspect settings directly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return mcpserver.Run(cmd.Context(), Version, &mcp.StdioTransport{})
	},
}

// mcpListCmd connects to each configured MCP server and lists its tools.
var mcpListCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List the tools each configured MCP server exposes",
	Long: `Connect to every MCP server in the resolved settings (built-in servers
plus any configured in the servers section) and list the tools each one
exposes. Stdio servers are spawned; HTTP servers are contacted over the
network with their configured headers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMCPList,
}

func init() {
	mcpListCmd.Flags().DurationVar(&mcpListTimeout, "timeout", 30*time.Second, "overall probe timeout")
	mcpListCmd.Flags().StringVar(&apiKey, "key", "", "API key (defaults to ZAI_API_KEY)")

	mcpCmd.AddCommand(mcpServeCmd)
	mcpCmd.AddCommand(mcpListCmd)
}

func runMCPList(cmd *cobra.Command, args []string) error {
	path, err := projectPath(args)
	if err != nil {
		return err
	}
	res, err := loadSettings(path)
	if err != nil {
		return err
	}
	if len(res.Servers) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no MCP servers configured")
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), mcpListTimeout)
	defer cancel()

	tools, err := mcpwire.Probe(ctx, res.Servers, Version)
	if err != nil {
		return exitError(ExitServerFailure, "glmbridge: probe failed (%v)", err)
	}

	w := cmd.OutOrStdout()
	bold := color.New(color.Bold)
	for _, id := range sortedServerIDs(res.Servers) {
		_, _ = bold.Fprintln(w, id)
		for _, name := range tools[id] {
			_, _ = fmt.Fprintf(w, "  %s\n", name)
		}
	}
	return nil
}
