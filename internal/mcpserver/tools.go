// Copyright 2026 The Glmbridge Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/glmbridge/internal/config"
	"github.com/davetashner/glmbridge/internal/redact"
	"github.com/davetashner/glmbridge/internal/settings"
)

// ResolveInput is the input schema for the glmbridge resolve MCP tool.
type ResolveInput struct {
	Path  string `json:"path,omitempty" jsonschema:"Project path containing .glmbridge.yaml (defaults to current directory)"`
	Model string `json:"model,omitempty" jsonschema:"Optional model name or alias to resolve against the alias table"`
}

// EnvInput is the input schema for the glmbridge env MCP tool.
type EnvInput struct {
	Path string `json:"path,omitempty" jsonschema:"Project path containing .glmbridge.yaml (defaults to current directory)"`
}

// ModelsInput is the input schema for the glmbridge models MCP tool.
type ModelsInput struct {
	Path string `json:"path,omitempty" jsonschema:"Project path containing .glmbridge.yaml (defaults to current directory)"`
}

// resolveOutput is the JSON shape returned by the resolve tool.
type resolveOutput struct {
	Model           string                           `json:"model,omitempty"`
	AllowedTools    []string                         `json:"allowed_tools,omitempty"`
	DisallowedTools []string                         `json:"disallowed_tools,omitempty"`
	SystemPrompt    string                           `json:"system_prompt,omitempty"`
	AppendPrompt    string                           `json:"append_prompt,omitempty"`
	Env             map[string]string                `json:"env"`
	Servers         map[string]settings.ServerConfig `json:"servers,omitempty"`
}

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

// registerTools adds all glmbridge tools to the MCP server.
func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve",
		Description: "Resolve the effective GLM agent settings for a project: tool lists, prompts, environment, and MCP server wiring. Credentials are redacted.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleResolve)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "env",
		Description: "Show the environment variables glmbridge would inject for a project (base URL, timeout, per-alias model pins). Credentials are redacted.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleEnv)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "models",
		Description: "List the model alias table in effect for a project: each alias and the GLM model it resolves to.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleModels)
}

// loadResolved merges the global and project configs and assembles the
// settings record. The API key comes from the ambient environment; MCP
// clients never pass credentials as tool input.
func loadResolved(path string) (*settings.Resolved, error) {
	if path == "" {
		path = "."
	}

	global, err := config.LoadGlobal()
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}
	project, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := config.Merge(global, project)
	if err := config.Validate(merged); err != nil {
		return nil, err
	}

	opts, base := merged.Resolve("")
	return settings.Assemble(opts, base)
}

// jsonResult marshals v to indented JSON, redacts credential values, and
// wraps it as a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encoding result: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: redact.String(string(data))},
		},
	}, nil, nil
}

func handleResolve(_ context.Context, _ *mcp.CallToolRequest, input ResolveInput) (*mcp.CallToolResult, any, error) {
	res, err := loadResolved(input.Path)
	if err != nil {
		return nil, nil, err
	}

	out := resolveOutput{
		AllowedTools:    res.AllowedTools,
		DisallowedTools: res.DisallowedTools,
		SystemPrompt:    res.SystemPrompt,
		AppendPrompt:    res.AppendPrompt,
		Env:             res.Env,
		Servers:         res.Servers,
	}
	if input.Model != "" {
		sku, err := res.Aliases.ResolveSKU(input.Model)
		if err != nil {
			return nil, nil, err
		}
		out.Model = sku
	}

	return jsonResult(out)
}

func handleEnv(_ context.Context, _ *mcp.CallToolRequest, input EnvInput) (*mcp.CallToolResult, any, error) {
	res, err := loadResolved(input.Path)
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(res.Env)
}

func handleModels(_ context.Context, _ *mcp.CallToolRequest, input ModelsInput) (*mcp.CallToolResult, any, error) {
	res, err := loadResolved(input.Path)
	if err != nil {
		return nil, nil, err
	}

	table := make(map[string]string)
	for _, alias := range res.Aliases.Aliases() {
		sku, _ := res.Aliases.SKU(alias)
		table[alias] = sku
	}
	return jsonResult(table)
}
