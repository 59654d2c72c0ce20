// Copyright 2026 The Glmbridge Authors
// SPDX-License-Identifier: MIT

// Package config handles .glmbridge.yaml configuration files.
package config

import "github.com/davetashner/glmbridge/internal/settings"

// FileName is the expected config file name in a project root.
const FileName = ".glmbridge.yaml"

// Config represents the contents of a .glmbridge.yaml file. API keys are
// deliberately not a config field; they come from the ZAI_API_KEY
// environment variable or an explicit flag.
type Config struct {
	BaseURL   string `yaml:"base_url,omitempty"`
	TimeoutMS int    `yaml:"timeout_ms,omitempty"`

	// Models remaps or extends the built-in alias table.
	Models map[string]string `yaml:"models,omitempty"`

	// Tools toggles the built-in tool groups. Unset means the group's
	// default (CLI tools on, everything else off).
	Tools ToolToggles `yaml:"tools,omitempty"`

	AllowedTools    []string `yaml:"allowed_tools,omitempty"`
	DisallowedTools []string `yaml:"disallowed_tools,omitempty"`

	SystemPrompt string `yaml:"system_prompt,omitempty"`
	AppendPrompt string `yaml:"append_prompt,omitempty"`

	// Env entries win over generated environment entries.
	Env map[string]string `yaml:"env,omitempty"`

	// Servers adds or replaces MCP server wiring.
	Servers map[string]settings.ServerConfig `yaml:"servers,omitempty"`

	// CustomTools, when present, activates custom-tools-only mode.
	CustomTools *CustomToolsConfig `yaml:"custom_tools,omitempty"`
}

// ToolToggles holds per-group enable flags. Nil means "not set here" so a
// project file can leave a global file's choice alone.
type ToolToggles struct {
	CLI       *bool `yaml:"cli,omitempty"`
	WebSearch *bool `yaml:"web_search,omitempty"`
	DocReader *bool `yaml:"doc_reader,omitempty"`
}

// CustomToolsConfig mirrors settings.CustomToolsPolicy in file form.
type CustomToolsConfig struct {
	AllowedTools      []string `yaml:"allowed_tools,omitempty"`
	ExtraBlockedTools []string `yaml:"extra_blocked_tools,omitempty"`
	SystemPrompt      string   `yaml:"system_prompt,omitempty"`
	AppendPrompt      string   `yaml:"append_prompt,omitempty"`
}

// Resolve converts the merged config plus an explicit API key into the
// settings layer's option records.
func (c *Config) Resolve(apiKey string) (settings.Options, settings.Defaults) {
	opts := settings.Options{
		APIKey:         apiKey,
		BaseURL:        c.BaseURL,
		TimeoutMS:      c.TimeoutMS,
		AliasOverrides: c.Models,
		CLITools:       boolOr(c.Tools.CLI, true),
		WebSearch:      boolOr(c.Tools.WebSearch, false),
		DocReader:      boolOr(c.Tools.DocReader, false),
	}
	if c.CustomTools != nil {
		opts.CustomTools = &settings.CustomToolsPolicy{
			AllowedTools:      c.CustomTools.AllowedTools,
			ExtraBlockedTools: c.CustomTools.ExtraBlockedTools,
			SystemPrompt:      c.CustomTools.SystemPrompt,
			AppendPrompt:      c.CustomTools.AppendPrompt,
		}
	}

	base := settings.Defaults{
		AllowedTools:    c.AllowedTools,
		DisallowedTools: c.DisallowedTools,
		SystemPrompt:    c.SystemPrompt,
		AppendPrompt:    c.AppendPrompt,
		Env:             c.Env,
		Servers:         c.Servers,
	}
	return opts, base
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
