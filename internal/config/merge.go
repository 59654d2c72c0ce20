// Copyright 2026 The Glmbridge Authors
// SPDX-License-Identifier: MIT

package config

import "github.com/davetashner/glmbridge/internal/settings"

// Merge combines a global config with a project config. Project values take
// precedence; zero-value project fields fall through to the global config.
// Maps are merged key-wise with the project winning on collision, except
// server entries, which replace wholesale like everywhere else in the
// settings layer.
func Merge(global, project *Config) *Config {
	out := *project

	if out.BaseURL == "" {
		out.BaseURL = global.BaseURL
	}
	if out.TimeoutMS == 0 {
		out.TimeoutMS = global.TimeoutMS
	}
	if out.SystemPrompt == "" {
		out.SystemPrompt = global.SystemPrompt
	}
	if out.AppendPrompt == "" {
		out.AppendPrompt = global.AppendPrompt
	}
	if out.CustomTools == nil {
		out.CustomTools = global.CustomTools
	}

	if out.Tools.CLI == nil {
		out.Tools.CLI = global.Tools.CLI
	}
	if out.Tools.WebSearch == nil {
		out.Tools.WebSearch = global.Tools.WebSearch
	}
	if out.Tools.DocReader == nil {
		out.Tools.DocReader = global.Tools.DocReader
	}

	out.Models = mergeStringMap(global.Models, project.Models)
	out.Env = mergeStringMap(global.Env, project.Env)

	if len(global.Servers) > 0 {
		merged := make(map[string]settings.ServerConfig, len(global.Servers)+len(project.Servers))
		for id, cfg := range global.Servers {
			merged[id] = cfg
		}
		for id, cfg := range project.Servers {
			merged[id] = cfg
		}
		out.Servers = merged
	}

	out.AllowedTools = settings.MergeToolLists(global.AllowedTools, project.AllowedTools)
	out.DisallowedTools = settings.MergeToolLists(global.DisallowedTools, project.DisallowedTools)

	return &out
}

func mergeStringMap(global, project map[string]string) map[string]string {
	if len(global) == 0 {
		return project
	}
	out := make(map[string]string, len(global)+len(project))
	for k, v := range global {
		out[k] = v
	}
	for k, v := range project {
		out[k] = v
	}
	return out
}
