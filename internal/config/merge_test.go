// Copyright 2026 The Glmbridge Authors
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/davetashner/glmbridge/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_ProjectWinsOnScalars(t *testing.T) {
	global := &Config{
		BaseURL:      "https://global.example",
		TimeoutMS:    100,
		SystemPrompt: "global",
	}
	project := &Config{
		BaseURL: "https://project.example",
	}

	got := Merge(global, project)

	assert.Equal(t, "https://project.example", got.BaseURL)
	assert.Equal(t, 100, got.TimeoutMS)
	assert.Equal(t, "global", got.SystemPrompt)
}

func TestMerge_TogglesFallThrough(t *testing.T) {
	global := &Config{Tools: ToolToggles{WebSearch: boolPtr(true), CLI: boolPtr(false)}}
	project := &Config{Tools: ToolToggles{CLI: boolPtr(true)}}

	got := Merge(global, project)

	require.NotNil(t, got.Tools.CLI)
	assert.True(t, *got.Tools.CLI)
	require.NotNil(t, got.Tools.WebSearch)
	assert.True(t, *got.Tools.WebSearch)
	assert.Nil(t, got.Tools.DocReader)
}

func TestMerge_MapsMergeProjectWins(t *testing.T) {
	global := &Config{
		Models: map[string]string{"sonnet": "glm-4.6", "haiku": "glm-4.5-air"},
		Env:    map[string]string{"A": "g", "B": "g"},
	}
	project := &Config{
		Models: map[string]string{"sonnet": "glm-4.7"},
		Env:    map[string]string{"B": "p"},
	}

	got := Merge(global, project)

	assert.Equal(t, "glm-4.7", got.Models["sonnet"])
	assert.Equal(t, "glm-4.5-air", got.Models["haiku"])
	assert.Equal(t, "g", got.Env["A"])
	assert.Equal(t, "p", got.Env["B"])
}

func TestMerge_ServersReplaceWholesale(t *testing.T) {
	global := &Config{
		Servers: map[string]settings.ServerConfig{
			"shared": {Transport: settings.TransportHTTP, Endpoint: "https://global.example"},
			"only":   {Transport: settings.TransportStdio, Command: "g"},
		},
	}
	project := &Config{
		Servers: map[string]settings.ServerConfig{
			"shared": {Transport: settings.TransportStdio, Command: "p"},
		},
	}

	got := Merge(global, project)

	shared := got.Servers["shared"]
	assert.Equal(t, settings.TransportStdio, shared.Transport)
	assert.Empty(t, shared.Endpoint, "replacement is wholesale, not field-wise")
	assert.Contains(t, got.Servers, "only")
}

func TestMerge_ToolListsDeduplicated(t *testing.T) {
	global := &Config{AllowedTools: []string{"A", "B"}}
	project := &Config{AllowedTools: []string{"B", "C"}}

	got := Merge(global, project)
	assert.Equal(t, []string{"A", "B", "C"}, got.AllowedTools)
}

func TestMerge_CustomToolsFallThrough(t *testing.T) {
	global := &Config{CustomTools: &CustomToolsConfig{SystemPrompt: "g"}}
	project := &Config{}

	got := Merge(global, project)
	require.NotNil(t, got.CustomTools)
	assert.Equal(t, "g", got.CustomTools.SystemPrompt)
}
