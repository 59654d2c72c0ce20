// Copyright 2026 The Glmbridge Authors
// SPDX-License-Identifier: MIT

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnv_PrintsRealValues(t *testing.T) {
	dir := setupProject(t, "timeout_ms: 60000\n")

	out, err := runCLI(t, "env", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "ANTHROPIC_AUTH_TOKEN=test-key-1234567890")
	assert.Contains(t, out, "API_TIMEOUT_MS=60000")
	assert.Contains(t, out, "ANTHROPIC_DEFAULT_OPUS_MODEL=glm-4.6")
	assert.Contains(t, out, "ANTHROPIC_DEFAULT_HAIKU_MODEL=glm-4.5-air")
}

func TestEnv_ShellFormat(t *testing.T) {
	dir := setupProject(t, "")

	out, err := runCLI(t, "env", "--shell", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "export ANTHROPIC_BASE_URL='https://api.z.ai/api/anthropic'")
	assert.Contains(t, out, "export ANTHROPIC_AUTH_TOKEN='test-key-1234567890'")
}

func TestEnv_ConfigEnvWins(t *testing.T) {
	dir := setupProject(t, "env:\n  ANTHROPIC_BASE_URL: https://proxy.internal\n")

	out, err := runCLI(t, "env", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "ANTHROPIC_BASE_URL=https://proxy.internal")
}

func TestModels_DefaultTable(t *testing.T) {
	dir := setupProject(t, "")

	out, err := runCLI(t, "models", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "opus")
	assert.Contains(t, out, "sonnet")
	assert.Contains(t, out, "haiku")
	assert.Contains(t, out, "glm-4.5-air")
}

func TestModels_Overrides(t *testing.T) {
	dir := setupProject(t, "models:\n  turbo: glm-4.5-flash\n")

	out, err := runCLI(t, "models", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "turbo")
	assert.Contains(t, out, "glm-4.5-flash")
}
