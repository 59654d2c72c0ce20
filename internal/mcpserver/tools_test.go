package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/glmbridge/internal/redact"
)

// setupProject isolates the global config dir, sets a fake API key, and
// writes a project config file.
func setupProject(t *testing.T, yaml string) string {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ZAI_API_KEY", "test-key-1234567890")
	redact.ResetForTest()
	t.Cleanup(redact.ResetForTest)

	dir := t.TempDir()
	if yaml != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".glmbridge.yaml"), []byte(yaml), 0o600))
	}
	return dir
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	return result.Content[0].(*mcp.TextContent).Text
}

func TestHandleResolve_DefaultProject(t *testing.T) {
	dir := setupProject(t, "")

	result, _, err := handleResolve(context.Background(), nil, ResolveInput{Path: dir})
	require.NoError(t, err)

	text := resultText(t, result)
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &out))

	assert.Contains(t, out["allowed_tools"], "Bash")
	assert.Contains(t, out["allowed_tools"], "Grep")
	assert.NotContains(t, text, "test-key-1234567890", "credentials must be redacted")

	env := out["env"].(map[string]any)
	assert.Equal(t, "[REDACTED]", env["ANTHROPIC_AUTH_TOKEN"])
	assert.Equal(t, "https://api.z.ai/api/anthropic", env["ANTHROPIC_BASE_URL"])
}

func TestHandleResolve_ProjectConfigApplied(t *testing.T) {
	dir := setupProject(t, `
models:
  opus: glm-4.7-preview
tools:
  web_search: true
`)

	result, _, err := handleResolve(context.Background(), nil, ResolveInput{Path: dir, Model: "opus"})
	require.NoError(t, err)

	text := resultText(t, result)
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &out))

	assert.Equal(t, "glm-4.7-preview", out["model"])
	assert.Contains(t, out["allowed_tools"], "mcp__web_search__search")

	servers := out["servers"].(map[string]any)
	require.Contains(t, servers, "web_search")
	assert.NotContains(t, text, "test-key-1234567890", "server headers must be redacted")
}

func TestHandleResolve_UnknownModel(t *testing.T) {
	dir := setupProject(t, "")

	_, _, err := handleResolve(context.Background(), nil, ResolveInput{Path: dir, Model: "gpt-4"})
	assert.Error(t, err)
}

func TestHandleResolve_MissingKey(t *testing.T) {
	dir := setupProject(t, "")
	t.Setenv("ZAI_API_KEY", "")

	_, _, err := handleResolve(context.Background(), nil, ResolveInput{Path: dir})
	assert.Error(t, err)
}

func TestHandleResolve_InvalidConfig(t *testing.T) {
	dir := setupProject(t, "timeout_ms: -5\n")

	_, _, err := handleResolve(context.Background(), nil, ResolveInput{Path: dir})
	assert.Error(t, err)
}

func TestHandleEnv_ReturnsEnvironment(t *testing.T) {
	dir := setupProject(t, "timeout_ms: 60000\n")

	result, _, err := handleEnv(context.Background(), nil, EnvInput{Path: dir})
	require.NoError(t, err)

	var env map[string]string
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &env))

	assert.Equal(t, "60000", env["API_TIMEOUT_MS"])
	assert.Equal(t, "[REDACTED]", env["ANTHROPIC_AUTH_TOKEN"])
	assert.Equal(t, "glm-4.6", env["ANTHROPIC_DEFAULT_OPUS_MODEL"])
}

func TestHandleModels_ListsAliasTable(t *testing.T) {
	dir := setupProject(t, "models:\n  turbo: glm-4.5-flash\n")

	result, _, err := handleModels(context.Background(), nil, ModelsInput{Path: dir})
	require.NoError(t, err)

	var table map[string]string
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &table))

	assert.Equal(t, "glm-4.6", table["opus"])
	assert.Equal(t, "glm-4.6", table["sonnet"])
	assert.Equal(t, "glm-4.5-air", table["haiku"])
	assert.Equal(t, "glm-4.5-flash", table["turbo"])
}
