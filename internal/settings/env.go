package settings

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names understood by Claude-compatible agent tooling.
const (
	EnvBaseURL   = "ANTHROPIC_BASE_URL"
	EnvAuthToken = "ANTHROPIC_AUTH_TOKEN"
	EnvTimeoutMS = "API_TIMEOUT_MS"
)

// AmbientKeyEnv is the environment variable consulted when no explicit API
// key is configured.
const AmbientKeyEnv = "ZAI_API_KEY"

// ResolveCredentials picks the API key to use. An explicit non-empty key
// wins; otherwise the ambient key is used. Returns a *ConfigurationError
// when neither is present.
func ResolveCredentials(explicit, ambient string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if ambient != "" {
		return ambient, nil
	}
	return "", &ConfigurationError{
		Missing: "API key",
		Sources: []string{"explicit option", AmbientKeyEnv},
	}
}

// ambientKey reads the ambient API key from the process environment.
func ambientKey() string {
	return os.Getenv(AmbientKeyEnv)
}

// modelEnvName derives the environment variable that pins an alias's model,
// e.g. "opus" -> ANTHROPIC_DEFAULT_OPUS_MODEL.
func modelEnvName(alias string) string {
	return "ANTHROPIC_DEFAULT_" + strings.ToUpper(alias) + "_MODEL"
}

// BuildEnvironment constructs the environment overrides that point
// Claude-compatible tooling at the vendor endpoint: base URL, auth token,
// request timeout, and one model pin per alias in the table. Pure function
// of its inputs.
func BuildEnvironment(baseURL, key string, timeoutMS int, table *AliasTable) map[string]string {
	env := map[string]string{
		EnvBaseURL:   baseURL,
		EnvAuthToken: key,
		EnvTimeoutMS: strconv.Itoa(timeoutMS),
	}
	for _, alias := range table.Aliases() {
		sku, _ := table.SKU(alias)
		env[modelEnvName(alias)] = sku
	}
	return env
}
