// Package settings resolves user-supplied configuration overrides and
// process-wide defaults into the canonical settings record consumed by the
// provider layer: model alias mapping, environment variable injection, tool
// allowlist merging, and MCP server wiring.
package settings

// Default endpoint and timeout for the GLM Anthropic-compatible API.
const (
	DefaultBaseURL   = "https://api.z.ai/api/anthropic"
	DefaultTimeoutMS = 300000
)

// Built-in tool groups. Each group is independently toggleable via Options.
var (
	cliToolGroup = []string{"Bash", "Read", "Write", "Edit", "Glob", "Grep"}

	webSearchToolGroup = []string{"mcp__web_search__search"}
	docReaderToolGroup = []string{"mcp__doc_reader__read"}
)

// Tools that a custom-tools-only session must never reach, regardless of
// any extra blocked names the policy supplies.
var alwaysBlockedTools = []string{"Bash", "WebSearch"}

// guardrailPrompt is the fallback system prompt for custom-tools-only
// sessions when neither the policy nor the defaults supply one.
const guardrailPrompt = "Only use the tools explicitly provided in this session. " +
	"Do not invoke built-in tools such as Bash or WebSearch."

// ServerTransport distinguishes the two MCP server connection styles.
type ServerTransport string

const (
	// TransportHTTP connects to a remote streamable-HTTP endpoint.
	TransportHTTP ServerTransport = "http"

	// TransportStdio spawns a local process and speaks MCP over its pipes.
	TransportStdio ServerTransport = "stdio"
)

// ServerConfig describes one MCP tool server. Exactly one variant is
// populated, selected by Transport: Endpoint/Headers for http, or
// Command/Args/Env for stdio.
type ServerConfig struct {
	Transport ServerTransport `yaml:"transport"`

	// Remote variant.
	Endpoint string            `yaml:"endpoint,omitempty"`
	Headers  map[string]string `yaml:"headers,omitempty"`

	// Local-process variant.
	Command string            `yaml:"command,omitempty"`
	Args    []string          `yaml:"args,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
}

// CustomToolsPolicy replaces the default tool wiring with a caller-owned
// tool surface. When active, built-in tool groups and MCP server wiring are
// suppressed and a guardrail prompt keeps the model on the supplied tools.
type CustomToolsPolicy struct {
	// AllowedTools restricts the session to these tools. When empty, the
	// session is instead constrained by a blocklist built from
	// ExtraBlockedTools plus the always-blocked pair.
	AllowedTools []string

	// ExtraBlockedTools extends the always-blocked pair when no allowlist
	// is in effect.
	ExtraBlockedTools []string

	// SystemPrompt and AppendPrompt override the defaults' prompts. When
	// both the policy and the defaults leave the system prompt empty, the
	// guardrail default is used.
	SystemPrompt string
	AppendPrompt string
}

// Options are the vendor-adapter overrides: credentials, endpoint, alias
// customization, and which built-in capabilities to enable.
type Options struct {
	// APIKey is the explicit API key. When empty, ZAI_API_KEY is used.
	APIKey string

	// BaseURL overrides the GLM endpoint. Empty means DefaultBaseURL.
	BaseURL string

	// TimeoutMS overrides the request timeout. Zero means DefaultTimeoutMS.
	TimeoutMS int

	// AliasOverrides remaps or extends the built-in alias table.
	AliasOverrides map[string]string

	// CLITools enables the base CLI tool group (Bash, Read, Write, ...).
	CLITools bool

	// WebSearch enables the remote web search MCP server and its tools.
	WebSearch bool

	// DocReader enables the local doc reader MCP server and its tools.
	DocReader bool

	// CustomTools, when non-nil, activates custom-tools-only mode and
	// suppresses all built-in tool and server wiring.
	CustomTools *CustomToolsPolicy
}

// Defaults are the caller's base agent settings, merged into the resolved
// record with precedence over generated values.
type Defaults struct {
	AllowedTools    []string
	DisallowedTools []string
	SystemPrompt    string
	AppendPrompt    string

	// Env entries win over generated environment entries on key collision.
	Env map[string]string

	// Servers entries replace same-keyed built-in server entries wholesale.
	Servers map[string]ServerConfig
}

// Resolved is the canonical settings record handed to the provider layer.
// It is computed once per configuration call and never mutated afterwards.
type Resolved struct {
	// Aliases is the alias table the settings were resolved against.
	Aliases *AliasTable

	AllowedTools    []string
	DisallowedTools []string
	SystemPrompt    string
	AppendPrompt    string

	// Env holds the environment overrides for the underlying tooling.
	Env map[string]string

	// Servers maps MCP server ids to their connection configs. Nil when no
	// capability is enabled and the defaults supply no servers.
	Servers map[string]ServerConfig
}

// webSearchServer is the built-in remote web search MCP server.
func webSearchServer(key string) ServerConfig {
	return ServerConfig{
		Transport: TransportHTTP,
		Endpoint:  "https://api.z.ai/api/mcp/web_search_prime/mcp",
		Headers:   map[string]string{"Authorization": "Bearer " + key},
	}
}

// docReaderServer is the built-in local doc reader MCP server.
func docReaderServer(key string) ServerConfig {
	return ServerConfig{
		Transport: TransportStdio,
		Command:   "npx",
		Args:      []string{"-y", "@z_ai/mcp-server-doc-reader"},
		Env:       map[string]string{AmbientKeyEnv: key},
	}
}

// Assemble resolves overrides and defaults into a Resolved record. It fails
// fast with *ConfigurationError when no API key can be resolved; no network
// or process activity happens here.
func Assemble(opts Options, base Defaults) (*Resolved, error) {
	key, err := ResolveCredentials(opts.APIKey, ambientKey())
	if err != nil {
		return nil, err
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.TimeoutMS
	if timeout == 0 {
		timeout = DefaultTimeoutMS
	}

	table := DefaultAliasTable()
	if len(opts.AliasOverrides) > 0 {
		table = table.WithOverrides(opts.AliasOverrides)
	}

	env := BuildEnvironment(baseURL, key, timeout, table)
	for k, v := range base.Env {
		env[k] = v
	}

	r := &Resolved{
		Aliases: table,
		Env:     env,
	}

	if policy := opts.CustomTools; policy != nil {
		r.AllowedTools = MergeToolLists(policy.AllowedTools, base.AllowedTools)
		if len(r.AllowedTools) == 0 {
			r.DisallowedTools = MergeToolLists(alwaysBlockedTools, policy.ExtraBlockedTools)
		}
		r.SystemPrompt = firstNonEmpty(policy.SystemPrompt, base.SystemPrompt, guardrailPrompt)
		r.AppendPrompt = ComposePromptAppend(policy.AppendPrompt, base.AppendPrompt)
		// Custom-tools-only mode never wires servers, regardless of the
		// individual capability flags.
		r.Servers = overlayServers(nil, base.Servers)
		return r, nil
	}

	var builtin []string
	if opts.CLITools {
		builtin = MergeToolLists(builtin, cliToolGroup)
	}
	if opts.WebSearch {
		builtin = MergeToolLists(builtin, webSearchToolGroup)
	}
	if opts.DocReader {
		builtin = MergeToolLists(builtin, docReaderToolGroup)
	}
	r.AllowedTools = MergeToolLists(builtin, base.AllowedTools)
	r.DisallowedTools = MergeToolLists(base.DisallowedTools, nil)
	r.SystemPrompt = base.SystemPrompt
	r.AppendPrompt = base.AppendPrompt

	servers := make(map[string]ServerConfig)
	if opts.WebSearch {
		servers["web_search"] = webSearchServer(key)
	}
	if opts.DocReader {
		servers["doc_reader"] = docReaderServer(key)
	}
	r.Servers = overlayServers(servers, base.Servers)
	return r, nil
}

// overlayServers lays user entries over built-in entries wholesale: a user
// entry replaces a same-keyed built-in entry entirely. Returns nil when the
// result would be empty.
func overlayServers(builtin, user map[string]ServerConfig) map[string]ServerConfig {
	if len(builtin) == 0 && len(user) == 0 {
		return nil
	}
	out := make(map[string]ServerConfig, len(builtin)+len(user))
	for id, cfg := range builtin {
		out[id] = cfg
	}
	for id, cfg := range user {
		out[id] = cfg
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
