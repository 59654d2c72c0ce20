// Copyright 2026 The Glmbridge Authors
// SPDX-License-Identifier: MIT

// Package mcpwire turns resolved MCP server configs into live connections:
// transport construction for both server variants and tool discovery across
// a server map.
package mcpwire

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/glmbridge/internal/settings"
)

// httpMaxRetries bounds reconnect attempts for remote servers.
const httpMaxRetries = 3

// Transport builds the MCP transport for one server config: a spawned
// process speaking stdio, or a streamable-HTTP client with the configured
// headers on every request.
func Transport(ctx context.Context, cfg settings.ServerConfig) (mcp.Transport, error) {
	switch cfg.Transport {
	case settings.TransportStdio:
		if cfg.Command == "" {
			return nil, fmt.Errorf("mcpwire: stdio server has no command")
		}
		cmd := exec.CommandContext(ctx, cfg.Command, cfg.Args...) //nolint:gosec // user-configured server command
		cmd.Env = os.Environ()
		for k, v := range cfg.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
		return &mcp.CommandTransport{Command: cmd}, nil

	case settings.TransportHTTP:
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("mcpwire: http server has no endpoint")
		}
		return &mcp.StreamableClientTransport{
			Endpoint:   cfg.Endpoint,
			HTTPClient: httpClient(cfg.Headers),
			MaxRetries: httpMaxRetries,
		}, nil

	default:
		return nil, fmt.Errorf("mcpwire: unsupported transport %q", cfg.Transport)
	}
}

// httpClient returns an http.Client that injects the given headers into
// every request. Returns http.DefaultClient when there are none.
func httpClient(headers map[string]string) *http.Client {
	if len(headers) == 0 {
		return http.DefaultClient
	}
	return &http.Client{
		Transport: &headerRoundTripper{
			headers: headers,
			base:    http.DefaultTransport,
		},
	}
}

type headerRoundTripper struct {
	headers map[string]string
	base    http.RoundTripper
}

func (rt *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	for k, v := range rt.headers {
		if clone.Header.Get(k) == "" {
			clone.Header.Set(k, v)
		}
	}
	return rt.base.RoundTrip(clone)
}
