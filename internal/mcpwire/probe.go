// Copyright 2026 The Glmbridge Authors
// SPDX-License-Identifier: MIT

package mcpwire

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/davetashner/glmbridge/internal/settings"
)

// ListTools connects to one server, lists its tools, and disconnects.
func ListTools(ctx context.Context, id string, cfg settings.ServerConfig, version string) ([]string, error) {
	transport, err := Transport(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "glmbridge",
		Version: version,
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("mcpwire: connect to server %q: %w", id, err)
	}
	defer session.Close() //nolint:errcheck // best-effort close

	result, err := session.ListTools(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("mcpwire: list tools on server %q: %w", id, err)
	}

	var names []string
	for _, tool := range result.Tools {
		if tool != nil && tool.Name != "" {
			names = append(names, tool.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Probe lists tools on every configured server concurrently. The returned
// map has one entry per reachable server; the first connection or listing
// failure cancels the remaining probes and is returned.
func Probe(ctx context.Context, servers map[string]settings.ServerConfig, version string) (map[string][]string, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	out := make(map[string][]string, len(servers))

	for id, cfg := range servers {
		g.Go(func() error {
			tools, err := ListTools(ctx, id, cfg, version)
			if err != nil {
				return err
			}
			mu.Lock()
			out[id] = tools
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
