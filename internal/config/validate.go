// Copyright 2026 The Glmbridge Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strings"

	"github.com/davetashner/glmbridge/internal/settings"
)

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.TimeoutMS < 0 {
		errs = append(errs, fmt.Sprintf("timeout_ms: must be non-negative, got %d", cfg.TimeoutMS))
	}

	for alias, sku := range cfg.Models {
		if alias == "" {
			errs = append(errs, "models: empty alias name")
		}
		if sku == "" {
			errs = append(errs, fmt.Sprintf("models.%s: empty model identifier", alias))
		}
	}

	for id, server := range cfg.Servers {
		switch server.Transport {
		case settings.TransportStdio:
			if server.Command == "" {
				errs = append(errs, fmt.Sprintf("servers.%s: stdio transport requires command", id))
			}
			if server.Endpoint != "" {
				errs = append(errs, fmt.Sprintf("servers.%s: endpoint is meaningless for stdio transport", id))
			}
		case settings.TransportHTTP:
			if server.Endpoint == "" {
				errs = append(errs, fmt.Sprintf("servers.%s: http transport requires endpoint", id))
			}
			if server.Command != "" {
				errs = append(errs, fmt.Sprintf("servers.%s: command is meaningless for http transport", id))
			}
		default:
			errs = append(errs, fmt.Sprintf("servers.%s: invalid transport %q (must be stdio or http)", id, server.Transport))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
