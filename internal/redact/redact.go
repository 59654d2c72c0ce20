// Copyright 2026 The Glmbridge Authors
// SPDX-License-Identifier: MIT

// Package redact strips credential values from strings before they appear in
// output, logs, or error messages.
package redact

import (
	"os"
	"strings"
	"sync"
)

// Placeholder replaces secret values in redacted output.
const Placeholder = "[REDACTED]"

// sensitiveEnvVars lists environment variable names whose values must never
// appear in output.
var sensitiveEnvVars = []string{
	"ZAI_API_KEY",
	"ANTHROPIC_AUTH_TOKEN",
	"ANTHROPIC_API_KEY",
}

var (
	cachedSecrets []string
	cacheOnce     sync.Once
)

func loadSecrets() {
	for _, envVar := range sensitiveEnvVars {
		val := os.Getenv(envVar)
		if val != "" && len(val) >= 4 {
			cachedSecrets = append(cachedSecrets, val)
		}
	}
}

// resetCache resets the cached secrets. Used by tests that change env vars
// between calls.
func resetCache() {
	cachedSecrets = nil
	cacheOnce = sync.Once{}
}

// ResetForTest resets the cached secrets so tests in other packages can
// verify redaction behavior after setting env vars with t.Setenv.
func ResetForTest() { resetCache() }

// String replaces any occurrence of a known credential value with
// [REDACTED]. Returns the original string if no secrets are found. Secret
// values are cached on first call.
func String(s string) string {
	cacheOnce.Do(loadSecrets)
	for _, secret := range cachedSecrets {
		s = strings.ReplaceAll(s, secret, Placeholder)
	}
	return s
}

// Secret replaces a specific known secret in addition to the cached ones.
// Useful when the credential came from a flag rather than the environment.
func Secret(s, secret string) string {
	if len(secret) >= 4 {
		s = strings.ReplaceAll(s, secret, Placeholder)
	}
	return String(s)
}
