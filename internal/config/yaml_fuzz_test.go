// Copyright 2026 The Glmbridge Authors
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func FuzzConfigParse(f *testing.F) {
	f.Add([]byte("base_url: https://example.test\ntimeout_ms: 50\n"))
	f.Add([]byte(""))
	f.Add([]byte("---"))
	f.Add([]byte("servers:\n  s:\n    transport: stdio\n    command: x\n"))
	f.Add([]byte("{invalid"))

	f.Fuzz(func(t *testing.T, data []byte) {
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return
		}
		// Round-trip: if parse succeeded, marshal should not panic.
		yaml.Marshal(&cfg) //nolint:errcheck,gosec // fuzz: testing crash-freedom
	})
}
