// Copyright 2026 The Glmbridge Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"os"

	"github.com/davetashner/glmbridge/internal/config"
	"github.com/davetashner/glmbridge/internal/settings"
)

// apiKey is the shared --key flag value. Commands that need credentials
// register the flag themselves.
var apiKey string

// projectPath extracts the optional positional project path, defaulting to
// the current directory.
func projectPath(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", exitError(ExitInvalidArgs, "glmbridge: path %q does not exist", path)
	}
	if !info.IsDir() {
		return "", exitError(ExitInvalidArgs, "glmbridge: %q is not a directory", path)
	}
	return path, nil
}

// loadMergedConfig loads the global and project config files and merges
// them, project values winning.
func loadMergedConfig(path string) (*config.Config, error) {
	global, err := config.LoadGlobal()
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "glmbridge: cannot load global config (%v)", err)
	}
	project, err := config.Load(path)
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "glmbridge: cannot load %s (%v)", config.FileName, err)
	}
	return config.Merge(global, project), nil
}

// loadSettings runs the full wiring: load, merge, validate, and assemble
// the resolved settings record for a project.
func loadSettings(path string) (*settings.Resolved, error) {
	merged, err := loadMergedConfig(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(merged); err != nil {
		return nil, exitError(ExitInvalidArgs, "%v", err)
	}

	opts, base := merged.Resolve(apiKey)
	res, err := settings.Assemble(opts, base)
	if err != nil {
		var ce *settings.ConfigurationError
		if errors.As(err, &ce) {
			return nil, exitError(ExitMissingKey, "glmbridge: %v", err)
		}
		return nil, err
	}
	return res, nil
}
