package settings

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a required configuration value that could not
// be resolved from any source.
type ConfigurationError struct {
	// Missing describes the value that could not be resolved, e.g. "API key".
	Missing string

	// Sources lists the places that were checked, in precedence order.
	Sources []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Sources) == 0 {
		return fmt.Sprintf("settings: missing %s", e.Missing)
	}
	return fmt.Sprintf("settings: missing %s (checked %s)", e.Missing, strings.Join(e.Sources, ", "))
}

// UnsupportedModelError reports a model identifier that is neither a known
// alias nor a configured vendor identifier.
type UnsupportedModelError struct {
	// Requested is the identifier the caller asked for.
	Requested string

	// Known lists the recognized aliases, in table order.
	Known []string
}

func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("settings: unsupported model %q (known aliases: %s)",
		e.Requested, strings.Join(e.Known, ", "))
}
