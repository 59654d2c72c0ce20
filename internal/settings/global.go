package settings

import "sync"

// defaultResolved memoizes the ambient default configuration. Construction
// is deferred until first use so importing this package never forces
// credential resolution; once resolved (or failed), the same result is
// returned to every caller.
var defaultResolved = sync.OnceValues(func() (*Resolved, error) {
	return Assemble(Options{CLITools: true}, Defaults{})
})

// Default returns the process-wide default configuration: CLI tools enabled,
// credentials from ZAI_API_KEY, everything else at built-in defaults. The
// first call resolves and caches; subsequent calls reuse the cached value or
// error. Callers cannot distinguish it from an explicitly assembled record.
func Default() (*Resolved, error) {
	return defaultResolved()
}
