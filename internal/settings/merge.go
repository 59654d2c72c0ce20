package settings

import "strings"

// MergeToolLists combines a default list with user-supplied additions.
// The defaults keep their order; user entries that are non-empty and not
// already present are appended in their original relative order. Matching is
// case-sensitive. Returns nil when the merged result would be empty, so
// callers can distinguish "no restriction configured" from "restricted to
// nothing".
//
// This is the single de-duplication routine for allowed tools, disallowed
// tools, and server id lists; call sites must not reimplement it.
func MergeToolLists(defaults, user []string) []string {
	var out []string
	seen := make(map[string]bool, len(defaults)+len(user))
	for _, name := range defaults {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	for _, name := range user {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// ComposePromptAppend joins two prompt fragments with a blank line,
// dropping fragments that are empty or whitespace-only. Returns "" when
// nothing survives. The first fragment precedes the second.
func ComposePromptAppend(a, b string) string {
	var parts []string
	for _, s := range []string{a, b} {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}
