package main

import "fmt"

// Exit codes for the glmbridge CLI.
const (
	ExitOK            = 0 // Settings resolved, command succeeded.
	ExitInvalidArgs   = 1 // Invalid arguments, bad path, or config error.
	ExitMissingKey    = 2 // No API key available from flag or environment.
	ExitServerFailure = 3 // MCP server probe or serve failure.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitMissingKey:
			msg = "glmbridge: no API key available"
		case ExitServerFailure:
			msg = "glmbridge: MCP server failure"
		default:
			msg = "glmbridge: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}
