package llm

import "fmt"

// ToolNotFoundError reports a forced tool invocation against a tool that is
// absent from the request or has no executable handler.
type ToolNotFoundError struct {
	Name string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("llm: tool %q not found or not executable", e.Name)
}
