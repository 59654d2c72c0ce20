package llm

import "encoding/json"

// EventKind tags a stream event.
type EventKind string

const (
	EventStreamStart    EventKind = "stream-start"
	EventStepStart      EventKind = "step-start"
	EventTextStart      EventKind = "text-start"
	EventTextDelta      EventKind = "text-delta"
	EventTextEnd        EventKind = "text-end"
	EventToolInputStart EventKind = "tool-input-start"
	EventToolInputDelta EventKind = "tool-input-delta"
	EventToolInputEnd   EventKind = "tool-input-end"
	EventToolCall       EventKind = "tool-call"
	EventToolResult     EventKind = "tool-result"
	EventToolError      EventKind = "tool-error"
	EventStepFinish     EventKind = "step-finish"
	EventFinish         EventKind = "finish"
)

// Event is one tagged record in a completion stream. Only the fields
// relevant to the kind are populated.
type Event struct {
	Kind EventKind `json:"kind"`

	// Text carries delta text for text-delta events.
	Text string `json:"text,omitempty"`

	// ToolCallID, ToolName, and Input describe tool activity.
	ToolCallID string          `json:"tool_call_id,omitempty"`
	ToolName   string          `json:"tool_name,omitempty"`
	Input      json.RawMessage `json:"input,omitempty"`

	// InputDelta carries partial tool-input JSON for tool-input-delta.
	InputDelta string `json:"input_delta,omitempty"`

	// Result carries tool output for tool-result, or the failure message
	// for tool-error.
	Result string `json:"result,omitempty"`

	// StopReason is set on step-finish and finish.
	StopReason string `json:"stop_reason,omitempty"`

	// Usage is set on step-finish with that step's token counts.
	Usage *Usage `json:"usage,omitempty"`
}
