// Package llm defines the provider-facing model surface: the factory that
// turns resolved settings into callable model handles, the streaming
// completion contract, and helpers layered on top of it.
package llm

import (
	"context"
	"encoding/json"

	"github.com/davetashner/glmbridge/internal/settings"
)

// Tool describes one callable tool offered to the model. Execute may be nil
// for tools that are declared but executed elsewhere.
type Tool struct {
	Name        string
	Description string

	// InputSchema is a JSON Schema object describing the tool input.
	InputSchema map[string]any

	// Execute runs the tool. It receives the model-supplied input as raw
	// JSON and returns the result text.
	Execute func(ctx context.Context, input json.RawMessage) (string, error)
}

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// BlockType identifies the kind of a content block.
type BlockType string

const (
	BlockText       BlockType = "text"
	BlockToolCall   BlockType = "tool_call"
	BlockToolResult BlockType = "tool_result"
)

// Block is one content block inside a message.
type Block struct {
	Type BlockType

	// Text is set for text blocks.
	Text string

	// ToolCallID links a tool call to its result.
	ToolCallID string

	// ToolName and Input are set for tool-call blocks.
	ToolName string
	Input    json.RawMessage

	// Result and IsError are set for tool-result blocks.
	Result  string
	IsError bool
}

// Message is one turn in the conversation.
type Message struct {
	Role   Role
	Blocks []Block
}

// UserText builds a single-block user message.
func UserText(text string) Message {
	return Message{Role: RoleUser, Blocks: []Block{{Type: BlockText, Text: text}}}
}

// StreamRequest describes one streaming completion call.
type StreamRequest struct {
	// Tools maps tool names to their definitions.
	Tools map[string]Tool

	// Messages is the ordered conversation history.
	Messages []Message

	// System overrides the settings' system prompt for this request.
	System string

	// MaxTokens limits output length. Zero means the engine default.
	MaxTokens int

	// Temperature controls randomness. Nil means the provider default.
	Temperature *float64

	// ToolChoice pins the first step to the named tool. Empty means auto.
	ToolChoice string

	// MaxSteps caps the tool-use loop. Zero means the engine default.
	MaxSteps int
}

// Usage tracks token consumption across all steps of a stream.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Response is the final transcript of a completed stream.
type Response struct {
	// Content is the concatenated assistant text across all steps.
	Content string

	// Model is the vendor identifier that served the request.
	Model string

	// StopReason is the provider's final stop reason.
	StopReason string
}

// Stream is a lazy, single-pass sequence of events. The deferred values
// (Response, Usage, Metadata) are valid once Next has returned false.
type Stream interface {
	// Next advances to the next event, returning false at end of stream.
	Next() bool

	// Current returns the event at the current position.
	Current() Event

	// Err returns the terminal error, if any, after Next returns false.
	Err() error

	// Close abandons the stream early and releases its resources.
	Close() error

	// Response returns the final transcript after the stream drains.
	Response() *Response

	// Usage returns accumulated token counts after the stream drains.
	Usage() Usage

	// Metadata returns provider-specific details after the stream drains.
	Metadata() map[string]any
}

// Model is a callable handle bound to one vendor model and one resolved
// settings record.
type Model interface {
	// ID returns the vendor identifier the handle is bound to.
	ID() string

	// Stream starts a streaming completion. The returned Stream must be
	// drained or closed.
	Stream(ctx context.Context, req StreamRequest) (Stream, error)
}

// Factory constructs model handles from resolved settings. Implementations
// expect modelID to already be a vendor identifier; use NewResolvingFactory
// to accept aliases.
type Factory interface {
	New(res *settings.Resolved, modelID string) (Model, error)
}
