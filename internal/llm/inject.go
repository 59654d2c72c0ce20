package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ForceTool runs the named tool once with the given input, appends a
// synthetic assistant turn recording the call and its result, and starts a
// completion with the tool choice pinned to that same tool. The ack text,
// when non-empty, is added to the synthetic turn as an acknowledgement
// block ahead of the tool call.
//
// Returns *ToolNotFoundError when the tool is absent from req.Tools or has
// no Execute handler; tool execution failures propagate unwrapped in
// meaning but annotated with the tool name.
func ForceTool(ctx context.Context, m Model, req StreamRequest, toolName string, input json.RawMessage, ack string) (Stream, error) {
	tool, ok := req.Tools[toolName]
	if !ok || tool.Execute == nil {
		return nil, &ToolNotFoundError{Name: toolName}
	}

	result, err := tool.Execute(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("llm: forced tool %q failed: %w", toolName, err)
	}

	callID := "forced-" + uuid.NewString()
	turn := Message{Role: RoleAssistant}
	if ack != "" {
		turn.Blocks = append(turn.Blocks, Block{Type: BlockText, Text: ack})
	}
	turn.Blocks = append(turn.Blocks,
		Block{Type: BlockToolCall, ToolCallID: callID, ToolName: toolName, Input: input},
		Block{Type: BlockToolResult, ToolCallID: callID, Result: result},
	)

	forced := req
	forced.Messages = append(append([]Message(nil), req.Messages...), turn)
	forced.ToolChoice = toolName
	return m.Stream(ctx, forced)
}
