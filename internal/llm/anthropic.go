package llm

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/davetashner/glmbridge/internal/settings"
)

const (
	// defaultMaxTokens is the default maximum output tokens per step.
	defaultMaxTokens = 4096

	// defaultMaxSteps caps the tool-use loop when the request does not.
	defaultMaxSteps = 8

	// defaultMaxRetries is the number of automatic retries on transient
	// errors (429, 5xx). The SDK handles exponential backoff.
	defaultMaxRetries = 3
)

// AnthropicFactory builds model handles backed by the Anthropic-compatible
// Messages API at the endpoint named in the resolved settings. The wire
// protocol, retries, and backoff are owned by the SDK.
type AnthropicFactory struct {
	// MaxRetries overrides the default retry count when positive.
	MaxRetries int
}

// Compile-time check that AnthropicFactory satisfies the Factory interface.
var _ Factory = (*AnthropicFactory)(nil)

// New builds a handle for the given vendor identifier. The settings must
// carry an auth token; the base URL and request timeout are taken from the
// generated environment entries.
func (f *AnthropicFactory) New(res *settings.Resolved, modelID string) (Model, error) {
	key := res.Env[settings.EnvAuthToken]
	if key == "" {
		return nil, &settings.ConfigurationError{
			Missing: "auth token",
			Sources: []string{settings.EnvAuthToken},
		}
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(key),
	}
	if baseURL := res.Env[settings.EnvBaseURL]; baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(baseURL))
	}
	if ms, err := strconv.Atoi(res.Env[settings.EnvTimeoutMS]); err == nil && ms > 0 {
		clientOpts = append(clientOpts, option.WithRequestTimeout(time.Duration(ms)*time.Millisecond))
	}
	retries := f.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}
	clientOpts = append(clientOpts, option.WithMaxRetries(retries))

	return &anthropicModel{
		client: anthropic.NewClient(clientOpts...),
		model:  modelID,
		res:    res,
	}, nil
}

type anthropicModel struct {
	client anthropic.Client
	model  string
	res    *settings.Resolved
}

// ID returns the vendor identifier the handle is bound to.
func (m *anthropicModel) ID() string { return m.model }

// Stream runs the streaming completion loop: request, relay events, execute
// tool calls, feed results back, repeat until the model stops asking for
// tools or the step cap is reached.
func (m *anthropicModel) Stream(ctx context.Context, req StreamRequest) (Stream, error) {
	ctx, cancel := context.WithCancel(ctx)
	s := &anthropicStream{
		events: make(chan Event, 16),
		cancel: cancel,
		meta:   map[string]any{},
	}
	go m.run(ctx, req, s)
	return s, nil
}

func (m *anthropicModel) run(ctx context.Context, req StreamRequest, s *anthropicStream) {
	defer close(s.events)

	maxSteps := req.MaxSteps
	if maxSteps <= 0 {
		maxSteps = defaultMaxSteps
	}

	convo := toAnthropicMessages(req.Messages)
	toolChoice := req.ToolChoice

	var transcript strings.Builder
	stopReason := ""

	if !s.emit(ctx, Event{Kind: EventStreamStart}) {
		return
	}

	for step := 0; step < maxSteps; step++ {
		if !s.emit(ctx, Event{Kind: EventStepStart}) {
			return
		}

		params := anthropic.MessageNewParams{
			Model:     anthropic.Model(m.model),
			MaxTokens: int64(defaultMaxTokens),
			Messages:  convo,
		}
		if req.MaxTokens > 0 {
			params.MaxTokens = int64(req.MaxTokens)
		}
		if sys := m.systemPrompt(req); sys != "" {
			params.System = []anthropic.TextBlockParam{{Text: sys}}
		}
		if req.Temperature != nil {
			params.Temperature = anthropic.Float(*req.Temperature)
		}
		if len(req.Tools) > 0 {
			params.Tools = toAnthropicTools(req.Tools)
		}
		if toolChoice != "" {
			params.ToolChoice = anthropic.ToolChoiceUnionParam{
				OfTool: &anthropic.ToolChoiceToolParam{Name: toolChoice},
			}
			// A pinned tool applies to the first step only; later steps
			// would otherwise loop on the same tool forever.
			toolChoice = ""
		}

		stepText, calls, stepStop, err := m.runStep(ctx, params, s)
		if err != nil {
			s.fail(err)
			return
		}
		transcript.WriteString(stepText)
		stopReason = stepStop

		if stepStop != string(anthropic.StopReasonToolUse) || len(calls) == 0 {
			break
		}

		results, executable := m.executeCalls(ctx, req.Tools, calls, s)
		if !executable {
			break
		}

		convo = append(convo, assistantTurn(stepText, calls))
		convo = append(convo, anthropic.NewUserMessage(results...))
	}

	if !s.emit(ctx, Event{Kind: EventFinish, StopReason: stopReason}) {
		return
	}

	s.resp = &Response{
		Content:    transcript.String(),
		Model:      m.model,
		StopReason: stopReason,
	}
	s.meta["stop_reason"] = stopReason
}

// systemPrompt composes the effective system prompt: request override or the
// settings' prompt, with the settings' append fragment joined on.
func (m *anthropicModel) systemPrompt(req StreamRequest) string {
	sys := req.System
	if sys == "" {
		sys = m.res.SystemPrompt
	}
	return settings.ComposePromptAppend(sys, m.res.AppendPrompt)
}

// pendingCall is a tool invocation collected from one step.
type pendingCall struct {
	id    string
	name  string
	input string
}

// runStep drives one SDK streaming request, relaying events and collecting
// tool calls. Returns the step's text, tool calls, and stop reason.
func (m *anthropicModel) runStep(ctx context.Context, params anthropic.MessageNewParams, s *anthropicStream) (string, []pendingCall, string, error) {
	stream := m.client.Messages.NewStreaming(ctx, params)
	defer stream.Close()

	var (
		text      strings.Builder
		calls     []pendingCall
		stop      string
		current   *pendingCall
		toolInput strings.Builder
	)

	for stream.Next() {
		event := stream.Current()

		switch evt := event.AsAny().(type) {
		case anthropic.MessageStartEvent:
			s.usage.InputTokens += int(evt.Message.Usage.InputTokens)

		case anthropic.ContentBlockStartEvent:
			switch block := evt.ContentBlock.AsAny().(type) {
			case anthropic.TextBlock:
				if !s.emit(ctx, Event{Kind: EventTextStart}) {
					return "", nil, "", ctx.Err()
				}
			case anthropic.ToolUseBlock:
				current = &pendingCall{id: block.ID, name: block.Name}
				toolInput.Reset()
				if !s.emit(ctx, Event{Kind: EventToolInputStart, ToolCallID: block.ID, ToolName: block.Name}) {
					return "", nil, "", ctx.Err()
				}
			}

		case anthropic.ContentBlockDeltaEvent:
			switch delta := evt.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				text.WriteString(delta.Text)
				if !s.emit(ctx, Event{Kind: EventTextDelta, Text: delta.Text}) {
					return "", nil, "", ctx.Err()
				}
			case anthropic.InputJSONDelta:
				toolInput.WriteString(delta.PartialJSON)
				if current != nil {
					ev := Event{
						Kind:       EventToolInputDelta,
						ToolCallID: current.id,
						ToolName:   current.name,
						InputDelta: delta.PartialJSON,
					}
					if !s.emit(ctx, ev) {
						return "", nil, "", ctx.Err()
					}
				}
			}

		case anthropic.ContentBlockStopEvent:
			if current == nil {
				if !s.emit(ctx, Event{Kind: EventTextEnd}) {
					return "", nil, "", ctx.Err()
				}
				break
			}
			current.input = toolInput.String()
			if current.input == "" {
				current.input = "{}"
			}
			end := Event{Kind: EventToolInputEnd, ToolCallID: current.id, ToolName: current.name}
			call := Event{
				Kind:       EventToolCall,
				ToolCallID: current.id,
				ToolName:   current.name,
				Input:      json.RawMessage(current.input),
			}
			if !s.emit(ctx, end) || !s.emit(ctx, call) {
				return "", nil, "", ctx.Err()
			}
			calls = append(calls, *current)
			current = nil

		case anthropic.MessageDeltaEvent:
			stop = string(evt.Delta.StopReason)
			stepUsage := Usage{OutputTokens: int(evt.Usage.OutputTokens)}
			s.usage.OutputTokens += stepUsage.OutputTokens
			if !s.emit(ctx, Event{Kind: EventStepFinish, StopReason: stop, Usage: &stepUsage}) {
				return "", nil, "", ctx.Err()
			}
		}
	}

	if err := stream.Err(); err != nil {
		return "", nil, "", err
	}
	return text.String(), calls, stop, nil
}

// executeCalls runs each collected tool call and emits its result. Returns
// false when any call names a tool without an executable handler, which
// ends the loop: the caller owns that tool's execution.
func (m *anthropicModel) executeCalls(ctx context.Context, tools map[string]Tool, calls []pendingCall, s *anthropicStream) ([]anthropic.ContentBlockParamUnion, bool) {
	var results []anthropic.ContentBlockParamUnion
	for _, call := range calls {
		tool, ok := tools[call.name]
		if !ok || tool.Execute == nil {
			return nil, false
		}

		result, err := tool.Execute(ctx, json.RawMessage(call.input))
		if err != nil {
			s.emit(ctx, Event{
				Kind:       EventToolError,
				ToolCallID: call.id,
				ToolName:   call.name,
				Result:     err.Error(),
			})
			results = append(results, anthropic.NewToolResultBlock(call.id, err.Error(), true))
			continue
		}

		s.emit(ctx, Event{
			Kind:       EventToolResult,
			ToolCallID: call.id,
			ToolName:   call.name,
			Result:     result,
		})
		results = append(results, anthropic.NewToolResultBlock(call.id, result, false))
	}
	return results, true
}

// assistantTurn rebuilds the assistant message for one step so the next
// request carries the model's own tool calls.
func assistantTurn(text string, calls []pendingCall) anthropic.MessageParam {
	var blocks []anthropic.ContentBlockParamUnion
	if text != "" {
		blocks = append(blocks, anthropic.NewTextBlock(text))
	}
	for _, call := range calls {
		var input any
		_ = json.Unmarshal([]byte(call.input), &input)
		blocks = append(blocks, anthropic.NewToolUseBlock(call.id, input, call.name))
	}
	return anthropic.NewAssistantMessage(blocks...)
}

// toAnthropicMessages converts conversation history to SDK params. Tool
// results inside assistant turns are split into a following user message,
// which is where the Messages API expects them.
func toAnthropicMessages(messages []Message) []anthropic.MessageParam {
	var out []anthropic.MessageParam
	for _, msg := range messages {
		var blocks []anthropic.ContentBlockParamUnion
		var resultBlocks []anthropic.ContentBlockParamUnion

		for _, b := range msg.Blocks {
			switch b.Type {
			case BlockText:
				blocks = append(blocks, anthropic.NewTextBlock(b.Text))
			case BlockToolCall:
				var input any
				_ = json.Unmarshal(b.Input, &input)
				blocks = append(blocks, anthropic.NewToolUseBlock(b.ToolCallID, input, b.ToolName))
			case BlockToolResult:
				resultBlocks = append(resultBlocks, anthropic.NewToolResultBlock(b.ToolCallID, b.Result, b.IsError))
			}
		}

		switch msg.Role {
		case RoleAssistant:
			if len(blocks) > 0 {
				out = append(out, anthropic.NewAssistantMessage(blocks...))
			}
			if len(resultBlocks) > 0 {
				out = append(out, anthropic.NewUserMessage(resultBlocks...))
			}
		default:
			combined := append(blocks, resultBlocks...)
			if len(combined) > 0 {
				out = append(out, anthropic.NewUserMessage(combined...))
			}
		}
	}
	return out
}

// toAnthropicTools converts the tool map to SDK declarations, in sorted
// name order for deterministic requests.
func toAnthropicTools(tools map[string]Tool) []anthropic.ToolUnionParam {
	names := make([]string, 0, len(tools))
	for name := range tools {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []anthropic.ToolUnionParam
	for _, name := range names {
		tool := tools[name]
		param := anthropic.ToolParam{
			Name:        tool.Name,
			Description: anthropic.String(tool.Description),
		}
		if tool.InputSchema != nil {
			param.InputSchema = toInputSchema(tool.InputSchema)
		} else {
			param.InputSchema = anthropic.ToolInputSchemaParam{}
		}
		out = append(out, anthropic.ToolUnionParam{OfTool: &param})
	}
	return out
}

func toInputSchema(schema map[string]any) anthropic.ToolInputSchemaParam {
	out := anthropic.ToolInputSchemaParam{}
	if props, ok := schema["properties"].(map[string]any); ok {
		out.Properties = props
	}
	switch required := schema["required"].(type) {
	case []string:
		out.Required = required
	case []any:
		for _, r := range required {
			if s, ok := r.(string); ok {
				out.Required = append(out.Required, s)
			}
		}
	}
	return out
}

// anthropicStream adapts the engine goroutine's event channel to the Stream
// interface.
type anthropicStream struct {
	events chan Event
	cancel context.CancelFunc

	cur Event

	mu  sync.Mutex
	err error

	resp  *Response
	usage Usage
	meta  map[string]any
}

// emit sends one event, returning false when the consumer is gone.
func (s *anthropicStream) emit(ctx context.Context, ev Event) bool {
	select {
	case s.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *anthropicStream) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Next advances to the next event, returning false at end of stream.
func (s *anthropicStream) Next() bool {
	ev, ok := <-s.events
	if !ok {
		return false
	}
	s.cur = ev
	return true
}

// Current returns the event at the current position.
func (s *anthropicStream) Current() Event { return s.cur }

// Err returns the terminal error, if any.
func (s *anthropicStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close abandons the stream and releases the engine goroutine.
func (s *anthropicStream) Close() error {
	s.cancel()
	for range s.events {
		// Drain so the goroutine can exit.
	}
	return nil
}

// Response returns the final transcript; nil until the stream drains.
func (s *anthropicStream) Response() *Response { return s.resp }

// Usage returns accumulated token counts across all steps.
func (s *anthropicStream) Usage() Usage { return s.usage }

// Metadata returns provider-specific details recorded during the stream.
func (s *anthropicStream) Metadata() map[string]any { return s.meta }
