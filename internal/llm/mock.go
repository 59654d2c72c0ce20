package llm

import (
	"context"
	"sync"
)

// MockModel is a test double that replays scripted events and records every
// request for later assertion.
type MockModel struct {
	// ModelID is returned by ID. Defaults to "mock" when empty.
	ModelID string

	// Events are replayed by each returned stream.
	Events []Event

	// FinalResponse, FinalUsage, and FinalMetadata become the stream's
	// deferred values.
	FinalResponse *Response
	FinalUsage    Usage
	FinalMetadata map[string]any

	// StreamErr, when set, is returned as the stream's terminal error.
	StreamErr error

	mu    sync.Mutex
	calls []StreamRequest
}

// Compile-time check that MockModel satisfies the Model interface.
var _ Model = (*MockModel)(nil)

// ID returns the configured model id.
func (m *MockModel) ID() string {
	if m.ModelID == "" {
		return "mock"
	}
	return m.ModelID
}

// Stream records the request and returns a stream replaying the scripted
// events. It respects context cancellation at call time.
func (m *MockModel) Stream(ctx context.Context, req StreamRequest) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	return &mockStream{model: m}, nil
}

// Calls returns a copy of all requests received by this mock.
func (m *MockModel) Calls() []StreamRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]StreamRequest, len(m.calls))
	copy(out, m.calls)
	return out
}

// Reset clears recorded calls.
func (m *MockModel) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

type mockStream struct {
	model *MockModel
	pos   int
	cur   Event
}

func (s *mockStream) Next() bool {
	if s.pos >= len(s.model.Events) {
		return false
	}
	s.cur = s.model.Events[s.pos]
	s.pos++
	return true
}

func (s *mockStream) Current() Event { return s.cur }

func (s *mockStream) Err() error { return s.model.StreamErr }

func (s *mockStream) Close() error {
	s.pos = len(s.model.Events)
	return nil
}

func (s *mockStream) Response() *Response {
	if s.model.FinalResponse != nil {
		return s.model.FinalResponse
	}
	return &Response{Model: s.model.ID()}
}

func (s *mockStream) Usage() Usage { return s.model.FinalUsage }

func (s *mockStream) Metadata() map[string]any { return s.model.FinalMetadata }
