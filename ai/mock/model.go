package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// MockModel is a test double for llms.Model.
// Responses can be scripted in order, or produced by GenerateContentFunc.
type MockModel struct {
	// GenerateContentFunc is called by GenerateContent if set and no scripted
	// responses remain. If nil, the model echoes the last human message.
	GenerateContentFunc func(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)

	mu        sync.Mutex
	scripted  []*llms.ContentResponse
	calls     [][]llms.MessageContent
	callOpts  []llms.CallOptions
	callCount int
}

var _ llms.Model = (*MockModel)(nil)

// NewMockModel creates a mock model with default echo behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockModel() *MockModel {
	return &MockModel{}
}

// WithResponses queues responses returned by successive GenerateContent calls.
func (m *MockModel) WithResponses(responses ...*llms.ContentResponse) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scripted = append(m.scripted, responses...)
	return m
}

// WithGenerateContentFunc sets custom behavior for GenerateContent.
func (m *MockModel) WithGenerateContentFunc(fn func(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)) *MockModel {
	m.GenerateContentFunc = fn
	return m
}

// GenerateContent records the call and returns the next scripted response.
func (m *MockModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	var opts llms.CallOptions
	for _, opt := range options {
		opt(&opts)
	}

	m.mu.Lock()
	m.callCount++
	snapshot := make([]llms.MessageContent, len(messages))
	copy(snapshot, messages)
	m.calls = append(m.calls, snapshot)
	m.callOpts = append(m.callOpts, opts)

	if len(m.scripted) > 0 {
		next := m.scripted[0]
		m.scripted = m.scripted[1:]
		m.mu.Unlock()
		return next, nil
	}
	fn := m.GenerateContentFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, messages, options...)
	}
	return TextResponse("mock response: " + lastHumanText(messages)), nil
}

// Call implements the single-prompt convenience method.
func (m *MockModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

// CallCount returns the number of times GenerateContent was called.
func (m *MockModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Messages returns the messages passed to the i-th GenerateContent call.
func (m *MockModel) Messages(i int) []llms.MessageContent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[i]
}

// Options returns the resolved call options of the i-th GenerateContent call.
func (m *MockModel) Options(i int) llms.CallOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callOpts[i]
}

// Reset clears recorded calls, scripted responses and custom functions.
func (m *MockModel) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.calls = nil
	m.callOpts = nil
	m.scripted = nil
	m.GenerateContentFunc = nil
}

// TextResponse builds a response with a single plain-text choice.
func TextResponse(text string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: text, StopReason: "stop"}},
	}
}

// ToolCallResponse builds a response whose single choice requests the given tool calls.
func ToolCallResponse(content string, calls ...llms.ToolCall) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: content, StopReason: "tool_calls", ToolCalls: calls}},
	}
}

// NewToolCall builds a function tool call.
func NewToolCall(id, name, arguments string) llms.ToolCall {
	return llms.ToolCall{
		ID:   id,
		Type: "function",
		FunctionCall: &llms.FunctionCall{
			Name:      name,
			Arguments: arguments,
		},
	}
}

func lastHumanText(messages []llms.MessageContent) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role != llms.ChatMessageTypeHuman {
			continue
		}
		var parts []string
		for _, part := range messages[i].Parts {
			if text, ok := part.(llms.TextContent); ok {
				parts = append(parts, text.Text)
			}
		}
		return strings.Join(parts, "\n")
	}
	return ""
}
