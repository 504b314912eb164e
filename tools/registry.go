package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// Tool is a function the chat model may invoke.
type Tool interface {
	// Name is the identifier the model uses to call the tool.
	Name() string

	// Description tells the model what the tool does and when to use it.
	Description() string

	// Parameters is the JSON schema of the tool's argument object.
	Parameters() map[string]any

	// Call runs the tool with JSON-encoded arguments and returns its result.
	// Failures are returned as human-readable strings, never as errors.
	Call(ctx context.Context, arguments string) string
}

// Registry holds the tools offered to the model. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]Tool
	order  []string
	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		tools:  make(map[string]Tool),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "tool-registry")
	return r
}

// Register adds tools in order. Names must be non-empty and unique.
func (r *Registry) Register(tools ...Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range tools {
		if t == nil || t.Name() == "" {
			return fmt.Errorf("%w: tool name is required", ErrInvalidTool)
		}
		if _, ok := r.tools[t.Name()]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateTool, t.Name())
		}
		r.tools[t.Name()] = t
		r.order = append(r.order, t.Name())
	}
	return nil
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Definitions returns the langchaingo tool definitions to send with a chat request.
func (r *Registry) Definitions() []llms.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]llms.Tool, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		defs = append(defs, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}
	return defs
}

// Execute runs a tool call requested by the model and wraps the result as a
// tool response. Unknown tools and panicking tools produce error strings.
func (r *Registry) Execute(ctx context.Context, call llms.ToolCall) (resp llms.ToolCallResponse) {
	resp.ToolCallID = call.ID
	if call.FunctionCall == nil {
		resp.Content = "Error: Tool call did not name a function."
		return resp
	}
	resp.Name = call.FunctionCall.Name

	t, ok := r.Get(call.FunctionCall.Name)
	if !ok {
		r.logger.Warn("model requested unknown tool", "tool", call.FunctionCall.Name)
		resp.Content = fmt.Sprintf("Error: Unknown tool '%s'. Available tools: %s",
			call.FunctionCall.Name, strings.Join(r.Names(), ", "))
		return resp
	}

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("tool panicked", "tool", resp.Name, "panic", p)
			resp.Content = fmt.Sprintf("Error: Tool '%s' failed: %v", resp.Name, p)
		}
	}()

	r.logger.Debug("executing tool", "tool", resp.Name, "id", call.ID, "arguments", call.FunctionCall.Arguments)
	resp.Content = t.Call(ctx, call.FunctionCall.Arguments)
	return resp
}

// decodeArguments unmarshals tool-call arguments into dst, repairing common
// model formatting mistakes when the raw arguments do not parse.
func decodeArguments(raw string, dst any) error {
	if strings.TrimSpace(raw) == "" {
		raw = "{}"
	}
	err := json.Unmarshal([]byte(raw), dst)
	if err == nil {
		return nil
	}
	if repairErr := json.Unmarshal([]byte(repairArguments(raw)), dst); repairErr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}
	return nil
}
