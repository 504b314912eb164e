// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package agent

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/archimedes/core"
	"github.com/poiesic/archimedes/session"
	"github.com/poiesic/archimedes/tools"
	"github.com/tmc/langchaingo/llms"
)

const (
	// DefaultTemperature keeps answers focused.
	DefaultTemperature = 0.1
	// DefaultMaxToolRounds bounds how many times one turn may go back to the tools.
	DefaultMaxToolRounds = 8
	// DefaultMaxAttempts is the number of tries per model call.
	DefaultMaxAttempts = 3
	// DefaultRetryDelay is the base backoff between model call attempts.
	DefaultRetryDelay = 500 * time.Millisecond
)

// Agent drives one research conversation.
type Agent struct {
	model         llms.Model
	registry      *tools.Registry
	session       *session.Session
	pool          *ants.Pool
	temperature   float64
	maxToolRounds int
	maxAttempts   int
	retryDelay    time.Duration
	logger        *slog.Logger
}

// Option configures an Agent.
type Option func(*Agent) error

// WithPoolSize sets the number of workers executing tool calls.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(a *Agent) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if a.pool != nil {
			a.pool.Release()
		}
		a.pool = pool
		return nil
	}
}

// WithTemperature sets the sampling temperature sent with every model call.
func WithTemperature(temperature float64) Option {
	return func(a *Agent) error {
		if temperature < 0 || temperature > 2 {
			return fmt.Errorf("temperature must be between 0 and 2, got %v", temperature)
		}
		a.temperature = temperature
		return nil
	}
}

// WithMaxToolRounds limits how many tool rounds a single Chat call may run.
func WithMaxToolRounds(rounds int) Option {
	return func(a *Agent) error {
		if rounds < 1 {
			rounds = 1
		}
		a.maxToolRounds = rounds
		return nil
	}
}

// WithRetry sets the attempt count and base backoff for model calls.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(a *Agent) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		a.maxAttempts = maxAttempts
		a.retryDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAgent creates an agent that talks to model, calls tools from registry
// and records successful turns in sess.
func NewAgent(model llms.Model, registry *tools.Registry, sess *session.Session, opts ...Option) (*Agent, error) {
	if model == nil {
		return nil, ErrModelRequired
	}
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	if sess == nil {
		return nil, ErrSessionRequired
	}

	a := &Agent{
		model:         model,
		registry:      registry,
		session:       sess,
		temperature:   DefaultTemperature,
		maxToolRounds: DefaultMaxToolRounds,
		maxAttempts:   DefaultMaxAttempts,
		retryDelay:    DefaultRetryDelay,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			a.Release()
			return nil, err
		}
	}

	if a.pool == nil {
		pool, err := ants.NewPool(max(runtime.NumCPU(), 1))
		if err != nil {
			return nil, err
		}
		a.pool = pool
	}

	a.logger = a.logger.With("component", "agent", "session", a.session.ID.String())
	return a, nil
}

// Session returns the session the agent records into.
func (a *Agent) Session() *session.Session {
	return a.session
}

// Chat sends input to the model along with the conversation so far and
// returns the model's raw answer. Tool calls requested by the model are
// executed and fed back until it answers in plain text. The input and the
// answer are added to the session only when the turn succeeds.
func (a *Agent) Chat(ctx context.Context, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", fmt.Errorf("%w: %w", core.ErrInvalidChatRecord, core.ErrEmptyContent)
	}

	messages := a.history()
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, input))
	turn := []*core.ChatRecord{core.NewChatRecord(core.SpeakerTypeHuman, input)}

	opts := []llms.CallOption{llms.WithTemperature(a.temperature)}
	if defs := a.registry.Definitions(); len(defs) > 0 {
		opts = append(opts, llms.WithTools(defs))
	}

	for round := 0; ; round++ {
		choice, err := a.generate(ctx, messages, opts)
		if err != nil {
			return "", err
		}

		if len(choice.ToolCalls) == 0 {
			if strings.TrimSpace(choice.Content) == "" {
				return "", ErrEmptyResponse
			}
			turn = append(turn, core.NewChatRecord(core.SpeakerTypeAI, choice.Content))
			if err := a.session.Append(turn...); err != nil {
				return "", err
			}
			a.logger.Debug("turn complete", "toolRounds", round, "records", a.session.Len())
			return choice.Content, nil
		}

		if round >= a.maxToolRounds {
			return "", fmt.Errorf("%w: %d", ErrMaxToolRounds, a.maxToolRounds)
		}

		a.logger.Debug("model requested tools", "round", round+1, "calls", len(choice.ToolCalls))
		messages = append(messages, toolRequestMessage(choice))
		turn = append(turn, toolRequestRecord(choice))

		for _, resp := range a.executeTools(ctx, choice.ToolCalls) {
			messages = append(messages, llms.MessageContent{
				Role:  llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{resp},
			})
		}
	}
}

// Remember places a document in the conversation as a human message so
// later turns can refer to it.
func (a *Agent) Remember(content string) error {
	return a.session.Append(core.NewChatRecord(core.SpeakerTypeHuman, DocumentMessage(content)))
}

// Release frees the tool worker pool. The agent must not be used afterwards.
func (a *Agent) Release() {
	if a.pool != nil {
		a.pool.Release()
	}
}

func (a *Agent) generate(ctx context.Context, messages []llms.MessageContent, opts []llms.CallOption) (*llms.ContentChoice, error) {
	var resp *llms.ContentResponse
	err := RetryWithBackoff(ctx, a.logger, func() error {
		var err error
		resp, err = a.model.GenerateContent(ctx, messages, opts...)
		return err
	}, a.maxAttempts, a.retryDelay)
	if err != nil {
		a.logger.Error("failed to generate content", "attempts", a.maxAttempts, "err", err)
		return nil, fmt.Errorf("generate content: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return nil, ErrEmptyResponse
	}
	return resp.Choices[0], nil
}

// executeTools runs calls concurrently and returns their responses in call order.
func (a *Agent) executeTools(ctx context.Context, calls []llms.ToolCall) []llms.ToolCallResponse {
	responses := make([]llms.ToolCallResponse, len(calls))

	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Add(1)
		err := a.pool.Submit(func() {
			defer wg.Done()
			responses[i] = a.registry.Execute(ctx, call)
		})
		if err != nil {
			wg.Done()
			a.logger.Warn("tool pool unavailable, running inline", "tool", toolName(call), "err", err)
			responses[i] = a.registry.Execute(ctx, call)
		}
	}
	wg.Wait()

	return responses
}

// history converts the session into model messages. Tool rounds from
// earlier turns are not replayed.
func (a *Agent) history() []llms.MessageContent {
	records := a.session.Records()
	messages := make([]llms.MessageContent, 0, len(records)+2)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, SystemPrompt))
	for _, r := range records {
		switch {
		case r.Speaker == core.SpeakerTypeHuman:
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, r.Contents))
		case r.Speaker == core.SpeakerTypeAI && len(r.ToolCalls) == 0:
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeAI, r.Contents))
		}
	}
	return messages
}

func toolRequestMessage(choice *llms.ContentChoice) llms.MessageContent {
	msg := llms.MessageContent{Role: llms.ChatMessageTypeAI}
	if choice.Content != "" {
		msg.Parts = append(msg.Parts, llms.TextPart(choice.Content))
	}
	for _, call := range choice.ToolCalls {
		msg.Parts = append(msg.Parts, call)
	}
	return msg
}

func toolRequestRecord(choice *llms.ContentChoice) *core.ChatRecord {
	record := core.NewChatRecord(core.SpeakerTypeAI, choice.Content)
	for _, call := range choice.ToolCalls {
		inv := core.ToolInvocation{ID: call.ID}
		if call.FunctionCall != nil {
			inv.Name = call.FunctionCall.Name
			inv.Arguments = call.FunctionCall.Arguments
		}
		record.ToolCalls = append(record.ToolCalls, inv)
	}
	return record
}

func toolName(call llms.ToolCall) string {
	if call.FunctionCall == nil {
		return ""
	}
	return call.FunctionCall.Name
}
