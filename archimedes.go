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

// Package archimedes wires the research assistant together: a chat model,
// the fuzzy knowledge-base search engine, the file tools, a session
// transcript and the agent loop.
package archimedes

import (
	"context"
	"log/slog"
	"sync"

	"github.com/poiesic/archimedes/agent"
	"github.com/poiesic/archimedes/ai"
	"github.com/poiesic/archimedes/ai/openai"
	"github.com/poiesic/archimedes/files"
	"github.com/poiesic/archimedes/search"
	"github.com/poiesic/archimedes/session"
	"github.com/poiesic/archimedes/tools"
)

// Assistant is a research assistant bound to one knowledge base and one session.
type Assistant struct {
	provider ai.AIProvider
	searcher *search.Searcher
	registry *tools.Registry
	session  *session.Session
	agent    *agent.Agent
	kbDir    string
	logger   *slog.Logger

	mu   sync.RWMutex
	mode agent.Mode
}

// Option configures an Assistant.
type Option func(*options)

type options struct {
	aiConfig  *ai.Config
	provider  ai.AIProvider
	kbDir     string
	logger    *slog.Logger
	agentOpts []agent.Option
}

// WithAIConfig sets the chat model configuration. Ignored when WithProvider is used.
func WithAIConfig(config *ai.Config) Option {
	return func(o *options) {
		o.aiConfig = config
	}
}

// WithProvider uses an existing AI provider instead of creating an OpenAI-compatible one.
func WithProvider(provider ai.AIProvider) Option {
	return func(o *options) {
		o.provider = provider
	}
}

// WithKnowledgeBaseDir sets the directory searched and extended by the assistant.
func WithKnowledgeBaseDir(dir string) Option {
	return func(o *options) {
		o.kbDir = dir
	}
}

// WithLogger sets a custom logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithAgentOptions passes extra options to the agent.
func WithAgentOptions(opts ...agent.Option) Option {
	return func(o *options) {
		o.agentOpts = append(o.agentOpts, opts...)
	}
}

// New creates an assistant. Without WithProvider it connects to an
// OpenAI-compatible service described by the AI config.
func New(opts ...Option) (*Assistant, error) {
	o := &options{
		aiConfig: ai.DefaultConfig(),
		kbDir:    tools.DefaultKnowledgeBaseDir,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	provider := o.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(o.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	searcher, err := search.NewSearcher(search.WithLogger(o.logger))
	if err != nil {
		provider.Close()
		return nil, err
	}

	registry := tools.NewRegistry(tools.WithLogger(o.logger))
	if err := registry.Register(
		tools.NewKnowledgeBaseTool(searcher, o.kbDir),
		tools.WriteFileTool{},
		tools.ReadFileTool{},
	); err != nil {
		provider.Close()
		return nil, err
	}

	sess := session.New()

	agentOpts := []agent.Option{agent.WithLogger(o.logger)}
	if cfg := provider.Config(); cfg != nil {
		agentOpts = append(agentOpts, agent.WithTemperature(cfg.Temperature))
	}
	agentOpts = append(agentOpts, o.agentOpts...)

	ag, err := agent.NewAgent(provider.Model(), registry, sess, agentOpts...)
	if err != nil {
		provider.Close()
		return nil, err
	}

	return &Assistant{
		provider: provider,
		searcher: searcher,
		registry: registry,
		session:  sess,
		agent:    ag,
		kbDir:    o.kbDir,
		logger:   o.logger.With("component", "assistant"),
		mode:     agent.Convergent,
	}, nil
}

// Close releases the agent's workers and the AI provider.
func (a *Assistant) Close() error {
	a.agent.Release()
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
		return err
	}
	return nil
}

// Chat asks a question in the current mode and returns the model's full answer.
// Use agent.ExtractFinalAnswer to get the part meant for display.
func (a *Assistant) Chat(ctx context.Context, question string) (string, error) {
	return a.agent.Chat(ctx, agent.ModeInstruction(a.Mode(), question))
}

// Search runs the knowledge-base search directly and returns its report.
func (a *Assistant) Search(query string, cutoff int) string {
	return a.searcher.Report(query, a.kbDir, cutoff)
}

// AddToKnowledgeBase copies the file at path into the knowledge base and
// returns the copied file's name.
func (a *Assistant) AddToKnowledgeBase(path string) (string, error) {
	name, err := files.AddToKnowledgeBase(path, a.kbDir)
	if err != nil {
		return "", err
	}
	a.logger.Info("added document to knowledge base", "file", name, "dir", a.kbDir)
	return name, nil
}

// LoadDocument reads the file at path into the conversation.
func (a *Assistant) LoadDocument(path string) error {
	content, err := files.ReadFile(path)
	if err != nil {
		return err
	}
	return a.agent.Remember(content)
}

// SaveSession writes the transcript as Markdown to path.
func (a *Assistant) SaveSession(path string) error {
	return a.session.Save(path)
}

// Mode returns the mode used for the next question.
func (a *Assistant) Mode() agent.Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

// SetMode changes the mode used for following questions.
func (a *Assistant) SetMode(mode agent.Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mode = mode
}

// KnowledgeBaseDir returns the knowledge base directory.
func (a *Assistant) KnowledgeBaseDir() string {
	return a.kbDir
}

// Session returns the conversation transcript.
func (a *Assistant) Session() *session.Session {
	return a.session
}

// Tools returns the tool registry offered to the model.
func (a *Assistant) Tools() *tools.Registry {
	return a.registry
}
