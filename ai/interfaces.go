package ai

import "github.com/tmc/langchaingo/llms"

// AIProvider owns the chat model used by the assistant and its lifecycle.
type AIProvider interface {
	// Model returns the chat model. The returned model is safe for concurrent use.
	Model() llms.Model

	// Config returns the configuration the provider was created with.
	Config() *Config

	// Close releases resources held by the provider.
	// After Close is called, the provider and its model should not be used.
	Close() error
}
