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

package mock

import (
	"github.com/poiesic/archimedes/ai"
	"github.com/tmc/langchaingo/llms"
)

// MockProvider is a test double for ai.AIProvider.
type MockProvider struct {
	model  *MockModel
	config *ai.Config
	closed bool
}

// NewMockProvider creates a new mock provider with a default mock model.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Use GetMockModel() to access the concrete model for test assertions.
func NewMockProvider() ai.AIProvider {
	return NewMockProviderWithModel(NewMockModel())
}

// NewMockProviderWithModel creates a mock provider around a custom mock model.
func NewMockProviderWithModel(model *MockModel) ai.AIProvider {
	return &MockProvider{
		model:  model,
		config: ai.DefaultConfig(),
	}
}

// Model returns the mock model.
func (p *MockProvider) Model() llms.Model {
	return p.model
}

// Config returns the default configuration.
func (p *MockProvider) Config() *ai.Config {
	return p.config
}

// Close marks the provider closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close was called.
func (p *MockProvider) Closed() bool {
	return p.closed
}

// GetMockModel returns the underlying mock model for test assertions.
func (p *MockProvider) GetMockModel() *MockModel {
	return p.model
}
