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

import "errors"

var (
	// ErrModelRequired is returned when an agent is created without a model.
	ErrModelRequired = errors.New("model is required")
	// ErrRegistryRequired is returned when an agent is created without a tool registry.
	ErrRegistryRequired = errors.New("tool registry is required")
	// ErrSessionRequired is returned when an agent is created without a session.
	ErrSessionRequired = errors.New("session is required")
	// ErrMaxToolRounds is returned when the model keeps requesting tools past the limit.
	ErrMaxToolRounds = errors.New("maximum tool rounds exceeded")
	// ErrEmptyResponse is returned when the model returns no choices or no text.
	ErrEmptyResponse = errors.New("model returned an empty response")
	// ErrInvalidMode is returned when a mode name is not recognized.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrInvalidMaxAttempts is returned when retry is configured with a non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
