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

// Package agent runs the research assistant's conversation loop.
//
// An Agent sends the system prompt, the session history and the user's input
// to a language model. When the model asks for tools, the calls are executed
// concurrently on a worker pool and their results are fed back until the model
// produces a plain answer. Successful turns are appended to the session.
package agent
