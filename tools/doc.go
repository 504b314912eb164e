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

// Package tools exposes assistant capabilities to a tool-calling chat model.
//
// A Tool has a declared name, a JSON-schema description of its arguments and a
// Call method that always returns a plain string. Failures are reported as
// "Error: ..." strings because the calling layer has no channel for structured
// errors. The Registry turns registered tools into langchaingo tool definitions
// and dispatches the model's tool calls.
package tools
