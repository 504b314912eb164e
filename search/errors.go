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

package search

import "errors"

var (
	// ErrDirectoryNotFound is returned when the knowledge base path does not
	// resolve to an existing directory.
	ErrDirectoryNotFound = errors.New("knowledge base directory not found")

	// ErrDirectoryUnreadable is returned when the directory exists but cannot be listed.
	ErrDirectoryUnreadable = errors.New("knowledge base directory unreadable")

	// ErrInvalidEncoding is reported for documents that are not valid UTF-8.
	ErrInvalidEncoding = errors.New("document is not valid UTF-8")
)
