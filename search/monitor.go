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

import "github.com/poiesic/archimedes/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to trace which documents were scanned or skipped.
type SearchMonitor interface {
	Start(query, dir string)
	FileScanned(name string, paragraphs int)
	FileSkipped(name string, err error)
	Finish(matches []*core.Match)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_, _ string)             {}
func (n *noopMonitor) FileScanned(_ string, _ int)   {}
func (n *noopMonitor) FileSkipped(_ string, _ error) {}
func (n *noopMonitor) Finish(_ []*core.Match)        {}
