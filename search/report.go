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

import (
	"fmt"
	"strings"

	"github.com/poiesic/archimedes/core"
)

// NoMatchesMessage is returned when no paragraph reaches the cutoff.
const NoMatchesMessage = "No relevant information found in the knowledge base."

// DirectoryNotFoundMessage is the report for a knowledge base path that is not a directory.
func DirectoryNotFoundMessage(dir string) string {
	return fmt.Sprintf("Error: Knowledge base directory not found at '%s'", dir)
}

// FormatReport renders ranked matches as a plain-text report.
// An empty slice renders as NoMatchesMessage.
func FormatReport(query string, matches []*core.Match) string {
	if len(matches) == 0 {
		return NoMatchesMessage
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d relevant snippet(s) for '%s':\n", len(matches), query)
	for _, m := range matches {
		fmt.Fprintf(&b, "\n--- From: %s (Similarity Score: %d) ---\n", m.Source, m.Score)
		b.WriteString(m.Paragraph)
		b.WriteString("\n")
	}
	return b.String()
}
