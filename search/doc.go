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

// Package search provides the fuzzy knowledge-base search engine.
//
// A knowledge base is a flat directory of Markdown files. For every query the
// Searcher lists the directory, splits each ".md" file into paragraphs on blank
// lines and scores every paragraph against the query with a partial fuzzy ratio:
// the shorter string is aligned against the best-matching substring of the longer
// one, so a short phrase embedded in a long paragraph still scores close to 100.
//
// Paragraphs scoring at or above the cutoff are ranked by score (stable for ties)
// and rendered into a plain-text report suitable for returning to an LLM as a
// tool result. The engine keeps no index and no state between calls.
package search
