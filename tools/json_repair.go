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

package tools

import (
	"strings"
	"unicode"
)

// repairArguments fixes common JSON formatting issues in tool-call arguments
// produced by models: Markdown code fences, keys missing their opening quote
// or both quotes, and trailing commas. Blank input becomes an empty object.
func repairArguments(s string) string {
	s = stripCodeFences(s)
	if s == "" {
		return "{}"
	}
	s = quoteKeys(s)
	return dropTrailingCommas(s)
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// quoteKeys adds missing quotes around object keys.
// Example: `{query": "x", cutoff: 70}` -> `{"query": "x", "cutoff": 70}`
func quoteKeys(s string) string {
	r := []rune(s)
	var out strings.Builder
	out.Grow(len(s) + 16)

	inString, escaped := false, false
	for i := 0; i < len(r); i++ {
		ch := r[i]
		if inString {
			out.WriteRune(ch)
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		out.WriteRune(ch)
		if ch == '"' {
			inString = true
			continue
		}
		if ch != '{' && ch != ',' {
			continue
		}

		// Keys only follow '{' or ','.
		start := i + 1
		for start < len(r) && unicode.IsSpace(r[start]) {
			start++
		}
		end := start
		for end < len(r) && isIdentRune(r[end], end == start) {
			end++
		}
		if end == start {
			continue
		}

		after := end
		for after < len(r) && unicode.IsSpace(r[after]) {
			after++
		}

		switch {
		case end < len(r) && r[end] == '"' && end+1 < len(r) && r[end+1] == ':':
			// Closing quote present, opening quote missing.
			out.WriteString(string(r[i+1 : start]))
			out.WriteRune('"')
			out.WriteString(string(r[start:end]))
			out.WriteRune('"')
			i = end
		case after < len(r) && r[after] == ':':
			// Bare key.
			out.WriteString(string(r[i+1 : start]))
			out.WriteRune('"')
			out.WriteString(string(r[start:end]))
			out.WriteRune('"')
			i = end - 1
		}
	}
	return out.String()
}

// dropTrailingCommas removes commas directly before a closing brace or bracket.
func dropTrailingCommas(s string) string {
	r := []rune(s)
	var out strings.Builder
	out.Grow(len(s))

	inString, escaped := false, false
	for i, ch := range r {
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			out.WriteRune(ch)
			continue
		}
		if ch == '"' {
			inString = true
		}
		if ch == ',' {
			next := i + 1
			for next < len(r) && unicode.IsSpace(r[next]) {
				next++
			}
			if next < len(r) && (r[next] == '}' || r[next] == ']') {
				continue
			}
		}
		out.WriteRune(ch)
	}
	return out.String()
}

func isIdentRune(r rune, first bool) bool {
	if r == '_' || unicode.IsLetter(r) {
		return true
	}
	return !first && unicode.IsDigit(r)
}
