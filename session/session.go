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

// Package session holds the running chat transcript of an assistant session and
// exports it as a Markdown file.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/archimedes/core"
)

// ErrPathNotAbsolute is returned when the export path is relative.
var ErrPathNotAbsolute = errors.New("file path must be absolute")

// Session is an ordered transcript of chat records. It is safe for concurrent use.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time

	mu      sync.RWMutex
	records []*core.ChatRecord
}

// New creates an empty session with a random ID.
func New() *Session {
	return &Session{
		ID:        uuid.New(),
		StartedAt: time.Now().UTC(),
	}
}

// Append validates and adds records to the end of the transcript.
// Nothing is added if any record is invalid.
func (s *Session) Append(records ...*core.ChatRecord) error {
	for _, r := range records {
		if err := core.ValidateChatRecord(r); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	return nil
}

// Records returns a snapshot of the transcript.
func (s *Session) Records() []*core.ChatRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*core.ChatRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records in the transcript.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// WriteMarkdown renders the transcript to w, one block per record.
func (s *Session) WriteMarkdown(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, r := range s.Records() {
		var err error
		switch {
		case r.Speaker == core.SpeakerTypeHuman:
			_, err = fmt.Fprintf(bw, "--- HUMAN ---\n%s\n\n", r.Contents)
		case r.Speaker == core.SpeakerTypeAI && len(r.ToolCalls) > 0:
			var calls strings.Builder
			for _, tc := range r.ToolCalls {
				fmt.Fprintf(&calls, "Tool Call: %s(%s)\n", tc.Name, tc.Arguments)
			}
			_, err = fmt.Fprintf(bw, "--- AI (Tool Call) ---\n%s\n%s\n\n", calls.String(), r.Contents)
		case r.Speaker == core.SpeakerTypeAI:
			_, err = fmt.Fprintf(bw, "--- AI ---\n%s\n\n", r.Contents)
		default:
			_, err = fmt.Fprintf(bw, "--- SYSTEM ---\n%s\n\n", r.Contents)
		}
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Save writes the transcript as Markdown to path, creating parent directories.
func (s *Session) Save(path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%w: %s", ErrPathNotAbsolute, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.WriteMarkdown(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// DefaultFilename returns the export file name used when none is given.
func DefaultFilename(t time.Time) string {
	return "session_history_" + t.Format("20060102_150405") + ".md"
}
