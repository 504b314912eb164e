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

package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SpeakerType identifies the source of a chat message.
type SpeakerType int

const (
	// SpeakerTypeHuman represents a human user.
	SpeakerTypeHuman SpeakerType = iota + 1
	// SpeakerTypeAI represents the assistant.
	SpeakerTypeAI
	// SpeakerTypeSystem represents system instructions.
	SpeakerTypeSystem
	// SpeakerTypeTool represents the output of a tool invocation.
	SpeakerTypeTool
)

// String returns the transcript label for the speaker.
func (s SpeakerType) String() string {
	switch s {
	case SpeakerTypeHuman:
		return "HUMAN"
	case SpeakerTypeAI:
		return "AI"
	case SpeakerTypeSystem:
		return "SYSTEM"
	case SpeakerTypeTool:
		return "TOOL"
	default:
		return "UNKNOWN"
	}
}

// ToolInvocation records a tool call requested by the model.
type ToolInvocation struct {
	ID        string
	Name      string
	Arguments string // Raw JSON arguments as produced by the model
}

// ChatRecord represents a single message in a conversation.
type ChatRecord struct {
	Id        ID
	Speaker   SpeakerType
	Contents  string
	Timestamp time.Time         // When the message was added to the transcript
	ToolCalls []ToolInvocation  // Tool calls issued alongside an AI message
	Metadata  map[string]string // Optional metadata (e.g., "mode", "model", "source")
}

// NewChatRecord creates a record stamped with the current UTC time.
// The ID is derived from the speaker, timestamp and contents.
func NewChatRecord(speaker SpeakerType, contents string) *ChatRecord {
	now := time.Now().UTC()
	return &ChatRecord{
		Id:        IDFromContent(speaker.String() + "|" + now.Format(time.RFC3339Nano) + "|" + contents),
		Speaker:   speaker,
		Contents:  contents,
		Timestamp: now,
	}
}

// Match is a knowledge-base paragraph that scored at or above the cutoff for a query.
// Matches are created per query and never persisted.
type Match struct {
	Id        ID
	Source    string // File name of the document the paragraph came from
	Paragraph string // Trimmed paragraph text
	Score     int    // Similarity score from 0 to 100
}

// NewMatch creates a Match whose ID is derived from its source and paragraph.
func NewMatch(source, paragraph string, score int) *Match {
	return &Match{
		Id:        IDFromContent(source + "\x00" + paragraph),
		Source:    source,
		Paragraph: paragraph,
		Score:     score,
	}
}
