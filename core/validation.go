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
	"fmt"
	"strings"
	"time"
)

// ValidateChatRecord validates a ChatRecord according to domain rules.
//
// Validation rules:
//   - Contents must not be empty, unless the record is an AI message carrying tool calls
//   - SpeakerType must be valid
//   - Timestamp must not be in the future
func ValidateChatRecord(record *ChatRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidChatRecord)
	}

	if record.Contents == "" && !(record.Speaker == SpeakerTypeAI && len(record.ToolCalls) > 0) {
		return fmt.Errorf("%w: %w", ErrInvalidChatRecord, ErrEmptyContent)
	}

	if err := ValidateSpeakerType(record.Speaker); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChatRecord, err)
	}

	if !IsValidTimestamp(record.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidChatRecord, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateMatch validates a Match according to domain rules.
//
// Validation rules:
//   - Source must not be empty
//   - Paragraph must not be blank
//   - Score must be within [0, 100]
func ValidateMatch(match *Match) error {
	if match == nil {
		return fmt.Errorf("%w: match is nil", ErrInvalidMatch)
	}

	if match.Source == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMatch, ErrEmptySource)
	}

	if strings.TrimSpace(match.Paragraph) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMatch, ErrEmptyParagraph)
	}

	if match.Score < 0 || match.Score > 100 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidMatch, ErrScoreOutOfRange, match.Score)
	}

	return nil
}

// ValidateSpeakerType validates that a SpeakerType has a valid value.
func ValidateSpeakerType(speaker SpeakerType) error {
	if speaker < SpeakerTypeHuman || speaker > SpeakerTypeTool {
		return fmt.Errorf("%w: value %d", ErrInvalidSpeakerType, speaker)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
