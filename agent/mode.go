package agent

import (
	"fmt"
	"strings"
)

// Mode selects how the assistant approaches a turn.
type Mode int

const (
	// Convergent is logical and deductive: one best, evidence-based answer.
	Convergent Mode = iota
	// Divergent is exploratory: multiple hypotheses and unexpected connections.
	Divergent
)

func (m Mode) String() string {
	switch m {
	case Convergent:
		return "convergent"
	case Divergent:
		return "divergent"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name, ignoring case and surrounding whitespace.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "convergent":
		return Convergent, nil
	case "divergent":
		return Divergent, nil
	default:
		return Convergent, fmt.Errorf("%w: %q (choose 'convergent' or 'divergent')", ErrInvalidMode, name)
	}
}

// ModeInstruction prefixes a user question with the per-turn mode instruction.
func ModeInstruction(mode Mode, question string) string {
	return fmt.Sprintf("[SYSTEM INSTRUCTION: For this turn, you MUST operate in %s mode.]\n\nUSER QUESTION: %s",
		strings.ToUpper(mode.String()), question)
}
