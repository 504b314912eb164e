package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/archimedes"
	"github.com/poiesic/archimedes/agent"
	"github.com/poiesic/archimedes/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestREPL(t *testing.T, input string, model *mock.MockModel) (*repl, *bytes.Buffer, string) {
	t.Helper()
	kb := filepath.Join(t.TempDir(), "kb")
	a, err := archimedes.New(
		archimedes.WithProvider(mock.NewMockProviderWithModel(model)),
		archimedes.WithKnowledgeBaseDir(kb),
		archimedes.WithAgentOptions(agent.WithRetry(1, time.Millisecond)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	var out bytes.Buffer
	fixed := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	r := &repl{
		assistant: a,
		con:       newConsole(strings.NewReader(input), &out),
		now:       func() time.Time { return fixed },
	}
	return r, &out, kb
}

func TestREPL_Commands(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "draft.md")
	require.NoError(t, os.WriteFile(doc, []byte("Draft body."), 0644))
	saved := filepath.Join(dir, "out", "session.md")

	input := strings.Join([]string{
		"!load_session " + doc,
		"!load_session " + filepath.Join(dir, "missing.md"),
		"!add_kb " + doc,
		"!add_kb draft.md",
		"!mode divergent",
		"!mode sideways",
		"!bogus",
		"!load_session",
		"Tell me about the draft",
		"!save_session " + saved,
		"!save_session relative.md",
		"quit",
	}, "\n") + "\n"

	model := mock.NewMockModel().WithResponses(
		mock.TextResponse("**Reasoning:**\n1. Model.\n\n**Final Answer:**\nThe draft is short."),
	)
	r, out, kb := newTestREPL(t, input, model)

	require.NoError(t, r.run(context.Background()))
	got := out.String()

	assert.Contains(t, got, "Attempting to load file into session memory: "+doc)
	assert.Contains(t, got, "Successfully loaded document into agent's working memory.")
	assert.Contains(t, got, "Error: File not found at the specified path: "+filepath.Join(dir, "missing.md"))

	assert.Contains(t, got, "Successfully copied 'draft.md' to the knowledge base.")
	assert.FileExists(t, filepath.Join(kb, "draft.md"))
	assert.Contains(t, got, "Error: Source file path must be absolute. You provided: draft.md")

	assert.Contains(t, got, "Agent mode switched to: divergent")
	assert.Contains(t, got, "Error: Invalid mode. Please choose 'convergent' or 'divergent'.")
	assert.Equal(t, 2, strings.Count(got, unknownCommandMessage))

	assert.Contains(t, got, "Thinking...")
	assert.Contains(t, got, "\nArchimedes:\nThe draft is short.\n")
	assert.NotContains(t, got, "**Reasoning:**")

	assert.Contains(t, got, "Successfully saved session to "+saved)
	data, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Contains(t, string(data), "--- DOCUMENT START ---\nDraft body.\n--- DOCUMENT END ---")
	assert.Contains(t, string(data), "DIVERGENT mode.]\n\nUSER QUESTION: Tell me about the draft")
	assert.Contains(t, got, "Error: File path must be absolute. You provided: relative.md")

	assert.True(t, strings.HasSuffix(got, "Goodbye!\n"))
	assert.Equal(t, agent.Divergent, r.assistant.Mode())
}

func TestREPL_SaveSessionDefaultName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	r, out, _ := newTestREPL(t, "hello\n!save_session\nexit\n", mock.NewMockModel())
	require.NoError(t, r.run(context.Background()))

	path := filepath.Join(dir, "session_history_20250314_150926.md")
	assert.Contains(t, out.String(), "Saving session to ")
	assert.Contains(t, out.String(), "session_history_20250314_150926.md")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "--- HUMAN ---\n[SYSTEM INSTRUCTION: For this turn, you MUST operate in CONVERGENT mode.]"))
}

func TestREPL_EndOfInput(t *testing.T) {
	r, out, _ := newTestREPL(t, "\n   \nEXIT", mock.NewMockModel())
	require.NoError(t, r.run(context.Background()))
	assert.Equal(t, 3, strings.Count(out.String(), "You: "))
	assert.True(t, strings.HasSuffix(out.String(), "Goodbye!\n"))

	r, out, _ = newTestREPL(t, "", mock.NewMockModel())
	require.NoError(t, r.run(context.Background()))
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestREPL_ChatError(t *testing.T) {
	model := mock.NewMockModel().WithResponses(mock.TextResponse(""))
	r, out, _ := newTestREPL(t, "hello\nquit\n", model)
	require.NoError(t, r.run(context.Background()))
	assert.Contains(t, out.String(), "An error occurred: model returned an empty response")
	assert.Zero(t, r.assistant.Session().Len())
}

func TestConsoleAsk(t *testing.T) {
	var out bytes.Buffer
	con := newConsole(strings.NewReader("\n  custom \r\n"), &out)

	assert.Equal(t, "default", con.ask("Value", "default"))
	assert.Equal(t, "custom", con.ask("Value", "default"))
	assert.Equal(t, "fallback", con.ask("Value", "fallback"), "end of input uses the default")
	assert.Equal(t, "", con.ask("Key", ""))
	assert.Equal(t, "Value [default]: Value [default]: Value [fallback]: Key: ", out.String())
}
