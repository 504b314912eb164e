package archimedes

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/archimedes/agent"
	"github.com/poiesic/archimedes/ai"
	"github.com/poiesic/archimedes/ai/mock"
	"github.com/poiesic/archimedes/core"
	"github.com/poiesic/archimedes/files"
	"github.com/poiesic/archimedes/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func newTestAssistant(t *testing.T, model *mock.MockModel) (*Assistant, string) {
	t.Helper()
	kb := filepath.Join(t.TempDir(), "knowledge_base")
	a, err := New(
		WithProvider(mock.NewMockProviderWithModel(model)),
		WithKnowledgeBaseDir(kb),
		WithAgentOptions(agent.WithRetry(1, time.Millisecond)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a, kb
}

func TestNew(t *testing.T) {
	t.Run("creates assistant with OpenAI-compatible provider", func(t *testing.T) {
		a, err := New(
			WithAIConfig(ai.NewConfig(ai.WithHost("http://localhost:11434"), ai.WithModel("qwen-plus"))),
			WithKnowledgeBaseDir(t.TempDir()),
			WithLogger(nil),
		)
		require.NoError(t, err)
		defer a.Close()

		assert.NotNil(t, a.Session())
		assert.Equal(t, []string{"search_knowledge_base", "write_file", "read_file"}, a.Tools().Names())
		assert.Equal(t, agent.Convergent, a.Mode())
		assert.NotNil(t, a.logger)
	})

	t.Run("error with invalid AI config", func(t *testing.T) {
		a, err := New(WithAIConfig(ai.NewConfig(ai.WithHost(""))))
		assert.Error(t, err)
		assert.Nil(t, a)
	})

	t.Run("default knowledge base dir", func(t *testing.T) {
		a, err := New(WithProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		defer a.Close()
		assert.Equal(t, "knowledge_base", a.KnowledgeBaseDir())
	})

	t.Run("close closes provider", func(t *testing.T) {
		provider := mock.NewMockProvider()
		a, err := New(WithProvider(provider))
		require.NoError(t, err)
		require.NoError(t, a.Close())
		assert.True(t, provider.(*mock.MockProvider).Closed())
	})
}

func TestAssistant_ChatUsesMode(t *testing.T) {
	model := mock.NewMockModel()
	a, _ := newTestAssistant(t, model)
	ctx := context.Background()

	_, err := a.Chat(ctx, "How do cells coordinate?")
	require.NoError(t, err)
	a.SetMode(agent.Divergent)
	assert.Equal(t, agent.Divergent, a.Mode())
	_, err = a.Chat(ctx, "Any wild ideas?")
	require.NoError(t, err)

	require.Equal(t, 2, model.CallCount())
	first := model.Messages(0)
	assert.Equal(t, llms.TextParts(llms.ChatMessageTypeHuman, agent.ModeInstruction(agent.Convergent, "How do cells coordinate?")), first[len(first)-1])
	second := model.Messages(1)
	assert.Equal(t, llms.TextParts(llms.ChatMessageTypeHuman, agent.ModeInstruction(agent.Divergent, "Any wild ideas?")), second[len(second)-1])
	assert.Equal(t, ai.DefaultConfig().Temperature, model.Options(0).Temperature)
}

func TestAssistant_KnowledgeBaseFlow(t *testing.T) {
	a, kb := newTestAssistant(t, mock.NewMockModel())

	src := filepath.Join(t.TempDir(), "paper.md")
	content := "# Introduction\n\nThe concept of mechanical waves is very important in tissue development."
	require.NoError(t, os.WriteFile(src, []byte(content), 0644))

	assert.Equal(t, search.DirectoryNotFoundMessage(kb), a.Search("mechanical waves", search.DefaultScoreCutoff))

	name, err := a.AddToKnowledgeBase(src)
	require.NoError(t, err)
	assert.Equal(t, "paper.md", name)

	report := a.Search("mechanical waves", search.DefaultScoreCutoff)
	assert.True(t, strings.HasPrefix(report, "Found 1 relevant snippet(s) for 'mechanical waves':\n"))
	assert.Contains(t, report, "--- From: paper.md (Similarity Score: 100) ---")

	_, err = a.AddToKnowledgeBase("relative/paper.md")
	assert.ErrorIs(t, err, files.ErrPathNotAbsolute)
}

func TestAssistant_LoadDocumentAndSaveSession(t *testing.T) {
	model := mock.NewMockModel().WithResponses(mock.TextResponse("**Reasoning:** ok\n\n**Final Answer:** Read it."))
	a, _ := newTestAssistant(t, model)
	dir := t.TempDir()

	doc := filepath.Join(dir, "draft.md")
	require.NoError(t, os.WriteFile(doc, []byte("Draft body."), 0644))
	require.NoError(t, a.LoadDocument(doc))

	err := a.LoadDocument(filepath.Join(dir, "missing.md"))
	assert.ErrorIs(t, err, files.ErrFileNotFound)

	_, err = a.Chat(context.Background(), "Summarize the draft.")
	require.NoError(t, err)

	records := a.Session().Records()
	require.Len(t, records, 3)
	assert.Equal(t, core.SpeakerTypeHuman, records[0].Speaker)
	assert.Contains(t, records[0].Contents, "--- DOCUMENT START ---\nDraft body.\n--- DOCUMENT END ---")

	out := filepath.Join(dir, "history", "session.md")
	require.NoError(t, a.SaveSession(out))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "--- HUMAN ---\nI have just loaded the following document"))
	assert.Contains(t, string(data), "--- AI ---\n**Reasoning:** ok\n\n**Final Answer:** Read it.\n\n")

	assert.Error(t, a.SaveSession("relative.md"))
}
