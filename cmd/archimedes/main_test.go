package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/archimedes"
	"github.com/poiesic/archimedes/agent"
	"github.com/poiesic/archimedes/ai"
	"github.com/poiesic/archimedes/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func findStringFlag(flags []cli.Flag, name string) *cli.StringFlag {
	for _, flag := range flags {
		if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
			return f
		}
	}
	return nil
}

func TestAppFlags(t *testing.T) {
	app := newApp()

	t.Run("kb-dir has default value", func(t *testing.T) {
		f := findStringFlag(app.Flags, "kb-dir")
		require.NotNil(t, f)
		assert.Equal(t, "knowledge_base", f.Value)
		assert.Equal(t, []string{"ARCHIMEDES_KB_DIR"}, f.EnvVars)
	})

	t.Run("api-key reads environment", func(t *testing.T) {
		f := findStringFlag(app.Flags, "api-key")
		require.NotNil(t, f)
		assert.Empty(t, f.Value)
		assert.Equal(t, []string{"ARCHIMEDES_API_KEY", "OPENAI_API_KEY"}, f.EnvVars)
	})

	t.Run("api-base and model have no default", func(t *testing.T) {
		for _, name := range []string{"api-base", "model"} {
			f := findStringFlag(app.Flags, name)
			require.NotNil(t, f, name)
			assert.Empty(t, f.Value, name)
			assert.NotEmpty(t, f.EnvVars, name)
		}
	})

	t.Run("commands", func(t *testing.T) {
		var names []string
		for _, cmd := range app.Commands {
			names = append(names, cmd.Name)
		}
		assert.Equal(t, []string{"chat", "search", "add"}, names)
	})
}

func writeKnowledgeBase(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	content := "Intro text.\n\n" +
		"Mechanical waves are important in tissue development and allow long-range coordination.\n\n" +
		"Conclusion."
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.md"), []byte(content), 0644))
	return dir
}

func runApp(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(input)
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"archimedes"}, args...))
	return out.String(), errOut.String(), err
}

func TestSearchCommand(t *testing.T) {
	dir := writeKnowledgeBase(t)

	t.Run("prints report", func(t *testing.T) {
		out, _, err := runApp(t, "", "--kb-dir", dir, "search", "--cutoff", "65", "mechanical", "waves", "in", "tissue", "development")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "Found 1 relevant snippet(s) for 'mechanical waves in tissue development':\n"))
		assert.Contains(t, out, "--- From: doc.md (Similarity Score: 68) ---")
	})

	t.Run("verbose reports progress on stderr", func(t *testing.T) {
		out, errOut, err := runApp(t, "", "--kb-dir", dir, "search", "-v", "unrelated topic")
		require.NoError(t, err)
		assert.Equal(t, "No relevant information found in the knowledge base.\n", out)
		assert.Contains(t, errOut, "scanned doc.md (3 paragraphs)")
		assert.Contains(t, errOut, "0 match(es)")
	})

	t.Run("missing directory", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope")
		out, _, err := runApp(t, "", "--kb-dir", missing, "search", "anything")
		require.NoError(t, err)
		assert.Equal(t, "Error: Knowledge base directory not found at '"+missing+"'\n", out)
	})

	t.Run("query is required", func(t *testing.T) {
		_, _, err := runApp(t, "", "--kb-dir", dir, "search")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query is required")
	})
}

func TestAddCommand(t *testing.T) {
	kb := filepath.Join(t.TempDir(), "kb")
	src := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(src, []byte("Some notes."), 0644))

	out, _, err := runApp(t, "", "--kb-dir", kb, "add", src)
	require.NoError(t, err)
	assert.Equal(t, "Successfully copied 'notes.md' to the knowledge base.\n", out)
	data, err := os.ReadFile(filepath.Join(kb, "notes.md"))
	require.NoError(t, err)
	assert.Equal(t, "Some notes.", string(data))

	_, _, err = runApp(t, "", "--kb-dir", kb, "add", "notes.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Source file path must be absolute")

	_, _, err = runApp(t, "", "--kb-dir", kb, "add")
	assert.Error(t, err)
}

func TestChatCommand(t *testing.T) {
	var got *ai.Config
	model := mock.NewMockModel()
	original := newAssistant
	newAssistant = func(config *ai.Config, kbDir string) (*archimedes.Assistant, error) {
		got = config
		return archimedes.New(
			archimedes.WithProvider(mock.NewMockProviderWithModel(model)),
			archimedes.WithKnowledgeBaseDir(kbDir),
			archimedes.WithAgentOptions(agent.WithRetry(1, time.Millisecond)),
		)
	}
	t.Cleanup(func() { newAssistant = original })

	t.Run("prompts for missing settings and uses defaults", func(t *testing.T) {
		t.Setenv("ARCHIMEDES_API_KEY", "")
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("ARCHIMEDES_API_BASE", "")
		t.Setenv("ARCHIMEDES_MODEL", "")

		out, _, err := runApp(t, "sk-test\n\n\nexit\n")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "sk-test", got.APIKey)
		assert.Equal(t, ai.DefaultConfig().Host, got.Host)
		assert.Equal(t, "qwen-plus", got.Model)
		assert.Contains(t, out, "Enter the API Base URL [https://dashscope.aliyuncs.com/compatible-mode/v1]: ")
		assert.Contains(t, out, "Setup complete.")
		assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))
	})

	t.Run("flags skip prompts", func(t *testing.T) {
		out, _, err := runApp(t, "What is new?\nquit\n",
			"--api-key", "k", "--api-base", "http://localhost:8000/v1", "--model", "local", "--mode", "divergent", "chat")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8000/v1", got.Host)
		assert.Equal(t, "local", got.Model)
		assert.NotContains(t, out, "Enter the model name")
		assert.Contains(t, out, "Thinking...")
		assert.Contains(t, out, "mock response: [SYSTEM INSTRUCTION: For this turn, you MUST operate in DIVERGENT mode.]")
	})

	t.Run("invalid mode", func(t *testing.T) {
		_, _, err := runApp(t, "", "--mode", "sideways", "--api-key", "k", "--api-base", "http://x/v1", "--model", "m")
		assert.ErrorIs(t, err, agent.ErrInvalidMode)
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: tc.input,
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
				assert.True(t, slog.Default().Enabled(t.Context(), tc.expected))
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, tc := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(tc, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: "info",
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		_, _, err := runApp(t, "", "--log-level", "invalid", "search", "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
		assert.Contains(t, err.Error(), "invalid")
	})

	t.Run("log-level flag has alias -l", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				assert.Equal(t, "debug", c.String("log-level"))
				return nil
			},
		}

		err := app.Run([]string{"test", "-l", "debug"})
		require.NoError(t, err)
	})
}

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}
