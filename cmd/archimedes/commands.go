package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/poiesic/archimedes"
	"github.com/poiesic/archimedes/agent"
	"github.com/poiesic/archimedes/ai"
	"github.com/poiesic/archimedes/core"
	"github.com/poiesic/archimedes/files"
	"github.com/poiesic/archimedes/search"
	"github.com/urfave/cli/v2"
)

// newAssistant builds the assistant for the chat command. Tests replace it.
var newAssistant = func(config *ai.Config, kbDir string) (*archimedes.Assistant, error) {
	return archimedes.New(
		archimedes.WithAIConfig(config),
		archimedes.WithKnowledgeBaseDir(kbDir),
	)
}

// chatSettings holds the chat command's resolved flags.
type chatSettings struct {
	APIKey      string
	APIBase     string
	Model       string
	Temperature float64
	KBDir       string
	Mode        agent.Mode
}

// aiConfig fills the settings' gaps by prompting, offering the defaults.
func (s chatSettings) aiConfig(con *console) *ai.Config {
	defaults := ai.DefaultConfig()
	if s.APIKey == "" {
		s.APIKey = con.ask("Enter your API Key", "")
	}
	if s.APIBase == "" {
		s.APIBase = con.ask("Enter the API Base URL", defaults.Host)
	}
	if s.Model == "" {
		s.Model = con.ask("Enter the model name", defaults.Model)
	}
	return ai.NewConfig(
		ai.WithAPIKey(s.APIKey),
		ai.WithHost(s.APIBase),
		ai.WithModel(s.Model),
		ai.WithTemperature(s.Temperature),
	)
}

func chatCommand(c *cli.Context) error {
	mode, err := agent.ParseMode(c.String("mode"))
	if err != nil {
		return err
	}
	settings := chatSettings{
		APIKey:      c.String("api-key"),
		APIBase:     c.String("api-base"),
		Model:       c.String("model"),
		Temperature: c.Float64("temperature"),
		KBDir:       c.String("kb-dir"),
		Mode:        mode,
	}
	return runChat(c.Context, newConsole(c.App.Reader, c.App.Writer), settings)
}

func runChat(ctx context.Context, con *console, settings chatSettings) error {
	if ctx == nil {
		ctx = context.Background()
	}

	con.println("Welcome to Archimedes, your research assistant.")
	config := settings.aiConfig(con)

	assistant, err := newAssistant(config, settings.KBDir)
	if err != nil {
		return fmt.Errorf("error initializing agent: %w", err)
	}
	defer assistant.Close()
	assistant.SetMode(settings.Mode)

	con.println("\nSetup complete. You can now start chatting.")
	con.println("Type 'exit' or 'quit' to end the session.")

	r := &repl{assistant: assistant, con: con, now: time.Now}
	return r.run(ctx)
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("a search query is required")
	}

	searcher, err := search.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	var monitor search.SearchMonitor
	if c.Bool("verbose") {
		monitor = &progressMonitor{out: c.App.ErrWriter}
	}
	fmt.Fprintln(c.App.Writer, searcher.ReportWithMonitor(query, c.String("kb-dir"), c.Int("cutoff"), monitor))
	return nil
}

func addCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one file path is required")
	}
	path := c.Args().First()
	name, err := files.AddToKnowledgeBase(path, c.String("kb-dir"))
	if err != nil {
		return errors.New(describeAddError(path, err))
	}
	fmt.Fprintf(c.App.Writer, "Successfully copied '%s' to the knowledge base.\n", name)
	return nil
}

// progressMonitor reports search progress to the error stream.
type progressMonitor struct {
	out io.Writer
}

var _ search.SearchMonitor = (*progressMonitor)(nil)

func (m *progressMonitor) Start(query, dir string) {
	fmt.Fprintf(m.out, "Searching %s for %q\n", dir, query)
}

func (m *progressMonitor) FileScanned(name string, paragraphs int) {
	fmt.Fprintf(m.out, "  scanned %s (%d paragraphs)\n", name, paragraphs)
}

func (m *progressMonitor) FileSkipped(name string, err error) {
	fmt.Fprintf(m.out, "  skipped %s: %v\n", name, err)
}

func (m *progressMonitor) Finish(matches []*core.Match) {
	fmt.Fprintf(m.out, "%d match(es)\n", len(matches))
}
