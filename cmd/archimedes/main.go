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

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/archimedes/search"
	"github.com/poiesic/archimedes/tools"
	"github.com/urfave/cli/v2"
)

func main() {
	loadEnv()
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadEnv loads ARCHIMEDES_ENV_FILE, or .env, into the process environment
// so flag EnvVars can see it. A missing file is not an error.
func loadEnv() {
	envFile := os.Getenv("ARCHIMEDES_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		slog.Debug("no env file loaded, using system environment variables", "file", envFile)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "archimedes",
		Usage: "Research assistant with a fuzzy-searchable Markdown knowledge base",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "kb-dir",
				Aliases: []string{"k"},
				Usage:   "Knowledge base directory",
				Value:   tools.DefaultKnowledgeBaseDir,
				EnvVars: []string{"ARCHIMEDES_KB_DIR"},
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "API key for the chat model service",
				EnvVars: []string{"ARCHIMEDES_API_KEY", "OPENAI_API_KEY"},
			},
			&cli.StringFlag{
				Name:    "api-base",
				Usage:   "Base URL of the OpenAI-compatible chat API",
				EnvVars: []string{"ARCHIMEDES_API_BASE"},
			},
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   "Chat model name",
				EnvVars: []string{"ARCHIMEDES_MODEL"},
			},
			&cli.Float64Flag{
				Name:  "temperature",
				Usage: "Sampling temperature (0-2)",
				Value: 0.1,
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "Initial mode (convergent, divergent)",
				Value: "convergent",
			},
		},
		Before: setupLogger,
		Action: chatCommand,
		Commands: []*cli.Command{
			{
				Name:   "chat",
				Usage:  "Start an interactive research session",
				Action: chatCommand,
			},
			{
				Name:      "search",
				Usage:     "Search the knowledge base for paragraphs similar to a query",
				ArgsUsage: "<query...>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "cutoff",
						Aliases: []string{"c"},
						Usage:   "Minimum similarity score (0-100)",
						Value:   search.DefaultScoreCutoff,
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Report scanned and skipped files on stderr",
					},
				},
			},
			{
				Name:      "add",
				Usage:     "Copy a file into the knowledge base",
				ArgsUsage: "<absolute path>",
				Action:    addCommand,
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
