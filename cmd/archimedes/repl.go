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
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/poiesic/archimedes"
	"github.com/poiesic/archimedes/agent"
	"github.com/poiesic/archimedes/files"
	"github.com/poiesic/archimedes/session"
	"github.com/poiesic/archimedes/tools"
)

const unknownCommandMessage = "Error: Unknown command. Available commands: !load_session <path>, !add_kb <path>, !save_session [path], !mode <name>"

// repl is the interactive chat loop.
type repl struct {
	assistant *archimedes.Assistant
	con       *console
	now       func() time.Time
}

// run reads input until exit, quit or end of input.
func (r *repl) run(ctx context.Context) error {
	for {
		line, err := r.con.readLine("\nYou: ")
		if errors.Is(err, io.EOF) {
			r.con.println("\nGoodbye!")
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.EqualFold(line, "exit"), strings.EqualFold(line, "quit"):
			r.con.println("Goodbye!")
			return nil
		case strings.HasPrefix(line, "!"):
			r.command(line)
		default:
			r.ask(ctx, line)
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func (r *repl) ask(ctx context.Context, question string) {
	r.con.println("Thinking...")
	raw, err := r.assistant.Chat(ctx, question)
	if err != nil {
		r.con.printf("An error occurred: %v\n", err)
		return
	}
	r.con.printf("\nArchimedes:\n%s\n", agent.ExtractFinalAnswer(raw))
}

// command handles a line starting with '!'.
func (r *repl) command(line string) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch {
	case name == "!load_session" && arg != "":
		r.loadSession(arg)
	case name == "!add_kb" && arg != "":
		r.addToKnowledgeBase(arg)
	case name == "!save_session":
		r.saveSession(arg)
	case name == "!mode" && arg != "":
		r.setMode(arg)
	default:
		r.con.println(unknownCommandMessage)
	}
}

func (r *repl) loadSession(path string) {
	r.con.printf("Attempting to load file into session memory: %s\n", path)
	if err := r.assistant.LoadDocument(path); err != nil {
		r.con.println(tools.DescribeReadError(path, err))
		return
	}
	r.con.println("Successfully loaded document into agent's working memory.")
}

func (r *repl) addToKnowledgeBase(path string) {
	r.con.printf("Attempting to add file to knowledge base: %s\n", path)
	name, err := r.assistant.AddToKnowledgeBase(path)
	if err != nil {
		r.con.println(describeAddError(path, err))
		return
	}
	r.con.printf("Successfully copied '%s' to the knowledge base.\n", name)
}

func (r *repl) saveSession(path string) {
	if path == "" {
		name := session.DefaultFilename(r.now())
		abs, err := filepath.Abs(name)
		if err != nil {
			abs = name
		}
		path = abs
	}

	r.con.printf("Saving session to %s...\n", path)
	err := r.assistant.SaveSession(path)
	switch {
	case errors.Is(err, session.ErrPathNotAbsolute):
		r.con.printf("Error: File path must be absolute. You provided: %s\n", path)
	case err != nil:
		r.con.printf("Error: An unexpected error occurred while saving the session: %v\n", err)
	default:
		r.con.printf("Successfully saved session to %s\n", path)
	}
}

func (r *repl) setMode(name string) {
	mode, err := agent.ParseMode(name)
	if err != nil {
		r.con.println("Error: Invalid mode. Please choose 'convergent' or 'divergent'.")
		return
	}
	r.assistant.SetMode(mode)
	r.con.printf("Agent mode switched to: %s\n", mode)
}

func describeAddError(path string, err error) string {
	switch {
	case errors.Is(err, files.ErrPathNotAbsolute):
		return fmt.Sprintf("Error: Source file path must be absolute. You provided: %s", path)
	case errors.Is(err, files.ErrFileNotFound):
		return fmt.Sprintf("Error: Source file not found at %s", path)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
