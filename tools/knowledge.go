package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/poiesic/archimedes/search"
)

// DefaultKnowledgeBaseDir is used when the model does not name a directory.
const DefaultKnowledgeBaseDir = "knowledge_base"

// KnowledgeBaseTool exposes the fuzzy knowledge-base search as search_knowledge_base.
type KnowledgeBaseTool struct {
	searcher   *search.Searcher
	defaultDir string
}

var _ Tool = (*KnowledgeBaseTool)(nil)

// NewKnowledgeBaseTool creates the tool. An empty defaultDir means DefaultKnowledgeBaseDir.
func NewKnowledgeBaseTool(searcher *search.Searcher, defaultDir string) *KnowledgeBaseTool {
	if defaultDir == "" {
		defaultDir = DefaultKnowledgeBaseDir
	}
	return &KnowledgeBaseTool{searcher: searcher, defaultDir: defaultDir}
}

func (t *KnowledgeBaseTool) Name() string { return "search_knowledge_base" }

func (t *KnowledgeBaseTool) Description() string {
	return "Searches through all .md files in a directory using fuzzy string matching " +
		"and returns paragraphs that are similar to the query. Returns a formatted report " +
		"of matching snippets, or a message if no results were found."
}

func (t *KnowledgeBaseTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The string to search for.",
			},
			"knowledge_base_dir": map[string]any{
				"type":        "string",
				"description": "The directory containing the knowledge base files.",
				"default":     t.defaultDir,
			},
			"score_cutoff": map[string]any{
				"type":        "integer",
				"description": "The minimum similarity score (0-100) to consider a match.",
				"default":     search.DefaultScoreCutoff,
			},
		},
		"required": []string{"query"},
	}
}

type searchArguments struct {
	Query            string    `json:"query"`
	KnowledgeBaseDir *string   `json:"knowledge_base_dir"`
	ScoreCutoff      *looseInt `json:"score_cutoff"`
}

// Call decodes the arguments and runs the search.
func (t *KnowledgeBaseTool) Call(_ context.Context, arguments string) string {
	var args searchArguments
	if err := decodeArguments(arguments, &args); err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	dir := t.defaultDir
	if args.KnowledgeBaseDir != nil && *args.KnowledgeBaseDir != "" {
		dir = *args.KnowledgeBaseDir
	}
	cutoff := search.DefaultScoreCutoff
	if args.ScoreCutoff != nil {
		cutoff = int(*args.ScoreCutoff)
	}
	return t.Search(args.Query, dir, cutoff)
}

// Search runs the knowledge-base search and returns the report.
func (t *KnowledgeBaseTool) Search(query, dir string, cutoff int) string {
	return t.searcher.Report(query, dir, cutoff)
}

// looseInt accepts integers, floats and numeric strings, since models are not
// consistent about how they encode numbers.
type looseInt int

func (n *looseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}
	f, err := strconv.ParseFloat(string(bytes.TrimSpace(data)), 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", data)
	}
	*n = looseInt(math.Round(f))
	return nil
}
