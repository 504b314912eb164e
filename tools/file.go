package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/poiesic/archimedes/files"
)

// WriteFileTool lets the model write or overwrite a file at an absolute path.
type WriteFileTool struct{}

var _ Tool = WriteFileTool{}

func (WriteFileTool) Name() string { return "write_file" }

func (WriteFileTool) Description() string {
	return "Writes or overwrites a file with the given content. Use with caution, as this " +
		"will replace any existing content. To modify a file, first read it, then provide " +
		"the full new content here. The file path must be absolute."
}

func (WriteFileTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"filepath": map[string]any{
				"type":        "string",
				"description": "The absolute path to the file to be written.",
			},
			"content": map[string]any{
				"type":        "string",
				"description": "The content to write into the file.",
			},
		},
		"required": []string{"filepath", "content"},
	}
}

type writeArguments struct {
	Filepath string `json:"filepath"`
	Content  string `json:"content"`
}

func (WriteFileTool) Call(_ context.Context, arguments string) string {
	var args writeArguments
	if err := decodeArguments(arguments, &args); err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	err := files.WriteFile(args.Filepath, args.Content)
	switch {
	case errors.Is(err, files.ErrPathNotAbsolute):
		return fmt.Sprintf("Error: File path must be absolute. You provided: %s", args.Filepath)
	case err != nil:
		return fmt.Sprintf("Error: An unexpected error occurred while writing the file: %v", err)
	}
	return fmt.Sprintf("Successfully wrote content to %s", args.Filepath)
}

// ReadFileTool lets the model read a file at an absolute path.
type ReadFileTool struct{}

var _ Tool = ReadFileTool{}

func (ReadFileTool) Name() string { return "read_file" }

func (ReadFileTool) Description() string {
	return "Reads the full content of a file. The file path must be absolute."
}

func (ReadFileTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"filepath": map[string]any{
				"type":        "string",
				"description": "The absolute path to the file.",
			},
		},
		"required": []string{"filepath"},
	}
}

type readArguments struct {
	Filepath string `json:"filepath"`
}

func (ReadFileTool) Call(_ context.Context, arguments string) string {
	var args readArguments
	if err := decodeArguments(arguments, &args); err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	content, err := files.ReadFile(args.Filepath)
	if err != nil {
		return DescribeReadError(args.Filepath, err)
	}
	return content
}

// DescribeReadError renders a files.ReadFile error for a user or model.
func DescribeReadError(path string, err error) string {
	switch {
	case errors.Is(err, files.ErrPathNotAbsolute):
		return fmt.Sprintf("Error: File path must be absolute. You provided: %s", path)
	case errors.Is(err, files.ErrFileNotFound):
		return fmt.Sprintf("Error: File not found at the specified path: %s", path)
	default:
		return fmt.Sprintf("Error: An unexpected error occurred while reading the file: %v", err)
	}
}
