package tools

import "errors"

var (
	// ErrInvalidTool is returned when registering a tool without a name.
	ErrInvalidTool = errors.New("invalid tool")

	// ErrDuplicateTool is returned when a tool name is registered twice.
	ErrDuplicateTool = errors.New("tool already registered")

	// ErrInvalidArguments is returned when tool-call arguments cannot be decoded.
	ErrInvalidArguments = errors.New("invalid tool arguments")
)
