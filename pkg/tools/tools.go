// Package tools holds callable tools an agent may invoke while working a task.
package tools

import (
	"context"
	"strings"
)

// Tool is a named capability an agent can call with free-form input.
type Tool interface {
	Name() string
	Description() string
	Run(ctx context.Context, input string) (string, error)
}

// EchoTool repeats the provided input. Useful for testing tool wiring.
type EchoTool struct{}

func (e *EchoTool) Name() string        { return "echo" }
func (e *EchoTool) Description() string { return "Echoes the provided text back to the caller." }

func (e *EchoTool) Run(_ context.Context, input string) (string, error) {
	return strings.TrimSpace(input), nil
}
