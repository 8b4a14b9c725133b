package models

import "context"

// Agent is the minimal contract a chat model backend must satisfy.
type Agent interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
