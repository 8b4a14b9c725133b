package models

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAILLM struct {
	Client       *openai.Client
	Model        string
	PromptPrefix string
}

// NewOpenAILLM builds an OpenAI-backed model. The API key is passed in
// explicitly rather than read from the environment here, so callers own
// all configuration.
func NewOpenAILLM(apiKey, model, promptPrefix string) (*OpenAILLM, error) {
	if apiKey == "" {
		return nil, errors.New("openai: api key is required")
	}
	if model == "" {
		return nil, errors.New("openai: model name is required")
	}
	return &OpenAILLM{
		Client:       openai.NewClient(apiKey),
		Model:        model,
		PromptPrefix: promptPrefix,
	}, nil
}

func (o *OpenAILLM) Generate(ctx context.Context, prompt string) (string, error) {
	fullPrompt := prompt
	if o.PromptPrefix != "" {
		fullPrompt = o.PromptPrefix + "\n" + prompt
	}

	resp, err := o.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.Model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: fullPrompt,
		}},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

var _ Agent = (*OpenAILLM)(nil)
