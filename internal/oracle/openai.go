package oracle

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You compress noisy shell command output. Follow the instructions exactly and return only the compressed summary."

// ChatClient is the subset of the OpenAI client used here.
//
// Dependency injection for testing:
//   - Tests: inject a mock that records requests
//   - Production: pass a real *openai.Client
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Verify that openai.Client implements ChatClient at compile time.
var _ ChatClient = (*openai.Client)(nil)

// OpenAI summarizes through a chat-completion model.
type OpenAI struct {
	client ChatClient
	model  string
}

// NewOpenAI creates an OpenAI-backed summarizer.
func NewOpenAI(client ChatClient, model string) *OpenAI {
	return &OpenAI{client: client, model: model}
}

func (o *OpenAI) Summarize(ctx context.Context, req Request) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.Instructions},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
