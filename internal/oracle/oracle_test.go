package oracle

import (
	"context"
	"errors"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_PipesInstructions(t *testing.T) {
	c := NewCLI("cat")
	out, err := c.Summarize(context.Background(), Request{Instructions: "SUMMARIZE THIS"})

	require.NoError(t, err)
	assert.Equal(t, "SUMMARIZE THIS", out)
}

func TestCLI_CommandFailure(t *testing.T) {
	c := NewCLI("false")
	_, err := c.Summarize(context.Background(), Request{Instructions: "x"})
	require.Error(t, err)
}

func TestCLI_MissingBinary(t *testing.T) {
	c := NewCLI("/nonexistent/summarizer")
	_, err := c.Summarize(context.Background(), Request{Instructions: "x"})
	require.Error(t, err)
}

func TestCLI_ContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewCLI("sleep", "5")
	_, err := c.Summarize(ctx, Request{Instructions: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// mockChatClient records the request and returns a canned response.
type mockChatClient struct {
	request  openai.ChatCompletionRequest
	response openai.ChatCompletionResponse
	err      error
}

func (m *mockChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.request = req
	return m.response, m.err
}

func TestOpenAI_Summarize(t *testing.T) {
	mock := &mockChatClient{
		response: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "SUCCESS build ok"}},
			},
		},
	}

	o := NewOpenAI(mock, "gpt-4o-mini")
	out, err := o.Summarize(context.Background(), Request{Instructions: "compress me"})

	require.NoError(t, err)
	assert.Equal(t, "SUCCESS build ok", out)
	assert.Equal(t, "gpt-4o-mini", mock.request.Model)
	require.Len(t, mock.request.Messages, 2)
	assert.Equal(t, "compress me", mock.request.Messages[1].Content)
}

func TestOpenAI_Errors(t *testing.T) {
	o := NewOpenAI(&mockChatClient{err: errors.New("boom")}, "gpt-4o-mini")
	_, err := o.Summarize(context.Background(), Request{})
	require.Error(t, err)

	o = NewOpenAI(&mockChatClient{}, "gpt-4o-mini")
	_, err = o.Summarize(context.Background(), Request{})
	require.Error(t, err, "empty choices is an error")
}
