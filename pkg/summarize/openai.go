package summarize

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ChatClient is the part of *openai.Client the backend uses.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAI summarizes with any OpenAI-compatible chat completion endpoint.
type OpenAI struct {
	client ChatClient
	model  string
}

const openAISystemPrompt = "You summarize web articles. Reply with the summary only, as plain prose. " +
	"Do not add facts that are not in the text."

func NewOpenAI(cfg Config) (*OpenAI, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required for the %s backend", ModeOpenAI)
	}
	oc := openai.DefaultConfig(cfg.OpenAIKey)
	if cfg.OpenAIBaseURL != "" {
		oc.BaseURL = cfg.OpenAIBaseURL
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	oc.HTTPClient = &http.Client{Timeout: timeout}

	model := cfg.OpenAIModel
	if model == "" {
		model = DefaultOpenAIModel
	}
	return NewOpenAIWithClient(openai.NewClientWithConfig(oc), model), nil
}

// NewOpenAIWithClient wraps an existing client.
func NewOpenAIWithClient(client ChatClient, model string) *OpenAI {
	return &OpenAI{client: client, model: model}
}

func (o *OpenAI) Name() string  { return ModeOpenAI }
func (o *OpenAI) Model() string { return o.model }

func (o *OpenAI) SummarizeOnce(ctx context.Context, text string, band Band, doSample bool) (string, error) {
	lo, hi := band.Words()
	user := fmt.Sprintf("Summarize the following text in %d to %d words.\n\n%s", lo, hi, text)

	temperature := float32(0.1)
	if doSample {
		temperature = 0.8
	}
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openAISystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
		MaxTokens:   band.Max * 2,
		N:           1,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w from OpenAI: no choices", ErrUnexpectedResponse)
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("%w from OpenAI: empty content", ErrUnexpectedResponse)
	}
	return out, nil
}
