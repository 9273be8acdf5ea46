package summarize

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	openaiTimeout    = 30 * time.Second
	openaiCharBudget = 8000
)

// OpenAIProvider is the first hosted link in the chain.
type OpenAIProvider struct {
	apiKey string
	model  string
}

func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{apiKey: apiKey, model: model}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Model(opts Options) string {
	if opts.Model != "" {
		return opts.Model
	}
	return p.model
}

func (p *OpenAIProvider) Available() bool { return p.apiKey != "" }

func (p *OpenAIProvider) Timeout() time.Duration { return openaiTimeout }

func (p *OpenAIProvider) Summarize(ctx context.Context, text string, opts Options) (string, error) {
	client := openai.NewClient(p.apiKey)
	prompt := buildPrompt(truncateForPrompt(text, openaiCharBudget), opts)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.Model(opts),
		Temperature: float32(opts.Temperature),
		MaxTokens:   opts.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("calling openai: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrInvalidResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
