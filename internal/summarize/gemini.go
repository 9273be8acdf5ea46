package summarize

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	geminiTimeout    = 30 * time.Second
	geminiCharBudget = 6000
)

// GeminiProvider is the second hosted link in the chain.
type GeminiProvider struct {
	apiKey string
	model  string
}

func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	return &GeminiProvider{apiKey: apiKey, model: model}
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Model(opts Options) string {
	if opts.Model != "" {
		return opts.Model
	}
	return p.model
}

func (p *GeminiProvider) Available() bool { return p.apiKey != "" }

func (p *GeminiProvider) Timeout() time.Duration { return geminiTimeout }

func (p *GeminiProvider) Summarize(ctx context.Context, text string, opts Options) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", fmt.Errorf("creating gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.Model(opts))
	temp := float32(opts.Temperature)
	model.Temperature = &temp
	maxTokens := int32(opts.MaxTokens)
	model.MaxOutputTokens = &maxTokens

	prompt := buildPrompt(truncateForPrompt(text, geminiCharBudget), opts)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("calling gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrInvalidResponse)
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}
