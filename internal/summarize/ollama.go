package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Local models are slow; give them more room than the hosted paths but
// a tighter prompt budget.
const (
	ollamaTimeout    = 60 * time.Second
	ollamaCharBudget = 4000
)

// OllamaProvider talks to a local Ollama server. It is the cheapest link
// in the chain and therefore tried first.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewOllamaProvider(baseURL, model string, client *http.Client) *OllamaProvider {
	if client == nil {
		client = &http.Client{}
	}
	return &OllamaProvider{baseURL: baseURL, model: model, client: client}
}

func (p *OllamaProvider) Name() string { return "ollama" }

func (p *OllamaProvider) Model(opts Options) string {
	if opts.Model != "" {
		return opts.Model
	}
	return p.model
}

func (p *OllamaProvider) Available() bool { return p.baseURL != "" }

func (p *OllamaProvider) Timeout() time.Duration { return ollamaTimeout }

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func (p *OllamaProvider) Summarize(ctx context.Context, text string, opts Options) (string, error) {
	prompt := buildPrompt(truncateForPrompt(text, ollamaCharBudget), opts)

	body, err := json.Marshal(ollamaRequest{
		Model:  p.Model(opts),
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: opts.Temperature,
			NumPredict:  opts.MaxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling ollama: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, respBody)
	}

	var parsed ollamaResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if parsed.Response == "" {
		return "", fmt.Errorf("%w: empty response", ErrInvalidResponse)
	}
	return parsed.Response, nil
}
