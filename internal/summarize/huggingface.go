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

const (
	huggingFaceBaseURL    = "https://api-inference.huggingface.co/models"
	huggingFaceTimeout    = 45 * time.Second
	huggingFaceCharBudget = 3000
)

// HuggingFaceProvider calls the hosted inference API with a dedicated
// summarization model. Unlike the chat providers it sends the article text
// directly and gets a summary back, no prompt involved.
type HuggingFaceProvider struct {
	apiKey  string
	model   string
	client  *http.Client
	baseURL string
}

func NewHuggingFaceProvider(apiKey, model string, client *http.Client) *HuggingFaceProvider {
	if client == nil {
		client = &http.Client{}
	}
	return &HuggingFaceProvider{apiKey: apiKey, model: model, client: client, baseURL: huggingFaceBaseURL}
}

// newHuggingFaceProviderWithURL is used by tests to point at a fake server.
func newHuggingFaceProviderWithURL(apiKey, model string, client *http.Client, baseURL string) *HuggingFaceProvider {
	p := NewHuggingFaceProvider(apiKey, model, client)
	p.baseURL = baseURL
	return p
}

func (p *HuggingFaceProvider) Name() string { return "huggingface" }

func (p *HuggingFaceProvider) Model(opts Options) string {
	if opts.Model != "" {
		return opts.Model
	}
	return p.model
}

func (p *HuggingFaceProvider) Available() bool { return p.apiKey != "" }

func (p *HuggingFaceProvider) Timeout() time.Duration { return huggingFaceTimeout }

type huggingFaceRequest struct {
	Inputs     string                `json:"inputs"`
	Parameters huggingFaceParameters `json:"parameters"`
}

type huggingFaceParameters struct {
	MaxLength int `json:"max_length"`
}

type huggingFaceResult struct {
	SummaryText string `json:"summary_text"`
}

func (p *HuggingFaceProvider) Summarize(ctx context.Context, text string, opts Options) (string, error) {
	body, err := json.Marshal(huggingFaceRequest{
		Inputs:     truncateForPrompt(text, huggingFaceCharBudget),
		Parameters: huggingFaceParameters{MaxLength: opts.MaxLength},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", p.baseURL, p.Model(opts))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling huggingface: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("huggingface returned status %d: %s", resp.StatusCode, respBody)
	}

	var results []huggingFaceResult
	if err := json.Unmarshal(respBody, &results); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(results) == 0 || results[0].SummaryText == "" {
		return "", fmt.Errorf("%w: empty result", ErrInvalidResponse)
	}
	return results[0].SummaryText, nil
}
