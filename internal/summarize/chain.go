package summarize

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/deusflow/pulse/internal/metrics"
)

// Raw responses shorter than this cannot be a real summary and are treated
// as a failed attempt before cleaning.
const minRawResponseRunes = 10

// Method values reported in a Result.
const (
	MethodAI         = "ai"
	MethodExtractive = "extractive"
)

// Result is the outcome of the fallback chain: the summary text plus the
// identity of the provider that produced it.
type Result struct {
	Text     string
	Provider string
	Model    string
	Method   string
}

// Chain tries an ordered list of providers and falls back to the local
// extractive summarizer when every attempt fails. The order is a cost
// preference, not a race: provider N+1 never starts before provider N has
// definitively failed.
type Chain struct {
	providers []Provider
	log       *slog.Logger
}

// NewChain builds a chain over the given providers, tried in order.
func NewChain(log *slog.Logger, providers ...Provider) *Chain {
	if log == nil {
		log = slog.Default()
	}
	return &Chain{providers: providers, log: log}
}

// GenerateSummary returns just the summary text. It never fails: the
// extractive terminal step guarantees a result (possibly empty for a
// document with no usable sentences).
func (c *Chain) GenerateSummary(ctx context.Context, text string, opts Options) string {
	return c.GenerateBestSummary(ctx, text, opts).Text
}

// GenerateBestSummary walks the provider chain and returns the first
// accepted candidate, or the extractive fallback when the chain is
// exhausted.
func (c *Chain) GenerateBestSummary(ctx context.Context, text string, opts Options) Result {
	opts = opts.withDefaults()

	for _, p := range c.providers {
		if !p.Available() {
			c.log.Debug("provider skipped", "provider", p.Name(), "reason", ErrUnavailable)
			continue
		}

		raw, err := c.tryProvider(ctx, p, text, opts)
		if err != nil {
			c.log.Warn("provider attempt failed", "provider", p.Name(), "error", err)
			metrics.Global.IncrementProviderFailures()
			continue
		}

		if utf8.RuneCountInString(raw) < minRawResponseRunes {
			c.log.Warn("provider attempt failed", "provider", p.Name(), "error", ErrInvalidResponse)
			metrics.Global.IncrementProviderFailures()
			continue
		}

		candidate := cleanCandidate(raw)
		if err := ValidateSummary(candidate, text); err != nil {
			c.log.Warn("provider attempt failed", "provider", p.Name(), "error", err)
			metrics.Global.IncrementProviderFailures()
			continue
		}

		c.log.Debug("summary accepted", "provider", p.Name(), "model", p.Model(opts))
		metrics.Global.RecordSummary(p.Name())
		return Result{
			Text:     candidate,
			Provider: p.Name(),
			Model:    p.Model(opts),
			Method:   MethodAI,
		}
	}

	// Terminal step: deterministic, local, cannot fail.
	summary := Extract(text, opts.MaxSentences)
	metrics.Global.RecordSummary(MethodExtractive)
	return Result{
		Text:     summary,
		Provider: MethodExtractive,
		Method:   MethodExtractive,
	}
}

// tryProvider issues the single bounded call for one provider. The timeout
// is the only cancellation mechanism for provider work.
func (c *Chain) tryProvider(ctx context.Context, p Provider, text string, opts Options) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.Timeout())
	defer cancel()
	return p.Summarize(callCtx, text, opts)
}
