package summarize

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Provider is one summary-generating backend in the fallback chain.
// Implementations issue a single bounded call per request; the chain never
// retries a provider within one request.
type Provider interface {
	// Name identifies the provider in logs and results.
	Name() string

	// Model reports the model that would serve the given options.
	Model(opts Options) string

	// Available reports whether the provider has the credentials or
	// endpoint configuration it needs. Unavailable providers are skipped
	// without a network call.
	Available() bool

	// Timeout bounds a single Summarize call. The deadline is the only
	// cancellation mechanism for provider work.
	Timeout() time.Duration

	// Summarize returns the raw candidate text. Cleaning and validation
	// are the chain's job.
	Summarize(ctx context.Context, text string, opts Options) (string, error)
}

// truncateForPrompt caps prompt input at a provider's character budget,
// cutting on a rune boundary and preferring to end at a sentence.
func truncateForPrompt(text string, maxChars int) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	runes := []rune(text)
	trimmed := string(runes[:maxChars])
	if idx := strings.LastIndex(trimmed, ". "); idx > maxChars/4 {
		trimmed = trimmed[:idx+1]
	}
	return trimmed
}

// buildPrompt produces the instruction shared by the chat-style providers.
func buildPrompt(text string, opts Options) string {
	return fmt.Sprintf(`Summarize the following article in at most %d sentences and no more than %d words.
Reply with the summary text only, no preamble and no labels.

Article:
%s`, opts.MaxSentences, opts.MaxLength, text)
}
