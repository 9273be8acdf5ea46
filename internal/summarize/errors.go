package summarize

import "errors"

// Chain-internal failure classes. None of these escape GenerateBestSummary:
// the extractive terminal step recovers every one of them. They exist so
// logs can tell a skipped provider from a rejected candidate.
var (
	// ErrUnavailable means the provider has no credentials or endpoint
	// configured and was skipped without a network call.
	ErrUnavailable = errors.New("provider not configured")

	// ErrInvalidResponse means the provider answered but the payload was
	// empty, malformed, or implausibly short.
	ErrInvalidResponse = errors.New("invalid provider response")

	// ErrRejected means the candidate failed the summary quality gate.
	ErrRejected = errors.New("summary rejected by validator")
)
