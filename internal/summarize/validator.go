package summarize

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Quality gate for provider output. Providers sometimes echo their own
// failure text as a successful response; the substring checks catch the
// common cases.
const (
	minSummaryRunes   = 20
	minSummaryWords   = 10
	maxSourceFraction = 0.8
)

var rejectSubstrings = []string{"error", "failed", "undefined"}

// ValidateSummary judges whether a cleaned candidate summary is acceptable
// for the given source document. It returns nil when the candidate passes.
func ValidateSummary(candidate, source string) error {
	runes := utf8.RuneCountInString(candidate)
	if runes < minSummaryRunes {
		return fmt.Errorf("%w: too short (%d chars)", ErrRejected, runes)
	}

	sourceRunes := utf8.RuneCountInString(source)
	if sourceRunes > 0 && float64(runes) >= maxSourceFraction*float64(sourceRunes) {
		return fmt.Errorf("%w: not shorter than source (%d of %d chars)", ErrRejected, runes, sourceRunes)
	}

	if words := len(strings.Fields(candidate)); words < minSummaryWords {
		return fmt.Errorf("%w: too few words (%d)", ErrRejected, words)
	}

	lower := strings.ToLower(candidate)
	for _, bad := range rejectSubstrings {
		if strings.Contains(lower, bad) {
			return fmt.Errorf("%w: contains %q", ErrRejected, bad)
		}
	}

	return nil
}
