package summarize

import (
	"regexp"
	"strings"
)

var (
	bracketPrefixPattern = regexp.MustCompile(`^\s*[\[(][^\])]*[\])]\s*`)
	summaryLabelPattern  = regexp.MustCompile(`(?i)^summary\s*:\s*`)
)

// cleanCandidate normalizes raw provider output before validation: models
// like to prepend "[Summary]" markers or a "Summary:" label and to wrap
// the whole answer in quotes.
func cleanCandidate(s string) string {
	s = strings.TrimSpace(s)

	for {
		stripped := bracketPrefixPattern.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}

	s = summaryLabelPattern.ReplaceAllString(s, "")

	// Collapse internal whitespace
	s = strings.Join(strings.Fields(s), " ")

	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
			continue
		}
		break
	}

	return s
}
