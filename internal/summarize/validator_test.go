package summarize

import (
	"errors"
	"strings"
	"testing"
)

const validatorSource = "The city council approved the new transit budget after a long public hearing. " +
	"Several residents spoke in favor of expanded night bus service. " +
	"Construction on the first corridor is expected to begin next spring. " +
	"Officials said the project will be funded through a mix of state grants and local bonds."

func TestValidateSummary_AcceptsReasonableCandidate(t *testing.T) {
	candidate := "The council approved a transit budget with expanded night bus service and construction starting next spring."
	if err := ValidateSummary(candidate, validatorSource); err != nil {
		t.Errorf("expected candidate accepted, got %v", err)
	}
}

func TestValidateSummary_RejectsTooShort(t *testing.T) {
	err := ValidateSummary("Budget approved.", validatorSource)
	if !errors.Is(err, ErrRejected) {
		t.Errorf("expected ErrRejected, got %v", err)
	}
}

func TestValidateSummary_RejectsTooFewWords(t *testing.T) {
	// Long enough in runes, but under the word floor.
	err := ValidateSummary("Councilapprovedtransitbudget expansion construction", validatorSource)
	if !errors.Is(err, ErrRejected) {
		t.Errorf("expected ErrRejected, got %v", err)
	}
}

func TestValidateSummary_RejectsNotShorterThanSource(t *testing.T) {
	err := ValidateSummary(validatorSource, validatorSource)
	if !errors.Is(err, ErrRejected) {
		t.Errorf("expected ErrRejected, got %v", err)
	}
}

func TestValidateSummary_RejectsFailureEcho(t *testing.T) {
	for _, candidate := range []string{
		"An error occurred while generating the requested summary of this article today.",
		"The request failed because the upstream model was overloaded at the time of writing.",
		"The response body came back as undefined so there is nothing useful to report here.",
	} {
		if err := ValidateSummary(candidate, validatorSource); !errors.Is(err, ErrRejected) {
			t.Errorf("expected %q rejected, got %v", candidate, err)
		}
	}
}

func TestCleanCandidate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`Summary: The council approved the budget.`, "The council approved the budget."},
		{`[Note] (draft) The council approved the budget.`, "The council approved the budget."},
		{`"The council approved the budget."`, "The council approved the budget."},
		{"The  council\n\napproved   the budget.", "The council approved the budget."},
		{"  plain text  ", "plain text"},
	}
	for _, c := range cases {
		if got := cleanCandidate(c.in); got != c.want {
			t.Errorf("cleanCandidate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTruncateForPrompt_PrefersSentenceBoundary(t *testing.T) {
	text := strings.Repeat("This sentence fills the budget with words. ", 40)
	out := truncateForPrompt(text, 200)
	if len([]rune(out)) > 200 {
		t.Fatalf("truncated text exceeds budget: %d runes", len([]rune(out)))
	}
	if !strings.HasSuffix(out, ".") {
		t.Errorf("expected truncation at a sentence boundary, got tail %q", out[len(out)-20:])
	}
}
