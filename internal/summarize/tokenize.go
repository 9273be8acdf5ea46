package summarize

import (
	"regexp"
	"strings"
)

var (
	sentenceSplitPattern = regexp.MustCompile(`[.!?]+`)
	tokenPattern         = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
)

// Candidate sentences shorter than this, or with too few words, are noise
// (bylines, timestamps, photo credits) and never make it into a summary.
const (
	minSentenceLen   = 15
	minSentenceWords = 4
)

// splitSentences splits text on sentence-terminal punctuation and filters
// out noise fragments. The returned slice preserves original order.
func splitSentences(text string) []string {
	parts := sentenceSplitPattern.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if len(s) < minSentenceLen {
			continue
		}
		if len(strings.Fields(s)) < minSentenceWords {
			continue
		}
		sentences = append(sentences, s)
	}
	return sentences
}

// terms lowercases and tokenizes a sentence, stems each token, and drops
// short tokens and stopwords.
func terms(sentence string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(sentence), -1)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = stem(tok)
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// stem reduces a word to an approximate root by stripping common English
// suffixes. It is intentionally crude: matching "compute"/"computing" is
// enough for within-document term statistics.
func stem(word string) string {
	if len(word) <= 3 {
		return word
	}
	if strings.HasSuffix(word, "ies") && len(word) > 4 {
		return word[:len(word)-3] + "y"
	}
	for _, suffix := range []string{"ments", "ment", "ings", "ing", "edly", "ed", "ly", "es", "s"} {
		if strings.HasSuffix(word, suffix) && len(word)-len(suffix) >= 3 {
			return word[:len(word)-len(suffix)]
		}
	}
	return word
}

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are",
		"was", "were", "be", "been", "being", "it", "this", "that",
		"these", "those", "from", "up", "down", "over", "under", "again",
		"further", "than", "so", "such", "into", "about", "between",
		"through", "during", "before", "after", "above", "below", "out",
		"off", "own", "same", "too", "very", "can", "will", "just",
		"not", "no", "nor", "only", "both", "each", "few", "more", "most",
		"other", "some", "any", "all", "its", "their", "they", "them",
		"he", "she", "his", "her", "we", "you", "your", "our", "what",
		"which", "who", "whom", "when", "where", "why", "how", "do",
		"does", "did", "have", "has", "had", "would", "could", "should",
		"there", "here", "also", "said", "say", "new", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
