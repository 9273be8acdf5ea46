package summarize

import (
	"math"
	"sort"
	"strings"
)

// Positional bonuses reward lead sentences, which in news copy carry the
// most salient facts.
const (
	leadSentenceBonus   = 0.15
	secondSentenceBonus = 0.05
	longSentencePenalty = 0.9
	longSentenceTerms   = 30
)

// termStats holds per-sentence token statistics for scoring. Each sentence
// is treated as an independent document: the corpus size is the sentence
// count, not the article count, so IDF measures a term's salience within
// this document rather than across the collection.
type termStats struct {
	corpusSize int
	docFreq    map[string]int
}

// buildTermStats indexes document frequency across the sentence corpus.
func buildTermStats(sentenceTerms [][]string) termStats {
	ts := termStats{
		corpusSize: len(sentenceTerms),
		docFreq:    make(map[string]int),
	}
	for _, terms := range sentenceTerms {
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			ts.docFreq[t]++
		}
	}
	return ts
}

// score sums the TF-IDF weight of every term in one sentence.
func (ts termStats) score(terms []string) float64 {
	if len(terms) == 0 {
		return 0
	}

	tf := make(map[string]int, len(terms))
	for _, t := range terms {
		tf[t]++
	}

	var sum float64
	for t, count := range tf {
		df := ts.docFreq[t]
		if df == 0 {
			continue
		}
		idf := math.Log(float64(ts.corpusSize)/float64(df)) + 1
		sum += float64(count) * idf
	}

	// Length-bias correction, then a penalty for run-on sentences.
	sum /= math.Sqrt(float64(len(terms)))
	if len(terms) > longSentenceTerms {
		sum *= longSentencePenalty
	}
	return sum
}

// Extract produces an extractive summary of at most maxSentences sentences,
// returned in original document order. A document with no qualifying
// sentences yields an empty string. Extract never fails.
func Extract(text string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = 3
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return ""
	}
	if len(sentences) <= maxSentences {
		return strings.Join(sentences, " ")
	}

	sentenceTerms := make([][]string, len(sentences))
	for i, s := range sentences {
		sentenceTerms[i] = terms(s)
	}
	stats := buildTermStats(sentenceTerms)

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i := range sentences {
		s := stats.score(sentenceTerms[i])
		switch i {
		case 0:
			s += leadSentenceBonus
		case 1:
			s += secondSentenceBonus
		}
		ranked[i] = scored{index: i, score: s}
	}

	// Ties break toward the earlier sentence so selection is deterministic.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].index < ranked[j].index
	})

	selected := make([]int, maxSentences)
	for i := 0; i < maxSentences; i++ {
		selected[i] = ranked[i].index
	}
	sort.Ints(selected)

	out := make([]string, len(selected))
	for i, idx := range selected {
		out[i] = sentences[idx]
	}
	return strings.Join(out, " ")
}
