package recommend

import (
	"strings"
	"time"

	"github.com/deusflow/pulse/internal/model"
)

// popularityNormalizer is the weighted interaction sum that maps to full
// popularity. 100 ≈ twenty likes plus a handful of shares.
const popularityNormalizer = 100.0

// interestScore returns the fraction of the user's interests that match an
// article tag, plus the matched interests for reason text. A match is a
// substring hit in either direction, so interest "ai" matches tag
// "ai-research" and interest "machine learning" matches tag "learning".
func interestScore(interests, tags []string) (float64, []string) {
	if len(interests) == 0 || len(tags) == 0 {
		return 0, nil
	}

	var matched []string
	for _, interest := range interests {
		for _, tag := range tags {
			if strings.Contains(tag, interest) || strings.Contains(interest, tag) {
				matched = append(matched, interest)
				break
			}
		}
	}

	return float64(len(matched)) / float64(len(interests)), matched
}

// popularityScore maps all-time weighted engagement to [0,1].
func popularityScore(counts map[model.InteractionType]int) float64 {
	var weighted int
	for typ, count := range counts {
		weighted += count * typ.EngagementWeight()
	}

	score := float64(weighted) / popularityNormalizer
	if score > 1.0 {
		return 1.0
	}
	return score
}

// freshnessScore is a step function of article age.
func freshnessScore(createdAt, now time.Time) float64 {
	age := now.Sub(createdAt)
	switch {
	case age <= 24*time.Hour:
		return 1.0
	case age <= 7*24*time.Hour:
		return 0.9
	case age <= 30*24*time.Hour:
		return 0.7
	case age <= 90*24*time.Hour:
		return 0.4
	default:
		return 0.2
	}
}
