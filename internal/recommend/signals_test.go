package recommend

import (
	"testing"
	"time"

	"github.com/deusflow/pulse/internal/model"
)

func TestInterestScore(t *testing.T) {
	cases := []struct {
		name      string
		interests []string
		tags      []string
		want      float64
	}{
		{"no interests", nil, []string{"go"}, 0},
		{"no tags", []string{"go"}, nil, 0},
		{"exact match", []string{"go"}, []string{"go"}, 1},
		{"interest inside tag", []string{"ai"}, []string{"ai-research"}, 1},
		{"tag inside interest", []string{"machine learning"}, []string{"learning"}, 1},
		{"half matched", []string{"go", "rust"}, []string{"golang"}, 0.5},
		{"nothing matched", []string{"cooking"}, []string{"golang"}, 0},
	}
	for _, c := range cases {
		got, _ := interestScore(c.interests, c.tags)
		if got != c.want {
			t.Errorf("%s: interestScore = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestInterestScore_ReportsMatchedInterests(t *testing.T) {
	_, matched := interestScore([]string{"go", "databases"}, []string{"golang", "web"})
	if len(matched) != 1 || matched[0] != "go" {
		t.Errorf("expected matched [go], got %v", matched)
	}
}

func TestPopularityScore(t *testing.T) {
	cases := []struct {
		name   string
		counts map[model.InteractionType]int
		want   float64
	}{
		{"empty", nil, 0},
		{"weighted mix", map[model.InteractionType]int{
			model.InteractionView:    10, // 10
			model.InteractionLike:    5,  // 15
			model.InteractionShare:   3,  // 15
			model.InteractionComment: 5,  // 20
		}, 0.6},
		{"capped", map[model.InteractionType]int{model.InteractionShare: 100}, 1},
	}
	for _, c := range cases {
		if got := popularityScore(c.counts); got != c.want {
			t.Errorf("%s: popularityScore = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestFreshnessScore(t *testing.T) {
	now := time.Now()
	cases := []struct {
		age  time.Duration
		want float64
	}{
		{time.Hour, 1.0},
		{3 * 24 * time.Hour, 0.9},
		{20 * 24 * time.Hour, 0.7},
		{60 * 24 * time.Hour, 0.4},
		{400 * 24 * time.Hour, 0.2},
	}
	for _, c := range cases {
		if got := freshnessScore(now.Add(-c.age), now); got != c.want {
			t.Errorf("age %v: freshnessScore = %v, want %v", c.age, got, c.want)
		}
	}
}
