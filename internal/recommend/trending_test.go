package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/deusflow/pulse/internal/model"
)

func TestGetTrendingArticles_WeightsAndOrder(t *testing.T) {
	now := time.Now()
	store := &fakeStore{
		articles: []model.Article{
			{ID: 1, Title: "shared once"},
			{ID: 2, Title: "liked twice"},
			{ID: 3, Title: "viewed once"},
		},
		interactions: []timedInteraction{
			{articleID: 1, typ: model.InteractionShare, at: now.Add(-time.Hour)}, // 5
			{articleID: 2, typ: model.InteractionLike, at: now.Add(-time.Hour)},  // 3
			{articleID: 2, typ: model.InteractionLike, at: now.Add(-time.Hour)},  // 3
			{articleID: 3, typ: model.InteractionView, at: now.Add(-time.Hour)},  // 1
		},
	}

	trending, err := NewService(store, 24*time.Hour, nil).GetTrendingArticles(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetTrendingArticles: %v", err)
	}
	if len(trending) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(trending))
	}

	wantOrder := []int64{2, 1, 3}
	wantEngagement := []int{6, 5, 1}
	for i := range trending {
		if trending[i].Article.ID != wantOrder[i] {
			t.Errorf("position %d: expected article %d, got %d", i, wantOrder[i], trending[i].Article.ID)
		}
		if trending[i].Engagement != wantEngagement[i] {
			t.Errorf("article %d: expected engagement %d, got %d",
				trending[i].Article.ID, wantEngagement[i], trending[i].Engagement)
		}
	}
}

func TestGetTrendingArticles_IgnoresInteractionsOutsideWindow(t *testing.T) {
	now := time.Now()
	store := &fakeStore{
		articles: []model.Article{
			{ID: 1, Title: "old favorite"},
			{ID: 2, Title: "current"},
		},
		interactions: []timedInteraction{
			{articleID: 1, typ: model.InteractionShare, at: now.Add(-48 * time.Hour)},
			{articleID: 1, typ: model.InteractionShare, at: now.Add(-48 * time.Hour)},
			{articleID: 2, typ: model.InteractionView, at: now.Add(-time.Hour)},
		},
	}

	trending, err := NewService(store, 24*time.Hour, nil).GetTrendingArticles(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetTrendingArticles: %v", err)
	}
	if len(trending) != 1 {
		t.Fatalf("expected only the in-window article, got %d entries", len(trending))
	}
	if trending[0].Article.ID != 2 {
		t.Errorf("expected article 2, got %d", trending[0].Article.ID)
	}
}

func TestGetTrendingArticles_TieBreaks(t *testing.T) {
	now := time.Now()
	store := &fakeStore{
		articles: []model.Article{
			{ID: 7, Title: "one share"},
			{ID: 8, Title: "five views"},
			{ID: 9, Title: "one share too"},
		},
		interactions: []timedInteraction{
			// Articles 7 and 9: engagement 5 from a single share.
			{articleID: 7, typ: model.InteractionShare, at: now},
			{articleID: 9, typ: model.InteractionShare, at: now},
			// Article 8: engagement 5 from five views, more raw interactions.
			{articleID: 8, typ: model.InteractionView, at: now},
			{articleID: 8, typ: model.InteractionView, at: now},
			{articleID: 8, typ: model.InteractionView, at: now},
			{articleID: 8, typ: model.InteractionView, at: now},
			{articleID: 8, typ: model.InteractionView, at: now},
		},
	}

	trending, err := NewService(store, 24*time.Hour, nil).GetTrendingArticles(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetTrendingArticles: %v", err)
	}
	want := []int64{8, 7, 9}
	if len(trending) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(trending))
	}
	for i := range want {
		if trending[i].Article.ID != want[i] {
			t.Errorf("position %d: expected article %d, got %d", i, want[i], trending[i].Article.ID)
		}
	}
}

func TestGetTrendingArticles_TruncatesToLimit(t *testing.T) {
	now := time.Now()
	store := &fakeStore{
		articles: []model.Article{{ID: 1}, {ID: 2}, {ID: 3}},
		interactions: []timedInteraction{
			{articleID: 1, typ: model.InteractionShare, at: now},
			{articleID: 2, typ: model.InteractionLike, at: now},
			{articleID: 3, typ: model.InteractionView, at: now},
		},
	}

	trending, err := NewService(store, 24*time.Hour, nil).GetTrendingArticles(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetTrendingArticles: %v", err)
	}
	if len(trending) != 2 {
		t.Errorf("expected limit applied, got %d entries", len(trending))
	}
}

func TestGetTrendingArticles_QuietWindow(t *testing.T) {
	store := &fakeStore{articles: []model.Article{{ID: 1}}}
	trending, err := NewService(store, 24*time.Hour, nil).GetTrendingArticles(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetTrendingArticles: %v", err)
	}
	if len(trending) != 0 {
		t.Errorf("expected empty trending list, got %d entries", len(trending))
	}
}
