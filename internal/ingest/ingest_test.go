package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/deusflow/pulse/internal/config"
	"github.com/deusflow/pulse/internal/model"
	"github.com/deusflow/pulse/internal/summarize"
)

type fakeStore struct {
	hashes  map[string]bool
	created []model.Article
}

func newFakeStore() *fakeStore {
	return &fakeStore{hashes: map[string]bool{}}
}

func (f *fakeStore) HasArticleHash(_ context.Context, hash string) (bool, error) {
	return f.hashes[hash], nil
}

func (f *fakeStore) CreateArticle(_ context.Context, a *model.Article, hash string) error {
	f.hashes[hash] = true
	a.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *a)
	return nil
}

func testService(store Store) *Service {
	cfg := &config.Config{
		SummaryMaxSentences: 3,
		NewsMaxAge:          24 * time.Hour,
		ScrapeConcurrency:   2,
		ScrapeMaxArticles:   10,
		RetryAttempts:       1,
	}
	return NewService(store, summarize.NewChain(nil), cfg, nil)
}

func item(title, link string, published time.Time) *gofeed.Item {
	return &gofeed.Item{Title: title, Link: link, PublishedParsed: &published}
}

func TestFilterFresh(t *testing.T) {
	now := time.Now()
	svc := testService(newFakeStore())

	items := []*gofeed.Item{
		item("fresh", "http://a", now.Add(-time.Hour)),
		item("stale", "http://b", now.Add(-48*time.Hour)),
		{Title: "undated", Link: "http://c"},
	}
	got := svc.filterFresh(items, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 items kept, got %d", len(got))
	}
	for _, it := range got {
		if it.Title == "stale" {
			t.Error("stale item survived the age filter")
		}
	}
}

func TestDedupe_DropsBatchAndStoreDuplicates(t *testing.T) {
	now := time.Now()
	store := newFakeStore()
	svc := testService(store)

	known := item("Already stored", "http://known", now)
	store.hashes[contentHash(known)] = true

	items := []*gofeed.Item{
		item("New story", "http://new", now),
		item("New story", "http://new", now), // batch duplicate
		known,
	}
	got, err := svc.dedupe(context.Background(), items)
	if err != nil {
		t.Fatalf("dedupe: %v", err)
	}
	if len(got) != 1 || got[0].Link != "http://new" {
		t.Fatalf("expected only the new story, got %v", got)
	}
}

func TestContentHash_NormalizesTitle(t *testing.T) {
	a := item("  Breaking News  ", "http://x", time.Now())
	b := item("breaking news", "http://x", time.Now())
	c := item("breaking news", "http://y", time.Now())

	if contentHash(a) != contentHash(b) {
		t.Error("case and whitespace should not change the hash")
	}
	if contentHash(b) == contentHash(c) {
		t.Error("different links must produce different hashes")
	}
}

func TestProcessOne_ScrapesAndStores(t *testing.T) {
	body := strings.Repeat("The regional council approved a new flood defense plan for the river delta after months of study. ", 3)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "<html><body><article><h1>Flood plan</h1><p>%s</p><p>%s</p><p>%s</p></article></body></html>",
			body, body, body)
	}))
	defer srv.Close()

	store := newFakeStore()
	svc := testService(store)

	published := time.Now().Add(-time.Hour)
	it := item("Flood plan approved", srv.URL, published)
	it.Categories = []string{"Environment", " POLITICS "}

	if err := svc.processOne(context.Background(), it); err != nil {
		t.Fatalf("processOne: %v", err)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected 1 stored article, got %d", len(store.created))
	}

	a := store.created[0]
	if a.Title != "Flood plan approved" {
		t.Errorf("unexpected title %q", a.Title)
	}
	if !strings.Contains(a.Body, "flood defense plan") {
		t.Errorf("scraped body missing: %q", a.Body[:80])
	}
	if a.Summary == "" {
		t.Error("expected extractive summary for article with no providers configured")
	}
	if len(a.Tags) != 2 || a.Tags[0] != "environment" || a.Tags[1] != "politics" {
		t.Errorf("tags not normalized: %v", a.Tags)
	}
	if !a.CreatedAt.Equal(published) {
		t.Errorf("expected published time kept, got %v", a.CreatedAt)
	}
}

func TestProcessOne_FallsBackToFeedDescription(t *testing.T) {
	store := newFakeStore()
	svc := testService(store)

	it := item("Unreachable story", "http://127.0.0.1:1/nope", time.Now())
	it.Description = "A short feed description standing in for the unreachable page body today."

	if err := svc.processOne(context.Background(), it); err != nil {
		t.Fatalf("processOne: %v", err)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected 1 stored article, got %d", len(store.created))
	}
	if !strings.Contains(store.created[0].Body, "feed description") {
		t.Errorf("expected feed description used as body, got %q", store.created[0].Body)
	}
}
