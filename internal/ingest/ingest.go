// Package ingest runs the feed-to-store pipeline: fetch configured feeds,
// drop stale and duplicate items, pull full article text, summarize, and
// persist.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/deusflow/pulse/internal/config"
	"github.com/deusflow/pulse/internal/metrics"
	"github.com/deusflow/pulse/internal/model"
	"github.com/deusflow/pulse/internal/retry"
	"github.com/deusflow/pulse/internal/rss"
	"github.com/deusflow/pulse/internal/scraper"
	"github.com/deusflow/pulse/internal/summarize"
)

// Store is the subset of the storage layer the pipeline writes through.
type Store interface {
	HasArticleHash(ctx context.Context, contentHash string) (bool, error)
	CreateArticle(ctx context.Context, a *model.Article, contentHash string) error
}

type Service struct {
	store Store
	chain *summarize.Chain
	cfg   *config.Config
	log   *slog.Logger
}

func NewService(store Store, chain *summarize.Chain, cfg *config.Config, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, chain: chain, cfg: cfg, log: log}
}

// Run executes one full ingestion cycle.
func (s *Service) Run(ctx context.Context) error {
	start := time.Now()

	feeds, err := rss.LoadFeeds(s.cfg.FeedsConfigPath)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	var items []*gofeed.Item
	err = retry.Do(ctx, retry.Config{
		MaxAttempts: s.cfg.RetryAttempts,
		Delay:       s.cfg.RetryDelay,
		Backoff:     true,
	}, func() error {
		var fetchErr error
		items, fetchErr = rss.FetchAllFeeds(feeds, s.log)
		return fetchErr
	})
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	fresh := s.filterFresh(items, time.Now())
	candidates, err := s.dedupe(ctx, fresh)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	if len(candidates) > s.cfg.ScrapeMaxArticles {
		candidates = candidates[:s.cfg.ScrapeMaxArticles]
	}

	stored := s.processAll(ctx, candidates)

	metrics.Global.RecordProcessingTime(time.Since(start))
	metrics.Global.SetLastRun()
	s.log.Info("ingestion cycle finished",
		"fetched", len(items), "fresh", len(fresh),
		"candidates", len(candidates), "stored", stored,
		"took", time.Since(start))
	return nil
}

// filterFresh keeps items published within the configured age window. Items
// without a parsed publication time are kept.
func (s *Service) filterFresh(items []*gofeed.Item, now time.Time) []*gofeed.Item {
	cutoff := now.Add(-s.cfg.NewsMaxAge)
	var fresh []*gofeed.Item
	for _, item := range items {
		if item.PublishedParsed != nil && item.PublishedParsed.Before(cutoff) {
			continue
		}
		fresh = append(fresh, item)
	}
	return fresh
}

// dedupe drops items already stored and items repeated within this batch.
// Identity is a hash of the normalized title plus the link.
func (s *Service) dedupe(ctx context.Context, items []*gofeed.Item) ([]*gofeed.Item, error) {
	seen := make(map[string]bool, len(items))
	var unique []*gofeed.Item

	for _, item := range items {
		hash := contentHash(item)
		if seen[hash] {
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}
		seen[hash] = true

		exists, err := s.store.HasArticleHash(ctx, hash)
		if err != nil {
			return nil, err
		}
		if exists {
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}
		unique = append(unique, item)
	}
	return unique, nil
}

// processAll scrapes, summarizes, and stores the candidates with bounded
// concurrency. Per-item failures are logged and skipped.
func (s *Service) processAll(ctx context.Context, items []*gofeed.Item) int {
	sem := make(chan struct{}, s.cfg.ScrapeConcurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	stored := 0

	for _, item := range items {
		wg.Add(1)
		sem <- struct{}{}
		go func(item *gofeed.Item) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := s.processOne(ctx, item); err != nil {
				s.log.Warn("failed to ingest item", "link", item.Link, "error", err)
				return
			}
			mu.Lock()
			stored++
			mu.Unlock()
		}(item)
	}

	wg.Wait()
	return stored
}

func (s *Service) processOne(ctx context.Context, item *gofeed.Item) error {
	body := strings.TrimSpace(item.Description)

	page, err := scraper.FetchArticle(ctx, item.Link)
	if err != nil {
		s.log.Debug("scrape failed, using feed description", "link", item.Link, "error", err)
	} else if len(page.Body) > len(body) {
		body = page.Body
	}

	summary := s.chain.GenerateSummary(ctx, body, summarize.Options{
		MaxSentences: s.cfg.SummaryMaxSentences,
		MaxTokens:    s.cfg.SummaryMaxTokens,
		Temperature:  s.cfg.SummaryTemperature,
		MaxLength:    s.cfg.SummaryMaxLength,
	})

	article := &model.Article{
		Title:     strings.TrimSpace(item.Title),
		Body:      body,
		Author:    itemAuthor(item),
		Tags:      itemTags(item),
		Summary:   summary,
		CreatedAt: publishedAt(item),
	}

	if err := s.store.CreateArticle(ctx, article, contentHash(item)); err != nil {
		return err
	}
	metrics.Global.IncrementArticlesIngested()
	return nil
}

func contentHash(item *gofeed.Item) string {
	title := strings.ToLower(strings.TrimSpace(item.Title))
	sum := sha256.Sum256([]byte(title + "|" + item.Link))
	return hex.EncodeToString(sum[:])
}

func itemAuthor(item *gofeed.Item) string {
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	return "unknown"
}

func itemTags(item *gofeed.Item) []string {
	tags := make([]string, 0, len(item.Categories))
	for _, c := range item.Categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			tags = append(tags, c)
		}
	}
	return tags
}

func publishedAt(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	return time.Now()
}
