// Package rss loads the configured feed list and fetches feed items.
package rss

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"
)

// FeedsConfig is the YAML config structure:
//
//	feeds:
//	  - https://...
type FeedsConfig struct {
	Feeds []string `yaml:"feeds"`
}

// LoadFeeds reads the feed URL list from a YAML file.
func LoadFeeds(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feeds config: %w", err)
	}
	defer f.Close()

	var cfg FeedsConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode feeds config: %w", err)
	}
	return cfg.Feeds, nil
}

// FetchAllFeeds downloads and parses all feeds. A feed that fails to parse
// is logged and skipped; the rest still contribute items.
func FetchAllFeeds(urls []string, log *slog.Logger) ([]*gofeed.Item, error) {
	if log == nil {
		log = slog.Default()
	}
	parser := gofeed.NewParser()
	var allItems []*gofeed.Item
	successCount := 0

	for _, url := range urls {
		feed, err := parser.ParseURL(url)
		if err != nil {
			log.Warn("failed to parse feed", "url", url, "error", err)
			continue
		}
		allItems = append(allItems, feed.Items...)
		successCount++
		log.Debug("loaded feed", "url", url, "items", len(feed.Items))
	}

	log.Info("fetched feeds", "ok", successCount, "total", len(urls), "items", len(allItems))
	return allItems, nil
}
