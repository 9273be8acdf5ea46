// Package scraper fetches article pages and extracts readable body text.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	requestTimeout  = 15 * time.Second
	minParagraphLen = 20
	enoughParas     = 3
	maxBodyChars    = 8000
)

// PageContent is the usable text extracted from an article page.
type PageContent struct {
	Title string
	Body  string
	URL   string
}

// contentSelectors is tried in order; the first selector that yields enough
// paragraphs wins.
var contentSelectors = []string{
	"article p",
	".article p",
	".article-body p",
	".post-content p",
	".entry-content p",
	".content p",
	"main p",
	"#content p",
	"p",
}

var titleSelectors = []string{
	"h1",
	".article-title",
	".headline",
	".entry-title",
	"title",
}

// FetchArticle downloads a page and extracts its title and body text.
func FetchArticle(ctx context.Context, url string) (*PageContent, error) {
	client := &http.Client{Timeout: requestTimeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to load page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	body := extractBody(doc)
	if body == "" {
		return nil, fmt.Errorf("no readable content at %s", url)
	}

	return &PageContent{
		Title: extractTitle(doc),
		Body:  body,
		URL:   url,
	}, nil
}

func extractBody(doc *goquery.Document) string {
	var best []string

	for _, selector := range contentSelectors {
		var paragraphs []string
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) >= minParagraphLen && !isBoilerplate(text) {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= enoughParas {
			best = paragraphs
			break
		}
		if len(paragraphs) > len(best) {
			best = paragraphs
		}
	}

	if len(best) == 0 {
		return ""
	}
	return truncateParagraphs(best, maxBodyChars)
}

func extractTitle(doc *goquery.Document) string {
	for _, selector := range titleSelectors {
		title := strings.TrimSpace(doc.Find(selector).First().Text())
		if title != "" {
			return title
		}
	}
	return ""
}

// boilerplateMarkers flag navigation, consent, and sharing chrome that
// selector matching occasionally picks up.
var boilerplateMarkers = []string{
	"cookie",
	"subscribe",
	"newsletter",
	"sign in",
	"log in",
	"advertisement",
	"all rights reserved",
	"share this article",
	"read more:",
	"follow us",
}

func isBoilerplate(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range boilerplateMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// truncateParagraphs keeps whole paragraphs up to the character limit.
func truncateParagraphs(paragraphs []string, limit int) string {
	var kept []string
	total := 0
	for _, p := range paragraphs {
		if total+len(p) > limit && len(kept) > 0 {
			break
		}
		kept = append(kept, p)
		total += len(p) + 2
	}
	return strings.Join(kept, "\n\n")
}
