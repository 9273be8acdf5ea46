package recommend

import (
	"context"
	"sort"
	"time"

	"github.com/deusflow/pulse/internal/metrics"
	"github.com/deusflow/pulse/internal/model"
)

// TrendingArticle pairs an article with its windowed engagement numbers.
type TrendingArticle struct {
	Article      model.Article
	Engagement   int
	Interactions int
}

// GetTrendingArticles ranks articles by engagement over the trailing
// window, independent of any single user. Engagement is the weighted
// interaction sum; raw interaction count breaks ties, then article id for
// determinism.
func (s *Service) GetTrendingArticles(ctx context.Context, limit int) ([]TrendingArticle, error) {
	if limit <= 0 {
		limit = 10
	}

	cutoff := time.Now().Add(-s.trendingWindow)
	rows, err := s.store.CountInteractionsSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	type agg struct {
		articleID    int64
		engagement   int
		interactions int
	}
	byArticle := make(map[int64]*agg)
	for _, row := range rows {
		a := byArticle[row.ArticleID]
		if a == nil {
			a = &agg{articleID: row.ArticleID}
			byArticle[row.ArticleID] = a
		}
		a.engagement += row.Count * row.Type.EngagementWeight()
		a.interactions += row.Count
	}

	ranked := make([]*agg, 0, len(byArticle))
	for _, a := range byArticle {
		ranked = append(ranked, a)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].engagement != ranked[j].engagement {
			return ranked[i].engagement > ranked[j].engagement
		}
		if ranked[i].interactions != ranked[j].interactions {
			return ranked[i].interactions > ranked[j].interactions
		}
		return ranked[i].articleID < ranked[j].articleID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]TrendingArticle, 0, len(ranked))
	for _, a := range ranked {
		article, err := s.store.GetArticle(ctx, a.articleID)
		if err != nil {
			return nil, err
		}
		out = append(out, TrendingArticle{
			Article:      *article,
			Engagement:   a.engagement,
			Interactions: a.interactions,
		})
	}

	metrics.Global.IncrementTrendingQueriesServed()
	s.log.Debug("trending computed", "window", s.trendingWindow, "returned", len(out))
	return out, nil
}
