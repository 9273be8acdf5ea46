// Package recommend scores candidate articles for a user by combining
// interest, popularity, freshness, and author-reputation signals, and ranks
// recently active articles for the trending feed.
package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/deusflow/pulse/internal/metrics"
	"github.com/deusflow/pulse/internal/model"
)

// Signal weights. Interest dominates because it is the only personalized
// component; author reputation is a weak prior.
const (
	weightInterest   = 0.4
	weightPopularity = 0.3
	weightFreshness  = 0.2
	weightAuthor     = 0.1
)

// Reason thresholds.
const (
	popularReasonThreshold = 0.7
	recentReasonThreshold  = 0.8
	authorReasonThreshold  = 0.7
)

// candidateMultiplier controls how many articles are fetched per requested
// recommendation before scoring and truncation.
const candidateMultiplier = 2

// authorHistorySize bounds the author-reputation lookback.
const authorHistorySize = 10

// Store is the read surface this package needs from the storage
// collaborator. The Postgres store satisfies it; tests use in-memory fakes.
type Store interface {
	// GetUser returns model.ErrNotFound when the user does not exist.
	GetUser(ctx context.Context, id int64) (*model.User, error)

	// GetArticle returns model.ErrNotFound when the article does not exist.
	GetArticle(ctx context.Context, id int64) (*model.Article, error)

	// ListArticlesExcluding returns up to limit of the newest articles the
	// user has not interacted with, ordered by creation time descending.
	ListArticlesExcluding(ctx context.Context, userID int64, limit int) ([]model.Article, error)

	// ListArticlesByAuthor returns the author's newest articles.
	ListArticlesByAuthor(ctx context.Context, author string, limit int) ([]model.Article, error)

	// CountInteractionsByType returns all-time interaction counts for one
	// article, keyed by type.
	CountInteractionsByType(ctx context.Context, articleID int64) (map[model.InteractionType]int, error)

	// CountInteractionsSince returns per-article, per-type interaction
	// counts for interactions created at or after the cutoff.
	CountInteractionsSince(ctx context.Context, cutoff time.Time) ([]model.TypeCount, error)
}

// Recommendation pairs an article with its combined score and the
// human-readable reasons behind it.
type Recommendation struct {
	Article model.Article
	Score   float64
	Reasons []string
}

// Service computes recommendations and trending rankings. Scoring is
// stateless and read-only; concurrent requests may observe different
// popularity counts for the same article, which is accepted.
type Service struct {
	store          Store
	trendingWindow time.Duration
	log            *slog.Logger
}

// NewService builds a recommendation service. A non-positive window falls
// back to 24 hours.
func NewService(store Store, trendingWindow time.Duration, log *slog.Logger) *Service {
	if trendingWindow <= 0 {
		trendingWindow = 24 * time.Hour
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, trendingWindow: trendingWindow, log: log}
}

// GetRecommendations returns up to limit articles for the user, ordered by
// combined score descending. Articles the user has already interacted with
// are excluded. It fails only when the user does not exist or the store
// errors; store errors pass through unmodified.
func (s *Service) GetRecommendations(ctx context.Context, userID int64, limit int) ([]Recommendation, error) {
	if limit <= 0 {
		limit = 10
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.store.ListArticlesExcluding(ctx, userID, limit*candidateMultiplier)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []Recommendation{}, nil
	}

	// Each candidate's score is independent of the others, so evaluate
	// them in parallel.
	recs := make([]Recommendation, len(candidates))
	errs := make([]error, len(candidates))
	var wg sync.WaitGroup
	for i := range candidates {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			recs[idx], errs[idx] = s.scoreCandidate(ctx, user, candidates[idx])
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	// Stable sort keeps equal-score candidates in fetch order, which makes
	// ties deterministic.
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}

	metrics.Global.IncrementRecommendationsServed()
	s.log.Debug("recommendations computed", "user_id", userID, "candidates", len(candidates), "returned", len(recs))
	return recs, nil
}

// scoreCandidate combines the four signals for one (user, article) pair.
func (s *Service) scoreCandidate(ctx context.Context, user *model.User, article model.Article) (Recommendation, error) {
	interest, matched := interestScore(user.Interests, article.Tags)

	counts, err := s.store.CountInteractionsByType(ctx, article.ID)
	if err != nil {
		return Recommendation{}, err
	}
	popularity := popularityScore(counts)

	freshness := freshnessScore(article.CreatedAt, time.Now())

	author, err := s.authorScore(ctx, article)
	if err != nil {
		return Recommendation{}, err
	}

	combined := weightInterest*interest +
		weightPopularity*popularity +
		weightFreshness*freshness +
		weightAuthor*author
	if combined > 1.0 {
		combined = 1.0
	}
	combined = math.Round(combined*100) / 100

	return Recommendation{
		Article: article,
		Score:   combined,
		Reasons: buildReasons(interest, matched, popularity, freshness, author),
	}, nil
}

// authorScore averages the popularity of the author's most recent other
// articles. Authors with no other articles get a neutral 0.5 prior rather
// than zero, so new authors are not penalized.
func (s *Service) authorScore(ctx context.Context, article model.Article) (float64, error) {
	history, err := s.store.ListArticlesByAuthor(ctx, article.Author, authorHistorySize+1)
	if err != nil {
		return 0, err
	}

	var sum float64
	n := 0
	for _, other := range history {
		if other.ID == article.ID {
			continue
		}
		if n >= authorHistorySize {
			break
		}
		counts, err := s.store.CountInteractionsByType(ctx, other.ID)
		if err != nil {
			return 0, err
		}
		sum += popularityScore(counts)
		n++
	}

	if n == 0 {
		return 0.5, nil
	}
	return sum / float64(n), nil
}

func buildReasons(interest float64, matched []string, popularity, freshness, author float64) []string {
	var reasons []string
	if interest > 0 && len(matched) > 0 {
		reasons = append(reasons, fmt.Sprintf("matches your interests: %s", strings.Join(matched, ", ")))
	}
	if popularity > popularReasonThreshold {
		reasons = append(reasons, "popular among users")
	}
	if freshness > recentReasonThreshold {
		reasons = append(reasons, "recent content")
	}
	if author > authorReasonThreshold {
		reasons = append(reasons, "from popular author")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "you might find this interesting")
	}
	return reasons
}
