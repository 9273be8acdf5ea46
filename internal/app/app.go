// Package app wires configuration, storage, the summary chain, and the
// ranking services together and runs one pipeline cycle.
package app

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/deusflow/pulse/internal/config"
	"github.com/deusflow/pulse/internal/ingest"
	"github.com/deusflow/pulse/internal/logger"
	"github.com/deusflow/pulse/internal/recommend"
	"github.com/deusflow/pulse/internal/store"
	"github.com/deusflow/pulse/internal/summarize"
)

// Run executes one cycle: ingest configured feeds, then report trending
// content. When PULSE_USER_ID is set it also logs that user's
// recommendations, which is handy when smoke-testing a deployment.
func Run() error {
	logger.Init()
	log := logger.With("app")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := store.New(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer db.Close()

	chain := summarize.NewChain(logger.With("summarize"),
		summarize.NewOllamaProvider(cfg.OllamaURL, cfg.OllamaModel, nil),
		summarize.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel),
		summarize.NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel),
		summarize.NewHuggingFaceProvider(cfg.HuggingFaceAPIKey, cfg.HuggingFaceModel, nil),
	)

	ctx := context.Background()

	pipeline := ingest.NewService(db, chain, cfg, logger.With("ingest"))
	if err := pipeline.Run(ctx); err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	ranker := recommend.NewService(db, cfg.TrendingWindow, logger.With("recommend"))

	trending, err := ranker.GetTrendingArticles(ctx, cfg.TrendingLimit)
	if err != nil {
		return fmt.Errorf("failed to compute trending: %w", err)
	}
	for i, t := range trending {
		log.Info("trending", "rank", i+1, "article", t.Article.Title,
			"engagement", t.Engagement, "interactions", t.Interactions)
	}

	if raw := os.Getenv("PULSE_USER_ID"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid PULSE_USER_ID: %w", err)
		}
		recs, err := ranker.GetRecommendations(ctx, userID, cfg.RecommendLimit)
		if err != nil {
			return fmt.Errorf("failed to compute recommendations: %w", err)
		}
		for i, r := range recs {
			log.Info("recommendation", "rank", i+1, "article", r.Article.Title,
				"score", r.Score, "reasons", r.Reasons)
		}
	}

	return nil
}
