package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	ArticlesIngested       int64
	DuplicatesFiltered     int64
	SummariesGenerated     int64
	ExtractiveFallbacks    int64
	ProviderFailures       int64
	RecommendationsServed  int64
	TrendingQueriesServed  int64
	SummariesByProvider    map[string]int64

	// Timings
	LastProcessingTime    time.Duration
	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration
	ProcessingCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true, SummariesByProvider: make(map[string]int64)}

func (m *Metrics) IncrementArticlesIngested() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesIngested++
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

// RecordSummary counts a completed summary and the provider that won the
// fallback chain ("extractive" for the terminal step).
func (m *Metrics) RecordSummary(provider string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummariesGenerated++
	if provider == "extractive" {
		m.ExtractiveFallbacks++
	}
	m.SummariesByProvider[provider]++
}

func (m *Metrics) IncrementProviderFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProviderFailures++
}

func (m *Metrics) IncrementRecommendationsServed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecommendationsServed++
}

func (m *Metrics) IncrementTrendingQueriesServed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TrendingQueriesServed++
}

func (m *Metrics) RecordProcessingTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastProcessingTime = duration
	m.TotalProcessingTime += duration
	m.ProcessingCount++

	if m.ProcessingCount > 0 {
		m.AverageProcessingTime = m.TotalProcessingTime / time.Duration(m.ProcessingCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byProvider := make(map[string]int64, len(m.SummariesByProvider))
	for k, v := range m.SummariesByProvider {
		byProvider[k] = v
	}

	return map[string]interface{}{
		"articles_ingested":          m.ArticlesIngested,
		"duplicates_filtered":        m.DuplicatesFiltered,
		"summaries_generated":        m.SummariesGenerated,
		"extractive_fallbacks":       m.ExtractiveFallbacks,
		"provider_failures":          m.ProviderFailures,
		"recommendations_served":     m.RecommendationsServed,
		"trending_queries_served":    m.TrendingQueriesServed,
		"summaries_by_provider":      byProvider,
		"last_processing_time_ms":    m.LastProcessingTime.Milliseconds(),
		"average_processing_time_ms": m.AverageProcessingTime.Milliseconds(),
		"last_run_time":              m.LastRunTime.Format(time.RFC3339),
		"last_error_time":            m.LastErrorTime.Format(time.RFC3339),
		"last_error":                 m.LastError,
		"is_healthy":                 m.IsHealthy,
	}
}
