package metrics

import "testing"

func TestRecordSummary_CountsExtractiveFallbacks(t *testing.T) {
	m := &Metrics{SummariesByProvider: make(map[string]int64)}

	m.RecordSummary("openai")
	m.RecordSummary("extractive")
	m.RecordSummary("extractive")

	if m.SummariesGenerated != 3 {
		t.Errorf("SummariesGenerated = %d, want 3", m.SummariesGenerated)
	}
	if m.ExtractiveFallbacks != 2 {
		t.Errorf("ExtractiveFallbacks = %d, want 2", m.ExtractiveFallbacks)
	}
	if m.SummariesByProvider["openai"] != 1 {
		t.Errorf("per-provider count = %d, want 1", m.SummariesByProvider["openai"])
	}
}

func TestGetStats_ReportsHealth(t *testing.T) {
	m := &Metrics{IsHealthy: true, SummariesByProvider: make(map[string]int64)}
	m.SetError("feed unreachable")

	stats := m.GetStats()
	if stats["is_healthy"].(bool) {
		t.Error("expected unhealthy after SetError")
	}
	if stats["last_error"].(string) != "feed unreachable" {
		t.Errorf("unexpected last_error %v", stats["last_error"])
	}

	m.SetLastRun()
	if !m.GetStats()["is_healthy"].(bool) {
		t.Error("expected healthy after SetLastRun")
	}
}
