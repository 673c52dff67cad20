package server

import (
	"testing"

	"github.com/ledgerline/ledgerline/internal/models"
)

func TestPickTrendMetricPrefersCandidates(t *testing.T) {
	periods := []models.Period{
		{Month: "June", Year: 2026, Extra: map[string]any{"cashFlow": 451000.0, "aardvark": 1.0}},
		{Month: "July", Year: 2026, Extra: map[string]any{"cashFlow": 464000.0, "aardvark": 2.0}},
	}

	metric, values, labels := pickTrendMetric(periods)
	if metric != "cashFlow" {
		t.Errorf("Expected cashFlow over alphabetical pick, got %s", metric)
	}
	if len(values) != 2 || values[0] != 451000.0 {
		t.Errorf("Unexpected values: %v", values)
	}
	if len(labels) != 2 || labels[0] != "June 2026" {
		t.Errorf("Unexpected labels: %v", labels)
	}
}

func TestPickTrendMetricAlphabeticalFallback(t *testing.T) {
	periods := []models.Period{
		{Month: "June", Year: 2026, Extra: map[string]any{"zeta": 1.0, "beta": 5.0}},
		{Month: "July", Year: 2026, Extra: map[string]any{"zeta": 2.0, "beta": 6.0}},
	}

	metric, _, _ := pickTrendMetric(periods)
	if metric != "beta" {
		t.Errorf("Expected alphabetical fallback 'beta', got %s", metric)
	}
}

func TestPickTrendMetricRequiresTwoPeriods(t *testing.T) {
	periods := []models.Period{
		{Month: "June", Year: 2026, Extra: map[string]any{"cashFlow": 451000.0}},
		{Month: "July", Year: 2026, Extra: map[string]any{"other": "text"}},
	}

	if metric, _, _ := pickTrendMetric(periods); metric != "" {
		t.Errorf("Expected no metric with a single numeric period, got %s", metric)
	}
}

func TestRenderTrendChart(t *testing.T) {
	periods := []models.Period{
		{Month: "June", Year: 2026, Extra: map[string]any{"cashFlow": 451000.0}},
		{Month: "July", Year: 2026, Extra: map[string]any{"cashFlow": 464000.0}},
		{Month: "August", Year: 2026, Extra: map[string]any{"cashFlow": 482000.0}},
	}

	png, err := renderTrendChart("Baseline", periods)
	if err != nil {
		t.Fatalf("renderTrendChart failed: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("Expected PNG bytes")
	}
}

func TestRenderTrendChartNoData(t *testing.T) {
	if _, err := renderTrendChart("Empty", nil); err == nil {
		t.Fatal("Expected error with no periods")
	}
}
