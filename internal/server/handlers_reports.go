package server

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ledgerline/ledgerline/internal/models"
)

// --- Report mockup handlers ---

// routeMockReports dispatches /reports/mock/{scenarioId}/{reportType}/{reportId}
// and the /preview.png variant under it.
func (s *Server) routeMockReports(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/reports/mock/")
	parts := strings.Split(rest, "/")
	switch len(parts) {
	case 3:
		s.handleMockReport(w, r, parts[0], parts[1], parts[2])
	case 4:
		if parts[3] != "preview.png" {
			WriteError(w, http.StatusNotFound, "Not found")
			return
		}
		s.handleMockReportPreview(w, r, parts[0], parts[1])
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

func (s *Server) handleMockReport(w http.ResponseWriter, r *http.Request, scenarioID, reportType, reportID string) {
	if !models.ValidReportType(reportType) {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Unknown report type: %s", reportType))
		return
	}

	scenario, err := s.app.Store.LoadScenario(scenarioID)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Scenario not found: %v", err))
		return
	}

	link := models.MockReportLink(scenarioID, reportType, reportID)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"reportId":   reportID,
		"scenarioId": scenario.ID,
		"scenario":   scenario.Name,
		"reportType": reportType,
		"period":     fmt.Sprintf("%s %d", scenario.Current.Month, scenario.Current.Year),
		"preview":    link + "/preview.png",
		"mock":       true,
	})
}

// handleMockReportPreview renders a PNG trend chart over the scenario's
// historical and current periods.
func (s *Server) handleMockReportPreview(w http.ResponseWriter, r *http.Request, scenarioID, reportType string) {
	if !models.ValidReportType(reportType) {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Unknown report type: %s", reportType))
		return
	}

	scenario, err := s.app.Store.LoadScenario(scenarioID)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Scenario not found: %v", err))
		return
	}

	periods := append(append([]models.Period{}, scenario.Historical...), scenario.Current)
	png, err := renderTrendChart(scenario.Name, periods)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("No chartable data: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// chartMetricCandidates are tried in order before falling back to any
// numeric field shared across periods.
var chartMetricCandidates = []string{
	"cashFlow",
	"netCashFlow",
	"totalCollected",
	"delinquencyRate",
	"outstandingBalance",
}

// renderTrendChart renders a PNG line chart of the first numeric metric
// present in at least two periods.
func renderTrendChart(title string, periods []models.Period) ([]byte, error) {
	metric, values, labels := pickTrendMetric(periods)
	if metric == "" {
		return nil, fmt.Errorf("need a numeric metric in at least 2 periods")
	}

	xValues := make([]float64, len(values))
	for i := range values {
		xValues[i] = float64(i)
	}

	series := chart.ContinuousSeries{
		Name: metric,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: values,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s: %s", title, metric),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					i := int(f)
					if i >= 0 && i < len(labels) {
						return labels[i]
					}
				}
				return ""
			},
		},
		Series: []chart.Series{series},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// pickTrendMetric chooses the metric to chart: a preferred candidate when
// one is numeric in two or more periods, else the alphabetically first
// qualifying field. Periods missing the metric are skipped.
func pickTrendMetric(periods []models.Period) (string, []float64, []string) {
	counts := make(map[string]int)
	for _, p := range periods {
		for key, v := range p.Extra {
			if _, ok := asFloat(v); ok {
				counts[key]++
			}
		}
	}

	metric := ""
	for _, key := range chartMetricCandidates {
		if counts[key] >= 2 {
			metric = key
			break
		}
	}
	if metric == "" {
		keys := make([]string, 0, len(counts))
		for key, n := range counts {
			if n >= 2 {
				keys = append(keys, key)
			}
		}
		if len(keys) == 0 {
			return "", nil, nil
		}
		sort.Strings(keys)
		metric = keys[0]
	}

	var values []float64
	var labels []string
	for _, p := range periods {
		if f, ok := asFloat(p.Extra[metric]); ok {
			values = append(values, f)
			labels = append(labels, fmt.Sprintf("%s %d", p.Month, p.Year))
		}
	}
	return metric, values, labels
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
