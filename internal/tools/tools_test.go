package tools

import (
	"strings"
	"testing"

	"github.com/ledgerline/ledgerline/internal/models"
)

func TestGetVersion(t *testing.T) {
	h := newTestHarness(t)

	result, err := h.callTool("get_version", nil)
	if err != nil {
		t.Fatalf("get_version failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("get_version returned error: %s", resultText(t, result))
	}
	if !strings.Contains(resultText(t, result), "Ledgerline MCP Server") {
		t.Errorf("Unexpected version text: %s", resultText(t, result))
	}
}

func TestListScenarios(t *testing.T) {
	h := newTestHarness(t)
	h.writeScenario("alpha", alphaScenario)
	h.writeScenario("beta", strings.Replace(alphaScenario, "Alpha", "Beta", 1))
	h.active = "alpha"

	result, err := h.callTool("list_scenarios", nil)
	if err != nil {
		t.Fatalf("list_scenarios failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("list_scenarios returned error: %s", resultText(t, result))
	}

	var summaries []models.ScenarioSummary
	decodeStructured(t, result, &summaries)
	if len(summaries) != 2 {
		t.Fatalf("Expected 2 scenarios, got %d", len(summaries))
	}
	for _, s := range summaries {
		if s.ID == "alpha" && !s.Active {
			t.Error("Expected alpha to be marked active")
		}
		if s.ID == "beta" && s.Active {
			t.Error("Expected beta to be inactive")
		}
	}
}

func TestListScenariosEmptyStore(t *testing.T) {
	h := newTestHarness(t)

	result, err := h.callTool("list_scenarios", nil)
	if err != nil {
		t.Fatalf("list_scenarios failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("list_scenarios returned error: %s", resultText(t, result))
	}

	var summaries []models.ScenarioSummary
	decodeStructured(t, result, &summaries)
	if len(summaries) != 0 {
		t.Errorf("Expected empty list, got %+v", summaries)
	}
}

func TestGetScenario(t *testing.T) {
	h := newTestHarness(t)
	h.writeScenario("alpha", alphaScenario)

	result, err := h.callTool("get_scenario", map[string]any{"id": "alpha"})
	if err != nil {
		t.Fatalf("get_scenario failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("get_scenario returned error: %s", resultText(t, result))
	}

	var scenario models.Scenario
	decodeStructured(t, result, &scenario)
	if scenario.ID != "alpha" || scenario.Name != "Alpha" {
		t.Errorf("Unexpected scenario: %+v", scenario)
	}
	if len(scenario.Current.ActionItems) != 1 {
		t.Errorf("Expected 1 action item, got %d", len(scenario.Current.ActionItems))
	}
}

func TestGetScenarioRequiresID(t *testing.T) {
	h := newTestHarness(t)

	result, err := h.callTool("get_scenario", nil)
	if err != nil {
		t.Fatalf("get_scenario failed: %v", err)
	}
	if !result.IsError {
		t.Fatal("Expected error result for missing id")
	}
}

func TestGetScenarioNotFound(t *testing.T) {
	h := newTestHarness(t)

	result, err := h.callTool("get_scenario", map[string]any{"id": "ghost"})
	if err != nil {
		t.Fatalf("get_scenario failed: %v", err)
	}
	if !result.IsError {
		t.Fatal("Expected error result for unknown scenario")
	}
	if !strings.Contains(resultText(t, result), "Error loading scenario") {
		t.Errorf("Unexpected error text: %s", resultText(t, result))
	}
}

func TestUnknownArgumentsRejected(t *testing.T) {
	h := newTestHarness(t)
	h.writeScenario("alpha", alphaScenario)

	result, err := h.callTool("get_scenario", map[string]any{"id": "alpha", "bogus": true, "also": 1})
	if err != nil {
		t.Fatalf("get_scenario failed: %v", err)
	}
	if !result.IsError {
		t.Fatal("Expected unknown arguments to be rejected")
	}
	text := resultText(t, result)
	if !strings.Contains(text, "unknown parameter(s): also, bogus") {
		t.Errorf("Expected sorted unknown parameter list, got: %s", text)
	}
}

func TestGetActionItemsActiveFallback(t *testing.T) {
	h := newTestHarness(t)
	h.writeScenario("alpha", alphaScenario)
	h.active = "alpha"

	result, err := h.callTool("get_action_items", nil)
	if err != nil {
		t.Fatalf("get_action_items failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("get_action_items returned error: %s", resultText(t, result))
	}

	var items []models.ActionItem
	decodeStructured(t, result, &items)
	if len(items) != 1 || items[0].ID != "LN-1" {
		t.Errorf("Unexpected action items: %+v", items)
	}
}

func TestGetActionItemsNoScenarioSelected(t *testing.T) {
	h := newTestHarness(t)

	result, err := h.callTool("get_action_items", nil)
	if err != nil {
		t.Fatalf("get_action_items failed: %v", err)
	}
	if !result.IsError {
		t.Fatal("Expected error when no id given and no active scenario")
	}
	if got := resultText(t, result); got != "Scenario id is required: pass 'id' or select an active scenario" {
		t.Errorf("Unexpected error text: %s", got)
	}
}

func TestGenerateReportMockup(t *testing.T) {
	h := newTestHarness(t)
	h.writeScenario("alpha", alphaScenario)

	result, err := h.callTool("generate_report_mockup", map[string]any{
		"id":         "alpha",
		"reportType": "borrower_statement",
	})
	if err != nil {
		t.Fatalf("generate_report_mockup failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("generate_report_mockup returned error: %s", resultText(t, result))
	}

	var mockup models.ReportMockup
	decodeStructured(t, result, &mockup)
	if mockup.ScenarioID != "alpha" || mockup.ReportType != "borrower_statement" {
		t.Errorf("Unexpected mockup: %+v", mockup)
	}
	if mockup.ReportID == "" || mockup.GeneratedAt == "" {
		t.Errorf("Expected report id and timestamp, got %+v", mockup)
	}
	wantPrefix := "/reports/mock/alpha/borrower_statement/"
	if !strings.HasPrefix(mockup.Link, wantPrefix) || mockup.Link == wantPrefix {
		t.Errorf("Expected link under %s, got %s", wantPrefix, mockup.Link)
	}
}

func TestGenerateReportMockupDefaultsType(t *testing.T) {
	h := newTestHarness(t)
	h.active = "alpha"

	result, err := h.callTool("generate_report_mockup", nil)
	if err != nil {
		t.Fatalf("generate_report_mockup failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("generate_report_mockup returned error: %s", resultText(t, result))
	}

	var mockup models.ReportMockup
	decodeStructured(t, result, &mockup)
	if mockup.ReportType != models.ReportTypeLateNotices {
		t.Errorf("Expected default report type, got %s", mockup.ReportType)
	}
}

func TestGenerateReportMockupInvalidType(t *testing.T) {
	h := newTestHarness(t)

	result, err := h.callTool("generate_report_mockup", map[string]any{
		"id":         "alpha",
		"reportType": "annual_summary",
	})
	if err == nil && !result.IsError {
		t.Fatal("Expected error for invalid report type")
	}
}
