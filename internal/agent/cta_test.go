package agent

import (
	"testing"

	"github.com/ledgerline/ledgerline/internal/models"
)

func TestFollowUpCTA(t *testing.T) {
	item := models.ActionItem{
		ID:            "LN-1",
		Borrower:      "Anderson, Paul",
		BorrowerEmail: "paul@example.com",
		Amount:        1200.5,
		DaysPastDue:   45,
		Priority:      "high",
	}

	cta := followUpCTA(item)
	if cta.Label != "Message Anderson" {
		t.Errorf("Unexpected label: %s", cta.Label)
	}
	if cta.Icon != models.CTAIconMail {
		t.Errorf("Unexpected icon: %s", cta.Icon)
	}
	if cta.Action.Type != models.CTATypeSendMessage || cta.Action.BorrowerID != "LN-1" {
		t.Errorf("Unexpected action: %+v", cta.Action)
	}
	if cta.Action.BorrowerName != "Anderson" || cta.Action.BorrowerEmail != "paul@example.com" {
		t.Errorf("Unexpected borrower fields: %+v", cta.Action)
	}
}

func TestDedupCTAs(t *testing.T) {
	ctas := []models.ChatCTA{
		{Label: "first", Action: models.CTAAction{Type: models.CTATypeSendMessage, BorrowerID: "LN-1"}},
		{Label: "dup borrower", Action: models.CTAAction{Type: models.CTATypeSendMessage, BorrowerID: "LN-1"}},
		{Label: "other borrower", Action: models.CTAAction{Type: models.CTATypeSendMessage, BorrowerID: "LN-2"}},
		{Label: "notices", Action: models.CTAAction{Type: models.CTATypeLateNotices}},
		{Label: "dup notices", Action: models.CTAAction{Type: models.CTATypeLateNotices}},
		{Label: "report", Action: models.CTAAction{Type: models.CTATypeViewReport, ReportType: "borrower_statement", ReportLink: "/a"}},
		{Label: "dup report", Action: models.CTAAction{Type: models.CTATypeViewReport, ReportType: "borrower_statement", ReportLink: "/b"}},
	}

	out := dedupCTAs(ctas)
	if len(out) != 4 {
		t.Fatalf("Expected 4 CTAs after dedup, got %d: %+v", len(out), out)
	}
	// First occurrence wins, order preserved.
	if out[0].Label != "first" || out[1].Label != "other borrower" || out[2].Label != "notices" || out[3].Label != "report" {
		t.Errorf("Unexpected dedup order: %+v", out)
	}
}

func TestFilterCTAType(t *testing.T) {
	ctas := []models.ChatCTA{
		{Action: models.CTAAction{Type: models.CTATypeSendMessage, BorrowerID: "LN-1"}},
		{Action: models.CTAAction{Type: models.CTATypeViewReport, ReportType: "late_notices"}},
		{Action: models.CTAAction{Type: models.CTATypeLateNotices}},
	}

	out := filterCTAType(ctas, models.CTATypeViewReport)
	if len(out) != 1 || out[0].Action.Type != models.CTATypeViewReport {
		t.Errorf("Unexpected filter result: %+v", out)
	}
}

func TestHasViewReport(t *testing.T) {
	if hasViewReport(nil) {
		t.Error("Expected false for empty list")
	}
	if hasViewReport([]models.ChatCTA{{Action: models.CTAAction{Type: models.CTATypeLateNotices}}}) {
		t.Error("Expected false without view_report")
	}
	if !hasViewReport([]models.ChatCTA{linklessReportCTA()}) {
		t.Error("Expected true for linkless report CTA")
	}
}
