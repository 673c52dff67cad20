package agent

import (
	"fmt"

	"github.com/ledgerline/ledgerline/internal/models"
)

// followUpCTA builds the send_message CTA for the first action item of a
// follow-up question.
func followUpCTA(item models.ActionItem) models.ChatCTA {
	name := item.DisplayName()
	return models.ChatCTA{
		Label: fmt.Sprintf("Message %s", name),
		Icon:  models.CTAIconMail,
		Action: models.CTAAction{
			Type:          models.CTATypeSendMessage,
			BorrowerID:    item.ID,
			BorrowerName:  name,
			BorrowerEmail: item.BorrowerEmail,
		},
	}
}

// viewReportCTA builds the view_report CTA pointing at a generated mockup.
func viewReportCTA(link string) models.ChatCTA {
	return models.ChatCTA{
		Label: "View report mockup",
		Icon:  models.CTAIconFile,
		Action: models.CTAAction{
			Type:       models.CTATypeViewReport,
			ReportType: models.ReportTypeBorrowerStatement,
			ReportLink: link,
		},
	}
}

// lateNoticesCTA is the alert fallback when mockup generation fails.
func lateNoticesCTA() models.ChatCTA {
	return models.ChatCTA{
		Label: "Prepare late notices",
		Icon:  models.CTAIconAlert,
		Action: models.CTAAction{
			Type: models.CTATypeLateNotices,
		},
	}
}

// linklessReportCTA is the second fallback for a failed mockup: a
// view_report CTA with no link, appended only when no view_report CTA
// exists yet.
func linklessReportCTA() models.ChatCTA {
	return models.ChatCTA{
		Label: "Open reports",
		Icon:  models.CTAIconFile,
		Action: models.CTAAction{
			Type:       models.CTATypeViewReport,
			ReportType: models.ReportTypeBorrowerStatement,
		},
	}
}

// filterCTAType keeps only CTAs of the given action type.
func filterCTAType(ctas []models.ChatCTA, ctaType string) []models.ChatCTA {
	var kept []models.ChatCTA
	for _, cta := range ctas {
		if cta.Action.Type == ctaType {
			kept = append(kept, cta)
		}
	}
	return kept
}

// hasViewReport reports whether any CTA in the list is view_report typed.
func hasViewReport(ctas []models.ChatCTA) bool {
	for _, cta := range ctas {
		if cta.Action.Type == models.CTATypeViewReport {
			return true
		}
	}
	return false
}

// dedupCTAs removes duplicates by identity key, keeping the first
// occurrence and preserving order.
func dedupCTAs(ctas []models.ChatCTA) []models.ChatCTA {
	seen := make(map[string]bool, len(ctas))
	var out []models.ChatCTA
	for _, cta := range ctas {
		key := cta.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, cta)
	}
	return out
}
