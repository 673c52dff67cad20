package tools

import (
	"fmt"
	"strings"

	"github.com/ledgerline/ledgerline/internal/models"
)

// formatScenarioList renders scenario summaries as markdown.
func formatScenarioList(summaries []models.ScenarioSummary) string {
	if len(summaries) == 0 {
		return "No scenarios available."
	}

	var sb strings.Builder
	sb.WriteString("# Available Scenarios\n\n")
	for _, s := range summaries {
		marker := ""
		if s.Active {
			marker = " [active]"
		}
		sb.WriteString(fmt.Sprintf("- **%s** (%s)%s: %s\n", s.Name, s.ID, marker, s.Description))
	}
	return sb.String()
}

// formatScenario renders a scenario overview as markdown.
func formatScenario(sc *models.Scenario) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Scenario: %s\n\n", sc.Name))
	sb.WriteString(fmt.Sprintf("%s\n\n", sc.Description))
	sb.WriteString(fmt.Sprintf("**Sentiment:** %s\n", sc.Sentiment))
	sb.WriteString(fmt.Sprintf("**Current period:** %s %d\n", sc.Current.Month, sc.Current.Year))
	sb.WriteString(fmt.Sprintf("**Historical periods:** %d\n", len(sc.Historical)))
	sb.WriteString(fmt.Sprintf("**Action items:** %d\n", len(sc.Current.ActionItems)))
	return sb.String()
}

// formatActionItems renders action items as a markdown table.
func formatActionItems(scenarioID string, items []models.ActionItem) string {
	if len(items) == 0 {
		return fmt.Sprintf("No action items for scenario '%s'.", scenarioID)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Action Items: %s\n\n", scenarioID))
	sb.WriteString("| Loan | Borrower | Amount | Days Past Due | Priority |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("| %s | %s | $%.2f | %d | %s |\n",
			item.ID, item.Borrower, item.Amount, item.DaysPastDue, item.Priority))
	}
	return sb.String()
}

// formatReportMockup renders report mockup metadata.
func formatReportMockup(m models.ReportMockup) string {
	return fmt.Sprintf("Report mockup generated\n\nScenario: %s\nType: %s\nReport ID: %s\nGenerated at: %s\nLink: %s",
		m.ScenarioID, m.ReportType, m.ReportID, m.GeneratedAt, m.Link)
}
