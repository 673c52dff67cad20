package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ledgerline/ledgerline/internal/models"
)

// buildSystemPrompt assembles the system prompt: formatted current and
// historical metrics, action-item summaries, and the fixed response
// contract (JSON-only reply with answer/suggestions/chart/ctas).
func buildSystemPrompt(current map[string]any, historical []map[string]any, actionItems []models.ActionItem) string {
	var sb strings.Builder

	sb.WriteString(`You are a mortgage servicing portfolio assistant. You answer questions about
cash flow, delinquency, and borrower follow-up using the portfolio data below.

`)

	sb.WriteString("CURRENT PERIOD")
	if label := periodLabel(current); label != "" {
		sb.WriteString(" (" + label + ")")
	}
	sb.WriteString(":\n")
	sb.WriteString(compactJSON(current))
	sb.WriteString("\n\n")

	if len(historical) > 0 {
		sb.WriteString(fmt.Sprintf("HISTORICAL PERIODS (%d, oldest first):\n", len(historical)))
		for _, period := range historical {
			if label := periodLabel(period); label != "" {
				sb.WriteString("- " + label + ": ")
			} else {
				sb.WriteString("- ")
			}
			sb.WriteString(compactJSON(period))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(actionItems) > 0 {
		sb.WriteString("ACTION ITEMS:\n")
		for _, item := range actionItems {
			sb.WriteString(fmt.Sprintf("- %s: %s, $%.2f, %d days past due, priority %s\n",
				item.ID, item.Borrower, item.Amount, item.DaysPastDue, item.Priority))
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString("ACTION ITEMS: none\n\n")
	}

	sb.WriteString(`RESPONSE FORMAT:
Reply with a single JSON object and nothing else. No markdown code fences.
Fields:
- "answer": your answer in markdown. Use short paragraphs and "- " bullet lists.
- "suggestions": 3 short follow-up questions the user might ask next.
- "chart": optional. When a chart would help, an object {"type": "line"|"bar", "title": string, "labels": [string], "values": [number]}; otherwise null.
- "ctas": optional array of suggested actions. Each is {"label": string, "icon": "mail"|"file"|"alert"|"send", "action": {"type": "late_notices"|"send_message"|"view_report", ...}}. For send_message include borrowerId, borrowerName, borrowerEmail. For view_report include reportType.

Ground every figure in the data above. If the data does not answer the question, say so.`)

	return sb.String()
}

// periodLabel formats "Month Year" from a raw period map, or "".
func periodLabel(period map[string]any) string {
	month, _ := period["month"].(string)
	if month == "" {
		return ""
	}
	if year, ok := period["year"].(float64); ok {
		return fmt.Sprintf("%s %d", month, int(year))
	}
	return month
}

// compactJSON renders a value as single-line JSON for prompt embedding.
func compactJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// fallbackSuggestions is used when the model returns no suggestions.
func fallbackSuggestions() []string {
	return []string{
		"How is cash flow trending?",
		"Which borrowers are furthest past due?",
		"Summarize the delinquency breakdown.",
	}
}
