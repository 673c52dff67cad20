// Package models defines the data structures shared across Ledgerline services.
package models

import (
	"encoding/json"
	"strings"
)

// DefaultSentiment is applied when a scenario file omits the sentiment field.
const DefaultSentiment = "neutral"

// Scenario is a named snapshot of portfolio state loaded from a JSON file.
// The ID is derived from the filename and is not part of the file itself.
type Scenario struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Sentiment   string   `json:"sentiment,omitempty"`
	Current     Period   `json:"current"`
	Historical  []Period `json:"historical"`
}

// ScenarioSummary is the listing view of a scenario.
type ScenarioSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Sentiment   string `json:"sentiment"`
	Active      bool   `json:"active"`
}

// Period is one month's financial snapshot. Month and Year are the only
// contractual fields; everything else (cash flow, delinquency breakdown,
// trends) is carried in Extra and passed through untyped to the prompt
// builder. ActionItems are lifted out because the CTA pipeline reads them.
type Period struct {
	Month       string
	Year        int
	ActionItems []ActionItem
	Extra       map[string]any
}

// UnmarshalJSON splits known fields from the open extension map. Shape
// validation (month present, year numeric) is the store's responsibility,
// so absent or oddly typed fields do not fail here.
func (p *Period) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Period{}
	for key, val := range raw {
		switch key {
		case "month":
			var s string
			if err := json.Unmarshal(val, &s); err == nil {
				p.Month = s
			}
		case "year":
			var n float64
			if err := json.Unmarshal(val, &n); err == nil {
				p.Year = int(n)
			}
		case "actionItems":
			var items []ActionItem
			if err := json.Unmarshal(val, &items); err == nil {
				p.ActionItems = items
			}
		default:
			var v any
			if err := json.Unmarshal(val, &v); err != nil {
				return err
			}
			if p.Extra == nil {
				p.Extra = make(map[string]any)
			}
			p.Extra[key] = v
		}
	}
	return nil
}

// MarshalJSON reassembles known fields and the extension map into one object.
func (p Period) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Extra)+3)
	for k, v := range p.Extra {
		m[k] = v
	}
	m["month"] = p.Month
	m["year"] = p.Year
	if p.ActionItems != nil {
		m["actionItems"] = p.ActionItems
	}
	return json.Marshal(m)
}

// ActionItem is a delinquency follow-up entry on a period.
type ActionItem struct {
	ID            string  `json:"id"`
	Borrower      string  `json:"borrower"`
	BorrowerEmail string  `json:"borrowerEmail,omitempty"`
	Amount        float64 `json:"amount"`
	DaysPastDue   int     `json:"daysPastDue"`
	Priority      string  `json:"priority"`
}

// DisplayName returns the borrower's display name. Borrower names follow a
// "Last, First" convention; the display name is the part before the first
// comma, or the full string when there is none.
func (a ActionItem) DisplayName() string {
	if idx := strings.Index(a.Borrower, ","); idx >= 0 {
		return strings.TrimSpace(a.Borrower[:idx])
	}
	return a.Borrower
}
