package models

import "encoding/json"

// Chat message roles accepted in conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage is one turn of conversation history.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the input to the chat orchestrator. PortfolioData and
// HistoricalData are the caller's snapshot of the current and past periods;
// they are superseded by get_scenario output when that tool is requested
// and succeeds.
type ChatRequest struct {
	Question            string           `json:"question"`
	PortfolioData       map[string]any   `json:"portfolioData,omitempty"`
	HistoricalData      []map[string]any `json:"historicalData,omitempty"`
	ConversationHistory []ChatMessage    `json:"conversationHistory,omitempty"`
	ScenarioID          string           `json:"scenarioId,omitempty"`
	ToolIDs             []string         `json:"toolIds,omitempty"`
}

// ChatResult is the orchestrator's response.
type ChatResult struct {
	Answer      string          `json:"answer"`
	Suggestions []string        `json:"suggestions"`
	Chart       json.RawMessage `json:"chart"`
	CTAs        []ChatCTA       `json:"ctas"`
}

// CTA icon enumeration.
const (
	CTAIconMail  = "mail"
	CTAIconFile  = "file"
	CTAIconAlert = "alert"
	CTAIconSend  = "send"
)

// CTA action types.
const (
	CTATypeLateNotices = "late_notices"
	CTATypeSendMessage = "send_message"
	CTATypeViewReport  = "view_report"
)

// ChatCTA is a suggested user action attached to a chat answer.
type ChatCTA struct {
	Label  string    `json:"label"`
	Icon   string    `json:"icon"`
	Action CTAAction `json:"action"`
}

// CTAAction is the typed payload of a CTA. Fields are populated per type:
// send_message carries borrower identity, view_report carries report
// identity, late_notices carries nothing extra.
type CTAAction struct {
	Type          string `json:"type"`
	BorrowerID    string `json:"borrowerId,omitempty"`
	BorrowerEmail string `json:"borrowerEmail,omitempty"`
	BorrowerName  string `json:"borrowerName,omitempty"`
	ReportType    string `json:"reportType,omitempty"`
	ReportLink    string `json:"reportLink,omitempty"`
}

// DedupKey returns the identity used when merging CTA lists: type alone for
// late_notices, type plus borrower for send_message, type plus report type
// for view_report.
func (c ChatCTA) DedupKey() string {
	switch c.Action.Type {
	case CTATypeSendMessage:
		return c.Action.Type + ":" + c.Action.BorrowerID
	case CTATypeViewReport:
		return c.Action.Type + ":" + c.Action.ReportType
	default:
		return c.Action.Type
	}
}
