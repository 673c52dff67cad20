package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ledgerline/ledgerline/internal/common"
	"github.com/ledgerline/ledgerline/internal/interfaces"
	"github.com/ledgerline/ledgerline/internal/models"
	"github.com/ledgerline/ledgerline/internal/tools"
)

// Tool ids the orchestrator knows about.
const (
	ToolListScenarios        = "list_scenarios"
	ToolGetScenario          = "get_scenario"
	ToolGetActionItems       = "get_action_items"
	ToolGenerateReportMockup = "generate_report_mockup"
)

// Agent answers portfolio questions: it gathers tool context through the
// bridge, drives one LLM round trip, and post-processes the reply into the
// final chat result. An Agent holds no per-call state beyond the memoized
// bridge, so one instance serves concurrent requests.
type Agent struct {
	llmFactory     func() interfaces.LLMClient
	activeScenario func() string
	logger         *common.Logger
	bridge         *toolBridge
}

// Option configures the agent.
type Option func(*Agent)

// WithActiveScenarioResolver injects the zero-argument resolver for the
// active scenario id. The agent only reads it; ownership stays with the
// HTTP layer.
func WithActiveScenarioResolver(fn func() string) Option {
	return func(a *Agent) {
		a.activeScenario = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *common.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

// New creates an agent over the given scenario store. llmFactory is
// consulted on every chat call; returning nil means "not configured".
func New(store interfaces.ScenarioStore, llmFactory func() interfaces.LLMClient, opts ...Option) *Agent {
	a := &Agent{
		llmFactory: llmFactory,
		logger:     common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}

	deps := tools.Deps{
		Store:          store,
		ActiveScenario: a.resolveActiveScenario,
		Logger:         a.logger,
	}
	a.bridge = newToolBridge(func(s *server.MCPServer) {
		tools.Register(s, deps)
	}, a.logger)

	return a
}

// Close releases the tool bridge.
func (a *Agent) Close() {
	a.bridge.Close()
}

func (a *Agent) resolveActiveScenario() string {
	if a.activeScenario == nil {
		return ""
	}
	return a.activeScenario()
}

// llmReply is the JSON contract the model is instructed to honor.
type llmReply struct {
	Answer      string           `json:"answer"`
	Suggestions []string         `json:"suggestions"`
	Chart       json.RawMessage  `json:"chart,omitempty"`
	CTAs        []models.ChatCTA `json:"ctas,omitempty"`
}

// Chat is the end-to-end "answer a portfolio question" operation.
func (a *Agent) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResult, error) {
	var llm interfaces.LLMClient
	if a.llmFactory != nil {
		llm = a.llmFactory()
	}
	if llm == nil {
		return nil, ErrLLMNotConfigured
	}

	activeID := req.ScenarioID
	if activeID == "" {
		activeID = a.resolveActiveScenario()
	}

	toolIDs := req.ToolIDs
	if len(toolIDs) == 0 {
		toolIDs = []string{ToolGetActionItems}
	}

	// Tool calls are issued strictly in list order; later derivation steps
	// depend on get_scenario output being resolved first. Failures are
	// per-tool: one bad tool never aborts the chat.
	outputs := make(map[string]any, len(toolIDs))
	for _, toolID := range toolIDs {
		args := map[string]any{}
		if toolNeedsScenario(toolID) && activeID != "" {
			args["id"] = activeID
		}

		out, err := a.bridge.CallTool(ctx, toolID, args)
		if err != nil {
			a.logger.Warn().Err(err).Str("tool", toolID).Msg("Tool call failed")
			outputs[toolID] = map[string]any{"error": err.Error()}
			continue
		}
		outputs[toolID] = out
	}

	currentData, historicalData := deriveWorkingData(req, outputs)
	if currentData == nil {
		return nil, ErrPortfolioDataRequired
	}
	actionItems := deriveActionItems(outputs, currentData)

	system := buildSystemPrompt(currentData, historicalData, actionItems)
	raw, err := llm.ChatJSON(ctx, system, req.ConversationHistory, req.Question)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	var reply llmReply
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &reply); err != nil {
		return nil, fmt.Errorf("failed to parse model response as JSON: %w", err)
	}

	suggestions := reply.Suggestions
	if len(suggestions) == 0 {
		suggestions = fallbackSuggestions()
	}

	reportIntent := isReportQuestion(req.Question)

	modelCTAs := reply.CTAs
	if reportIntent {
		// Report answers only ever surface report CTAs from the model;
		// everything else would duplicate the deterministic path.
		modelCTAs = filterCTAType(modelCTAs, models.CTATypeViewReport)
	}

	var deterministic []models.ChatCTA
	if isFollowUpQuestion(req.Question) && len(actionItems) > 0 {
		deterministic = append(deterministic, followUpCTA(actionItems[0]))
	}

	// CTAs produced by the report path specifically; when any of them is a
	// view_report, they replace the merged list outright.
	var reportCTAs []models.ChatCTA
	if reportIntent && activeID != "" {
		out, err := a.bridge.CallTool(ctx, ToolGenerateReportMockup, map[string]any{
			"id":         activeID,
			"reportType": models.ReportTypeBorrowerStatement,
		})
		if err != nil {
			a.logger.Warn().Err(err).Str("scenario", activeID).Msg("Report mockup generation failed; using fallback CTAs")
			reportCTAs = append(reportCTAs, lateNoticesCTA())
			if !hasViewReport(modelCTAs) && !hasViewReport(deterministic) {
				reportCTAs = append(reportCTAs, linklessReportCTA())
			}
		} else {
			reportCTAs = append(reportCTAs, viewReportCTA(extractLink(out)))
		}
	}
	deterministic = append(deterministic, reportCTAs...)

	var answerPrefix string
	if isListScenariosQuestion(req.Question) {
		out, err := a.bridge.CallTool(ctx, ToolListScenarios, map[string]any{})
		if err != nil {
			// Best effort: the scenario list never blocks the answer.
			a.logger.Warn().Err(err).Msg("Scenario listing failed; answering without it")
		} else {
			answerPrefix = formatAvailableScenarios(decodeSummaries(out))
		}
	}

	merged := dedupCTAs(append(append([]models.ChatCTA{}, modelCTAs...), deterministic...))
	if hasViewReport(reportCTAs) {
		merged = reportCTAs
	}

	answer := reply.Answer
	if answerPrefix != "" {
		answer = answerPrefix + "\n\n" + answer
	}

	return &models.ChatResult{
		Answer:      normalizeAnswer(answer),
		Suggestions: suggestions,
		Chart:       reply.Chart,
		CTAs:        merged,
	}, nil
}

// toolNeedsScenario reports whether a tool takes a scenario id argument.
func toolNeedsScenario(toolID string) bool {
	return toolID == ToolGetScenario || toolID == ToolGetActionItems
}

// deriveWorkingData picks the current and historical period data: scenario
// tool output when available, else the caller's snapshot.
func deriveWorkingData(req models.ChatRequest, outputs map[string]any) (map[string]any, []map[string]any) {
	current := req.PortfolioData
	historical := req.HistoricalData

	if sc, ok := outputs[ToolGetScenario].(map[string]any); ok && sc["error"] == nil {
		if c, ok := sc["current"].(map[string]any); ok {
			current = c
		}
		if h, ok := sc["historical"].([]any); ok {
			periods := make([]map[string]any, 0, len(h))
			for _, p := range h {
				if m, ok := p.(map[string]any); ok {
					periods = append(periods, m)
				}
			}
			historical = periods
		}
	}
	return current, historical
}

// deriveActionItems resolves action items: get_action_items output when it
// succeeded, else the current period's actionItems field, else none. A
// tool that errored decodes to nothing and falls through.
func deriveActionItems(outputs map[string]any, current map[string]any) []models.ActionItem {
	if out, ok := outputs[ToolGetActionItems]; ok {
		if items, ok := decodeActionItems(out); ok {
			return items
		}
	}
	if raw, ok := current["actionItems"]; ok {
		if items, ok := decodeActionItems(raw); ok {
			return items
		}
	}
	return nil
}

func decodeActionItems(v any) ([]models.ActionItem, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	var items []models.ActionItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}
	return items, true
}

func decodeSummaries(v any) []models.ScenarioSummary {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var summaries []models.ScenarioSummary
	if err := json.Unmarshal(data, &summaries); err != nil {
		return nil
	}
	return summaries
}

// extractLink pulls the link field from a report mockup tool output.
func extractLink(v any) string {
	if m, ok := v.(map[string]any); ok {
		if link, ok := m["link"].(string); ok {
			return link
		}
	}
	return ""
}
