package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ledgerline/ledgerline/internal/common"
	"github.com/ledgerline/ledgerline/internal/models"
)

// handleGetVersion implements the get_version tool
func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fmt.Sprintf("Ledgerline MCP Server\nVersion: %s\nBuild: %s\nCommit: %s\nStatus: OK",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())
		return textResult(result), nil
	}
}

// handleListScenarios implements the list_scenarios tool
func handleListScenarios(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if res := rejectUnknownArgs(request); res != nil {
			return res, nil
		}

		summaries, err := d.Store.ListScenarios(d.activeScenarioID())
		if err != nil {
			d.Logger.Error().Err(err).Msg("List scenarios failed")
			return errorResult(fmt.Sprintf("Error listing scenarios: %v", err)), nil
		}
		if summaries == nil {
			summaries = []models.ScenarioSummary{}
		}

		return structuredResult(summaries, formatScenarioList(summaries)), nil
	}
}

// handleGetScenario implements the get_scenario tool
func handleGetScenario(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if res := rejectUnknownArgs(request, "id"); res != nil {
			return res, nil
		}

		id, err := request.RequireString("id")
		if err != nil || id == "" {
			return errorResult("Error: id parameter is required and must be a non-empty string"), nil
		}

		scenario, err := d.Store.LoadScenario(id)
		if err != nil {
			d.Logger.Error().Err(err).Str("scenario", id).Msg("Get scenario failed")
			return errorResult(fmt.Sprintf("Error loading scenario: %v", err)), nil
		}

		return structuredResult(scenario, formatScenario(scenario)), nil
	}
}

// handleGetActionItems implements the get_action_items tool
func handleGetActionItems(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if res := rejectUnknownArgs(request, "id"); res != nil {
			return res, nil
		}

		id := request.GetString("id", "")
		if id == "" {
			id = d.activeScenarioID()
		}
		if id == "" {
			return errorResult("Scenario id is required: pass 'id' or select an active scenario"), nil
		}

		scenario, err := d.Store.LoadScenario(id)
		if err != nil {
			d.Logger.Error().Err(err).Str("scenario", id).Msg("Get action items failed")
			return errorResult(fmt.Sprintf("Error loading scenario: %v", err)), nil
		}

		items := scenario.Current.ActionItems
		if items == nil {
			items = []models.ActionItem{}
		}

		return structuredResult(items, formatActionItems(scenario.ID, items)), nil
	}
}

// handleGenerateReportMockup implements the generate_report_mockup tool
func handleGenerateReportMockup(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if res := rejectUnknownArgs(request, "id", "reportType"); res != nil {
			return res, nil
		}

		id := request.GetString("id", "")
		if id == "" {
			id = d.activeScenarioID()
		}
		if id == "" {
			return errorResult("Scenario id is required: pass 'id' or select an active scenario"), nil
		}

		reportType := request.GetString("reportType", models.ReportTypeLateNotices)
		if !models.ValidReportType(reportType) {
			return errorResult(fmt.Sprintf("Error: reportType '%s' is not one of late_notices, borrower_statement, escrow_analysis", reportType)), nil
		}

		mockup := models.ReportMockup{
			ReportID:    newReportID(),
			ScenarioID:  id,
			ReportType:  reportType,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		}
		mockup.Link = models.MockReportLink(mockup.ScenarioID, mockup.ReportType, mockup.ReportID)

		d.Logger.Info().Str("scenario", id).Str("type", reportType).Str("report", mockup.ReportID).Msg("Report mockup generated")
		return structuredResult(mockup, formatReportMockup(mockup)), nil
	}
}

// newReportID returns a UUID, or a timestamp-based id when UUID generation
// fails. The fallback only needs to be unique within a process lifetime.
func newReportID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	return fmt.Sprintf("rpt-%d-%04d", time.Now().UnixNano(), time.Now().Nanosecond()%10000)
}

// rejectUnknownArgs returns an error result when the request carries
// argument keys outside the allowed set. Tool inputs are strict so that
// caller typos fail loudly instead of being silently ignored.
func rejectUnknownArgs(request mcp.CallToolRequest, allowed ...string) *mcp.CallToolResult {
	args := request.GetArguments()
	if len(args) == 0 {
		return nil
	}

	var unknown []string
	for key := range args {
		ok := false
		for _, a := range allowed {
			if key == a {
				ok = true
				break
			}
		}
		if !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return errorResult(fmt.Sprintf("Error: unknown parameter(s): %s", strings.Join(unknown, ", ")))
}

// Result helpers

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// structuredResult carries both a human-readable rendering and a structured
// payload; the bridge on the client side prefers the structured form.
func structuredResult(payload any, text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
		StructuredContent: payload,
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
