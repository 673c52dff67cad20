// Package tools defines the MCP tool surface over the scenario store:
// scenario lookup tools plus the report mockup generator. The same
// registrations back both the chat agent's in-process bridge and the
// stdio MCP binary.
package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ledgerline/ledgerline/internal/common"
	"github.com/ledgerline/ledgerline/internal/interfaces"
)

// Deps carries everything the tool handlers need. ActiveScenario is a
// zero-argument resolver owned by the HTTP layer; it may be nil when no
// notion of an active scenario exists (e.g. the stdio binary).
type Deps struct {
	Store          interfaces.ScenarioStore
	ActiveScenario func() string
	Logger         *common.Logger
}

// activeScenarioID resolves the active scenario id, or "" when unset.
func (d Deps) activeScenarioID() string {
	if d.ActiveScenario == nil {
		return ""
	}
	return d.ActiveScenario()
}

// Register adds the scenario and action tools to the server.
func Register(s *server.MCPServer, d Deps) {
	s.AddTool(createListScenariosTool(), handleListScenarios(d))
	s.AddTool(createGetScenarioTool(), handleGetScenario(d))
	s.AddTool(createGetActionItemsTool(), handleGetActionItems(d))
	s.AddTool(createGenerateReportMockupTool(), handleGenerateReportMockup(d))
}

// RegisterDiagnostics adds the get_version connectivity tool. Only the
// stdio binary exposes it; the chat bridge has no use for it.
func RegisterDiagnostics(s *server.MCPServer) {
	s.AddTool(createGetVersionTool(), handleGetVersion())
}

// createGetVersionTool returns the get_version tool definition
func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the Ledgerline MCP server version and status. Use this to verify connectivity."),
	)
}

// createListScenariosTool returns the list_scenarios tool definition
func createListScenariosTool() mcp.Tool {
	return mcp.NewTool("list_scenarios",
		mcp.WithDescription("List all available portfolio scenarios with their descriptions and which one is currently active."),
	)
}

// createGetScenarioTool returns the get_scenario tool definition
func createGetScenarioTool() mcp.Tool {
	return mcp.NewTool("get_scenario",
		mcp.WithDescription("Get the full snapshot for a scenario: current period, historical periods, and action items."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Scenario id (the filename without extension, e.g. 'baseline')"),
		),
	)
}

// createGetActionItemsTool returns the get_action_items tool definition
func createGetActionItemsTool() mcp.Tool {
	return mcp.NewTool("get_action_items",
		mcp.WithDescription("Get the delinquency action items for a scenario's current period. Falls back to the active scenario when id is omitted."),
		mcp.WithString("id",
			mcp.Description("Scenario id. Omit to use the active scenario."),
		),
	)
}

// createGenerateReportMockupTool returns the generate_report_mockup tool definition
func createGenerateReportMockupTool() mcp.Tool {
	return mcp.NewTool("generate_report_mockup",
		mcp.WithDescription("Generate a mock report for a scenario and return its preview link."),
		mcp.WithString("id",
			mcp.Description("Scenario id. Omit to use the active scenario."),
		),
		mcp.WithString("reportType",
			mcp.Description("Report type to mock up (default: late_notices)"),
			mcp.Enum("late_notices", "borrower_statement", "escrow_analysis"),
		),
	)
}
