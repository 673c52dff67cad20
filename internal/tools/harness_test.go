package tools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ledgerline/ledgerline/internal/common"
	"github.com/ledgerline/ledgerline/internal/storage/scenariofs"
)

const alphaScenario = `{
  "name": "Alpha",
  "description": "Test scenario",
  "current": {
    "month": "August",
    "year": 2026,
    "cashFlow": 482000,
    "actionItems": [
      {"id": "LN-1", "borrower": "Anderson, Paul", "borrowerEmail": "paul@example.com", "amount": 1200.5, "daysPastDue": 45, "priority": "high"}
    ]
  },
  "historical": [
    {"month": "July", "year": 2026, "cashFlow": 464000}
  ]
}`

// testHarness provides an in-process MCP client connected to the tool
// surface over a real file-backed store in a temp directory.
type testHarness struct {
	t      *testing.T
	client *client.Client
	store  *scenariofs.Store
	active string
}

// newTestHarness creates the tool server and an initialized in-process client.
func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	logger := common.NewSilentLogger()
	store, err := scenariofs.NewStore(logger, t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	h := &testHarness{t: t, store: store}

	mcpServer := server.NewMCPServer(
		"ledgerline-test",
		"test",
		server.WithToolCapabilities(true),
	)
	Register(mcpServer, Deps{
		Store:          store,
		ActiveScenario: func() string { return h.active },
		Logger:         logger,
	})
	RegisterDiagnostics(mcpServer)

	c, err := client.NewInProcessClient(mcpServer)
	if err != nil {
		t.Fatalf("Failed to create in-process client: %v", err)
	}

	ctx := context.Background()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Failed to start client: %v", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "tools-test",
		Version: "1.0.0",
	}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		c.Close()
		t.Fatalf("Failed to initialize MCP: %v", err)
	}

	h.client = c
	t.Cleanup(func() { c.Close() })
	return h
}

// writeScenario writes a scenario document into the harness store.
func (h *testHarness) writeScenario(id, content string) {
	h.t.Helper()
	path := filepath.Join(h.store.DataDir(), id+".json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		h.t.Fatalf("Failed to write scenario file: %v", err)
	}
}

// callTool invokes an MCP tool by name with the given arguments.
func (h *testHarness) callTool(name string, args map[string]any) (*mcp.CallToolResult, error) {
	h.t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return h.client.CallTool(context.Background(), req)
}

// resultText returns the first text content block of a result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	for _, content := range result.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	t.Fatal("Result has no text content")
	return ""
}

// decodeStructured unmarshals the structured payload of a result into dest.
func decodeStructured(t *testing.T, result *mcp.CallToolResult, dest any) {
	t.Helper()
	if result.StructuredContent == nil {
		t.Fatal("Result has no structured content")
	}
	data, err := json.Marshal(result.StructuredContent)
	if err != nil {
		t.Fatalf("Failed to marshal structured content: %v", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("Failed to decode structured content: %v", err)
	}
}
