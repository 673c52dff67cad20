package agent

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline/internal/common"
)

func newEchoBridge(t *testing.T) *toolBridge {
	t.Helper()

	register := func(s *server.MCPServer) {
		s.AddTool(mcp.NewTool("structured"), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return &mcp.CallToolResult{
				Content:           []mcp.Content{mcp.NewTextContent("structured result")},
				StructuredContent: map[string]any{"link": "/reports/mock/a/b/c"},
			}, nil
		})
		s.AddTool(mcp.NewTool("text_json"), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return &mcp.CallToolResult{
				Content: []mcp.Content{mcp.NewTextContent(`{"count": 2}`)},
			}, nil
		})
		s.AddTool(mcp.NewTool("plain_text"), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return &mcp.CallToolResult{
				Content: []mcp.Content{mcp.NewTextContent("just words")},
			}, nil
		})
		s.AddTool(mcp.NewTool("boom"), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return &mcp.CallToolResult{
				Content: []mcp.Content{mcp.NewTextContent("it broke")},
				IsError: true,
			}, nil
		})
	}

	b := newToolBridge(register, common.NewSilentLogger())
	t.Cleanup(b.Close)
	return b
}

func TestBridgeUnwrapsStructuredContent(t *testing.T) {
	b := newEchoBridge(t)

	out, err := b.CallTool(context.Background(), "structured", nil)
	require.NoError(t, err)

	m, ok := out.(map[string]any)
	require.True(t, ok, "expected map output, got %T", out)
	assert.Equal(t, "/reports/mock/a/b/c", m["link"])
}

func TestBridgeParsesTextAsJSON(t *testing.T) {
	b := newEchoBridge(t)

	out, err := b.CallTool(context.Background(), "text_json", nil)
	require.NoError(t, err)

	m, ok := out.(map[string]any)
	require.True(t, ok, "expected map output, got %T", out)
	assert.Equal(t, float64(2), m["count"])
}

func TestBridgeFallsBackToRawText(t *testing.T) {
	b := newEchoBridge(t)

	out, err := b.CallTool(context.Background(), "plain_text", nil)
	require.NoError(t, err)
	assert.Equal(t, "just words", out)
}

func TestBridgeToolErrorBecomesGoError(t *testing.T) {
	b := newEchoBridge(t)

	_, err := b.CallTool(context.Background(), "boom", nil)
	require.Error(t, err)
	assert.Equal(t, "it broke", err.Error())
}

func TestBridgeReusesOneClient(t *testing.T) {
	b := newEchoBridge(t)

	_, err := b.CallTool(context.Background(), "plain_text", nil)
	require.NoError(t, err)
	first := b.client

	_, err = b.CallTool(context.Background(), "text_json", nil)
	require.NoError(t, err)
	assert.Same(t, first, b.client, "bridge must memoize its in-process client")
}
