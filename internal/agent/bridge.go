package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ledgerline/ledgerline/internal/common"
)

// toolBridge routes call-by-name tool invocations through an in-process
// MCP client/server pair. The pair is created lazily, exactly once, and
// shared by every subsequent call on the owning agent. Calls are not
// serialized: each is an independent request/response round trip
// correlated by its own JSON-RPC id.
type toolBridge struct {
	register func(*server.MCPServer)
	logger   *common.Logger

	once    sync.Once
	client  *client.Client
	initErr error
}

func newToolBridge(register func(*server.MCPServer), logger *common.Logger) *toolBridge {
	return &toolBridge{register: register, logger: logger}
}

// ensureReady stands up the server, registers the tools, and connects an
// in-process client. The first call wins; a failed initialization is
// sticky and reported on every later call.
func (b *toolBridge) ensureReady(ctx context.Context) error {
	b.once.Do(func() {
		mcpServer := server.NewMCPServer(
			"ledgerline-agent",
			common.GetVersion(),
			server.WithToolCapabilities(true),
			server.WithRecovery(),
		)
		b.register(mcpServer)

		c, err := client.NewInProcessClient(mcpServer)
		if err != nil {
			b.initErr = fmt.Errorf("failed to create in-process client: %w", err)
			return
		}
		if err := c.Start(ctx); err != nil {
			b.initErr = fmt.Errorf("failed to start in-process client: %w", err)
			return
		}

		initReq := mcp.InitializeRequest{}
		initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
		initReq.Params.ClientInfo = mcp.Implementation{
			Name:    "ledgerline-chat",
			Version: common.GetVersion(),
		}
		if _, err := c.Initialize(ctx, initReq); err != nil {
			c.Close()
			b.initErr = fmt.Errorf("failed to initialize MCP session: %w", err)
			return
		}

		b.client = c
		b.logger.Debug().Msg("Tool bridge ready")
	})
	return b.initErr
}

// CallTool invokes a tool by name and unwraps its result envelope: the
// structured payload when present, else the text content parsed as JSON,
// else the raw text. Tool-level errors come back as Go errors; callers
// decide whether they are fatal.
func (b *toolBridge) CallTool(ctx context.Context, name string, args map[string]any) (any, error) {
	if err := b.ensureReady(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrToolsNotReady, err)
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := b.client.CallTool(ctx, req)
	if err != nil {
		return nil, err
	}
	if result.IsError {
		return nil, errors.New(firstText(result))
	}
	return unwrapResult(result), nil
}

// Close releases the in-process client, if one was ever created.
func (b *toolBridge) Close() {
	if b.client != nil {
		b.client.Close()
	}
}

// unwrapResult normalizes a tool result to plain maps/slices/strings.
// Structured payloads are JSON round-tripped so the orchestrator sees one
// shape regardless of how the transport serialized them.
func unwrapResult(result *mcp.CallToolResult) any {
	if result.StructuredContent != nil {
		if data, err := json.Marshal(result.StructuredContent); err == nil {
			var v any
			if json.Unmarshal(data, &v) == nil {
				return v
			}
		}
		return result.StructuredContent
	}

	text := firstText(result)
	var v any
	if err := json.Unmarshal([]byte(text), &v); err == nil {
		return v
	}
	return text
}

// firstText extracts the first text content block, or "".
func firstText(result *mcp.CallToolResult) string {
	for _, content := range result.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}
