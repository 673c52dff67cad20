// ledgerline-mcp serves the tool surface over stdio for MCP clients that
// spawn the server as a subprocess.
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ledgerline/ledgerline/internal/app"
)

func main() {
	configPath := os.Getenv("LEDGERLINE_CONFIG")

	a, err := app.NewApp(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := server.ServeStdio(a.MCPServer); err != nil {
		fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
		os.Exit(1)
	}
}
