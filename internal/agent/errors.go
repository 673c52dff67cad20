// Package agent implements the chat orchestrator: it routes tool calls to
// the scenario tools over an in-process MCP client/server pair, drives the
// LLM round trip, and post-processes the model's answer into deterministic
// call-to-action suggestions.
package agent

import "errors"

var (
	// ErrLLMNotConfigured is returned when no chat-completion client is
	// available. Terminal; the caller should surface it verbatim.
	ErrLLMNotConfigured = errors.New("LLM client is not configured")

	// ErrPortfolioDataRequired is returned when neither the requested tools
	// nor the caller-supplied snapshot yield current-period data.
	ErrPortfolioDataRequired = errors.New("portfolio data is required: no current period could be resolved")

	// ErrToolsNotReady is returned when the tool bridge failed to initialize.
	ErrToolsNotReady = errors.New("tool bridge is not initialized")
)
