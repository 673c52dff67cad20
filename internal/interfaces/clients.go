// Package interfaces defines the service and client contracts used across Ledgerline.
package interfaces

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/models"
)

// LLMClient is the chat-completion contract the orchestrator depends on.
// Implementations send the system prompt, the prior conversation, and the
// user question, and return the model's raw text reply. The reply is
// expected (but not guaranteed) to be a JSON document; parsing it is the
// caller's problem.
type LLMClient interface {
	ChatJSON(ctx context.Context, system string, history []models.ChatMessage, question string) (string, error)
}
