// Package openai provides the OpenAI chat-completions client
package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gopenai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/ledgerline/ledgerline/internal/common"
	"github.com/ledgerline/ledgerline/internal/interfaces"
	"github.com/ledgerline/ledgerline/internal/models"
)

const (
	DefaultModel     = "gpt-4o-mini"
	DefaultRateLimit = 2                // requests per second
	DefaultTimeout   = 60 * time.Second // per-request HTTP timeout
)

// Client implements the LLMClient interface over the OpenAI API.
type Client struct {
	client  *gopenai.Client
	model   string
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL points the client at a proxy or compatible endpoint
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithRateLimit sets the request rate limit in requests per second
func WithRateLimit(perSecond int) ClientOption {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithTimeout sets the per-request HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new OpenAI client
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	c := &Client{
		model:   DefaultModel,
		timeout: DefaultTimeout,
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		logger:  common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	config := gopenai.DefaultConfig(apiKey)
	if c.baseURL != "" {
		config.BaseURL = c.baseURL
	}
	config.HTTPClient = &http.Client{Timeout: c.timeout}
	c.client = gopenai.NewClientWithConfig(config)

	return c, nil
}

// ChatJSON sends the system prompt, conversation history, and question, and
// returns the model's raw reply. JSON response format is requested but the
// reply is still returned untouched; parsing is the caller's job.
func (c *Client) ChatJSON(ctx context.Context, system string, history []models.ChatMessage, question string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait failed: %w", err)
	}

	messages := make([]gopenai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, gopenai.ChatCompletionMessage{
		Role:    gopenai.ChatMessageRoleSystem,
		Content: system,
	})
	for _, msg := range history {
		messages = append(messages, gopenai.ChatCompletionMessage{
			Role:    chatRole(msg.Role),
			Content: msg.Content,
		})
	}
	messages = append(messages, gopenai.ChatCompletionMessage{
		Role:    gopenai.ChatMessageRoleUser,
		Content: question,
	})

	c.logger.Debug().Str("model", c.model).Int("messages", len(messages)).Msg("Requesting chat completion")

	resp, err := c.client.CreateChatCompletion(ctx, gopenai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
		ResponseFormat: &gopenai.ChatCompletionResponseFormat{
			Type: gopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// chatRole maps a history role to the OpenAI role constant, defaulting
// unknown roles to user.
func chatRole(role string) string {
	switch role {
	case models.RoleAssistant:
		return gopenai.ChatMessageRoleAssistant
	case models.RoleSystem:
		return gopenai.ChatMessageRoleSystem
	default:
		return gopenai.ChatMessageRoleUser
	}
}

// Ensure Client implements LLMClient
var _ interfaces.LLMClient = (*Client)(nil)
