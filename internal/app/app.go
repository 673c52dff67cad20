// Package app wires configuration, storage, clients, the chat agent, and
// the MCP server into one initialized application shared by both binaries.
package app

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ledgerline/ledgerline/internal/agent"
	"github.com/ledgerline/ledgerline/internal/clients/gemini"
	"github.com/ledgerline/ledgerline/internal/clients/openai"
	"github.com/ledgerline/ledgerline/internal/common"
	"github.com/ledgerline/ledgerline/internal/interfaces"
	"github.com/ledgerline/ledgerline/internal/storage/scenariofs"
	"github.com/ledgerline/ledgerline/internal/tools"
)

// App holds all initialized services. It is shared by cmd/ledgerline-server
// and cmd/ledgerline-mcp.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Store       *scenariofs.Store
	LLM         interfaces.LLMClient
	Agent       *agent.Agent
	MCPServer   *server.MCPServer
	StartupTime time.Time

	activeMu       sync.RWMutex
	activeScenario string
}

// NewApp initializes storage, the LLM client, the agent, and the MCP server.
// configPath may be empty, in which case LEDGERLINE_CONFIG and the default
// path are consulted.
func NewApp(configPath string) (*App, error) {
	if configPath == "" {
		configPath = os.Getenv("LEDGERLINE_CONFIG")
	}
	if configPath == "" {
		configPath = "config/ledgerline.toml"
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	store, err := scenariofs.NewStore(logger, config.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize scenario store: %w", err)
	}

	a := &App{
		Config:      config,
		Logger:      logger,
		Store:       store,
		StartupTime: time.Now(),
	}

	a.LLM = newLLMClient(config, logger)
	if a.LLM == nil {
		logger.Warn().Str("provider", config.Clients.Provider).Msg("LLM client not configured - chat will be unavailable")
	}

	a.Agent = agent.New(store,
		func() interfaces.LLMClient { return a.LLM },
		agent.WithActiveScenarioResolver(a.ActiveScenarioID),
		agent.WithLogger(logger),
	)

	a.MCPServer = server.NewMCPServer(
		"ledgerline",
		common.GetVersion(),
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	tools.Register(a.MCPServer, tools.Deps{
		Store:          store,
		ActiveScenario: a.ActiveScenarioID,
		Logger:         logger,
	})
	tools.RegisterDiagnostics(a.MCPServer)

	return a, nil
}

// newLLMClient builds the configured provider's client, or nil when no
// usable configuration exists.
func newLLMClient(config *common.Config, logger *common.Logger) interfaces.LLMClient {
	switch config.Clients.Provider {
	case "gemini":
		if config.Clients.Gemini.APIKey == "" {
			return nil
		}
		client, err := gemini.NewClient(context.Background(), config.Clients.Gemini.APIKey,
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithRateLimit(config.Clients.Gemini.RateLimit),
			gemini.WithLogger(logger),
		)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to create Gemini client")
			return nil
		}
		return client
	default:
		if config.Clients.OpenAI.APIKey == "" {
			return nil
		}
		client, err := openai.NewClient(config.Clients.OpenAI.APIKey,
			openai.WithModel(config.Clients.OpenAI.Model),
			openai.WithBaseURL(config.Clients.OpenAI.BaseURL),
			openai.WithRateLimit(config.Clients.OpenAI.RateLimit),
			openai.WithTimeout(config.Clients.OpenAI.GetTimeout()),
			openai.WithLogger(logger),
		)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to create OpenAI client")
			return nil
		}
		return client
	}
}

// ActiveScenarioID returns the active scenario id, or "" when unset. The
// id is owned by the HTTP layer; the agent and tools only read it through
// this accessor.
func (a *App) ActiveScenarioID() string {
	a.activeMu.RLock()
	defer a.activeMu.RUnlock()
	return a.activeScenario
}

// SetActiveScenarioID updates the active scenario id.
func (a *App) SetActiveScenarioID(id string) {
	a.activeMu.Lock()
	a.activeScenario = id
	a.activeMu.Unlock()
}

// Close releases the agent's tool bridge.
func (a *App) Close() {
	if a.Agent != nil {
		a.Agent.Close()
	}
}
