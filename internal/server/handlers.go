package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerline/ledgerline/internal/agent"
	"github.com/ledgerline/ledgerline/internal/models"
)

// --- Chat handlers ---

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.ChatRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		WriteError(w, http.StatusBadRequest, "Question is required")
		return
	}

	result, err := s.app.Agent.Chat(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, agent.ErrLLMNotConfigured):
			WriteError(w, http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, agent.ErrPortfolioDataRequired):
			WriteError(w, http.StatusBadRequest, err.Error())
		default:
			WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Chat error: %v", err))
		}
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// --- Scenario handlers ---

func (s *Server) handleScenarioList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	scenarios, err := s.app.Store.ListScenarios(s.app.ActiveScenarioID())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error listing scenarios: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"scenarios": scenarios,
	})
}

// routeScenarios dispatches /api/scenarios/{id} and /api/scenarios/{id}/action-items.
func (s *Server) routeScenarios(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/scenarios/")
	if rest == "" {
		s.handleScenarioList(w, r)
		return
	}

	if strings.HasSuffix(rest, "/action-items") {
		s.handleScenarioActionItems(w, r, PathParam(r, "/api/scenarios/", "/action-items"))
		return
	}
	if strings.Contains(rest, "/") {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	s.handleScenarioGet(w, r, rest)
}

func (s *Server) handleScenarioGet(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	scenario, err := s.app.Store.LoadScenario(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Scenario not found: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, scenario)
}

func (s *Server) handleScenarioActionItems(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	scenario, err := s.app.Store.LoadScenario(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Scenario not found: %v", err))
		return
	}

	items := scenario.Current.ActionItems
	if items == nil {
		items = []models.ActionItem{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"scenarioId":  scenario.ID,
		"actionItems": items,
	})
}

// handleActiveScenario handles GET and PUT /api/scenarios/active. The active
// scenario id lives on the app and is read by the agent and tools.
func (s *Server) handleActiveScenario(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"active": s.app.ActiveScenarioID(),
		})
	case http.MethodPut:
		var req struct {
			ID string `json:"id"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if req.ID != "" {
			// Setting an unloadable scenario would break every later chat.
			if _, err := s.app.Store.LoadScenario(req.ID); err != nil {
				WriteError(w, http.StatusNotFound, fmt.Sprintf("Scenario not found: %v", err))
				return
			}
		}
		s.app.SetActiveScenarioID(req.ID)
		s.logger.Info().Str("scenario", req.ID).Msg("Active scenario changed")
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"active": req.ID,
		})
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}

// --- Message handlers ---

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		messages, err := s.app.Store.ListMessages()
		if err != nil {
			WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error listing messages: %v", err))
			return
		}
		if messages == nil {
			messages = []models.Message{}
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"messages": messages,
		})
	case http.MethodPost:
		var req struct {
			BorrowerID    string `json:"borrowerId"`
			BorrowerName  string `json:"borrowerName"`
			BorrowerEmail string `json:"borrowerEmail"`
			Subject       string `json:"subject"`
			Body          string `json:"body"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Body) == "" {
			WriteError(w, http.StatusBadRequest, "Subject and body are required")
			return
		}

		msg := models.Message{
			ID:            uuid.New().String(),
			BorrowerID:    req.BorrowerID,
			BorrowerName:  req.BorrowerName,
			BorrowerEmail: req.BorrowerEmail,
			Subject:       req.Subject,
			Body:          req.Body,
			SentAt:        time.Now().UTC(),
		}
		if err := s.app.Store.SaveMessage(msg); err != nil {
			WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error saving message: %v", err))
			return
		}
		WriteJSON(w, http.StatusCreated, msg)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}
