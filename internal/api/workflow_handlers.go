package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/opsdesk/helpdesk-engine/internal/decision"
	"github.com/opsdesk/helpdesk-engine/internal/workflow"
)

// Workflow handlers. Each wraps one automated operation of the engine;
// sentinel errors map to 404/400, everything else is an opaque 500.

type ticketRequest struct {
	TicketID string `json:"ticket_id"`
}

func (s *Server) handleAutoRouting(w http.ResponseWriter, r *http.Request) {
	var req ticketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.TicketID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "ticket_id is required")
		return
	}

	result, err := s.engine.AutoRoute(r.Context(), req.TicketID)
	if err != nil {
		s.respondWorkflowError(w, err, "ai-auto-routing")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handlePredictiveSLA(w http.ResponseWriter, r *http.Request) {
	var req ticketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.TicketID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "ticket_id is required")
		return
	}

	result, err := s.engine.PredictSLA(r.Context(), req.TicketID)
	if err != nil {
		s.respondWorkflowError(w, err, "predictive-sla-alerts")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleEscalation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TicketID string `json:"ticket_id"`
		Reason   string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.TicketID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "ticket_id is required")
		return
	}

	result, err := s.engine.Escalate(r.Context(), req.TicketID, req.Reason)
	if err != nil {
		s.respondWorkflowError(w, err, "dynamic-escalation")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSolutionSuggestions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TicketID string `json:"ticket_id"`
		Limit    int    `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.TicketID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "ticket_id is required")
		return
	}

	result, err := s.engine.SuggestSolutions(r.Context(), req.TicketID, req.Limit)
	if err != nil {
		s.respondWorkflowError(w, err, "auto-solution-suggestions")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handlePriorityRebalancing(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TicketID string                    `json:"ticket_id"`
		Context  decision.RebalanceContext `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.TicketID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "ticket_id is required")
		return
	}

	result, err := s.engine.Rebalance(r.Context(), req.TicketID, req.Context)
	if err != nil {
		s.respondWorkflowError(w, err, "ai-priority-rebalancing")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSelfHealing(w http.ResponseWriter, r *http.Request) {
	var req ticketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.TicketID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "ticket_id is required")
		return
	}

	result, err := s.engine.SelfHeal(r.Context(), req.TicketID)
	if err != nil {
		s.respondWorkflowError(w, err, "self-healing")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleChannelTrigger(w http.ResponseWriter, r *http.Request) {
	var req workflow.ChannelTriggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Channel == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "channel is required")
		return
	}
	if req.Content == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "content is required")
		return
	}

	result, err := s.engine.TriggerFromChannel(r.Context(), req)
	if err != nil {
		if errors.Is(err, workflow.ErrUnknownChannel) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		s.respondWorkflowError(w, err, "multi-channel-trigger")
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

func (s *Server) handleGamifiedWorkflow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TeamID   string `json:"team_id"`
		Action   string `json:"action"`
		TicketID string `json:"ticket_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.TeamID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "team_id is required")
		return
	}
	if req.Action == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "action is required")
		return
	}

	result, err := s.engine.AwardPoints(r.Context(), req.TeamID, req.Action, req.TicketID)
	if err != nil {
		if errors.Is(err, workflow.ErrUnknownAction) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		s.respondWorkflowError(w, err, "gamified-workflow")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	ticketID := r.URL.Query().Get("ticket_id")
	limit := queryInt(r, "limit", 50)

	report, err := s.engine.AuditTrail(r.Context(), ticketID, limit)
	if err != nil {
		s.respondWorkflowError(w, err, "audit-trail")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleHealthMonitor(w http.ResponseWriter, r *http.Request) {
	report, err := s.engine.Health(r.Context())
	if err != nil {
		s.respondWorkflowError(w, err, "health-monitor")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// respondWorkflowError maps engine sentinel errors to API responses.
func (s *Server) respondWorkflowError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, workflow.ErrTicketNotFound):
		respondError(w, http.StatusNotFound, "not_found", "ticket not found")
	case errors.Is(err, workflow.ErrTeamNotFound):
		respondError(w, http.StatusNotFound, "not_found", "team not found")
	case errors.Is(err, workflow.ErrAccountNotFound):
		respondError(w, http.StatusNotFound, "not_found", "gamification account not found")
	case errors.Is(err, workflow.ErrNoTeams):
		respondError(w, http.StatusConflict, "no_teams", "no teams configured for routing")
	default:
		slog.Error("workflow operation failed", "operation", op, "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "workflow operation failed")
	}
}
