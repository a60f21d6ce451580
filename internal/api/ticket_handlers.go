package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/opsdesk/helpdesk-engine/internal/models"
	"github.com/opsdesk/helpdesk-engine/internal/workflow"
)

// Ticket handlers

func (s *Server) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "title is required")
		return
	}

	if req.CreatedBy == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "created_by is required")
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	now := time.Now()
	ticket := &models.Ticket{
		ID:          workflow.NewTicketID(now),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    priority,
		Status:      models.StatusOpen,
		CreatedBy:   req.CreatedBy,
		Channel:     "api",
		CreatedAt:   now,
		SLADeadline: now.Add(s.decision.SLAWindow),
	}

	if err := s.repo.CreateTicket(r.Context(), ticket); err != nil {
		slog.Error("failed to create ticket", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create ticket")
		return
	}

	respondJSON(w, http.StatusCreated, ticket)
}

func (s *Server) handleGetTicket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "ticket id is required")
		return
	}

	ticket, err := s.repo.GetTicket(r.Context(), id)
	if err != nil {
		slog.Error("failed to get ticket", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get ticket")
		return
	}
	if ticket == nil {
		respondError(w, http.StatusNotFound, "not_found", "ticket not found")
		return
	}

	respondJSON(w, http.StatusOK, ticket)
}

func (s *Server) handleListTickets(w http.ResponseWriter, r *http.Request) {
	filters := models.TicketFilters{
		Status:     models.TicketStatus(r.URL.Query().Get("status")),
		Priority:   models.Priority(r.URL.Query().Get("priority")),
		Category:   r.URL.Query().Get("category"),
		AssignedTo: r.URL.Query().Get("assigned_to"),
		Limit:      queryInt(r, "limit", 50),
		Offset:     0,
	}

	if offset := queryInt(r, "offset", 0); offset > 0 {
		filters.Offset = offset
	}

	tickets, err := s.repo.ListTickets(r.Context(), filters)
	if err != nil {
		slog.Error("failed to list tickets", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list tickets")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tickets": tickets,
		"total":   len(tickets),
	})
}

func (s *Server) handleResolveTicket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "ticket id is required")
		return
	}

	now := time.Now()
	ticket, err := s.repo.UpdateTicketTx(r.Context(), id, func(t *models.Ticket) error {
		if t.Status.IsTerminal() {
			return nil
		}
		t.Status = models.StatusResolved
		t.ResolvedAt = &now
		return nil
	})
	if err != nil {
		slog.Error("failed to resolve ticket", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to resolve ticket")
		return
	}
	if ticket == nil {
		respondError(w, http.StatusNotFound, "not_found", "ticket not found")
		return
	}

	respondJSON(w, http.StatusOK, ticket)
}
