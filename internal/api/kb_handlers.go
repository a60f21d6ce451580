package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/opsdesk/helpdesk-engine/internal/decision"
	"github.com/opsdesk/helpdesk-engine/internal/models"
)

// Knowledge-base handlers

func (s *Server) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "title is required")
		return
	}

	if req.RelevanceScore < 0 || req.RelevanceScore > 1 || req.SuccessRate < 0 || req.SuccessRate > 1 {
		respondError(w, http.StatusBadRequest, "validation_error", "relevance_score and success_rate must be in [0,1]")
		return
	}

	category := req.Category
	if category == "" {
		category = "General"
	}

	now := time.Now()
	article := &models.Article{
		ID:             "KB-" + uuid.NewString(),
		Title:          req.Title,
		Content:        req.Content,
		Category:       category,
		RelevanceScore: req.RelevanceScore,
		SuccessRate:    req.SuccessRate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.CreateArticle(r.Context(), article); err != nil {
		slog.Error("failed to create article", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create article")
		return
	}

	respondJSON(w, http.StatusCreated, article)
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "article id is required")
		return
	}

	article, err := s.repo.GetArticle(r.Context(), id)
	if err != nil {
		slog.Error("failed to get article", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get article")
		return
	}
	if article == nil {
		respondError(w, http.StatusNotFound, "not_found", "article not found")
		return
	}

	respondJSON(w, http.StatusOK, article)
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := s.repo.ListArticles(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		slog.Error("failed to list articles", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list articles")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"articles": articles,
		"total":    len(articles),
	})
}

// handleSearchArticles ranks articles by word overlap with the query.
// Hits below the relevance threshold are dropped; an unmatched query
// returns an empty result, not an error.
func (s *Server) handleSearchArticles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "query parameter q is required")
		return
	}

	articles, err := s.repo.ListArticles(r.Context(), "")
	if err != nil {
		slog.Error("failed to list articles", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to search articles")
		return
	}

	candidates := make([]decision.Candidate, 0, len(articles))
	for _, a := range articles {
		candidates = append(candidates, decision.Candidate{
			ID:          a.ID,
			Title:       a.Title,
			Content:     a.Content,
			Category:    a.Category,
			Relevance:   a.RelevanceScore,
			SuccessRate: a.SuccessRate,
		})
	}

	results := decision.RankByOverlap(query, candidates, s.decision.RelevanceThreshold)
	if results == nil {
		results = []decision.Scored{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"results": results,
		"total":   len(results),
	})
}
