package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/opsdesk/helpdesk-engine/internal/config"
	"github.com/opsdesk/helpdesk-engine/internal/storage"
	"github.com/opsdesk/helpdesk-engine/internal/workflow"
)

// Server represents the HTTP API server
type Server struct {
	config         config.ServerConfig
	decision       config.DecisionConfig
	router         *chi.Mux
	engine         workflow.Engine
	repo           storage.Repository
	alerts         *AlertHub
	authMiddleware *AuthMiddleware
}

// NewServer creates a new API server
func NewServer(
	cfg config.ServerConfig,
	decisionCfg config.DecisionConfig,
	engine workflow.Engine,
	repo storage.Repository,
	alerts *AlertHub,
) *Server {
	s := &Server{
		config:         cfg,
		decision:       decisionCfg,
		engine:         engine,
		repo:           repo,
		alerts:         alerts,
		authMiddleware: NewAuthMiddleware(repo),
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (outside versioned API - public)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	// API v1 routes (protected by authentication)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authMiddleware.Authenticate)

		// Tickets
		r.Route("/tickets", func(r chi.Router) {
			r.With(s.authMiddleware.RequirePermission("tickets:read")).Get("/", s.handleListTickets)
			r.With(s.authMiddleware.RequirePermission("tickets:write")).Post("/", s.handleCreateTicket)

			r.Route("/{id}", func(r chi.Router) {
				r.With(s.authMiddleware.RequirePermission("tickets:read")).Get("/", s.handleGetTicket)
				r.With(s.authMiddleware.RequirePermission("tickets:write")).Post("/resolve", s.handleResolveTicket)
			})
		})

		// Automated workflow operations
		r.Route("/workflow", func(r chi.Router) {
			r.Use(s.authMiddleware.RequirePermission("workflow:execute"))

			r.Post("/ai-auto-routing", s.handleAutoRouting)
			r.Post("/predictive-sla-alerts", s.handlePredictiveSLA)
			r.Post("/dynamic-escalation", s.handleEscalation)
			r.Post("/auto-solution-suggestions", s.handleSolutionSuggestions)
			r.Post("/ai-priority-rebalancing", s.handlePriorityRebalancing)
			r.Post("/self-healing", s.handleSelfHealing)
			r.Post("/multi-channel-trigger", s.handleChannelTrigger)
			r.Post("/gamified-workflow", s.handleGamifiedWorkflow)
			r.Get("/audit-trail", s.handleAuditTrail)
			r.Get("/health-monitor", s.handleHealthMonitor)
		})

		// Knowledge base
		r.Route("/kb", func(r chi.Router) {
			r.With(s.authMiddleware.RequirePermission("kb:read")).Get("/articles", s.handleListArticles)
			r.With(s.authMiddleware.RequirePermission("kb:write")).Post("/articles", s.handleCreateArticle)
			r.With(s.authMiddleware.RequirePermission("kb:read")).Get("/articles/{id}", s.handleGetArticle)
			r.With(s.authMiddleware.RequirePermission("kb:read")).Get("/search", s.handleSearchArticles)
		})

		// Gamification leaderboard
		r.With(s.authMiddleware.RequirePermission("tickets:read")).Get("/leaderboard", s.handleLeaderboard)

		// Live SLA alert stream
		r.With(s.authMiddleware.RequirePermission("tickets:read")).Get("/alerts/stream", s.handleAlertStream)
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
