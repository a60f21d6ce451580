// Package workflow orchestrates the decision layer over persistent
// state: it loads tickets, teams and accounts, runs the pure decision
// functions, writes the outcomes back and records an audit entry for
// every automated step.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opsdesk/helpdesk-engine/internal/config"
	"github.com/opsdesk/helpdesk-engine/internal/decision"
	"github.com/opsdesk/helpdesk-engine/internal/leaderboard"
	"github.com/opsdesk/helpdesk-engine/internal/models"
	"github.com/opsdesk/helpdesk-engine/internal/notify"
	"github.com/opsdesk/helpdesk-engine/internal/rules"
	"github.com/opsdesk/helpdesk-engine/internal/storage"
)

// Sentinel errors mapped to HTTP status codes by the API layer.
var (
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrTeamNotFound    = errors.New("team not found")
	ErrAccountNotFound = errors.New("gamification account not found")
	ErrNoTeams         = errors.New("no teams configured")
	ErrUnknownChannel  = errors.New("unknown channel")
	ErrUnknownAction   = errors.New("unknown gamification action")
)

// A team below this availability counts as overloaded for SLA risk.
const teamLoadThreshold = 0.8

// NewTicketID builds a ticket identifier from the creation timestamp
// plus a random suffix so two tickets in the same second never collide.
func NewTicketID(now time.Time) string {
	return "TKT-" + now.Format("20060102150405") + "-" + uuid.NewString()[:8]
}

// RouteResult is the outcome of auto-routing a ticket.
type RouteResult struct {
	TicketID   string  `json:"ticket_id"`
	Category   string  `json:"category"`
	TeamID     string  `json:"assigned_team"`
	TeamName   string  `json:"team_name"`
	Confidence float64 `json:"confidence"`
	Fallback   bool    `json:"fallback"`
	Reasoning  string  `json:"reasoning"`
}

// SLAPrediction is the outcome of predictive SLA analysis for one ticket.
type SLAPrediction struct {
	TicketID       string               `json:"ticket_id"`
	RiskScore      float64              `json:"risk_score"`
	BreachLikely   bool                 `json:"breach_likely"`
	Factors        decision.RiskFactors `json:"factors"`
	HoursRemaining float64              `json:"hours_remaining"`
	Alert          *models.SLAAlert     `json:"alert,omitempty"`
}

// EscalationResult is the outcome of stepping a ticket up the ladder.
type EscalationResult struct {
	TicketID      string                `json:"ticket_id"`
	Level         int                   `json:"escalation_level"`
	EscalatedTo   string                `json:"escalated_to"`
	Priority      models.Priority       `json:"priority"`
	Notifications []notify.Notification `json:"notifications"`
}

// SuggestionResult carries ranked solution suggestions for a ticket.
type SuggestionResult struct {
	TicketID    string            `json:"ticket_id"`
	Category    string            `json:"category"`
	Suggestions []decision.Scored `json:"suggestions"`
	Count       int               `json:"count"`
}

// RebalanceResult is the outcome of context-driven priority rebalancing.
type RebalanceResult struct {
	TicketID    string          `json:"ticket_id"`
	OldPriority models.Priority `json:"old_priority"`
	NewPriority models.Priority `json:"new_priority"`
	Changed     bool            `json:"changed"`
}

// SelfHealResult is the outcome of a self-healing attempt.
type SelfHealResult struct {
	TicketID string `json:"ticket_id"`
	Healed   bool   `json:"healed"`
	Action   string `json:"action,omitempty"`
	Message  string `json:"message"`
}

// ChannelTriggerRequest is an inbound message from an external channel.
type ChannelTriggerRequest struct {
	Channel   string `json:"channel"`
	Content   string `json:"content"`
	CreatedBy string `json:"created_by"`
}

// ChannelTriggerResult is the ticket created from a channel message plus
// its routing decision.
type ChannelTriggerResult struct {
	Ticket *models.Ticket `json:"ticket"`
	Route  *RouteResult   `json:"routing"`
}

// AwardResult is the outcome of a gamification award.
type AwardResult struct {
	TeamID        string             `json:"team_id"`
	PointsAwarded int                `json:"points_awarded"`
	NewBadges     []string           `json:"new_badges"`
	TotalPoints   int                `json:"total_points"`
	Resolved      int                `json:"tickets_resolved"`
	Rank          int                `json:"rank,omitempty"`
	Leaderboard   []LeaderboardEntry `json:"leaderboard"`
}

// AuditReport bundles audit entries with their summary statistics.
type AuditReport struct {
	TicketID string               `json:"ticket_id,omitempty"`
	Entries  []*models.AuditEntry `json:"entries"`
	Summary  models.AuditSummary  `json:"summary"`
}

// HealthReport is the workflow health monitor's output.
type HealthReport struct {
	Stats           *models.TicketStats `json:"stats"`
	SLACompliance   float64             `json:"sla_compliance"`
	EscalationRate  float64             `json:"escalation_rate"`
	Bottlenecks     []string            `json:"bottlenecks"`
	Recommendations []string            `json:"recommendations"`
	HealthScore     float64             `json:"health_score"`
}

// LeaderboardEntry is one row of the points ranking.
type LeaderboardEntry struct {
	TeamID string `json:"team_id"`
	Name   string `json:"name,omitempty"`
	Points int    `json:"points"`
	Rank   int    `json:"rank"`
}

// Engine exposes every automated workflow operation.
type Engine interface {
	AutoRoute(ctx context.Context, ticketID string) (*RouteResult, error)
	PredictSLA(ctx context.Context, ticketID string) (*SLAPrediction, error)
	Escalate(ctx context.Context, ticketID, reason string) (*EscalationResult, error)
	SuggestSolutions(ctx context.Context, ticketID string, limit int) (*SuggestionResult, error)
	Rebalance(ctx context.Context, ticketID string, rc decision.RebalanceContext) (*RebalanceResult, error)
	SelfHeal(ctx context.Context, ticketID string) (*SelfHealResult, error)
	TriggerFromChannel(ctx context.Context, req ChannelTriggerRequest) (*ChannelTriggerResult, error)
	AwardPoints(ctx context.Context, teamID, action, ticketID string) (*AwardResult, error)
	AuditTrail(ctx context.Context, ticketID string, limit int) (*AuditReport, error)
	Health(ctx context.Context) (*HealthReport, error)
	ScanSLARisk(ctx context.Context) ([]models.SLAAlert, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	Ping(ctx context.Context) error
}

type engine struct {
	repo    storage.Repository
	rules   *rules.Loader
	cfg     config.DecisionConfig
	board   *leaderboard.Cache // optional, nil when Redis is down
	notices *notify.Registry
	now     func() time.Time
}

// NewEngine wires the workflow engine. board may be nil; the leaderboard
// then falls back to the database.
func NewEngine(repo storage.Repository, loader *rules.Loader, cfg config.DecisionConfig, board *leaderboard.Cache, notices *notify.Registry) Engine {
	return &engine{
		repo:    repo,
		rules:   loader,
		cfg:     cfg,
		board:   board,
		notices: notices,
		now:     time.Now,
	}
}

func (e *engine) routeConfig() decision.RouteConfig {
	rc := decision.DefaultRouteConfig()
	rc.AvailabilityThreshold = e.cfg.AvailabilityThreshold
	rc.FallbackTeamID = e.cfg.FallbackTeamID
	return rc
}

func (e *engine) riskConfig() decision.RiskConfig {
	rc := decision.DefaultRiskConfig()
	rc.Threshold = e.cfg.RiskThreshold
	return rc
}

// AutoRoute classifies the ticket's category when missing, picks the
// target team and assigns the ticket to it.
func (e *engine) AutoRoute(ctx context.Context, ticketID string) (*RouteResult, error) {
	set := e.rules.Rules()

	teams, err := e.repo.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	if len(teams) == 0 {
		return nil, ErrNoTeams
	}

	profiles := make([]models.TeamProfile, 0, len(teams))
	for _, t := range teams {
		profiles = append(profiles, *t)
	}

	var result RouteResult
	ticket, err := e.repo.UpdateTicketTx(ctx, ticketID, func(t *models.Ticket) error {
		if t.Category == "" {
			t.Category = decision.Classify(t.Title+" "+t.Description, set.Categories)
		}

		dec, ok := e.routeConfig().Route(t.Category, profiles)
		if !ok {
			return ErrNoTeams
		}

		t.AssignedTo = dec.Team.ID
		t.AIConfidence = dec.Confidence
		if t.Status == models.StatusOpen {
			t.Status = models.StatusAssigned
		}

		reasoning := fmt.Sprintf("matched %s expertise with %.0f%% availability", t.Category, dec.Team.Availability*100)
		if dec.Fallback {
			reasoning = "no available team matched the category, assigned to fallback team"
		}

		result = RouteResult{
			TicketID:   t.ID,
			Category:   t.Category,
			TeamID:     dec.Team.ID,
			TeamName:   dec.Team.Name,
			Confidence: dec.Confidence,
			Fallback:   dec.Fallback,
			Reasoning:  reasoning,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}

	e.audit(ctx, ticket.ID, "ai_auto_routing",
		fmt.Sprintf("routed to %s (%s)", result.TeamID, result.Reasoning), &result.Confidence)

	return &result, nil
}

// PredictSLA scores the ticket's breach risk and, when a breach is
// likely, flags the ticket and emits an alert descriptor.
func (e *engine) PredictSLA(ctx context.Context, ticketID string) (*SLAPrediction, error) {
	ticket, err := e.repo.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket: %w", err)
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}

	pred, err := e.predict(ctx, ticket)
	if err != nil {
		return nil, err
	}

	if pred.BreachLikely && !ticket.PredictedSLABreach {
		if _, err := e.repo.UpdateTicketTx(ctx, ticket.ID, func(t *models.Ticket) error {
			t.PredictedSLABreach = true
			return nil
		}); err != nil {
			return nil, err
		}
		e.audit(ctx, ticket.ID, "predictive_sla_alert",
			fmt.Sprintf("breach predicted with risk score %.2f", pred.RiskScore), &pred.RiskScore)
	}

	return pred, nil
}

// predict computes the risk score and alert for a ticket without
// touching storage beyond the team lookup.
func (e *engine) predict(ctx context.Context, ticket *models.Ticket) (*SLAPrediction, error) {
	now := e.now()
	hours := ticket.HoursToDeadline(now)

	factors := decision.RiskFactors{
		TimeRemainingLow: hours < 2,
		PriorityHigh:     ticket.Priority.Rank() >= models.PriorityHigh.Rank(),
		AlreadyEscalated: ticket.EscalationLevel > 0,
	}

	if ticket.AssignedTo != "" {
		team, err := e.repo.GetTeam(ctx, ticket.AssignedTo)
		if err != nil {
			return nil, fmt.Errorf("failed to load team: %w", err)
		}
		if team != nil {
			factors.TeamOverloaded = team.Availability < teamLoadThreshold
		}
	}

	rc := e.riskConfig()
	score := rc.Score(factors)
	breach := rc.Breach(score)

	pred := &SLAPrediction{
		TicketID:       ticket.ID,
		RiskScore:      score,
		BreachLikely:   breach,
		Factors:        factors,
		HoursRemaining: hours,
	}

	if breach {
		severity := "warning"
		action := "Monitor closely and consider reassignment"
		if score > 0.75 {
			severity = "critical"
			action = "Escalate immediately"
		}
		pred.Alert = &models.SLAAlert{
			Type:              "sla_breach_prediction",
			TicketID:          ticket.ID,
			Message:           fmt.Sprintf("Ticket %s is at risk of missing its SLA deadline", ticket.ID),
			Severity:          severity,
			RecommendedAction: action,
			RiskScore:         score,
			HoursRemaining:    hours,
			Timestamp:         now.UTC().Format(time.RFC3339),
		}
	}

	return pred, nil
}

// Escalate steps the ticket one level up the ladder, forces Critical
// priority and builds notifications for the new target.
func (e *engine) Escalate(ctx context.Context, ticketID, reason string) (*EscalationResult, error) {
	set := e.rules.Rules()
	if reason == "" {
		reason = "manual escalation"
	}

	var (
		level  int
		target string
	)
	ticket, err := e.repo.UpdateTicketTx(ctx, ticketID, func(t *models.Ticket) error {
		level, target = set.Escalation.Escalate(t.EscalationLevel)
		t.EscalationLevel = level
		t.Priority = models.MaxPriority(t.Priority, models.PriorityCritical)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}

	var notifications []notify.Notification
	if e.notices != nil {
		notifications = e.notices.BuildAll(ticket.ID, target, reason)
	}

	e.audit(ctx, ticket.ID, "dynamic_escalation",
		fmt.Sprintf("escalated to level %d (%s): %s", level, target, reason), nil)

	return &EscalationResult{
		TicketID:      ticket.ID,
		Level:         level,
		EscalatedTo:   target,
		Priority:      ticket.Priority,
		Notifications: notifications,
	}, nil
}

// SuggestSolutions ranks knowledge-base articles against the ticket's
// category by composite score.
func (e *engine) SuggestSolutions(ctx context.Context, ticketID string, limit int) (*SuggestionResult, error) {
	ticket, err := e.repo.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket: %w", err)
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}

	articles, err := e.repo.ListArticles(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	if limit <= 0 {
		limit = e.cfg.MaxSuggestions
	}

	suggestions := decision.RankComposite(ticket.Category, toCandidates(articles), limit)

	var confidence *float64
	if len(suggestions) > 0 {
		confidence = &suggestions[0].Score
	}
	e.audit(ctx, ticket.ID, "auto_solution_suggestion",
		fmt.Sprintf("suggested %d solutions for category %s", len(suggestions), ticket.Category), confidence)

	return &SuggestionResult{
		TicketID:    ticket.ID,
		Category:    ticket.Category,
		Suggestions: suggestions,
		Count:       len(suggestions),
	}, nil
}

// Rebalance recomputes the ticket's priority from the caller-supplied
// business context.
func (e *engine) Rebalance(ctx context.Context, ticketID string, rc decision.RebalanceContext) (*RebalanceResult, error) {
	var result RebalanceResult
	ticket, err := e.repo.UpdateTicketTx(ctx, ticketID, func(t *models.Ticket) error {
		result.OldPriority = t.Priority
		t.Priority = decision.Rebalance(t.Priority, rc)
		result.NewPriority = t.Priority
		result.Changed = result.NewPriority != result.OldPriority
		return nil
	})
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	result.TicketID = ticket.ID

	if result.Changed {
		e.audit(ctx, ticket.ID, "ai_priority_rebalancing",
			fmt.Sprintf("priority changed %s -> %s", result.OldPriority, result.NewPriority), nil)
	}

	return &result, nil
}

// SelfHeal resolves the ticket automatically when a scripted remediation
// matches it.
func (e *engine) SelfHeal(ctx context.Context, ticketID string) (*SelfHealResult, error) {
	ticket, err := e.repo.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket: %w", err)
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}

	action, ok := decision.AutoResolution(ticket)
	if !ok {
		return &SelfHealResult{
			TicketID: ticket.ID,
			Healed:   false,
			Message:  "no automated remediation matches this ticket",
		}, nil
	}

	now := e.now()
	if _, err := e.repo.UpdateTicketTx(ctx, ticket.ID, func(t *models.Ticket) error {
		if t.Status.IsTerminal() {
			return nil
		}
		t.Status = models.StatusResolved
		t.AutoResolved = true
		t.ResolutionAction = action
		t.ResolvedAt = &now
		return nil
	}); err != nil {
		return nil, err
	}

	e.audit(ctx, ticket.ID, "self_healing",
		fmt.Sprintf("auto-resolved via %s", action), nil)

	return &SelfHealResult{
		TicketID: ticket.ID,
		Healed:   true,
		Action:   action,
		Message:  fmt.Sprintf("ticket resolved automatically by %s", action),
	}, nil
}

// TriggerFromChannel creates a ticket from an inbound channel message,
// deriving the title per channel and classifying category and priority,
// then routes it.
func (e *engine) TriggerFromChannel(ctx context.Context, req ChannelTriggerRequest) (*ChannelTriggerResult, error) {
	title, err := channelTitle(req.Channel, req.Content)
	if err != nil {
		return nil, err
	}

	set := e.rules.Rules()
	now := e.now()

	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = req.Channel + "-gateway"
	}

	ticket := &models.Ticket{
		ID:          NewTicketID(now),
		Title:       title,
		Description: req.Content,
		Category:    decision.Classify(req.Content, set.Categories),
		Priority:    decision.ClassifyPriority(req.Content, set.Priorities),
		Status:      models.StatusOpen,
		CreatedBy:   createdBy,
		Channel:     req.Channel,
		CreatedAt:   now,
		SLADeadline: now.Add(e.cfg.SLAWindow),
	}

	if err := e.repo.CreateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	e.audit(ctx, ticket.ID, "multi_channel_trigger",
		fmt.Sprintf("ticket created from %s channel", req.Channel), nil)

	route, err := e.AutoRoute(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}

	created, err := e.repo.GetTicket(ctx, ticket.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload ticket: %w", err)
	}

	return &ChannelTriggerResult{Ticket: created, Route: route}, nil
}

// channelTitle derives the ticket title from the channel's conventions.
func channelTitle(channel, content string) (string, error) {
	switch channel {
	case "email":
		if i := strings.IndexByte(content, '\n'); i >= 0 {
			return strings.TrimSpace(content[:i]), nil
		}
		return strings.TrimSpace(content), nil
	case "whatsapp", "slack":
		title := content
		if len(title) > 50 {
			title = title[:50]
		}
		return "Message from " + channel + ": " + title, nil
	case "voice":
		return "Voice Command: " + content, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownChannel, channel)
	}
}

// AwardPoints scores a gamification action for a team. resolve_ticket
// uses the points table against the referenced ticket; complete_task is
// a flat award.
func (e *engine) AwardPoints(ctx context.Context, teamID, action, ticketID string) (*AwardResult, error) {
	acct, err := e.repo.GetAccount(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if acct == nil {
		return nil, ErrAccountNotFound
	}

	var award decision.Award
	switch action {
	case "resolve_ticket":
		ticket, err := e.repo.GetTicket(ctx, ticketID)
		if err != nil {
			return nil, fmt.Errorf("failed to load ticket: %w", err)
		}
		if ticket == nil {
			return nil, ErrTicketNotFound
		}

		set := e.rules.Rules()
		updated, err := e.repo.UpdateAccountTx(ctx, teamID, func(a *models.GamificationAccount) error {
			award = set.Points.Award(ticket.Priority, ticket.PredictedSLABreach,
				ticket.ResolvedWithin(e.cfg.FastResolution), *a)
			*a = award.Account
			return nil
		})
		if err != nil {
			return nil, err
		}
		if updated == nil {
			return nil, ErrAccountNotFound
		}
		award.Account = *updated

	case "complete_task":
		const taskPoints = 15
		updated, err := e.repo.UpdateAccountTx(ctx, teamID, func(a *models.GamificationAccount) error {
			a.Points += taskPoints
			return nil
		})
		if err != nil {
			return nil, err
		}
		if updated == nil {
			return nil, ErrAccountNotFound
		}
		award = decision.Award{Points: taskPoints, Account: *updated}

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	rank := 0
	if e.board != nil {
		if err := e.board.Record(ctx, teamID, award.Points); err != nil {
			slog.Warn("failed to record points on leaderboard", "team", teamID, "error", err)
		} else if r, err := e.board.Rank(ctx, teamID); err == nil {
			rank = r
		}
	}

	e.audit(ctx, ticketID, "gamified_workflow",
		fmt.Sprintf("awarded %d points to %s for %s", award.Points, teamID, action), nil)

	board, err := e.Leaderboard(ctx, 10)
	if err != nil {
		slog.Warn("failed to read leaderboard after award", "error", err)
	}

	return &AwardResult{
		TeamID:        teamID,
		PointsAwarded: award.Points,
		NewBadges:     award.Badges,
		TotalPoints:   award.Account.Points,
		Resolved:      award.Account.TicketsResolved,
		Rank:          rank,
		Leaderboard:   board,
	}, nil
}

// AuditTrail returns the recorded workflow steps for a ticket (or the
// whole log when ticketID is empty) with summary statistics.
func (e *engine) AuditTrail(ctx context.Context, ticketID string, limit int) (*AuditReport, error) {
	if limit <= 0 {
		limit = 50
	}

	entries, err := e.repo.ListAuditEntries(ctx, ticketID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	return &AuditReport{
		TicketID: ticketID,
		Entries:  entries,
		Summary:  models.Summarize(entries),
	}, nil
}

// Health computes the workflow health report from ticket statistics.
func (e *engine) Health(ctx context.Context) (*HealthReport, error) {
	stats, err := e.repo.TicketStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket stats: %w", err)
	}

	report := &HealthReport{Stats: stats, SLACompliance: 100}

	if stats.Total > 0 {
		report.EscalationRate = float64(stats.Escalated) / float64(stats.Total) * 100
		report.SLACompliance = 100 - float64(stats.PredictedBreach)/float64(stats.Total)*100
	}

	if report.EscalationRate > 30 {
		report.Bottlenecks = append(report.Bottlenecks, "high escalation rate")
		report.Recommendations = append(report.Recommendations, "review first-line routing rules and team expertise")
	}
	if report.SLACompliance < 80 {
		report.Bottlenecks = append(report.Bottlenecks, "low SLA compliance")
		report.Recommendations = append(report.Recommendations, "increase team capacity or widen SLA windows")
	}
	if stats.AvgResolutionHrs > 24 {
		report.Bottlenecks = append(report.Bottlenecks, "slow resolution times")
		report.Recommendations = append(report.Recommendations, "expand the knowledge base to improve suggestion coverage")
	}

	score := 100 - float64(len(report.Bottlenecks))*20 - (100-report.SLACompliance)*0.5
	if score < 0 {
		score = 0
	}
	report.HealthScore = score

	return report, nil
}

// ScanSLARisk evaluates every open ticket, flags newly at-risk tickets
// and returns alert descriptors for all tickets over the threshold.
func (e *engine) ScanSLARisk(ctx context.Context) ([]models.SLAAlert, error) {
	tickets, err := e.repo.ListOpenTickets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open tickets: %w", err)
	}

	var alerts []models.SLAAlert
	for _, ticket := range tickets {
		pred, err := e.predict(ctx, ticket)
		if err != nil {
			slog.Warn("sla scan skipped ticket", "ticket", ticket.ID, "error", err)
			continue
		}
		if !pred.BreachLikely {
			continue
		}

		if !ticket.PredictedSLABreach {
			if _, err := e.repo.UpdateTicketTx(ctx, ticket.ID, func(t *models.Ticket) error {
				t.PredictedSLABreach = true
				return nil
			}); err != nil {
				slog.Warn("failed to flag sla risk", "ticket", ticket.ID, "error", err)
				continue
			}
			e.audit(ctx, ticket.ID, "predictive_sla_alert",
				fmt.Sprintf("breach predicted with risk score %.2f", pred.RiskScore), &pred.RiskScore)
		}

		alerts = append(alerts, *pred.Alert)
	}

	return alerts, nil
}

// Leaderboard reads the top teams from the Redis cache, falling back to
// the database when the cache is unavailable.
func (e *engine) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	accounts, err := e.repo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	names := make(map[string]string, len(accounts))
	for _, a := range accounts {
		names[a.TeamID] = a.Name
	}

	if e.board != nil {
		cached, err := e.board.Top(ctx, int64(limit))
		if err == nil {
			entries := make([]LeaderboardEntry, 0, len(cached))
			for _, c := range cached {
				entries = append(entries, LeaderboardEntry{
					TeamID: c.TeamID,
					Name:   names[c.TeamID],
					Points: c.Points,
					Rank:   c.Rank,
				})
			}
			return entries, nil
		}
		slog.Warn("leaderboard cache read failed, falling back to database", "error", err)
	}

	// Accounts come back ordered by points descending.
	entries := make([]LeaderboardEntry, 0, limit)
	for i, a := range accounts {
		if i >= limit {
			break
		}
		entries = append(entries, LeaderboardEntry{
			TeamID: a.TeamID,
			Name:   a.Name,
			Points: a.Points,
			Rank:   i + 1,
		})
	}
	return entries, nil
}

// Ping verifies the engine's storage dependency.
func (e *engine) Ping(ctx context.Context) error {
	return e.repo.Ping(ctx)
}

// audit records a workflow step; failures are logged, never fatal.
func (e *engine) audit(ctx context.Context, ticketID, action, details string, confidence *float64) {
	entry := &models.AuditEntry{
		ID:         uuid.NewString(),
		TicketID:   ticketID,
		Action:     action,
		Actor:      "workflow-engine",
		Details:    details,
		AIDecision: true,
		Confidence: confidence,
		CreatedAt:  e.now(),
	}
	if err := e.repo.CreateAuditEntry(ctx, entry); err != nil {
		slog.Warn("failed to record audit entry", "action", action, "ticket", ticketID, "error", err)
	}
}

func toCandidates(articles []*models.Article) []decision.Candidate {
	out := make([]decision.Candidate, 0, len(articles))
	for _, a := range articles {
		out = append(out, decision.Candidate{
			ID:          a.ID,
			Title:       a.Title,
			Content:     a.Content,
			Category:    a.Category,
			Relevance:   a.RelevanceScore,
			SuccessRate: a.SuccessRate,
		})
	}
	return out
}
