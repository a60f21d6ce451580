package storage

import (
	"context"

	"github.com/opsdesk/helpdesk-engine/internal/models"
)

// Repository defines the interface for helpdesk persistence
type Repository interface {
	// Tickets
	CreateTicket(ctx context.Context, t *models.Ticket) error
	GetTicket(ctx context.Context, id string) (*models.Ticket, error)
	UpdateTicket(ctx context.Context, t *models.Ticket) error
	ListTickets(ctx context.Context, filters models.TicketFilters) ([]*models.Ticket, error)
	ListOpenTickets(ctx context.Context) ([]*models.Ticket, error)
	TicketStats(ctx context.Context) (*models.TicketStats, error)

	// UpdateTicketTx applies fn to the ticket under a row lock so
	// concurrent decisions on the same ticket cannot lose updates
	// (escalation level and priority are read-modify-write fields).
	UpdateTicketTx(ctx context.Context, id string, fn func(*models.Ticket) error) (*models.Ticket, error)

	// Teams
	ListTeams(ctx context.Context) ([]*models.TeamProfile, error)
	GetTeam(ctx context.Context, id string) (*models.TeamProfile, error)

	// Knowledge base
	CreateArticle(ctx context.Context, a *models.Article) error
	GetArticle(ctx context.Context, id string) (*models.Article, error)
	ListArticles(ctx context.Context, category string) ([]*models.Article, error)

	// Gamification
	GetAccount(ctx context.Context, teamID string) (*models.GamificationAccount, error)
	ListAccounts(ctx context.Context) ([]*models.GamificationAccount, error)

	// UpdateAccountTx applies fn to the account under a row lock; points,
	// resolved count and badges are monotonic and must not race.
	UpdateAccountTx(ctx context.Context, teamID string, fn func(*models.GamificationAccount) error) (*models.GamificationAccount, error)

	// Audit
	CreateAuditEntry(ctx context.Context, e *models.AuditEntry) error
	ListAuditEntries(ctx context.Context, ticketID string, limit int) ([]*models.AuditEntry, error)

	// API Clients
	GetClientByApiKey(ctx context.Context, apiKey string) (*models.ApiClient, error)
	UpdateClientLastUsed(ctx context.Context, apiKey string) error

	// Health
	Ping(ctx context.Context) error
	Close() error
}
