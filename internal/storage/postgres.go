package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opsdesk/helpdesk-engine/internal/models"
)

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int32
	MaxIdleConns int32
	MaxLifetime  time.Duration
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(ctx context.Context, cfg PostgresConfig) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	} else {
		poolConfig.MaxConns = 25
	}

	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = cfg.MaxIdleConns
	} else {
		poolConfig.MinConns = 5
	}

	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// Ping checks database connectivity
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

const ticketColumns = `id, title, description, category, priority, status, assigned_to, created_by, channel,
	escalation_level, predicted_sla_breach, ai_confidence, auto_resolved, resolution_action,
	created_at, sla_deadline, resolved_at`

// CreateTicket creates a new ticket record
func (r *PostgresRepository) CreateTicket(ctx context.Context, t *models.Ticket) error {
	query := `
		INSERT INTO tickets (` + ticketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.pool.Exec(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		t.Category,
		string(t.Priority),
		string(t.Status),
		nullString(t.AssignedTo),
		t.CreatedBy,
		nullString(t.Channel),
		t.EscalationLevel,
		t.PredictedSLABreach,
		t.AIConfidence,
		t.AutoResolved,
		nullString(t.ResolutionAction),
		t.CreatedAt,
		t.SLADeadline,
		nullTime(t.ResolvedAt),
	)

	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return nil
}

func scanTicket(row pgx.Row) (*models.Ticket, error) {
	var t models.Ticket
	var priority, status string
	var assignedTo, channel, resolutionAction sql.NullString
	var resolvedAt sql.NullTime

	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Category,
		&priority,
		&status,
		&assignedTo,
		&t.CreatedBy,
		&channel,
		&t.EscalationLevel,
		&t.PredictedSLABreach,
		&t.AIConfidence,
		&t.AutoResolved,
		&resolutionAction,
		&t.CreatedAt,
		&t.SLADeadline,
		&resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Priority = models.Priority(priority)
	t.Status = models.TicketStatus(status)
	t.AssignedTo = assignedTo.String
	t.Channel = channel.String
	t.ResolutionAction = resolutionAction.String
	if resolvedAt.Valid {
		t.ResolvedAt = &resolvedAt.Time
	}

	return &t, nil
}

// GetTicket retrieves a ticket by ID
func (r *PostgresRepository) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	t, err := scanTicket(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return t, nil
}

// UpdateTicket updates an existing ticket
func (r *PostgresRepository) UpdateTicket(ctx context.Context, t *models.Ticket) error {
	result, err := r.pool.Exec(ctx, updateTicketSQL, updateTicketArgs(t)...)
	if err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("ticket not found: %s", t.ID)
	}

	return nil
}

const updateTicketSQL = `
	UPDATE tickets
	SET title = $2, description = $3, category = $4, priority = $5, status = $6,
		assigned_to = $7, channel = $8, escalation_level = $9, predicted_sla_breach = $10,
		ai_confidence = $11, auto_resolved = $12, resolution_action = $13,
		sla_deadline = $14, resolved_at = $15
	WHERE id = $1
`

func updateTicketArgs(t *models.Ticket) []interface{} {
	return []interface{}{
		t.ID,
		t.Title,
		t.Description,
		t.Category,
		string(t.Priority),
		string(t.Status),
		nullString(t.AssignedTo),
		nullString(t.Channel),
		t.EscalationLevel,
		t.PredictedSLABreach,
		t.AIConfidence,
		t.AutoResolved,
		nullString(t.ResolutionAction),
		t.SLADeadline,
		nullTime(t.ResolvedAt),
	}
}

// UpdateTicketTx loads the ticket under FOR UPDATE, applies fn and writes
// the result back inside one transaction.
func (r *PostgresRepository) UpdateTicketTx(ctx context.Context, id string, fn func(*models.Ticket) error) (*models.Ticket, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1 FOR UPDATE`
	t, err := scanTicket(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock ticket: %w", err)
	}

	if err := fn(t); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, updateTicketSQL, updateTicketArgs(t)...); err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit ticket update: %w", err)
	}

	return t, nil
}

// ListTickets returns tickets matching filters
func (r *PostgresRepository) ListTickets(ctx context.Context, filters models.TicketFilters) ([]*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE 1=1`
	args := make([]interface{}, 0)
	argNum := 1

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, string(filters.Status))
		argNum++
	}

	if filters.Priority != "" {
		query += fmt.Sprintf(" AND priority = $%d", argNum)
		args = append(args, string(filters.Priority))
		argNum++
	}

	if filters.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argNum)
		args = append(args, filters.Category)
		argNum++
	}

	if filters.AssignedTo != "" {
		query += fmt.Sprintf(" AND assigned_to = $%d", argNum)
		args = append(args, filters.AssignedTo)
		argNum++
	}

	query += " ORDER BY created_at DESC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, filters.Limit)
		argNum++
	}

	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, filters.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*models.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickets: %w", err)
	}

	return tickets, nil
}

// ListOpenTickets returns all non-terminal tickets, oldest deadline first
func (r *PostgresRepository) ListOpenTickets(ctx context.Context) ([]*models.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE status NOT IN ('Resolved', 'Closed')
		ORDER BY sla_deadline ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list open tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*models.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}

	return tickets, rows.Err()
}

// TicketStats aggregates the counters behind the workflow health monitor
func (r *PostgresRepository) TicketStats(ctx context.Context) (*models.TicketStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Resolved'),
			COUNT(*) FILTER (WHERE escalation_level > 0),
			COUNT(*) FILTER (WHERE predicted_sla_breach),
			COALESCE(AVG(EXTRACT(EPOCH FROM (resolved_at - created_at)) / 3600)
				FILTER (WHERE resolved_at IS NOT NULL), 0)
		FROM tickets
	`

	var s models.TicketStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.Total,
		&s.Resolved,
		&s.Escalated,
		&s.PredictedBreach,
		&s.AvgResolutionHrs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute ticket stats: %w", err)
	}

	return &s, nil
}

// ListTeams returns all teams in their configured routing order
func (r *PostgresRepository) ListTeams(ctx context.Context) ([]*models.TeamProfile, error) {
	query := `SELECT id, name, members, availability, expertise FROM teams ORDER BY routing_order ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []*models.TeamProfile
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// GetTeam retrieves a team by ID
func (r *PostgresRepository) GetTeam(ctx context.Context, id string) (*models.TeamProfile, error) {
	query := `SELECT id, name, members, availability, expertise FROM teams WHERE id = $1`

	team, err := scanTeam(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return team, nil
}

func scanTeam(row pgx.Row) (*models.TeamProfile, error) {
	var team models.TeamProfile
	var expertiseJSON []byte

	if err := row.Scan(&team.ID, &team.Name, &team.Members, &team.Availability, &expertiseJSON); err != nil {
		return nil, err
	}

	if expertiseJSON != nil {
		if err := json.Unmarshal(expertiseJSON, &team.Expertise); err != nil {
			return nil, fmt.Errorf("failed to unmarshal expertise: %w", err)
		}
	}

	return &team, nil
}

// CreateArticle creates a knowledge-base article
func (r *PostgresRepository) CreateArticle(ctx context.Context, a *models.Article) error {
	query := `
		INSERT INTO kb_articles (id, title, content, category, relevance_score, success_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.Title, a.Content, a.Category, a.RelevanceScore, a.SuccessRate, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	return nil
}

// GetArticle retrieves an article by ID
func (r *PostgresRepository) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	query := `
		SELECT id, title, content, category, relevance_score, success_rate, created_at, updated_at
		FROM kb_articles WHERE id = $1
	`

	var a models.Article
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Title, &a.Content, &a.Category, &a.RelevanceScore, &a.SuccessRate, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return &a, nil
}

// ListArticles returns articles, optionally filtered by exact category
func (r *PostgresRepository) ListArticles(ctx context.Context, category string) ([]*models.Article, error) {
	query := `
		SELECT id, title, content, category, relevance_score, success_rate, created_at, updated_at
		FROM kb_articles
	`
	args := make([]interface{}, 0)

	if category != "" {
		query += " WHERE category = $1"
		args = append(args, category)
	}

	query += " ORDER BY created_at ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.Category, &a.RelevanceScore, &a.SuccessRate, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, &a)
	}

	return articles, rows.Err()
}

// GetAccount retrieves a gamification account by team ID
func (r *PostgresRepository) GetAccount(ctx context.Context, teamID string) (*models.GamificationAccount, error) {
	query := `SELECT team_id, name, points, badges, tickets_resolved FROM gamification_accounts WHERE team_id = $1`

	acct, err := scanAccount(r.pool.QueryRow(ctx, query, teamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return acct, nil
}

// ListAccounts returns all accounts ordered by points descending
func (r *PostgresRepository) ListAccounts(ctx context.Context) ([]*models.GamificationAccount, error) {
	query := `SELECT team_id, name, points, badges, tickets_resolved FROM gamification_accounts ORDER BY points DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.GamificationAccount
	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acct)
	}

	return accounts, rows.Err()
}

// UpdateAccountTx loads the account under FOR UPDATE, applies fn and
// writes the result back inside one transaction.
func (r *PostgresRepository) UpdateAccountTx(ctx context.Context, teamID string, fn func(*models.GamificationAccount) error) (*models.GamificationAccount, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `SELECT team_id, name, points, badges, tickets_resolved FROM gamification_accounts WHERE team_id = $1 FOR UPDATE`
	acct, err := scanAccount(tx.QueryRow(ctx, query, teamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}

	if err := fn(acct); err != nil {
		return nil, err
	}

	badgesJSON, err := json.Marshal(acct.Badges)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal badges: %w", err)
	}

	update := `UPDATE gamification_accounts SET points = $2, badges = $3, tickets_resolved = $4 WHERE team_id = $1`
	if _, err := tx.Exec(ctx, update, acct.TeamID, acct.Points, badgesJSON, acct.TicketsResolved); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit account update: %w", err)
	}

	return acct, nil
}

func scanAccount(row pgx.Row) (*models.GamificationAccount, error) {
	var acct models.GamificationAccount
	var badgesJSON []byte

	if err := row.Scan(&acct.TeamID, &acct.Name, &acct.Points, &badgesJSON, &acct.TicketsResolved); err != nil {
		return nil, err
	}

	if badgesJSON != nil {
		if err := json.Unmarshal(badgesJSON, &acct.Badges); err != nil {
			return nil, fmt.Errorf("failed to unmarshal badges: %w", err)
		}
	}

	return &acct, nil
}

// CreateAuditEntry records a workflow step or automated decision
func (r *PostgresRepository) CreateAuditEntry(ctx context.Context, e *models.AuditEntry) error {
	query := `
		INSERT INTO audit_entries (id, ticket_id, action, actor, details, ai_decision, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var confidence sql.NullFloat64
	if e.Confidence != nil {
		confidence = sql.NullFloat64{Float64: *e.Confidence, Valid: true}
	}

	_, err := r.pool.Exec(ctx, query,
		e.ID, nullString(e.TicketID), e.Action, e.Actor, e.Details, e.AIDecision, confidence, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}

	return nil
}

// ListAuditEntries returns audit entries, newest first, optionally
// filtered by ticket ID
func (r *PostgresRepository) ListAuditEntries(ctx context.Context, ticketID string, limit int) ([]*models.AuditEntry, error) {
	query := `
		SELECT id, ticket_id, action, actor, details, ai_decision, confidence, created_at
		FROM audit_entries
		WHERE 1=1
	`
	args := make([]interface{}, 0)
	argNum := 1

	if ticketID != "" {
		query += fmt.Sprintf(" AND ticket_id = $%d", argNum)
		args = append(args, ticketID)
		argNum++
	}

	query += " ORDER BY created_at DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		var ticketID sql.NullString
		var confidence sql.NullFloat64

		if err := rows.Scan(&e.ID, &ticketID, &e.Action, &e.Actor, &e.Details, &e.AIDecision, &confidence, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}

		e.TicketID = ticketID.String
		if confidence.Valid {
			e.Confidence = &confidence.Float64
		}

		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// GetClientByApiKey retrieves an API client by its key
func (r *PostgresRepository) GetClientByApiKey(ctx context.Context, apiKey string) (*models.ApiClient, error) {
	query := `
		SELECT id, name, api_key, is_active, created_at, last_used_at, permissions, metadata
		FROM api_clients
		WHERE api_key = $1
	`

	var client models.ApiClient
	var lastUsedAt sql.NullTime
	var permissionsJSON, metadataJSON []byte

	err := r.pool.QueryRow(ctx, query, apiKey).Scan(
		&client.ID,
		&client.Name,
		&client.ApiKey,
		&client.IsActive,
		&client.CreatedAt,
		&lastUsedAt,
		&permissionsJSON,
		&metadataJSON,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get api client: %w", err)
	}

	if lastUsedAt.Valid {
		client.LastUsedAt = &lastUsedAt.Time
	}

	if permissionsJSON != nil {
		if err := json.Unmarshal(permissionsJSON, &client.Permissions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal permissions: %w", err)
		}
	}

	if metadataJSON != nil {
		if err := json.Unmarshal(metadataJSON, &client.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	return &client, nil
}

// UpdateClientLastUsed updates the last_used_at timestamp for a client
func (r *PostgresRepository) UpdateClientLastUsed(ctx context.Context, apiKey string) error {
	query := `UPDATE api_clients SET last_used_at = NOW() WHERE api_key = $1`

	if _, err := r.pool.Exec(ctx, query, apiKey); err != nil {
		return fmt.Errorf("failed to update client last_used_at: %w", err)
	}

	return nil
}

// Helper functions for nullable values

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
