// Package client is a Go SDK for the helpdesk-engine API. It speaks
// the versioned JSON envelope and carries its own response types so
// importers don't depend on server internals.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a Go SDK for the helpdesk-engine API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new helpdesk-engine client
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Ticket represents a ticket response
type Ticket struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Category           string     `json:"category"`
	Priority           string     `json:"priority"`
	Status             string     `json:"status"`
	AssignedTo         string     `json:"assigned_to,omitempty"`
	CreatedBy          string     `json:"created_by"`
	Channel            string     `json:"channel,omitempty"`
	EscalationLevel    int        `json:"escalation_level"`
	PredictedSLABreach bool       `json:"predicted_sla_breach"`
	AIConfidence       float64    `json:"ai_confidence,omitempty"`
	AutoResolved       bool       `json:"auto_resolved"`
	ResolutionAction   string     `json:"resolution_action,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	SLADeadline        time.Time  `json:"sla_deadline"`
	ResolvedAt         *time.Time `json:"resolved_at,omitempty"`
}

// CreateTicketRequest represents a ticket creation request
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Priority    string `json:"priority,omitempty"`
	CreatedBy   string `json:"created_by"`
}

// RouteResult is the auto-routing outcome
type RouteResult struct {
	TicketID   string  `json:"ticket_id"`
	Category   string  `json:"category"`
	TeamID     string  `json:"assigned_team"`
	TeamName   string  `json:"team_name"`
	Confidence float64 `json:"confidence"`
	Fallback   bool    `json:"fallback"`
	Reasoning  string  `json:"reasoning"`
}

// SLAPrediction is the predictive SLA analysis outcome
type SLAPrediction struct {
	TicketID       string  `json:"ticket_id"`
	RiskScore      float64 `json:"risk_score"`
	BreachLikely   bool    `json:"breach_likely"`
	HoursRemaining float64 `json:"hours_remaining"`
}

// EscalationResult is the escalation outcome
type EscalationResult struct {
	TicketID    string `json:"ticket_id"`
	Level       int    `json:"escalation_level"`
	EscalatedTo string `json:"escalated_to"`
	Priority    string `json:"priority"`
}

// Suggestion is one ranked solution suggestion
type Suggestion struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}

// SuggestionResult carries ranked solution suggestions
type SuggestionResult struct {
	TicketID    string       `json:"ticket_id"`
	Category    string       `json:"category"`
	Suggestions []Suggestion `json:"suggestions"`
	Count       int          `json:"count"`
}

// AwardResult is the gamification outcome
type AwardResult struct {
	TeamID        string   `json:"team_id"`
	PointsAwarded int      `json:"points_awarded"`
	NewBadges     []string `json:"new_badges"`
	TotalPoints   int      `json:"total_points"`
	Rank          int      `json:"rank,omitempty"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateTicket creates a new ticket
func (c *Client) CreateTicket(ctx context.Context, req CreateTicketRequest) (*Ticket, error) {
	var ticket Ticket
	if err := c.post(ctx, "/api/v1/tickets", req, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetTicket retrieves a ticket by ID
func (c *Client) GetTicket(ctx context.Context, id string) (*Ticket, error) {
	var ticket Ticket
	if err := c.get(ctx, fmt.Sprintf("/api/v1/tickets/%s", id), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ResolveTicket marks a ticket resolved
func (c *Client) ResolveTicket(ctx context.Context, id string) (*Ticket, error) {
	var ticket Ticket
	if err := c.post(ctx, fmt.Sprintf("/api/v1/tickets/%s/resolve", id), nil, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// AutoRoute runs auto-routing on a ticket
func (c *Client) AutoRoute(ctx context.Context, ticketID string) (*RouteResult, error) {
	var result RouteResult
	req := map[string]string{"ticket_id": ticketID}
	if err := c.post(ctx, "/api/v1/workflow/ai-auto-routing", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PredictSLA runs predictive SLA analysis on a ticket
func (c *Client) PredictSLA(ctx context.Context, ticketID string) (*SLAPrediction, error) {
	var result SLAPrediction
	req := map[string]string{"ticket_id": ticketID}
	if err := c.post(ctx, "/api/v1/workflow/predictive-sla-alerts", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Escalate steps a ticket up the escalation ladder
func (c *Client) Escalate(ctx context.Context, ticketID, reason string) (*EscalationResult, error) {
	var result EscalationResult
	req := map[string]string{"ticket_id": ticketID, "reason": reason}
	if err := c.post(ctx, "/api/v1/workflow/dynamic-escalation", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SuggestSolutions requests ranked solution suggestions for a ticket
func (c *Client) SuggestSolutions(ctx context.Context, ticketID string, limit int) (*SuggestionResult, error) {
	var result SuggestionResult
	req := map[string]interface{}{"ticket_id": ticketID, "limit": limit}
	if err := c.post(ctx, "/api/v1/workflow/auto-solution-suggestions", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AwardPoints records a gamification action for a team
func (c *Client) AwardPoints(ctx context.Context, teamID, action, ticketID string) (*AwardResult, error) {
	var result AwardResult
	req := map[string]string{"team_id": teamID, "action": action, "ticket_id": ticketID}
	if err := c.post(ctx, "/api/v1/workflow/gamified-workflow", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	_, err := c.doRequest(ctx, "GET", "/health", nil)
	return err
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	resp, err := c.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return err
	}
	return decodeEnvelope(resp, out)
}

func (c *Client) post(ctx context.Context, path string, req, out interface{}) error {
	var body io.Reader
	if req != nil {
		data, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	resp, err := c.doRequest(ctx, "POST", path, body)
	if err != nil {
		return err
	}
	return decodeEnvelope(resp, out)
}

// decodeEnvelope unwraps the success/data/error envelope
func decodeEnvelope(resp []byte, out interface{}) error {
	var env envelope
	if err := json.Unmarshal(resp, &env); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !env.Success {
		if env.Error != nil {
			return fmt.Errorf("API error: %s - %s", env.Error.Code, env.Error.Message)
		}
		return fmt.Errorf("API error: request failed")
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to unmarshal response data: %w", err)
	}
	return nil
}

// doRequest performs an HTTP request
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
