// Package notify builds outbound notifications for escalation events.
// Builders are registered per channel so new channels (pager, SMS) can
// be added without touching the workflow engine.
package notify

import (
	"fmt"
	"strings"
	"sync"
)

// Notification is a channel-agnostic outbound message
type Notification struct {
	Channel   string `json:"channel"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject,omitempty"`
	Message   string `json:"message"`
}

// Builder produces a notification for an escalation target
type Builder interface {
	Build(ticketID, target, reason string) Notification
}

// Registry holds the registered notification builders
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
	order    []string
}

// NewRegistry creates an empty builder registry
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]Builder),
	}
}

// Register adds a builder under the given channel name. Registering the
// same channel twice replaces the builder but keeps its position.
func (r *Registry) Register(channel string, b Builder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.builders[channel]; !exists {
		r.order = append(r.order, channel)
	}
	r.builders[channel] = b
}

// Channels returns the registered channel names in registration order
func (r *Registry) Channels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// BuildAll produces one notification per registered channel
func (r *Registry) BuildAll(ticketID, target, reason string) []Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Notification, 0, len(r.order))
	for _, channel := range r.order {
		out = append(out, r.builders[channel].Build(ticketID, target, reason))
	}
	return out
}

// EmailBuilder addresses the escalation target by their derived
// company address.
type EmailBuilder struct {
	Domain string
}

func (b EmailBuilder) Build(ticketID, target, reason string) Notification {
	domain := b.Domain
	if domain == "" {
		domain = "company.com"
	}
	local := strings.ReplaceAll(strings.ToLower(target), " ", ".")
	return Notification{
		Channel:   "email",
		Recipient: local + "@" + domain,
		Subject:   "Escalated Ticket: " + ticketID,
		Message:   fmt.Sprintf("Ticket %s has been escalated to %s. Reason: %s", ticketID, target, reason),
	}
}

// SlackBuilder posts escalations to the incident channel
type SlackBuilder struct {
	Channel string
}

func (b SlackBuilder) Build(ticketID, target, reason string) Notification {
	channel := b.Channel
	if channel == "" {
		channel = "#incident-management"
	}
	return Notification{
		Channel:   "slack",
		Recipient: channel,
		Message:   fmt.Sprintf(":rotating_light: Ticket %s escalated to %s (%s)", ticketID, target, reason),
	}
}

// DefaultRegistry returns a registry with the standard escalation
// channels wired in.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("email", EmailBuilder{})
	r.Register("slack", SlackBuilder{})
	return r
}
