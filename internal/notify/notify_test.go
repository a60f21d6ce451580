package notify

import (
	"strings"
	"testing"
)

func TestEmailBuilderRecipient(t *testing.T) {
	b := EmailBuilder{}
	n := b.Build("TKT-1", "Team Lead", "sla risk")

	if n.Recipient != "team.lead@company.com" {
		t.Errorf("expected derived address, got %s", n.Recipient)
	}
	if n.Subject != "Escalated Ticket: TKT-1" {
		t.Errorf("unexpected subject: %s", n.Subject)
	}
	if !strings.Contains(n.Message, "Team Lead") || !strings.Contains(n.Message, "sla risk") {
		t.Errorf("message missing target or reason: %s", n.Message)
	}
}

func TestEmailBuilderCustomDomain(t *testing.T) {
	b := EmailBuilder{Domain: "example.org"}
	n := b.Build("TKT-2", "Manager", "breach")

	if n.Recipient != "manager@example.org" {
		t.Errorf("expected custom domain, got %s", n.Recipient)
	}
}

func TestSlackBuilderDefaultChannel(t *testing.T) {
	b := SlackBuilder{}
	n := b.Build("TKT-3", "Director", "repeated breaches")

	if n.Recipient != "#incident-management" {
		t.Errorf("expected incident channel, got %s", n.Recipient)
	}
	if !strings.Contains(n.Message, "TKT-3") {
		t.Errorf("message missing ticket id: %s", n.Message)
	}
}

func TestRegistryBuildsInOrder(t *testing.T) {
	r := DefaultRegistry()

	got := r.BuildAll("TKT-4", "VP", "executive request")
	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if got[0].Channel != "email" || got[1].Channel != "slack" {
		t.Errorf("unexpected channel order: %s, %s", got[0].Channel, got[1].Channel)
	}
}

func TestRegistryReplaceKeepsOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("email", EmailBuilder{})
	r.Register("slack", SlackBuilder{})
	r.Register("email", EmailBuilder{Domain: "example.org"})

	channels := r.Channels()
	if len(channels) != 2 || channels[0] != "email" || channels[1] != "slack" {
		t.Errorf("re-registering must keep position, got %v", channels)
	}

	got := r.BuildAll("TKT-5", "Manager", "reason")
	if !strings.HasSuffix(got[0].Recipient, "@example.org") {
		t.Errorf("expected replaced builder to be used, got %s", got[0].Recipient)
	}
}
