// Package rules loads the decision-rule tables (category keywords,
// priority ladder, escalation ladder, points table) from YAML files.
// Built-in defaults cover every table, so a missing or partial rules
// directory is not an error.
package rules

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/opsdesk/helpdesk-engine/internal/decision"
	"github.com/opsdesk/helpdesk-engine/internal/models"
)

// Set bundles every rule table the decision layer consumes.
type Set struct {
	Categories decision.KeywordTable
	Priorities decision.PriorityLadder
	Escalation decision.Ladder
	Points     decision.PointsTable
}

// Defaults returns the built-in rule set.
func Defaults() *Set {
	return &Set{
		Categories: decision.KeywordTable{
			Order: []string{"Network", "Software", "Hardware", "Security", "Account", "General"},
			Keywords: map[string][]string{
				"Network":  {"network", "vpn", "wifi", "internet", "connection", "router", "dns"},
				"Software": {"software", "application", "program", "bug", "crash"},
				"Hardware": {"computer", "printer", "server", "device", "laptop"},
				"Security": {"security", "breach", "virus", "malware", "firewall", "phishing"},
				"Account":  {"login", "password", "account", "access", "permission"},
				"General":  {"help", "question", "request"},
			},
			Default: "General",
		},
		Priorities: decision.PriorityLadder{
			Tiers: []decision.PriorityTier{
				{Priority: models.PriorityUrgent, Keywords: []string{"urgent", "critical", "down", "broken", "emergency"}},
				{Priority: models.PriorityHigh, Keywords: []string{"important", "asap", "soon", "priority"}},
				{Priority: models.PriorityMedium, Keywords: []string{"normal", "standard", "routine"}},
			},
			Fallback: models.PriorityLow,
		},
		Escalation: decision.DefaultLadder(),
		Points:     decision.DefaultPointsTable(),
	}
}

// Loader manages loading and hot-swapping of the rule set.
type Loader struct {
	mu  sync.RWMutex
	set *Set
}

// NewLoader creates a loader seeded with the built-in defaults.
func NewLoader() *Loader {
	return &Loader{set: Defaults()}
}

// Rules returns the current rule set. The returned pointer is treated as
// immutable by callers; loads swap in a fresh set instead of mutating.
func (l *Loader) Rules() *Set {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.set
}

// LoadFromDir loads every YAML file in dir, merging each into the current
// rule set. Files only need to declare the sections they override.
func (l *Loader) LoadFromDir(dir string) error {
	slog.Info("loading decision rules from directory", "dir", dir)

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}

	loaded := 0
	for _, file := range files {
		if err := l.LoadFromFile(file); err != nil {
			slog.Warn("failed to load rule file", "file", file, "error", err)
			continue
		}
		loaded++
	}

	slog.Info("decision rules loaded", "count", loaded, "total_files", len(files))
	return nil
}

// LoadFromFile merges a single YAML rule file into the current set.
func (l *Loader) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := *l.set

	if rf.Categories != nil {
		table := decision.KeywordTable{
			Keywords: make(map[string][]string),
			Default:  rf.Categories.Default,
		}
		for _, entry := range rf.Categories.Table {
			if entry.Name == "" {
				return fmt.Errorf("category entry with empty name in %s", path)
			}
			table.Order = append(table.Order, entry.Name)
			table.Keywords[entry.Name] = entry.Keywords
		}
		if table.Default == "" && len(table.Order) > 0 {
			table.Default = table.Order[len(table.Order)-1]
		}
		next.Categories = table
	}

	if rf.Priorities != nil {
		ladder := decision.PriorityLadder{
			Fallback: models.Priority(rf.Priorities.Fallback),
		}
		for _, tier := range rf.Priorities.Tiers {
			ladder.Tiers = append(ladder.Tiers, decision.PriorityTier{
				Priority: models.Priority(tier.Priority),
				Keywords: tier.Keywords,
			})
		}
		if ladder.Fallback == "" {
			ladder.Fallback = models.PriorityLow
		}
		next.Priorities = ladder
	}

	if rf.Escalation != nil {
		if len(rf.Escalation.Rungs) == 0 {
			return fmt.Errorf("escalation ladder without rungs in %s", path)
		}
		next.Escalation = decision.Ladder{
			Rungs:  rf.Escalation.Rungs,
			Beyond: rf.Escalation.Beyond,
		}
		if next.Escalation.Beyond == "" {
			next.Escalation.Beyond = next.Escalation.Rungs[len(next.Escalation.Rungs)-1]
		}
	}

	if rf.Points != nil {
		table := decision.PointsTable{
			Base:        make(map[models.Priority]int),
			DefaultBase: rf.Points.DefaultBase,
			SLABonus:    rf.Points.SLABonus,
			FastBonus:   rf.Points.FastBonus,
			FastBadge:   rf.Points.FastBadge,
		}
		for tier, pts := range rf.Points.Base {
			table.Base[models.Priority(tier)] = pts
		}
		for _, m := range rf.Points.Milestones {
			table.Milestones = append(table.Milestones, decision.Milestone{
				Resolved: m.Resolved,
				Badge:    m.Badge,
			})
		}
		next.Points = table
	}

	l.set = &next
	return nil
}

// YAML file structures

type ruleFile struct {
	Categories *categoriesSection `yaml:"categories"`
	Priorities *prioritiesSection `yaml:"priorities"`
	Escalation *escalationSection `yaml:"escalation"`
	Points     *pointsSection     `yaml:"points"`
}

type categoriesSection struct {
	Default string `yaml:"default"`
	Table   []struct {
		Name     string   `yaml:"name"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"table"`
}

type prioritiesSection struct {
	Fallback string `yaml:"fallback"`
	Tiers    []struct {
		Priority string   `yaml:"priority"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"tiers"`
}

type escalationSection struct {
	Rungs  []string `yaml:"rungs"`
	Beyond string   `yaml:"beyond"`
}

type pointsSection struct {
	Base        map[string]int `yaml:"base"`
	DefaultBase int            `yaml:"default_base"`
	SLABonus    int            `yaml:"sla_bonus"`
	FastBonus   int            `yaml:"fast_bonus"`
	FastBadge   string         `yaml:"fast_badge"`
	Milestones  []struct {
		Resolved int    `yaml:"resolved"`
		Badge    string `yaml:"badge"`
	} `yaml:"milestones"`
}
