package decision

// RiskFactors are the named boolean signals feeding SLA-breach prediction.
type RiskFactors struct {
	TimeRemainingLow bool `json:"time_remaining"`
	PriorityHigh     bool `json:"priority"`
	TeamOverloaded   bool `json:"team_availability"`
	AlreadyEscalated bool `json:"escalation_level"`
}

// factor names, used as weight-table keys
const (
	FactorTimeRemaining = "time_remaining"
	FactorPriority      = "priority"
	FactorTeamLoad      = "team_availability"
	FactorEscalation    = "escalation_level"
)

// RiskConfig holds the breach threshold and optional per-factor weights.
// With no weights set, every factor weighs equally and the score is simply
// the fraction of factors that are true.
type RiskConfig struct {
	Threshold float64
	Weights   map[string]float64
}

// DefaultRiskConfig returns the standard configuration: equal weights and
// a strict 0.5 breach threshold.
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{Threshold: 0.5}
}

// Score computes the weighted mean of the true factors, in [0,1]. It is
// monotonic non-decreasing in the number of true factors.
func (c RiskConfig) Score(f RiskFactors) float64 {
	factors := []struct {
		name string
		set  bool
	}{
		{FactorTimeRemaining, f.TimeRemainingLow},
		{FactorPriority, f.PriorityHigh},
		{FactorTeamLoad, f.TeamOverloaded},
		{FactorEscalation, f.AlreadyEscalated},
	}

	var total, hit float64
	for _, fac := range factors {
		w := c.weight(fac.name)
		total += w
		if fac.set {
			hit += w
		}
	}

	if total == 0 {
		return 0
	}
	return hit / total
}

// Breach reports whether a risk score predicts an SLA breach. The
// comparison is strictly greater-than: a score exactly at the threshold
// does not predict a breach.
func (c RiskConfig) Breach(score float64) bool {
	return score > c.Threshold
}

func (c RiskConfig) weight(name string) float64 {
	if c.Weights == nil {
		return 1
	}
	if w, ok := c.Weights[name]; ok && w > 0 {
		return w
	}
	return 1
}
