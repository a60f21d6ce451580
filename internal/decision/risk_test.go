package decision

import "testing"

func TestScoreEqualWeights(t *testing.T) {
	cfg := DefaultRiskConfig()

	cases := []struct {
		factors RiskFactors
		want    float64
	}{
		{RiskFactors{}, 0},
		{RiskFactors{TimeRemainingLow: true}, 0.25},
		{RiskFactors{TimeRemainingLow: true, PriorityHigh: true}, 0.5},
		{RiskFactors{TimeRemainingLow: true, PriorityHigh: true, TeamOverloaded: true}, 0.75},
		{RiskFactors{TimeRemainingLow: true, PriorityHigh: true, TeamOverloaded: true, AlreadyEscalated: true}, 1},
	}

	for _, tc := range cases {
		if got := cfg.Score(tc.factors); got != tc.want {
			t.Errorf("Score(%+v) = %v, want %v", tc.factors, got, tc.want)
		}
	}
}

func TestScoreIsMonotonic(t *testing.T) {
	cfg := DefaultRiskConfig()

	prev := cfg.Score(RiskFactors{})
	steps := []RiskFactors{
		{TimeRemainingLow: true},
		{TimeRemainingLow: true, PriorityHigh: true},
		{TimeRemainingLow: true, PriorityHigh: true, TeamOverloaded: true},
		{TimeRemainingLow: true, PriorityHigh: true, TeamOverloaded: true, AlreadyEscalated: true},
	}
	for _, f := range steps {
		score := cfg.Score(f)
		if score < prev {
			t.Errorf("score decreased from %v to %v when adding a factor", prev, score)
		}
		prev = score
	}
}

func TestBreachThresholdIsStrict(t *testing.T) {
	cfg := DefaultRiskConfig()

	// Exactly two of four factors puts the score at the threshold, which
	// must not count as a breach.
	score := cfg.Score(RiskFactors{TimeRemainingLow: true, PriorityHigh: true})
	if score != 0.5 {
		t.Fatalf("expected score 0.5, got %v", score)
	}
	if cfg.Breach(score) {
		t.Error("score equal to threshold must not predict a breach")
	}

	score = cfg.Score(RiskFactors{TimeRemainingLow: true, PriorityHigh: true, TeamOverloaded: true})
	if !cfg.Breach(score) {
		t.Error("score above threshold must predict a breach")
	}
}

func TestScoreCustomWeights(t *testing.T) {
	cfg := RiskConfig{
		Threshold: 0.5,
		Weights: map[string]float64{
			FactorTimeRemaining: 3,
			FactorPriority:      1,
			FactorTeamLoad:      1,
			FactorEscalation:    1,
		},
	}

	// Time remaining alone carries 3 of 6 total weight.
	got := cfg.Score(RiskFactors{TimeRemainingLow: true})
	if got != 0.5 {
		t.Errorf("weighted score = %v, want 0.5", got)
	}
}
