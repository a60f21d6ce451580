package decision

// Ladder is the fixed role ladder escalations climb. Rungs[0] is the
// target for escalation level 1. Beyond is the open-ended target for any
// level past the last rung, so arbitrarily large levels never error.
type Ladder struct {
	Rungs  []string
	Beyond string
}

// DefaultLadder returns the standard escalation ladder.
func DefaultLadder() Ladder {
	return Ladder{
		Rungs:  []string{"Team Lead", "Manager", "Director", "VP"},
		Beyond: "Executive",
	}
}

// Escalate advances the escalation level by one and returns the target
// role for the new level. Levels below zero are treated as zero, so the
// level never decreases through this function.
func (l Ladder) Escalate(currentLevel int) (int, string) {
	if currentLevel < 0 {
		currentLevel = 0
	}

	next := currentLevel + 1
	if next <= len(l.Rungs) {
		return next, l.Rungs[next-1]
	}
	return next, l.Beyond
}
