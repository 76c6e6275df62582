package level

// BonusType names an optional objective.
type BonusType string

const (
	BonusSpeedRun  BonusType = "speed_run"
	BonusPrecision BonusType = "precision_grooming"
	BonusNoTumble  BonusType = "no_tumble"
)

// BonusObjective is an optional goal awarding an extra star.
type BonusObjective struct {
	Type   BonusType `yaml:"type"`
	Target int       `yaml:"target"`
}

// BonusObjectives derives the bonus objectives of d from its time limit,
// coverage target and winch.
func BonusObjectives(d Descriptor) []BonusObjective {
	var out []BonusObjective
	if d.TimeLimit > 0 {
		out = append(out, BonusObjective{Type: BonusSpeedRun, Target: SpeedRunTarget(d.TimeLimit)})
	}
	if d.TargetCoverage > 0 {
		out = append(out, BonusObjective{Type: BonusPrecision, Target: min(d.TargetCoverage+5, 100)})
	}
	if d.HasWinch {
		out = append(out, BonusObjective{Type: BonusNoTumble})
	}
	return out
}

// Stars rates a finished run: one star for completing it, one for beating
// the speed-run target and one for reaching the precision target.
func Stars(d Descriptor, elapsedSecs, coverage int, completed bool) int {
	if !completed {
		return 0
	}
	stars := 1
	for _, b := range d.BonusObjectives {
		switch b.Type {
		case BonusSpeedRun:
			if elapsedSecs <= b.Target {
				stars++
			}
		case BonusPrecision:
			if coverage >= b.Target {
				stars++
			}
		}
	}
	return stars
}
