package level

import "math"

// PisteShape names the centerline function of a run.
type PisteShape string

const (
	Straight    PisteShape = "straight"
	GentleCurve PisteShape = "gentle_curve"
	Winding     PisteShape = "winding"
	Serpentine  PisteShape = "serpentine"
	Wide        PisteShape = "wide"
)

// Shapes lists every piste shape.
var Shapes = []PisteShape{Straight, GentleCurve, Winding, Serpentine, Wide}

// Valid reports whether s is a known shape.
func (s PisteShape) Valid() bool {
	switch s {
	case Straight, GentleCurve, Winding, Serpentine, Wide:
		return true
	}
	return false
}

// Offset returns the horizontal offset of the piste center, as a fraction
// of the level width, at height fraction p in [0, 1].
func (s PisteShape) Offset(p float64) float64 {
	p = math.Max(0, math.Min(1, p))

	switch s {
	case GentleCurve:
		return 0.08 * math.Sin(p*math.Pi*1.5)
	case Winding:
		return 0.12 * math.Sin(p*math.Pi*3)
	case Serpentine:
		return 0.15*math.Sin(p*math.Pi*4) + 0.03*math.Sin(p*math.Pi*9)
	case Wide:
		return 0.04 * math.Sin(p*math.Pi*2)
	default:
		return 0
	}
}
