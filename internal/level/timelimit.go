package level

import "math"

// Time budget calibration. The groom rate works out to about 14 tiles²/s.
const (
	VehicleSpeed = 150.0 // pixels per second
	GroomWidth   = 24.0  // pixels
	TileSize     = 16.0  // pixels

	NavOverhead      = 0.3
	PathTimeSeconds  = 10
	WinchTimeSeconds = 15
	TimeGranularity  = 30
	SpeedRunFactor   = 0.6
)

// timeFloors holds the minimum limit per difficulty, in seconds.
var timeFloors = map[Difficulty]int{
	Green: 60,
	Blue:  60,
	Red:   60,
	Black: 60,
	Park:  60,
}

// GroomRate returns the tiles groomed per second at full speed.
func GroomRate() float64 {
	return (VehicleSpeed / TileSize) * (GroomWidth / TileSize)
}

// TimeFloor returns the minimum time limit for d.
func TimeFloor(d Difficulty) int {
	if f, ok := timeFloors[d]; ok {
		return f
	}
	return 60
}

// ComputeTimeLimit returns the time limit for d in seconds, rounded up to
// the next 30s. Tutorial levels are untimed and return 0.
func ComputeTimeLimit(d Descriptor) int {
	if d.Difficulty == Tutorial {
		return 0
	}

	tilesToGroom := float64(d.Width) * float64(d.Height) * (float64(d.TargetCoverage) / 100)
	base := (tilesToGroom / GroomRate()) * NavOverhead * d.Difficulty.Scale()

	raw := base + float64(len(d.AccessPaths)*PathTimeSeconds)
	if d.HasWinch {
		raw += WinchTimeSeconds
	}

	limit := math.Max(raw, float64(TimeFloor(d.Difficulty)))
	return int(math.Ceil(limit/TimeGranularity)) * TimeGranularity
}

// SpeedRunTarget returns the bonus speed-run target for a time limit.
func SpeedRunTarget(timeLimit int) int {
	return int(math.Round(float64(timeLimit) * SpeedRunFactor))
}
