package level

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// Dimension bounds for a playable run, in tiles.
const (
	MinWidth  = 16
	MaxWidth  = 200
	MinHeight = 30
	MaxHeight = 400
)

// ValidationError describes one structural problem with a descriptor.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks the structural invariants of d and returns the first
// violation, or nil.
func Validate(d Descriptor) error {
	if issues := validationIssues(d); len(issues) > 0 {
		return issues[0]
	}
	return nil
}

// ValidateAll returns every violation of d joined into one error, or nil.
func ValidateAll(d Descriptor) error {
	issues := validationIssues(d)
	if len(issues) == 0 {
		return nil
	}
	errs := lo.Map(issues, func(v ValidationError, _ int) error { return v })
	return errors.Join(errs...)
}

func validationIssues(d Descriptor) []ValidationError {
	var issues []ValidationError
	add := func(code, format string, args ...any) {
		issues = append(issues, ValidationError{Code: code, Message: fmt.Sprintf(format, args...)})
	}

	// Dimensions
	if d.Width < MinWidth || d.Width > MaxWidth || d.Height < MinHeight || d.Height > MaxHeight {
		add("BAD_DIMENSIONS", "size %dx%d outside %d-%d x %d-%d",
			d.Width, d.Height, MinWidth, MaxWidth, MinHeight, MaxHeight)
	}

	// Enumerations
	if !d.Difficulty.Valid() {
		add("BAD_DIFFICULTY", "unknown difficulty %q", d.Difficulty)
	}
	if !d.PisteShape.Valid() {
		add("BAD_SHAPE", "unknown piste shape %q", d.PisteShape)
	}
	if d.Weather != "" && !d.Weather.Valid() {
		add("BAD_WEATHER", "unknown weather %q", d.Weather)
	}
	if d.PisteWidth <= 0 || d.PisteWidth > 1 {
		add("BAD_FRACTION", "piste width %.3f outside (0, 1]", d.PisteWidth)
	}
	if d.TargetCoverage < 0 || d.TargetCoverage > 100 {
		add("BAD_COVERAGE", "target coverage %d outside 0-100", d.TargetCoverage)
	}

	// Steep zones
	for i, z := range d.SteepZones {
		if !inUnit(z.StartY) || !inUnit(z.EndY) || z.StartY >= z.EndY {
			add("ZONE_ORDER", "steep zone %d spans %.3f-%.3f", i, z.StartY, z.EndY)
		}
	}
	zones := append([]SteepZone(nil), d.SteepZones...)
	sort.Slice(zones, func(i, j int) bool { return zones[i].StartY < zones[j].StartY })
	for i := 1; i < len(zones); i++ {
		if zones[i].StartY <= zones[i-1].EndY {
			add("ZONE_OVERLAP", "steep zones %.3f-%.3f and %.3f-%.3f overlap",
				zones[i-1].StartY, zones[i-1].EndY, zones[i].StartY, zones[i].EndY)
		}
	}

	// Winch
	for i, a := range d.WinchAnchors {
		if !inUnit(a.Y) {
			add("BAD_FRACTION", "winch anchor %d at %.3f outside [0, 1]", i, a.Y)
		}
		if z, ok := d.SteepZoneAt(a.Y); ok {
			add("ANCHOR_IN_ZONE", "winch anchor %d at %.3f inside steep zone %.3f-%.3f",
				i, a.Y, z.StartY, z.EndY)
		}
	}
	if d.HasWinch && len(d.WinchAnchors) == 0 {
		add("WINCH_NO_ANCHOR", "winch enabled without anchors")
	}
	if !d.HasWinch && len(d.WinchAnchors) > 0 {
		add("ANCHOR_NO_WINCH", "%d winch anchors on a level without winch", len(d.WinchAnchors))
	}

	// Access paths
	for i, p := range d.AccessPaths {
		if !inUnit(p.StartY) || !inUnit(p.EndY) || p.StartY >= p.EndY {
			add("PATH_ORDER", "access path %d spans %.3f-%.3f", i, p.StartY, p.EndY)
		}
		if !p.Side.Valid() {
			add("PATH_SIDE", "access path %d has side %q", i, p.Side)
		}
	}
	if d.AccessPathsRequired() && len(d.AccessPaths) == 0 {
		add("MISSING_ACCESS_PATH", "cliffs or steep zones present without a service road")
	}
	if !d.AccessPathsRequired() && len(d.AccessPaths) > 0 {
		add("UNEXPECTED_ACCESS_PATH", "service roads on a level without cliffs or steep zones")
	}

	// Park
	if d.Difficulty == Park && len(d.SpecialFeatures) == 0 {
		add("EMPTY_FEATURES", "park level without features")
	}
	if d.Difficulty == Park && (len(d.SteepZones) > 0 || d.HasWinch || d.HasDangerousBoundaries) {
		add("PARK_CONFLICT", "park level with steep zones, winch or cliffs")
	}
	if len(d.SpecialFeatures) > 0 && (len(d.SteepZones) > 0 || d.HasWinch) {
		add("FEATURE_CONFLICT", "park features combined with steep zones or winch")
	}

	return issues
}

func inUnit(f float64) bool {
	return f >= 0 && f <= 1
}
