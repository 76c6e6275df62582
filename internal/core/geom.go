// Package core provides the pixel-space rectangle and the character screen
// buffer shared by the geometry engine and the preview renderer. It has no
// terminal dependencies.
package core

// Rect is an axis-aligned box in pixels. All four bounds are inclusive.
type Rect struct {
	StartY, EndY  float64
	LeftX, RightX float64
}

// NewRect creates a rectangle, ordering the bounds.
func NewRect(startY, endY, leftX, rightX float64) Rect {
	return Rect{
		StartY: min(startY, endY),
		EndY:   max(startY, endY),
		LeftX:  min(leftX, rightX),
		RightX: max(leftX, rightX),
	}
}

// Width returns the horizontal size.
func (r Rect) Width() float64 {
	return r.RightX - r.LeftX
}

// Height returns the vertical size.
func (r Rect) Height() float64 {
	return r.EndY - r.StartY
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.LeftX && x <= r.RightX && y >= r.StartY && y <= r.EndY
}

// Intersects reports whether r and other share at least one point.
func (r Rect) Intersects(other Rect) bool {
	if r.LeftX > other.RightX || other.LeftX > r.RightX {
		return false
	}
	if r.StartY > other.EndY || other.StartY > r.EndY {
		return false
	}
	return true
}

// Pad grows r by margin on every side.
func (r Rect) Pad(margin float64) Rect {
	return Rect{
		StartY: r.StartY - margin,
		EndY:   r.EndY + margin,
		LeftX:  r.LeftX - margin,
		RightX: r.RightX + margin,
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
