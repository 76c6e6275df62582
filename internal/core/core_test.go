package core

import "testing"

func TestRectContainsClosed(t *testing.T) {
	r := NewRect(10, 30, 5, 25)

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"inside", 15, 20, true},
		{"top-left corner", 5, 10, true},
		{"bottom-right corner", 25, 30, true},
		{"left edge", 5, 20, true},
		{"outside left", 4.9, 20, false},
		{"outside right", 25.1, 20, false},
		{"outside top", 15, 9.9, false},
		{"outside bottom", 15, 30.1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%.1f, %.1f) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestNewRectOrdersBounds(t *testing.T) {
	r := NewRect(30, 10, 25, 5)
	if r != (Rect{StartY: 10, EndY: 30, LeftX: 5, RightX: 25}) {
		t.Errorf("NewRect did not order bounds: %+v", r)
	}
	if r.Width() != 20 || r.Height() != 20 {
		t.Errorf("size = %.0fx%.0f, expected 20x20", r.Width(), r.Height())
	}
}

func TestRectIntersects(t *testing.T) {
	base := NewRect(0, 10, 0, 10)

	tests := []struct {
		name     string
		other    Rect
		expected bool
	}{
		{"overlapping", NewRect(5, 15, 5, 15), true},
		{"contained", NewRect(2, 4, 2, 4), true},
		{"touching edge", NewRect(10, 20, 0, 10), true},
		{"apart horizontally", NewRect(0, 10, 11, 20), false},
		{"apart vertically", NewRect(11, 20, 0, 10), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Intersects(tc.other); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.other.Intersects(base); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectPad(t *testing.T) {
	r := NewRect(10, 20, 30, 40).Pad(5)
	want := Rect{StartY: 5, EndY: 25, LeftX: 25, RightX: 45}
	if r != want {
		t.Errorf("Pad = %+v, expected %+v", r, want)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
	if got := ClampF(-5.5, 0, 10); got != 0 {
		t.Errorf("ClampF(-5.5, 0, 10) = %f, expected 0", got)
	}
}

func TestScreenCells(t *testing.T) {
	s := NewScreen(10, 4)

	if s.Width() != 10 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 10x4", s.Width(), s.Height())
	}
	if c := s.GetCell(3, 3); c.Rune != ' ' || c.Color != ColorDefault {
		t.Errorf("new screen cell = %+v, expected blank", c)
	}

	s.Set(2, 1, '#', ColorCliff)
	if c := s.GetCell(2, 1); c.Rune != '#' || c.Color != ColorCliff {
		t.Errorf("GetCell = %+v, expected # cliff", c)
	}

	// Out of bounds is ignored
	s.Set(-1, 0, 'X', ColorText)
	s.Set(10, 0, 'X', ColorText)
	if s.Get(-1, 0) != ' ' || s.Get(0, 4) != ' ' {
		t.Error("out of bounds Get should return space")
	}

	s.Clear()
	if s.Get(2, 1) != ' ' {
		t.Error("Clear should blank every cell")
	}
}

func TestScreenDrawTextAndString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA", ColorText)
	s.DrawHLine(0, 1, 5, '=', ColorBoundary)
	s.DrawText(3, 2, "Tête", ColorText)

	want := "AAAAA\n=====\n   Tê"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, expected %q", got, want)
	}
	if s.GetCell(4, 1).Color != ColorBoundary {
		t.Error("DrawHLine should color the line")
	}
	if s.Row(-1) != "     " {
		t.Errorf("out of bounds row = %q", s.Row(-1))
	}
}
