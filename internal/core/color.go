package core

// Color is the palette entry of a screen cell. The renderer maps each entry
// to a terminal color.
type Color uint8

// Map palette. ColorBoundary marks the reserved top and bottom rows;
// ColorHazard covers avalanche zones, pylons and snow guns.
const (
	ColorDefault Color = iota
	ColorSnow
	ColorPiste
	ColorBoundary
	ColorCliff
	ColorRoad
	ColorSteep
	ColorAnchor
	ColorTree
	ColorRock
	ColorHazard
	ColorText
	ColorMuted
)
