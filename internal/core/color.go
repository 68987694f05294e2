package core

// Color is the semantic color of a screen cell. The presentation layer maps
// each value to a terminal color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGrass
	ColorDirt
	ColorWater
	ColorSprout
	ColorWheat
	ColorTomato
	ColorPlayer
	ColorText
	ColorMuted
	ColorAccent
	ColorProgress
	ColorBorder
)

// Dimmable reports whether night shading applies to the color.
// HUD colors stay readable at night.
func (c Color) Dimmable() bool {
	switch c {
	case ColorGrass, ColorDirt, ColorWater, ColorSprout, ColorWheat, ColorTomato, ColorPlayer:
		return true
	default:
		return false
	}
}
