package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-farm/internal/core"
)

// shadeLevels is the number of night shades a dimmable color has.
const shadeLevels = 3

// palette holds the 256-color codes of each color from daylight to
// deepest night. HUD colors use one code for all shades.
var palette = map[core.Color][shadeLevels]string{
	core.ColorDefault:  {"", "", ""},
	core.ColorGrass:    {"70", "64", "22"},
	core.ColorDirt:     {"137", "94", "58"},
	core.ColorWater:    {"39", "31", "24"},
	core.ColorSprout:   {"112", "71", "29"},
	core.ColorWheat:    {"220", "178", "136"},
	core.ColorTomato:   {"196", "160", "88"},
	core.ColorPlayer:   {"231", "253", "249"},
	core.ColorText:     {"252", "252", "252"},
	core.ColorMuted:    {"243", "243", "243"},
	core.ColorAccent:   {"229", "229", "229"},
	core.ColorProgress: {"214", "214", "214"},
	core.ColorBorder:   {"240", "240", "240"},
}

// colorStyles maps core.Color to lipgloss styles, one map per shade.
var colorStyles = buildStyles()

func buildStyles() [shadeLevels]map[core.Color]lipgloss.Style {
	var styles [shadeLevels]map[core.Color]lipgloss.Style
	for level := range styles {
		styles[level] = make(map[core.Color]lipgloss.Style, len(palette))
		for c, codes := range palette {
			style := lipgloss.NewStyle()
			if codes[level] != "" {
				style = style.Foreground(lipgloss.Color(codes[level]))
			}
			switch c {
			case core.ColorPlayer, core.ColorAccent:
				style = style.Bold(true)
			}
			styles[level][c] = style
		}
	}
	return styles
}

// shadeFor maps a night overlay opacity to a shade level.
func shadeFor(nightAlpha float64) int {
	switch {
	case nightAlpha < 0.25:
		return 0
	case nightAlpha < 0.65:
		return 1
	default:
		return 2
	}
}

// styleFor returns the style of c under the given night opacity.
func styleFor(c core.Color, nightAlpha float64) lipgloss.Style {
	level := 0
	if c.Dimmable() {
		level = shadeFor(nightAlpha)
	}
	style, ok := colorStyles[level][c]
	if !ok {
		return colorStyles[0][core.ColorDefault]
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// World colors are darkened according to nightAlpha. Adjacent cells with the
// same color are styled as one run to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, nightAlpha float64) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, run := range s.Runs(y) {
			sb.WriteString(styleFor(run.Color, nightAlpha).Render(run.Text))
		}
	}
	return sb.String()
}
