package core

import (
	"strings"
)

// Cell is one character of the screen buffer with its semantic color.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' ', Color: ColorDefault}

// Screen is a 2D cell buffer. Renderers draw runes and colors into it and the
// platform turns it into styled terminal output.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a blank screen with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  max(0, width),
		height: max(0, height),
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	width, height = max(0, width), max(0, height)
	if width == s.width && height == s.height {
		return
	}

	old := s.cells
	copyW := min(s.width, width)
	copyH := min(s.height, height)

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	for y := 0; y < copyH; y++ {
		copy(s.cells[y][:copyW], old[y][:copyW])
	}
}

// Clear fills the screen with uncolored spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blank
		}
	}
}

// SetCell places a cell at (x, y). Out-of-bounds coordinates are ignored.
func (s *Screen) SetCell(x, y int, c Cell) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = c
}

// GetCell returns the cell at (x, y), or a blank cell out of bounds.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return blank
	}
	return s.cells[y][x]
}

// DrawText writes text horizontally starting at (x, y), clipped to the screen.
func (s *Screen) DrawText(x, y int, text string, c Color) {
	i := 0
	for _, r := range text {
		s.SetCell(x+i, y, Cell{Rune: r, Color: c})
		i++
	}
}

// DrawTextCentered draws text centered horizontally on row y.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	n := len([]rune(text))
	s.DrawText((s.width-n)/2, y, text, c)
}

// DrawRect fills r with the given cell.
func (s *Screen) DrawRect(r Rect, fill Cell) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.SetCell(x, y, fill)
		}
	}
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(r Rect, c Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	s.SetCell(r.X, r.Y, Cell{'┌', c})
	s.SetCell(r.Right()-1, r.Y, Cell{'┐', c})
	s.SetCell(r.X, r.Bottom()-1, Cell{'└', c})
	s.SetCell(r.Right()-1, r.Bottom()-1, Cell{'┘', c})

	for x := r.X + 1; x < r.Right()-1; x++ {
		s.SetCell(x, r.Y, Cell{'─', c})
		s.SetCell(x, r.Bottom()-1, Cell{'─', c})
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.SetCell(r.X, y, Cell{'│', c})
		s.SetCell(r.Right()-1, y, Cell{'│', c})
	}
}

// DrawHLine draws a horizontal line of length cells starting at (x, y).
func (s *Screen) DrawHLine(x, y, length int, c Cell) {
	for i := 0; i < length; i++ {
		s.SetCell(x+i, y, c)
	}
}

// String converts the buffer to plain text, rows joined with newlines.
func (s *Screen) String() string {
	rows := make([]string, s.height)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}

// Row returns row y as plain text.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// Runs splits row y into maximal spans of equal color, so a renderer can style
// each span once instead of per cell.
func (s *Screen) Runs(y int) []Run {
	if y < 0 || y >= s.height || s.width == 0 {
		return nil
	}
	var runs []Run
	var sb strings.Builder
	color := s.GetCell(0, y).Color
	for x := 0; x < s.width; x++ {
		c := s.GetCell(x, y)
		if c.Color != color {
			runs = append(runs, Run{Text: sb.String(), Color: color})
			sb.Reset()
			color = c.Color
		}
		sb.WriteRune(c.Rune)
	}
	return append(runs, Run{Text: sb.String(), Color: color})
}

// Run is a horizontal span of same-colored text.
type Run struct {
	Text  string
	Color Color
}
