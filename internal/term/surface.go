package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// glyph ramp from faint to dense
var ramp = []rune{' ', '·', '∙', '•', '●'}

type cell struct {
	intensity float64
	r, g, b   uint8
}

// Surface rasterises lines and circles onto a cell grid. Surface pixels map to
// cells through a fixed cell size, so a particle field keeps its pixel-based
// tunables on a terminal.
type Surface struct {
	cellW, cellH float64
	cols, rows   int
	cells        []cell
}

func NewSurface(cellW, cellH float64) *Surface {
	return &Surface{cellW: cellW, cellH: cellH}
}

// Grid returns the surface size in cells
func (s *Surface) Grid() (cols, rows int) {
	return s.cols, s.rows
}

// SetSize takes the size in surface pixels
func (s *Surface) SetSize(w, h int) {
	s.cols = int(float64(w) / s.cellW)
	s.rows = int(float64(h) / s.cellH)
	if s.cols < 0 || s.rows < 0 {
		s.cols, s.rows = 0, 0
	}
	s.cells = make([]cell, s.cols*s.rows)
}

func (s *Surface) Clear() {
	clear(s.cells)
}

func (s *Surface) Line(x1, y1, x2, y2, width float64, c color.NRGBA) {
	if len(s.cells) == 0 {
		return
	}
	// DDA in cell space
	cx1, cy1 := x1/s.cellW, y1/s.cellH
	cx2, cy2 := x2/s.cellW, y2/s.cellH
	steps := int(math.Ceil(math.Max(math.Abs(cx2-cx1), math.Abs(cy2-cy1))))
	if steps == 0 {
		s.plot(int(cx1), int(cy1), c)
		return
	}
	dx := (cx2 - cx1) / float64(steps)
	dy := (cy2 - cy1) / float64(steps)
	for i := 0; i <= steps; i++ {
		s.plot(int(cx1+dx*float64(i)), int(cy1+dy*float64(i)), c)
	}
}

func (s *Surface) Circle(x, y, r float64, c color.NRGBA) {
	// a particle is smaller than a cell; scale its weight by size
	boosted := c
	boosted.A = uint8(math.Min(255, float64(c.A)*(0.5+r/4)))
	s.plot(int(x/s.cellW), int(y/s.cellH), boosted)
}

func (s *Surface) plot(col, row int, c color.NRGBA) {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return
	}
	a := float64(c.A) / 255
	cl := &s.cells[row*s.cols+col]
	cl.intensity = math.Min(1, cl.intensity+a)
	if a > 0 {
		cl.r, cl.g, cl.b = c.R, c.G, c.B
	}
}

// Intensity returns the accumulated coverage of a cell in [0,1]
func (s *Surface) Intensity(col, row int) float64 {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return 0
	}
	return s.cells[row*s.cols+col].intensity
}

// Flush writes the grid onto screen starting at its origin. Empty cells are
// written as blanks so stale glyphs disappear.
func (s *Surface) Flush(screen tcell.Screen) {
	base := tcell.StyleDefault.Background(tcell.ColorReset)
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			cl := s.cells[row*s.cols+col]
			glyph := glyphFor(cl.intensity)
			style := base
			if glyph != ' ' {
				k := 0.35 + 0.65*cl.intensity
				style = base.Foreground(tcell.NewRGBColor(
					int32(float64(cl.r)*k), int32(float64(cl.g)*k), int32(float64(cl.b)*k)))
			}
			screen.SetContent(col, row, glyph, nil, style)
		}
	}
}

func glyphFor(intensity float64) rune {
	if intensity <= 0.02 {
		return ramp[0]
	}
	idx := 1 + int(intensity*float64(len(ramp)-1))
	if idx >= len(ramp) {
		idx = len(ramp) - 1
	}
	return ramp[idx]
}
