package term

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func TestSurfaceGrid(t *testing.T) {
	s := NewSurface(8, 16)
	s.SetSize(640, 400)
	if cols, rows := s.Grid(); cols != 80 || rows != 25 {
		t.Errorf("Grid() = %dx%d, want 80x25", cols, rows)
	}
	s.SetSize(-8, 100)
	if cols, rows := s.Grid(); cols != 0 || rows != 0 {
		t.Errorf("negative size gave %dx%d", cols, rows)
	}
	// drawing on an empty grid is harmless
	s.Line(0, 0, 100, 100, 1, white)
	s.Circle(10, 10, 2, white)
}

func TestSurfaceCircle(t *testing.T) {
	s := NewSurface(8, 16)
	s.SetSize(80, 80)

	s.Circle(20, 40, 2, color.NRGBA{R: 255, A: 102})
	if got := s.Intensity(2, 2); got <= 0 {
		t.Errorf("Intensity(2,2) = %v, want > 0", got)
	}
	if got := s.Intensity(0, 0); got != 0 {
		t.Errorf("untouched cell has intensity %v", got)
	}

	s.Circle(-5, 40, 2, white)
	s.Circle(20, 500, 2, white)

	s.Clear()
	if got := s.Intensity(2, 2); got != 0 {
		t.Errorf("Intensity after Clear = %v", got)
	}
}

func TestSurfaceLine(t *testing.T) {
	s := NewSurface(8, 16)
	s.SetSize(80, 160) // 10x10 cells

	s.Line(4, 8, 76, 8, 1, white)
	for col := 0; col < 10; col++ {
		if s.Intensity(col, 0) != 1 {
			t.Errorf("col %d not covered", col)
		}
	}
	if s.Intensity(0, 1) != 0 {
		t.Error("line bled into the next row")
	}

	s.Clear()
	s.Line(4, 8, 4, 8, 1, white)
	if s.Intensity(0, 0) != 1 {
		t.Error("zero-length line not plotted")
	}
}

func TestSurfaceIntensitySaturates(t *testing.T) {
	s := NewSurface(8, 16)
	s.SetSize(8, 16)
	half := color.NRGBA{G: 255, A: 128}
	for i := 0; i < 5; i++ {
		s.Line(0, 0, 1, 1, 1, half)
	}
	if got := s.Intensity(0, 0); got != 1 {
		t.Errorf("Intensity = %v, want 1", got)
	}
}

func TestGlyphFor(t *testing.T) {
	tests := []struct {
		intensity float64
		want      rune
	}{
		{0, ' '},
		{0.01, ' '},
		{0.1, '·'},
		{0.3, '∙'},
		{0.6, '•'},
		{1, '●'},
	}
	for _, tt := range tests {
		if got := glyphFor(tt.intensity); got != tt.want {
			t.Errorf("glyphFor(%v) = %q, want %q", tt.intensity, got, tt.want)
		}
	}
}

func TestSurfaceFlush(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(10, 5)

	s := NewSurface(8, 16)
	s.SetSize(80, 80)
	s.Circle(4, 8, 4, white)

	screen.SetContent(3, 3, 'x', nil, tcell.StyleDefault)
	s.Flush(screen)

	if r, _, style, _ := screen.GetContent(0, 0); r != '●' {
		t.Errorf("cell (0,0) = %q, want '●'", r)
	} else if fg, _, _ := style.Decompose(); fg == tcell.ColorDefault {
		t.Error("particle cell has no foreground colour")
	}
	if r, _, _, _ := screen.GetContent(3, 3); r != ' ' {
		t.Errorf("stale glyph %q not cleared", r)
	}
}
