package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// imageSurface draws into an offscreen ebiten image. A zero-sized surface has
// no image and ignores drawing.
type imageSurface struct {
	img  *ebiten.Image
	w, h int
}

func (s *imageSurface) SetSize(w, h int) {
	if w == s.w && h == s.h && s.img != nil {
		s.img.Clear()
		return
	}
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	s.w, s.h = w, h
	if w > 0 && h > 0 {
		s.img = ebiten.NewImage(w, h)
	}
}

func (s *imageSurface) Clear() {
	if s.img != nil {
		s.img.Clear()
	}
}

func (s *imageSurface) Line(x1, y1, x2, y2, width float64, c color.NRGBA) {
	if s.img == nil {
		return
	}
	vector.StrokeLine(s.img, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), c, true)
}

func (s *imageSurface) Circle(x, y, r float64, c color.NRGBA) {
	if s.img == nil {
		return
	}
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r), c, true)
}

// drawTo composites the surface onto screen with its top-left corner at (x, y)
func (s *imageSurface) drawTo(screen *ebiten.Image, x, y int) {
	if s.img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(s.img, op)
}

func (s *imageSurface) release() {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	s.w, s.h = 0, 0
}
