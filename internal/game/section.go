package game

import (
	"image"

	"github.com/iburimskiy/particle-field/internal/field"
	"github.com/iburimskiy/particle-field/internal/runloop"
)

var _ field.Host = (*section)(nil)

// section is one rectangular region of the window hosting its own particle
// field. It is the field's Host: the window's tick, cursor and minimised
// state are translated into the section's local notifications.
type section struct {
	*runloop.Loop

	name    string
	rect    image.Rectangle
	surface field.Surface
	sim     *field.Simulator

	// pointer tracking for enter/move/leave
	inside bool
	last   image.Point
}

func newSection(name string, clock runloop.Clock, surface field.Surface, sim *field.Simulator) *section {
	return &section{
		Loop:    runloop.NewLoop(clock),
		name:    name,
		surface: surface,
		sim:     sim,
	}
}

func (s *section) Surface() field.Surface {
	return s.surface
}

func (s *section) Bounds() (float64, float64) {
	return float64(s.rect.Dx()), float64(s.rect.Dy())
}

// setRect moves the section; a size change fires a resize notification
func (s *section) setRect(r image.Rectangle) {
	resized := r.Size() != s.rect.Size()
	s.rect = r
	if resized {
		s.NotifyResize()
	}
}

// trackPointer turns a window cursor position into local move/leave events.
// Moves are sent only when the position changes, like native mousemove.
func (s *section) trackPointer(x, y int, inWindow bool) {
	pt := image.Pt(x, y)
	in := inWindow && pt.In(s.rect)

	switch {
	case in && (!s.inside || pt != s.last):
		local := pt.Sub(s.rect.Min)
		s.PointerMove(float64(local.X), float64(local.Y))
	case !in && s.inside:
		s.PointerLeave()
	}
	s.inside = in
	s.last = pt
}
