package field

import (
	"image/color"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/runloop"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type drawOp struct {
	kind    string
	x1, y1  float64
	x2, y2  float64
	r       float64
	opacity uint8
}

// recordingSurface keeps the draw calls since the last Clear
type recordingSurface struct {
	w, h    int
	resizes int
	clears  int
	ops     []drawOp
}

func (s *recordingSurface) SetSize(w, h int) {
	s.w, s.h = w, h
	s.resizes++
	s.ops = nil
}

func (s *recordingSurface) Clear() {
	s.clears++
	s.ops = s.ops[:0]
}

func (s *recordingSurface) Line(x1, y1, x2, y2, width float64, c color.NRGBA) {
	s.ops = append(s.ops, drawOp{kind: "line", x1: x1, y1: y1, x2: x2, y2: y2, opacity: c.A})
}

func (s *recordingSurface) Circle(x, y, r float64, c color.NRGBA) {
	s.ops = append(s.ops, drawOp{kind: "circle", x1: x, y1: y, r: r, opacity: c.A})
}

func (s *recordingSurface) count(kind string) int {
	n := 0
	for _, op := range s.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

// fakeHost drives a simulator with a manual clock
type fakeHost struct {
	*runloop.Loop
	clock   *runloop.ManualClock
	surface *recordingSurface
	w, h    float64
	noDraw  bool
}

func newFakeHost(w, h float64) *fakeHost {
	clock := runloop.NewManualClock(epoch)
	return &fakeHost{
		Loop:    runloop.NewLoop(clock),
		clock:   clock,
		surface: &recordingSurface{},
		w:       w,
		h:       h,
	}
}

func (h *fakeHost) Surface() Surface {
	if h.noDraw {
		return nil
	}
	return h.surface
}

func (h *fakeHost) Bounds() (float64, float64) {
	return h.w, h.h
}

// frames advances the clock by one display frame n times
func (h *fakeHost) frames(n int) {
	for i := 0; i < n; i++ {
		h.clock.Advance(16 * time.Millisecond)
		h.Tick()
	}
}

func (h *fakeHost) resize(w, h2 float64) {
	h.w, h.h = w, h2
	h.NotifyResize()
}

func testField() config.Field {
	f := config.DefaultField()
	f.NarrowWidth = 0
	return f
}

func newSim(t *testing.T, cfg config.Field) *Simulator {
	t.Helper()
	return New("test", cfg, rand.New(rand.NewPCG(7, 11)))
}
