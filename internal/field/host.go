package field

import (
	"image/color"
	"time"
)

// Surface is a 2-D drawing target with a resizable backing buffer
type Surface interface {
	// SetSize resizes the backing pixel buffer; contents are discarded
	SetSize(w, h int)
	Clear()
	Line(x1, y1, x2, y2, width float64, c color.NRGBA)
	Circle(x, y, r float64, c color.NRGBA)
}

// Host is the set of runtime facilities a Simulator needs: a surface, frame
// scheduling, a one-shot timer and change notifications. Every callback is
// invoked on the host's single rendering thread.
type Host interface {
	// Surface returns nil when there is nothing to draw on
	Surface() Surface
	// Bounds is the surface's current layout box in pixels
	Bounds() (w, h float64)
	Hidden() bool
	Now() time.Time

	RequestFrame(cb func()) uint64
	CancelFrame(id uint64)
	AfterFunc(d time.Duration, fn func()) (stop func() bool)

	OnResize(fn func()) (remove func())
	OnVisibilityChange(fn func(hidden bool)) (remove func())
	OnPointerMove(fn func(x, y float64)) (remove func())
	OnPointerLeave(fn func()) (remove func())
}
