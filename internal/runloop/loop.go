// Package runloop provides the cooperative, single-threaded plumbing a host
// needs to drive a frame-based component: frame requests, one-shot timers,
// event listeners and a clock.
//
// Nothing here is safe for concurrent use. A host owns one Loop and calls
// every method from the same goroutine.
package runloop

import "time"

// Loop combines frames, timers and listener sets for one hosted component.
//
// Usage:
//  1. Create: NewLoop(clock)
//  2. Feed input: NotifyResize, SetHidden, PointerMove, PointerLeave
//  3. Once per display frame: Tick()
type Loop struct {
	clock  Clock
	frames Frames
	timers Timers
	hidden bool

	resize     Listeners[func()]
	visibility Listeners[func(hidden bool)]
	move       Listeners[func(x, y float64)]
	leave      Listeners[func()]
}

func NewLoop(clock Clock) *Loop {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Loop{clock: clock}
}

func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

func (l *Loop) Hidden() bool {
	return l.hidden
}

func (l *Loop) RequestFrame(cb func()) uint64 {
	return l.frames.Request(cb)
}

func (l *Loop) CancelFrame(id uint64) {
	l.frames.Cancel(id)
}

func (l *Loop) AfterFunc(d time.Duration, fn func()) (stop func() bool) {
	return l.timers.AfterFunc(l.clock.Now(), d, fn)
}

func (l *Loop) OnResize(fn func()) (remove func()) {
	return l.resize.Add(fn)
}

func (l *Loop) OnVisibilityChange(fn func(hidden bool)) (remove func()) {
	return l.visibility.Add(fn)
}

func (l *Loop) OnPointerMove(fn func(x, y float64)) (remove func()) {
	return l.move.Add(fn)
}

func (l *Loop) OnPointerLeave(fn func()) (remove func()) {
	return l.leave.Add(fn)
}

// NotifyResize tells listeners the surface's layout box may have changed
func (l *Loop) NotifyResize() {
	l.resize.Each(func(fn func()) { fn() })
}

// SetHidden records page visibility and notifies listeners on change only
func (l *Loop) SetHidden(hidden bool) {
	if l.hidden == hidden {
		return
	}
	l.hidden = hidden
	l.visibility.Each(func(fn func(bool)) { fn(hidden) })
}

func (l *Loop) PointerMove(x, y float64) {
	l.move.Each(func(fn func(float64, float64)) { fn(x, y) })
}

func (l *Loop) PointerLeave() {
	l.leave.Each(func(fn func()) { fn() })
}

// Tick fires due timers, then runs queued frame callbacks
func (l *Loop) Tick() (timers, frames int) {
	timers = l.timers.Fire(l.clock.Now())
	frames = l.frames.Run()
	return timers, frames
}

// Stats reports outstanding registrations; a fully torn down component leaves
// all of them at zero.
type Stats struct {
	Frames    int
	Timers    int
	Listeners int
}

func (l *Loop) Stats() Stats {
	return Stats{
		Frames:    l.frames.Pending(),
		Timers:    l.timers.Len(),
		Listeners: l.resize.Len() + l.visibility.Len() + l.move.Len() + l.leave.Len(),
	}
}
