package runloop

import (
	"reflect"
	"testing"
	"time"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManualClock(t *testing.T) {
	clock := NewManualClock(epoch)
	if !clock.Now().Equal(epoch) {
		t.Errorf("Now() = %v, want %v", clock.Now(), epoch)
	}

	clock.Advance(90 * time.Millisecond)
	clock.Advance(10 * time.Millisecond)
	if got := clock.Now().Sub(epoch); got != 100*time.Millisecond {
		t.Errorf("elapsed = %v, want 100ms", got)
	}

	later := epoch.Add(time.Hour)
	clock.Set(later)
	if !clock.Now().Equal(later) {
		t.Errorf("Set: Now() = %v", clock.Now())
	}
}

func TestFramesRunInOrder(t *testing.T) {
	var f Frames
	var got []int

	f.Request(func() { got = append(got, 1) })
	f.Request(func() { got = append(got, 2) })
	id := f.Request(func() { got = append(got, 3) })
	f.Request(func() { got = append(got, 4) })
	f.Cancel(id)

	if n := f.Run(); n != 3 {
		t.Errorf("Run() = %d, want 3", n)
	}
	if !reflect.DeepEqual(got, []int{1, 2, 4}) {
		t.Errorf("order = %v", got)
	}
	if n := f.Run(); n != 0 {
		t.Errorf("second Run() = %d, want 0", n)
	}
}

func TestFramesRequestDuringRunIsDeferred(t *testing.T) {
	var f Frames
	count := 0

	var loop func()
	loop = func() {
		count++
		f.Request(loop)
	}
	f.Request(loop)

	for i := 0; i < 5; i++ {
		if n := f.Run(); n != 1 {
			t.Fatalf("Run %d ran %d callbacks, want 1", i, n)
		}
	}
	if count != 5 {
		t.Errorf("count = %d, want 5", count)
	}
	if f.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", f.Pending())
	}
}

func TestFramesCancelWithinBatch(t *testing.T) {
	var f Frames
	ran := false

	var second uint64
	f.Request(func() { f.Cancel(second) })
	second = f.Request(func() { ran = true })

	if n := f.Run(); n != 1 {
		t.Errorf("Run() = %d, want 1", n)
	}
	if ran {
		t.Error("cancelled callback ran")
	}
}

func TestTimers(t *testing.T) {
	var tm Timers
	var got []string

	tm.AfterFunc(epoch, 200*time.Millisecond, func() { got = append(got, "late") })
	tm.AfterFunc(epoch, 100*time.Millisecond, func() { got = append(got, "early") })
	stop := tm.AfterFunc(epoch, 50*time.Millisecond, func() { got = append(got, "stopped") })

	if !stop() {
		t.Error("stop() = false for pending timer")
	}
	if stop() {
		t.Error("second stop() = true")
	}

	if n := tm.Fire(epoch.Add(99 * time.Millisecond)); n != 0 {
		t.Errorf("Fire before deadline ran %d", n)
	}
	if n := tm.Fire(epoch.Add(250 * time.Millisecond)); n != 2 {
		t.Errorf("Fire ran %d, want 2", n)
	}
	if !reflect.DeepEqual(got, []string{"early", "late"}) {
		t.Errorf("order = %v", got)
	}
	if tm.Len() != 0 {
		t.Errorf("Len() = %d after firing", tm.Len())
	}
}

func TestTimerStopAfterFire(t *testing.T) {
	var tm Timers
	stop := tm.AfterFunc(epoch, time.Millisecond, func() {})
	tm.Fire(epoch.Add(time.Second))
	if stop() {
		t.Error("stop() = true after timer fired")
	}
}

func TestListeners(t *testing.T) {
	var l Listeners[func(int)]
	var got []int

	l.Add(func(v int) { got = append(got, v) })
	remove := l.Add(func(v int) { got = append(got, v*10) })
	l.Add(func(v int) { got = append(got, v*100) })

	l.Each(func(fn func(int)) { fn(1) })
	remove()
	remove()
	l.Each(func(fn func(int)) { fn(2) })

	want := []int{1, 10, 100, 2, 200}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
}

func TestLoopDispatch(t *testing.T) {
	clock := NewManualClock(epoch)
	loop := NewLoop(clock)

	var events []string
	removeResize := loop.OnResize(func() { events = append(events, "resize") })
	loop.OnVisibilityChange(func(hidden bool) {
		if hidden {
			events = append(events, "hidden")
		} else {
			events = append(events, "visible")
		}
	})
	loop.OnPointerMove(func(x, y float64) { events = append(events, "move") })
	loop.OnPointerLeave(func() { events = append(events, "leave") })

	loop.NotifyResize()
	loop.SetHidden(true)
	loop.SetHidden(true)
	loop.SetHidden(false)
	loop.PointerMove(1, 2)
	loop.PointerLeave()
	removeResize()
	loop.NotifyResize()

	want := []string{"resize", "hidden", "visible", "move", "leave"}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
	if s := loop.Stats(); s.Listeners != 3 {
		t.Errorf("Listeners = %d, want 3", s.Listeners)
	}
}

func TestLoopTickOrder(t *testing.T) {
	clock := NewManualClock(epoch)
	loop := NewLoop(clock)

	var order []string
	loop.AfterFunc(10*time.Millisecond, func() { order = append(order, "timer") })
	loop.RequestFrame(func() { order = append(order, "frame") })

	if timers, frames := loop.Tick(); timers != 0 || frames != 1 {
		t.Errorf("first Tick = %d/%d, want 0/1", timers, frames)
	}
	clock.Advance(10 * time.Millisecond)
	loop.RequestFrame(func() { order = append(order, "frame") })
	loop.Tick()

	want := []string{"frame", "timer", "frame"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if s := loop.Stats(); s != (Stats{}) {
		t.Errorf("Stats() = %+v, want zero", s)
	}
}
