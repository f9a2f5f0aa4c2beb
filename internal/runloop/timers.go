package runloop

import (
	"sort"
	"time"
)

type timer struct {
	seq uint64
	at  time.Time
	fn  func()
}

// Timers holds one-shot callbacks fired by an external tick rather than by
// goroutines, so every callback runs on the loop's own thread.
type Timers struct {
	seq   uint64
	items map[uint64]*timer
}

// AfterFunc schedules fn to run on the first Fire at or after now+d. The
// returned stop reports whether it prevented the call.
func (t *Timers) AfterFunc(now time.Time, d time.Duration, fn func()) (stop func() bool) {
	if t.items == nil {
		t.items = make(map[uint64]*timer)
	}
	t.seq++
	id := t.seq
	t.items[id] = &timer{seq: id, at: now.Add(d), fn: fn}

	return func() bool {
		if _, ok := t.items[id]; !ok {
			return false
		}
		delete(t.items, id)
		return true
	}
}

// Len counts timers that have neither fired nor been stopped
func (t *Timers) Len() int {
	return len(t.items)
}

// Fire runs every timer due at now, earliest deadline first, and returns how
// many ran. Timers added by a callback wait for the next Fire.
func (t *Timers) Fire(now time.Time) int {
	var due []*timer
	for _, tm := range t.items {
		if !tm.at.After(now) {
			due = append(due, tm)
		}
	}
	if len(due) == 0 {
		return 0
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})

	ran := 0
	for _, tm := range due {
		// an earlier callback may have stopped this one
		if _, ok := t.items[tm.seq]; !ok {
			continue
		}
		delete(t.items, tm.seq)
		tm.fn()
		ran++
	}
	return ran
}
