package game

import "time"

// frameTap records the last N frame intervals into a ring buffer so the HUD
// can show recent frame pacing.
type frameTap struct {
	buffer    []time.Duration
	nextIndex int
	filled    int
}

func newFrameTap(ringSize int) *frameTap {
	if ringSize < 1 {
		ringSize = 1
	}
	return &frameTap{
		buffer: make([]time.Duration, ringSize),
	}
}

func (t *frameTap) record(d time.Duration) {
	t.buffer[t.nextIndex] = d
	t.nextIndex++
	if t.nextIndex >= len(t.buffer) {
		t.nextIndex = 0
	}
	if t.filled < len(t.buffer) {
		t.filled++
	}
}

// snapshot returns up to the last n intervals, most recent last.
func (t *frameTap) snapshot(n int) []time.Duration {
	if n > t.filled {
		n = t.filled
	}
	out := make([]time.Duration, 0, n)
	// Walk backwards from nextIndex - 1
	idx := t.nextIndex - 1
	if idx < 0 {
		idx = len(t.buffer) - 1
	}
	for i := 0; i < n; i++ {
		out = append(out, t.buffer[idx])
		idx--
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
	}
	// reverse to chronological order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// average is the mean of everything recorded so far, zero when empty.
func (t *frameTap) average() time.Duration {
	if t.filled == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range t.snapshot(t.filled) {
		sum += d
	}
	return sum / time.Duration(t.filled)
}
