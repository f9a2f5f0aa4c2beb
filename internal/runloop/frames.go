package runloop

// Frames is a queue of one-shot frame callbacks, the equivalent of a
// display's request/cancel animation frame pair.
//
// Run executes only callbacks requested before it started; a callback that
// requests another frame is deferred to the next Run.
type Frames struct {
	next    uint64
	pending map[uint64]func()
	order   []uint64

	// batch being executed by Run, so Cancel can reach it
	running map[uint64]func()
}

// Request queues cb for the next Run and returns its handle. Handles start at 1.
func (f *Frames) Request(cb func()) uint64 {
	if f.pending == nil {
		f.pending = make(map[uint64]func())
	}
	f.next++
	f.pending[f.next] = cb
	f.order = append(f.order, f.next)
	return f.next
}

// Cancel drops a queued callback. Unknown or already-run handles are ignored.
func (f *Frames) Cancel(id uint64) {
	delete(f.pending, id)
	delete(f.running, id)
}

// Pending counts callbacks waiting for the next Run
func (f *Frames) Pending() int {
	return len(f.pending)
}

// Run executes the queued callbacks in request order and returns how many ran
func (f *Frames) Run() int {
	if len(f.pending) == 0 {
		f.order = f.order[:0]
		return 0
	}

	batch, order := f.pending, f.order
	f.pending, f.order = make(map[uint64]func()), nil
	f.running = batch
	defer func() { f.running = nil }()

	ran := 0
	for _, id := range order {
		cb, ok := batch[id]
		if !ok {
			continue
		}
		delete(batch, id)
		cb()
		ran++
	}
	return ran
}
