package runloop

// Listeners is an ordered set of callbacks with removal handles
type Listeners[T any] struct {
	next  int
	fns   map[int]T
	order []int
}

// Add registers fn and returns a remove func that is safe to call more than once
func (l *Listeners[T]) Add(fn T) (remove func()) {
	if l.fns == nil {
		l.fns = make(map[int]T)
	}
	l.next++
	id := l.next
	l.fns[id] = fn
	l.order = append(l.order, id)

	return func() {
		if _, ok := l.fns[id]; !ok {
			return
		}
		delete(l.fns, id)
		for i, v := range l.order {
			if v == id {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
	}
}

// Len counts registered callbacks
func (l *Listeners[T]) Len() int {
	return len(l.fns)
}

// Each calls visit for every callback in registration order. Callbacks removed
// during the walk are skipped.
func (l *Listeners[T]) Each(visit func(T)) {
	ids := append([]int(nil), l.order...)
	for _, id := range ids {
		if fn, ok := l.fns[id]; ok {
			visit(fn)
		}
	}
}
