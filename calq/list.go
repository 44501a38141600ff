package calq

// eventList is one calendar bucket: a singly linked chain of arena indices
// ordered by non-decreasing time from head to tail. There is no sentinel
// node; an empty bucket is head == nilIdx. The chain links live inside the
// arena, so removal goes through the owning table, which knows the arena.
type eventList struct {
	head idx32
}

// push splices slot i into time order. The slot must not already be linked
// anywhere. An entry whose time equals existing entries lands immediately
// before the first of them; equal-time pop order depends on this, so keep
// it.
func (l *eventList) push(a *arena, i idx32) {
	t := a.nodes[i].time
	if l.head == nilIdx || a.nodes[l.head].time >= t {
		a.nodes[i].next = l.head
		l.head = i
		return
	}
	prev := l.head
	for a.nodes[prev].next != nilIdx && a.nodes[a.nodes[prev].next].time < t {
		prev = a.nodes[prev].next
	}
	a.nodes[i].next = a.nodes[prev].next
	a.nodes[prev].next = i
}

// pop detaches and returns the head slot, or nilIdx when the bucket is
// empty.
func (l *eventList) pop(a *arena) idx32 {
	i := l.head
	if i != nilIdx {
		l.head = a.nodes[i].next
	}
	return i
}

// minTime returns the head's firing time. Caller guarantees non-empty.
func (l *eventList) minTime(a *arena) uint64 {
	return a.nodes[l.head].time
}

func (l *eventList) empty() bool { return l.head == nilIdx }

// remove unlinks slot i if the chain contains it, reporting whether it was
// found. Linear scan; cancellation is off the hot path.
func (l *eventList) remove(a *arena, i idx32) bool {
	if l.head == nilIdx {
		return false
	}
	if l.head == i {
		l.head = a.nodes[i].next
		return true
	}
	for prev := l.head; a.nodes[prev].next != nilIdx; prev = a.nodes[prev].next {
		if a.nodes[prev].next == i {
			a.nodes[prev].next = a.nodes[i].next
			return true
		}
	}
	return false
}
