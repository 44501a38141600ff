package calq

// idx32 is an index into the arena's node slab. nilIdx terminates every
// chain and marks the empty bucket.
type idx32 uint32

const nilIdx = ^idx32(0)

// node is one arena slot: the stored event, its firing time (cached so the
// bucket scan never calls back through the Event interface), and the
// forward link of whichever bucket list currently holds the slot.
type node struct {
	next idx32
	time uint64
	ev   Event
}

// arena is a growable slab of nodes with an index-linked free list. Bucket
// lists thread through it by index, so linking an event costs no allocation
// beyond slab growth, and migrating events between tables never touches the
// payloads.
type arena struct {
	nodes    []node
	freeHead idx32
}

func newArena() arena {
	return arena{freeHead: nilIdx}
}

// alloc places ev in a free slot and returns its index, growing the slab
// when the free list is exhausted.
func (a *arena) alloc(ev Event, t uint64) idx32 {
	if a.freeHead == nilIdx {
		a.nodes = append(a.nodes, node{next: nilIdx, time: t, ev: ev})
		return idx32(len(a.nodes) - 1)
	}
	i := a.freeHead
	n := &a.nodes[i]
	a.freeHead = n.next
	n.next = nilIdx
	n.time = t
	n.ev = ev
	return i
}

// release returns slot i to the free list, clearing the event reference so
// popped payloads do not outlive their slot.
func (a *arena) release(i idx32) {
	n := &a.nodes[i]
	n.ev = nil
	n.time = 0
	n.next = a.freeHead
	a.freeHead = i
}

// live reports whether slot i currently holds a pending event. Free-list
// slots have a nil event reference.
func (a *arena) live(i idx32) bool {
	return int(i) < len(a.nodes) && a.nodes[i].ev != nil
}
