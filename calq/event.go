package calq

// Event is the payload type scheduled on the queue. Implementations supply
// a firing time in ticks; the time MUST NOT change while the event is
// pending (its bucket position would become undefined). The queue owns an
// event from Push until it is popped or removed; after that it is the
// caller's again.
type Event interface {
	Timestamp() uint64
}

// Handle identifies a pending event for cancellation via Remove. It is
// returned by Push and stays valid until the event is popped or removed;
// after that the handle names nothing and Remove reports false.
type Handle idx32

// NoHandle is the Handle returned alongside a Push error.
const NoHandle = Handle(nilIdx)
