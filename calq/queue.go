package calq

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/calqueue/calq/trace"
)

var (
	// ErrNilEvent is returned by Push when the event is nil.
	ErrNilEvent = errors.New("calq: nil event")
	// ErrCausality is returned by Push when the event is scheduled strictly
	// before the most recently popped time. The queue is unchanged.
	ErrCausality = errors.New("calq: event time precedes current time")
)

// Queue is the adaptive calendar queue: one bucket table wrapped in a
// control loop. The basic assumption is that the highest density of events
// is found near the current time, which holds approximately for any
// event-generating mechanism with no explicit time dependence. Every
// numBins pops the controller evaluates the accumulated probe-length and
// future-event sums; when either lands outside its target band the table is
// rebuilt with a different bin width and/or bin count, and all pending
// events are drained into the replacement. A rebuild is observably atomic:
// pop order across it is identical to a queue that never resized.
type Queue struct {
	arena arena
	core  *table

	// Sweep statistics, accumulated across pops and reset every numBins
	// pops when the retune decision runs.
	probeLenSum    uint64
	futureEventSum uint64
	popCounter     int

	sink trace.Sink
}

// New builds a queue with the given geometry, validating it first.
func New(cfg Config) (*Queue, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Queue{
		arena: newArena(),
		core:  newTable(cfg.LogBinSize, cfg.LogNumBins, cfg.StartTime),
		sink:  cfg.Sink,
	}, nil
}

// NewSized builds a queue tuned for roughly 1<<logNumEvents concurrent
// events: bin width 1 and twice as many bins as expected events, aiming at
// about two bins per event near the current time. The controller retunes
// from there.
func NewSized(startTime uint64, logNumEvents uint) (*Queue, error) {
	return New(Config{LogBinSize: 0, LogNumBins: logNumEvents + 1, StartTime: startTime})
}

// Push schedules ev and returns a Handle usable with Remove. The event must
// not fire before CurrentTime; a violating push is rejected with
// ErrCausality and the queue is unchanged.
func (q *Queue) Push(ev Event) (Handle, error) {
	if ev == nil {
		return NoHandle, ErrNilEvent
	}
	t := ev.Timestamp()
	if t < q.core.lastPopped {
		return NoHandle, ErrCausality
	}
	i := q.arena.alloc(ev, t)
	q.core.push(&q.arena, i)
	return Handle(i), nil
}

// Pop removes and returns the earliest pending event; the second return is
// false when the queue is empty. Every numBins pops the sweep statistics
// are evaluated and the geometry may be rebuilt.
func (q *Queue) Pop() (Event, bool) {
	i := q.core.pop(&q.arena, &q.probeLenSum, &q.futureEventSum)
	var (
		ev Event
		ok bool
	)
	if i != nilIdx {
		ev = q.arena.nodes[i].ev
		ok = true
		q.arena.release(i)
	}
	q.popCounter++
	if q.popCounter == q.core.numBins() {
		q.retune()
		q.probeLenSum = 0
		q.futureEventSum = 0
		q.popCounter = 0
	}
	return ev, ok
}

// Remove cancels the pending event identified by h. It returns false
// without side effects when h does not name a pending event (already
// popped, already removed, or never issued).
func (q *Queue) Remove(h Handle) bool {
	i := idx32(h)
	if !q.arena.live(i) {
		return false
	}
	if !q.core.remove(&q.arena, i) {
		return false
	}
	q.arena.release(i)
	return true
}

// Len returns the number of pending events.
func (q *Queue) Len() int { return q.core.numEvents }

// CurrentTime returns the logical time floor: the time of the most recently
// popped event, or the start time before any pop.
func (q *Queue) CurrentTime() uint64 { return q.core.lastPopped }

// YearLength returns the current bin width times the bin count, in ticks.
func (q *Queue) YearLength() uint64 { return q.core.yearLength() }

// LogBinSize returns log2 of the current bin width.
func (q *Queue) LogBinSize() uint { return q.core.logBinSize }

// LogNumBins returns log2 of the current bin count.
func (q *Queue) LogNumBins() uint { return q.core.logNumBins }

// NumBins returns the current bin count.
func (q *Queue) NumBins() int { return q.core.numBins() }

// bandMax bounds the per-sweep ratios the controller steers toward: each
// band search shifts its sum until the result lands in (0, bandMax].
const bandMax = 3

// retune evaluates one sweep's statistics and rebuilds the table when the
// band search moves either the bin width or the bin count. The probe sum
// steers bin width, the future-event sum steers year length, and their
// difference pins the bin count (year = binSize * numBins in log space).
// The band loops are bounded by the geometry floors and ceilings: an
// unbounded search never terminates when a sum is zero.
func (q *Queue) retune() {
	logBin := int(q.core.logBinSize)
	logBins := int(q.core.logNumBins)

	// Bin width: too few probes per sweep means the bins are too coarse and
	// should shrink; more than bandMax<<logNumBins wasted probes means they
	// should grow.
	binChange := 0
	for logBin+binChange > 0 && band(q.probeLenSum, logBins+binChange) == 0 {
		binChange--
	}
	for logBin+binChange+minLogNumBins < maxLogSpan && band(q.probeLenSum, logBins+binChange) > bandMax {
		binChange++
	}

	// Year length: the year boundary is checked roughly a quarter as often
	// as individual bins, hence the -2 bias.
	yearChange := 0
	for logBins+yearChange-binChange > minLogNumBins && band(q.futureEventSum, logBins-2+yearChange) == 0 {
		yearChange--
	}
	for logBin+logBins+yearChange < maxLogSpan && band(q.futureEventSum, logBins-2+yearChange) > bandMax {
		yearChange++
	}

	newLogBin := logBin + binChange
	newLogBins := logBins + yearChange - binChange
	if newLogBins < minLogNumBins {
		newLogBins = minLogNumBins
	}
	if newLogBin+newLogBins > maxLogSpan {
		newLogBin = maxLogSpan - newLogBins
	}
	if newLogBin < 0 {
		newLogBin = 0
	}
	if newLogBin == logBin && newLogBins == logBins {
		return
	}

	replacement := newTable(uint(newLogBin), uint(newLogBins), q.core.lastPopped)
	migrated := q.core.numEvents
	q.core.drainInto(&q.arena, replacement)
	old := q.core
	q.core = replacement

	logrus.Debugf("calq: resize at t=%d: logBinSize %d->%d, logNumBins %d->%d, migrated %d events (probeSum=%d, futureSum=%d)",
		replacement.lastPopped, old.logBinSize, replacement.logBinSize,
		old.logNumBins, replacement.logNumBins, migrated, q.probeLenSum, q.futureEventSum)
	if q.sink != nil {
		q.sink.RecordResize(trace.ResizeRecord{
			Time:          replacement.lastPopped,
			OldLogBinSize: old.logBinSize,
			OldLogNumBins: old.logNumBins,
			NewLogBinSize: replacement.logBinSize,
			NewLogNumBins: replacement.logNumBins,
			Migrated:      migrated,
			ProbeLenSum:   q.probeLenSum,
			FutureEvents:  q.futureEventSum,
		})
	}
}

// band right-shifts sum by k bits, treating a negative k as a left shift
// (saturating) so the search can keep widening while the sum is small.
func band(sum uint64, k int) uint64 {
	switch {
	case k >= 64:
		return 0
	case k >= 0:
		return sum >> uint(k)
	case k <= -64 || sum>>(64-uint(-k)) != 0:
		if sum == 0 {
			return 0
		}
		return ^uint64(0)
	default:
		return sum << uint(-k)
	}
}
