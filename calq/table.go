package calq

// table is the fixed-geometry core of the calendar queue: numBins bucket
// lists covering one "year" of binSize*numBins ticks. A time maps to bucket
// (time & moduloMask) >> divideShift, so events more than a year ahead
// alias onto a bucket they cannot leave until the scan cursor reaches that
// bucket in the right year. Geometry never changes in place: the controller
// builds a replacement table and drains this one into it.
//
// There is deliberately no "minimum time across the table" operation. The
// scan cursor cannot be advanced past the last popped event, because
// another event with the same time stamp may still be pushed; only
// lastPopped is exposed as the logical time floor.
type table struct {
	bins []eventList

	logBinSize uint
	logNumBins uint

	divideShift uint   // log2 bin size
	moduloMask  uint64 // year length - 1

	currBin       uint64 // next bucket the scan will examine
	nextYearStart uint64 // first tick after the year currently being scanned
	lastPopped    uint64 // logical time floor; never decreases
	numEvents     int
}

func newTable(logBinSize, logNumBins uint, startTime uint64) *table {
	span := logBinSize + logNumBins
	t := &table{
		bins:        make([]eventList, 1<<logNumBins),
		logBinSize:  logBinSize,
		logNumBins:  logNumBins,
		divideShift: logBinSize,
		moduloMask:  (uint64(1) << span) - 1,
		lastPopped:  startTime,
	}
	for i := range t.bins {
		t.bins[i].head = nilIdx
	}
	t.currBin = t.slot(startTime)
	t.nextYearStart = ((startTime >> span) + 1) << span
	return t
}

func (t *table) slot(time uint64) uint64 {
	return (time & t.moduloMask) >> t.divideShift
}

func (t *table) numBins() int { return len(t.bins) }

func (t *table) yearLength() uint64 { return t.moduloMask + 1 }

// push links slot i into the bucket its time maps to. Causality against
// lastPopped is enforced by the Queue facade before the slot is allocated.
func (t *table) push(a *arena, i idx32) {
	t.numEvents++
	t.bins[t.slot(a.nodes[i].time)].push(a, i)
}

// pop detaches and returns the slot holding the earliest pending event, or
// nilIdx when the table is empty. probeAcc counts buckets examined without
// yielding an event; futureAcc counts the subset that were non-empty but
// headed by a later-year event. The live count is decremented up front:
// with numEvents > 0 some bucket must pass the current-year test in some
// year, so the scan always terminates.
func (t *table) pop(a *arena, probeAcc, futureAcc *uint64) idx32 {
	if t.numEvents == 0 {
		return nilIdx
	}
	t.numEvents--
	for {
		b := &t.bins[t.currBin]
		if !b.empty() {
			if mt := b.minTime(a); mt < t.nextYearStart {
				if mt < t.lastPopped {
					panic("calq: bucket head precedes the lastPopped floor")
				}
				t.lastPopped = mt
				return b.pop(a)
			}
			// Non-empty, but the head belongs to a future year.
			*futureAcc++
		}
		*probeAcc++
		t.currBin++
		if t.currBin == uint64(len(t.bins)) {
			t.currBin = 0
			t.nextYearStart += t.moduloMask + 1
		}
	}
}

// remove unlinks slot i from the bucket its time maps to, reporting whether
// it was linked there.
func (t *table) remove(a *arena, i idx32) bool {
	if !t.bins[t.slot(a.nodes[i].time)].remove(a, i) {
		return false
	}
	t.numEvents--
	return true
}

// drainInto migrates every pending slot into dst, leaving t empty. Both
// tables share the arena, so migration relinks indices without copying
// payloads; dst's ordered insert re-sorts each bucket under its geometry.
func (t *table) drainInto(a *arena, dst *table) {
	for i := range t.bins {
		for !t.bins[i].empty() {
			dst.push(a, t.bins[i].pop(a))
		}
	}
	t.numEvents = 0
}
