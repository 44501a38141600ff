package calq

import "testing"

func TestTable_SlotComputation(t *testing.T) {
	// binSize 4, numBins 8: year length 32
	tbl := newTable(2, 3, 0)

	tests := []struct {
		time uint64
		slot uint64
	}{
		{0, 0},
		{3, 0},
		{4, 1},
		{31, 7},
		{32, 0},  // one year ahead aliases back to slot 0
		{100, 1}, // 100 mod 32 = 4
	}
	for _, tt := range tests {
		if got := tbl.slot(tt.time); got != tt.slot {
			t.Errorf("slot(%d): got %d, want %d", tt.time, got, tt.slot)
		}
	}
}

func TestTable_NewTable_InitialCursorAndYear(t *testing.T) {
	// GIVEN a table starting mid-year: binSize 1, numBins 4, start 6
	tbl := newTable(0, 2, 6)

	// THEN the cursor sits on the start time's bucket and the year boundary
	// is the next multiple of the year length
	if tbl.currBin != 2 {
		t.Errorf("currBin: got %d, want 2", tbl.currBin)
	}
	if tbl.nextYearStart != 8 {
		t.Errorf("nextYearStart: got %d, want 8", tbl.nextYearStart)
	}
	if tbl.lastPopped != 6 {
		t.Errorf("lastPopped: got %d, want 6", tbl.lastPopped)
	}
}

func TestTable_Push_PlacesEventInComputedBucket(t *testing.T) {
	// GIVEN a table with binSize 2, numBins 4
	a := newArena()
	tbl := newTable(1, 2, 0)

	// WHEN an event at time 5 is pushed
	i := a.alloc(&testEvent{time: 5}, 5)
	tbl.push(&a, i)

	// THEN it resides in bucket (5 & 7) >> 1 = 2
	if tbl.bins[2].head != i {
		t.Errorf("event at time 5 not at head of bucket 2")
	}
	if tbl.numEvents != 1 {
		t.Errorf("numEvents: got %d, want 1", tbl.numEvents)
	}
}

func TestTable_Pop_FutureYearAliasing(t *testing.T) {
	// GIVEN a year length of 16 and a single event several years ahead
	a := newArena()
	tbl := newTable(0, 4, 0)
	tbl.push(&a, a.alloc(&testEvent{time: 100}, 100))

	// WHEN the earliest event is popped
	var probes, futures uint64
	i := tbl.pop(&a, &probes, &futures)

	// THEN the scan advanced through year boundaries without returning the
	// event prematurely, and returned it exactly once its year was reached
	if i == nilIdx {
		t.Fatal("pop on non-empty table returned nilIdx")
	}
	if got := a.nodes[i].time; got != 100 {
		t.Errorf("popped time: got %d, want 100", got)
	}
	if tbl.lastPopped != 100 {
		t.Errorf("lastPopped: got %d, want 100", tbl.lastPopped)
	}
	if tbl.nextYearStart <= 100 {
		t.Errorf("nextYearStart: got %d, want > 100", tbl.nextYearStart)
	}
	if futures == 0 {
		t.Error("future-event counter never incremented while skipping the aliased bucket")
	}
	if probes == 0 {
		t.Error("probe counter never incremented during the year scan")
	}

	// AND the table is empty afterwards
	if j := tbl.pop(&a, &probes, &futures); j != nilIdx {
		t.Errorf("second pop: got slot %d, want nilIdx", j)
	}
}

func TestTable_Pop_Empty_LeavesCountersUntouched(t *testing.T) {
	a := newArena()
	tbl := newTable(0, 2, 0)

	var probes, futures uint64
	if i := tbl.pop(&a, &probes, &futures); i != nilIdx {
		t.Fatalf("pop on empty table returned slot %d", i)
	}
	if probes != 0 || futures != 0 {
		t.Errorf("counters after empty pop: probes=%d futures=%d, want 0, 0", probes, futures)
	}
	if tbl.numEvents != 0 {
		t.Errorf("numEvents after empty pop: got %d, want 0", tbl.numEvents)
	}
}

func TestTable_DrainInto_MigratesEverythingInOrder(t *testing.T) {
	// GIVEN a populated source table and an empty destination with a
	// different geometry, sharing one arena
	a := newArena()
	src := newTable(0, 2, 0)
	times := []uint64{9, 1, 14, 3, 3, 27}
	for _, tm := range times {
		src.push(&a, a.alloc(&testEvent{time: tm}, tm))
	}
	dst := newTable(2, 3, 0)

	// WHEN the source is drained into the destination
	src.drainInto(&a, dst)

	// THEN the source is empty and the destination pops the same multiset
	// of times in non-decreasing order
	if src.numEvents != 0 {
		t.Errorf("source numEvents after drain: got %d, want 0", src.numEvents)
	}
	if dst.numEvents != len(times) {
		t.Errorf("destination numEvents: got %d, want %d", dst.numEvents, len(times))
	}
	var probes, futures uint64
	prev := uint64(0)
	for n := 0; n < len(times); n++ {
		i := dst.pop(&a, &probes, &futures)
		if i == nilIdx {
			t.Fatalf("pop %d: destination drained early", n)
		}
		if a.nodes[i].time < prev {
			t.Errorf("pop %d: time %d before %d", n, a.nodes[i].time, prev)
		}
		prev = a.nodes[i].time
	}
}

func TestTable_Remove_UnlinksAndDecrementsCount(t *testing.T) {
	a := newArena()
	tbl := newTable(0, 2, 0)
	i := a.alloc(&testEvent{time: 6}, 6)
	tbl.push(&a, i)
	tbl.push(&a, a.alloc(&testEvent{time: 7}, 7))

	if !tbl.remove(&a, i) {
		t.Fatal("remove of a pending event returned false")
	}
	if tbl.numEvents != 1 {
		t.Errorf("numEvents after remove: got %d, want 1", tbl.numEvents)
	}
	if tbl.remove(&a, i) {
		t.Error("remove of an already-removed event returned true")
	}
}
