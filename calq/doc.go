// Package calq implements a self-tuning calendar priority queue for
// discrete-event simulation workloads: pending events are keyed by a
// monotonically non-decreasing firing time, and the bucket geometry retunes
// itself online so that both push and pop stay amortized O(1) even as the
// event-rate density drifts over the course of a simulation.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - arena.go: index-linked event storage shared across geometry rebuilds
//   - table.go: the fixed-geometry bucket table and its year-wrapping scan
//   - queue.go: the adaptive controller that retunes bucket geometry
//
// # Architecture
//
// Events live in a growable arena; bucket lists are singly linked chains of
// arena indices, so a table rebuild relinks indices without touching
// payloads. The Queue facade owns the arena and exactly one table, counts
// pops, and every numBins pops evaluates the accumulated probe-length and
// future-event statistics to decide whether to replace the table with one
// of a different bin width and/or bin count.
//
// Resize decisions are observable through the calq/trace package; the
// calq/workload package provides deterministic synthetic workloads and a
// hold-model harness for exercising the queue against the HeapQueue
// baseline.
//
// The queue is single-threaded and synchronous. Wrap it in external locking
// for concurrent use.
package calq
