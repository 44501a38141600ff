package calq

import (
	"fmt"

	"github.com/inference-sim/calqueue/calq/trace"
)

const (
	// minLogNumBins keeps the table at no fewer than two buckets; a
	// one-bucket calendar degrades to a single sorted list.
	minLogNumBins = 1
	// maxLogSpan caps logBinSize+logNumBins so the year arithmetic stays
	// inside uint64 shifts with headroom for one retune step.
	maxLogSpan = 62
)

// Config groups construction parameters for New. Geometry is expressed in
// log2: both the bin width and the bin count are powers of two, which turns
// the bucket-index computation into a mask and a shift.
type Config struct {
	LogBinSize uint       // log2 of the bin width in ticks
	LogNumBins uint       // log2 of the bin count (>= 1)
	StartTime  uint64     // initial logical time; earlier pushes are rejected
	Sink       trace.Sink // optional resize observer (nil = none)
}

// NewConfig builds a Config from explicit geometry parameters.
func NewConfig(logBinSize, logNumBins uint, startTime uint64, sink trace.Sink) Config {
	return Config{
		LogBinSize: logBinSize,
		LogNumBins: logNumBins,
		StartTime:  startTime,
		Sink:       sink,
	}
}

// Validate checks the geometry stays inside representable shift ranges.
func (c Config) Validate() error {
	if c.LogNumBins < minLogNumBins {
		return fmt.Errorf("log_num_bins must be at least %d, got %d", minLogNumBins, c.LogNumBins)
	}
	if c.LogBinSize+c.LogNumBins > maxLogSpan {
		return fmt.Errorf("log_bin_size + log_num_bins must not exceed %d, got %d", maxLogSpan, c.LogBinSize+c.LogNumBins)
	}
	return nil
}
