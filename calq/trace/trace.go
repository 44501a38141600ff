// Package trace records geometry-resize decisions made by the calq
// controller. The queue core stays free of I/O side effects: it emits
// structured records through a Sink, and callers decide what to do with
// them.
package trace

// Level controls the verbosity of resize tracing.
type Level string

const (
	// LevelNone disables tracing (zero overhead).
	LevelNone Level = "none"
	// LevelResizes captures every geometry rebuild decision.
	LevelResizes Level = "resizes"
)

// validLevels maps accepted trace level strings.
var validLevels = map[Level]bool{
	LevelNone:    true,
	LevelResizes: true,
	"":           true, // empty defaults to none
}

// IsValidLevel returns true if the given level string is a recognized trace level.
func IsValidLevel(level string) bool {
	return validLevels[Level(level)]
}

// ResizeRecord describes one geometry rebuild: the sweep statistics that
// triggered it, the geometry transition, and how many events were migrated
// into the replacement table.
type ResizeRecord struct {
	Time          uint64 // logical time (last popped) when the rebuild ran
	OldLogBinSize uint
	OldLogNumBins uint
	NewLogBinSize uint
	NewLogNumBins uint
	Migrated      int    // pending events drained into the replacement
	ProbeLenSum   uint64 // sweep statistic steering bin width
	FutureEvents  uint64 // sweep statistic steering year length
}

// Sink receives resize records as rebuilds happen.
type Sink interface {
	RecordResize(ResizeRecord)
}

// Config controls trace collection behavior.
type Config struct {
	Level Level
}

// QueueTrace collects resize records in memory. It implements Sink.
type QueueTrace struct {
	Config  Config
	Resizes []ResizeRecord
}

// NewQueueTrace creates a QueueTrace ready for recording.
func NewQueueTrace(config Config) *QueueTrace {
	return &QueueTrace{
		Config:  config,
		Resizes: make([]ResizeRecord, 0),
	}
}

// RecordResize appends a resize record when the level asks for it.
func (qt *QueueTrace) RecordResize(record ResizeRecord) {
	if qt.Config.Level != LevelResizes {
		return
	}
	qt.Resizes = append(qt.Resizes, record)
}
