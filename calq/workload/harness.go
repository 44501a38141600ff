package workload

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/inference-sim/calqueue/calq"
)

// Job is the synthetic event payload the harness schedules.
type Job struct {
	ID     int64
	FireAt uint64 // firing time in ticks
}

// Timestamp returns the scheduled firing time of the Job.
func (j *Job) Timestamp() uint64 {
	return j.FireAt
}

// Engine is the queue surface the harness drives: the calendar queue or the
// heap baseline.
type Engine interface {
	Push(ev calq.Event) error
	Pop() (calq.Event, bool)
	Len() int
}

// CalendarEngine adapts calq.Queue to the Engine surface.
type CalendarEngine struct {
	Q *calq.Queue
}

func (e CalendarEngine) Push(ev calq.Event) error {
	_, err := e.Q.Push(ev)
	return err
}

func (e CalendarEngine) Pop() (calq.Event, bool) { return e.Q.Pop() }

func (e CalendarEngine) Len() int { return e.Q.Len() }

// HeapEngine adapts calq.HeapQueue to the Engine surface.
type HeapEngine struct {
	Q *calq.HeapQueue
}

func (e HeapEngine) Push(ev calq.Event) error {
	e.Q.Push(ev)
	return nil
}

func (e HeapEngine) Pop() (calq.Event, bool) { return e.Q.Pop() }

func (e HeapEngine) Len() int { return e.Q.Len() }

// RunStats summarizes one harness run. The harness fills the operation
// counts and timings; the caller fills the engine identity and any
// engine-specific fields (resizes, final geometry).
type RunStats struct {
	Engine          string        `json:"engine"`
	Seed            int64         `json:"seed"`
	Pushes          int64         `json:"pushes"`
	Pops            int64         `json:"pops"`
	FinalPending    int           `json:"final_pending"`
	EndTime         uint64        `json:"end_time_ticks"`
	Resizes         int           `json:"resizes"`
	WallTime        time.Duration `json:"wall_time_ns"`
	FinalLogBinSize uint          `json:"final_log_bin_size"`
	FinalLogNumBins uint          `json:"final_log_num_bins"`
}

// Harness drives an Engine through the hold model: prime the queue with the
// profile's initial population, then repeatedly pop the earliest job and
// schedule its successor a sampled delay later. Event density near the
// current time stays roughly constant, which is the workload shape the
// calendar queue's controller assumes.
type Harness struct {
	profile Profile
	rng     *PartitionedRNG
}

// NewHarness creates a harness for the given profile and seed.
func NewHarness(profile Profile, key SimulationKey) *Harness {
	return &Harness{
		profile: profile,
		rng:     NewPartitionedRNG(key),
	}
}

// Run executes the hold model against engine until the horizon passes or
// the queue drains.
func (h *Harness) Run(engine Engine) (RunStats, error) {
	arrivals := h.rng.ForSubsystem(SubsystemArrivals)
	hold := h.rng.ForSubsystem(SubsystemHold)

	start := time.Now()
	stats := RunStats{Seed: int64(h.rng.Key())}

	// Prime the queue with a Poisson burst of initial jobs.
	nextID := int64(0)
	currentTime := uint64(0)
	for i := 0; i < h.profile.InitialJobs; i++ {
		currentTime += sampleDelay(arrivals, h.profile.HoldMean)
		if err := engine.Push(&Job{ID: nextID, FireAt: currentTime}); err != nil {
			return stats, fmt.Errorf("priming job %d: %w", nextID, err)
		}
		nextID++
		stats.Pushes++
	}

	for {
		ev, ok := engine.Pop()
		if !ok {
			break
		}
		stats.Pops++
		job := ev.(*Job)
		stats.EndTime = job.FireAt
		if job.FireAt >= h.profile.Horizon {
			break
		}
		if h.profile.RespawnRatio >= 1 || hold.Float64() < h.profile.RespawnRatio {
			successor := &Job{ID: nextID, FireAt: job.FireAt + sampleDelay(hold, h.profile.HoldMean)}
			if err := engine.Push(successor); err != nil {
				return stats, fmt.Errorf("rescheduling after job %d: %w", job.ID, err)
			}
			nextID++
			stats.Pushes++
		}
	}

	stats.FinalPending = engine.Len()
	stats.WallTime = time.Since(start)
	return stats, nil
}

// sampleDelay draws an exponential delay with the given mean, floored at
// one tick so successors never violate causality.
func sampleDelay(rng *rand.Rand, mean float64) uint64 {
	d := rng.ExpFloat64() * mean
	if d < 1 {
		return 1
	}
	return uint64(d)
}
