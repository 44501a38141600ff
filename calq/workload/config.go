// Package workload generates deterministic synthetic event streams and
// drives a queue engine through the classic hold model, so the calendar
// queue and the heap baseline can be exercised against identical workloads.
package workload

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile describes one synthetic workload: the queue is primed with
// InitialJobs pending jobs, then every popped job schedules a successor a
// sampled exponential delay later, until the horizon passes.
type Profile struct {
	InitialJobs  int     `yaml:"initial_jobs"`
	HoldMean     float64 `yaml:"hold_mean_ticks"` // mean reschedule delay in ticks
	Horizon      uint64  `yaml:"horizon_ticks"`   // stop once a popped job fires past this
	RespawnRatio float64 `yaml:"respawn_ratio"`   // fraction of pops that schedule a successor
}

// PresetsFile is the YAML shape of a workload presets file.
type PresetsFile struct {
	Workloads map[string]Profile `yaml:"workloads"`
}

// LoadProfile reads the named preset from a YAML presets file.
func LoadProfile(path, name string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading workload presets: %w", err)
	}

	var cfg PresetsFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Profile{}, fmt.Errorf("parsing workload presets: %w", err)
	}

	profile, ok := cfg.Workloads[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown workload preset %q", name)
	}
	return profile, nil
}

// Validate checks the profile describes a runnable workload.
func (p Profile) Validate() error {
	if p.InitialJobs <= 0 {
		return fmt.Errorf("initial_jobs must be positive, got %d", p.InitialJobs)
	}
	if p.HoldMean <= 0 {
		return fmt.Errorf("hold_mean_ticks must be positive, got %f", p.HoldMean)
	}
	if p.Horizon == 0 {
		return fmt.Errorf("horizon_ticks must be positive")
	}
	if p.RespawnRatio < 0 || p.RespawnRatio > 1 {
		return fmt.Errorf("respawn_ratio must be in [0, 1], got %f", p.RespawnRatio)
	}
	return nil
}
