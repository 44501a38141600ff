package cmd

import (
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/calqueue/calq"
	"github.com/inference-sim/calqueue/calq/trace"
	"github.com/inference-sim/calqueue/calq/workload"
)

var (
	// CLI flags for the harness run
	seed       int64  // Seed for deterministic workload generation
	logLevel   string // Log verbosity level
	logBinSize uint   // Initial log2 bin width (ticks)
	logNumBins uint   // Initial log2 bin count
	startTime  uint64 // Initial logical time (ticks)
	engineName string // Queue engine to drive
	traceLevel string // Resize trace level

	// CLI flags for workload selection
	workloadFile string  // YAML presets file (overrides the inline flags below)
	workloadName string  // Preset name inside the presets file
	initialJobs  int     // Initial pending jobs
	holdMean     float64 // Mean reschedule delay (ticks)
	horizon      uint64  // Simulation horizon (ticks)
	respawnRatio float64 // Fraction of pops that schedule a successor

	// CLI flags for results output
	resultsJSON string // Write run stats as JSON to this path
	resultsDB   string // Append run stats to this SQLite database
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "calqueue",
	Short: "Self-tuning calendar queue with a synthetic benchmark harness",
}

// runCmd drives one hold-model run against the selected queue engine
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the hold-model benchmark",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !trace.IsValidLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		profile := workload.Profile{
			InitialJobs:  initialJobs,
			HoldMean:     holdMean,
			Horizon:      horizon,
			RespawnRatio: respawnRatio,
		}
		if workloadFile != "" {
			profile, err = workload.LoadProfile(workloadFile, workloadName)
			if err != nil {
				logrus.Fatalf("Loading workload preset: %v", err)
			}
		}
		if err := profile.Validate(); err != nil {
			logrus.Fatalf("Invalid workload profile: %v", err)
		}

		stats, err := runEngine(profile)
		if err != nil {
			logrus.Fatalf("Harness run failed: %v", err)
		}

		logrus.Infof("engine=%s seed=%d pops=%d pushes=%d resizes=%d end=%d ticks pending=%d wall=%s",
			stats.Engine, stats.Seed, stats.Pops, stats.Pushes, stats.Resizes,
			stats.EndTime, stats.FinalPending, stats.WallTime)

		if resultsJSON != "" {
			if err := writeResultsJSON(resultsJSON, stats); err != nil {
				logrus.Fatalf("Writing JSON results: %v", err)
			}
		}
		if resultsDB != "" {
			if err := saveResultsDB(resultsDB, stats); err != nil {
				logrus.Fatalf("Saving results to database: %v", err)
			}
		}
	},
}

// runEngine builds the selected engine, drives one harness run, and fills
// in the engine-specific stats fields.
func runEngine(profile workload.Profile) (workload.RunStats, error) {
	harness := workload.NewHarness(profile, workload.NewSimulationKey(seed))

	switch engineName {
	case "calendar":
		sink := trace.NewQueueTrace(trace.Config{Level: trace.Level(traceLevel)})
		q, err := calq.New(calq.NewConfig(logBinSize, logNumBins, startTime, sink))
		if err != nil {
			return workload.RunStats{}, err
		}
		stats, err := harness.Run(workload.CalendarEngine{Q: q})
		if err != nil {
			return stats, err
		}
		stats.Engine = engineName
		stats.Resizes = len(sink.Resizes)
		stats.FinalLogBinSize = q.LogBinSize()
		stats.FinalLogNumBins = q.LogNumBins()
		return stats, nil
	case "heap":
		stats, err := harness.Run(workload.HeapEngine{Q: calq.NewHeapQueue()})
		if err != nil {
			return stats, err
		}
		stats.Engine = engineName
		return stats, nil
	default:
		logrus.Fatalf("Unknown engine %q (want calendar or heap)", engineName)
		return workload.RunStats{}, nil
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {

	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for deterministic workload generation")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Queue geometry configs
	runCmd.Flags().UintVar(&logBinSize, "log-bin-size", 0, "Initial log2 bin width in ticks")
	runCmd.Flags().UintVar(&logNumBins, "log-num-bins", 8, "Initial log2 bin count")
	runCmd.Flags().Uint64Var(&startTime, "start-time", 0, "Initial logical time in ticks")
	runCmd.Flags().StringVar(&engineName, "engine", "calendar", "Queue engine (calendar, heap)")
	runCmd.Flags().StringVar(&traceLevel, "trace", "resizes", "Resize trace level (none, resizes)")

	// Workload configs
	runCmd.Flags().StringVar(&workloadFile, "workload-file", "", "YAML workload presets file")
	runCmd.Flags().StringVar(&workloadName, "workload", "steady", "Preset name inside the presets file")
	runCmd.Flags().IntVar(&initialJobs, "initial-jobs", 1024, "Initial pending jobs")
	runCmd.Flags().Float64Var(&holdMean, "hold-mean", 64.0, "Mean reschedule delay in ticks")
	runCmd.Flags().Uint64Var(&horizon, "horizon", math.MaxUint64, "Simulation horizon in ticks")
	runCmd.Flags().Float64Var(&respawnRatio, "respawn-ratio", 1.0, "Fraction of pops that schedule a successor")

	// Results output configs
	runCmd.Flags().StringVar(&resultsJSON, "results-json", "", "Write run stats as JSON to this path")
	runCmd.Flags().StringVar(&resultsDB, "results-db", "", "Append run stats to this SQLite database")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
