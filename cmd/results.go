package cmd

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sugawarayuuta/sonnet"

	"github.com/inference-sim/calqueue/calq/workload"
)

// writeResultsJSON writes one run's stats as a JSON document.
func writeResultsJSON(path string, stats workload.RunStats) error {
	data, err := sonnet.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}

// saveResultsDB appends one row to the runs table, creating the schema on
// first use. Rows accumulate across invocations so sweeps over seeds or
// geometries can be compared after the fact.
func saveResultsDB(path string, stats workload.RunStats) error {
	database, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer database.Close()

	if _, err := database.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		engine TEXT NOT NULL,
		seed INTEGER NOT NULL,
		pushes INTEGER NOT NULL,
		pops INTEGER NOT NULL,
		resizes INTEGER NOT NULL,
		final_pending INTEGER NOT NULL,
		end_time_ticks INTEGER NOT NULL,
		wall_time_ns INTEGER NOT NULL,
		final_log_bin_size INTEGER NOT NULL,
		final_log_num_bins INTEGER NOT NULL
	)`); err != nil {
		return fmt.Errorf("creating runs table: %w", err)
	}

	if _, err := database.Exec(
		`INSERT INTO runs (engine, seed, pushes, pops, resizes, final_pending,
			end_time_ticks, wall_time_ns, final_log_bin_size, final_log_num_bins)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.Engine, stats.Seed, stats.Pushes, stats.Pops, stats.Resizes,
		stats.FinalPending, int64(stats.EndTime), int64(stats.WallTime),
		stats.FinalLogBinSize, stats.FinalLogNumBins,
	); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}
