package cmd

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugawarayuuta/sonnet"

	"github.com/inference-sim/calqueue/calq/workload"
)

func sampleStats() workload.RunStats {
	return workload.RunStats{
		Engine:          "calendar",
		Seed:            42,
		Pushes:          2048,
		Pops:            2048,
		FinalPending:    0,
		EndTime:         131072,
		Resizes:         3,
		WallTime:        42 * time.Millisecond,
		FinalLogBinSize: 5,
		FinalLogNumBins: 9,
	}
}

func TestWriteResultsJSON_RoundTrips(t *testing.T) {
	path := t.TempDir() + "/results.json"
	stats := sampleStats()

	require.NoError(t, writeResultsJSON(path, stats))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got workload.RunStats
	require.NoError(t, sonnet.Unmarshal(data, &got))
	assert.Equal(t, stats, got)
}

func TestWriteResultsJSON_BadPath(t *testing.T) {
	err := writeResultsJSON(t.TempDir()+"/missing/results.json", sampleStats())
	assert.Error(t, err)
}
