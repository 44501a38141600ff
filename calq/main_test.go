package calq

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	// Suppress resize debug logs during tests.
	// Set DEBUG_TESTS=1 to see full logs: DEBUG_TESTS=1 go test ./calq/... -v
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

// testEvent is the minimal Event implementation used across the package
// tests. The id disambiguates equal-time events.
type testEvent struct {
	id   int
	time uint64
}

func (e *testEvent) Timestamp() uint64 { return e.time }
