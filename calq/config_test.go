package calq

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inference-sim/calqueue/calq/trace"
)

func TestNewConfig_FieldEquivalence(t *testing.T) {
	sink := trace.NewQueueTrace(trace.Config{Level: trace.LevelResizes})
	got := NewConfig(3, 8, 1000, sink)
	want := Config{
		LogBinSize: 3,
		LogNumBins: 8,
		StartTime:  1000,
		Sink:       sink,
	}
	assert.Equal(t, want, got)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"minimal geometry", Config{LogBinSize: 0, LogNumBins: 1}, false},
		{"typical geometry", Config{LogBinSize: 4, LogNumBins: 10, StartTime: 500}, false},
		{"widest representable span", Config{LogBinSize: 32, LogNumBins: 30}, false},
		{"zero bins", Config{LogBinSize: 0, LogNumBins: 0}, true},
		{"span too wide", Config{LogBinSize: 40, LogNumBins: 30}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNew_RejectsInvalidGeometry(t *testing.T) {
	_, err := New(Config{LogBinSize: 0, LogNumBins: 0})
	assert.Error(t, err)

	_, err = New(Config{LogBinSize: 63, LogNumBins: 8})
	assert.Error(t, err)
}
