// Package testutil provides shared test infrastructure for the process
// simulator: the golden scenario dataset and float assertion helpers.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/scenarios.json.
type GoldenDataset struct {
	Tests []GoldenScenario `json:"tests"`
}

// GoldenScenario is one hand-checked run: the resources, policies and
// explicit process list, plus the outcome the engine must reproduce.
type GoldenScenario struct {
	Name           string          `json:"name"`
	MemoryCapacity int             `json:"memory_capacity"`
	ProcessorCount int             `json:"processor_count"`
	ProcessorRate  int             `json:"processor_rate"`
	MemoryWait     string          `json:"memory_wait"`
	RetryDelay     int64           `json:"retry_delay"`
	Burst          string          `json:"burst"`
	Horizon        int64           `json:"horizon"` // 0 means unbounded
	IOProbability  float64         `json:"io_probability"`
	IOMinTicks     int64           `json:"io_min_ticks"`
	IOMaxTicks     int64           `json:"io_max_ticks"`
	Processes      []GoldenProcess `json:"processes"`
	Expected       GoldenOutcome   `json:"expected"`
}

// GoldenProcess is one explicit process of a scenario.
type GoldenProcess struct {
	ArrivalTime  float64 `json:"arrival_time"`
	Memory       int     `json:"memory"`
	Instructions int     `json:"instructions"`
}

// GoldenOutcome represents the expected result of a scenario.
type GoldenOutcome struct {
	// Exact match
	CompletionOrder []int `json:"completion_order"`
	Completed       int   `json:"completed"`
	Rejected        int   `json:"rejected"`
	Incomplete      int   `json:"incomplete"`

	// CompletionTimes is indexed by process ID; null for processes that did
	// not complete.
	CompletionTimes []*float64 `json:"completion_times"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "scenarios.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
