package workload

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Arrival process names.
const (
	ArrivalImmediate = "immediate"
	ArrivalPoisson   = "poisson"
)

var validArrivalProcesses = map[string]bool{"": true, ArrivalImmediate: true, ArrivalPoisson: true}

// Spec describes the set of processes a run creates.
// Either NumProcesses random processes are drawn from the Memory and
// Instructions distributions, or an explicit Processes list is used as-is.
type Spec struct {
	NumProcesses int           `yaml:"num_processes"`
	Memory       DistSpec      `yaml:"memory"`
	Instructions DistSpec      `yaml:"instructions"`
	Arrival      ArrivalSpec   `yaml:"arrival"`
	Processes    []ProcessSpec `yaml:"processes,omitempty"` // overrides random generation when non-empty
}

// DistSpec parameterizes a count distribution.
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// ArrivalSpec configures when processes enter the system.
type ArrivalSpec struct {
	Process string  `yaml:"process"`        // "immediate" (default) or "poisson"
	Rate    float64 `yaml:"rate,omitempty"` // processes per tick for "poisson"
}

// ProcessSpec is one process to create. ID is assigned by the generator in
// list order.
type ProcessSpec struct {
	ID           int     `yaml:"-"`
	ArrivalTime  float64 `yaml:"arrival_time"`
	Memory       int     `yaml:"memory"`
	Instructions int     `yaml:"instructions"`
}

// DefaultSpec draws 200 processes created at t=0, each with memory and
// instructions uniform in [1, 10].
func DefaultSpec() Spec {
	return Spec{
		NumProcesses: 200,
		Memory:       Uniform(1, 10),
		Instructions: Uniform(1, 10),
		Arrival:      ArrivalSpec{Process: ArrivalImmediate},
	}
}

// LoadSpec reads a YAML workload spec. Unknown fields are rejected.
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	var spec Spec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	return &spec, nil
}

// Validate checks that all fields of the workload are valid.
// Memory requests larger than the pool are NOT rejected here; the engine
// terminates such processes without completing them.
func (s *Spec) Validate() error {
	if !validArrivalProcesses[s.Arrival.Process] {
		return fmt.Errorf("unknown arrival process %q; valid: immediate, poisson", s.Arrival.Process)
	}
	if s.Arrival.Process == ArrivalPoisson {
		if s.Arrival.Rate <= 0 || math.IsInf(s.Arrival.Rate, 0) || math.IsNaN(s.Arrival.Rate) {
			return fmt.Errorf("poisson arrival rate must be a finite positive number, got %f", s.Arrival.Rate)
		}
	}
	if len(s.Processes) > 0 {
		for i, p := range s.Processes {
			if err := validateProcess(p, i); err != nil {
				return err
			}
		}
		return nil
	}
	if s.NumProcesses <= 0 {
		return fmt.Errorf("num_processes must be positive, got %d", s.NumProcesses)
	}
	if _, err := NewCountSampler(s.Memory); err != nil {
		return fmt.Errorf("memory distribution: %w", err)
	}
	if _, err := NewCountSampler(s.Instructions); err != nil {
		return fmt.Errorf("instructions distribution: %w", err)
	}
	return nil
}

func validateProcess(p ProcessSpec, idx int) error {
	prefix := fmt.Sprintf("processes[%d]", idx)
	if p.Memory <= 0 {
		return fmt.Errorf("%s: memory must be positive, got %d", prefix, p.Memory)
	}
	if p.Instructions <= 0 {
		return fmt.Errorf("%s: instructions must be positive, got %d", prefix, p.Instructions)
	}
	if p.ArrivalTime < 0 || math.IsInf(p.ArrivalTime, 0) || math.IsNaN(p.ArrivalTime) {
		return fmt.Errorf("%s: arrival_time must be a finite non-negative number, got %f", prefix, p.ArrivalTime)
	}
	return nil
}
