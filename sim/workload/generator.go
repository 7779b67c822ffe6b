package workload

import (
	"fmt"
	"math/rand"
)

// GenerateProcesses creates the process set described by spec.
// Deterministic given the same spec and rng state. IDs are sequential from 0
// in creation order; arrival times are non-decreasing in ID order for
// generated processes.
//
// For each process the memory requirement is drawn first, then the
// instruction count, then the inter-arrival gap.
func GenerateProcesses(spec *Spec, rng *rand.Rand) ([]ProcessSpec, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workload spec: %w", err)
	}

	if len(spec.Processes) > 0 {
		procs := make([]ProcessSpec, len(spec.Processes))
		for i, p := range spec.Processes {
			p.ID = i
			procs[i] = p
		}
		return procs, nil
	}

	memory, err := NewCountSampler(spec.Memory)
	if err != nil {
		return nil, fmt.Errorf("memory distribution: %w", err)
	}
	instructions, err := NewCountSampler(spec.Instructions)
	if err != nil {
		return nil, fmt.Errorf("instructions distribution: %w", err)
	}
	arrivals := NewArrivalSampler(spec.Arrival)

	procs := make([]ProcessSpec, 0, spec.NumProcesses)
	currentTime := 0.0
	for i := 0; i < spec.NumProcesses; i++ {
		mem := memory.Sample(rng)
		instr := instructions.Sample(rng)
		if i > 0 {
			currentTime += arrivals.SampleIAT(rng)
		}
		procs = append(procs, ProcessSpec{
			ID:           i,
			ArrivalTime:  currentTime,
			Memory:       mem,
			Instructions: instr,
		})
	}
	return procs, nil
}
