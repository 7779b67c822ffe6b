package workload

import (
	"math/rand"
)

// ArrivalSampler generates inter-arrival times between processes.
type ArrivalSampler interface {
	// SampleIAT returns the next inter-arrival time in ticks (>= 0).
	SampleIAT(rng *rand.Rand) float64
}

// ImmediateSampler creates every process at t=0.
type ImmediateSampler struct{}

func (s *ImmediateSampler) SampleIAT(_ *rand.Rand) float64 {
	return 0
}

// PoissonSampler generates exponentially-distributed inter-arrival times.
type PoissonSampler struct {
	rate float64 // processes per tick
}

func (s *PoissonSampler) SampleIAT(rng *rand.Rand) float64 {
	return rng.ExpFloat64() / s.rate
}

// NewArrivalSampler creates an ArrivalSampler from a validated spec.
func NewArrivalSampler(spec ArrivalSpec) ArrivalSampler {
	switch spec.Process {
	case ArrivalPoisson:
		return &PoissonSampler{rate: spec.Rate}
	default:
		return &ImmediateSampler{}
	}
}
