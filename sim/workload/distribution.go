package workload

import (
	"fmt"
	"math"
	"math/rand"
)

// CountSampler draws positive integer quantities (memory units, instruction counts).
type CountSampler interface {
	// Sample returns a count >= 1.
	Sample(rng *rand.Rand) int
}

// UniformSampler draws integers uniformly from [min, max], both inclusive.
type UniformSampler struct {
	min, max int
}

func (s *UniformSampler) Sample(rng *rand.Rand) int {
	if s.min == s.max {
		return s.min
	}
	return s.min + rng.Intn(s.max-s.min+1)
}

// GaussianSampler produces clamped Gaussian counts.
type GaussianSampler struct {
	mean, stdDev float64
	min, max     int
}

func (s *GaussianSampler) Sample(rng *rand.Rand) int {
	if s.min == s.max {
		return s.min
	}
	val := rng.NormFloat64()*s.stdDev + s.mean
	clamped := math.Min(float64(s.max), math.Max(float64(s.min), val))
	result := int(math.Round(clamped))
	if result < 1 {
		return 1
	}
	return result
}

// ExponentialSampler produces exponentially-distributed counts.
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) int {
	val := rng.ExpFloat64() * s.mean
	result := int(math.Round(val))
	if result < 1 {
		return 1
	}
	return result
}

// ConstantSampler always returns the same fixed value.
type ConstantSampler struct {
	value int
}

func (s *ConstantSampler) Sample(_ *rand.Rand) int {
	if s.value < 1 {
		return 1
	}
	return s.value
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("distribution requires parameter %q", k)
		}
	}
	return nil
}

// NewCountSampler builds a sampler from a DistSpec.
func NewCountSampler(spec DistSpec) (CountSampler, error) {
	p := spec.Params
	switch spec.Type {
	case "uniform":
		if err := requireParam(p, "min", "max"); err != nil {
			return nil, err
		}
		lo, hi := int(p["min"]), int(p["max"])
		if lo < 1 || hi < lo {
			return nil, fmt.Errorf("uniform distribution needs 1 <= min <= max, got [%d, %d]", lo, hi)
		}
		return &UniformSampler{min: lo, max: hi}, nil
	case "gaussian":
		if err := requireParam(p, "mean", "std_dev", "min", "max"); err != nil {
			return nil, err
		}
		lo, hi := int(p["min"]), int(p["max"])
		if lo < 1 || hi < lo {
			return nil, fmt.Errorf("gaussian distribution needs 1 <= min <= max, got [%d, %d]", lo, hi)
		}
		if p["std_dev"] < 0 {
			return nil, fmt.Errorf("gaussian std_dev must be non-negative, got %f", p["std_dev"])
		}
		return &GaussianSampler{mean: p["mean"], stdDev: p["std_dev"], min: lo, max: hi}, nil
	case "exponential":
		if err := requireParam(p, "mean"); err != nil {
			return nil, err
		}
		if p["mean"] <= 0 || math.IsInf(p["mean"], 0) {
			return nil, fmt.Errorf("exponential mean must be a finite positive number, got %f", p["mean"])
		}
		return &ExponentialSampler{mean: p["mean"]}, nil
	case "constant":
		if err := requireParam(p, "value"); err != nil {
			return nil, err
		}
		if p["value"] < 1 {
			return nil, fmt.Errorf("constant value must be >= 1, got %f", p["value"])
		}
		return &ConstantSampler{value: int(p["value"])}, nil
	default:
		return nil, fmt.Errorf("unknown distribution type %q", spec.Type)
	}
}

// Uniform returns a DistSpec for integers uniform in [lo, hi].
func Uniform(lo, hi int) DistSpec {
	return DistSpec{Type: "uniform", Params: map[string]float64{"min": float64(lo), "max": float64(hi)}}
}

// Constant returns a DistSpec that always yields value.
func Constant(value int) DistSpec {
	return DistSpec{Type: "constant", Params: map[string]float64{"value": float64(value)}}
}
