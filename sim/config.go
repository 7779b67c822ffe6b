package sim

import (
	"fmt"
	"math"

	"github.com/procsim/procsim/sim/trace"
	"github.com/procsim/procsim/sim/workload"
)

// NoHorizon runs the simulation until the event queue drains.
const NoHorizon int64 = math.MaxInt64

// ResourceConfig groups the capacities of the shared resource pools.
type ResourceConfig struct {
	MemoryCapacity int `yaml:"memory_capacity"` // memory units in the pool (must be > 0)
	ProcessorCount int `yaml:"processor_count"` // interchangeable execution units (must be > 0)
	ProcessorRate  int `yaml:"processor_rate"`  // instructions per tick per unit (must be > 0)
}

// PolicyConfig groups the behavioral policies selectable per run.
type PolicyConfig struct {
	MemoryWait MemoryWaitPolicy `yaml:"memory_wait"` // "queue" (default) or "retry"
	RetryDelay int64            `yaml:"retry_delay"` // ticks between polls under "retry" (must be > 0 then)
	Burst      BurstPolicy      `yaml:"burst"`       // "rate-divided" (default) or "flat-decrement"
}

// IOConfig parameterizes I/O interruptions between bursts.
type IOConfig struct {
	Probability float64 `yaml:"probability"` // chance of an I/O wait after an unfinished burst, in [0, 1]
	MinTicks    int64   `yaml:"min_ticks"`   // shortest I/O wait (inclusive)
	MaxTicks    int64   `yaml:"max_ticks"`   // longest I/O wait (inclusive)
}

// Config is the full input of one simulation run.
type Config struct {
	Seed       int64            `yaml:"seed"`
	Horizon    int64            `yaml:"horizon"` // time bound in ticks; NoHorizon = run to quiescence
	Resources  ResourceConfig   `yaml:"resources"`
	Policy     PolicyConfig     `yaml:"policy"`
	IO         IOConfig         `yaml:"io"`
	Workload   workload.Spec    `yaml:"workload"`
	TraceLevel trace.TraceLevel `yaml:"trace"`
}

// DefaultConfig returns the baseline scenario: 200 processes sharing 100
// memory units and one processor executing 3 instructions per tick, with a
// 1-in-21 chance of a 1–2 tick I/O wait after each unfinished burst.
func DefaultConfig() Config {
	return Config{
		Seed:    42,
		Horizon: NoHorizon,
		Resources: ResourceConfig{
			MemoryCapacity: 100,
			ProcessorCount: 1,
			ProcessorRate:  3,
		},
		Policy: PolicyConfig{
			MemoryWait: MemoryWaitQueue,
			RetryDelay: 1,
			Burst:      BurstRateDivided,
		},
		IO: IOConfig{
			Probability: 1.0 / 21.0,
			MinTicks:    1,
			MaxTicks:    2,
		},
		Workload:   workload.DefaultSpec(),
		TraceLevel: trace.TraceLevelNone,
	}
}

// Validate rejects configurations that cannot be run. Every returned error
// wraps ErrConfiguration.
func (c *Config) Validate() error {
	if c.Resources.MemoryCapacity <= 0 {
		return configErrorf("memory_capacity must be positive, got %d", c.Resources.MemoryCapacity)
	}
	if c.Resources.ProcessorCount <= 0 {
		return configErrorf("processor_count must be positive, got %d", c.Resources.ProcessorCount)
	}
	if c.Resources.ProcessorRate <= 0 {
		return configErrorf("processor_rate must be positive, got %d", c.Resources.ProcessorRate)
	}
	if c.Horizon < 0 {
		return configErrorf("horizon must be non-negative, got %d", c.Horizon)
	}
	if !ValidMemoryWaitPolicies[c.Policy.MemoryWait] {
		return configErrorf("unknown memory wait policy %q; valid: queue, retry", c.Policy.MemoryWait)
	}
	if c.Policy.MemoryWait == MemoryWaitRetry && c.Policy.RetryDelay <= 0 {
		return configErrorf("retry_delay must be positive under the retry policy, got %d", c.Policy.RetryDelay)
	}
	if !ValidBurstPolicies[c.Policy.Burst] {
		return configErrorf("unknown burst policy %q; valid: rate-divided, flat-decrement", c.Policy.Burst)
	}
	if math.IsNaN(c.IO.Probability) || c.IO.Probability < 0 || c.IO.Probability > 1 {
		return configErrorf("io probability must be in [0, 1], got %v", c.IO.Probability)
	}
	if c.IO.MinTicks < 0 || c.IO.MaxTicks < c.IO.MinTicks {
		return configErrorf("io wait range [%d, %d] is invalid", c.IO.MinTicks, c.IO.MaxTicks)
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return configErrorf("unknown trace level %q", c.TraceLevel)
	}
	if err := c.Workload.Validate(); err != nil {
		return fmt.Errorf("%w: workload: %w", ErrConfiguration, err)
	}
	return nil
}

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
