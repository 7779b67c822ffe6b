package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/procsim/procsim/sim/workload"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 100, cfg.Resources.MemoryCapacity)
	assert.Equal(t, 1, cfg.Resources.ProcessorCount)
	assert.Equal(t, 3, cfg.Resources.ProcessorRate)
	assert.Equal(t, 200, cfg.Workload.NumProcesses)
	assert.Equal(t, NoHorizon, cfg.Horizon)
}

func TestConfig_Validate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero memory", func(c *Config) { c.Resources.MemoryCapacity = 0 }},
		{"zero processors", func(c *Config) { c.Resources.ProcessorCount = 0 }},
		{"negative rate", func(c *Config) { c.Resources.ProcessorRate = -1 }},
		{"negative horizon", func(c *Config) { c.Horizon = -5 }},
		{"unknown memory policy", func(c *Config) { c.Policy.MemoryWait = "lottery" }},
		{"retry without delay", func(c *Config) {
			c.Policy.MemoryWait = MemoryWaitRetry
			c.Policy.RetryDelay = 0
		}},
		{"unknown burst policy", func(c *Config) { c.Policy.Burst = "greedy" }},
		{"io probability above one", func(c *Config) { c.IO.Probability = 1.5 }},
		{"io probability NaN", func(c *Config) { c.IO.Probability = math.NaN() }},
		{"io range inverted", func(c *Config) { c.IO.MinTicks, c.IO.MaxTicks = 3, 1 }},
		{"unknown trace level", func(c *Config) { c.TraceLevel = "verbose" }},
		{"empty workload", func(c *Config) { c.Workload = workload.Spec{} }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			assert.ErrorIs(t, cfg.Validate(), ErrConfiguration)
		})
	}
}

func TestConfig_Validate_RetryDelayIgnoredUnderQueue(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy.RetryDelay = 0

	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_OversizedProcessIsNotAConfigError(t *testing.T) {
	// Requests above capacity are rejected per process at run time.
	cfg := testConfig(proc(50, 1))

	assert.NoError(t, cfg.Validate())
}
