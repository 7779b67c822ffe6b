package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/procsim/procsim/sim/trace"
	"github.com/procsim/procsim/sim/workload"
)

// testConfig returns a config running exactly the given processes on one
// processor at rate 3 with 10 memory units, no I/O and tracing on.
func testConfig(procs ...workload.ProcessSpec) Config {
	cfg := DefaultConfig()
	cfg.Resources = ResourceConfig{MemoryCapacity: 10, ProcessorCount: 1, ProcessorRate: 3}
	cfg.IO = IOConfig{Probability: 0, MinTicks: 1, MaxTicks: 2}
	cfg.Workload = workload.Spec{Processes: procs}
	cfg.TraceLevel = trace.TraceLevelTransitions
	return cfg
}

// proc is shorthand for an explicit process created at t=0.
func proc(memory, instructions int) workload.ProcessSpec {
	return workload.ProcessSpec{Memory: memory, Instructions: instructions}
}

// mustRun runs cfg and fails the test on error.
func mustRun(t *testing.T, cfg Config) *SimulationRun {
	t.Helper()
	run, err := RunSimulation(cfg)
	require.NoError(t, err)
	require.NotNil(t, run)
	return run
}

// newLoadedSimulator builds a simulator with cfg's processes scheduled but
// not yet run, so tests can inspect the pools after Run.
func newLoadedSimulator(t *testing.T, cfg Config) *Simulator {
	t.Helper()
	s, err := NewSimulator(cfg)
	require.NoError(t, err)
	specs, err := workload.GenerateProcesses(&cfg.Workload, s.rng.ForSubsystem(SubsystemWorkload))
	require.NoError(t, err)
	for _, spec := range specs {
		p := NewProcess(spec.ID, spec.ArrivalTime, spec.Memory, spec.Instructions)
		s.Processes = append(s.Processes, p)
		s.Schedule(&ArrivalEvent{time: p.ArrivalTime, Process: p})
	}
	return s
}

// fakeScheduler records continuations instead of running an event loop.
type fakeScheduler struct {
	now     float64
	pending []scheduled
}

type scheduled struct {
	at   float64
	name string
	fn   func()
}

func (f *fakeScheduler) Now() float64 { return f.now }

func (f *fakeScheduler) After(delay float64, name string, fn func()) {
	f.pending = append(f.pending, scheduled{at: f.now + delay, name: name, fn: fn})
}

// runDue runs, in scheduling order, every continuation due at or before the
// current time, including ones scheduled while draining.
func (f *fakeScheduler) runDue() {
	for {
		idx := -1
		for i, s := range f.pending {
			if s.at <= f.now {
				idx = i
				break
			}
		}
		if idx < 0 {
			return
		}
		s := f.pending[idx]
		f.pending = append(f.pending[:idx], f.pending[idx+1:]...)
		s.fn()
	}
}

// advance moves the clock to t and runs everything due.
func (f *fakeScheduler) advance(t float64) {
	f.now = t
	f.runDue()
}
