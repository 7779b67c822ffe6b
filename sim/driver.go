package sim

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/procsim/procsim/sim/trace"
	"github.com/procsim/procsim/sim/workload"
)

// ProcessRecord is the per-process outcome handed to statistics consumers.
// TurnaroundTime is nil unless the process completed; incomplete processes
// never carry a fabricated turnaround.
type ProcessRecord struct {
	ID             int
	Started        bool
	Completed      bool
	TurnaroundTime *float64
	State          ProcessState
	Err            error // set for processes rejected at memory acquisition
}

// SimulationRun is the result of one configuration.
type SimulationRun struct {
	Config    Config
	Processes []*Process
	// Records holds one entry per process, in ID order.
	Records []ProcessRecord
	// CompletionOrder lists completed process IDs in the order they terminated.
	CompletionOrder []int
	Metrics         *Metrics
	Trace           *trace.SimulationTrace // nil unless tracing was enabled
}

// RunSimulation builds a fresh simulation context for cfg, creates every
// process, runs the event loop to quiescence or the horizon and returns the
// collected run.
//
// A ConfigurationError is returned before anything runs. An InvalidRelease
// raised inside the loop aborts the run; the partial run is returned with
// the error.
func RunSimulation(cfg Config) (*SimulationRun, error) {
	s, err := NewSimulator(cfg)
	if err != nil {
		return nil, err
	}

	specs, err := workload.GenerateProcesses(&cfg.Workload, s.rng.ForSubsystem(SubsystemWorkload))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	for _, spec := range specs {
		p := NewProcess(spec.ID, spec.ArrivalTime, spec.Memory, spec.Instructions)
		s.Processes = append(s.Processes, p)
		s.Schedule(&ArrivalEvent{time: p.ArrivalTime, Process: p})
	}
	s.Metrics.CreatedProcesses = len(s.Processes)

	logrus.Infof("Starting simulation with %d processes, memory=%d, processors=%dx%d, horizon=%v, seed=%d",
		len(s.Processes), cfg.Resources.MemoryCapacity, cfg.Resources.ProcessorCount,
		cfg.Resources.ProcessorRate, s.Horizon, cfg.Seed)
	startTime := time.Now()
	runErr := s.Run()
	logrus.Infof("Simulation took %v", time.Since(startTime))

	run := s.collect(cfg)
	if runErr != nil {
		return run, fmt.Errorf("simulation aborted at tick %.3f: %w", s.Clock, runErr)
	}
	return run, nil
}

// collect snapshots the simulator into a SimulationRun.
func (sim *Simulator) collect(cfg Config) *SimulationRun {
	run := &SimulationRun{
		Config:          cfg,
		Processes:       sim.Processes,
		Records:         make([]ProcessRecord, 0, len(sim.Processes)),
		CompletionOrder: sim.CompletionOrder,
		Metrics:         sim.Metrics,
		Trace:           sim.Trace,
	}
	for _, p := range sim.Processes {
		rec := ProcessRecord{
			ID:        p.ID,
			Started:   p.Started,
			Completed: p.Completed,
			State:     p.State,
			Err:       p.Err,
		}
		if turnaround, ok := p.Turnaround(); ok {
			rec.TurnaroundTime = &turnaround
		}
		if p.State != StateTerminated {
			sim.Metrics.IncompleteProcesses++
		}
		run.Records = append(run.Records, rec)
	}
	if sim.Metrics.IncompleteProcesses > 0 {
		logrus.Warnf("%d processes did not finish before the horizon; they are excluded from turnaround statistics",
			sim.Metrics.IncompleteProcesses)
	}
	return run
}

// CompletedTurnarounds returns the turnaround times of completed processes in
// ID order. Incomplete and rejected processes are excluded.
func (r *SimulationRun) CompletedTurnarounds() []float64 {
	out := make([]float64, 0, len(r.Records))
	for _, rec := range r.Records {
		if rec.Completed && rec.TurnaroundTime != nil {
			out = append(out, *rec.TurnaroundTime)
		}
	}
	return out
}

// Incomplete returns the records of processes that neither completed nor were
// rejected, i.e. those cut off by the horizon.
func (r *SimulationRun) Incomplete() []ProcessRecord {
	var out []ProcessRecord
	for _, rec := range r.Records {
		if rec.State != StateTerminated {
			out = append(out, rec)
		}
	}
	return out
}

// Process returns the process with the given ID, or nil.
func (r *SimulationRun) Process(id int) *Process {
	if id < 0 || id >= len(r.Processes) {
		return nil
	}
	return r.Processes[id]
}
