// sim/simulator.go
package sim

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/procsim/procsim/sim/trace"
)

// eventEntry wraps an Event with a sequence ID for deterministic FIFO
// tie-breaking when timestamps are equal.
type eventEntry struct {
	event Event
	seqID int64
}

// EventQueue is a min-heap ordered by (Timestamp, seqID).
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []eventEntry

func (eq EventQueue) Len() int { return len(eq) }

func (eq EventQueue) Less(i, j int) bool {
	if eq[i].event.Timestamp() != eq[j].event.Timestamp() {
		return eq[i].event.Timestamp() < eq[j].event.Timestamp()
	}
	return eq[i].seqID < eq[j].seqID
}

func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(eventEntry))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Scheduler is the part of the simulator that resource pools depend on:
// reading the clock and registering a continuation to run after a delay.
type Scheduler interface {
	Now() float64
	After(delay float64, name string, fn func())
}

// Simulator is the per-run simulation context: it holds the clock, the event
// queue, both resource pools and every process of the run. One Simulator is
// built per configuration and dropped once its results are extracted.
//
// All state is mutated from the Run loop only; the simulator is not safe for
// concurrent use.
type Simulator struct {
	Clock   float64
	Horizon float64
	// EventQueue has all pending events; equal timestamps pop in scheduling order
	EventQueue EventQueue
	nextSeqID  int64

	Memory     *MemoryPool
	Processors *ProcessorPool
	Processes  []*Process
	Metrics    *Metrics
	Trace      *trace.SimulationTrace // nil when tracing is disabled

	// CompletionOrder lists process IDs in the order they terminated successfully.
	CompletionOrder []int

	rng     *PartitionedRNG
	io      IOConfig
	burst   BurstPolicy
	aborted error
}

// NewSimulator builds a simulator from a validated configuration.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	horizon := math.Inf(1)
	if cfg.Horizon != NoHorizon {
		horizon = float64(cfg.Horizon)
	}
	s := &Simulator{
		Clock:      0,
		Horizon:    horizon,
		EventQueue: make(EventQueue, 0),
		Metrics:    NewMetrics(),
		rng:        NewPartitionedRNG(NewSimulationKey(cfg.Seed)),
		io:         cfg.IO,
		burst:      cfg.Policy.Burst,
	}
	if cfg.TraceLevel == trace.TraceLevelTransitions {
		s.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: cfg.TraceLevel})
	}
	s.Memory = NewMemoryPool(cfg.Resources.MemoryCapacity, cfg.Policy.MemoryWait, float64(cfg.Policy.RetryDelay), s)
	s.Processors = NewProcessorPool(cfg.Resources.ProcessorCount, cfg.Resources.ProcessorRate, s)
	return s, nil
}

// Now returns the current simulation time.
func (sim *Simulator) Now() float64 {
	return sim.Clock
}

// Schedule pushes an event into the simulator's EventQueue.
// Scheduling into the past is a programming error.
func (sim *Simulator) Schedule(ev Event) {
	if ev.Timestamp() < sim.Clock {
		panic(fmt.Sprintf("Schedule: event %T at %v is before clock %v", ev, ev.Timestamp(), sim.Clock))
	}
	sim.nextSeqID++
	heap.Push(&sim.EventQueue, eventEntry{event: ev, seqID: sim.nextSeqID})
}

// After suspends the calling activity: fn runs once delay ticks have elapsed.
func (sim *Simulator) After(delay float64, name string, fn func()) {
	if delay < 0 {
		panic(fmt.Sprintf("After: negative delay %v for %s", delay, name))
	}
	sim.Schedule(&ResumeEvent{time: sim.Clock + delay, name: name, resume: fn})
}

// Run drains the event queue until it is empty, the horizon is passed or the
// run is aborted. Events scheduled beyond the horizon are discarded.
func (sim *Simulator) Run() error {
	for len(sim.EventQueue) > 0 && sim.aborted == nil {
		// end the simulation if the next event lies beyond the horizon
		if sim.EventQueue[0].event.Timestamp() > sim.Horizon {
			break
		}
		entry := heap.Pop(&sim.EventQueue).(eventEntry)
		// advance the clock
		sim.Clock = entry.event.Timestamp()
		logrus.Tracef("[tick %10.3f] Executing %T", sim.Clock, entry.event)
		entry.event.Execute(sim)
	}
	if left := len(sim.EventQueue); left > 0 {
		logrus.Warnf("[tick %10.3f] Simulation stopped with %d pending events discarded", sim.Clock, left)
		sim.EventQueue = sim.EventQueue[:0]
	}
	sim.Metrics.SimEndedTime = sim.Clock
	sim.Metrics.collectPools(sim.Memory, sim.Processors)
	logrus.Infof("[tick %10.3f] Simulation ended", sim.Clock)
	return sim.aborted
}

// abort stops the run loop after the current event; Run returns err.
func (sim *Simulator) abort(err error) {
	if sim.aborted == nil {
		logrus.Errorf("[tick %10.3f] Aborting simulation: %v", sim.Clock, err)
		sim.aborted = err
	}
}
