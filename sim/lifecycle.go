package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/procsim/procsim/sim/trace"
)

// The lifecycle of a process is a chain of continuations. Each step runs
// inside one event-loop step and ends either by scheduling an event or by
// registering a continuation on a resource pool:
//
//	Created → AwaitingMemory → AwaitingProcessor → Running
//	Running → Terminated | IOWait | AwaitingProcessor
//	IOWait → AwaitingProcessor

// startProcess moves a freshly arrived process to AwaitingMemory and asks
// the memory pool for its requirement.
func (sim *Simulator) startProcess(p *Process) {
	p.Started = true
	p.StartTime = sim.Clock
	sim.Metrics.StartedProcesses++
	logrus.Debugf("Process %d created. Memory required: %d, Instructions left: %d",
		p.ID, p.MemoryRequired, p.InstructionsRemaining)

	sim.transition(p, StateAwaitingMemory)
	if err := sim.Memory.Acquire(p.ID, p.MemoryRequired, func() { sim.memoryGranted(p) }); err != nil {
		sim.reject(p, err)
	}
}

// reject terminates a process whose memory request can never be satisfied.
func (sim *Simulator) reject(p *Process, err error) {
	logrus.Warnf("[tick %10.3f] Process %d rejected: %v", sim.Clock, p.ID, err)
	p.Err = err
	sim.Metrics.RejectedProcesses++
	sim.transition(p, StateTerminated)
}

func (sim *Simulator) memoryGranted(p *Process) {
	p.MemoryTime = sim.Clock
	logrus.Debugf("[tick %10.3f] Process %d holds %d memory units", sim.Clock, p.ID, p.MemoryRequired)
	sim.transition(p, StateAwaitingProcessor)
	sim.requestProcessor(p)
}

// requestProcessor queues p for a processor unit; runBurst continues once
// a unit is granted.
func (sim *Simulator) requestProcessor(p *Process) {
	err := sim.Processors.Request(p.ID, func(rate int) { sim.runBurst(p, rate) })
	if err != nil {
		sim.abort(fmt.Errorf("process %d: %w", p.ID, err))
	}
}

// runBurst executes one burst on a held unit and suspends p for the burst's
// duration.
func (sim *Simulator) runBurst(p *Process, rate int) {
	sim.transition(p, StateRunning)
	burst, duration := sim.burst.burstFor(p.InstructionsRemaining, rate)
	logrus.Debugf("[tick %10.3f] Process %d runs %d instructions for %.3f ticks", sim.Clock, p.ID, burst, duration)
	sim.Schedule(&BurstCompleteEvent{time: sim.Clock + duration, Process: p, Burst: burst})
}

// completeBurst charges the burst, releases the unit and decides where p
// goes next.
func (sim *Simulator) completeBurst(p *Process, burst int) {
	p.InstructionsRemaining -= burst
	p.Bursts++
	sim.Metrics.Bursts++
	if err := sim.Processors.Release(p.ID); err != nil {
		sim.abort(fmt.Errorf("process %d: %w", p.ID, err))
		return
	}

	if p.InstructionsRemaining <= 0 {
		sim.terminate(p)
		return
	}

	ioRNG := sim.rng.ForSubsystem(SubsystemIO)
	if ioRNG.Float64() < sim.io.Probability {
		wait := sim.io.MinTicks
		if span := sim.io.MaxTicks - sim.io.MinTicks; span > 0 {
			wait += ioRNG.Int63n(span + 1)
		}
		p.IOWaits++
		sim.Metrics.IOWaits++
		logrus.Debugf("[tick %10.3f] Process %d waits on I/O for %d ticks", sim.Clock, p.ID, wait)
		sim.transition(p, StateIOWait)
		sim.Schedule(&IOCompleteEvent{time: sim.Clock + float64(wait), Process: p})
		return
	}

	sim.transition(p, StateAwaitingProcessor)
	sim.requestProcessor(p)
}

// terminate returns p's memory and records its completion.
func (sim *Simulator) terminate(p *Process) {
	if err := sim.Memory.Release(p.ID, p.MemoryRequired); err != nil {
		sim.abort(fmt.Errorf("process %d: %w", p.ID, err))
		return
	}
	p.CompletionTime = sim.Clock
	p.Completed = true
	sim.transition(p, StateTerminated)

	sim.CompletionOrder = append(sim.CompletionOrder, p.ID)
	turnaround := p.CompletionTime - p.StartTime
	sim.Metrics.CompletedProcesses++
	sim.Metrics.TotalTurnaround += turnaround
	logrus.Debugf("[tick %10.3f] Process %d terminated, turnaround %.3f ticks", sim.Clock, p.ID, turnaround)
}

// transition moves p to state `to` and records the change when tracing.
// An edge outside the lifecycle graph is a programming error.
func (sim *Simulator) transition(p *Process, to ProcessState) {
	from := p.State
	if !CanTransition(from, to) {
		panic(fmt.Sprintf("process %d: illegal transition %s -> %s", p.ID, from, to))
	}
	p.State = to
	if sim.Trace == nil {
		return
	}
	sim.Trace.RecordTransition(trace.TransitionRecord{
		ProcessID:             p.ID,
		Clock:                 sim.Clock,
		From:                  string(from),
		To:                    string(to),
		InstructionsRemaining: p.InstructionsRemaining,
		MemoryAvailable:       sim.Memory.Available,
		MemoryInUse:           sim.Memory.InUse(),
		ProcessorsBusy:        sim.Processors.Busy(),
	})
}
