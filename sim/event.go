package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event must have a Timestamp (in ticks) and an Execute method
// that advances simulation state when invoked.
type Event interface {
	Timestamp() float64
	Execute(*Simulator)
}

// ArrivalEvent creates a process and starts its lifecycle.
type ArrivalEvent struct {
	time    float64  // Simulation time of arrival (in ticks)
	Process *Process // The process entering the system
}

// Timestamp returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Timestamp() float64 {
	return e.time
}

// Execute moves the process from Created to AwaitingMemory.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< Arrival: process %d at %.3f ticks", e.Process.ID, e.time)
	sim.startProcess(e.Process)
}

// BurstCompleteEvent fires when a running process finishes its current burst
// and is about to give the processor back.
type BurstCompleteEvent struct {
	time    float64
	Process *Process
	Burst   int // instructions consumed by this burst
}

// Timestamp returns the scheduled time of the BurstCompleteEvent.
func (e *BurstCompleteEvent) Timestamp() float64 {
	return e.time
}

// Execute ends the burst.
func (e *BurstCompleteEvent) Execute(sim *Simulator) {
	sim.completeBurst(e.Process, e.Burst)
}

// IOCompleteEvent fires when a process returns from an I/O wait.
type IOCompleteEvent struct {
	time    float64
	Process *Process
}

// Timestamp returns the scheduled time of the IOCompleteEvent.
func (e *IOCompleteEvent) Timestamp() float64 {
	return e.time
}

// Execute sends the process back to the processor queue.
func (e *IOCompleteEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< IO complete: process %d at %.3f ticks", e.Process.ID, e.time)
	sim.transition(e.Process, StateAwaitingProcessor)
	sim.requestProcessor(e.Process)
}

// ResumeEvent resumes a suspended activity. Resource pools use it to hand a
// grant back to a waiter and the memory retry policy uses it to re-poll.
type ResumeEvent struct {
	time   float64
	name   string
	resume func()
}

// Timestamp returns the scheduled time of the ResumeEvent.
func (e *ResumeEvent) Timestamp() float64 {
	return e.time
}

// Execute runs the continuation.
func (e *ResumeEvent) Execute(_ *Simulator) {
	e.resume()
}

func (e *ResumeEvent) String() string {
	return e.name
}
