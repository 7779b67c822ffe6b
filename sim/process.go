// Defines the Process struct that models one simulated process competing for
// memory and processor time. Tracks its lifecycle state, remaining work and
// the timestamps needed for turnaround statistics.

package sim

import (
	"fmt"
)

// ProcessState represents the lifecycle state of a process.
type ProcessState string

const (
	StateCreated           ProcessState = "created"
	StateAwaitingMemory    ProcessState = "awaiting_memory"
	StateAwaitingProcessor ProcessState = "awaiting_processor"
	StateRunning           ProcessState = "running"
	StateIOWait            ProcessState = "io_wait"
	StateTerminated        ProcessState = "terminated"
)

// validTransitions lists the allowed lifecycle edges.
var validTransitions = map[ProcessState][]ProcessState{
	StateCreated:           {StateAwaitingMemory},
	StateAwaitingMemory:    {StateAwaitingProcessor, StateTerminated},
	StateAwaitingProcessor: {StateRunning},
	StateRunning:           {StateTerminated, StateIOWait, StateAwaitingProcessor},
	StateIOWait:            {StateAwaitingProcessor},
}

// CanTransition reports whether a process may move from one state to another.
// AwaitingMemory → Terminated is the rejection path for memory requests that
// exceed the pool's capacity.
func CanTransition(from, to ProcessState) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Process is owned by the simulator for its entire life. Only the process's
// own lifecycle events mutate it.
type Process struct {
	ID int // Unique identifier, sequential in creation order

	MemoryRequired        int // Memory units held from memory grant to termination
	Instructions          int // Instruction count at creation
	InstructionsRemaining int // Decremented by each burst; <= 0 only once Terminated

	State ProcessState

	ArrivalTime    float64 // Scheduled creation time
	StartTime      float64 // Clock when the process entered AwaitingMemory
	MemoryTime     float64 // Clock when memory was granted
	CompletionTime float64 // Clock at termination; meaningful only if Completed

	Started   bool  // Arrival event has fired
	Completed bool  // Terminated after executing all instructions
	Err       error // Why the process was terminated without completing, if it was

	Bursts  int // processor bursts executed
	IOWaits int // I/O interruptions suffered
}

// NewProcess creates a process in the Created state.
func NewProcess(id int, arrivalTime float64, memoryRequired int, instructions int) *Process {
	return &Process{
		ID:                    id,
		MemoryRequired:        memoryRequired,
		Instructions:          instructions,
		InstructionsRemaining: instructions,
		State:                 StateCreated,
		ArrivalTime:           arrivalTime,
	}
}

// Turnaround returns completion time minus start time. The second return
// value is false if the process did not complete.
func (p *Process) Turnaround() (float64, bool) {
	if !p.Completed {
		return 0, false
	}
	return p.CompletionTime - p.StartTime, true
}

// This method returns a human-readable string representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (ID: %d, State: %s, Memory: %d, InstructionsRemaining: %d, StartTime: %.3f)",
		p.ID, p.State, p.MemoryRequired, p.InstructionsRemaining, p.StartTime)
}
