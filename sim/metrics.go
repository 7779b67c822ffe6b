// Tracks simulation-wide counters such as completed processes, bursts,
// I/O waits and resource-pool utilization.

package sim

import (
	"fmt"
	"io"
)

// Metrics aggregates statistics about the simulation
// for final reporting. Useful for evaluating resource configurations
// and debugging behavior over time.
type Metrics struct {
	CreatedProcesses    int // Processes in the run
	StartedProcesses    int // Processes whose arrival fired
	CompletedProcesses  int // Processes that executed all instructions
	RejectedProcesses   int // Processes whose memory request exceeded capacity
	IncompleteProcesses int // Processes still in flight when the run stopped

	Bursts  int // Processor bursts executed
	IOWaits int // I/O interruptions

	MemoryWaits        int     // Acquires that could not be satisfied immediately
	MemoryRetries      int     // Failed polls under the retry policy
	MemoryWaitTime     float64 // Sum of ticks spent waiting for memory
	PeakMemoryInUse    int     // Max memory units held at once
	ProcessorWaitTime  float64 // Sum of ticks spent queued for a processor
	PeakProcessorsBusy int     // Max processor units held at once
	ProcessorBusyTime  float64 // Integral of busy units over time

	TotalTurnaround float64 // Sum of turnaround times of completed processes
	SimEndedTime    float64 // Clock when the run loop stopped
}

// NewMetrics returns zeroed metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// collectPools copies the pools' counters into m.
func (m *Metrics) collectPools(mem *MemoryPool, cpu *ProcessorPool) {
	m.MemoryWaits = mem.waits
	m.MemoryRetries = mem.retries
	m.MemoryWaitTime = mem.waitTime
	m.PeakMemoryInUse = mem.peakInUse
	m.ProcessorWaitTime = cpu.waitTime
	m.PeakProcessorsBusy = cpu.peakBusy
	m.ProcessorBusyTime = cpu.BusyTime()
}

// MeanTurnaround returns the average turnaround of completed processes,
// or 0 if none completed.
func (m *Metrics) MeanTurnaround() float64 {
	if m.CompletedProcesses == 0 {
		return 0
	}
	return m.TotalTurnaround / float64(m.CompletedProcesses)
}

// ProcessorUtilization returns busy unit-ticks over available unit-ticks.
func (m *Metrics) ProcessorUtilization(units int) float64 {
	if m.SimEndedTime <= 0 || units <= 0 {
		return 0
	}
	return m.ProcessorBusyTime / (m.SimEndedTime * float64(units))
}

// Print writes the aggregated metrics block to w.
func (m *Metrics) Print(w io.Writer, processorCount int) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Created Processes    : %d\n", m.CreatedProcesses)
	fmt.Fprintf(w, "Completed Processes  : %d\n", m.CompletedProcesses)
	fmt.Fprintf(w, "Rejected Processes   : %d\n", m.RejectedProcesses)
	fmt.Fprintf(w, "Incomplete Processes : %d\n", m.IncompleteProcesses)
	fmt.Fprintf(w, "Simulation End       : %.3f ticks\n", m.SimEndedTime)
	fmt.Fprintf(w, "Bursts / IO Waits    : %d / %d\n", m.Bursts, m.IOWaits)
	fmt.Fprintf(w, "Memory Waits         : %d (retries %d)\n", m.MemoryWaits, m.MemoryRetries)
	fmt.Fprintf(w, "Peak Memory In Use   : %d units\n", m.PeakMemoryInUse)
	fmt.Fprintf(w, "Peak Processors Busy : %d\n", m.PeakProcessorsBusy)
	fmt.Fprintf(w, "Processor Utilization: %.2f%%\n", 100*m.ProcessorUtilization(processorCount))
	if m.CompletedProcesses > 0 {
		fmt.Fprintf(w, "Average Turnaround   : %.3f ticks\n", m.MeanTurnaround())
	}
}
