// Package sim provides the discrete-event simulation engine for procsim.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - process.go: Process lifecycle states and the allowed transitions
//   - event.go: Event types that drive the simulation (Arrival, BurstComplete, IOComplete, Resume)
//   - simulator.go: The event queue, the clock and the run loop
//   - lifecycle.go: The continuation chain that moves one process through its states
//   - memory.go, processor.go: The two shared resource pools and their FIFO wait lists
//   - driver.go: RunSimulation, the per-configuration entry point
//
// # Concurrency Model
//
// Every process is a logically concurrent activity, but all of them are
// multiplexed onto a single event loop. A process suspends by scheduling an
// event or by registering a continuation on a pool's wait list; the loop
// resumes it later. Only one continuation runs at a time, so the pools and
// the clock need no locking.
//
// Events with equal timestamps fire in the order they were scheduled, and all
// randomness comes from a PartitionedRNG seeded by the run's Config.Seed,
// so a configuration replays identically.
//
// # Sub-packages
//   - sim/workload/: process generation (count distributions, arrival process, explicit lists)
//   - sim/trace/: lifecycle transition recording
//   - sim/stats/: turnaround-time summaries over completed processes
package sim
