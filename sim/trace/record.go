// Package trace provides lifecycle-transition recording for post-run analysis.
// It stores pure data types and has no dependencies on sim/.
package trace

// TransitionRecord captures a single process state change together with a
// snapshot of the shared resource pools taken right after the change.
type TransitionRecord struct {
	ProcessID             int
	Clock                 float64
	From                  string
	To                    string
	InstructionsRemaining int
	MemoryAvailable       int
	MemoryInUse           int
	ProcessorsBusy        int
}
