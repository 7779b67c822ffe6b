package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTransitions   int
	UniqueProcesses    int
	StateDistribution  map[string]int // target state → number of transitions into it
	PeakProcessorsBusy int
	PeakMemoryInUse    int
	MinMemoryAvailable int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		StateDistribution: make(map[string]int),
	}
	if st == nil || len(st.Transitions) == 0 {
		return summary
	}

	seen := make(map[int]bool)
	summary.TotalTransitions = len(st.Transitions)
	summary.MinMemoryAvailable = st.Transitions[0].MemoryAvailable
	for _, r := range st.Transitions {
		seen[r.ProcessID] = true
		summary.StateDistribution[r.To]++
		if r.ProcessorsBusy > summary.PeakProcessorsBusy {
			summary.PeakProcessorsBusy = r.ProcessorsBusy
		}
		if r.MemoryInUse > summary.PeakMemoryInUse {
			summary.PeakMemoryInUse = r.MemoryInUse
		}
		if r.MemoryAvailable < summary.MinMemoryAvailable {
			summary.MinMemoryAvailable = r.MemoryAvailable
		}
	}
	summary.UniqueProcesses = len(seen)

	return summary
}
