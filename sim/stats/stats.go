// Package stats summarizes turnaround times of completed processes.
// It consumes plain samples so it stays independent of the engine.
package stats

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a sample of turnaround times (in ticks).
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64 // population standard deviation
	Min    float64
	Max    float64
	P50    float64
	P95    float64
}

// Summarize computes a Summary over samples. The input is not modified.
// An empty sample yields a zero Summary.
func Summarize(samples []float64) Summary {
	if len(samples) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	return Summary{
		Count:  len(sorted),
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
		P50:    stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P95:    stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}
}

// Print writes the summary block to w.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Turnaround Time ===")
	fmt.Fprintf(w, "Samples            : %d\n", s.Count)
	if s.Count == 0 {
		return
	}
	fmt.Fprintf(w, "Mean               : %.3f ticks\n", s.Mean)
	fmt.Fprintf(w, "Standard Deviation : %.3f ticks\n", s.StdDev)
	fmt.Fprintf(w, "Min / Max          : %.3f / %.3f ticks\n", s.Min, s.Max)
	fmt.Fprintf(w, "P50 / P95          : %.3f / %.3f ticks\n", s.P50, s.P95)
}
