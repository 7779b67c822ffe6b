package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/procsim/procsim/sim"
	"github.com/procsim/procsim/sim/stats"
	"github.com/procsim/procsim/sim/trace"
	"github.com/procsim/procsim/sim/workload"
)

var (
	// CLI flags for the run
	seed              int64  // Seed for process generation and I/O draws
	simulationHorizon int64  // Time bound (in ticks)
	logLevel          string // Log verbosity level
	configPath        string // Optional YAML run file
	traceLevel        string // Transition tracing level

	// Resource pools
	memoryCapacity int // Memory units in the pool
	processorCount int // Interchangeable processor units
	processorRate  int // Instructions per tick per unit

	// Policies
	memoryPolicy string // "queue" or "retry"
	retryDelay   int64  // Ticks between memory polls under "retry"
	burstPolicy  string // "rate-divided" or "flat-decrement"

	// I/O interruptions
	ioProbability float64 // Chance of an I/O wait after an unfinished burst
	ioMin         int64   // Shortest I/O wait in ticks
	ioMax         int64   // Longest I/O wait in ticks

	// Workload
	numProcesses    int     // Number of processes
	memoryMin       int     // Min memory per process
	memoryMax       int     // Max memory per process
	instructionsMin int     // Min instructions per process
	instructionsMax int     // Max instructions per process
	arrivalRate     float64 // Poisson arrival rate (processes per tick); 0 = all at t=0
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "procsim",
	Short: "Discrete-event simulator for processes competing for memory and processors",
}

// runCmd executes one simulation using parameters from the run file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the process simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := buildConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		run, err := sim.RunSimulation(cfg)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		report(os.Stdout, run)

		logrus.Info("Simulation complete.")
	},
}

// buildConfig starts from the defaults, applies the run file if one was
// given, then applies every flag the user set explicitly.
func buildConfig(cmd *cobra.Command) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		loaded, err := LoadRunConfig(configPath)
		if err != nil {
			return sim.Config{}, err
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("horizon") {
		cfg.Horizon = simulationHorizon
	}
	if flags.Changed("trace") {
		cfg.TraceLevel = trace.TraceLevel(traceLevel)
	}
	if flags.Changed("memory-capacity") {
		cfg.Resources.MemoryCapacity = memoryCapacity
	}
	if flags.Changed("processors") {
		cfg.Resources.ProcessorCount = processorCount
	}
	if flags.Changed("processor-rate") {
		cfg.Resources.ProcessorRate = processorRate
	}
	if flags.Changed("memory-policy") {
		cfg.Policy.MemoryWait = sim.MemoryWaitPolicy(memoryPolicy)
	}
	if flags.Changed("retry-delay") {
		cfg.Policy.RetryDelay = retryDelay
	}
	if flags.Changed("burst-policy") {
		cfg.Policy.Burst = sim.BurstPolicy(burstPolicy)
	}
	if flags.Changed("io-probability") {
		cfg.IO.Probability = ioProbability
	}
	if flags.Changed("io-min") {
		cfg.IO.MinTicks = ioMin
	}
	if flags.Changed("io-max") {
		cfg.IO.MaxTicks = ioMax
	}
	if flags.Changed("num-processes") {
		cfg.Workload.NumProcesses = numProcesses
	}
	if flags.Changed("memory-min") || flags.Changed("memory-max") {
		cfg.Workload.Memory = workload.Uniform(memoryMin, memoryMax)
	}
	if flags.Changed("instructions-min") || flags.Changed("instructions-max") {
		cfg.Workload.Instructions = workload.Uniform(instructionsMin, instructionsMax)
	}
	if flags.Changed("arrival-rate") {
		if arrivalRate > 0 {
			cfg.Workload.Arrival = workload.ArrivalSpec{Process: workload.ArrivalPoisson, Rate: arrivalRate}
		} else {
			cfg.Workload.Arrival = workload.ArrivalSpec{Process: workload.ArrivalImmediate}
		}
	}

	if err := cfg.Validate(); err != nil {
		return sim.Config{}, err
	}
	return cfg, nil
}

// report prints the metrics block, the turnaround summary over completed
// processes, and the trace summary when tracing was on.
func report(w io.Writer, run *sim.SimulationRun) {
	run.Metrics.Print(w, run.Config.Resources.ProcessorCount)
	stats.Summarize(run.CompletedTurnarounds()).Print(w)
	if run.Trace != nil {
		ts := trace.Summarize(run.Trace)
		fmt.Fprintln(w, "=== Transition Trace ===")
		fmt.Fprintf(w, "Transitions          : %d\n", ts.TotalTransitions)
		fmt.Fprintf(w, "Processes Traced     : %d\n", ts.UniqueProcesses)
		fmt.Fprintf(w, "Min Memory Available : %d\n", ts.MinMemoryAvailable)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := sim.DefaultConfig()

	runCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for process generation and I/O draws")
	runCmd.Flags().Int64Var(&simulationHorizon, "horizon", defaults.Horizon, "Total simulation horizon (in ticks)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML run file; explicit flags override its values")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Trace level (none, transitions)")

	// Resource pools
	runCmd.Flags().IntVar(&memoryCapacity, "memory-capacity", defaults.Resources.MemoryCapacity, "Memory units in the pool")
	runCmd.Flags().IntVar(&processorCount, "processors", defaults.Resources.ProcessorCount, "Number of processor units")
	runCmd.Flags().IntVar(&processorRate, "processor-rate", defaults.Resources.ProcessorRate, "Instructions per tick per processor unit")

	// Policies
	runCmd.Flags().StringVar(&memoryPolicy, "memory-policy", string(defaults.Policy.MemoryWait), "Memory wait policy (queue, retry)")
	runCmd.Flags().Int64Var(&retryDelay, "retry-delay", defaults.Policy.RetryDelay, "Ticks between memory polls under the retry policy")
	runCmd.Flags().StringVar(&burstPolicy, "burst-policy", string(defaults.Policy.Burst), "Burst policy (rate-divided, flat-decrement)")

	// I/O interruptions
	runCmd.Flags().Float64Var(&ioProbability, "io-probability", defaults.IO.Probability, "Probability of an I/O wait after an unfinished burst")
	runCmd.Flags().Int64Var(&ioMin, "io-min", defaults.IO.MinTicks, "Shortest I/O wait (ticks)")
	runCmd.Flags().Int64Var(&ioMax, "io-max", defaults.IO.MaxTicks, "Longest I/O wait (ticks)")

	// Workload
	runCmd.Flags().IntVar(&numProcesses, "num-processes", defaults.Workload.NumProcesses, "Number of processes")
	runCmd.Flags().IntVar(&memoryMin, "memory-min", 1, "Min memory per process")
	runCmd.Flags().IntVar(&memoryMax, "memory-max", 10, "Max memory per process")
	runCmd.Flags().IntVar(&instructionsMin, "instructions-min", 1, "Min instructions per process")
	runCmd.Flags().IntVar(&instructionsMax, "instructions-max", 10, "Max instructions per process")
	runCmd.Flags().Float64Var(&arrivalRate, "arrival-rate", 0, "Poisson arrivals per tick (0 = every process at t=0)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
