package sim

// MemoryWaitPolicy selects what a process does when the memory pool cannot
// satisfy its request right away.
type MemoryWaitPolicy string

const (
	// MemoryWaitQueue parks the request on the pool's FIFO wait list; it is
	// woken the instant a release makes room.
	MemoryWaitQueue MemoryWaitPolicy = "queue"
	// MemoryWaitRetry re-polls availability every RetryDelay ticks.
	MemoryWaitRetry MemoryWaitPolicy = "retry"
)

// ValidMemoryWaitPolicies is the set of recognized memory wait policy names.
var ValidMemoryWaitPolicies = map[MemoryWaitPolicy]bool{"": true, MemoryWaitQueue: true, MemoryWaitRetry: true}

// BurstPolicy selects how a processor burst consumes instructions and time.
type BurstPolicy string

const (
	// BurstRateDivided executes min(remaining, rate) instructions in
	// burst/rate ticks.
	BurstRateDivided BurstPolicy = "rate-divided"
	// BurstFlatDecrement holds the processor for exactly one tick and
	// subtracts the full rate from the remaining instructions, which may
	// overshoot below zero.
	BurstFlatDecrement BurstPolicy = "flat-decrement"
)

// ValidBurstPolicies is the set of recognized burst policy names.
var ValidBurstPolicies = map[BurstPolicy]bool{"": true, BurstRateDivided: true, BurstFlatDecrement: true}

// burstFor returns the number of instructions a burst consumes and how many
// ticks it takes on a unit running at rate.
func (b BurstPolicy) burstFor(remaining int, rate int) (int, float64) {
	switch b {
	case BurstFlatDecrement:
		return rate, 1
	default:
		burst := min(remaining, rate)
		return burst, float64(burst) / float64(rate)
	}
}
