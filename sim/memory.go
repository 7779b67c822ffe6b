package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// memoryRequest is a pending acquire on the MemoryPool.
type memoryRequest struct {
	holder  int
	amount  int
	since   float64
	granted func()
}

func (r memoryRequest) String() string {
	return fmt.Sprintf("(holder %d: %d)", r.holder, r.amount)
}

// MemoryPool is a counted resource with a fixed capacity.
//
// Invariant: Available + InUse() == Capacity at every event boundary.
type MemoryPool struct {
	Capacity  int
	Available int

	held   map[int]int // holder ID -> amount currently held
	waitQ  WaitQueue[memoryRequest]
	policy MemoryWaitPolicy
	retry  float64 // ticks between polls under MemoryWaitRetry
	sched  Scheduler

	// counters read by Metrics
	waits     int
	retries   int
	peakInUse int
	waitTime  float64
}

// NewMemoryPool creates a full pool of the given capacity.
func NewMemoryPool(capacity int, policy MemoryWaitPolicy, retryDelay float64, sched Scheduler) *MemoryPool {
	if policy == "" {
		policy = MemoryWaitQueue
	}
	return &MemoryPool{
		Capacity:  capacity,
		Available: capacity,
		held:      make(map[int]int),
		policy:    policy,
		retry:     retryDelay,
		sched:     sched,
	}
}

// Acquire takes amount units for holder. If the amount is available it is
// granted synchronously and granted runs before Acquire returns; otherwise the
// holder waits according to the pool's policy and granted runs from the event
// loop once the memory is reserved.
//
// Returns ErrInvalidRequest if amount is non-positive or exceeds Capacity;
// such a request can never succeed and granted is never called.
func (m *MemoryPool) Acquire(holder int, amount int, granted func()) error {
	if amount <= 0 {
		return fmt.Errorf("%w: holder %d asked for %d memory units", ErrInvalidRequest, holder, amount)
	}
	if amount > m.Capacity {
		return fmt.Errorf("%w: holder %d asked for %d memory units, capacity is %d",
			ErrInvalidRequest, holder, amount, m.Capacity)
	}
	if m.Available >= amount {
		m.grant(holder, amount)
		granted()
		return nil
	}

	m.waits++
	req := memoryRequest{holder: holder, amount: amount, since: m.sched.Now(), granted: granted}
	switch m.policy {
	case MemoryWaitRetry:
		m.schedulePoll(req)
	default:
		m.waitQ.Enqueue(req)
	}
	logrus.Debugf("[memory] holder %d waits for %d units (available %d)", holder, amount, m.Available)
	return nil
}

// Release gives amount units held by holder back to the pool and grants
// every queued waiter that now fits, head to tail.
//
// Returns ErrInvalidRelease if holder does not hold at least amount.
func (m *MemoryPool) Release(holder int, amount int) error {
	if amount <= 0 || m.held[holder] < amount {
		return fmt.Errorf("%w: holder %d released %d memory units but holds %d",
			ErrInvalidRelease, holder, amount, m.held[holder])
	}
	m.held[holder] -= amount
	if m.held[holder] == 0 {
		delete(m.held, holder)
	}
	m.Available += amount
	m.grantWaiters()
	return nil
}

// Held returns the amount currently held by holder.
func (m *MemoryPool) Held(holder int) int {
	return m.held[holder]
}

// InUse returns the sum of all amounts held by live holders.
func (m *MemoryPool) InUse() int {
	total := 0
	for _, amount := range m.held {
		total += amount
	}
	return total
}

// Waiting returns the number of requests on the wait list.
func (m *MemoryPool) Waiting() int {
	return m.waitQ.Len()
}

func (m *MemoryPool) grant(holder int, amount int) {
	m.Available -= amount
	m.held[holder] += amount
	if inUse := m.Capacity - m.Available; inUse > m.peakInUse {
		m.peakInUse = inUse
	}
}

// grantWaiters reserves memory for every waiter that fits, in FIFO order.
// The waiter resumes from the event loop at the current tick.
func (m *MemoryPool) grantWaiters() {
	now := m.sched.Now()
	granted := m.waitQ.RemoveIf(func(r memoryRequest) bool {
		if r.amount > m.Available {
			return false
		}
		m.grant(r.holder, r.amount)
		return true
	})
	for _, r := range granted {
		m.waitTime += now - r.since
		logrus.Debugf("[memory] holder %d granted %d units after waiting %.3f ticks", r.holder, r.amount, now-r.since)
		m.sched.After(0, "memory-grant", r.granted)
	}
}

// schedulePoll re-checks availability for req every retry ticks.
func (m *MemoryPool) schedulePoll(req memoryRequest) {
	m.sched.After(m.retry, "memory-retry", func() {
		if m.Available < req.amount {
			m.retries++
			m.schedulePoll(req)
			return
		}
		m.grant(req.holder, req.amount)
		m.waitTime += m.sched.Now() - req.since
		req.granted()
	})
}
