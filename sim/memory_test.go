package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertConserved(t *testing.T, m *MemoryPool) {
	t.Helper()
	assert.Equal(t, m.Capacity, m.Available+m.InUse(), "available + in use must equal capacity")
}

func TestMemoryPool_Acquire_AvailableGrantsSynchronously(t *testing.T) {
	// GIVEN a pool of 10
	fs := &fakeScheduler{}
	m := NewMemoryPool(10, MemoryWaitQueue, 1, fs)

	// WHEN holder 1 asks for 4
	called := false
	require.NoError(t, m.Acquire(1, 4, func() { called = true }))

	// THEN the grant happens before Acquire returns
	assert.True(t, called)
	assert.Equal(t, 6, m.Available)
	assert.Equal(t, 4, m.Held(1))
	assert.Empty(t, fs.pending)
	assertConserved(t, m)
}

func TestMemoryPool_Acquire_InvalidAmounts(t *testing.T) {
	tests := []struct {
		name   string
		amount int
	}{
		{"zero", 0},
		{"negative", -3},
		{"above capacity", 11},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMemoryPool(10, MemoryWaitQueue, 1, &fakeScheduler{})
			called := false

			err := m.Acquire(1, tc.amount, func() { called = true })

			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.False(t, called)
			assert.Equal(t, 10, m.Available)
			assert.Equal(t, 0, m.Waiting())
		})
	}
}

func TestMemoryPool_Acquire_ExactlyCapacityIsValid(t *testing.T) {
	m := NewMemoryPool(10, MemoryWaitQueue, 1, &fakeScheduler{})

	require.NoError(t, m.Acquire(1, 10, func() {}))

	assert.Equal(t, 0, m.Available)
}

func TestMemoryPool_Release_GrantsWaitersHeadToTail(t *testing.T) {
	// GIVEN holder A owns all 10 units and B(6), C(4), D(6) wait in that order
	fs := &fakeScheduler{}
	m := NewMemoryPool(10, MemoryWaitQueue, 1, fs)
	require.NoError(t, m.Acquire(0, 10, func() {}))
	var granted []int
	for _, w := range []struct{ id, amount int }{{1, 6}, {2, 4}, {3, 6}} {
		w := w
		require.NoError(t, m.Acquire(w.id, w.amount, func() { granted = append(granted, w.id) }))
	}
	require.Equal(t, 3, m.Waiting())

	// WHEN A releases everything at t=2
	fs.now = 2
	require.NoError(t, m.Release(0, 10))

	// THEN B and C are reserved immediately and resume in FIFO order; D keeps waiting
	assert.Equal(t, 0, m.Available)
	assert.Equal(t, 6, m.Held(1))
	assert.Equal(t, 4, m.Held(2))
	assert.Equal(t, 1, m.Waiting())
	assert.Empty(t, granted, "waiters resume from the event loop, not inside Release")
	fs.runDue()
	assert.Equal(t, []int{1, 2}, granted)
	assert.Equal(t, 3, m.waits)
	assert.InDelta(t, 4.0, m.waitTime, 1e-9)
	assertConserved(t, m)
}

func TestMemoryPool_Release_SkipsWaiterThatDoesNotFit(t *testing.T) {
	// GIVEN A holds 10 and B(8) waits ahead of C(3)
	fs := &fakeScheduler{}
	m := NewMemoryPool(10, MemoryWaitQueue, 1, fs)
	require.NoError(t, m.Acquire(0, 10, func() {}))
	var granted []int
	require.NoError(t, m.Acquire(1, 8, func() { granted = append(granted, 1) }))
	require.NoError(t, m.Acquire(2, 3, func() { granted = append(granted, 2) }))

	// WHEN A releases 5
	require.NoError(t, m.Release(0, 5))
	fs.runDue()

	// THEN C is granted past B, which stays at the head of the wait list
	assert.Equal(t, []int{2}, granted)
	assert.Equal(t, 2, m.Available)
	assert.Equal(t, 1, m.Waiting())
	assertConserved(t, m)
}

func TestMemoryPool_Release_MoreThanHeldIsInvalid(t *testing.T) {
	m := NewMemoryPool(10, MemoryWaitQueue, 1, &fakeScheduler{})
	require.NoError(t, m.Acquire(1, 4, func() {}))

	assert.ErrorIs(t, m.Release(1, 5), ErrInvalidRelease)
	assert.ErrorIs(t, m.Release(2, 1), ErrInvalidRelease)
	assert.ErrorIs(t, m.Release(1, 0), ErrInvalidRelease)

	// pool state is untouched by rejected releases
	assert.Equal(t, 6, m.Available)
	assert.Equal(t, 4, m.Held(1))
}

func TestMemoryPool_Release_AllowsPartialReturn(t *testing.T) {
	m := NewMemoryPool(10, MemoryWaitQueue, 1, &fakeScheduler{})
	require.NoError(t, m.Acquire(1, 6, func() {}))

	require.NoError(t, m.Release(1, 2))
	assert.Equal(t, 4, m.Held(1))
	require.NoError(t, m.Release(1, 4))
	assert.Equal(t, 0, m.Held(1))
	assert.Equal(t, 10, m.Available)
}

func TestMemoryPool_RetryPolicy_PollsUntilMemoryIsFree(t *testing.T) {
	// GIVEN a full pool under the retry policy with a 1-tick delay
	fs := &fakeScheduler{}
	m := NewMemoryPool(5, MemoryWaitRetry, 1, fs)
	require.NoError(t, m.Acquire(0, 5, func() {}))
	grantedAt := -1.0
	require.NoError(t, m.Acquire(1, 5, func() { grantedAt = fs.now }))
	assert.Equal(t, 0, m.Waiting(), "retry waiters are not on the wait list")

	// WHEN the first poll at t=1 finds nothing free
	fs.advance(1)
	assert.Equal(t, -1.0, grantedAt)
	assert.Equal(t, 1, m.retries)

	// AND memory is released at t=1.5
	fs.now = 1.5
	require.NoError(t, m.Release(0, 5))
	fs.runDue()
	assert.Equal(t, -1.0, grantedAt, "release does not wake a polling waiter")

	// THEN the next poll at t=2 takes it
	fs.advance(2)
	assert.Equal(t, 2.0, grantedAt)
	assert.Equal(t, 5, m.Held(1))
	assert.InDelta(t, 2.0, m.waitTime, 1e-9)
	assertConserved(t, m)
}

func TestMemoryPool_PeakInUse(t *testing.T) {
	m := NewMemoryPool(10, MemoryWaitQueue, 1, &fakeScheduler{})
	require.NoError(t, m.Acquire(1, 3, func() {}))
	require.NoError(t, m.Acquire(2, 5, func() {}))
	require.NoError(t, m.Release(1, 3))
	require.NoError(t, m.Acquire(3, 1, func() {}))

	assert.Equal(t, 8, m.peakInUse)
	assert.Equal(t, 6, m.InUse())
}
