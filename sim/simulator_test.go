package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmptySimulator(t *testing.T) *Simulator {
	t.Helper()
	s, err := NewSimulator(testConfig(proc(1, 1)))
	require.NoError(t, err)
	return s
}

func TestSimulator_Run_FiresEventsInTimestampOrder(t *testing.T) {
	// GIVEN events scheduled out of order
	s := newEmptySimulator(t)
	var fired []float64
	for _, at := range []float64{2, 0.5, 1, 0} {
		at := at
		s.Schedule(&ResumeEvent{time: at, name: "probe", resume: func() { fired = append(fired, s.Now()) }})
	}

	// WHEN the loop runs
	require.NoError(t, s.Run())

	// THEN they fire by timestamp and the clock ends at the last one
	assert.Equal(t, []float64{0, 0.5, 1, 2}, fired)
	assert.Equal(t, 2.0, s.Clock)
}

func TestSimulator_Run_EqualTimestampsFireInSchedulingOrder(t *testing.T) {
	// GIVEN five events at the same time
	s := newEmptySimulator(t)
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		s.After(1, "probe", func() { order = append(order, i) })
	}

	require.NoError(t, s.Run())

	// THEN they resume FIFO
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestSimulator_After_ZeroDelayRunsAfterCurrentEvent(t *testing.T) {
	// GIVEN an event that schedules a zero-delay continuation and then a sibling at the same time
	s := newEmptySimulator(t)
	var order []string
	s.After(1, "outer", func() {
		s.After(0, "inner", func() { order = append(order, "inner") })
		order = append(order, "outer")
	})
	s.After(1, "sibling", func() { order = append(order, "sibling") })

	require.NoError(t, s.Run())

	// THEN the zero-delay continuation runs at the same tick, after already-queued siblings
	assert.Equal(t, []string{"outer", "sibling", "inner"}, order)
	assert.Equal(t, 1.0, s.Clock)
}

func TestSimulator_Run_HorizonDiscardsLaterEvents(t *testing.T) {
	// GIVEN a horizon of 5 and events at 5 and 6
	cfg := testConfig(proc(1, 1))
	cfg.Horizon = 5
	s, err := NewSimulator(cfg)
	require.NoError(t, err)
	var fired []float64
	s.Schedule(&ResumeEvent{time: 5, resume: func() { fired = append(fired, 5) }})
	s.Schedule(&ResumeEvent{time: 6, resume: func() { fired = append(fired, 6) }})

	// WHEN the loop runs
	require.NoError(t, s.Run())

	// THEN the event at the bound fires, the later one is dropped
	assert.Equal(t, []float64{5}, fired)
	assert.Empty(t, s.EventQueue)
	assert.Equal(t, 5.0, s.Metrics.SimEndedTime)
}

func TestSimulator_Schedule_IntoThePastPanics(t *testing.T) {
	s := newEmptySimulator(t)
	s.Clock = 3
	assert.Panics(t, func() { s.Schedule(&ResumeEvent{time: 2, resume: func() {}}) })
	assert.Panics(t, func() { s.After(-1, "bad", func() {}) })
}

func TestSimulator_Abort_StopsLoopAndReturnsError(t *testing.T) {
	// GIVEN an event that aborts and a later event
	s := newEmptySimulator(t)
	boom := errors.New("boom")
	laterFired := false
	s.After(1, "abort", func() { s.abort(boom) })
	s.After(2, "later", func() { laterFired = true })

	// WHEN the loop runs
	err := s.Run()

	// THEN Run returns the abort error and nothing after it fires
	assert.ErrorIs(t, err, boom)
	assert.False(t, laterFired)
}

func TestNewSimulator_InvalidConfig_ReturnsConfigurationError(t *testing.T) {
	cfg := testConfig(proc(1, 1))
	cfg.Resources.ProcessorCount = 0

	s, err := NewSimulator(cfg)

	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrConfiguration)
}
