package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProcess_StartsCreatedWithFullWork(t *testing.T) {
	p := NewProcess(3, 1.5, 4, 7)

	assert.Equal(t, StateCreated, p.State)
	assert.Equal(t, 7, p.InstructionsRemaining)
	assert.Equal(t, 1.5, p.ArrivalTime)
	assert.False(t, p.Started)
}

func TestProcess_Turnaround_OnlyWhenCompleted(t *testing.T) {
	p := NewProcess(0, 0, 1, 1)
	p.StartTime = 2

	_, ok := p.Turnaround()
	assert.False(t, ok)

	p.Completed = true
	p.CompletionTime = 5.5
	got, ok := p.Turnaround()
	assert.True(t, ok)
	assert.Equal(t, 3.5, got)
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to ProcessState
		want     bool
	}{
		{StateCreated, StateAwaitingMemory, true},
		{StateAwaitingMemory, StateAwaitingProcessor, true},
		{StateAwaitingMemory, StateTerminated, true},
		{StateAwaitingProcessor, StateRunning, true},
		{StateRunning, StateIOWait, true},
		{StateRunning, StateAwaitingProcessor, true},
		{StateRunning, StateTerminated, true},
		{StateIOWait, StateAwaitingProcessor, true},
		{StateCreated, StateRunning, false},
		{StateIOWait, StateRunning, false},
		{StateAwaitingProcessor, StateTerminated, false},
		{StateTerminated, StateCreated, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransition(tc.from, tc.to))
		})
	}
}

func TestSimulator_Transition_IllegalEdgePanics(t *testing.T) {
	s := newEmptySimulator(t)
	p := NewProcess(0, 0, 1, 1)

	assert.Panics(t, func() { s.transition(p, StateRunning) })
}
