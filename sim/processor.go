package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// processorRequest is a requester waiting for a free unit.
type processorRequest struct {
	holder  int
	since   float64
	granted func(rate int)
}

func (r processorRequest) String() string {
	return fmt.Sprintf("(holder %d)", r.holder)
}

// ProcessorPool is a set of Count interchangeable execution units that all
// run at Rate instructions per tick. At most Count holders own a unit at any
// time; excess requesters wait in FIFO order.
type ProcessorPool struct {
	Count int
	Rate  int

	holders map[int]bool
	waitQ   WaitQueue[processorRequest]
	sched   Scheduler

	// busy-time integral, advanced on every change of len(holders)
	lastChange float64
	busyTime   float64
	peakBusy   int
	waitTime   float64
}

// NewProcessorPool creates an idle pool.
func NewProcessorPool(count int, rate int, sched Scheduler) *ProcessorPool {
	return &ProcessorPool{
		Count:   count,
		Rate:    rate,
		holders: make(map[int]bool),
		sched:   sched,
	}
}

// Request acquires one unit for holder. If a unit is free, granted runs
// synchronously with the unit's instruction rate; otherwise the holder is
// queued and granted runs from the event loop when a unit is handed over.
//
// A holder must release its unit before requesting again; recursive
// acquisition returns ErrInvalidRequest.
func (p *ProcessorPool) Request(holder int, granted func(rate int)) error {
	if p.holders[holder] {
		return fmt.Errorf("%w: holder %d already holds a processor", ErrInvalidRequest, holder)
	}
	if len(p.holders) < p.Count {
		p.take(holder)
		granted(p.Rate)
		return nil
	}
	p.waitQ.Enqueue(processorRequest{holder: holder, since: p.sched.Now(), granted: granted})
	logrus.Debugf("[cpu] holder %d queued behind %d waiters", holder, p.waitQ.Len()-1)
	return nil
}

// Release relinquishes holder's unit and hands it to the longest-waiting
// requester, if any.
func (p *ProcessorPool) Release(holder int) error {
	if !p.holders[holder] {
		return fmt.Errorf("%w: holder %d does not hold a processor", ErrInvalidRelease, holder)
	}
	p.account()
	delete(p.holders, holder)

	next, ok := p.waitQ.Dequeue()
	if !ok {
		return nil
	}
	p.take(next.holder)
	now := p.sched.Now()
	p.waitTime += now - next.since
	p.sched.After(0, "cpu-grant", func() { next.granted(p.Rate) })
	return nil
}

// Busy returns the number of units currently held.
func (p *ProcessorPool) Busy() int {
	return len(p.holders)
}

// Holds reports whether holder currently owns a unit.
func (p *ProcessorPool) Holds(holder int) bool {
	return p.holders[holder]
}

// Waiting returns the number of queued requesters.
func (p *ProcessorPool) Waiting() int {
	return p.waitQ.Len()
}

// BusyTime returns the integral of busy units over time up to now.
func (p *ProcessorPool) BusyTime() float64 {
	p.account()
	return p.busyTime
}

func (p *ProcessorPool) take(holder int) {
	p.account()
	p.holders[holder] = true
	if len(p.holders) > p.peakBusy {
		p.peakBusy = len(p.holders)
	}
}

func (p *ProcessorPool) account() {
	now := p.sched.Now()
	p.busyTime += float64(len(p.holders)) * (now - p.lastChange)
	p.lastChange = now
}
