// Implements the WaitQueue, which holds the pending requests of a resource pool.
// Requests are enqueued when the pool cannot satisfy them on arrival.

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue is a FIFO queue of requests blocked on a resource pool.
// Both the memory pool and the processor pool keep one; the element type
// carries whatever the pool needs to resume the waiter.
type WaitQueue[T any] struct {
	queue []T // FIFO queue of waiters
}

// Enqueue adds a waiter to the back of the queue.
func (wq *WaitQueue[T]) Enqueue(w T) {
	wq.queue = append(wq.queue, w)
}

func (wq *WaitQueue[T]) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range wq.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of waiters in the queue.
func (wq *WaitQueue[T]) Len() int {
	return len(wq.queue)
}

// Peek returns the waiter at the front of the queue without removing it.
// The second return value is false if the queue is empty.
func (wq *WaitQueue[T]) Peek() (T, bool) {
	var zero T
	if len(wq.queue) == 0 {
		return zero, false
	}
	return wq.queue[0], true
}

// Dequeue removes the waiter at the front of the queue.
func (wq *WaitQueue[T]) Dequeue() (T, bool) {
	var zero T
	if len(wq.queue) == 0 {
		return zero, false
	}
	w := wq.queue[0]
	wq.queue[0] = zero
	wq.queue = wq.queue[1:]
	return w, true
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage; callers MUST NOT
// append to or reslice it.
func (wq *WaitQueue[T]) Items() []T {
	return wq.queue
}

// RemoveIf walks the queue head-to-tail and removes every waiter for which
// take returns true. take is called in FIFO order, so it may consume shared
// state (e.g. available capacity) as it grants. Relative order of the
// remaining waiters is preserved. Returns the removed waiters in the order
// they were taken.
func (wq *WaitQueue[T]) RemoveIf(take func(T) bool) []T {
	if take == nil {
		panic("RemoveIf: take must not be nil")
	}
	var taken []T
	kept := wq.queue[:0]
	for _, w := range wq.queue {
		if take(w) {
			taken = append(taken, w)
		} else {
			kept = append(kept, w)
		}
	}
	var zero T
	for i := len(kept); i < len(wq.queue); i++ {
		wq.queue[i] = zero
	}
	wq.queue = kept
	return taken
}
