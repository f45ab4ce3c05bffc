package combat

import (
	"cmp"
	"fmt"
	"slices"
)

// CompareFunc orders actions for execution. It returns a negative number when
// a must run before b.
type CompareFunc func(a, b *Action) int

// ByPriority runs higher priority first.
func ByPriority(a, b *Action) int {
	return cmp.Compare(b.Priority, a.Priority)
}

// ActionQueue holds the round's pending buffer and the execution queue.
//
// Actions are appended to the pending buffer in submission order. Flush stable
// sorts them into the FIFO execution queue, so equal keys keep submission order.
type ActionQueue struct {
	compare CompareFunc
	pending []*Action
	queue   []*Action
	nextSeq uint64
}

// NewActionQueue creates a queue ordered by compare (ByPriority if nil).
func NewActionQueue(compare CompareFunc) *ActionQueue {
	if compare == nil {
		compare = ByPriority
	}
	return &ActionQueue{compare: compare}
}

// Add appends an action to the pending buffer.
func (q *ActionQueue) Add(a *Action) error {
	if a.state != statePending {
		return fmt.Errorf("queue %s: %w", a, ErrActionReleased)
	}
	if a.seq != 0 {
		return fmt.Errorf("queue %s: already submitted", a)
	}
	q.nextSeq++
	a.seq = q.nextSeq
	q.pending = append(q.pending, a)
	return nil
}

// Flush sorts the pending buffer into the execution queue and clears it.
// Returns the number of actions moved.
func (q *ActionQueue) Flush() int {
	slices.SortStableFunc(q.pending, q.compare)
	q.queue = append(q.queue, q.pending...)
	n := len(q.pending)
	clear(q.pending)
	q.pending = q.pending[:0]
	return n
}

// Dequeue removes and returns the head of the execution queue, or nil.
func (q *ActionQueue) Dequeue() *Action {
	if len(q.queue) == 0 {
		return nil
	}
	a := q.queue[0]
	q.queue[0] = nil
	q.queue = q.queue[1:]
	return a
}

// Len returns the number of actions waiting in the execution queue.
func (q *ActionQueue) Len() int { return len(q.queue) }

// Pending returns a copy of the pending buffer.
func (q *ActionQueue) Pending() []*Action { return slices.Clone(q.pending) }
