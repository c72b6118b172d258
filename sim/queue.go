// Implements the WaitQueue, which holds every process waiting for a pool slot.
// Processes are enqueued when their request cannot be granted immediately.

package sim

import "fmt"

// WaitQueue represents a FIFO queue of processes waiting for a resource slot.
// Grants are made strictly in request order, regardless of which holder
// releases first.
type WaitQueue struct {
	queue []Process // FIFO queue of waiters
}

// Enqueue adds a process to the back of the wait queue.
func (wq *WaitQueue) Enqueue(p Process) {
	if p == nil {
		panic("Enqueue: process must not be nil")
	}
	wq.queue = append(wq.queue, p)
}

func (wq *WaitQueue) String() string {
	return fmt.Sprintf("WaitQueue(len=%d)", len(wq.queue))
}

// Len returns the number of waiting processes.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Peek returns the process at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Peek() Process {
	if len(wq.queue) == 0 {
		return nil
	}
	return wq.queue[0]
}

// Dequeue removes the process at the front of the queue.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Dequeue() Process {
	if len(wq.queue) == 0 {
		return nil
	}
	p := wq.queue[0]
	wq.queue[0] = nil
	wq.queue = wq.queue[1:]
	return p
}
