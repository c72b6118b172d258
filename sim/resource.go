package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ResourcePool models a bank of identical, fungible units with FIFO grants.
// It does not know which physical counter a holder uses; the service flow
// picks one separately.
type ResourcePool struct {
	Capacity int
	InUse    int
	waiters  WaitQueue
}

// NewResourcePool creates a pool with the given capacity. A non-positive
// capacity is raised to 1 so that a misconfigured run still completes.
func NewResourcePool(capacity int) *ResourcePool {
	if capacity < 1 {
		logrus.Warnf("resource pool capacity %d raised to 1", capacity)
		capacity = 1
	}
	return &ResourcePool{Capacity: capacity}
}

// Request asks for one unit on behalf of p. It returns true when the unit is
// granted immediately and the caller may continue in the same step. Otherwise
// p is suspended and resumed through a GrantEvent once a unit is handed to it.
func (rp *ResourcePool) Request(p Process) bool {
	if rp.InUse < rp.Capacity && rp.waiters.Len() == 0 {
		rp.InUse++
		return true
	}
	rp.waiters.Enqueue(p)
	return false
}

// Release returns one unit. If a process is waiting, the unit passes straight
// to it and it resumes at the current simulated time.
func (rp *ResourcePool) Release(sim *Simulator) {
	if rp.InUse == 0 {
		panic(fmt.Sprintf("Release: pool has no unit in use at t=%v", sim.Clock))
	}
	if next := rp.waiters.Dequeue(); next != nil {
		sim.Schedule(&GrantEvent{time: sim.Clock, Process: next})
		return
	}
	rp.InUse--
}

// Waiting returns the number of suspended requesters.
func (rp *ResourcePool) Waiting() int {
	return rp.waiters.Len()
}

// Available returns the number of units that can be granted without waiting.
func (rp *ResourcePool) Available() int {
	return rp.Capacity - rp.InUse
}
