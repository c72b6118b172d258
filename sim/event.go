package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event must have a Timestamp (in simulated time units) and an Execute method
// that advances simulation state when invoked.
type Event interface {
	Timestamp() float64
	Execute(*Simulator)
}

// Process is a logical continuation multiplexed onto the simulated timeline.
// Resume is invoked by the kernel whenever the event the process is suspended
// on resolves: a timeout elapsing, or a resource slot being granted.
type Process interface {
	Resume(*Simulator)
}

// TimeoutEvent resumes a suspended process once its delay has elapsed.
type TimeoutEvent struct {
	time    float64 // Absolute fire time
	Process Process // Continuation to resume
}

// Timestamp returns the scheduled time of the TimeoutEvent.
func (e *TimeoutEvent) Timestamp() float64 {
	return e.time
}

// Execute resumes the suspended process.
func (e *TimeoutEvent) Execute(sim *Simulator) {
	e.Process.Resume(sim)
}

// GrantEvent hands a released pool slot to the process that was waiting for it.
// It fires at the release time, so the handoff costs no simulated time.
type GrantEvent struct {
	time    float64
	Process Process
}

// Timestamp returns the scheduled time of the GrantEvent.
func (e *GrantEvent) Timestamp() float64 {
	return e.time
}

// Execute resumes the waiter that now owns the slot.
func (e *GrantEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< Grant at %.3f", e.time)
	e.Process.Resume(sim)
}
