package sim

import "github.com/google/uuid"

// Result is everything a run exposes to its collaborators. Patients include
// those still queued or mid-service at the horizon.
type Result struct {
	RunID     uuid.UUID
	Config    Config
	EndTime   float64
	Patients  []*Patient
	Counters  []*Counter
	Events    []EventRecord
	Snapshots []Snapshot
}

// Result packages the current state of the run.
func (sim *Simulator) Result() *Result {
	return &Result{
		RunID:     sim.RunID,
		Config:    sim.Config,
		EndTime:   sim.Clock,
		Patients:  sim.Patients,
		Counters:  sim.Counters,
		Events:    sim.Monitor.Events,
		Snapshots: sim.Monitor.Snapshots,
	}
}
