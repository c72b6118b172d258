// Defines the Patient struct that models one unit of demand in the simulation.
// Tracks arrival, queueing and service timestamps and the metrics derived from them.

package sim

import "fmt"

// PatientState represents the lifecycle state of a patient.
type PatientState string

const (
	StateWaiting   PatientState = "waiting"
	StateInService PatientState = "in_service"
	StateDeparted  PatientState = "departed"
	StateAborted   PatientState = "aborted"
)

// Patient is a passive record mutated by the process model. Timestamps are
// nil until observed; derived metrics are nil until both of their inputs are set.
type Patient struct {
	ID    int          `json:"id"`
	State PatientState `json:"state"`

	ArrivalTime      *float64 `json:"arrival_time"`
	QueueJoinTime    *float64 `json:"queue_join_time"`
	ServiceStartTime *float64 `json:"service_start_time"`
	ServiceEndTime   *float64 `json:"service_end_time"`

	WaitingTime       *float64 `json:"waiting_time"`         // ServiceStartTime - QueueJoinTime
	ServiceTime       *float64 `json:"service_time"`         // ServiceEndTime - ServiceStartTime
	TotalTimeInSystem *float64 `json:"total_time_in_system"` // ServiceEndTime - ArrivalTime

	// CounterID is the id of the counter that served the patient, 0 if none.
	CounterID int `json:"counter_id,omitempty"`
}

// NewPatient creates a patient in the waiting state.
func NewPatient(id int) *Patient {
	return &Patient{ID: id, State: StateWaiting}
}

// CalculateMetrics derives the time metrics from whichever timestamps are set.
// An aborted patient never gets a waiting time: its service start only marks
// the moment it left the queue.
func (p *Patient) CalculateMetrics() {
	if p.State != StateAborted && p.ServiceStartTime != nil && p.QueueJoinTime != nil {
		p.WaitingTime = at(*p.ServiceStartTime - *p.QueueJoinTime)
	}
	if p.ServiceEndTime != nil && p.ServiceStartTime != nil {
		p.ServiceTime = at(*p.ServiceEndTime - *p.ServiceStartTime)
	}
	if p.ServiceEndTime != nil && p.ArrivalTime != nil {
		p.TotalTimeInSystem = at(*p.ServiceEndTime - *p.ArrivalTime)
	}
}

// Served reports whether the patient's service has ended.
func (p *Patient) Served() bool {
	return p.ServiceEndTime != nil
}

// InService reports whether service started but has not ended.
func (p *Patient) InService() bool {
	return p.ServiceStartTime != nil && p.ServiceEndTime == nil
}

// This method returns a human-readable string representation of a Patient.
func (p Patient) String() string {
	return fmt.Sprintf("Patient: (ID: %d, State: %s, Arrival: %s, Counter: %d)", p.ID, p.State, fmtTime(p.ArrivalTime), p.CounterID)
}

// at returns a pointer to a copy of t.
func at(t float64) *float64 {
	return &t
}

func fmtTime(t *float64) string {
	if t == nil {
		return "-"
	}
	return fmt.Sprintf("%.3f", *t)
}
