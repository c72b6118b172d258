package sim

import "fmt"

// Counter is one service counter. It serves exactly one patient at a time and
// keeps its own busy-time accounting.
//
// Invariant: IsBusy, CurrentPatientID != 0 and ServiceStartTime != nil hold together.
type Counter struct {
	ID               int      `json:"id"`
	IsBusy           bool     `json:"is_busy"`
	CurrentPatientID int      `json:"current_patient_id,omitempty"` // 0 while idle
	ServiceStartTime *float64 `json:"service_start_time,omitempty"`
	TotalBusyTime    float64  `json:"total_busy_time"`
	PatientsServed   int      `json:"patients_served"`
}

// NewCounter creates an idle counter.
func NewCounter(id int) *Counter {
	return &Counter{ID: id}
}

// StartService marks the counter busy with p from now on and records the
// assignment on the patient.
func (c *Counter) StartService(p *Patient, now float64) {
	if c.IsBusy {
		panic(fmt.Sprintf("StartService: counter %d already serving patient %d", c.ID, c.CurrentPatientID))
	}
	c.IsBusy = true
	c.CurrentPatientID = p.ID
	c.ServiceStartTime = at(now)
	p.CounterID = c.ID
}

// EndService marks the counter idle and accumulates the busy interval.
func (c *Counter) EndService(now float64) {
	if c.ServiceStartTime != nil {
		c.TotalBusyTime += now - *c.ServiceStartTime
		c.PatientsServed++
	}
	c.IsBusy = false
	c.CurrentPatientID = 0
	c.ServiceStartTime = nil
}

// Utilization returns busy time as a percentage of total; 0 when total <= 0.
func (c *Counter) Utilization(total float64) float64 {
	if total > 0 {
		return c.TotalBusyTime / total * 100.0
	}
	return 0.0
}
