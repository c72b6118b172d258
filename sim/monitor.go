package sim

import "github.com/sirupsen/logrus"

// EventKind names a lifecycle transition recorded by the Monitor.
type EventKind string

const (
	EventArrival      EventKind = "arrival"
	EventServiceStart EventKind = "service_start"
	EventServiceEnd   EventKind = "service_end"
)

// EventRecord captures one lifecycle transition.
type EventRecord struct {
	Time        float64   `json:"time"`
	Kind        EventKind `json:"event"`
	PatientID   int       `json:"patient_id"`
	CounterID   int       `json:"counter_id,omitempty"` // 0 for arrivals
	QueueLength int       `json:"queue_length"`
}

// Snapshot captures queue state at one periodic sampling instant.
type Snapshot struct {
	Time          float64 `json:"time"`
	QueueLength   int     `json:"queue_length"`
	TotalArrivals int     `json:"total_arrivals"`
	TotalStarted  int     `json:"total_started"`
	TotalServed   int     `json:"total_served"`
}

// Monitor observes the run. It only appends records and never influences scheduling.
type Monitor struct {
	sim       *Simulator
	config    MonitorConfig
	Events    []EventRecord
	Snapshots []Snapshot
}

// NewMonitor creates a Monitor ready for recording.
func NewMonitor(sim *Simulator, config MonitorConfig) *Monitor {
	return &Monitor{
		sim:       sim,
		config:    config,
		Events:    make([]EventRecord, 0),
		Snapshots: make([]Snapshot, 0),
	}
}

// RecordArrival appends an arrival record and, with monitoring enabled, logs it.
func (m *Monitor) RecordArrival(p *Patient) {
	m.record(EventArrival, p, 0)
	if m.config.Enabled {
		logrus.Infof("%.2f: Patient %d arrived. Queue length: %d", m.sim.Clock, p.ID, m.sim.QueueLength)
	}
}

// RecordServiceStart appends a service_start record.
func (m *Monitor) RecordServiceStart(p *Patient, c *Counter) {
	m.record(EventServiceStart, p, c.ID)
}

// RecordServiceEnd appends a service_end record.
func (m *Monitor) RecordServiceEnd(p *Patient, c *Counter) {
	m.record(EventServiceEnd, p, c.ID)
}

func (m *Monitor) record(kind EventKind, p *Patient, counterID int) {
	m.Events = append(m.Events, EventRecord{
		Time:        m.sim.Clock,
		Kind:        kind,
		PatientID:   p.ID,
		CounterID:   counterID,
		QueueLength: m.sim.QueueLength,
	})
}

// TakeSnapshot appends the current queue state.
func (m *Monitor) TakeSnapshot() {
	m.Snapshots = append(m.Snapshots, Snapshot{
		Time:          m.sim.Clock,
		QueueLength:   m.sim.QueueLength,
		TotalArrivals: len(m.sim.Patients),
		TotalStarted:  m.sim.Granted,
		TotalServed:   m.sim.Completed,
	})
}

// SnapshotProcess samples the monitor every Interval until the run stops.
type SnapshotProcess struct {
	Interval float64
}

// Resume takes one snapshot and sleeps for Interval.
func (sp *SnapshotProcess) Resume(sim *Simulator) {
	sim.Monitor.TakeSnapshot()
	sim.Timeout(sp.Interval, sp)
}
