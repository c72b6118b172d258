// sim/simulator.go
package sim

import (
	"container/heap"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// scheduledEvent pairs an event with its registration sequence number.
type scheduledEvent struct {
	ev  Event
	seq uint64
}

// EventQueue implements heap.Interface and orders events by timestamp.
// Events with equal timestamps pop in the order they were scheduled.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []scheduledEvent

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	ti, tj := eq[i].ev.Timestamp(), eq[j].ev.Timestamp()
	if ti != tj {
		return ti < tj
	}
	return eq[i].seq < eq[j].seq
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(scheduledEvent))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	old[n-1] = scheduledEvent{}
	*eq = old[0 : n-1]
	return item
}

// Simulator is the core object that holds simulation time, the counter bank,
// every patient of the run, and the event loop.
type Simulator struct {
	RunID   uuid.UUID
	Config  Config
	Clock   float64
	Horizon float64
	// EventQueue has all pending continuations keyed by absolute fire time
	EventQueue EventQueue
	// Pool is the counter bank seen as a single contended resource
	Pool *ResourcePool
	// Counters is the fixed list scanned for the first idle counter, ids 1..N
	Counters []*Counter
	// Patients in arrival order; append-only for the run
	Patients []*Patient
	// QueueLength counts patients that arrived but were not yet granted a slot
	QueueLength int
	// Granted counts patients that left the queue so far
	Granted   int
	Completed int
	Generator *Generator
	Monitor   *Monitor

	seq           uint64
	nextPatientID int
}

// NewSimulator builds the environment for one run. Counters and the pool are
// created once here and live for the whole run.
// cfg must pass Validate; an invalid config panics, since a zero mean
// inter-arrival time would keep the clock at t=0 forever.
func NewSimulator(cfg Config) *Simulator {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("NewSimulator: invalid config: %v", err))
	}
	s := &Simulator{
		RunID:      uuid.New(),
		Config:     cfg,
		Clock:      0,
		Horizon:    cfg.Horizon,
		EventQueue: make(EventQueue, 0),
		Pool:       NewResourcePool(cfg.Counters),
		Counters:   make([]*Counter, 0, max(cfg.Counters, 0)),
		Patients:   make([]*Patient, 0),
		Generator:  NewGenerator(cfg.Arrival, cfg.Service, NewSimulationKey(cfg.Seed)),
	}
	for i := 1; i <= cfg.Counters; i++ {
		s.Counters = append(s.Counters, NewCounter(i))
	}
	s.Monitor = NewMonitor(s, cfg.Monitoring)
	return s
}

// Schedule pushes an event into the simulator's EventQueue.
func (sim *Simulator) Schedule(ev Event) {
	heap.Push(&sim.EventQueue, scheduledEvent{ev: ev, seq: sim.seq})
	sim.seq++
}

// Timeout suspends p until Clock+delay. A negative delay is a programming
// error and panics.
func (sim *Simulator) Timeout(delay float64, p Process) {
	if delay < 0 {
		panic(fmt.Sprintf("Timeout: negative delay %v at t=%v", delay, sim.Clock))
	}
	sim.Schedule(&TimeoutEvent{time: sim.Clock + delay, Process: p})
}

// Start forks p as an independent process. It first runs at the current
// time, after every continuation already scheduled for this instant.
func (sim *Simulator) Start(p Process) {
	sim.Timeout(0, p)
}

// RunUntil resolves pending events in time order until the next one would
// fire at or beyond end. Remaining events stay pending and are never resumed.
// The clock reads end afterwards.
func (sim *Simulator) RunUntil(end float64) {
	for len(sim.EventQueue) > 0 {
		if sim.EventQueue[0].ev.Timestamp() >= end {
			break
		}
		// get the next event to be simulated
		next := heap.Pop(&sim.EventQueue).(scheduledEvent)
		// advance the clock
		sim.Clock = next.ev.Timestamp()
		logrus.Debugf("[t=%9.3f] Executing %T", sim.Clock, next.ev)
		next.ev.Execute(sim)
	}
	if end > sim.Clock {
		sim.Clock = end
	}
}

// Run starts the arrival flow and, when configured, the periodic snapshot
// process, then advances the clock to the horizon.
func (sim *Simulator) Run() *Result {
	logrus.Infof("Starting run %s: counters=%d horizon=%.2f seed=%d", sim.RunID, len(sim.Counters), sim.Horizon, sim.Config.Seed)
	sim.Start(&ArrivalProcess{})
	if sim.Config.Monitoring.SnapshotInterval > 0 {
		sim.Start(&SnapshotProcess{Interval: sim.Config.Monitoring.SnapshotInterval})
	}
	sim.RunUntil(sim.Horizon)
	logrus.Infof("[t=%9.3f] Simulation ended: %d arrivals, %d completed, %d pending events",
		sim.Clock, len(sim.Patients), sim.Completed, len(sim.EventQueue))
	return sim.Result()
}

// Pending returns the number of continuations that have not been resumed.
func (sim *Simulator) Pending() int {
	return len(sim.EventQueue)
}

// NewPatient creates the next patient of this run. Ids start at 1.
func (sim *Simulator) NewPatient() *Patient {
	sim.nextPatientID++
	return NewPatient(sim.nextPatientID)
}

// AvailableCounter returns the first idle counter in id order, or nil if
// every counter is busy.
func (sim *Simulator) AvailableCounter() *Counter {
	for _, c := range sim.Counters {
		if !c.IsBusy {
			return c
		}
	}
	return nil
}

// CounterByID resolves a counter id; nil if out of range.
func (sim *Simulator) CounterByID(id int) *Counter {
	if id < 1 || id > len(sim.Counters) {
		return nil
	}
	return sim.Counters[id-1]
}

// PatientByID resolves a patient id; nil if unknown.
func (sim *Simulator) PatientByID(id int) *Patient {
	if id < 1 || id > len(sim.Patients) {
		return nil
	}
	return sim.Patients[id-1]
}

// Busy returns the number of counters currently serving.
func (sim *Simulator) Busy() int {
	n := 0
	for _, c := range sim.Counters {
		if c.IsBusy {
			n++
		}
	}
	return n
}
