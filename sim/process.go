package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ArrivalProcess creates patients forever, one per sampled inter-arrival delay.
// It only stops when the run reaches its horizon.
type ArrivalProcess struct {
	Arrivals int
}

// Resume admits one patient, forks its service flow and sleeps until the next arrival.
func (a *ArrivalProcess) Resume(sim *Simulator) {
	p := sim.NewPatient()
	p.ArrivalTime = at(sim.Clock)
	p.QueueJoinTime = at(sim.Clock)

	sim.Patients = append(sim.Patients, p)
	sim.QueueLength++
	a.Arrivals++

	sim.Monitor.RecordArrival(p)
	sim.Start(&ServiceFlow{Patient: p})

	sim.Timeout(sim.Generator.NextArrival(), a)
}

// FlowState is the state of a patient's service flow.
type FlowState string

const (
	FlowNew        FlowState = "new"
	FlowRequesting FlowState = "requesting"
	FlowServing    FlowState = "serving"
	FlowDone       FlowState = "done"
	FlowAborted    FlowState = "aborted"
)

// ServiceFlow carries one patient from the queue through service.
//
//	new -> requesting -> serving -> done
//	new -> requesting -> aborted   (slot granted but no idle counter)
type ServiceFlow struct {
	Patient *Patient
	State   FlowState
	counter *Counter
}

// Resume advances the flow by one transition.
func (f *ServiceFlow) Resume(sim *Simulator) {
	switch f.State {
	case "", FlowNew:
		f.State = FlowRequesting
		if sim.Pool.Request(f) {
			f.granted(sim)
		}
	case FlowRequesting:
		f.granted(sim)
	case FlowServing:
		f.completed(sim)
	default:
		panic(fmt.Sprintf("ServiceFlow: patient %d resumed in terminal state %s", f.Patient.ID, f.State))
	}
}

// granted runs once the pool hands this flow a slot.
func (f *ServiceFlow) granted(sim *Simulator) {
	now := sim.Clock
	p := f.Patient

	sim.QueueLength--
	sim.Granted++

	c := sim.AvailableCounter()
	if c == nil {
		f.abort(sim)
		return
	}

	f.counter = c
	c.StartService(p, now)
	p.ServiceStartTime = at(now)
	p.CalculateMetrics()
	p.State = StateInService
	f.State = FlowServing
	sim.Monitor.RecordServiceStart(p, c)

	sim.Timeout(sim.Generator.NextService(), f)
}

// completed runs when the service timeout elapses.
func (f *ServiceFlow) completed(sim *Simulator) {
	now := sim.Clock
	p := f.Patient

	p.ServiceEndTime = at(now)
	p.CalculateMetrics()
	p.State = StateDeparted

	f.counter.EndService(now)
	sim.Completed++
	sim.Monitor.RecordServiceEnd(p, f.counter)

	sim.Pool.Release(sim)
	f.State = FlowDone
}

// abort closes the patient without consuming counter time. Waiting time stays
// undefined because no counter ever started serving the patient; the
// aborted state keeps CalculateMetrics from deriving it later.
func (f *ServiceFlow) abort(sim *Simulator) {
	now := sim.Clock
	p := f.Patient
	logrus.Warnf("[t=%9.3f] no idle counter for patient %d despite a granted slot", now, p.ID)

	p.ServiceStartTime = at(now)
	p.ServiceEndTime = at(now)
	p.ServiceTime = at(0)
	p.TotalTimeInSystem = at(now - *p.ArrivalTime)
	p.State = StateAborted
	sim.Completed++

	sim.Pool.Release(sim)
	f.State = FlowAborted
}
