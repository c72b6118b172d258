// Package report consumes the output of a finished run: it reconciles
// patients left mid-service at the horizon, computes the essential report and
// summary statistics, and exports run data.
// This package never schedules anything; it reads sim.Result only.
package report

import (
	"github.com/sirupsen/logrus"

	"github.com/counterbank/counter-sim/sim"
)

// Reconcile force-closes every patient whose service started but did not end
// before the horizon: ServiceEndTime is set to endTime, metrics are derived
// and the patient departs.
// Patients that never left the queue are left untouched.
// Counter busy time is not adjusted. Returns the number of patients closed.
func Reconcile(patients []*sim.Patient, endTime float64) int {
	closed := 0
	for _, p := range patients {
		if !p.InService() {
			continue
		}
		end := endTime
		p.ServiceEndTime = &end
		p.CalculateMetrics()
		p.State = sim.StateDeparted
		closed++
	}
	if closed > 0 {
		logrus.Debugf("reconciled %d in-service patients at t=%.3f", closed, endTime)
	}
	return closed
}
