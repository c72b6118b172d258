package report

import (
	"fmt"
	"io"

	"github.com/counterbank/counter-sim/sim"
)

// CounterReport is the final accounting of one counter.
type CounterReport struct {
	ID             int     `json:"counter_id"`
	PatientsServed int     `json:"patients_served"`
	TotalBusyTime  float64 `json:"total_busy_time"`
	Utilization    float64 `json:"utilization"`
}

// EssentialReport aggregates the headline queue statistics of a run.
type EssentialReport struct {
	TotalArrivals      int             `json:"total_arrivals"`
	TotalServed        int             `json:"total_served"`
	TotalRemaining     int             `json:"total_remaining"`
	AverageWaitingTime float64         `json:"average_waiting_time"`
	MaxWaitingTime     float64         `json:"max_waiting_time"`
	Throughput         float64         `json:"throughput"`
	AverageUtilization float64         `json:"average_utilization"`
	Counters           []CounterReport `json:"counters"`
}

// Analyze computes the essential report over total simulated time.
// Waiting times of patients that arrived before warmup are excluded; they
// still count as arrivals and, when served, as served.
func Analyze(patients []*sim.Patient, counters []*sim.Counter, total, warmup float64) EssentialReport {
	r := EssentialReport{TotalArrivals: len(patients)}
	for _, p := range patients {
		if p.Served() {
			r.TotalServed++
		}
	}
	r.TotalRemaining = r.TotalArrivals - r.TotalServed

	waits := WaitingTimes(patients, warmup)
	if len(waits) > 0 {
		sum := 0.0
		for _, w := range waits {
			sum += w
			r.MaxWaitingTime = max(r.MaxWaitingTime, w)
		}
		r.AverageWaitingTime = sum / float64(len(waits))
	}
	if total > 0 {
		r.Throughput = float64(r.TotalServed) / total
	}

	r.Counters = make([]CounterReport, 0, len(counters))
	utilSum := 0.0
	for _, c := range counters {
		u := c.Utilization(total)
		utilSum += u
		r.Counters = append(r.Counters, CounterReport{
			ID:             c.ID,
			PatientsServed: c.PatientsServed,
			TotalBusyTime:  c.TotalBusyTime,
			Utilization:    u,
		})
	}
	if len(counters) > 0 {
		r.AverageUtilization = utilSum / float64(len(counters))
	}
	return r
}

// WaitingTimes returns the defined waiting times of patients arriving at or after warmup.
func WaitingTimes(patients []*sim.Patient, warmup float64) []float64 {
	return collect(patients, warmup, func(p *sim.Patient) *float64 { return p.WaitingTime })
}

// ServiceTimes returns the defined service times of patients arriving at or after warmup.
func ServiceTimes(patients []*sim.Patient, warmup float64) []float64 {
	return collect(patients, warmup, func(p *sim.Patient) *float64 { return p.ServiceTime })
}

// SystemTimes returns the defined times in system of patients arriving at or after warmup.
func SystemTimes(patients []*sim.Patient, warmup float64) []float64 {
	return collect(patients, warmup, func(p *sim.Patient) *float64 { return p.TotalTimeInSystem })
}

func collect(patients []*sim.Patient, warmup float64, field func(*sim.Patient) *float64) []float64 {
	out := make([]float64, 0, len(patients))
	for _, p := range patients {
		if p.ArrivalTime == nil || *p.ArrivalTime < warmup {
			continue
		}
		if v := field(p); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// Print writes the report in the console layout.
func (r EssentialReport) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Queue System Statistics ===")
	fmt.Fprintf(w, "Total arrivals          : %d patients\n", r.TotalArrivals)
	fmt.Fprintf(w, "Total patients served   : %d patients\n", r.TotalServed)
	fmt.Fprintf(w, "Remaining patients      : %d patients\n", r.TotalRemaining)
	fmt.Fprintf(w, "Average waiting time    : %.2f minutes\n", r.AverageWaitingTime)
	fmt.Fprintf(w, "Maximum waiting time    : %.2f minutes\n", r.MaxWaitingTime)
	fmt.Fprintf(w, "Throughput              : %.2f patients/min\n", r.Throughput)
	fmt.Fprintf(w, "Average utilization     : %.2f%%\n", r.AverageUtilization)
	fmt.Fprintln(w, "=== Counters ===")
	for _, c := range r.Counters {
		fmt.Fprintf(w, "Counter %d: %d patients served, %.2f%% utilization\n", c.ID, c.PatientsServed, c.Utilization)
	}
}
