package report

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/counterbank/counter-sim/sim"
)

// SeriesSummary describes one numeric series. All fields are zero when Count is 0.
type SeriesSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"` // population standard deviation
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// Summary holds the statistics of every series collected from a run.
type Summary struct {
	WaitingTimes SeriesSummary `json:"waiting_times"`
	ServiceTimes SeriesSummary `json:"service_times"`
	TimeInSystem SeriesSummary `json:"time_in_system"`
	QueueLengths SeriesSummary `json:"queue_lengths"`
	CounterCount int           `json:"counter_count"`
}

// Summarize computes a Summary over patients arriving at or after warmup and
// over every snapshot.
func Summarize(res *sim.Result, warmup float64) Summary {
	queue := make([]float64, 0, len(res.Snapshots))
	for _, s := range res.Snapshots {
		queue = append(queue, float64(s.QueueLength))
	}
	return Summary{
		WaitingTimes: Describe(WaitingTimes(res.Patients, warmup)),
		ServiceTimes: Describe(ServiceTimes(res.Patients, warmup)),
		TimeInSystem: Describe(SystemTimes(res.Patients, warmup)),
		QueueLengths: Describe(queue),
		CounterCount: len(res.Counters),
	}
}

// Describe computes count, mean, population std, min, max and median of xs.
// xs is not modified.
func Describe(xs []float64) SeriesSummary {
	if len(xs) == 0 {
		return SeriesSummary{}
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mean, std := stat.PopMeanStdDev(sorted, nil)
	return SeriesSummary{
		Count:  len(sorted),
		Mean:   mean,
		Std:    std,
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
		Median: median(sorted),
	}
}

// median of an already sorted, non-empty slice; averages the middle pair.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return stat.Quantile(0.5, stat.Empirical, sorted, nil)
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
