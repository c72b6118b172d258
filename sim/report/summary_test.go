package report

import (
	"math"
	"testing"

	"github.com/counterbank/counter-sim/sim"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		want SeriesSummary
	}{
		{"empty", nil, SeriesSummary{}},
		{"single", []float64{4}, SeriesSummary{Count: 1, Mean: 4, Std: 0, Min: 4, Max: 4, Median: 4}},
		{"odd count", []float64{5, 1, 3}, SeriesSummary{Count: 3, Mean: 3, Std: math.Sqrt(8.0 / 3.0), Min: 1, Max: 5, Median: 3}},
		{"even count", []float64{4, 1, 3, 2}, SeriesSummary{Count: 4, Mean: 2.5, Std: math.Sqrt(1.25), Min: 1, Max: 4, Median: 2.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Describe(tt.xs)
			if got.Count != tt.want.Count {
				t.Fatalf("Count = %d, want %d", got.Count, tt.want.Count)
			}
			for _, c := range []struct {
				field     string
				got, want float64
			}{
				{"Mean", got.Mean, tt.want.Mean},
				{"Std", got.Std, tt.want.Std},
				{"Min", got.Min, tt.want.Min},
				{"Max", got.Max, tt.want.Max},
				{"Median", got.Median, tt.want.Median},
			} {
				if math.Abs(c.got-c.want) > 1e-9 {
					t.Errorf("%s = %v, want %v", c.field, c.got, c.want)
				}
			}
		})
	}
}

func TestDescribe_DoesNotModifyInput(t *testing.T) {
	xs := []float64{3, 1, 2}
	Describe(xs)
	if xs[0] != 3 || xs[1] != 1 || xs[2] != 2 {
		t.Errorf("input reordered: %v", xs)
	}
}

func TestSummarize_UsesPatientsAndSnapshots(t *testing.T) {
	cfg := constantConfig(1, 5, 3, 20)
	cfg.Monitoring.SnapshotInterval = 5
	res := sim.NewSimulator(cfg).Run()

	s := Summarize(res, 0)

	if s.WaitingTimes.Count != 4 || s.WaitingTimes.Mean != 0 {
		t.Errorf("WaitingTimes = %+v, want 4 zero waits", s.WaitingTimes)
	}
	if s.ServiceTimes.Mean != 3 || s.TimeInSystem.Max != 3 {
		t.Errorf("ServiceTimes = %+v, TimeInSystem = %+v", s.ServiceTimes, s.TimeInSystem)
	}
	// snapshots at 0, 5, 10, 15
	if s.QueueLengths.Count != 4 {
		t.Errorf("QueueLengths.Count = %d, want 4", s.QueueLengths.Count)
	}
	if s.CounterCount != 1 {
		t.Errorf("CounterCount = %d, want 1", s.CounterCount)
	}
}
