package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArrivalDistribution(t *testing.T) {
	tests := []struct {
		name   string
		want   ArrivalDistribution
		wantOK bool
	}{
		{"exponential", ArrivalExponential, true},
		{"uniform", ArrivalUniform, true},
		{"constant", ArrivalConstant, true},
		{"gamma", ArrivalConstant, false},
		{"", ArrivalConstant, false},
		{"Exponential", ArrivalConstant, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseArrivalDistribution(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestParseServiceDistribution(t *testing.T) {
	tests := []struct {
		name   string
		want   ServiceDistribution
		wantOK bool
	}{
		{"normal", ServiceNormal, true},
		{"exponential", ServiceExponential, true},
		{"constant", ServiceConstant, true},
		{"uniform", ServiceConstant, false},
		{"lognormal", ServiceConstant, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseServiceDistribution(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestGenerator_UnknownDistributionsFallBackToConstant(t *testing.T) {
	g := NewGenerator(
		ArrivalConfig{Distribution: "weibull", Mean: 4},
		ServiceConfig{Distribution: "pareto", Mean: 7, Std: 3},
		NewSimulationKey(1),
	)
	for i := 0; i < 20; i++ {
		assert.Equal(t, 4.0, g.NextArrival())
		assert.Equal(t, 7.0, g.NextService())
	}
}

func TestGenerator_ExponentialArrivalMeanMatchesParam(t *testing.T) {
	g := NewGenerator(ArrivalConfig{Distribution: "exponential", Mean: 3}, ServiceConfig{Distribution: "constant", Mean: 1}, NewSimulationKey(42))
	n := 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		v := g.NextArrival()
		if v <= 0 || math.IsInf(v, 0) {
			t.Fatalf("sample %d: %v not finite positive", i, v)
		}
		sum += v
	}
	mean := sum / float64(n)
	if math.Abs(mean-3)/3 > 0.05 {
		t.Errorf("exponential mean = %.3f, want ≈ 3 (within 5%%)", mean)
	}
}

func TestGenerator_UniformArrivalWithinHalfToOneAndAHalfMean(t *testing.T) {
	g := NewGenerator(ArrivalConfig{Distribution: "uniform", Mean: 5}, ServiceConfig{Distribution: "constant", Mean: 1}, NewSimulationKey(42))
	n := 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		v := g.NextArrival()
		if v < 2.5 || v >= 7.5 {
			t.Fatalf("sample %d: %v outside [2.5, 7.5)", i, v)
		}
		sum += v
	}
	mean := sum / float64(n)
	if math.Abs(mean-5)/5 > 0.02 {
		t.Errorf("uniform mean = %.3f, want ≈ 5", mean)
	}
}

func TestGenerator_NormalServiceFlooredAtMinimum(t *testing.T) {
	// GIVEN a normal distribution centred well below the floor
	g := NewGenerator(ArrivalConfig{Distribution: "constant", Mean: 1}, ServiceConfig{Distribution: "normal", Mean: -5, Std: 1}, NewSimulationKey(7))
	for i := 0; i < 1000; i++ {
		// THEN every sample is exactly the floor
		assert.Equal(t, MinServiceTime, g.NextService())
	}
}

func TestGenerator_NormalServiceMeanMatchesParam(t *testing.T) {
	g := NewGenerator(ArrivalConfig{Distribution: "constant", Mean: 1}, ServiceConfig{Distribution: "normal", Mean: 10, Std: 2}, NewSimulationKey(36))
	n := 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		v := g.NextService()
		if v < MinServiceTime {
			t.Fatalf("sample %d: %v below floor", i, v)
		}
		sum += v
	}
	mean := sum / float64(n)
	if math.Abs(mean-10)/10 > 0.02 {
		t.Errorf("normal mean = %.3f, want ≈ 10", mean)
	}
}

func TestGenerator_ExponentialServiceStrictlyPositive(t *testing.T) {
	g := NewGenerator(ArrivalConfig{Distribution: "constant", Mean: 1}, ServiceConfig{Distribution: "exponential", Mean: 0.5}, NewSimulationKey(3))
	for i := 0; i < 10000; i++ {
		if v := g.NextService(); v <= 0 {
			t.Fatalf("sample %d: %v, want > 0", i, v)
		}
	}
}

func TestGenerator_SharesOneStreamAcrossArrivalAndService(t *testing.T) {
	// GIVEN exponential arrivals and service on one key
	key := NewSimulationKey(99)
	g := NewGenerator(ArrivalConfig{Distribution: "exponential", Mean: 2}, ServiceConfig{Distribution: "exponential", Mean: 5}, key)
	ref := key.NewStream()

	// THEN interleaved calls consume the stream in call order
	assert.Equal(t, ref.ExpFloat64()*2, g.NextArrival())
	assert.Equal(t, ref.ExpFloat64()*5, g.NextService())
	assert.Equal(t, ref.ExpFloat64()*5, g.NextService())
	assert.Equal(t, ref.ExpFloat64()*2, g.NextArrival())
}

func TestGenerator_ConstantDoesNotAdvanceStream(t *testing.T) {
	key := NewSimulationKey(5)
	g := NewGenerator(ArrivalConfig{Distribution: "constant", Mean: 1}, ServiceConfig{Distribution: "exponential", Mean: 1}, key)
	ref := key.NewStream()

	g.NextArrival()
	g.NextArrival()
	assert.Equal(t, ref.ExpFloat64(), g.NextService())
}
