package sim

import (
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// MinServiceTime floors normal service samples so no patient is served in
// zero or negative time.
const MinServiceTime = 0.1

// ArrivalDistribution is the closed set of inter-arrival distributions.
type ArrivalDistribution string

const (
	ArrivalExponential ArrivalDistribution = "exponential"
	ArrivalUniform     ArrivalDistribution = "uniform"
	ArrivalConstant    ArrivalDistribution = "constant"
)

// ParseArrivalDistribution maps a configured name onto a known distribution.
// Unknown names fall back to ArrivalConstant; ok reports whether the name was recognized.
func ParseArrivalDistribution(name string) (dist ArrivalDistribution, ok bool) {
	switch d := ArrivalDistribution(name); d {
	case ArrivalExponential, ArrivalUniform, ArrivalConstant:
		return d, true
	default:
		return ArrivalConstant, false
	}
}

// ServiceDistribution is the closed set of service-duration distributions.
type ServiceDistribution string

const (
	ServiceNormal      ServiceDistribution = "normal"
	ServiceExponential ServiceDistribution = "exponential"
	ServiceConstant    ServiceDistribution = "constant"
)

// ParseServiceDistribution maps a configured name onto a known distribution.
// Unknown names fall back to ServiceConstant; ok reports whether the name was recognized.
func ParseServiceDistribution(name string) (dist ServiceDistribution, ok bool) {
	switch d := ServiceDistribution(name); d {
	case ServiceNormal, ServiceExponential, ServiceConstant:
		return d, true
	default:
		return ServiceConstant, false
	}
}

// Sampler draws one duration from a distribution.
type Sampler interface {
	Sample(rng *rand.Rand) float64
}

// ExponentialSampler produces exponentially-distributed durations.
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) float64 {
	return rng.ExpFloat64() * s.mean
}

// UniformSampler draws from [low, high).
type UniformSampler struct {
	low, high float64
}

func (s *UniformSampler) Sample(rng *rand.Rand) float64 {
	return s.low + rng.Float64()*(s.high-s.low)
}

// NormalSampler produces Gaussian durations floored at floor.
type NormalSampler struct {
	mean, stdDev float64
	floor        float64
}

func (s *NormalSampler) Sample(rng *rand.Rand) float64 {
	val := rng.NormFloat64()*s.stdDev + s.mean
	return math.Max(s.floor, val)
}

// ConstantSampler always returns the same value and does not touch the stream.
type ConstantSampler struct {
	value float64
}

func (s *ConstantSampler) Sample(_ *rand.Rand) float64 {
	return s.value
}

// NewArrivalSampler creates the inter-arrival sampler for cfg.
func NewArrivalSampler(cfg ArrivalConfig) Sampler {
	dist, ok := ParseArrivalDistribution(cfg.Distribution)
	if !ok {
		logrus.Warnf("unknown arrival distribution %q; using constant inter-arrival %.3f", cfg.Distribution, cfg.Mean)
	}
	switch dist {
	case ArrivalExponential:
		return &ExponentialSampler{mean: cfg.Mean}
	case ArrivalUniform:
		return &UniformSampler{low: cfg.Mean * 0.5, high: cfg.Mean * 1.5}
	default:
		return &ConstantSampler{value: cfg.Mean}
	}
}

// NewServiceSampler creates the service-duration sampler for cfg.
func NewServiceSampler(cfg ServiceConfig) Sampler {
	dist, ok := ParseServiceDistribution(cfg.Distribution)
	if !ok {
		logrus.Warnf("unknown service distribution %q; using constant service time %.3f", cfg.Distribution, cfg.Mean)
	}
	switch dist {
	case ServiceNormal:
		return &NormalSampler{mean: cfg.Mean, stdDev: cfg.Std, floor: MinServiceTime}
	case ServiceExponential:
		return &ExponentialSampler{mean: cfg.Mean}
	default:
		return &ConstantSampler{value: cfg.Mean}
	}
}

// Generator produces inter-arrival and service samples from one seeded stream.
// The stream is seeded once at construction and never re-seeded.
type Generator struct {
	rng     *rand.Rand
	arrival Sampler
	service Sampler
}

// NewGenerator builds a Generator for the given distributions and key.
func NewGenerator(arrival ArrivalConfig, service ServiceConfig, key SimulationKey) *Generator {
	return &Generator{
		rng:     key.NewStream(),
		arrival: NewArrivalSampler(arrival),
		service: NewServiceSampler(service),
	}
}

// NextArrival returns the delay until the next arrival.
func (g *Generator) NextArrival() float64 {
	return g.arrival.Sample(g.rng)
}

// NextService returns the duration of the next service.
func (g *Generator) NextService() float64 {
	return g.service.Sample(g.rng)
}
