package sim

import (
	"errors"
	"fmt"
)

// ArrivalConfig selects the inter-arrival distribution.
type ArrivalConfig struct {
	Distribution string  `yaml:"distribution" json:"distribution"` // "exponential" (default), "uniform" or "constant"
	Mean         float64 `yaml:"mean" json:"mean"`                 // mean inter-arrival time (must be > 0)
}

// ServiceConfig selects the service-duration distribution.
type ServiceConfig struct {
	Distribution string  `yaml:"distribution" json:"distribution"` // "normal" (default), "exponential" or "constant"
	Mean         float64 `yaml:"mean" json:"mean"`                 // mean service time (must be > 0)
	Std          float64 `yaml:"std" json:"std"`                   // standard deviation, normal only
}

// MonitorConfig controls the event monitor.
type MonitorConfig struct {
	Enabled          bool    `yaml:"enabled" json:"enabled"`                     // log each arrival as it happens
	SnapshotInterval float64 `yaml:"snapshot_interval" json:"snapshot_interval"` // 0 disables periodic snapshots
}

// Config groups everything one run needs.
type Config struct {
	Counters   int           `yaml:"counters" json:"counters"` // number of identical counters (0 is degenerate but allowed)
	Horizon    float64       `yaml:"horizon" json:"horizon"`   // simulated time at which the run stops
	Warmup     float64       `yaml:"warmup" json:"warmup"`     // arrivals before this time are left out of time statistics
	Seed       int64         `yaml:"seed" json:"seed"`
	Arrival    ArrivalConfig `yaml:"arrival" json:"arrival"`
	Service    ServiceConfig `yaml:"service" json:"service"`
	Monitoring MonitorConfig `yaml:"monitoring" json:"monitoring"`
	Export     []string      `yaml:"export" json:"export"` // "csv", "json"
}

// DefaultConfig returns the hospital defaults: three counters over an
// eight-hour day measured in minutes.
func DefaultConfig() Config {
	return Config{
		Counters: 3,
		Horizon:  480,
		Warmup:   20,
		Seed:     36,
		Arrival: ArrivalConfig{
			Distribution: string(ArrivalExponential),
			Mean:         3.0,
		},
		Service: ServiceConfig{
			Distribution: string(ServiceNormal),
			Mean:         10.0,
			Std:          2.0,
		},
		Monitoring: MonitorConfig{
			Enabled:          true,
			SnapshotInterval: 1.0,
		},
		Export: []string{"csv", "json"},
	}
}

// Validate checks numeric ranges. Distribution names are never rejected:
// unknown names fall back to the constant policy.
func (c Config) Validate() error {
	var errs []error
	if c.Counters < 0 {
		errs = append(errs, fmt.Errorf("counters must be >= 0, got %d", c.Counters))
	}
	if c.Horizon <= 0 {
		errs = append(errs, fmt.Errorf("horizon must be > 0, got %v", c.Horizon))
	}
	if c.Warmup < 0 || (c.Horizon > 0 && c.Warmup >= c.Horizon) {
		errs = append(errs, fmt.Errorf("warmup must be in [0, horizon), got %v", c.Warmup))
	}
	if c.Arrival.Mean <= 0 {
		errs = append(errs, fmt.Errorf("arrival mean must be > 0, got %v", c.Arrival.Mean))
	}
	if c.Service.Mean <= 0 {
		errs = append(errs, fmt.Errorf("service mean must be > 0, got %v", c.Service.Mean))
	}
	if c.Service.Std < 0 {
		errs = append(errs, fmt.Errorf("service std must be >= 0, got %v", c.Service.Std))
	}
	if c.Monitoring.SnapshotInterval < 0 {
		errs = append(errs, fmt.Errorf("snapshot interval must be >= 0, got %v", c.Monitoring.SnapshotInterval))
	}
	for _, f := range c.Export {
		if f != "csv" && f != "json" {
			errs = append(errs, fmt.Errorf("unknown export format %q", f))
		}
	}
	return errors.Join(errs...)
}
