package sim

import "math/rand"

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// NewStream returns the single pseudo-random stream of a run. Arrival and
// service sampling share it, so the order of calls across the run is part of
// the reproducibility contract.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
func (k SimulationKey) NewStream() *rand.Rand {
	return rand.New(rand.NewSource(int64(k)))
}
