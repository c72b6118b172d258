// Package sim provides the discrete-event simulation kernel for the counter bank.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - simulator.go: the clock, the time-ordered event queue and RunUntil
//   - resource.go: the FIFO resource pool that models the counter bank
//   - process.go: the arrival flow and the per-patient service flow state machine
//
// # Architecture
//
// Every process is a Process continuation. It suspends either on
// Simulator.Timeout or on ResourcePool.Request and is resumed by the event
// loop; only one continuation ever runs at a time, so shared state needs no locking.
//
// Patient and Counter are passive records mutated by the process model. The
// Monitor observes transitions and periodic queue snapshots without affecting
// scheduling. Post-run reconciliation and reporting live in sim/report.
package sim
