// Package sim provides the stochastic epidemic simulation engine.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - frame.go: population frames and the SIR/SIS model selector
//   - markov.go: the continuous-generation Markov chain stepper (one event per timestep)
//   - reedfrost.go: the discrete-generation chain-binomial (Reed–Frost) stepper
//   - histogram.go: outcome bins and the completeness checksum
//   - simulate.go: experiment drivers that repeat a stepper for N iterations
//   - config.go, experiment.go: validated configuration and its YAML form
//   - trajectory.go, deterministic.go: averaged trajectories and the mean-field curve
//
// # Architecture
//
// All probability arithmetic lives in sim/exact: factorials and binomial
// coefficients are exact integers, probabilities are decimals at a configured
// number of significant digits, and sampling inverts an exact cumulative table
// against a uniform draw on a fixed grid. Floats appear only at the reporting
// boundary (sim/report) and in the deterministic mean-field reference curve.
//
// Randomness is never global: each driver takes an exact.UniformSource,
// normally a *Stream obtained from PartitionedRNG.ForSubsystem. Runs execute
// sequentially and own their frames and tables, so a fixed seed reproduces an
// experiment exactly.
//
// Optional per-run records are collected through sim/trace.
package sim
