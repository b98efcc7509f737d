// Package trace provides per-run outcome recording for epidemic experiments.
// This package has no dependencies on sim/; it stores plain data types.
package trace

// RunRecord captures the outcome of a single simulated run.
type RunRecord struct {
	Run       int  // zero-based run index
	Outcome   int  // final outbreak size (Reed–Frost), absorption timestep (Markov age) or final infectives (trajectory)
	Steps     int  // generations (Reed–Frost) or events (Markov) simulated
	Recorded  bool // false when the outcome fell outside the histogram
	Truncated bool // true when the run hit the configured step cap before absorbing
}
