package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalRuns           int
	TruncatedRuns       int
	UnrecordedRuns      int
	MeanOutcome         float64
	MaxOutcome          int
	MeanSteps           float64
	MaxSteps            int
	OutcomeDistribution map[int]int // outcome → number of runs
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		OutcomeDistribution: make(map[int]int),
	}
	if st == nil || len(st.Runs) == 0 {
		return summary
	}

	summary.TotalRuns = len(st.Runs)
	totalOutcome, totalSteps := 0, 0
	for _, r := range st.Runs {
		if r.Truncated {
			summary.TruncatedRuns++
		}
		if !r.Recorded {
			summary.UnrecordedRuns++
		}
		summary.OutcomeDistribution[r.Outcome]++
		totalOutcome += r.Outcome
		totalSteps += r.Steps
		if r.Outcome > summary.MaxOutcome {
			summary.MaxOutcome = r.Outcome
		}
		if r.Steps > summary.MaxSteps {
			summary.MaxSteps = r.Steps
		}
	}
	summary.MeanOutcome = float64(totalOutcome) / float64(len(st.Runs))
	summary.MeanSteps = float64(totalSteps) / float64(len(st.Runs))

	return summary
}
