package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelRuns})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalRuns != 0 || summary.TruncatedRuns != 0 || summary.UnrecordedRuns != 0 {
		t.Errorf("expected zero counts, got %+v", summary)
	}
	if summary.MeanOutcome != 0 || summary.MaxOutcome != 0 {
		t.Error("expected zero outcome statistics")
	}
	if len(summary.OutcomeDistribution) != 0 {
		t.Error("expected empty outcome distribution")
	}
}

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalRuns != 0 || summary.OutcomeDistribution == nil {
		t.Errorf("unexpected summary for nil trace: %+v", summary)
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN runs with known outcomes, one truncated and unrecorded
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelRuns})
	st.RecordRun(RunRecord{Run: 0, Outcome: 2, Steps: 1, Recorded: true})
	st.RecordRun(RunRecord{Run: 1, Outcome: 2, Steps: 3, Recorded: true})
	st.RecordRun(RunRecord{Run: 2, Outcome: 8, Steps: 8, Recorded: false, Truncated: true})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts and statistics match
	if summary.TotalRuns != 3 {
		t.Errorf("expected 3 runs, got %d", summary.TotalRuns)
	}
	if summary.TruncatedRuns != 1 || summary.UnrecordedRuns != 1 {
		t.Errorf("expected 1 truncated and 1 unrecorded, got %d and %d", summary.TruncatedRuns, summary.UnrecordedRuns)
	}
	if summary.MeanOutcome != 4 {
		t.Errorf("expected mean outcome 4, got %v", summary.MeanOutcome)
	}
	if summary.MaxOutcome != 8 || summary.MaxSteps != 8 {
		t.Errorf("expected max outcome/steps 8/8, got %d/%d", summary.MaxOutcome, summary.MaxSteps)
	}
	if summary.MeanSteps != 4 {
		t.Errorf("expected mean steps 4, got %v", summary.MeanSteps)
	}
	if summary.OutcomeDistribution[2] != 2 || summary.OutcomeDistribution[8] != 1 {
		t.Errorf("unexpected distribution %v", summary.OutcomeDistribution)
	}
}
