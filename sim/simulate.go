package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim/exact"
	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim/trace"
)

// ReedFrostResult is the outcome of a chain-binomial experiment.
type ReedFrostResult struct {
	Histogram  *Histogram // final outbreak size, initial infectives included
	Iterations int
	Truncated  int // runs stopped by MaxGenerations
	Trace      *trace.SimulationTrace
	Elapsed    time.Duration
}

// AgeResult is the outcome of a Markov absorption-time experiment.
type AgeResult struct {
	Histogram  *Histogram // absorption timestep
	Iterations int
	Truncated  int   // runs stopped by MaxSteps, never binned
	Checksum   error // advisory histogram mismatch, nil when every run was binned
	Trace      *trace.SimulationTrace
	Elapsed    time.Duration
}

// TrajectoryResult is the outcome of a Markov trajectory experiment.
type TrajectoryResult struct {
	Mean       PopulationSeries // average S, I, R at timesteps 0..Horizon
	Iterations int
	Absorbed   int // runs that absorbed within the horizon
	Trace      *trace.SimulationTrace
	Elapsed    time.Duration
}

func newTrace(level trace.TraceLevel) *trace.SimulationTrace {
	if !level.Enabled() {
		return nil
	}
	return trace.NewSimulationTrace(trace.TraceConfig{Level: level})
}

// SimulateReedFrost runs cfg.Iterations chain-binomial outbreaks and bins
// their final sizes into cfg.NumBins() bins.
//
// Every final size fits, so the histogram must account for every run; a
// mismatch (including one caused by generation-capped runs) is returned as an
// error wrapping ErrChecksum along with the partial result.
func SimulateReedFrost(cfg ReedFrostConfig, src exact.UniformSource) (*ReedFrostResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	model, err := NewReedFrostModel(cfg)
	if err != nil {
		return nil, err
	}
	hist, err := NewHistogram(cfg.NumBins())
	if err != nil {
		return nil, err
	}

	logrus.Infof("Reed-Frost: %d runs, S0=%d I0=%d q=%v", cfg.Iterations, cfg.InitialSusceptibles, cfg.InitialInfectives, cfg.IndivProbability)
	start := time.Now()
	result := &ReedFrostResult{Histogram: hist, Iterations: cfg.Iterations, Trace: newTrace(cfg.Trace)}

	for run := 0; run < cfg.Iterations; run++ {
		outbreak, err := model.Outbreak(src, cfg.InitialSusceptibles, cfg.InitialInfectives)
		truncated := errors.Is(err, ErrStepLimit)
		if err != nil && !truncated {
			return result, fmt.Errorf("run %d: %w", run, err)
		}
		recorded := false
		if truncated {
			result.Truncated++
			logrus.Debugf("run %d: truncated after %d generations", run, outbreak.Generations)
		} else {
			recorded = hist.Record(outbreak.FinalSize)
			logrus.Debugf("run %d: final size %d after %d generations", run, outbreak.FinalSize, outbreak.Generations)
		}
		result.Trace.RecordRun(trace.RunRecord{
			Run:       run,
			Outcome:   outbreak.FinalSize,
			Steps:     outbreak.Generations,
			Recorded:  recorded,
			Truncated: truncated,
		})
	}
	result.Elapsed = time.Since(start)

	if err := hist.Validate(cfg.Iterations); err != nil {
		return result, fmt.Errorf("reed-frost (%d runs truncated): %w", result.Truncated, err)
	}
	logrus.Infof("Reed-Frost: finished in %v", result.Elapsed)
	return result, nil
}

// SimulateMarkovAge runs cfg.Iterations Markov chains to absorption and bins
// the absorption timesteps into cfg.Bins bins.
//
// Absorption times at or beyond cfg.Bins are dropped. A histogram that does
// not account for every run is reported in AgeResult.Checksum and logged,
// but does not fail the experiment.
func SimulateMarkovAge(cfg MarkovConfig, src exact.UniformSource) (*AgeResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	chain, err := NewMarkovChain(cfg)
	if err != nil {
		return nil, err
	}
	hist, err := NewHistogram(cfg.Bins)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Markov %s age: %d runs, initial %+v, beta=%v gamma=%v", cfg.Model, cfg.Iterations, cfg.Initial(), cfg.InfectionRate, cfg.RecoveryRate)
	start := time.Now()
	result := &AgeResult{Histogram: hist, Iterations: cfg.Iterations, Trace: newTrace(cfg.Trace)}

	for run := 0; run < cfg.Iterations; run++ {
		age, err := chain.Age(src, cfg.Initial())
		truncated := errors.Is(err, ErrStepLimit)
		if err != nil && !truncated {
			return result, fmt.Errorf("run %d: %w", run, err)
		}
		recorded := false
		if truncated {
			result.Truncated++
		} else {
			recorded = hist.Record(age)
		}
		logrus.Debugf("run %d: absorbed at %d (recorded=%t truncated=%t)", run, age, recorded, truncated)
		result.Trace.RecordRun(trace.RunRecord{
			Run:       run,
			Outcome:   age,
			Steps:     age,
			Recorded:  recorded,
			Truncated: truncated,
		})
	}
	result.Elapsed = time.Since(start)

	if err := hist.Validate(cfg.Iterations); err != nil {
		result.Checksum = err
		logrus.Warnf("Markov %s age: %v; %d runs truncated, extinction times >= %d not binned", cfg.Model, err, result.Truncated, cfg.Bins)
	}
	logrus.Infof("Markov %s age: finished in %v", cfg.Model, result.Elapsed)
	return result, nil
}

// SimulateMarkovTrajectory runs cfg.Iterations Markov chains for up to
// cfg.Horizon events each and averages S, I and R per timestep.
func SimulateMarkovTrajectory(cfg MarkovConfig, src exact.UniformSource) (*TrajectoryResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Horizon <= 0 {
		return nil, fmt.Errorf("trajectory needs a positive horizon, got %d: %w", cfg.Horizon, ErrInvalidConfig)
	}
	chain, err := NewMarkovChain(cfg)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Markov %s trajectory: %d runs, horizon %d", cfg.Model, cfg.Iterations, cfg.Horizon)
	start := time.Now()
	acc := NewTrajectoryAccumulator(cfg.Horizon)
	result := &TrajectoryResult{Iterations: cfg.Iterations, Trace: newTrace(cfg.Trace)}

	for run := 0; run < cfg.Iterations; run++ {
		frames, err := chain.Trajectory(src, cfg.Initial(), cfg.Horizon)
		if err != nil {
			return result, fmt.Errorf("run %d: %w", run, err)
		}
		acc.Add(frames)
		final := frames[len(frames)-1]
		if final.Absorbed() {
			result.Absorbed++
		}
		result.Trace.RecordRun(trace.RunRecord{
			Run:       run,
			Outcome:   final.Infectives,
			Steps:     len(frames) - 1,
			Recorded:  true,
			Truncated: !final.Absorbed(),
		})
	}
	result.Mean = acc.Mean()
	result.Elapsed = time.Since(start)
	logrus.Infof("Markov %s trajectory: %d/%d runs absorbed, finished in %v", cfg.Model, result.Absorbed, cfg.Iterations, result.Elapsed)
	return result, nil
}
