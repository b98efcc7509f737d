package report

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim"
)

// minExpectedCount is the smallest expected cell count the chi-square
// approximation tolerates; sparser cells are pooled with their neighbours.
const minExpectedCount = 5.0

// Summary describes the distribution of binned outcomes.
type Summary struct {
	Count  int // outcomes binned
	Mean   float64
	StdDev float64
	Median float64
	Mode   float64
	Min    int // smallest non-empty bin
	Max    int // largest non-empty bin
}

// Summarize computes count-weighted statistics over the non-empty bins of h.
// An empty histogram yields the zero Summary.
func Summarize(h *sim.Histogram) Summary {
	var outcomes, weights []float64
	for i := 0; i < h.Len(); i++ {
		if c := h.Count(i); c > 0 {
			outcomes = append(outcomes, float64(i))
			weights = append(weights, float64(c))
		}
	}
	if len(outcomes) == 0 {
		return Summary{}
	}

	s := Summary{
		Count: h.Sum(),
		Mean:  stat.Mean(outcomes, weights),
		// outcomes are bin indices, already sorted
		Median: stat.Quantile(0.5, stat.Empirical, outcomes, weights),
		Min:    int(outcomes[0]),
		Max:    int(outcomes[len(outcomes)-1]),
	}
	s.Mode, _ = stat.Mode(outcomes, weights)
	if s.Count > 1 {
		s.StdDev = stat.StdDev(outcomes, weights)
	}
	return s
}

// Fit is the result of a chi-square goodness-of-fit test.
type Fit struct {
	Statistic        float64
	DegreesOfFreedom int
	PValue           float64
}

// GoodnessOfFit tests observed counts against expected outcome probabilities
// with Pearson's chi-square. Adjacent cells are pooled until each expects at
// least five outcomes.
func GoodnessOfFit(observed []int, expected []float64) (Fit, error) {
	if len(observed) != len(expected) {
		return Fit{}, fmt.Errorf("%d observed cells against %d expected: %w", len(observed), len(expected), sim.ErrInvalidConfig)
	}
	total := 0
	for _, o := range observed {
		total += o
	}
	if total == 0 {
		return Fit{}, fmt.Errorf("no observations: %w", sim.ErrInvalidConfig)
	}

	var obs, exp []float64
	accObs, accExp := 0.0, 0.0
	for i := range observed {
		accObs += float64(observed[i])
		accExp += expected[i] * float64(total)
		if accExp >= minExpectedCount {
			obs = append(obs, accObs)
			exp = append(exp, accExp)
			accObs, accExp = 0, 0
		}
	}
	if len(exp) == 0 {
		return Fit{}, fmt.Errorf("too few observations to expect %v per cell: %w", minExpectedCount, sim.ErrInvalidConfig)
	}
	// fold the remainder into the last pooled cell
	obs[len(obs)-1] += accObs
	exp[len(exp)-1] += accExp

	df := len(obs) - 1
	fit := Fit{Statistic: stat.ChiSquare(obs, exp), DegreesOfFreedom: df, PValue: 1}
	if df > 0 && !math.IsNaN(fit.Statistic) {
		fit.PValue = distuv.ChiSquared{K: float64(df)}.Survival(fit.Statistic)
	}
	return fit, nil
}
