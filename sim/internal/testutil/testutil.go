// Package testutil provides shared test infrastructure for the epidemic engine.
// It consolidates fake random sources and statistical assertion helpers used
// across the sim/, sim/exact/ and sim/report/ test packages.
package testutil

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// SequenceSource is a UniformSource that replays a fixed sequence of values,
// wrapping around when exhausted. Each value is reduced modulo n.
type SequenceSource struct {
	Values []int
	next   int
	Calls  int
}

// Intn returns the next value of the sequence modulo n.
func (s *SequenceSource) Intn(n int) int {
	s.Calls++
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v % n
}

// ConstantSource always returns the same value, clamped into [0, n).
type ConstantSource int

// Intn returns the constant, clamped into [0, n).
func (c ConstantSource) Intn(n int) int {
	v := int(c)
	if v >= n {
		return n - 1
	}
	if v < 0 {
		return 0
	}
	return v
}

// ChiSquarePValue returns the upper-tail p-value of Pearson's chi-square
// statistic for observed counts against expected probabilities. Cells whose
// expected count is below 5 are pooled into their neighbour before testing.
func ChiSquarePValue(observed []int, expected []float64) float64 {
	total := 0
	for _, o := range observed {
		total += o
	}
	var obs, exp []float64
	accObs, accExp := 0.0, 0.0
	for i := range observed {
		accObs += float64(observed[i])
		accExp += expected[i] * float64(total)
		if accExp >= 5 {
			obs = append(obs, accObs)
			exp = append(exp, accExp)
			accObs, accExp = 0, 0
		}
	}
	if len(obs) > 0 {
		obs[len(obs)-1] += accObs
		exp[len(exp)-1] += accExp
	}
	if len(obs) < 2 {
		return 1
	}
	chi := stat.ChiSquare(obs, exp)
	return distuv.ChiSquared{K: float64(len(obs) - 1)}.Survival(chi)
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
