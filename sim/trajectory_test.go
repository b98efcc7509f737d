package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrajectoryAccumulator_PadsAbsorbedRuns(t *testing.T) {
	// GIVEN one run absorbed at t=1 and one still active at the horizon
	acc := NewTrajectoryAccumulator(2)
	acc.Add([]Frame{{1, 1, 0}, {1, 0, 1}})
	acc.Add([]Frame{{1, 1, 0}, {0, 2, 0}, {0, 1, 1}})

	// WHEN averaged
	mean := acc.Mean()

	// THEN the absorbed run contributes its final frame at t=2
	assert.Equal(t, 2, acc.Runs())
	assert.Equal(t, []float64{0, 1, 2}, mean.Time)
	assert.Equal(t, []float64{1, 0.5, 0.5}, mean.Susceptibles)
	assert.Equal(t, []float64{1, 1, 0.5}, mean.Infectives)
	assert.Equal(t, []float64{0, 0.5, 1}, mean.Removed)
}

func TestTrajectoryAccumulator_IgnoresEmptyAndOverlong(t *testing.T) {
	acc := NewTrajectoryAccumulator(1)
	acc.Add(nil)
	acc.Add([]Frame{{3, 0, 0}, {2, 1, 0}, {1, 2, 0}})

	mean := acc.Mean()
	assert.Equal(t, 1, acc.Runs())
	assert.Equal(t, []float64{3, 2}, mean.Susceptibles)
}

func TestTrajectoryAccumulator_NoRuns(t *testing.T) {
	mean := NewTrajectoryAccumulator(3).Mean()
	assert.Equal(t, 4, mean.Len())
	assert.Equal(t, []float64{0, 0, 0, 0}, mean.Infectives)
}
