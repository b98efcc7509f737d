package sim

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim/exact"
	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim/internal/testutil"
)

func newTestChain(t *testing.T, model Model, beta, gamma float64, maxSteps int) *MarkovChain {
	t.Helper()
	cfg := NewMarkovConfig(SamplingConfig{}, model, Frame{}, beta, gamma, 1)
	cfg.MaxSteps = maxSteps
	chain, err := NewMarkovChain(cfg)
	require.NoError(t, err)
	return chain
}

func TestMarkovChain_InfectionProbability_RatioNormalised(t *testing.T) {
	chain := newTestChain(t, SIR, 0.01, 0.1, 0)

	p, err := chain.InfectionProbability(Frame{Susceptibles: 49, Infectives: 1})
	require.NoError(t, err)

	// 0.49 / (0.49 + 0.1)
	assert.InDelta(t, 0.49/0.59, p.Float64(), 1e-15)
	assert.True(t, p.InUnitInterval())

	// cached: second lookup returns the identical value
	again, _ := chain.InfectionProbability(Frame{Susceptibles: 49, Infectives: 1, Removed: 7})
	assert.True(t, p.Equal(again))
}

func TestMarkovChain_InfectionProbability_NoSusceptibles(t *testing.T) {
	chain := newTestChain(t, SIR, 0.5, 0.1, 0)
	p, err := chain.InfectionProbability(Frame{Infectives: 3})
	require.NoError(t, err)
	assert.True(t, p.IsZero())

	_, err = chain.InfectionProbability(Frame{Susceptibles: 3})
	assert.True(t, errors.Is(err, exact.ErrDomain))
}

func TestMarkovChain_Step_DeterministicDraws(t *testing.T) {
	// GIVEN S=2, I=1 and a source that always draws 0
	chain := newTestChain(t, SIR, 0.01, 0.1, 0)
	src := testutil.ConstantSource(0)
	f := Frame{Susceptibles: 2, Infectives: 1}

	// WHEN stepping until absorption
	age, err := chain.Age(src, f)

	// THEN both susceptibles are infected first (draw 0 < p), then all three are removed
	require.NoError(t, err)
	assert.Equal(t, 5, age)

	frames, err := chain.Trajectory(src, f, 100)
	require.NoError(t, err)
	assert.Equal(t, []Frame{
		{2, 1, 0},
		{1, 2, 0},
		{0, 3, 0},
		{0, 2, 1},
		{0, 1, 2},
		{0, 0, 3},
	}, frames)
}

func TestMarkovChain_Step_DrawAtOneAlwaysRemoves(t *testing.T) {
	// p < 1 whenever an infective exists, so the top draw is a removal
	chain := newTestChain(t, SIS, 10, 0.1, 0)
	src := testutil.ConstantSource(exact.DefaultUniformSteps)

	next, err := chain.Step(src, Frame{Susceptibles: 5, Infectives: 1})
	require.NoError(t, err)
	assert.Equal(t, Frame{Susceptibles: 6}, next)
}

func TestMarkovChain_Step_AbsorbedIsNoOp(t *testing.T) {
	chain := newTestChain(t, SIR, 0.01, 0.1, 0)
	src := &testutil.SequenceSource{Values: []int{0}}

	f := Frame{Susceptibles: 4, Removed: 2}
	next, err := chain.Step(src, f)
	require.NoError(t, err)
	assert.Equal(t, f, next)
	assert.Equal(t, 0, src.Calls, "absorbed step must not consume a draw")
}

func TestMarkovChain_SIR_PreservesTotalAndAbsorbs(t *testing.T) {
	// GIVEN the SIR age configuration
	chain := newTestChain(t, SIR, 0.01, 0.1, 0)
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		f := Frame{Susceptibles: 49, Infectives: 1}
		n := f.Total()
		steps := 0
		for !f.Absorbed() {
			next, err := chain.Step(rng, f)
			require.NoError(t, err)
			// THEN every step moves exactly one individual and keeps N
			require.Equal(t, n, next.Total(), "run %d step %d", run, steps)
			require.GreaterOrEqual(t, next.Susceptibles, 0)
			require.LessOrEqual(t, next.Removed-f.Removed, 1)
			f = next
			steps++
		}
		assert.Equal(t, 0, f.Infectives)
	}
}

func TestMarkovChain_SIS_AbsorbsWithEverySusceptible(t *testing.T) {
	// GIVEN an SIS chain where removal dominates
	chain := newTestChain(t, SIS, 0.001, 0.1, 0)
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 50; run++ {
		f := Frame{Susceptibles: 20, Infectives: 5}
		for !f.Absorbed() {
			next, err := chain.Step(rng, f)
			require.NoError(t, err)
			require.Equal(t, 25, next.Total())
			require.Equal(t, 0, next.Removed)
			f = next
		}
		// THEN absorption returns everybody to the susceptible pool
		assert.Equal(t, Frame{Susceptibles: 25}, f)
	}
}

func TestMarkovChain_Age_StepLimit(t *testing.T) {
	chain := newTestChain(t, SIR, 0.01, 0.1, 2)
	age, err := chain.Age(testutil.ConstantSource(0), Frame{Susceptibles: 2, Infectives: 1})
	assert.Equal(t, 2, age)
	assert.True(t, errors.Is(err, ErrStepLimit), "got %v", err)
}

func TestMarkovChain_Age_ZeroInfectionRate(t *testing.T) {
	// beta = 0: every event is a removal, absorption after exactly I events
	chain := newTestChain(t, SIR, 0, 0.1, 0)
	age, err := chain.Age(rand.New(rand.NewSource(1)), Frame{Susceptibles: 30, Infectives: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, age)
}

func TestMarkovChain_Trajectory_StopsAtHorizon(t *testing.T) {
	chain := newTestChain(t, SIS, 0.5, 0.1, 0)
	frames, err := chain.Trajectory(testutil.ConstantSource(0), Frame{Susceptibles: 10, Infectives: 1}, 3)
	require.NoError(t, err)
	assert.Len(t, frames, 4)
	assert.Equal(t, Frame{Susceptibles: 7, Infectives: 4}, frames[3])
}

func TestNewMarkovChain_RejectsZeroRecoveryRate(t *testing.T) {
	cfg := NewMarkovConfig(SamplingConfig{}, SIR, Frame{}, 0.01, 0, 1)
	_, err := NewMarkovChain(cfg)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}
