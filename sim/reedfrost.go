package sim

import (
	"fmt"

	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim/exact"
)

// ReedFrostModel steps a chain-binomial outbreak one generation at a time.
//
// In each generation every susceptible independently escapes all z current
// infectives with probability (1-q)^z, so the number of new infectives is
// binomial(n, 1-(1-q)^z). The binomial table is rebuilt from exact masses
// for every generation.
type ReedFrostModel struct {
	ctx            exact.Context
	grid           *exact.UniformGrid
	escape         exact.Prob // 1 - q
	maxGenerations int
}

// Outbreak is the result of one chain-binomial run.
type Outbreak struct {
	NewInfections int // initial susceptibles minus final susceptibles
	FinalSize     int // initial infectives plus NewInfections
	Generations   int // generations sampled
}

// NewReedFrostModel builds a stepper from the transmission probability and
// sampling fields of cfg.
func NewReedFrostModel(cfg ReedFrostConfig) (*ReedFrostModel, error) {
	if err := cfg.Sampling.Validate(); err != nil {
		return nil, err
	}
	if err := validateProbability("indiv_probability", cfg.IndivProbability); err != nil {
		return nil, err
	}
	ctx, grid, err := cfg.Sampling.grid()
	if err != nil {
		return nil, err
	}
	q, err := exact.NewProbFromFloat(cfg.IndivProbability)
	if err != nil {
		return nil, fmt.Errorf("indiv_probability: %v: %w", err, ErrInvalidConfig)
	}
	return &ReedFrostModel{
		ctx:            ctx,
		grid:           grid,
		escape:         ctx.Complement(q),
		maxGenerations: cfg.MaxGenerations,
	}, nil
}

// InfectionProbability returns 1-(1-q)^z, the chance that a susceptible is
// infected by at least one of z infectives.
func (m *ReedFrostModel) InfectionProbability(z int) (exact.Prob, error) {
	escapeAll, err := m.ctx.Pow(m.escape, z)
	if err != nil {
		return exact.Prob{}, err
	}
	return m.ctx.Complement(escapeAll), nil
}

// Generation samples the number of new infectives among n susceptibles
// exposed to z infectives.
func (m *ReedFrostModel) Generation(src exact.UniformSource, n, z int) (int, error) {
	if n < 0 || z < 0 {
		return 0, fmt.Errorf("generation with %d susceptibles and %d infectives: %w", n, z, ErrInvalidConfig)
	}
	p, err := m.InfectionProbability(z)
	if err != nil {
		return 0, err
	}
	table, err := m.ctx.BuildCDF(n, p)
	if err != nil {
		return 0, fmt.Errorf("generation table binomial(%d, %s): %w", n, p, err)
	}
	return exact.SampleFromCDF(table, m.grid.Draw(src))
}

// Outbreak runs generations from (s0, i0) until a generation infects nobody
// or no susceptibles remain. With MaxGenerations set, a run still active after
// MaxGenerations generations returns the partial outbreak and an error
// wrapping ErrStepLimit.
func (m *ReedFrostModel) Outbreak(src exact.UniformSource, s0, i0 int) (Outbreak, error) {
	if s0 < 0 || i0 < 0 {
		return Outbreak{}, fmt.Errorf("outbreak from %d susceptibles and %d infectives: %w", s0, i0, ErrInvalidConfig)
	}
	n, z := s0, i0
	generations := 0
	result := func() Outbreak {
		return Outbreak{NewInfections: s0 - n, FinalSize: i0 + s0 - n, Generations: generations}
	}
	for z > 0 && n > 0 {
		if m.maxGenerations > 0 && generations >= m.maxGenerations {
			return result(), fmt.Errorf("outbreak still active after %d generations: %w", generations, ErrStepLimit)
		}
		next, err := m.Generation(src, n, z)
		if err != nil {
			return result(), err
		}
		n -= next
		z = next
		generations++
	}
	return result(), nil
}
