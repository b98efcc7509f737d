package exact

import (
	"fmt"
)

// DefaultUniformSteps is the resolution of uniform draws: a draw lands on
// {0, 1/10000, ..., 1}.
const DefaultUniformSteps = 10000

// UniformSource supplies bounded pseudorandom integers.
// *math/rand.Rand satisfies it; tests substitute fixed sequences.
type UniformSource interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// UniformGrid draws uniform values on the grid {0, 1/steps, ..., 1}.
//
// Sampling resolution is tied to the step count rather than to float64
// density, so comparisons against an exact table are well defined. Grid
// points are computed once and cached. Not safe for concurrent use.
type UniformGrid struct {
	ctx    Context
	steps  int
	points map[int]Prob
}

// NewUniformGrid returns a grid with the given number of steps.
func (c Context) NewUniformGrid(steps int) (*UniformGrid, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("uniform grid needs a positive step count, got %d: %w", steps, ErrDomain)
	}
	return &UniformGrid{ctx: c, steps: steps, points: make(map[int]Prob)}, nil
}

// Steps returns the number of grid steps.
func (g *UniformGrid) Steps() int { return g.steps }

// Point returns i/steps. i must lie in [0, steps].
func (g *UniformGrid) Point(i int) Prob {
	if p, ok := g.points[i]; ok {
		return p
	}
	// steps > 0 and i >= 0, so Ratio cannot fail.
	p, _ := g.ctx.Ratio(i, g.steps)
	g.points[i] = p
	return p
}

// Draw returns a uniformly chosen grid point.
func (g *UniformGrid) Draw(src UniformSource) Prob {
	return g.Point(src.Intn(g.steps + 1))
}

// DrawUniform draws a single value on {0, 1/steps, ..., 1} without caching.
func (c Context) DrawUniform(src UniformSource, steps int) (Prob, error) {
	if steps <= 0 {
		return Prob{}, fmt.Errorf("uniform draw needs a positive step count, got %d: %w", steps, ErrDomain)
	}
	return c.Ratio(src.Intn(steps+1), steps)
}

// SampleFromCDF inverts a cumulative table: it returns the smallest k with
// draw < table[k+1], i.e. table[k] <= draw < table[k+1].
//
// A draw at or above the top entry (draw == 1) yields the last outcome with
// positive mass, the smallest k with table[k+1] >= top. A draw beyond the top
// by more than the tolerance means the table was too short: the outcome n is
// returned with an error wrapping ErrPrecisionBudget.
func SampleFromCDF(table CDF, draw Prob) (int, error) {
	if table.Len() < 2 {
		return 0, fmt.Errorf("cdf has %d entries, need at least 2: %w", table.Len(), ErrDomain)
	}
	n := table.Len() - 2
	for k := 0; k <= n; k++ {
		if draw.LessThan(table.entries[k+1]) {
			return k, nil
		}
	}
	top := table.Top()
	if excess := draw.Sub(top); excess.GreaterThan(table.tolerance) {
		return n, fmt.Errorf("draw %s exceeds cdf top %s by %s: %w", draw, top, excess, ErrPrecisionBudget)
	}
	for k := 0; k < n; k++ {
		if !table.entries[k+1].LessThan(top) {
			return k, nil
		}
	}
	return n, nil
}
