package sim

import (
	"fmt"

	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim/exact"
)

// MarkovChain steps an SIR or SIS population one event at a time.
//
// Each step is a competing risk between infection and removal: with
// a = beta*S and b = gamma*I, the next event is an infection with
// probability a/(a+b). Probabilities are cached per (S, I) pair, so a chain
// is not safe for concurrent use; give each goroutine its own.
type MarkovChain struct {
	model    Model
	ctx      exact.Context
	grid     *exact.UniformGrid
	beta     exact.Prob
	gamma    exact.Prob
	maxSteps int
	pInfect  map[[2]int]exact.Prob
}

// NewMarkovChain builds a chain from the model, rates and sampling fields of cfg.
// Population fields are ignored; frames are passed to each call.
func NewMarkovChain(cfg MarkovConfig) (*MarkovChain, error) {
	if err := cfg.validateChain(); err != nil {
		return nil, err
	}
	ctx, grid, err := cfg.Sampling.grid()
	if err != nil {
		return nil, err
	}
	beta, err := exact.NewProbFromFloat(cfg.InfectionRate)
	if err != nil {
		return nil, fmt.Errorf("infection_rate: %v: %w", err, ErrInvalidConfig)
	}
	gamma, err := exact.NewProbFromFloat(cfg.RecoveryRate)
	if err != nil {
		return nil, fmt.Errorf("recovery_rate: %v: %w", err, ErrInvalidConfig)
	}
	return &MarkovChain{
		model:    cfg.Model,
		ctx:      ctx,
		grid:     grid,
		beta:     beta,
		gamma:    gamma,
		maxSteps: cfg.MaxSteps,
		pInfect:  make(map[[2]int]exact.Prob),
	}, nil
}

// Model returns the chain's removal semantics.
func (m *MarkovChain) Model() Model { return m.model }

// InfectionProbability returns the probability that the next event from f is
// an infection. An absorbed frame has no next event and is an error.
func (m *MarkovChain) InfectionProbability(f Frame) (exact.Prob, error) {
	if f.Absorbed() {
		return exact.Prob{}, fmt.Errorf("frame %+v has no infectives: %w", f, exact.ErrDomain)
	}
	key := [2]int{f.Susceptibles, f.Infectives}
	if p, ok := m.pInfect[key]; ok {
		return p, nil
	}
	a := m.beta.MulInt(f.Susceptibles)
	b := m.gamma.MulInt(f.Infectives)
	p, err := m.ctx.Quo(a, a.Add(b))
	if err != nil {
		return exact.Prob{}, err
	}
	m.pInfect[key] = p
	return p, nil
}

// Step applies one event to f and returns the new frame.
// An absorbed frame is returned unchanged without consuming a draw.
func (m *MarkovChain) Step(src exact.UniformSource, f Frame) (Frame, error) {
	if f.Absorbed() {
		return f, nil
	}
	if f.Susceptibles < 0 || f.Infectives < 0 || f.Removed < 0 {
		return f, fmt.Errorf("frame %+v has a negative compartment: %w", f, ErrInvalidConfig)
	}
	p, err := m.InfectionProbability(f)
	if err != nil {
		return f, err
	}
	if m.grid.Draw(src).LessThan(p) {
		f.Susceptibles--
		f.Infectives++
		return f, nil
	}
	f.Infectives--
	switch m.model {
	case SIS:
		f.Susceptibles++
	default:
		f.Removed++
	}
	return f, nil
}

// Age runs f to absorption and returns the absorption timestep, one timestep
// per event. With MaxSteps set, a run still active after MaxSteps events
// returns MaxSteps and an error wrapping ErrStepLimit.
func (m *MarkovChain) Age(src exact.UniformSource, f Frame) (int, error) {
	t := 0
	for !f.Absorbed() {
		if m.maxSteps > 0 && t >= m.maxSteps {
			return t, fmt.Errorf("still %d infectives after %d events: %w", f.Infectives, t, ErrStepLimit)
		}
		next, err := m.Step(src, f)
		if err != nil {
			return t, err
		}
		f = next
		t++
	}
	return t, nil
}

// Trajectory returns the frames at timesteps 0..horizon, stopping early at
// absorption. The first frame is f itself.
func (m *MarkovChain) Trajectory(src exact.UniformSource, f Frame, horizon int) ([]Frame, error) {
	if horizon < 0 {
		return nil, fmt.Errorf("negative horizon %d: %w", horizon, ErrInvalidConfig)
	}
	frames := make([]Frame, 0, horizon+1)
	frames = append(frames, f)
	for t := 0; t < horizon && !f.Absorbed(); t++ {
		next, err := m.Step(src, f)
		if err != nil {
			return frames, err
		}
		f = next
		frames = append(frames, f)
	}
	return frames, nil
}
