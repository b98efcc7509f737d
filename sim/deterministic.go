package sim

import (
	"fmt"
)

// DeterministicCurve integrates the mean-field equations of cfg's model with
// forward Euler over [0, Horizon] in `points` steps:
//
//	SIR: dS = -beta*I*S, dI = beta*I*S - gamma*I, dR = gamma*I
//	SIS: dS = -beta*I*S + gamma*I, dI = beta*I*S - gamma*I
//
// It is a float64 reference for plots, not part of the sampling path.
func DeterministicCurve(cfg MarkovConfig, points int) (PopulationSeries, error) {
	if err := cfg.validateChain(); err != nil {
		return PopulationSeries{}, err
	}
	if points <= 0 {
		return PopulationSeries{}, fmt.Errorf("curve needs a positive point count, got %d: %w", points, ErrInvalidConfig)
	}
	if cfg.Horizon <= 0 {
		return PopulationSeries{}, fmt.Errorf("curve needs a positive horizon, got %d: %w", cfg.Horizon, ErrInvalidConfig)
	}

	dt := float64(cfg.Horizon) / float64(points)
	beta, gamma := cfg.InfectionRate, cfg.RecoveryRate
	s := float64(cfg.InitialSusceptibles)
	i := float64(cfg.InitialInfectives)
	r := float64(cfg.InitialRemoved)

	out := newPopulationSeries(points + 1)
	for step := 0; step <= points; step++ {
		out.Time[step] = float64(step) * dt
		out.Susceptibles[step] = s
		out.Infectives[step] = i
		out.Removed[step] = r

		infections := beta * i * s * dt
		removals := gamma * i * dt
		s -= infections
		i += infections - removals
		if cfg.Model == SIS {
			s += removals
		} else {
			r += removals
		}
	}
	return out, nil
}
