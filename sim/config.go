package sim

import (
	"fmt"
	"math"

	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim/exact"
	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim/trace"
)

// SamplingConfig groups exact-arithmetic and uniform-draw parameters.
type SamplingConfig struct {
	Precision    int // significant digits of every probability (0 = exact.DefaultPrecision)
	UniformSteps int // uniform draws land on {0, 1/steps, ..., 1} (0 = exact.DefaultUniformSteps)
}

// ReedFrostConfig groups chain-binomial experiment parameters.
type ReedFrostConfig struct {
	Sampling            SamplingConfig
	InitialSusceptibles int
	InitialInfectives   int
	IndivProbability    float64          // per-contact transmission probability
	Iterations          int              // number of simulated outbreaks
	MaxGenerations      int              // per-run generation cap (0 = unbounded)
	Trace               trace.TraceLevel // per-run recording ("" = none)
}

// MarkovConfig groups SIR/SIS Markov chain experiment parameters.
type MarkovConfig struct {
	Sampling            SamplingConfig
	Model               Model
	InitialSusceptibles int
	InitialInfectives   int
	InitialRemoved      int     // must be 0 under SIS
	InfectionRate       float64 // beta; infection pressure is beta*S
	RecoveryRate        float64 // gamma; removal pressure is gamma*I, must be > 0
	Iterations          int
	Bins                int              // age histogram size; extinction times >= Bins are dropped
	Horizon             int              // trajectory length in timesteps
	MaxSteps            int              // per-run event cap (0 = unbounded)
	Trace               trace.TraceLevel // per-run recording ("" = none)
}

// NewSamplingConfig creates a SamplingConfig. Zero values select the package defaults at use.
func NewSamplingConfig(precision, uniformSteps int) SamplingConfig {
	return SamplingConfig{Precision: precision, UniformSteps: uniformSteps}
}

// NewReedFrostConfig creates a ReedFrostConfig with all fields explicitly specified.
func NewReedFrostConfig(sampling SamplingConfig, susceptibles, infectives int, indivProbability float64, iterations, maxGenerations int) ReedFrostConfig {
	return ReedFrostConfig{
		Sampling:            sampling,
		InitialSusceptibles: susceptibles,
		InitialInfectives:   infectives,
		IndivProbability:    indivProbability,
		Iterations:          iterations,
		MaxGenerations:      maxGenerations,
	}
}

// NewMarkovConfig creates a MarkovConfig with all population and rate fields explicitly specified.
func NewMarkovConfig(sampling SamplingConfig, model Model, initial Frame, infectionRate, recoveryRate float64, iterations int) MarkovConfig {
	return MarkovConfig{
		Sampling:            sampling,
		Model:               model,
		InitialSusceptibles: initial.Susceptibles,
		InitialInfectives:   initial.Infectives,
		InitialRemoved:      initial.Removed,
		InfectionRate:       infectionRate,
		RecoveryRate:        recoveryRate,
		Iterations:          iterations,
	}
}

// Context returns the exact arithmetic context for the configured precision.
func (c SamplingConfig) Context() (exact.Context, error) {
	precision := c.Precision
	if precision == 0 {
		precision = exact.DefaultPrecision
	}
	ctx, err := exact.NewContext(precision)
	if err != nil {
		return exact.Context{}, fmt.Errorf("precision: %v: %w", err, ErrInvalidConfig)
	}
	return ctx, nil
}

// Steps returns the uniform grid resolution.
func (c SamplingConfig) Steps() int {
	if c.UniformSteps == 0 {
		return exact.DefaultUniformSteps
	}
	return c.UniformSteps
}

// Validate checks the sampling parameters.
func (c SamplingConfig) Validate() error {
	if _, err := c.Context(); err != nil {
		return err
	}
	if c.UniformSteps < 0 {
		return fmt.Errorf("uniform_steps must be non-negative, got %d: %w", c.UniformSteps, ErrInvalidConfig)
	}
	return nil
}

// grid builds the exact context and uniform grid shared by a stepper.
func (c SamplingConfig) grid() (exact.Context, *exact.UniformGrid, error) {
	ctx, err := c.Context()
	if err != nil {
		return exact.Context{}, nil, err
	}
	grid, err := ctx.NewUniformGrid(c.Steps())
	if err != nil {
		return exact.Context{}, nil, fmt.Errorf("uniform grid: %v: %w", err, ErrInvalidConfig)
	}
	return ctx, grid, nil
}

// NumBins returns the histogram size that holds every possible final size, N+1.
func (c ReedFrostConfig) NumBins() int {
	return c.InitialSusceptibles + c.InitialInfectives + 1
}

// Validate checks that all fields are within their domains.
func (c ReedFrostConfig) Validate() error {
	if err := c.Sampling.Validate(); err != nil {
		return err
	}
	if err := validateCount("initial_susceptibles", c.InitialSusceptibles); err != nil {
		return err
	}
	if err := validateCount("initial_infectives", c.InitialInfectives); err != nil {
		return err
	}
	if err := validateProbability("indiv_probability", c.IndivProbability); err != nil {
		return err
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d: %w", c.Iterations, ErrInvalidConfig)
	}
	if c.MaxGenerations < 0 {
		return fmt.Errorf("max_generations must be non-negative, got %d: %w", c.MaxGenerations, ErrInvalidConfig)
	}
	return validateTraceLevel(c.Trace)
}

// Initial returns the starting population frame.
func (c MarkovConfig) Initial() Frame {
	return Frame{
		Susceptibles: c.InitialSusceptibles,
		Infectives:   c.InitialInfectives,
		Removed:      c.InitialRemoved,
	}
}

// validateChain checks the fields a MarkovChain needs, independent of the driver.
func (c MarkovConfig) validateChain() error {
	if err := c.Sampling.Validate(); err != nil {
		return err
	}
	if c.Model != SIR && c.Model != SIS {
		return fmt.Errorf("unknown model %v: %w", c.Model, ErrInvalidConfig)
	}
	if err := validateRate("infection_rate", c.InfectionRate, false); err != nil {
		return err
	}
	if err := validateRate("recovery_rate", c.RecoveryRate, true); err != nil {
		return err
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be non-negative, got %d: %w", c.MaxSteps, ErrInvalidConfig)
	}
	return nil
}

// Validate checks that all population, rate and run fields are within their domains.
// Bins and Horizon are checked by the driver that uses them.
func (c MarkovConfig) Validate() error {
	if err := c.validateChain(); err != nil {
		return err
	}
	if err := validateCount("initial_susceptibles", c.InitialSusceptibles); err != nil {
		return err
	}
	if err := validateCount("initial_infectives", c.InitialInfectives); err != nil {
		return err
	}
	if err := validateCount("initial_removed", c.InitialRemoved); err != nil {
		return err
	}
	if c.Model == SIS && c.InitialRemoved != 0 {
		return fmt.Errorf("initial_removed must be 0 under sis, got %d: %w", c.InitialRemoved, ErrInvalidConfig)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d: %w", c.Iterations, ErrInvalidConfig)
	}
	if c.Bins < 0 || c.Horizon < 0 {
		return fmt.Errorf("bins and horizon must be non-negative, got %d and %d: %w", c.Bins, c.Horizon, ErrInvalidConfig)
	}
	return validateTraceLevel(c.Trace)
}

func validateCount(name string, v int) error {
	if v < 0 {
		return fmt.Errorf("%s must be non-negative, got %d: %w", name, v, ErrInvalidConfig)
	}
	return nil
}

func validateProbability(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be a finite number, got %f: %w", name, v, ErrInvalidConfig)
	}
	if v < 0 || v > 1 {
		return fmt.Errorf("%s must be in [0, 1], got %f: %w", name, v, ErrInvalidConfig)
	}
	return nil
}

func validateRate(name string, v float64, positive bool) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be a finite number, got %f: %w", name, v, ErrInvalidConfig)
	}
	if v < 0 || (positive && v == 0) {
		qualifier := "non-negative"
		if positive {
			qualifier = "positive"
		}
		return fmt.Errorf("%s must be %s, got %f: %w", name, qualifier, v, ErrInvalidConfig)
	}
	return nil
}

func validateTraceLevel(level trace.TraceLevel) error {
	if !trace.IsValidTraceLevel(string(level)) {
		return fmt.Errorf("unknown trace level %q; valid: none, runs: %w", level, ErrInvalidConfig)
	}
	return nil
}
