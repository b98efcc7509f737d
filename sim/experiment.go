package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim/trace"
)

// ExperimentSpec is the YAML form of an experiment.
// Sections left out of the file are nil; a spec needs at least one of them.
type ExperimentSpec struct {
	Seed         int64          `yaml:"seed"`
	Precision    int            `yaml:"precision,omitempty"`
	UniformSteps int            `yaml:"uniform_steps,omitempty"`
	Iterations   int            `yaml:"iterations"`
	Trace        string         `yaml:"trace,omitempty"`
	ReedFrost    *ReedFrostSpec `yaml:"reed_frost,omitempty"`
	Markov       *MarkovSpec    `yaml:"markov,omitempty"`
}

// ReedFrostSpec configures the chain-binomial section.
type ReedFrostSpec struct {
	InitialSusceptibles int     `yaml:"initial_susceptibles"`
	InitialInfectives   int     `yaml:"initial_infectives"`
	IndivProbability    float64 `yaml:"indiv_probability"`
	MaxGenerations      int     `yaml:"max_generations,omitempty"`
}

// MarkovSpec configures the SIR/SIS Markov chain section.
type MarkovSpec struct {
	Model               string  `yaml:"model"`
	InitialSusceptibles int     `yaml:"initial_susceptibles"`
	InitialInfectives   int     `yaml:"initial_infectives"`
	InitialRemoved      int     `yaml:"initial_removed,omitempty"`
	InfectionRate       float64 `yaml:"infection_rate"`
	RecoveryRate        float64 `yaml:"recovery_rate"`
	Bins                int     `yaml:"bins,omitempty"`
	Horizon             int     `yaml:"horizon,omitempty"`
	MaxSteps            int     `yaml:"max_steps,omitempty"`
}

// LoadExperimentSpec reads and parses a YAML experiment file.
func LoadExperimentSpec(path string) (*ExperimentSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading experiment spec: %w", err)
	}
	return ParseExperimentSpec(data)
}

// ParseExperimentSpec parses YAML experiment data.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func ParseExperimentSpec(data []byte) (*ExperimentSpec, error) {
	var spec ExperimentSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing experiment spec: %w", err)
	}
	return &spec, nil
}

// Sampling returns the spec's sampling parameters.
func (s *ExperimentSpec) Sampling() SamplingConfig {
	return NewSamplingConfig(s.Precision, s.UniformSteps)
}

// ReedFrostConfig converts the reed_frost section.
func (s *ExperimentSpec) ReedFrostConfig() (ReedFrostConfig, error) {
	if s.ReedFrost == nil {
		return ReedFrostConfig{}, fmt.Errorf("no reed_frost section: %w", ErrInvalidConfig)
	}
	rf := s.ReedFrost
	cfg := NewReedFrostConfig(s.Sampling(), rf.InitialSusceptibles, rf.InitialInfectives, rf.IndivProbability, s.Iterations, rf.MaxGenerations)
	cfg.Trace = trace.TraceLevel(s.Trace)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("reed_frost: %w", err)
	}
	return cfg, nil
}

// MarkovConfig converts the markov section.
func (s *ExperimentSpec) MarkovConfig() (MarkovConfig, error) {
	if s.Markov == nil {
		return MarkovConfig{}, fmt.Errorf("no markov section: %w", ErrInvalidConfig)
	}
	mk := s.Markov
	model, err := ParseModel(mk.Model)
	if err != nil {
		return MarkovConfig{}, fmt.Errorf("markov: %w", err)
	}
	initial := Frame{Susceptibles: mk.InitialSusceptibles, Infectives: mk.InitialInfectives, Removed: mk.InitialRemoved}
	cfg := NewMarkovConfig(s.Sampling(), model, initial, mk.InfectionRate, mk.RecoveryRate, s.Iterations)
	cfg.Bins = mk.Bins
	cfg.Horizon = mk.Horizon
	cfg.MaxSteps = mk.MaxSteps
	cfg.Trace = trace.TraceLevel(s.Trace)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("markov: %w", err)
	}
	return cfg, nil
}

// Validate checks every section present in the spec.
func (s *ExperimentSpec) Validate() error {
	if s.ReedFrost == nil && s.Markov == nil {
		return fmt.Errorf("at least one of reed_frost or markov is required: %w", ErrInvalidConfig)
	}
	if s.ReedFrost != nil {
		if _, err := s.ReedFrostConfig(); err != nil {
			return err
		}
	}
	if s.Markov != nil {
		if _, err := s.MarkovConfig(); err != nil {
			return err
		}
	}
	return nil
}
