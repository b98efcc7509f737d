package cmd

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim"
)

// Preset describes a named experiment in defaults.yaml.
type Preset struct {
	Description string             `yaml:"description"`
	Experiment  sim.ExperimentSpec `yaml:"experiment"`
}

// Config represents the full defaults.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Version string            `yaml:"version"`
	Presets map[string]Preset `yaml:"presets"`
}

// loadDefaultsConfig parses defaults.yaml into a Config struct.
// Uses strict field checking: typos must cause errors.
func loadDefaultsConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading defaults file: %w", err)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing defaults YAML: %w", err)
	}
	return cfg, nil
}

// Preset returns a copy of the named preset's experiment.
func (c Config) Preset(name string) (*sim.ExperimentSpec, error) {
	p, ok := c.Presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q; valid: %v", name, c.PresetNames())
	}
	spec := p.Experiment
	if spec.ReedFrost != nil {
		rf := *spec.ReedFrost
		spec.ReedFrost = &rf
	}
	if spec.Markov != nil {
		mk := *spec.Markov
		spec.Markov = &mk
	}
	return &spec, nil
}

// PresetNames returns the preset names in sorted order.
func (c Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
