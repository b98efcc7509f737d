package sim

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim/trace"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadExperimentSpec_ValidYAML(t *testing.T) {
	yaml := `
seed: 7
precision: 40
uniform_steps: 20000
iterations: 1000
trace: runs
reed_frost:
  initial_susceptibles: 49
  initial_infectives: 1
  indiv_probability: 0.1
markov:
  model: sis
  initial_susceptibles: 149
  initial_infectives: 1
  infection_rate: 0.01
  recovery_rate: 0.1
  horizon: 1000
`
	spec, err := LoadExperimentSpec(writeTempYAML(t, yaml))
	require.NoError(t, err)
	require.NoError(t, spec.Validate())
	assert.Equal(t, int64(7), spec.Seed)

	rf, err := spec.ReedFrostConfig()
	require.NoError(t, err)
	want := NewReedFrostConfig(NewSamplingConfig(40, 20000), 49, 1, 0.1, 1000, 0)
	want.Trace = trace.TraceLevelRuns
	assert.Equal(t, want, rf)

	mk, err := spec.MarkovConfig()
	require.NoError(t, err)
	assert.Equal(t, SIS, mk.Model)
	assert.Equal(t, Frame{Susceptibles: 149, Infectives: 1}, mk.Initial())
	assert.Equal(t, 1000, mk.Horizon)
	assert.Equal(t, 0.01, mk.InfectionRate)
}

func TestParseExperimentSpec_UnknownFieldRejected(t *testing.T) {
	// GIVEN a typo in a section key
	yaml := `
iterations: 10
reed_frost:
  initial_susceptible: 49
`
	_, err := ParseExperimentSpec([]byte(yaml))
	assert.Error(t, err)
}

func TestExperimentSpec_Validate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no sections", "iterations: 10\n"},
		{"zero iterations", "reed_frost:\n  initial_susceptibles: 5\n  initial_infectives: 1\n  indiv_probability: 0.5\n"},
		{"probability out of range", "iterations: 5\nreed_frost:\n  initial_susceptibles: 5\n  initial_infectives: 1\n  indiv_probability: 2\n"},
		{"unknown model", "iterations: 5\nmarkov:\n  model: seir\n  initial_susceptibles: 5\n  initial_infectives: 1\n  infection_rate: 0.1\n  recovery_rate: 0.1\n"},
		{"zero recovery", "iterations: 5\nmarkov:\n  model: sir\n  initial_susceptibles: 5\n  initial_infectives: 1\n  infection_rate: 0.1\n  recovery_rate: 0\n"},
		{"bad precision", "iterations: 5\nprecision: 1\nreed_frost:\n  initial_susceptibles: 5\n  initial_infectives: 1\n  indiv_probability: 0.5\n"},
		{"bad trace level", "iterations: 5\ntrace: all\nreed_frost:\n  initial_susceptibles: 5\n  initial_infectives: 1\n  indiv_probability: 0.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParseExperimentSpec([]byte(tt.yaml))
			require.NoError(t, err)
			err = spec.Validate()
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestExperimentSpec_MissingSection(t *testing.T) {
	spec := &ExperimentSpec{Iterations: 5}
	_, err := spec.MarkovConfig()
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	_, err = spec.ReedFrostConfig()
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestLoadExperimentSpec_MissingFile(t *testing.T) {
	_, err := LoadExperimentSpec(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
