package sim

import (
	"fmt"
	"strings"
)

// Model selects the resolution of a removal event in the Markov chain.
type Model int

const (
	// SIR: a resolving infective moves to the removed compartment.
	SIR Model = iota
	// SIS: a resolving infective becomes susceptible again; there is no removed compartment.
	SIS
)

// String returns the lower-case model name.
func (m Model) String() string {
	switch m {
	case SIR:
		return "sir"
	case SIS:
		return "sis"
	default:
		return fmt.Sprintf("model(%d)", int(m))
	}
}

// ParseModel parses "sir" or "sis" (case-insensitive).
func ParseModel(name string) (Model, error) {
	switch strings.ToLower(name) {
	case "sir":
		return SIR, nil
	case "sis":
		return SIS, nil
	default:
		return 0, fmt.Errorf("unknown model %q; valid: sir, sis: %w", name, ErrInvalidConfig)
	}
}

// Frame is the population state of one run.
// Removed is always 0 under SIS.
type Frame struct {
	Susceptibles int
	Infectives   int
	Removed      int
}

// Total returns the population size N.
func (f Frame) Total() int {
	return f.Susceptibles + f.Infectives + f.Removed
}

// Absorbed reports whether the epidemic is over (no infectives left).
func (f Frame) Absorbed() bool {
	return f.Infectives == 0
}
