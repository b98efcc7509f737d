package exact

import "errors"

var (
	// ErrDomain reports an argument outside the domain of an operation:
	// negative counts, k > n, probabilities outside [0,1], division by zero.
	ErrDomain = errors.New("argument outside domain")

	// ErrPrecisionBudget reports that the working precision was too small for
	// the computation: a cumulative table that does not reach 1, or a uniform
	// draw that falls beyond the top of a table.
	ErrPrecisionBudget = errors.New("working precision exhausted")
)
