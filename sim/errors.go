package sim

import "errors"

var (
	// ErrInvalidConfig reports an input-domain violation in an experiment configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrChecksum reports that a histogram does not account for every iteration.
	ErrChecksum = errors.New("histogram checksum mismatch")

	// ErrStepLimit reports that a run reached its configured generation or timestep cap.
	ErrStepLimit = errors.New("step limit reached")
)
