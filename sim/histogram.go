package sim

import (
	"fmt"
)

// Histogram counts run outcomes by integer value.
//
// Created once per experiment, mutated by every run, then handed read-only to
// reporting. Outcomes outside [0, Len()) are not binned; they are counted in
// Dropped so a checksum failure can say how much was lost.
type Histogram struct {
	bins    []int
	dropped int
}

// NewHistogram creates a histogram with the given number of bins.
func NewHistogram(size int) (*Histogram, error) {
	if size <= 0 {
		return nil, fmt.Errorf("histogram needs at least one bin, got %d: %w", size, ErrInvalidConfig)
	}
	return &Histogram{bins: make([]int, size)}, nil
}

// Record bins an outcome. It returns false when the outcome is out of range.
func (h *Histogram) Record(outcome int) bool {
	if outcome < 0 || outcome >= len(h.bins) {
		h.dropped++
		return false
	}
	h.bins[outcome]++
	return true
}

// Len returns the number of bins.
func (h *Histogram) Len() int { return len(h.bins) }

// Count returns the count of bin i.
func (h *Histogram) Count(i int) int { return h.bins[i] }

// Bins returns a copy of the counts.
func (h *Histogram) Bins() []int {
	out := make([]int, len(h.bins))
	copy(out, h.bins)
	return out
}

// Dropped returns how many outcomes fell outside the histogram.
func (h *Histogram) Dropped() int { return h.dropped }

// Sum returns the total of all bins.
func (h *Histogram) Sum() int {
	total := 0
	for _, c := range h.bins {
		total += c
	}
	return total
}

// Frequencies returns count/iterations per bin.
func (h *Histogram) Frequencies(iterations int) []float64 {
	out := make([]float64, len(h.bins))
	if iterations <= 0 {
		return out
	}
	for i, c := range h.bins {
		out[i] = float64(c) / float64(iterations)
	}
	return out
}

// Validate checks that the bins account for exactly `iterations` outcomes.
func (h *Histogram) Validate(iterations int) error {
	if sum := h.Sum(); sum != iterations {
		return fmt.Errorf("bins sum to %d, expected %d (%d dropped): %w", sum, iterations, h.dropped, ErrChecksum)
	}
	return nil
}
