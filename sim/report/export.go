// Package report turns finished experiment results into text data files,
// terminal tables, HTML charts and summary statistics.
//
// This is the float64 boundary of the engine: counts and averages are
// narrowed here and nowhere earlier.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim"
)

// WriteHistogram writes one "index value" row per bin, where value is the
// bin's count divided by iterations.
func WriteHistogram(w io.Writer, h *sim.Histogram, iterations int) error {
	if iterations <= 0 {
		return fmt.Errorf("normalising by %d iterations: %w", iterations, sim.ErrInvalidConfig)
	}
	return WriteSeries(w, h.Frequencies(iterations))
}

// WriteSeries writes one "index value" row per element.
func WriteSeries(w io.Writer, values []float64) error {
	bw := bufio.NewWriter(w)
	for i, v := range values {
		if _, err := fmt.Fprintf(bw, "%d %f\n", i, v); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveHistogram writes the normalised histogram to path, creating parent
// directories as needed.
func SaveHistogram(path string, h *sim.Histogram, iterations int) error {
	return saveFile(path, func(w io.Writer) error { return WriteHistogram(w, h, iterations) })
}

// SaveTrajectory writes the S, I and R series of a trajectory to
// susceptibles.dat, infectives.dat and removed.dat under dir.
func SaveTrajectory(dir string, series sim.PopulationSeries) error {
	files := []struct {
		name   string
		values []float64
	}{
		{"susceptibles.dat", series.Susceptibles},
		{"infectives.dat", series.Infectives},
		{"removed.dat", series.Removed},
	}
	for _, f := range files {
		values := f.values
		if err := saveFile(filepath.Join(dir, f.name), func(w io.Writer) error { return WriteSeries(w, values) }); err != nil {
			return err
		}
	}
	return nil
}

func saveFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
