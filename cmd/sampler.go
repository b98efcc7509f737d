package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim"
	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim/exact"
	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim/report"
)

var (
	// CLI flags for the sampler diagnostic
	samplerTrials int    // Binomial n
	samplerP      string // Binomial p, parsed exactly
	samplerDraws  int    // Number of samples
)

// samplerCmd checks the inverse-CDF sampler against exact binomial masses
var samplerCmd = &cobra.Command{
	Use:   "sampler",
	Short: "Sample one exact binomial table and test the draws against its point masses",
	Run: func(cmd *cobra.Command, args []string) {
		p, err := exact.ParseProb(samplerP)
		if err != nil {
			logrus.Fatalf("Invalid --p: %v", err)
		}
		if samplerDraws <= 0 {
			logrus.Fatalf("--draws must be positive, got %d", samplerDraws)
		}
		sampling := sim.NewSamplingConfig(precision, uniformSteps)
		ctx, err := sampling.Context()
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		observed, expected, err := sampleBinomial(ctx, sampling.Steps(), samplerTrials, p, samplerDraws, seed)
		if err != nil {
			logrus.Fatalf("Sampling failed: %v", err)
		}
		fit, err := report.GoodnessOfFit(observed.Bins(), expected)
		if err != nil {
			logrus.Fatalf("Goodness of fit: %v", err)
		}

		fmt.Printf("binomial(%d, %s) at %d digits, %d draws on a %d-step grid\n", samplerTrials, p, ctx.Precision(), samplerDraws, sampling.Steps())
		report.PrintHistogram(os.Stdout, observed, samplerDraws)
		fmt.Printf("chi-square %.4f, %d degrees of freedom, p-value %.4f\n", fit.Statistic, fit.DegreesOfFreedom, fit.PValue)
		writeHistogramOutputs(fmt.Sprintf("binomial(%d, %s) samples", samplerTrials, p), "k", observed, samplerDraws)
	},
}

// sampleBinomial draws from one exact binomial(n, p) table and returns the
// observed histogram alongside the exact point masses as floats.
func sampleBinomial(ctx exact.Context, steps, n int, p exact.Prob, draws int, seed int64) (*sim.Histogram, []float64, error) {
	table, err := ctx.BuildCDF(n, p)
	if err != nil {
		return nil, nil, err
	}
	grid, err := ctx.NewUniformGrid(steps)
	if err != nil {
		return nil, nil, err
	}
	hist, err := sim.NewHistogram(n + 1)
	if err != nil {
		return nil, nil, err
	}
	src := sim.NewPartitionedRNG(sim.NewSimulationKey(seed)).ForSubsystem(sim.SubsystemSampler)
	for i := 0; i < draws; i++ {
		k, err := exact.SampleFromCDF(table, grid.Draw(src))
		if err != nil {
			return nil, nil, err
		}
		hist.Record(k)
	}

	expected := make([]float64, n+1)
	for k := range expected {
		mass, err := ctx.BinomialPointMass(n, p, k)
		if err != nil {
			return nil, nil, err
		}
		expected[k] = mass.Float64()
	}
	return hist, expected, nil
}

func init() {
	samplerCmd.Flags().IntVar(&samplerTrials, "n", 49, "Binomial trials")
	samplerCmd.Flags().StringVar(&samplerP, "p", "0.1", "Binomial success probability (decimal string)")
	samplerCmd.Flags().IntVar(&samplerDraws, "draws", 10000, "Number of samples")
}
