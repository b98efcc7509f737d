package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim"
	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim/report"
	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim/trace"
)

var (
	// CLI flags for the chain-binomial experiment
	rfSusceptibles   int     // Initial susceptibles
	rfInfectives     int     // Initial infectives
	rfProbability    float64 // Per-contact transmission probability
	rfMaxGenerations int     // Generation cap per run
)

// reedFrostCmd runs a Reed-Frost final-size experiment
var reedFrostCmd = &cobra.Command{
	Use:   "reed-frost",
	Short: "Histogram of Reed-Frost final outbreak sizes",
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := resolveReedFrostSpec(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		cfg, err := spec.ReedFrostConfig()
		if err != nil {
			logrus.Fatalf("Invalid experiment: %v", err)
		}

		stream := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed)).ForSubsystem(sim.SubsystemReedFrost)
		result, err := sim.SimulateReedFrost(cfg, stream)
		if err != nil {
			logrus.Fatalf("Reed-Frost experiment failed: %v", err)
		}
		logrus.Infof("Stream %s (seed %d) served %d draws", stream.Name(), stream.Seed(), stream.Draws())

		fmt.Printf("Reed-Frost final size: S0=%d I0=%d q=%v, %d runs in %v\n",
			cfg.InitialSusceptibles, cfg.InitialInfectives, cfg.IndivProbability, cfg.Iterations, result.Elapsed)
		report.PrintHistogram(os.Stdout, result.Histogram, cfg.Iterations)
		report.PrintSummary(os.Stdout, report.Summarize(result.Histogram))
		printTraceSummary(result.Trace)
		writeHistogramOutputs("Reed-Frost final outbreak size", "final size", result.Histogram, cfg.Iterations)
	},
}

// resolveReedFrostSpec merges --config/--preset with the command-line flags.
func resolveReedFrostSpec(cmd *cobra.Command) (*sim.ExperimentSpec, error) {
	base, err := loadBaseSpec()
	if err != nil {
		return nil, err
	}
	spec := &sim.ExperimentSpec{}
	if base != nil {
		spec = base
	}
	applyGlobalFlags(cmd, base, spec)

	sectionMissing := spec.ReedFrost == nil
	if sectionMissing {
		spec.ReedFrost = &sim.ReedFrostSpec{}
	}
	rf := spec.ReedFrost
	if sectionMissing || cmd.Flags().Changed("susceptibles") {
		rf.InitialSusceptibles = rfSusceptibles
	}
	if sectionMissing || cmd.Flags().Changed("infectives") {
		rf.InitialInfectives = rfInfectives
	}
	if sectionMissing || cmd.Flags().Changed("probability") {
		rf.IndivProbability = rfProbability
	}
	if sectionMissing || cmd.Flags().Changed("max-generations") {
		rf.MaxGenerations = rfMaxGenerations
	}
	return spec, nil
}

// printTraceSummary prints per-run trace statistics when tracing was enabled.
func printTraceSummary(st *trace.SimulationTrace) {
	if st == nil {
		return
	}
	s := trace.Summarize(st)
	fmt.Printf("Trace: %d runs, %d truncated, %d unrecorded, mean outcome %.3f (max %d), mean steps %.3f (max %d)\n",
		s.TotalRuns, s.TruncatedRuns, s.UnrecordedRuns, s.MeanOutcome, s.MaxOutcome, s.MeanSteps, s.MaxSteps)
}

// writeHistogramOutputs saves the --data and --chart files when requested.
func writeHistogramOutputs(title, xLabel string, h *sim.Histogram, runs int) {
	if dataPath != "" {
		if err := report.SaveHistogram(dataPath, h, runs); err != nil {
			logrus.Fatalf("Saving data: %v", err)
		}
		logrus.Infof("Histogram data written to %s", dataPath)
	}
	if chartPath != "" {
		f, err := os.Create(chartPath)
		if err != nil {
			logrus.Fatalf("Creating chart file: %v", err)
		}
		defer f.Close()
		if err := report.RenderHistogramChart(f, title, xLabel, h, runs); err != nil {
			logrus.Fatalf("Rendering chart: %v", err)
		}
		logrus.Infof("Chart written to %s", chartPath)
	}
}

func init() {
	reedFrostCmd.Flags().IntVar(&rfSusceptibles, "susceptibles", 49, "Initial susceptibles")
	reedFrostCmd.Flags().IntVar(&rfInfectives, "infectives", 1, "Initial infectives")
	reedFrostCmd.Flags().Float64Var(&rfProbability, "probability", 0.1, "Per-contact transmission probability")
	reedFrostCmd.Flags().IntVar(&rfMaxGenerations, "max-generations", 0, "Generation cap per run (0 = unbounded)")
}
