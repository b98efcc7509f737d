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
	// CLI flags for the Markov chain experiment
	mkModel         string  // sir or sis
	mkMode          string  // age or trajectory
	mkSusceptibles  int     // Initial susceptibles
	mkInfectives    int     // Initial infectives
	mkRemoved       int     // Initial removed (SIR only)
	mkInfectionRate float64 // beta
	mkRecoveryRate  float64 // gamma
	mkBins          int     // Age histogram size
	mkHorizon       int     // Trajectory length in events
	mkMaxSteps      int     // Event cap per run
	mkCurvePoints   int     // Euler steps of the mean-field curve
)

const (
	modeAge        = "age"
	modeTrajectory = "trajectory"
)

// markovCmd runs an SIR/SIS Markov chain experiment
var markovCmd = &cobra.Command{
	Use:   "markov",
	Short: "Absorption-time histogram or averaged trajectory of an SIR/SIS Markov chain",
	Run: func(cmd *cobra.Command, args []string) {
		if mkMode != modeAge && mkMode != modeTrajectory {
			logrus.Fatalf("Unknown mode %q; valid: %s, %s", mkMode, modeAge, modeTrajectory)
		}
		spec, err := resolveMarkovSpec(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		cfg, err := spec.MarkovConfig()
		if err != nil {
			logrus.Fatalf("Invalid experiment: %v", err)
		}

		stream := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed)).ForSubsystem(sim.SubsystemMarkov)
		if mkMode == modeAge {
			runAge(cfg, stream)
		} else {
			runTrajectory(cfg, stream)
		}
		logrus.Infof("Stream %s (seed %d) served %d draws", stream.Name(), stream.Seed(), stream.Draws())
	},
}

func runAge(cfg sim.MarkovConfig, src exact.UniformSource) {
	result, err := sim.SimulateMarkovAge(cfg, src)
	if err != nil {
		logrus.Fatalf("Markov age experiment failed: %v", err)
	}
	fmt.Printf("Markov %s absorption time: initial %+v, beta=%v gamma=%v, %d runs in %v\n",
		cfg.Model, cfg.Initial(), cfg.InfectionRate, cfg.RecoveryRate, cfg.Iterations, result.Elapsed)
	if result.Checksum != nil {
		fmt.Printf("Note: %v (%d truncated by max-steps)\n", result.Checksum, result.Truncated)
	}
	report.PrintHistogram(os.Stdout, result.Histogram, cfg.Iterations)
	report.PrintSummary(os.Stdout, report.Summarize(result.Histogram))
	printTraceSummary(result.Trace)
	writeHistogramOutputs(fmt.Sprintf("Markov %s time to extinction", cfg.Model), "timestep", result.Histogram, cfg.Iterations)
}

func runTrajectory(cfg sim.MarkovConfig, src exact.UniformSource) {
	result, err := sim.SimulateMarkovTrajectory(cfg, src)
	if err != nil {
		logrus.Fatalf("Markov trajectory experiment failed: %v", err)
	}
	curve, err := sim.DeterministicCurve(cfg, mkCurvePoints)
	if err != nil {
		logrus.Fatalf("Mean-field curve: %v", err)
	}

	mean := result.Mean
	last := mean.Len() - 1
	fmt.Printf("Markov %s trajectory: initial %+v, %d runs, %d absorbed within %d events, %v\n",
		cfg.Model, cfg.Initial(), cfg.Iterations, result.Absorbed, cfg.Horizon, result.Elapsed)
	fmt.Printf("Mean at timestep %d: S=%.3f I=%.3f R=%.3f\n", last, mean.Susceptibles[last], mean.Infectives[last], mean.Removed[last])
	printTraceSummary(result.Trace)

	if dataPath != "" {
		if err := report.SaveTrajectory(dataPath, mean); err != nil {
			logrus.Fatalf("Saving data: %v", err)
		}
		logrus.Infof("Trajectory data written to %s", dataPath)
	}
	if chartPath != "" {
		f, err := os.Create(chartPath)
		if err != nil {
			logrus.Fatalf("Creating chart file: %v", err)
		}
		defer f.Close()
		if err := report.RenderTrajectoryChart(f, fmt.Sprintf("Markov %s population", cfg.Model), mean, curve); err != nil {
			logrus.Fatalf("Rendering chart: %v", err)
		}
		logrus.Infof("Chart written to %s", chartPath)
	}
}

// resolveMarkovSpec merges --config/--preset with the command-line flags.
func resolveMarkovSpec(cmd *cobra.Command) (*sim.ExperimentSpec, error) {
	base, err := loadBaseSpec()
	if err != nil {
		return nil, err
	}
	spec := &sim.ExperimentSpec{}
	if base != nil {
		spec = base
	}
	applyGlobalFlags(cmd, base, spec)

	sectionMissing := spec.Markov == nil
	if sectionMissing {
		spec.Markov = &sim.MarkovSpec{}
	}
	mk := spec.Markov
	set := func(name string) bool { return sectionMissing || cmd.Flags().Changed(name) }
	if set("model") {
		mk.Model = mkModel
	}
	if set("susceptibles") {
		mk.InitialSusceptibles = mkSusceptibles
	}
	if set("infectives") {
		mk.InitialInfectives = mkInfectives
	}
	if set("removed") {
		mk.InitialRemoved = mkRemoved
	}
	if set("infection-rate") {
		mk.InfectionRate = mkInfectionRate
	}
	if set("recovery-rate") {
		mk.RecoveryRate = mkRecoveryRate
	}
	if set("bins") {
		mk.Bins = mkBins
	}
	if set("horizon") {
		mk.Horizon = mkHorizon
	}
	if set("max-steps") {
		mk.MaxSteps = mkMaxSteps
	}
	return spec, nil
}

func init() {
	markovCmd.Flags().StringVar(&mkModel, "model", "sir", "Removal semantics (sir, sis)")
	markovCmd.Flags().StringVar(&mkMode, "mode", modeAge, "Experiment (age, trajectory)")
	markovCmd.Flags().IntVar(&mkSusceptibles, "susceptibles", 49, "Initial susceptibles")
	markovCmd.Flags().IntVar(&mkInfectives, "infectives", 1, "Initial infectives")
	markovCmd.Flags().IntVar(&mkRemoved, "removed", 0, "Initial removed (sir only)")
	markovCmd.Flags().Float64Var(&mkInfectionRate, "infection-rate", 0.01, "Infection rate per susceptible (beta)")
	markovCmd.Flags().Float64Var(&mkRecoveryRate, "recovery-rate", 0.1, "Recovery rate per infective (gamma)")
	markovCmd.Flags().IntVar(&mkBins, "bins", 100, "Age histogram size; longer extinction times are dropped")
	markovCmd.Flags().IntVar(&mkHorizon, "horizon", 1000, "Trajectory length in events")
	markovCmd.Flags().IntVar(&mkMaxSteps, "max-steps", 0, "Event cap per run (0 = unbounded)")
	markovCmd.Flags().IntVar(&mkCurvePoints, "curve-points", 1000, "Euler steps of the mean-field reference curve")
}
