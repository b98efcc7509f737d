package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/the-sign-painter/stochastic-epidemic-modelling/sim"
)

var (
	// CLI flags shared by every experiment
	seed             int64  // Seed for the partitioned RNG
	logLevel         string // Log verbosity level
	precision        int    // Significant digits of exact probabilities
	uniformSteps     int    // Resolution of uniform draws
	iterations       int    // Number of simulated runs
	traceLevel       string // Per-run trace level
	configPath       string // YAML experiment file
	presetName       string // Preset from defaults.yaml
	defaultsFilePath string // Location of defaults.yaml
	dataPath         string // Where to write "index value" data
	chartPath        string // Where to write the HTML chart
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "epidemic",
	Short: "Stochastic SIR/SIS and Reed-Frost epidemic simulator with exact probabilities",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadBaseSpec returns the experiment named by --config or --preset, or nil
// when neither is set.
func loadBaseSpec() (*sim.ExperimentSpec, error) {
	if configPath != "" && presetName != "" {
		logrus.Fatalf("--config and --preset are mutually exclusive")
	}
	if configPath != "" {
		return sim.LoadExperimentSpec(configPath)
	}
	if presetName != "" {
		cfg, err := loadDefaultsConfig(defaultsFilePath)
		if err != nil {
			return nil, err
		}
		return cfg.Preset(presetName)
	}
	return nil, nil
}

// overridable reports whether the flag's value should replace the base spec:
// always without a base spec, otherwise only when set on the command line.
func overridable(cmd *cobra.Command, base *sim.ExperimentSpec, name string) bool {
	return base == nil || cmd.Flags().Changed(name)
}

// applyGlobalFlags copies the shared flags into spec.
func applyGlobalFlags(cmd *cobra.Command, base, spec *sim.ExperimentSpec) {
	if overridable(cmd, base, "seed") {
		spec.Seed = seed
	}
	if overridable(cmd, base, "precision") {
		spec.Precision = precision
	}
	if overridable(cmd, base, "uniform-steps") {
		spec.UniformSteps = uniformSteps
	}
	if overridable(cmd, base, "iterations") {
		spec.Iterations = iterations
	}
	if overridable(cmd, base, "trace") {
		spec.Trace = traceLevel
	}
}

// init sets up CLI flags and subcommands
func init() {
	flags := rootCmd.PersistentFlags()
	flags.Int64Var(&seed, "seed", 42, "Seed for the random source")
	flags.StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	flags.IntVar(&precision, "precision", 0, "Significant digits of exact probabilities (0 = 32)")
	flags.IntVar(&uniformSteps, "uniform-steps", 0, "Uniform draws land on {0, 1/steps, ..., 1} (0 = 10000)")
	flags.IntVar(&iterations, "iterations", 1000, "Number of simulated runs")
	flags.StringVar(&traceLevel, "trace", "none", "Per-run trace level (none, runs)")
	flags.StringVar(&configPath, "config", "", "YAML experiment file")
	flags.StringVar(&presetName, "preset", "", "Experiment preset from the defaults file")
	flags.StringVar(&defaultsFilePath, "defaults-filepath", "defaults.yaml", "Path to the presets file")
	flags.StringVar(&dataPath, "data", "", "Write \"index value\" data to this file (a directory for trajectories)")
	flags.StringVar(&chartPath, "chart", "", "Write an HTML chart to this file")

	rootCmd.AddCommand(reedFrostCmd)
	rootCmd.AddCommand(markovCmd)
	rootCmd.AddCommand(samplerCmd)
	rootCmd.AddCommand(presetsCmd)
}
