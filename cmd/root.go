package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/counterbank/counter-sim/sim"
	"github.com/counterbank/counter-sim/sim/report"
)

var (
	configPath       string   // Optional YAML config file
	logLevel         string   // Log verbosity level
	exportDir        string   // Directory receiving exported run data
	exportFormats    []string // Export formats (csv, json)
	counters         int      // Number of service counters
	horizon          float64  // Total simulated time
	warmup           float64  // Arrivals before this time are excluded from time statistics
	seed             int64    // Seed for the variate stream
	arrivalDist      string   // Inter-arrival distribution
	arrivalMean      float64  // Mean inter-arrival time
	serviceDist      string   // Service-time distribution
	serviceMean      float64  // Mean service time
	serviceStd       float64  // Service-time standard deviation (normal only)
	snapshotInterval float64  // Interval between queue snapshots
	monitor          bool     // Log each arrival as it happens
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "counter-sim",
	Short: "Discrete-event simulator for a bank of service counters",
}

// runCmd executes the simulation using parameters from the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the counter simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		startTime := time.Now()
		if err := runSimulation(cfg, exportDir, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

// resolveConfig starts from the defaults or the config file and applies every
// flag the user set explicitly.
func resolveConfig(cmd *cobra.Command) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		loaded, err := LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("counters") {
		cfg.Counters = counters
	}
	if flags.Changed("horizon") {
		cfg.Horizon = horizon
	}
	if flags.Changed("warmup") {
		cfg.Warmup = warmup
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("arrival-dist") {
		cfg.Arrival.Distribution = arrivalDist
	}
	if flags.Changed("arrival-mean") {
		cfg.Arrival.Mean = arrivalMean
	}
	if flags.Changed("service-dist") {
		cfg.Service.Distribution = serviceDist
	}
	if flags.Changed("service-mean") {
		cfg.Service.Mean = serviceMean
	}
	if flags.Changed("service-std") {
		cfg.Service.Std = serviceStd
	}
	if flags.Changed("snapshot-interval") {
		cfg.Monitoring.SnapshotInterval = snapshotInterval
	}
	if flags.Changed("monitor") {
		cfg.Monitoring.Enabled = monitor
	}
	if flags.Changed("export") {
		cfg.Export = exportFormats
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// runSimulation runs one simulation, reconciles it, prints the report to out
// and exports the run when dir is non-empty.
func runSimulation(cfg sim.Config, dir string, out io.Writer) error {
	logrus.Infof("Starting simulation with %d counters, horizon=%.2f, warmup=%.2f, arrival=%s(%.2f), service=%s(%.2f, %.2f), seed=%d",
		cfg.Counters, cfg.Horizon, cfg.Warmup, cfg.Arrival.Distribution, cfg.Arrival.Mean,
		cfg.Service.Distribution, cfg.Service.Mean, cfg.Service.Std, cfg.Seed)

	s := sim.NewSimulator(cfg)
	res := s.Run()
	closed := report.Reconcile(res.Patients, res.EndTime)
	logrus.Infof("Force-closed %d patients still in service at the horizon", closed)

	rep := report.Analyze(res.Patients, res.Counters, cfg.Horizon, cfg.Warmup)
	sum := report.Summarize(res, cfg.Warmup)
	fmt.Fprintf(out, "Run %s completed at t=%.2f\n", res.RunID, res.EndTime)
	rep.Print(out)

	if dir == "" || len(cfg.Export) == 0 {
		return nil
	}
	paths, err := report.Export(dir, cfg.Export, res, rep, sum)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	for _, p := range paths {
		logrus.Infof("Wrote %s", p)
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := sim.DefaultConfig()

	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML run configuration")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&exportDir, "export-dir", "", "Directory for exported run data (empty disables export)")
	runCmd.Flags().StringSliceVar(&exportFormats, "export", defaults.Export, "Export formats (csv, json)")

	// Counter bank and run length
	runCmd.Flags().IntVar(&counters, "counters", defaults.Counters, "Number of service counters")
	runCmd.Flags().Float64Var(&horizon, "horizon", defaults.Horizon, "Total simulated time")
	runCmd.Flags().Float64Var(&warmup, "warmup", defaults.Warmup, "Arrivals before this time are excluded from time statistics")
	runCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for random variate generation")

	// Distributions
	runCmd.Flags().StringVar(&arrivalDist, "arrival-dist", defaults.Arrival.Distribution, "Inter-arrival distribution (exponential, uniform, constant)")
	runCmd.Flags().Float64Var(&arrivalMean, "arrival-mean", defaults.Arrival.Mean, "Mean inter-arrival time")
	runCmd.Flags().StringVar(&serviceDist, "service-dist", defaults.Service.Distribution, "Service-time distribution (normal, exponential, constant)")
	runCmd.Flags().Float64Var(&serviceMean, "service-mean", defaults.Service.Mean, "Mean service time")
	runCmd.Flags().Float64Var(&serviceStd, "service-std", defaults.Service.Std, "Service-time standard deviation (normal only)")

	// Monitoring
	runCmd.Flags().Float64Var(&snapshotInterval, "snapshot-interval", defaults.Monitoring.SnapshotInterval, "Interval between queue snapshots (0 disables)")
	runCmd.Flags().BoolVar(&monitor, "monitor", defaults.Monitoring.Enabled, "Log each arrival as it happens")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
