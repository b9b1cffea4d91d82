package cmd

import (
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/treesim/treesim/sim"
	"github.com/treesim/treesim/sim/treeio"
)

var (
	// CLI flags for the generation run
	seed                int64     // Seed for reproducible simulation
	minTips             int       // Minimal bound on total sampled tips
	maxTips             int       // Maximal bound on total sampled tips
	totalTime           float64   // Total simulation time T; +Inf simulates a single tree
	logLevel            string    // Log verbosity level
	la                  []float64 // Transmission rate per skyline interval
	psi                 []float64 // Removal rate per skyline interval
	samplingProbs       []float64 // Sampling probability per skyline interval
	times               []float64 // Interval transition time per skyline interval
	upsilon             float64   // Notification probability (0 disables notification)
	phi                 float64   // Removal rate of notified contacts
	maxNotifiedContacts int       // Max notified contacts per sampling event
	avgRecipients       float64   // Average recipients per transmission (1 = one-to-one)
	maxAttempts         int       // Cap on rejection retries (0 = retry forever)

	// CLI flags for output files
	nwkPath     string // Newick forest output file
	logPath     string // Summary log CSV output file
	lttPath     string // LTT CSV output file (optional)
	scenarioCfg string // YAML scenario preset file (optional)
	scenario    string // Name of the preset inside the scenario file
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "treesim",
	Short: "Stochastic simulator for skyline birth-death-sampling trees and forests",
}

// generateCmd runs the forest generation using parameters from CLI flags
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a tree or forest under a skyline birth-death-sampling model",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if scenarioCfg != "" {
			if preset := GetScenario(scenarioCfg, scenario); preset != nil {
				applyScenario(preset)
			} else {
				logrus.Fatalf("Scenario %q not found in %s", scenario, scenarioCfg)
			}
		}

		if nwkPath == "" {
			logrus.Fatalf("Newick output path not provided. Exiting simulation.")
		}

		schedule, lastModel := buildSchedule()

		logrus.Infof("Skyline parameters: lambda=%v psi=%v p=%v times=%v", la, psi, samplingProbs, times)
		if upsilon > 0 {
			logrus.Infof("Notification parameters: upsilon=%v phi=%v max contacts=%d",
				upsilon, phi, maxNotifiedContacts)
		}
		if !math.IsInf(totalTime, 1) {
			logrus.Infof("Total time T=%v", totalTime)
		}

		gen := &sim.Generator{
			Schedule:            schedule,
			MinTips:             minTips,
			MaxTips:             maxTips,
			Horizon:             totalTime,
			MaxNotifiedContacts: maxNotifiedContacts,
			MaxAttempts:         maxAttempts,
		}
		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed))

		forest, summary, ltt, err := gen.Generate(rng)
		if err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}

		writeForest(nwkPath, forest)
		if logPath != "" {
			writeSummary(logPath, lastModel, summary)
		}
		if lttPath != "" {
			writeLTT(lttPath, ltt, forest.ObservedLTT())
		}

		logrus.Infof("Generation complete: %d trees, %d tips, %d unsampled, time %.4f",
			len(forest.Trees), summary.Tips, summary.Unsampled, summary.Time)
	},
}

// buildSchedule assembles the skyline models from the parallel rate flags.
// Like the reference tool, lists are truncated to the shortest one.
func buildSchedule() (*sim.Skyline, sim.Model) {
	n := len(la)
	for _, l := range [][]float64{psi, samplingProbs, times} {
		if len(l) < n {
			n = len(l)
		}
	}
	if n == 0 {
		logrus.Fatalf("Need at least one interval: got la=%v psi=%v p=%v times=%v", la, psi, samplingProbs, times)
	}

	var recipients sim.RecipientSampler
	if avgRecipients != 1 {
		r, err := sim.NewGeometricRecipients(avgRecipients)
		if err != nil {
			logrus.Fatalf("Invalid average recipient count: %v", err)
		}
		recipients = r
	}

	models := make([]sim.Model, 0, n)
	for i := 0; i < n; i++ {
		m, err := sim.NewBirthDeathModel(la[i], psi[i], samplingProbs[i], recipients)
		if err != nil {
			logrus.Fatalf("Invalid model for interval %d: %v", i+1, err)
		}
		var model sim.Model = m
		if upsilon > 0 {
			cm, err := sim.NewContactModel(m, upsilon, phi)
			if err != nil {
				logrus.Fatalf("Invalid notification parameters: %v", err)
			}
			model = cm
		}
		models = append(models, model)
		logrus.Infof("Model %d with transition time %v: lambda=%v, psi=%v, p=%v",
			i+1, times[i], la[i], psi[i], samplingProbs[i])
	}

	schedule, err := sim.NewSkyline(models, times[:n])
	if err != nil {
		logrus.Fatalf("Invalid skyline schedule: %v", err)
	}
	return schedule, models[n-1]
}

func writeForest(path string, forest *sim.Forest) {
	f, err := os.Create(path)
	if err != nil {
		logrus.Fatalf("Cannot create forest file %s: %v", path, err)
	}
	defer f.Close()
	if err := treeio.WriteForest(f, forest); err != nil {
		logrus.Fatalf("Cannot write forest: %v", err)
	}
}

func writeSummary(path string, m sim.Model, s sim.Summary) {
	f, err := os.Create(path)
	if err != nil {
		logrus.Fatalf("Cannot create log file %s: %v", path, err)
	}
	defer f.Close()
	if err := treeio.WriteSummary(f, m, s); err != nil {
		logrus.Fatalf("Cannot write summary log: %v", err)
	}
}

func writeLTT(path string, full, observed []sim.LTTPoint) {
	f, err := os.Create(path)
	if err != nil {
		logrus.Fatalf("Cannot create LTT file %s: %v", path, err)
	}
	defer f.Close()
	if err := treeio.WriteLTT(f, full, observed); err != nil {
		logrus.Fatalf("Cannot write LTT: %v", err)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {

	generateCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for reproducible simulation")
	generateCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// population-size and time bounds
	generateCmd.Flags().IntVar(&minTips, "min-tips", 10, "Minimal bound on the total number of sampled tips")
	generateCmd.Flags().IntVar(&maxTips, "max-tips", 10, "Maximal bound on the total number of sampled tips")
	generateCmd.Flags().Float64Var(&totalTime, "T", math.Inf(1), "Total simulation time; finite values simulate a forest instead of one tree")
	generateCmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "Cap on rejection retries, 0 retries forever")

	// skyline rate parameters, one entry per interval
	generateCmd.Flags().Float64SliceVar(&la, "la", []float64{0.4, 0.5, 0.6}, "Comma-separated transmission rates per interval")
	generateCmd.Flags().Float64SliceVar(&psi, "psi", []float64{0.1, 0.2, 0.3}, "Comma-separated removal rates per interval")
	generateCmd.Flags().Float64SliceVar(&samplingProbs, "p", []float64{0.5, 0.6, 0.7}, "Comma-separated sampling probabilities per interval")
	generateCmd.Flags().Float64SliceVar(&times, "times", []float64{2.0, 5.0, 10.0}, "Comma-separated interval transition times")
	generateCmd.Flags().Float64Var(&avgRecipients, "avg-recipients", 1, "Average number of recipients per transmission, >1 makes one-to-many transmissions possible")

	// contact notification parameters
	generateCmd.Flags().Float64Var(&upsilon, "upsilon", 0, "Notification probability")
	generateCmd.Flags().Float64Var(&phi, "phi", 0, "Removal rate of notified contacts")
	generateCmd.Flags().IntVar(&maxNotifiedContacts, "max-notified-contacts", 1, "Maximum number of notified contacts per sampled individual")

	// output files and presets
	generateCmd.Flags().StringVar(&nwkPath, "nwk", "", "Output tree or forest file (Newick)")
	generateCmd.Flags().StringVar(&logPath, "log-file", "", "Output summary log file (CSV)")
	generateCmd.Flags().StringVar(&lttPath, "ltt-file", "", "Output LTT file (CSV)")
	generateCmd.Flags().StringVar(&scenarioCfg, "scenario-file", "", "YAML file with scenario presets")
	generateCmd.Flags().StringVar(&scenario, "scenario", "", "Name of the scenario preset to apply")

	// Attach `generate` as a subcommand to `root`
	rootCmd.AddCommand(generateCmd)
}
