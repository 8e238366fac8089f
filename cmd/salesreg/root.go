package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aouyang1/go-salesreg/internal/config"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	debug      bool
	cpuProfile string

	cfg      *config.Global
	profiler interface{ Stop() }
)

var rootCmd = &cobra.Command{
	Use:   "salesreg",
	Short: "Explain marketing sales with a multiple linear regression",
	Long: `salesreg fits Sales ~ C(TV, reference=High) + Radio over a marketing csv, reports the
coefficients with their confidence intervals, checks the residual assumptions and measures
the multicollinearity of the promotion budgets.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

		if cpuProfile != "" {
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath(cpuProfile), profile.Quiet)
		}

		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// execute runs the root command and flushes the cpu profile whether or not the command failed
func execute() error {
	defer stopProfiler()
	return rootCmd.Execute()
}

func stopProfiler() {
	if profiler != nil {
		profiler.Stop()
		profiler = nil
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.salesreg/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cpuProfile, "cpuprofile", "", "write a cpu profile into this directory")

	rootCmd.AddCommand(fitCmd, vifCmd, simulateCmd, configCmd)
}
