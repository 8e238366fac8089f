package main

import (
	"os"

	"github.com/aouyang1/go-salesreg/dataset"
	"github.com/spf13/cobra"
)

var simulateOut string

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Generate a synthetic marketing csv from the reference sales coefficients",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := dataset.Simulate(cfg.SimulateObservations, dataset.SalesCoefficients, cfg.SimulateNoise, cfg.SimulateSeed)
		if err != nil {
			return err
		}
		if simulateOut == "" {
			return ds.WriteCSV(cmd.OutOrStdout())
		}
		f, err := os.Create(simulateOut)
		if err != nil {
			return err
		}
		defer f.Close()
		return ds.WriteCSV(f)
	},
}

func init() {
	simulateCmd.Flags().StringVarP(&simulateOut, "output", "o", "", "write the csv to this file instead of stdout")
}
