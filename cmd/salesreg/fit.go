package main

import (
	"fmt"
	"log/slog"
	"os"

	salesreg "github.com/aouyang1/go-salesreg"
	"github.com/aouyang1/go-salesreg/dataset"
	"github.com/spf13/cobra"
)

var (
	fitHTML      string
	fitJSON      string
	fitReference string
)

var fitCmd = &cobra.Command{
	Use:   "fit <csv>",
	Short: "Fit the sales regression and explain the coefficients",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := dataset.LoadCSVFile(args[0])
		if err != nil {
			return err
		}
		slog.Info("loaded observations", "path", args[0], "observations", ds.Len(), "incomplete", ds.Missing())

		opt := cfg.Options()
		if fitReference != "" {
			opt.Reference = fitReference
		}
		a, err := salesreg.Analyze(ds, opt)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if err := a.TablePrint(out); err != nil {
			return err
		}
		fmt.Fprintln(out)
		for _, line := range a.Interpretation() {
			fmt.Fprintln(out, line)
		}

		if fitHTML != "" {
			if err := a.PlotFit(fitHTML); err != nil {
				return fmt.Errorf("unable to plot fit, %w", err)
			}
			slog.Info("wrote charts", "path", fitHTML)
		}
		if fitJSON != "" {
			f, err := os.Create(fitJSON)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := a.WriteJSON(f); err != nil {
				return fmt.Errorf("unable to write results, %w", err)
			}
			slog.Info("wrote results", "path", fitJSON)
		}
		return nil
	},
}

func init() {
	fitCmd.Flags().StringVar(&fitHTML, "html", "", "write the charts to this html file")
	fitCmd.Flags().StringVar(&fitJSON, "json", "", "write the results to this json file")
	fitCmd.Flags().StringVar(&fitReference, "reference", "", "TV tier used as the baseline (overrides config)")
}
