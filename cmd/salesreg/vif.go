package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/aouyang1/go-salesreg/dataset"
	"github.com/aouyang1/go-salesreg/stats"
	"github.com/spf13/cobra"
)

var (
	vifPredictors []string
	vifIntercept  bool
)

var vifCmd = &cobra.Command{
	Use:   "vif <csv>",
	Short: "Compute the variance inflation factor of the continuous predictors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := dataset.LoadCSVFile(args[0])
		if err != nil {
			return err
		}
		names := cfg.VIFPredictors
		if len(vifPredictors) > 0 {
			names = vifPredictors
		}
		intercept := cfg.VIFIntercept
		if cmd.Flags().Changed("intercept") {
			intercept = vifIntercept
		}
		complete, err := ds.DropMissingIn(names...)
		if err != nil {
			return err
		}
		cols, err := complete.Columns(names)
		if err != nil {
			return err
		}
		vif, err := stats.VIFReport(cols, names, intercept)
		if err != nil {
			return err
		}

		sorted := make([]string, 0, len(vif))
		for name := range vif {
			sorted = append(sorted, name)
		}
		sort.Strings(sorted)

		tbl := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 1, ' ', tabwriter.AlignRight)
		fmt.Fprintf(tbl, "feature\tVIF\t\n")
		for _, name := range sorted {
			fmt.Fprintf(tbl, "%s\t%.3f\t\n", name, vif[name])
		}
		return tbl.Flush()
	},
}

func init() {
	vifCmd.Flags().StringSliceVar(&vifPredictors, "predictors", nil, "predictors to check (overrides config)")
	vifCmd.Flags().BoolVar(&vifIntercept, "intercept", false, "add a constant to the auxiliary regressions (overrides config)")
}
