package salesreg

import (
	"fmt"
	"io"

	"github.com/aouyang1/go-salesreg/dataset"
	"github.com/aouyang1/go-salesreg/report"
	"github.com/aouyang1/go-salesreg/stats"
	"github.com/go-echarts/go-echarts/v2/components"
)

// Charts builds the exploratory and residual charts of the analysis
func (a *Analysis) Charts() ([]components.Charter, error) {
	sales, err := a.data.Column(dataset.ColSales)
	if err != nil {
		return nil, err
	}

	radioSales, err := report.ScatterByGroup("Radio vs Sales by TV", dataset.ColRadio, dataset.ColSales, a.tiers, a.radio, sales)
	if err != nil {
		return nil, fmt.Errorf("unable to chart radio against sales, %w", err)
	}

	out := []components.Charter{radioSales}

	// Social_Media may be missing on fitted rows
	withSocial, err := a.data.DropMissingIn(dataset.ColSocialMedia)
	if err != nil {
		return nil, err
	}
	if withSocial.Len() > 0 {
		cols, err := withSocial.Columns([]string{dataset.ColRadio, dataset.ColSocialMedia, dataset.ColSales})
		if err != nil {
			return nil, err
		}
		socialSales, err := report.ScatterXY("Social Media vs Sales", dataset.ColSocialMedia, dataset.ColSales,
			cols[dataset.ColSocialMedia], cols[dataset.ColSales])
		if err != nil {
			return nil, fmt.Errorf("unable to chart social media against sales, %w", err)
		}
		radioSocial, err := report.ScatterXY("Radio vs Social Media", dataset.ColRadio, dataset.ColSocialMedia,
			cols[dataset.ColRadio], cols[dataset.ColSocialMedia])
		if err != nil {
			return nil, fmt.Errorf("unable to chart radio against social media, %w", err)
		}
		out = append(out, socialSales, radioSocial)
	}

	resid := a.model.Residuals()
	fvr, err := report.FittedVsResidual(a.model.FittedValues(), resid)
	if err != nil {
		return nil, err
	}
	hist, err := report.ResidualHistogram(resid, 0)
	if err != nil {
		return nil, err
	}
	qq, err := stats.QQPoints(resid)
	if err != nil {
		return nil, err
	}
	qqChart, err := report.QQPlot(qq)
	if err != nil {
		return nil, err
	}

	return append(out, fvr, hist, qqChart), nil
}

// Plot renders the analysis charts as an html page
func (a *Analysis) Plot(w io.Writer) error {
	charts, err := a.Charts()
	if err != nil {
		return err
	}
	return report.RenderPage(w, charts...)
}

// PlotFit uses the Apache Echarts library to generate an html file showing the sales
// relationships, the fit residuals and their normal Q-Q plot
func (a *Analysis) PlotFit(path string) error {
	charts, err := a.Charts()
	if err != nil {
		return err
	}
	return report.RenderFile(path, charts...)
}
