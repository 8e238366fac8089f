// Package report renders the fitted sales model as echarts html pages and json summaries.
package report

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/aouyang1/go-salesreg/stats"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var (
	ErrLenMismatch = errors.New("series lengths do not match")
	ErrNoData      = errors.New("no data to chart")
)

func newScatter(title, xName, yName string) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
		charts.WithXAxisOpts(
			opts.XAxis{
				Name: xName,
				Type: "value",
			},
		),
		charts.WithYAxisOpts(
			opts.YAxis{
				Name: yName,
				Type: "value",
			},
		),
	)
	return scatter
}

func scatterData(x, y []float64) []opts.ScatterData {
	data := make([]opts.ScatterData, 0, len(x))
	for i := 0; i < len(x); i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		data = append(data, opts.ScatterData{Value: []float64{x[i], y[i]}})
	}
	return data
}

func referenceLine(name string, x []float64, intercept, slope float64) *charts.Line {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	line := charts.NewLine()
	line.AddSeries(name, []opts.LineData{
		{Value: []float64{lo, intercept + slope*lo}},
		{Value: []float64{hi, intercept + slope*hi}},
	})
	return line
}

// ScatterXY generates an echart scatter chart of y against x. Pairs with a NaN value are skipped.
func ScatterXY(title, xName, yName string, x, y []float64) (*charts.Scatter, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("x has %d values and y has %d, %w", len(x), len(y), ErrLenMismatch)
	}
	data := scatterData(x, y)
	if len(data) == 0 {
		return nil, ErrNoData
	}
	scatter := newScatter(title, xName, yName)
	scatter.AddSeries(yName, data)
	return scatter, nil
}

// ScatterByGroup generates one scatter series per distinct group value such as Radio against
// Sales split by TV tier. Series are ordered by group name.
func ScatterByGroup(title, xName, yName string, groups []string, x, y []float64) (*charts.Scatter, error) {
	if len(x) != len(y) || len(groups) != len(x) {
		return nil, fmt.Errorf("groups=%d, x=%d, y=%d, %w", len(groups), len(x), len(y), ErrLenMismatch)
	}
	if len(x) == 0 {
		return nil, ErrNoData
	}

	gx := make(map[string][]float64)
	gy := make(map[string][]float64)
	for i, g := range groups {
		gx[g] = append(gx[g], x[i])
		gy[g] = append(gy[g], y[i])
	}
	names := make([]string, 0, len(gx))
	for g := range gx {
		names = append(names, g)
	}
	sort.Strings(names)

	scatter := newScatter(title, xName, yName)
	for _, g := range names {
		scatter.AddSeries(g, scatterData(gx[g], gy[g]))
	}
	return scatter, nil
}

// ResidualHistogram generates a bar chart of the residual distribution. If bins is 0 the
// Sturges rule is used.
func ResidualHistogram(resid []float64, bins int) (*charts.Bar, error) {
	dividers, counts, err := stats.Histogram(resid, bins)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(counts))
	barData := make([]opts.BarData, len(counts))
	for i, c := range counts {
		labels[i] = fmt.Sprintf("%.2f", (dividers[i]+dividers[i+1])/2.0)
		barData[i] = opts.BarData{Value: c}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Residual Histogram",
			},
		),
		charts.WithXAxisOpts(
			opts.XAxis{
				Name: "Residual",
			},
		),
		charts.WithYAxisOpts(
			opts.YAxis{
				Name: "Count",
			},
		),
	)
	bar.SetXAxis(labels).
		AddSeries("Residuals", barData)
	return bar, nil
}

// QQPlot generates a normal Q-Q scatter of the residuals along with the reference line
func QQPlot(qq *stats.QQ) (*charts.Scatter, error) {
	if qq == nil || len(qq.Sample) == 0 {
		return nil, ErrNoData
	}
	scatter, err := ScatterXY("Normal Q-Q", "Theoretical Quantiles", "Sample Quantiles", qq.Theoretical, qq.Sample)
	if err != nil {
		return nil, err
	}
	scatter.Overlap(referenceLine("Reference", qq.Theoretical, qq.Intercept, qq.Slope))
	return scatter, nil
}

// FittedVsResidual generates the residual against fitted value scatter with a zero line
func FittedVsResidual(fitted, resid []float64) (*charts.Scatter, error) {
	scatter, err := ScatterXY("Fitted vs Residual", "Fitted Value", "Residual", fitted, resid)
	if err != nil {
		return nil, err
	}
	scatter.Overlap(referenceLine("Zero", fitted, 0.0, 0.0))
	return scatter, nil
}
