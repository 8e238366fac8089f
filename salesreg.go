// Package salesreg fits and explains the marketing sales regression
// Sales ~ C(TV, reference=High) + Radio.
//
// Analyze sequences the analysis: group means are summarized, observations missing a model
// column are dropped, the TV tier is treatment encoded against the reference tier, the design
// matrix is fit with ordinary least squares, the residual assumptions are checked and the
// multicollinearity of the continuous predictors is measured.
package salesreg

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aouyang1/go-salesreg/dataset"
	"github.com/aouyang1/go-salesreg/feature"
	"github.com/aouyang1/go-salesreg/linearmodel"
	"github.com/aouyang1/go-salesreg/stats"

	"gonum.org/v1/gonum/mat"
)

// modelColumns are the columns an observation needs to take part in the fit
var modelColumns = []string{dataset.ColTV, dataset.ColRadio, dataset.ColSales}

var (
	ErrNoDataset            = errors.New("no dataset provided")
	ErrInsufficientResidual = errors.New("insufficient observations after outlier removal")
)

// Analysis holds the fitted sales model and every derived summary. It is read only once
// returned by Analyze.
type Analysis struct {
	opt *Options

	data            *dataset.Dataset
	dropped         int
	tvMeans         []dataset.Group
	influencerMeans []dataset.Group

	tv       *feature.Categorical
	labels   *feature.Labels
	x        *mat.Dense
	y        []float64
	radio    []float64
	tiers    []string
	excluded []int

	model       *linearmodel.Model
	diagnostics *stats.Diagnostics
	vif         map[string]float64
}

// Analyze runs the sales regression over the dataset. If no options are provided the
// defaults with High as the reference tier are used.
func Analyze(ds *dataset.Dataset, opt *Options) (*Analysis, error) {
	if ds == nil {
		return nil, ErrNoDataset
	}
	opt, err := opt.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid options, %w", err)
	}

	a := &Analysis{opt: opt}

	// group means skip missing values per column so they see every observation
	a.tvMeans = ds.GroupMean(dataset.ByTV)
	a.influencerMeans = ds.GroupMean(dataset.ByInfluencer)

	a.data, err = ds.DropMissingIn(modelColumns...)
	if err != nil {
		return nil, err
	}
	a.dropped = ds.Len() - a.data.Len()
	slog.Debug("dropped incomplete observations", "dropped", a.dropped, "remaining", a.data.Len())
	if a.data.Len() == 0 {
		return nil, fmt.Errorf("all %d observations are missing %v, %w", ds.Len(), modelColumns, dataset.ErrNoObservations)
	}

	if err := a.buildDesign(); err != nil {
		return nil, err
	}
	slog.Debug("built design matrix", "rows", len(a.y), "labels", a.labels.Strings())

	if err := a.fit(); err != nil {
		return nil, err
	}
	slog.Debug("fit sales model", "r_squared", a.model.RSquared(), "excluded", len(a.excluded))

	xFit, _ := a.fitRows()
	a.diagnostics, err = stats.Diagnose(a.model, xFit, opt.OutlierOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to run residual diagnostics, %w", err)
	}
	a.diagnostics.Outliers = a.datasetIndexes(a.diagnostics.Outliers)

	if len(opt.VIFPredictors) > 0 {
		// predictors are checked on their own complete rows, independent of the model columns
		vifData, err := ds.DropMissingIn(opt.VIFPredictors...)
		if err != nil {
			return nil, fmt.Errorf("unable to select vif predictors %v, %w", opt.VIFPredictors, err)
		}
		cols, err := vifData.Columns(opt.VIFPredictors)
		if err != nil {
			return nil, fmt.Errorf("unable to select vif predictors %v, %w", opt.VIFPredictors, err)
		}
		a.vif, err = stats.VIFReport(cols, opt.VIFPredictors, opt.VIFIntercept)
		if err != nil {
			return nil, fmt.Errorf("unable to compute variance inflation factors, %w", err)
		}
		slog.Debug("computed variance inflation factors", "vif", a.vif)
	}
	return a, nil
}

func (a *Analysis) buildDesign() error {
	tiers := a.data.TV()
	tv, err := feature.OneHot(dataset.ColTV, tiers, a.opt.Reference)
	if err != nil {
		return fmt.Errorf("unable to encode tv tier, %w", err)
	}
	radio, err := a.data.Column(dataset.ColRadio)
	if err != nil {
		return err
	}
	y, err := a.data.Column(dataset.ColSales)
	if err != nil {
		return err
	}

	set := feature.NewSet()
	if err := set.AddCategorical(tv); err != nil {
		return err
	}
	if err := set.Add(feature.NewContinuous(dataset.ColRadio), radio); err != nil {
		return err
	}
	x, err := set.Matrix(true)
	if err != nil {
		return err
	}

	a.tv = tv
	a.labels = set.Labels(true)
	a.x = x
	a.y = y
	a.radio = radio
	a.tiers = tiers
	return nil
}

// fit estimates the model, optionally refitting without residual outliers
func (a *Analysis) fit() error {
	reg, err := linearmodel.NewOLSRegression(a.opt.olsOptions(a.labels.Strings()))
	if err != nil {
		return err
	}

	for i := 0; i <= a.opt.OutlierPasses; i++ {
		x, y := a.fitRows()
		a.model, err = reg.Fit(x, y)
		if err != nil {
			return fmt.Errorf("unable to fit sales model, %w", err)
		}
		if i == a.opt.OutlierPasses {
			break
		}

		outlierIdxs := stats.DetectOutliers(
			a.model.Residuals(),
			a.opt.OutlierOptions.LowerPercentile,
			a.opt.OutlierOptions.UpperPercentile,
			a.opt.OutlierOptions.TukeyFactor,
		)
		// no more outliers detected with outlier options so break early
		if len(outlierIdxs) == 0 {
			break
		}
		rows := a.keptRows()
		for _, idx := range outlierIdxs {
			a.excluded = append(a.excluded, rows[idx])
		}
		slog.Debug("excluding residual outliers", "pass", i, "outliers", len(outlierIdxs))

		_, p := a.x.Dims()
		if len(a.keptRows()) <= p {
			return fmt.Errorf("%d observations left for %d coefficients, %w", len(a.keptRows()), p, ErrInsufficientResidual)
		}
	}
	return nil
}

// keptRows returns the observation indexes that are not excluded as outliers
func (a *Analysis) keptRows() []int {
	excluded := make(map[int]struct{}, len(a.excluded))
	for _, idx := range a.excluded {
		excluded[idx] = struct{}{}
	}
	rows := make([]int, 0, len(a.y)-len(excluded))
	for i := range a.y {
		if _, exists := excluded[i]; !exists {
			rows = append(rows, i)
		}
	}
	return rows
}

// datasetIndexes maps indexes into the fitted rows back to indexes into Dataset
func (a *Analysis) datasetIndexes(fitIdxs []int) []int {
	if len(fitIdxs) == 0 {
		return fitIdxs
	}
	rows := a.keptRows()
	idxs := make([]int, len(fitIdxs))
	for i, idx := range fitIdxs {
		idxs[i] = rows[idx]
	}
	return idxs
}

// fitRows returns the design matrix and target restricted to the kept rows
func (a *Analysis) fitRows() (*mat.Dense, []float64) {
	if len(a.excluded) == 0 {
		return a.x, a.y
	}
	rows := a.keptRows()
	_, p := a.x.Dims()
	x := mat.NewDense(len(rows), p, nil)
	y := make([]float64, len(rows))
	for i, idx := range rows {
		x.SetRow(i, a.x.RawRowView(idx))
		y[i] = a.y[idx]
	}
	return x, y
}

// Model returns the fitted regression model
func (a *Analysis) Model() *linearmodel.Model {
	return a.model
}

// Diagnostics returns the residual assumption checks. Its outliers are indexes into Dataset,
// like Excluded.
func (a *Analysis) Diagnostics() *stats.Diagnostics {
	d := *a.diagnostics
	d.Outliers = append([]int(nil), a.diagnostics.Outliers...)
	return &d
}

// VIF returns the variance inflation factor of each configured predictor
func (a *Analysis) VIF() map[string]float64 {
	vif := make(map[string]float64, len(a.vif))
	for k, v := range a.vif {
		vif[k] = v
	}
	return vif
}

func (a *Analysis) TVMeans() []dataset.Group {
	return append([]dataset.Group(nil), a.tvMeans...)
}

func (a *Analysis) InfluencerMeans() []dataset.Group {
	return append([]dataset.Group(nil), a.influencerMeans...)
}

// Labels returns the design matrix column labels
func (a *Analysis) Labels() []string {
	return a.labels.Strings()
}

// Design returns a copy of the full design matrix before any outlier exclusion
func (a *Analysis) Design() *mat.Dense {
	return mat.DenseCopyOf(a.x)
}

// Dataset returns the observations the model was built from. Each is complete in the model
// columns while Social_Media and Influencer may still be missing.
func (a *Analysis) Dataset() *dataset.Dataset {
	return dataset.New(a.data.Observations())
}

// Dropped returns the number of observations missing a model column removed before fitting
func (a *Analysis) Dropped() int {
	return a.dropped
}

// Excluded returns the indexes into Dataset of the observations removed as outliers
func (a *Analysis) Excluded() []int {
	return append([]int(nil), a.excluded...)
}

func (a *Analysis) Options() Options {
	return *a.opt
}
