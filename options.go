package salesreg

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-salesreg/dataset"
	"github.com/aouyang1/go-salesreg/linearmodel"
	"github.com/aouyang1/go-salesreg/stats"
)

const DefaultReference = "High"

var (
	ErrEmptyReference        = errors.New("reference level must be set")
	ErrNegativeOutlierPasses = errors.New("outlier passes must be non-negative")
)

// Options configures the sales analysis
type Options struct {
	// Reference is the TV tier every other tier is compared against
	Reference string `json:"reference" yaml:"reference"`

	// Alpha sets the significance level and the (1-Alpha) confidence intervals
	Alpha         float64 `json:"alpha" yaml:"alpha"`
	RankTolerance float64 `json:"rank_tolerance" yaml:"rank_tolerance"`

	// VIFPredictors are the continuous columns checked for multicollinearity
	VIFPredictors []string `json:"vif_predictors" yaml:"vif_predictors"`

	// VIFIntercept adds a constant to each auxiliary VIF regression. When false the
	// predictors are used as given and the VIF is based on the uncentered R^2.
	VIFIntercept bool `json:"vif_intercept" yaml:"vif_intercept"`

	OutlierOptions *stats.OutlierOptions `json:"outlier_options" yaml:"outlier_options"`

	// OutlierPasses is the number of refits excluding residual outliers. 0 fits once on every
	// complete observation.
	OutlierPasses int `json:"outlier_passes" yaml:"outlier_passes"`
}

// NewDefaultOptions returns the options of the reference marketing analysis
func NewDefaultOptions() *Options {
	return &Options{
		Reference:      DefaultReference,
		Alpha:          linearmodel.DefaultAlpha,
		RankTolerance:  linearmodel.DefaultRankTolerance,
		VIFPredictors:  []string{dataset.ColRadio, dataset.ColSocialMedia},
		OutlierOptions: stats.NewOutlierOptions(),
	}
}

// Validate returns the effective options, using defaults when nil
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}
	if o.Reference == "" {
		return nil, ErrEmptyReference
	}
	if o.OutlierPasses < 0 {
		return nil, fmt.Errorf("got %d, %w", o.OutlierPasses, ErrNegativeOutlierPasses)
	}
	if _, err := o.olsOptions(nil).Validate(); err != nil {
		return nil, err
	}
	if o.OutlierOptions == nil {
		o.OutlierOptions = stats.NewOutlierOptions()
	}
	return o, nil
}

func (o *Options) olsOptions(labels []string) *linearmodel.OLSOptions {
	return &linearmodel.OLSOptions{
		Alpha:         o.Alpha,
		RankTolerance: o.RankTolerance,
		Labels:        labels,
	}
}
