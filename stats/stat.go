package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/aouyang1/go-salesreg/linearmodel"
	mat_ "github.com/aouyang1/go-salesreg/mat"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// CollinearityTolerance is the smallest unexplained share of an auxiliary regression before a
// predictor is treated as an exact linear combination of the others.
const CollinearityTolerance = 1e-12

var (
	ErrMinimumFeatures     = errors.New("need at least 2 features to compute VIF")
	ErrFeatureLenMismatch  = errors.New("some feature length is not consistent")
	ErrUnknownFeature      = errors.New("unknown feature")
	ErrColumnOutOfBounds   = errors.New("column is out of bounds")
	ErrPerfectCollinearity = errors.New("predictor is an exact linear combination of the other predictors")
)

// OutlierOptions configures residual outlier detection using percentile based Tukey fences
type OutlierOptions struct {
	UpperPercentile float64
	LowerPercentile float64
	TukeyFactor     float64
}

// NewOutlierOptions returns the default outlier fence settings
func NewOutlierOptions() *OutlierOptions {
	return &OutlierOptions{
		UpperPercentile: 0.9,
		LowerPercentile: 0.1,
		TukeyFactor:     1.0,
	}
}

// DetectOutliers returns the indexes of y lying strictly outside the fences built from the lower
// and upper percentiles widened by tukeyFactor times the inner range.
func DetectOutliers(y []float64, lowerPerc, upperPerc, tukeyFactor float64) []int {
	if len(y) == 0 {
		return nil
	}
	lowerPerc = math.Max(lowerPerc, 0.0)
	upperPerc = math.Min(upperPerc, 1.0)
	tukeyFactor = math.Max(tukeyFactor, 0.0)

	yCopy := make([]float64, len(y))
	copy(yCopy, y)
	sort.Float64s(yCopy)
	lowerIdx := int(math.Floor(float64(len(yCopy)) * lowerPerc))
	upperIdx := int(math.Ceil(float64(len(yCopy)) * upperPerc))
	lowerIdx = min(lowerIdx, len(yCopy)-1)
	upperIdx = min(upperIdx, len(yCopy)-1)

	lower := yCopy[lowerIdx]
	upper := yCopy[upperIdx]
	innerRange := upper - lower
	lower -= innerRange * tukeyFactor
	upper += innerRange * tukeyFactor

	var outlierIdx []int
	for i := 0; i < len(y); i++ {
		if y[i] > upper || y[i] < lower {
			outlierIdx = append(outlierIdx, i)
		}
	}
	return outlierIdx
}

// VarianceInflationFactor regresses column j of the predictor matrix on all the other predictor
// columns and returns the reciprocal of the auxiliary regression's unexplained share of column j.
// With intercept set the auxiliary regression gets a constant and the share is 1 - R^2. Without it
// the columns are used as given and the share is SSR over the raw sum of squares of column j, the
// uncentered 1 - R^2. The predictor matrix must not contain a constant column.
func VarianceInflationFactor(x mat.Matrix, j int, intercept bool) (float64, error) {
	if x == nil {
		return 0.0, linearmodel.ErrNoDesignMatrix
	}
	_, n := x.Dims()
	if n < 2 {
		return 0.0, ErrMinimumFeatures
	}
	if j < 0 || j >= n {
		return 0.0, fmt.Errorf("column %d of %d, %w", j, n, ErrColumnOutOfBounds)
	}

	target := mat.Col(nil, j, x)
	others, err := mat_.WithoutCol(x, j)
	if err != nil {
		return 0.0, err
	}

	reg, err := linearmodel.NewOLSRegression(nil)
	if err != nil {
		return 0.0, err
	}
	var design mat.Matrix = others
	if intercept {
		design = mat_.PrependOnes(others)
	}
	aux, err := reg.Fit(design, target)
	if err != nil {
		if errors.Is(err, linearmodel.ErrRankDeficient) {
			return 0.0, fmt.Errorf("column %d, %v, %w", j, err, ErrPerfectCollinearity)
		}
		return 0.0, fmt.Errorf("unable to fit auxiliary regression for column %d, %w", j, err)
	}

	var tolerance float64
	if intercept {
		tolerance = 1.0 - aux.RSquared()
	} else if ss := floats.Dot(target, target); ss > 0 {
		tolerance = aux.SSR() / ss
	}
	if tolerance <= CollinearityTolerance {
		return 0.0, fmt.Errorf("column %d has auxiliary tolerance %.3g, %w", j, tolerance, ErrPerfectCollinearity)
	}
	return 1.0 / tolerance, nil
}

// VIFReport computes the variance inflation factor of each named feature against the other named
// features. If names is empty all features are used.
func VIFReport(features map[string][]float64, names []string, intercept bool) (map[string]float64, error) {
	if len(names) == 0 {
		names = make([]string, 0, len(features))
		for name := range features {
			names = append(names, name)
		}
		sort.Strings(names)
	}
	if len(names) < 2 {
		return nil, ErrMinimumFeatures
	}

	cols := make([][]float64, 0, len(names))
	for _, name := range names {
		feature, exists := features[name]
		if !exists {
			return nil, fmt.Errorf("%s, %w", name, ErrUnknownFeature)
		}
		cols = append(cols, feature)
	}
	x, err := mat_.NewDenseFromColumns(cols)
	if err != nil {
		return nil, fmt.Errorf("%v, %w", err, ErrFeatureLenMismatch)
	}

	vif := make(map[string]float64, len(names))
	for j, name := range names {
		v, err := VarianceInflationFactor(x, j, intercept)
		if err != nil {
			return nil, fmt.Errorf("feature %s, %w", name, err)
		}
		vif[name] = v
	}
	return vif, nil
}
