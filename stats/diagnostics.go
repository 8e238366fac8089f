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
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	ErrNoResiduals    = errors.New("no residuals")
	ErrNegativeBins   = errors.New("negative number of histogram bins")
	ErrNoModel        = errors.New("no fitted model")
	ErrDesignMismatch = errors.New("design matrix does not match fitted model")
)

// Diagnostics tracks the residual checks behind the linear regression assumptions
type Diagnostics struct {
	// normality
	Skew       float64 `json:"skew"`
	Kurtosis   float64 `json:"kurtosis"`
	JarqueBera float64 `json:"jarque_bera"`
	JBProb     float64 `json:"jarque_bera_prob"`

	// independence
	DurbinWatson float64 `json:"durbin_watson"`

	// constant variance
	BreuschPagan     float64 `json:"breusch_pagan"`
	BreuschPaganProb float64 `json:"breusch_pagan_prob"`

	// Outliers indexes the residuals given to Diagnose
	Outliers []int `json:"outliers"`
}

// Diagnose runs the residual diagnostics of a fitted model against the design matrix it was fit with
func Diagnose(model *linearmodel.Model, x mat.Matrix, opt *OutlierOptions) (*Diagnostics, error) {
	if model == nil {
		return nil, ErrNoModel
	}
	if x == nil {
		return nil, linearmodel.ErrNoDesignMatrix
	}
	if opt == nil {
		opt = NewOutlierOptions()
	}
	resid := model.Residuals()
	m, n := x.Dims()
	if m != len(resid) || n != len(model.Coef()) {
		return nil, fmt.Errorf("design matrix is %dx%d for %d residuals and %d coefficients, %w",
			m, n, len(resid), len(model.Coef()), ErrDesignMismatch)
	}

	jb, jbProb, skew, kurt, err := JarqueBera(resid)
	if err != nil {
		return nil, err
	}
	dw, err := DurbinWatson(resid)
	if err != nil {
		return nil, err
	}
	bp, bpProb, err := BreuschPagan(resid, x)
	if err != nil {
		return nil, fmt.Errorf("unable to run breusch-pagan test, %w", err)
	}

	return &Diagnostics{
		Skew:             skew,
		Kurtosis:         kurt,
		JarqueBera:       jb,
		JBProb:           jbProb,
		DurbinWatson:     dw,
		BreuschPagan:     bp,
		BreuschPaganProb: bpProb,
		Outliers:         DetectOutliers(resid, opt.LowerPercentile, opt.UpperPercentile, opt.TukeyFactor),
	}, nil
}

// Skew returns the biased sample skewness m3/m2^1.5
func Skew(x []float64) float64 {
	m2 := stat.Moment(2, x, nil)
	m3 := stat.Moment(3, x, nil)
	return m3 / math.Pow(m2, 1.5)
}

// Kurtosis returns the biased sample kurtosis m4/m2^2. A normal distribution has kurtosis 3.
func Kurtosis(x []float64) float64 {
	m2 := stat.Moment(2, x, nil)
	m4 := stat.Moment(4, x, nil)
	return m4 / (m2 * m2)
}

// JarqueBera tests residual normality returning the statistic, its chi-squared(2) p-value, the
// skew and the kurtosis.
func JarqueBera(resid []float64) (float64, float64, float64, float64, error) {
	if len(resid) < 2 {
		return 0, 0, 0, 0, ErrNoResiduals
	}
	n := float64(len(resid))
	skew := Skew(resid)
	kurt := Kurtosis(resid)
	jb := n / 6.0 * (skew*skew + (kurt-3.0)*(kurt-3.0)/4.0)

	chi2 := distuv.ChiSquared{K: 2}
	return jb, chi2.Survival(jb), skew, kurt, nil
}

// DurbinWatson returns sum((e_t - e_t-1)^2) / sum(e_t^2). Values near 2 indicate no first order
// autocorrelation.
func DurbinWatson(resid []float64) (float64, error) {
	if len(resid) < 2 {
		return 0, ErrNoResiduals
	}
	diff := make([]float64, len(resid)-1)
	floats.SubTo(diff, resid[1:], resid[:len(resid)-1])
	return floats.Dot(diff, diff) / floats.Dot(resid, resid), nil
}

// BreuschPagan runs the studentized Breusch-Pagan test for heteroskedasticity by regressing the
// squared residuals on the design matrix. Returns the LM statistic n*R^2 and its chi-squared
// p-value with one degree of freedom per non-constant column.
func BreuschPagan(resid []float64, x mat.Matrix) (float64, float64, error) {
	if len(resid) == 0 {
		return 0, 0, ErrNoResiduals
	}
	if x == nil {
		return 0, 0, linearmodel.ErrNoDesignMatrix
	}

	design := mat.DenseCopyOf(x)
	if mat_.ConstCol(design, 1.0) < 0 {
		design = mat_.PrependOnes(design)
	}
	_, p := design.Dims()
	if p < 2 {
		return 0, 0, ErrMinimumFeatures
	}

	sq := make([]float64, len(resid))
	floats.MulTo(sq, resid, resid)

	reg, err := linearmodel.NewOLSRegression(nil)
	if err != nil {
		return 0, 0, err
	}
	aux, err := reg.Fit(design, sq)
	if err != nil {
		return 0, 0, err
	}

	lm := float64(len(resid)) * aux.RSquared()
	chi2 := distuv.ChiSquared{K: float64(p - 1)}
	return lm, chi2.Survival(lm), nil
}

// QQ holds normal quantile-quantile plot points along with the standardized reference line
// sample = Intercept + Slope*theoretical.
type QQ struct {
	Theoretical []float64 `json:"theoretical"`
	Sample      []float64 `json:"sample"`
	Slope       float64   `json:"slope"`
	Intercept   float64   `json:"intercept"`
}

// QQPoints pairs the sorted residuals with standard normal quantiles at plotting positions
// i/(n+1).
func QQPoints(resid []float64) (*QQ, error) {
	if len(resid) < 2 {
		return nil, ErrNoResiduals
	}
	n := len(resid)
	sample := make([]float64, n)
	copy(sample, resid)
	sort.Float64s(sample)

	theoretical := make([]float64, n)
	for i := 0; i < n; i++ {
		theoretical[i] = distuv.UnitNormal.Quantile(float64(i+1) / float64(n+1))
	}

	mean, std := stat.MeanStdDev(sample, nil)
	return &QQ{
		Theoretical: theoretical,
		Sample:      sample,
		Slope:       std,
		Intercept:   mean,
	}, nil
}

// Histogram bins x into equal width bins returning the bin dividers (len bins+1) and counts.
// If bins is 0 the Sturges rule is used.
func Histogram(x []float64, bins int) ([]float64, []float64, error) {
	if len(x) == 0 {
		return nil, nil, ErrNoResiduals
	}
	if bins < 0 {
		return nil, nil, ErrNegativeBins
	}
	if bins == 0 {
		bins = int(math.Ceil(math.Log2(float64(len(x))))) + 1
	}

	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	// the last divider is exclusive
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)
	return dividers, counts, nil
}
