package linearmodel

import (
	"fmt"
	"math"

	mat_ "github.com/aouyang1/go-salesreg/mat"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	DefaultAlpha         = 0.05
	DefaultRankTolerance = 1e-10
)

// OLSOptions represents input options to run the OLS Regression
type OLSOptions struct {
	// Alpha sets the confidence level (1-Alpha) of the coefficient intervals
	Alpha float64

	// RankTolerance is the smallest allowed ratio between a diagonal entry of the QR R factor
	// and the largest diagonal entry before the design matrix is considered rank deficient.
	RankTolerance float64

	// Labels optionally names each design matrix column. When empty, columns are named x0..xN.
	Labels []string
}

// Validate runs basic validation on OLS options
func (o *OLSOptions) Validate() (*OLSOptions, error) {
	if o == nil {
		o = NewDefaultOLSOptions()
	}
	if o.Alpha <= 0 || o.Alpha >= 1 {
		return nil, fmt.Errorf("got %.4f, %w", o.Alpha, ErrInvalidAlpha)
	}
	if o.RankTolerance < 0 {
		return nil, ErrNegativeTolerance
	}
	return o, nil
}

// NewDefaultOLSOptions returns a default set of OLS Regression options
func NewDefaultOLSOptions() *OLSOptions {
	return &OLSOptions{
		Alpha:         DefaultAlpha,
		RankTolerance: DefaultRankTolerance,
	}
}

// OLSRegression computes ordinary least squares using QR factorization. It holds no fit
// state so a single instance may be shared across goroutines.
type OLSRegression struct {
	opt *OLSOptions
}

// NewOLSRegression initializes an ordinary least squares model ready for fitting
func NewOLSRegression(opt *OLSOptions) (*OLSRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &OLSRegression{
		opt: opt,
	}, nil
}

// Fit estimates the coefficients and inference statistics of y regressed on x. The design
// matrix is used as is so an intercept column must be included by the caller if desired.
func (o *OLSRegression) Fit(x mat.Matrix, y []float64) (*Model, error) {
	if o == nil || o.opt == nil {
		return nil, ErrNoOptions
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	if len(y) == 0 {
		return nil, ErrNoTarget
	}

	n, p := x.Dims()
	if len(y) != n {
		return nil, fmt.Errorf("design matrix has %d rows and target has %d rows, %w", n, len(y), ErrDimensionMismatch)
	}
	if !mat_.AllFinite(x) {
		return nil, fmt.Errorf("design matrix, %w", ErrNonFinite)
	}
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("target at row %d, %w", i, ErrNonFinite)
		}
	}

	labels, err := o.labels(p)
	if err != nil {
		return nil, err
	}

	df := n - p
	if df <= 0 {
		return nil, fmt.Errorf("%d observations for %d coefficients, %w", n, p, ErrInsufficientData)
	}

	qr := new(mat.QR)
	qr.Factorize(x)

	r := new(mat.Dense)
	qr.RTo(r)
	if err := checkRank(r, p, o.opt.RankTolerance); err != nil {
		return nil, err
	}

	rTri := mat.NewTriDense(p, mat.Upper, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			rTri.SetTri(i, j, r.At(i, j))
		}
	}

	// (X'X)^-1 = R^-1 * R^-T so the normal equations are never formed
	rInv := new(mat.TriDense)
	if err := rInv.InverseTri(rTri); err != nil {
		return nil, fmt.Errorf("unable to invert R factor, %v, %w", err, ErrRankDeficient)
	}
	xtxInv := new(mat.Dense)
	xtxInv.Mul(rInv, rInv.T())

	yCopy := make([]float64, n)
	copy(yCopy, y)
	yVec := mat.NewVecDense(n, yCopy)

	beta := new(mat.VecDense)
	if err := qr.SolveVecTo(beta, false, yVec); err != nil {
		return nil, fmt.Errorf("unable to solve least squares, %v, %w", err, ErrRankDeficient)
	}

	fittedVec := new(mat.VecDense)
	fittedVec.MulVec(x, beta)

	coef := make([]float64, p)
	for j := 0; j < p; j++ {
		coef[j] = beta.AtVec(j)
	}
	fitted := make([]float64, n)
	for i := 0; i < n; i++ {
		fitted[i] = fittedVec.AtVec(i)
	}
	resid := make([]float64, n)
	floats.SubTo(resid, yCopy, fitted)

	m := &Model{
		labels:    labels,
		coef:      coef,
		fitted:    fitted,
		resid:     resid,
		y:         yCopy,
		nObs:      n,
		df:        df,
		alpha:     o.opt.Alpha,
		intercept: mat_.ConstCol(x, 1.0),
		condNum:   mat.Cond(x, 2),
	}
	m.computeStats(xtxInv)
	return m, nil
}

func (o *OLSRegression) labels(p int) ([]string, error) {
	if len(o.opt.Labels) == 0 {
		labels := make([]string, p)
		for i := 0; i < p; i++ {
			labels[i] = fmt.Sprintf("x%d", i)
		}
		return labels, nil
	}
	if len(o.opt.Labels) != p {
		return nil, fmt.Errorf("got %d labels for %d design matrix columns, %w", len(o.opt.Labels), p, ErrFeatureLenMismatch)
	}
	labels := make([]string, p)
	copy(labels, o.opt.Labels)
	return labels, nil
}

// checkRank inspects the diagonal of the R factor. A column that is a linear combination of
// the preceding columns leaves a diagonal entry that is zero up to rounding.
func checkRank(r mat.Matrix, p int, tol float64) error {
	maxDiag := 0.0
	for i := 0; i < p; i++ {
		maxDiag = math.Max(maxDiag, math.Abs(r.At(i, i)))
	}
	if maxDiag == 0 {
		return fmt.Errorf("all design matrix columns are zero, %w", ErrRankDeficient)
	}
	for j := 0; j < p; j++ {
		if math.Abs(r.At(j, j)) <= tol*maxDiag {
			return fmt.Errorf("column %d is linearly dependent on preceding columns, %w", j, ErrRankDeficient)
		}
	}
	return nil
}

func (m *Model) computeStats(xtxInv mat.Matrix) {
	n := float64(m.nObs)
	df := float64(m.df)
	p := len(m.coef)

	m.ssRes = floats.Dot(m.resid, m.resid)
	yMean := stat.Mean(m.y, nil)
	for _, v := range m.y {
		m.ssTot += (v - yMean) * (v - yMean)
	}

	m.r2 = 1.0 - m.ssRes/m.ssTot
	if math.IsNaN(m.r2) {
		m.r2 = 1.0
	}
	m.adjR2 = 1.0 - (1.0-m.r2)*(n-1.0)/df
	m.sigma2 = m.ssRes / df

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	tCrit := tDist.Quantile(1.0 - m.alpha/2.0)

	m.stdErr = make([]float64, p)
	m.tValues = make([]float64, p)
	m.pValues = make([]float64, p)
	m.confInt = make([][2]float64, p)
	for j := 0; j < p; j++ {
		se := math.Sqrt(m.sigma2 * xtxInv.At(j, j))
		tVal := m.coef[j] / se

		m.stdErr[j] = se
		m.tValues[j] = tVal
		m.pValues[j] = twoSidedP(tDist, tVal)
		m.confInt[j] = [2]float64{m.coef[j] - tCrit*se, m.coef[j] + tCrit*se}
	}

	m.fStat = math.NaN()
	m.fProb = math.NaN()
	k := float64(p - 1)
	if m.intercept >= 0 && k > 0 {
		m.fStat = ((m.ssTot - m.ssRes) / k) / (m.ssRes / df)
		if math.IsInf(m.fStat, 1) {
			m.fProb = 0
		} else {
			fDist := distuv.F{D1: k, D2: df}
			m.fProb = fDist.Survival(m.fStat)
		}
	}

	m.logLike = -n / 2.0 * (math.Log(2.0*math.Pi) + math.Log(m.ssRes/n) + 1.0)
	m.aic = -2.0*m.logLike + 2.0*float64(p)
	m.bic = -2.0*m.logLike + float64(p)*math.Log(n)
}

func twoSidedP(dist distuv.StudentsT, tVal float64) float64 {
	switch {
	case math.IsNaN(tVal):
		return math.NaN()
	case math.IsInf(tVal, 0):
		return 0.0
	}
	return 2.0 * dist.Survival(math.Abs(tVal))
}
