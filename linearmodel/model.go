package linearmodel

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Model is the immutable result of an OLS fit. All accessors return copies.
type Model struct {
	labels []string
	coef   []float64
	fitted []float64
	resid  []float64
	y      []float64

	nObs      int
	df        int
	alpha     float64
	intercept int // index of the constant column, -1 if none

	stdErr  []float64
	tValues []float64
	pValues []float64
	confInt [][2]float64

	ssRes   float64
	ssTot   float64
	sigma2  float64
	r2      float64
	adjR2   float64
	fStat   float64
	fProb   float64
	logLike float64
	aic     float64
	bic     float64
	condNum float64
}

func copyFloats(src []float64) []float64 {
	dst := make([]float64, len(src))
	copy(dst, src)
	return dst
}

// Labels returns the design matrix column names in coefficient order
func (m *Model) Labels() []string {
	if m == nil {
		return nil
	}
	labels := make([]string, len(m.labels))
	copy(labels, m.labels)
	return labels
}

// Coef returns a slice of the trained coefficients in the same order of the design matrix columns.
func (m *Model) Coef() []float64 {
	if m == nil {
		return nil
	}
	return copyFloats(m.coef)
}

// Coefficients returns the coefficients keyed by column label
func (m *Model) Coefficients() map[string]float64 {
	if m == nil {
		return nil
	}
	coef := make(map[string]float64, len(m.coef))
	for i, label := range m.labels {
		coef[label] = m.coef[i]
	}
	return coef
}

// Intercept returns the coefficient of the constant column and whether one was present
func (m *Model) Intercept() (float64, bool) {
	if m == nil || m.intercept < 0 {
		return 0.0, false
	}
	return m.coef[m.intercept], true
}

// StdErr returns the standard error of each coefficient
func (m *Model) StdErr() []float64 {
	return copyFloats(m.stdErr)
}

// TValues returns coef/stderr for each coefficient
func (m *Model) TValues() []float64 {
	return copyFloats(m.tValues)
}

// PValues returns the two-sided Student-t p-value of each coefficient
func (m *Model) PValues() []float64 {
	return copyFloats(m.pValues)
}

// ConfInt returns the lower and upper bound of the (1-alpha) confidence interval per coefficient
func (m *Model) ConfInt() [][2]float64 {
	ci := make([][2]float64, len(m.confInt))
	copy(ci, m.confInt)
	return ci
}

// Residuals returns y - X*beta for every training observation
func (m *Model) Residuals() []float64 {
	return copyFloats(m.resid)
}

// FittedValues returns X*beta for every training observation
func (m *Model) FittedValues() []float64 {
	return copyFloats(m.fitted)
}

// Target returns the training target values
func (m *Model) Target() []float64 {
	return copyFloats(m.y)
}

// NObs returns the number of training observations
func (m *Model) NObs() int {
	return m.nObs
}

// DF returns the residual degrees of freedom, n - p
func (m *Model) DF() int {
	return m.df
}

func (m *Model) Alpha() float64 {
	return m.alpha
}

// Sigma2 returns the residual variance estimate SSR/DF
func (m *Model) Sigma2() float64 {
	return m.sigma2
}

// SSR returns the residual sum of squares
func (m *Model) SSR() float64 {
	return m.ssRes
}

func (m *Model) RSquared() float64 {
	return m.r2
}

func (m *Model) AdjRSquared() float64 {
	return m.adjR2
}

// LogLikelihood returns the gaussian log-likelihood of the fit
func (m *Model) LogLikelihood() float64 {
	return m.logLike
}

func (m *Model) AIC() float64 {
	return m.aic
}

func (m *Model) BIC() float64 {
	return m.bic
}

// CondNumber returns the 2-norm condition number of the design matrix
func (m *Model) CondNumber() float64 {
	return m.condNum
}

// FStatistic returns the overall regression F statistic and its p-value. Both are NaN when
// the design matrix has no constant column or only the constant column.
func (m *Model) FStatistic() (float64, float64) {
	return m.fStat, m.fProb
}

// Predict applies the fitted coefficients to a design matrix with the same column layout as
// the training design matrix.
func (m *Model) Predict(x mat.Matrix) ([]float64, error) {
	if m == nil || len(m.coef) == 0 {
		return nil, ErrUnfitModel
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	_, n := x.Dims()
	if n != len(m.coef) {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", n, len(m.coef), ErrFeatureLenMismatch)
	}

	coefVec := mat.NewVecDense(n, copyFloats(m.coef))

	var res mat.VecDense
	res.MulVec(x, coefVec)
	return res.RawVector().Data, nil
}

// ModelEq returns a string representation of the fit model represented as
// y ~ b + m1*x1 + m2*x2 ...
func (m *Model) ModelEq() (string, error) {
	if m == nil || len(m.coef) == 0 {
		return "", ErrUnfitModel
	}

	var sb strings.Builder
	sb.WriteString("y ~ ")
	first := true
	if b, ok := m.Intercept(); ok {
		sb.WriteString(fmt.Sprintf("%.4f", b))
		first = false
	}
	for i, label := range m.labels {
		if i == m.intercept {
			continue
		}
		w := m.coef[i]
		switch {
		case first:
			sb.WriteString(fmt.Sprintf("%.4f*%s", w, label))
		case math.Signbit(w):
			sb.WriteString(fmt.Sprintf(" - %.4f*%s", -w, label))
		default:
			sb.WriteString(fmt.Sprintf(" + %.4f*%s", w, label))
		}
		first = false
	}
	return sb.String(), nil
}
