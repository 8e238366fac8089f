package linearmodel

import (
	"bytes"
	"math"
	"math/rand/v2"
	"testing"

	mat_ "github.com/aouyang1/go-salesreg/mat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestOLSOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt      *OLSOptions
		err      error
		expected *OLSOptions
	}{
		"nil": {nil, nil, NewDefaultOLSOptions()},
		"valid": {
			&OLSOptions{
				Alpha:         0.1,
				RankTolerance: 1e-8,
			}, nil,
			&OLSOptions{
				Alpha:         0.1,
				RankTolerance: 1e-8,
			},
		},
		"zero alpha": {
			&OLSOptions{Alpha: 0.0},
			ErrInvalidAlpha, nil,
		},
		"alpha of one": {
			&OLSOptions{Alpha: 1.0},
			ErrInvalidAlpha, nil,
		},
		"negative tolerance": {
			&OLSOptions{Alpha: 0.05, RankTolerance: -1},
			ErrNegativeTolerance, nil,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			opt, err := td.opt.Validate()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, opt)
		})
	}
}

func TestOLSRegression(t *testing.T) {
	// y = 2 + 3*x0 + 4*x1
	tol := 1e-6
	testData := map[string]struct {
		x    [][]float64
		y    []float64
		coef []float64
	}{
		"ols model with intercept column": {
			x: [][]float64{
				{1, 0, 0},
				{1, 3, 5},
				{1, 9, 20},
				{1, 12, 6},
				{1, 15, 10},
			},
			y:    []float64{2, 31, 109, 62, 87},
			coef: []float64{2.0, 3.0, 4.0},
		},
		"ols model without intercept column": {
			x: [][]float64{
				{1, 0},
				{3, 5},
				{9, 20},
				{12, 6},
				{15, 10},
			},
			y:    []float64{3, 29, 107, 60, 85},
			coef: []float64{3.0, 4.0},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			x, err := mat_.NewDenseFromArray(td.x)
			require.Nil(t, err)

			reg, err := NewOLSRegression(nil)
			require.Nil(t, err)

			model, err := reg.Fit(x, td.y)
			require.Nil(t, err)

			assert.InDeltaSlice(t, td.coef, model.Coef(), tol, "coefficients")
			assert.InDelta(t, 1.0, model.RSquared(), tol, "r-squared")

			res, err := model.Predict(x)
			require.Nil(t, err)
			assert.InDeltaSlice(t, td.y, res, tol, "predict")
		})
	}
}

func TestOLSRegressionInference(t *testing.T) {
	x, err := mat_.NewDenseFromArray([][]float64{
		{1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 5},
	})
	require.Nil(t, err)
	y := []float64{2.1, 3.9, 6.2, 7.8, 10.1}

	reg, err := NewOLSRegression(&OLSOptions{
		Alpha:         0.05,
		RankTolerance: DefaultRankTolerance,
		Labels:        []string{"Intercept", "x"},
	})
	require.Nil(t, err)

	model, err := reg.Fit(x, y)
	require.Nil(t, err)

	tol := 1e-6
	assert.InDeltaSlice(t, []float64{0.05, 1.99}, model.Coef(), tol, "coef")
	assert.InDeltaSlice(t, []float64{0.1980740602, 0.0597215762}, model.StdErr(), tol, "std err")
	assert.InDeltaSlice(t, []float64{0.2524308329, 33.3212906595}, model.TValues(), 1e-5, "t values")

	pValues := model.PValues()
	assert.InDelta(t, 0.8170151782, pValues[0], 1e-6, "intercept p-value")
	assert.InDelta(t, 5.9415391e-05, pValues[1], 1e-8, "slope p-value")

	ci := model.ConfInt()
	assert.InDelta(t, -0.5803600611, ci[0][0], 1e-6)
	assert.InDelta(t, 0.6803600611, ci[0][1], 1e-6)
	assert.InDelta(t, 1.7999392904, ci[1][0], 1e-6)
	assert.InDelta(t, 2.1800607096, ci[1][1], 1e-6)

	assert.Equal(t, 5, model.NObs())
	assert.Equal(t, 3, model.DF())
	assert.InDelta(t, 0.107, model.SSR(), tol)
	assert.InDelta(t, 0.107/3.0, model.Sigma2(), tol)
	assert.InDelta(t, 0.9973053289, model.RSquared(), tol)
	assert.InDelta(t, 0.9964071052, model.AdjRSquared(), tol)

	fStat, fProb := model.FStatistic()
	assert.InDelta(t, 1110.3084112, fStat, 1e-4)
	assert.InDelta(t, 5.9415391e-05, fProb, 1e-8)

	assert.InDelta(t, 2.5162182264, model.LogLikelihood(), tol)
	assert.InDelta(t, -1.0324364527, model.AIC(), tol)
	assert.InDelta(t, -1.8135606279, model.BIC(), tol)

	b, ok := model.Intercept()
	assert.True(t, ok)
	assert.InDelta(t, 0.05, b, tol)
	assert.InDelta(t, 1.99, model.Coefficients()["x"], tol)

	eq, err := model.ModelEq()
	require.Nil(t, err)
	assert.Equal(t, "y ~ 0.0500 + 1.9900*x", eq)
}

func TestOLSRegressionErrors(t *testing.T) {
	testData := map[string]struct {
		x   [][]float64
		y   []float64
		opt *OLSOptions
		err error
	}{
		"row mismatch": {
			x:   [][]float64{{1, 0}, {1, 1}, {1, 2}},
			y:   []float64{1, 2},
			err: ErrDimensionMismatch,
		},
		"empty target": {
			x:   [][]float64{{1, 0}, {1, 1}, {1, 2}},
			y:   nil,
			err: ErrNoTarget,
		},
		"zero residual degrees of freedom": {
			x:   [][]float64{{1, 0, 2}, {1, 1, 7}, {1, 2, 3}},
			y:   []float64{1, 2, 3},
			err: ErrInsufficientData,
		},
		"more columns than rows": {
			x:   [][]float64{{1, 0, 2}, {1, 1, 7}},
			y:   []float64{1, 2},
			err: ErrInsufficientData,
		},
		"duplicated column": {
			x: [][]float64{
				{1, 0, 0},
				{1, 3, 3},
				{1, 9, 9},
				{1, 12, 12},
				{1, 15, 15},
			},
			y:   []float64{2, 31, 109, 62, 87},
			err: ErrRankDeficient,
		},
		"scaled column": {
			x: [][]float64{
				{1, 0, 0},
				{1, 3, 6},
				{1, 9, 18},
				{1, 12, 24},
				{1, 15, 30},
			},
			y:   []float64{2, 31, 109, 62, 87},
			err: ErrRankDeficient,
		},
		"zero matrix": {
			x:   [][]float64{{0, 0}, {0, 0}, {0, 0}},
			y:   []float64{1, 2, 3},
			err: ErrRankDeficient,
		},
		"nan target": {
			x:   [][]float64{{1, 0}, {1, 1}, {1, 2}},
			y:   []float64{1, math.NaN(), 3},
			err: ErrNonFinite,
		},
		"inf design": {
			x:   [][]float64{{1, 0}, {1, math.Inf(1)}, {1, 2}},
			y:   []float64{1, 2, 3},
			err: ErrNonFinite,
		},
		"label mismatch": {
			x:   [][]float64{{1, 0}, {1, 1}, {1, 2}},
			y:   []float64{1, 2, 3},
			opt: &OLSOptions{Alpha: 0.05, Labels: []string{"Intercept"}},
			err: ErrFeatureLenMismatch,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			x, err := mat_.NewDenseFromArray(td.x)
			require.Nil(t, err)

			reg, err := NewOLSRegression(td.opt)
			require.Nil(t, err)

			model, err := reg.Fit(x, td.y)
			assert.ErrorIs(t, err, td.err)
			assert.Nil(t, model)
		})
	}

	var reg *OLSRegression
	_, err := reg.Fit(mat.NewDense(1, 1, nil), []float64{1})
	assert.ErrorIs(t, err, ErrNoOptions)

	reg, err = NewOLSRegression(nil)
	require.Nil(t, err)
	_, err = reg.Fit(nil, []float64{1})
	assert.ErrorIs(t, err, ErrNoDesignMatrix)
}

func TestOLSRegressionSalesRecovery(t *testing.T) {
	x, y := generateSalesData(4000, 1.0, 42)

	reg, err := NewOLSRegression(&OLSOptions{
		Alpha:  0.05,
		Labels: []string{"Intercept", "TV[T.Low]", "TV[T.Medium]", "Radio"},
	})
	require.Nil(t, err)

	model, err := reg.Fit(x, y)
	require.Nil(t, err)

	assert.InDeltaSlice(t, salesCoef, model.Coef(), 0.2, "coefficients")
	for i, p := range model.PValues() {
		assert.Less(t, p, 1e-6, "p-value of %s", model.Labels()[i])
	}
	for i, ci := range model.ConfInt() {
		assert.Less(t, ci[0], model.Coef()[i])
		assert.Greater(t, ci[1], model.Coef()[i])
	}
	assert.Greater(t, model.RSquared(), 0.99)
	assert.Less(t, model.AdjRSquared(), model.RSquared())
	assert.InDelta(t, 1.0, math.Sqrt(model.Sigma2()), 0.1)

	eq, err := model.ModelEq()
	require.Nil(t, err)
	assert.Contains(t, eq, "*TV[T.Low]")
	assert.Contains(t, eq, " - ")
}

func TestOLSRegressionResiduals(t *testing.T) {
	x, y := generateSalesData(500, 5.0, 7)

	reg, err := NewOLSRegression(nil)
	require.Nil(t, err)

	model, err := reg.Fit(x, y)
	require.Nil(t, err)

	for _, c := range model.Coef() {
		assert.False(t, math.IsNaN(c) || math.IsInf(c, 0))
	}

	resid := model.Residuals()
	assert.InDelta(t, 0.0, floats.Sum(resid), 1e-8, "residual sum with intercept")

	// y = X*beta + e
	reconstructed := model.FittedValues()
	floats.Add(reconstructed, resid)
	assert.InDeltaSlice(t, y, reconstructed, 1e-9)

	// accessors do not expose internal state
	resid[0] = 1e9
	assert.NotEqual(t, 1e9, model.Residuals()[0])
}

func TestOLSRegressionNestedRSquared(t *testing.T) {
	x, y := generateSalesData(300, 10.0, 3)
	rng := rand.New(rand.NewPCG(11, 12))

	reg, err := NewOLSRegression(nil)
	require.Nil(t, err)

	m, _ := x.Dims()
	prev := math.Inf(-1)
	for p := 1; p <= 4; p++ {
		sub := x.Slice(0, m, 0, p)
		model, err := reg.Fit(sub, y)
		require.Nil(t, err)
		assert.GreaterOrEqual(t, model.RSquared(), prev-1e-12, "predictors %d", p)
		prev = model.RSquared()
	}

	noise := make([]float64, m)
	for i := range noise {
		noise[i] = rng.NormFloat64()
	}
	extended := mat.NewDense(m, 5, nil)
	extended.Slice(0, m, 0, 4).(*mat.Dense).Copy(x)
	extended.SetCol(4, noise)

	model, err := reg.Fit(extended, y)
	require.Nil(t, err)
	assert.GreaterOrEqual(t, model.RSquared(), prev-1e-12, "noise predictor")
}

func TestOLSRegressionDeterministic(t *testing.T) {
	x, y := generateSalesData(200, 3.0, 5)

	reg, err := NewOLSRegression(nil)
	require.Nil(t, err)

	m1, err := reg.Fit(x, y)
	require.Nil(t, err)
	m2, err := reg.Fit(x, y)
	require.Nil(t, err)

	assert.Equal(t, m1.Summary(), m2.Summary())
}

func TestModelPredictErrors(t *testing.T) {
	x, y := generateSalesData(50, 1.0, 1)

	reg, err := NewOLSRegression(nil)
	require.Nil(t, err)
	model, err := reg.Fit(x, y)
	require.Nil(t, err)

	_, err = model.Predict(mat.NewDense(2, 3, nil))
	assert.ErrorIs(t, err, ErrFeatureLenMismatch)

	_, err = model.Predict(nil)
	assert.ErrorIs(t, err, ErrNoDesignMatrix)

	var empty *Model
	_, err = empty.Predict(x)
	assert.ErrorIs(t, err, ErrUnfitModel)
}

func TestModelTablePrint(t *testing.T) {
	x, y := generateSalesData(100, 1.0, 9)

	reg, err := NewOLSRegression(&OLSOptions{
		Alpha:  0.05,
		Labels: []string{"Intercept", "TV[T.Low]", "TV[T.Medium]", "Radio"},
	})
	require.Nil(t, err)
	model, err := reg.Fit(x, y)
	require.Nil(t, err)

	var buf bytes.Buffer
	require.Nil(t, model.TablePrint(&buf, "", "  ", 0))

	out := buf.String()
	assert.Contains(t, out, "OLS Regression Results:")
	assert.Contains(t, out, "Observations: 100")
	assert.Contains(t, out, "TV[T.Medium]")
	assert.Contains(t, out, "[0.025")
	assert.Contains(t, out, "0.975]")

	s := model.Summary()
	assert.Equal(t, 3, s.DFModel)
	assert.Equal(t, 96, s.DFResid)
	require.Len(t, s.Coefficients, 4)
	assert.Equal(t, "Radio", s.Coefficients[3].Label)
	require.NotNil(t, s.Scores)
	assert.InDelta(t, model.RSquared(), s.Scores.R2, 1e-9)
	assert.InDelta(t, model.SSR()/100.0, s.Scores.MSE, 1e-9)
	assert.Contains(t, out, "RMSE: ")
}

func BenchmarkOLSRegression(b *testing.B) {
	x, y := generateBenchData(1000, 100)

	reg, err := NewOLSRegression(nil)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := reg.Fit(x, y); err != nil {
			b.Error(err)
			continue
		}
	}
}
