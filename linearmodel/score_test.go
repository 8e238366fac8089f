package linearmodel

import (
	"math"
	"testing"

	mat_ "github.com/aouyang1/go-salesreg/mat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelScores(t *testing.T) {
	testData := map[string]struct {
		x        [][]float64
		y        []float64
		expected *Scores
	}{
		"exact line": {
			[][]float64{{1, 1}, {1, 2}, {1, 3}},
			[]float64{3, 5, 7},
			&Scores{MSE: 0, RMSE: 0, MAE: 0, MAPE: 0, R2: 1},
		},
		"noisy line": {
			[][]float64{{1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 5}},
			[]float64{2.1, 3.9, 6.2, 7.8, 10.1},
			&Scores{
				MSE:  0.0214,
				RMSE: math.Sqrt(0.0214),
				MAE:  0.136,
				MAPE: (0.06/2.1 + 0.13/3.9 + 0.18/6.2 + 0.21/7.8 + 0.10/10.1) / 5.0,
				R2:   0.9973053289,
			},
		},
		"zero target left out of mape": {
			[][]float64{{1, 0}, {1, 1}, {1, 2}},
			[]float64{0, 2, 4},
			&Scores{MSE: 0, RMSE: 0, MAE: 0, MAPE: 0, R2: 1},
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

			scores, err := model.Scores()
			require.Nil(t, err)
			assert.InDelta(t, td.expected.MSE, scores.MSE, 1e-6, "mse")
			assert.InDelta(t, td.expected.RMSE, scores.RMSE, 1e-6, "rmse")
			assert.InDelta(t, td.expected.MAE, scores.MAE, 1e-6, "mae")
			assert.InDelta(t, td.expected.MAPE, scores.MAPE, 1e-6, "mape")
			assert.InDelta(t, td.expected.R2, scores.R2, 1e-6, "r2")
			assert.InDelta(t, model.SSR()/float64(model.NObs()), scores.MSE, 1e-12)
		})
	}
}

func TestModelScoresUnfit(t *testing.T) {
	var m *Model
	_, err := m.Scores()
	assert.ErrorIs(t, err, ErrUnfitModel)

	_, err = (&Model{}).Scores()
	assert.ErrorIs(t, err, ErrUnfitModel)
}
