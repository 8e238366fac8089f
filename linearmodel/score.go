package linearmodel

import "math"

// Scores summarizes the in-sample prediction error of a fitted model
type Scores struct {
	MSE  float64 `json:"mean_squared_error"`
	RMSE float64 `json:"root_mean_squared_error"`
	MAE  float64 `json:"mean_absolute_error"`
	MAPE float64 `json:"mean_absolute_percent_error"`
	R2   float64 `json:"r_squared"`
}

// Scores derives the error scores from the residuals of the fit. MSE divides the residual
// sum of squares by the number of observations, not the residual degrees of freedom, so it
// is smaller than Sigma2. Observations with a zero target are left out of MAPE, which is
// NaN when every target is zero.
func (m *Model) Scores() (*Scores, error) {
	if m == nil || m.nObs == 0 {
		return nil, ErrUnfitModel
	}

	n := float64(m.nObs)
	var absErr, pctErr float64
	var pctCnt int
	for i, e := range m.resid {
		absErr += math.Abs(e)
		if m.y[i] == 0 {
			continue
		}
		pctErr += math.Abs(e / m.y[i])
		pctCnt++
	}

	mape := math.NaN()
	if pctCnt > 0 {
		mape = pctErr / float64(pctCnt)
	}
	mse := m.ssRes / n
	return &Scores{
		MSE:  mse,
		RMSE: math.Sqrt(mse),
		MAE:  absErr / n,
		MAPE: mape,
		R2:   m.r2,
	}, nil
}
