package linearmodel

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
)

// CoefSummary describes the estimate and inference statistics of a single coefficient
type CoefSummary struct {
	Label   string  `json:"label"`
	Coef    float64 `json:"coef"`
	StdErr  float64 `json:"std_err"`
	TValue  float64 `json:"t"`
	PValue  float64 `json:"p_value"`
	CILower float64 `json:"ci_lower"`
	CIUpper float64 `json:"ci_upper"`
}

// Summary represents a serializeable snapshot of the fit statistics
type Summary struct {
	NObs          int           `json:"n_obs"`
	DFResid       int           `json:"df_resid"`
	DFModel       int           `json:"df_model"`
	Alpha         float64       `json:"alpha"`
	RSquared      float64       `json:"r_squared"`
	AdjRSquared   float64       `json:"adj_r_squared"`
	FStatistic    float64       `json:"f_statistic"`
	FProb         float64       `json:"f_prob"`
	LogLikelihood float64       `json:"log_likelihood"`
	AIC           float64       `json:"aic"`
	BIC           float64       `json:"bic"`
	CondNumber    float64       `json:"cond_number"`
	Scores        *Scores       `json:"scores"`
	Coefficients  []CoefSummary `json:"coefficients"`
}

// Summary collects the fit statistics. NaN values are replaced with zero so the result can
// always be encoded as JSON.
func (m *Model) Summary() Summary {
	if m == nil {
		return Summary{}
	}
	dfModel := len(m.coef)
	if m.intercept >= 0 {
		dfModel--
	}
	s := Summary{
		NObs:          m.nObs,
		DFResid:       m.df,
		DFModel:       dfModel,
		Alpha:         m.alpha,
		RSquared:      finite(m.r2),
		AdjRSquared:   finite(m.adjR2),
		FStatistic:    finite(m.fStat),
		FProb:         finite(m.fProb),
		LogLikelihood: finite(m.logLike),
		AIC:           finite(m.aic),
		BIC:           finite(m.bic),
		CondNumber:    finite(m.condNum),
		Coefficients:  make([]CoefSummary, 0, len(m.coef)),
	}
	if scores, err := m.Scores(); err == nil {
		scores.MAPE = finite(scores.MAPE)
		s.Scores = scores
	}
	for i, label := range m.labels {
		s.Coefficients = append(s.Coefficients, CoefSummary{
			Label:   label,
			Coef:    m.coef[i],
			StdErr:  finite(m.stdErr[i]),
			TValue:  finite(m.tValues[i]),
			PValue:  finite(m.pValues[i]),
			CILower: finite(m.confInt[i][0]),
			CIUpper: finite(m.confInt[i][1]),
		})
	}
	return s
}

// TablePrint writes a human readable regression summary similar to a statistics package
// results table.
func (m *Model) TablePrint(w io.Writer, prefix, indent string, indentGrowth int) error {
	if m == nil || len(m.coef) == 0 {
		return ErrUnfitModel
	}
	s := m.Summary()

	if _, err := fmt.Fprintf(w, "%s%sOLS Regression Results:\n", prefix, strings.Repeat(indent, indentGrowth)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sObservations: %d    Df Residuals: %d    Df Model: %d\n",
		prefix, strings.Repeat(indent, indentGrowth+1),
		s.NObs, s.DFResid, s.DFModel); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sR-squared: %.3f    Adj. R-squared: %.3f\n",
		prefix, strings.Repeat(indent, indentGrowth+1),
		m.r2, m.adjR2); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sF-statistic: %.4g    Prob (F-statistic): %.3g\n",
		prefix, strings.Repeat(indent, indentGrowth+1),
		m.fStat, m.fProb); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sLog-Likelihood: %.3f    AIC: %.4g    BIC: %.4g    Cond. No.: %.3g\n",
		prefix, strings.Repeat(indent, indentGrowth+1),
		m.logLike, m.aic, m.bic, m.condNum); err != nil {
		return err
	}

	if s.Scores != nil {
		if _, err := fmt.Fprintf(w, "%s%sMSE: %.4g    RMSE: %.4g    MAE: %.4g    MAPE: %.4g\n",
			prefix, strings.Repeat(indent, indentGrowth+1),
			s.Scores.MSE, s.Scores.RMSE, s.Scores.MAE, s.Scores.MAPE); err != nil {
			return err
		}
	}

	lowerQ := fmt.Sprintf("[%.3g", m.alpha/2.0)
	upperQ := fmt.Sprintf("%.3g]", 1.0-m.alpha/2.0)

	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%s%s\tcoef\tstd err\tt\tP>|t|\t%s\t%s\t\n",
		prefix, strings.Repeat(indent, indentGrowth+1), lowerQ, upperQ); err != nil {
		return err
	}
	for _, c := range s.Coefficients {
		if _, err := fmt.Fprintf(tbl, "%s%s%s\t%.4f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t\n",
			prefix, strings.Repeat(indent, indentGrowth+1),
			c.Label, c.Coef, c.StdErr, c.TValue, c.PValue, c.CILower, c.CIUpper); err != nil {
			return err
		}
	}
	return tbl.Flush()
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0.0
	}
	return v
}
