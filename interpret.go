package salesreg

import (
	"fmt"
	"math"
	"sort"

	"github.com/aouyang1/go-salesreg/dataset"
	"github.com/aouyang1/go-salesreg/feature"
)

const (
	// VIFThreshold is the variance inflation factor above which predictors are considered
	// to be multicollinear
	VIFThreshold = 5.0

	// durbin-watson values inside this band show no strong autocorrelation
	dwLower = 1.5
	dwUpper = 2.5
)

func (a *Analysis) coefIndex(f feature.Feature) int {
	idx, _ := a.labels.Index(f)
	return idx
}

func (a *Analysis) significance(p float64) string {
	if p < a.opt.Alpha {
		return fmt.Sprintf("statistically significant at alpha=%.2f (p=%.3g)", a.opt.Alpha, p)
	}
	return fmt.Sprintf("not statistically significant at alpha=%.2f (p=%.3g)", a.opt.Alpha, p)
}

// Interpretation narrates the fitted coefficients relative to the reference TV tier along
// with their confidence intervals, the goodness of fit, the residual assumption checks and
// the multicollinearity of the predictors.
func (a *Analysis) Interpretation() []string {
	m := a.model
	coef := m.Coef()
	ci := m.ConfInt()
	pvals := m.PValues()
	level := 100.0 * (1.0 - a.opt.Alpha)

	var lines []string

	i := a.coefIndex(feature.NewIntercept())
	lines = append(lines, fmt.Sprintf(
		"With TV at the %s baseline and no Radio promotion, expected sales are %.2f (%.0f%% CI [%.2f, %.2f]).",
		a.tv.Reference, coef[i], level, ci[i][0], ci[i][1],
	))

	for _, f := range a.tv.Features() {
		i := a.coefIndex(f)
		tier, _ := f.Get("level")
		direction := "higher"
		if coef[i] < 0 {
			direction = "lower"
		}
		lines = append(lines, fmt.Sprintf(
			"Holding Radio fixed, %s TV promotion yields sales %.2f %s than %s TV promotion (%.0f%% CI [%.2f, %.2f]), %s.",
			tier, math.Abs(coef[i]), direction, a.tv.Reference, level, ci[i][0], ci[i][1], a.significance(pvals[i]),
		))
	}

	i = a.coefIndex(feature.NewContinuous(dataset.ColRadio))
	direction := "increase"
	if coef[i] < 0 {
		direction = "decrease"
	}
	lines = append(lines, fmt.Sprintf(
		"Holding TV fixed, each additional unit of Radio promotion is associated with a %.4f %s in sales (%.0f%% CI [%.4f, %.4f]), %s.",
		math.Abs(coef[i]), direction, level, ci[i][0], ci[i][1], a.significance(pvals[i]),
	))

	lines = append(lines, fmt.Sprintf(
		"The model explains %.1f%% of the variation in sales (adjusted R-squared %.4f) over %d observations.",
		100.0*m.RSquared(), m.AdjRSquared(), m.NObs(),
	))

	lines = append(lines, a.assumptions()...)
	lines = append(lines, a.multicollinearity()...)
	return lines
}

func (a *Analysis) assumptions() []string {
	d := a.diagnostics
	var lines []string

	if d.JBProb >= a.opt.Alpha {
		lines = append(lines, fmt.Sprintf(
			"Residuals are consistent with normality (Jarque-Bera p=%.3g, skew %.3f, kurtosis %.3f).",
			d.JBProb, d.Skew, d.Kurtosis,
		))
	} else {
		lines = append(lines, fmt.Sprintf(
			"Residuals depart from normality (Jarque-Bera p=%.3g, skew %.3f, kurtosis %.3f).",
			d.JBProb, d.Skew, d.Kurtosis,
		))
	}

	if d.BreuschPaganProb >= a.opt.Alpha {
		lines = append(lines, fmt.Sprintf(
			"Residual variance is consistent with homoscedasticity (Breusch-Pagan p=%.3g).", d.BreuschPaganProb,
		))
	} else {
		lines = append(lines, fmt.Sprintf(
			"Residual variance changes with the predictors (Breusch-Pagan p=%.3g).", d.BreuschPaganProb,
		))
	}

	if d.DurbinWatson >= dwLower && d.DurbinWatson <= dwUpper {
		lines = append(lines, fmt.Sprintf(
			"Residuals show no strong autocorrelation (Durbin-Watson %.3f).", d.DurbinWatson,
		))
	} else {
		lines = append(lines, fmt.Sprintf(
			"Residuals are autocorrelated (Durbin-Watson %.3f).", d.DurbinWatson,
		))
	}

	if len(d.Outliers) > 0 {
		lines = append(lines, fmt.Sprintf("%d residuals lie outside the outlier fences.", len(d.Outliers)))
	}
	return lines
}

func (a *Analysis) multicollinearity() []string {
	if len(a.vif) == 0 {
		return nil
	}
	names := make([]string, 0, len(a.vif))
	for name := range a.vif {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		v := a.vif[name]
		if v > VIFThreshold {
			lines = append(lines, fmt.Sprintf("%s has a VIF of %.3f, above %.0f, indicating multicollinearity.", name, v, VIFThreshold))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s has a VIF of %.3f, showing no severe multicollinearity.", name, v))
	}
	return lines
}
