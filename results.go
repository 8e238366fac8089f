package salesreg

import (
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"github.com/aouyang1/go-salesreg/dataset"
	"github.com/aouyang1/go-salesreg/linearmodel"
	"github.com/aouyang1/go-salesreg/report"
	"github.com/aouyang1/go-salesreg/stats"
)

// Results is the serializeable outcome of an Analysis
type Results struct {
	Reference       string              `json:"reference"`
	Equation        string              `json:"equation"`
	Model           linearmodel.Summary `json:"model"`
	Diagnostics     stats.Diagnostics   `json:"diagnostics"`
	VIF             map[string]float64  `json:"vif,omitempty"`
	TVMeans         []dataset.Group     `json:"tv_means"`
	InfluencerMeans []dataset.Group     `json:"influencer_means"`
	Dropped         int                 `json:"dropped"`
	Excluded        []int               `json:"excluded,omitempty"`
	Interpretation  []string            `json:"interpretation"`
}

// Results collects the analysis outputs. NaN values are replaced with zero so the result can
// always be encoded as JSON.
func (a *Analysis) Results() (*Results, error) {
	eq, err := a.model.ModelEq()
	if err != nil {
		return nil, err
	}
	d := a.Diagnostics()
	for _, v := range []*float64{
		&d.Skew, &d.Kurtosis, &d.JarqueBera, &d.JBProb,
		&d.DurbinWatson, &d.BreuschPagan, &d.BreuschPaganProb,
	} {
		*v = finite(*v)
	}
	vif := a.VIF()
	for k, v := range vif {
		vif[k] = finite(v)
	}

	return &Results{
		Reference:       a.opt.Reference,
		Equation:        eq,
		Model:           a.model.Summary(),
		Diagnostics:     *d,
		VIF:             vif,
		TVMeans:         finiteGroups(a.tvMeans),
		InfluencerMeans: finiteGroups(a.influencerMeans),
		Dropped:         a.dropped,
		Excluded:        a.Excluded(),
		Interpretation:  a.Interpretation(),
	}, nil
}

// WriteJSON writes the analysis results as indented json
func (a *Analysis) WriteJSON(w io.Writer) error {
	res, err := a.Results()
	if err != nil {
		return err
	}
	return report.WriteJSON(w, res)
}

// TablePrint writes the regression table followed by the residual diagnostics and the
// variance inflation factors
func (a *Analysis) TablePrint(w io.Writer) error {
	if err := a.model.TablePrint(w, "", "  ", 0); err != nil {
		return err
	}

	d := a.diagnostics
	indent := "  "
	if _, err := fmt.Fprintf(w, "Residual Diagnostics:\n"); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	rows := []struct {
		name string
		stat float64
		prob float64
	}{
		{"Jarque-Bera", d.JarqueBera, d.JBProb},
		{"Breusch-Pagan", d.BreuschPagan, d.BreuschPaganProb},
		{"Durbin-Watson", d.DurbinWatson, math.NaN()},
		{"Skew", d.Skew, math.NaN()},
		{"Kurtosis", d.Kurtosis, math.NaN()},
	}
	if _, err := fmt.Fprintf(tbl, "%s\tstatistic\tprob\t\n", indent); err != nil {
		return err
	}
	for _, r := range rows {
		prob := "-"
		if !math.IsNaN(r.prob) {
			prob = fmt.Sprintf("%.3g", r.prob)
		}
		if _, err := fmt.Fprintf(tbl, "%s%s\t%.3f\t%s\t\n", indent, r.name, r.stat, prob); err != nil {
			return err
		}
	}
	if err := tbl.Flush(); err != nil {
		return err
	}

	if len(a.vif) == 0 {
		return nil
	}
	names := make([]string, 0, len(a.vif))
	for name := range a.vif {
		names = append(names, name)
	}
	sort.Strings(names)

	if _, err := fmt.Fprintf(w, "Variance Inflation Factors:\n"); err != nil {
		return err
	}
	tbl = tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	for _, name := range names {
		if _, err := fmt.Fprintf(tbl, "%s%s\t%.3f\t\n", indent, name, a.vif[name]); err != nil {
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

func finiteGroups(groups []dataset.Group) []dataset.Group {
	out := make([]dataset.Group, len(groups))
	for i, g := range groups {
		g.Radio = finite(g.Radio)
		g.SocialMedia = finite(g.SocialMedia)
		g.Sales = finite(g.Sales)
		out[i] = g
	}
	return out
}
