package dataset

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Group holds the per group means of the numeric columns. Missing values are skipped per
// column.
type Group struct {
	Key         string  `json:"key"`
	Count       int     `json:"count"`
	Radio       float64 `json:"radio"`
	SocialMedia float64 `json:"social_media"`
	Sales       float64 `json:"sales"`
}

func ByTV(o Observation) string {
	return o.TV
}

func ByInfluencer(o Observation) string {
	return o.Influencer
}

// GroupMean groups the observations by key and averages each numeric column. Groups are
// returned sorted by key and observations with an empty key are skipped.
func (d *Dataset) GroupMean(key func(Observation) string) []Group {
	type acc struct {
		cnt                  int
		radio, social, sales []float64
	}
	groups := make(map[string]*acc)
	for _, o := range d.obs {
		k := key(o)
		if k == "" {
			continue
		}
		g, exists := groups[k]
		if !exists {
			g = &acc{}
			groups[k] = g
		}
		g.cnt++
		g.radio = appendPresent(g.radio, o.Radio)
		g.social = appendPresent(g.social, o.SocialMedia)
		g.sales = appendPresent(g.sales, o.Sales)
	}

	res := make([]Group, 0, len(groups))
	for k, g := range groups {
		res = append(res, Group{
			Key:         k,
			Count:       g.cnt,
			Radio:       mean(g.radio),
			SocialMedia: mean(g.social),
			Sales:       mean(g.sales),
		})
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Key < res[j].Key
	})
	return res
}

func appendPresent(vals []float64, v float64) []float64 {
	if math.IsNaN(v) {
		return vals
	}
	return append(vals, v)
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	return stat.Mean(vals, nil)
}
