// Package dataset holds the marketing observations the sales regression is fit on.
package dataset

import (
	"errors"
	"fmt"
	"math"
)

const (
	ColTV          = "TV"
	ColRadio       = "Radio"
	ColSocialMedia = "Social_Media"
	ColInfluencer  = "Influencer"
	ColSales       = "Sales"
)

var (
	ErrNoObservations = errors.New("no observations")
	ErrMissingColumn  = errors.New("missing required column")
	ErrInvalidValue   = errors.New("invalid numeric value")
	ErrUnknownColumn  = errors.New("unknown column")
	ErrNegativeNoise  = errors.New("noise scale must be non-negative")
)

// Observation is a single marketing record. Missing numeric values are NaN and missing
// categorical values are empty strings.
type Observation struct {
	TV          string  `json:"tv"`
	Radio       float64 `json:"radio"`
	SocialMedia float64 `json:"social_media"`
	Influencer  string  `json:"influencer"`
	Sales       float64 `json:"sales"`
}

// Complete reports whether every field of the observation is present
func (o Observation) Complete() bool {
	if o.TV == "" || o.Influencer == "" {
		return false
	}
	for _, v := range []float64{o.Radio, o.SocialMedia, o.Sales} {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Dataset is an ordered set of observations
type Dataset struct {
	obs []Observation
}

// New copies the observations into a Dataset
func New(obs []Observation) *Dataset {
	o := make([]Observation, len(obs))
	copy(o, obs)
	return &Dataset{obs: o}
}

// Len returns the number of observations
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.obs)
}

// Observations returns a copy of the observations
func (d *Dataset) Observations() []Observation {
	if d == nil {
		return nil
	}
	o := make([]Observation, len(d.obs))
	copy(o, d.obs)
	return o
}

// DropMissing returns a new Dataset without the observations missing any field
func (d *Dataset) DropMissing() *Dataset {
	if d == nil {
		return New(nil)
	}
	obs := make([]Observation, 0, len(d.obs))
	for _, o := range d.obs {
		if o.Complete() {
			obs = append(obs, o)
		}
	}
	return &Dataset{obs: obs}
}

// DropMissingIn returns a new Dataset without the observations missing a value in any of the
// named columns. The other columns of a kept observation may still be missing.
func (d *Dataset) DropMissingIn(names ...string) (*Dataset, error) {
	present := make([]func(o Observation) bool, 0, len(names))
	for _, name := range names {
		p, err := presence(name)
		if err != nil {
			return nil, fmt.Errorf("%s, %w", name, err)
		}
		present = append(present, p)
	}
	if d == nil {
		return New(nil), nil
	}

	obs := make([]Observation, 0, len(d.obs))
OBS:
	for _, o := range d.obs {
		for _, p := range present {
			if !p(o) {
				continue OBS
			}
		}
		obs = append(obs, o)
	}
	return &Dataset{obs: obs}, nil
}

func presence(name string) (func(o Observation) bool, error) {
	switch normalizeHeader(name) {
	case normalizeHeader(ColTV):
		return func(o Observation) bool { return o.TV != "" }, nil
	case normalizeHeader(ColInfluencer):
		return func(o Observation) bool { return o.Influencer != "" }, nil
	}
	get, err := numeric(name)
	if err != nil {
		return nil, err
	}
	return func(o Observation) bool { return !math.IsNaN(get(o)) }, nil
}

// Missing returns the number of observations missing at least one field
func (d *Dataset) Missing() int {
	var cnt int
	for _, o := range d.obs {
		if !o.Complete() {
			cnt++
		}
	}
	return cnt
}

// TV returns the TV promotion tier of every observation
func (d *Dataset) TV() []string {
	return d.categorical(func(o Observation) string { return o.TV })
}

// Influencer returns the influencer size of every observation
func (d *Dataset) Influencer() []string {
	return d.categorical(func(o Observation) string { return o.Influencer })
}

// Column returns a numeric column by name
func (d *Dataset) Column(name string) ([]float64, error) {
	get, err := numeric(name)
	if err != nil {
		return nil, err
	}
	col := make([]float64, d.Len())
	for i, o := range d.obs {
		col[i] = get(o)
	}
	return col, nil
}

// Columns returns the named numeric columns keyed by name
func (d *Dataset) Columns(names []string) (map[string][]float64, error) {
	cols := make(map[string][]float64, len(names))
	for _, name := range names {
		col, err := d.Column(name)
		if err != nil {
			return nil, err
		}
		cols[name] = col
	}
	return cols, nil
}

func numeric(name string) (func(o Observation) float64, error) {
	switch normalizeHeader(name) {
	case normalizeHeader(ColRadio):
		return func(o Observation) float64 { return o.Radio }, nil
	case normalizeHeader(ColSocialMedia):
		return func(o Observation) float64 { return o.SocialMedia }, nil
	case normalizeHeader(ColSales):
		return func(o Observation) float64 { return o.Sales }, nil
	}
	return nil, ErrUnknownColumn
}

func (d *Dataset) categorical(get func(o Observation) string) []string {
	col := make([]string, d.Len())
	for i := 0; i < d.Len(); i++ {
		col[i] = get(d.obs[i])
	}
	return col
}
