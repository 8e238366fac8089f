package feature

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrDuplicateFeature   = errors.New("feature already exists in set")
	ErrFeatureLenMismatch = errors.New("feature length does not match the set")
	ErrEmptySet           = errors.New("feature set has no features")
)

// Set represents an ordered collection of feature columns sharing the same number of
// observations. Column order is insertion order.
type Set struct {
	m      int
	set    map[string][]float64
	labels []Feature
}

func NewSet() *Set {
	return &Set{
		set: make(map[string][]float64),
	}
}

// Add appends a feature column to the set. The data is copied.
func (s *Set) Add(f Feature, data []float64) error {
	if _, exists := s.set[f.String()]; exists {
		return fmt.Errorf("%s, %w", f.String(), ErrDuplicateFeature)
	}
	if len(s.labels) > 0 && len(data) != s.m {
		return fmt.Errorf("%s has %d observations but set has %d, %w", f.String(), len(data), s.m, ErrFeatureLenMismatch)
	}
	if len(s.labels) == 0 {
		s.m = len(data)
	}

	col := make([]float64, len(data))
	copy(col, data)
	s.set[f.String()] = col
	s.labels = append(s.labels, f)
	return nil
}

// AddCategorical appends every indicator column of an encoded categorical variable
func (s *Set) AddCategorical(c *Categorical) error {
	for _, f := range c.Features() {
		lvl, _ := f.Get("level")
		col, _ := c.Column(lvl)
		if err := s.Add(f, col); err != nil {
			return err
		}
	}
	return nil
}

// Get returns a copy of a feature column by its label
func (s *Set) Get(label string) ([]float64, bool) {
	col, exists := s.set[label]
	if !exists {
		return nil, false
	}
	out := make([]float64, len(col))
	copy(out, col)
	return out, true
}

// Len returns the number of observations in the set
func (s *Set) Len() int {
	return s.m
}

// Labels returns the ordered features in the Set optionally led by the intercept
func (s *Set) Labels(intercept bool) *Labels {
	if s == nil {
		return nil
	}
	labels := make([]Feature, 0, len(s.labels)+1)
	if intercept {
		labels = append(labels, NewIntercept())
	}
	labels = append(labels, s.labels...)
	return NewLabels(labels)
}

// Matrix returns a matrix representation of the Set to be used with matrix methods.
// The matrix has m rows representing the number of observations and n columns representing
// the number of features, with a leading column of ones if intercept is set.
func (s *Set) Matrix(intercept bool) (*mat.Dense, error) {
	if s == nil || len(s.labels) == 0 {
		return nil, ErrEmptySet
	}
	if s.m == 0 {
		return nil, fmt.Errorf("no observations, %w", ErrFeatureLenMismatch)
	}

	n := len(s.labels)
	if intercept {
		n += 1
	}
	obs := make([]float64, s.m*n)

	featNum := 0
	if intercept {
		for i := 0; i < s.m; i++ {
			obs[n*i] = 1.0
		}
		featNum += 1
	}

	for _, label := range s.labels {
		feature := s.set[label.String()]
		for i := 0; i < len(feature); i++ {
			obs[n*i+featNum] = feature[i]
		}
		featNum += 1
	}
	return mat.NewDense(s.m, n, obs), nil
}

// MatrixSlice returns the Set as a slice of columns. Takes an intercept input if we want to
// include the intercept term.
func (s *Set) MatrixSlice(intercept bool) [][]float64 {
	if s == nil || len(s.labels) == 0 {
		return nil
	}

	n := len(s.labels)
	if intercept {
		n += 1
	}

	obs := make([][]float64, n)
	featNum := 0
	if intercept {
		ones := make([]float64, s.m)
		floats.AddConst(1.0, ones)
		obs[featNum] = ones
		featNum++
	}

	for _, label := range s.labels {
		col := make([]float64, s.m)
		copy(col, s.set[label.String()])
		obs[featNum] = col
		featNum += 1
	}
	return obs
}
