package feature

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrEmptyLevelSet    = errors.New("categorical column needs at least 2 distinct levels")
	ErrUnknownReference = errors.New("reference level is not present in column")
	ErrMissingLevel     = errors.New("categorical value is missing")
)

// Categorical is the treatment (dummy) encoding of a single categorical column. Each
// non-reference level becomes an indicator column and every coefficient estimated on those
// columns is interpreted relative to the reference level.
type Categorical struct {
	Name      string
	Reference string

	levels  []string
	columns map[string][]float64
	m       int
}

// Levels returns the distinct values of a column in lexicographic order
func Levels(values []string) []string {
	seen := make(map[string]struct{})
	for _, v := range values {
		seen[v] = struct{}{}
	}
	levels := make([]string, 0, len(seen))
	for v := range seen {
		levels = append(levels, v)
	}
	sort.Strings(levels)
	return levels
}

// FirstLevel returns the lexicographically smallest level. This is the reference level a
// treatment coding picks by default, e.g. High for the High/Medium/Low TV tiers.
func FirstLevel(values []string) string {
	levels := Levels(values)
	if len(levels) == 0 {
		return ""
	}
	return levels[0]
}

// MostFrequentLevel returns the level with the most observations with ties broken
// lexicographically.
func MostFrequentLevel(values []string) string {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	var best string
	bestCnt := -1
	for _, level := range Levels(values) {
		if counts[level] > bestCnt {
			best = level
			bestCnt = counts[level]
		}
	}
	return best
}

// OneHot encodes values into one indicator column per non-reference level. The columns are
// ordered lexicographically by level.
func OneHot(name string, values []string, reference string) (*Categorical, error) {
	for i, v := range values {
		if v == "" {
			return nil, fmt.Errorf("%s at row %d, %w", name, i, ErrMissingLevel)
		}
	}
	levels := Levels(values)
	if len(levels) < 2 {
		return nil, fmt.Errorf("%s has %d levels, %w", name, len(levels), ErrEmptyLevelSet)
	}

	idx := sort.SearchStrings(levels, reference)
	if idx == len(levels) || levels[idx] != reference {
		return nil, fmt.Errorf("%s not in %v, %w", reference, levels, ErrUnknownReference)
	}
	levels = append(levels[:idx:idx], levels[idx+1:]...)

	columns := make(map[string][]float64, len(levels))
	for _, level := range levels {
		columns[level] = make([]float64, len(values))
	}
	for i, v := range values {
		if col, exists := columns[v]; exists {
			col[i] = 1.0
		}
	}

	return &Categorical{
		Name:      name,
		Reference: reference,
		levels:    levels,
		columns:   columns,
		m:         len(values),
	}, nil
}

// Levels returns the encoded non-reference levels in column order
func (c *Categorical) Levels() []string {
	levels := make([]string, len(c.levels))
	copy(levels, c.levels)
	return levels
}

// Features returns the level features in column order
func (c *Categorical) Features() []Feature {
	features := make([]Feature, 0, len(c.levels))
	for _, level := range c.levels {
		features = append(features, NewLevel(c.Name, level, c.Reference))
	}
	return features
}

// Column returns a copy of the indicator column for level
func (c *Categorical) Column(level string) ([]float64, bool) {
	col, exists := c.columns[level]
	if !exists {
		return nil, false
	}
	out := make([]float64, len(col))
	copy(out, col)
	return out, true
}

// Len returns the number of encoded observations
func (c *Categorical) Len() int {
	return c.m
}
