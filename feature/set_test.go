package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSetAdd(t *testing.T) {
	testData := map[string]struct {
		init     *Set
		f        Feature
		data     []float64
		expected *Set
		err      error
	}{
		"initial set": {
			init: NewSet(),
			f:    NewContinuous("Radio"),
			data: []float64{1, 2, 3, 4},
			expected: &Set{
				m: 4,
				set: map[string][]float64{
					"Radio": {1, 2, 3, 4},
				},
				labels: []Feature{NewContinuous("Radio")},
			},
		},
		"set with more data": {
			init: &Set{
				m: 4,
				set: map[string][]float64{
					"Radio": {1, 2, 3, 4},
				},
				labels: []Feature{NewContinuous("Radio")},
			},
			f:    NewLevel("TV", "Low", "High"),
			data: []float64{1, 0, 0, 1},
			expected: &Set{
				m: 4,
				set: map[string][]float64{
					"Radio":     {1, 2, 3, 4},
					"TV[T.Low]": {1, 0, 0, 1},
				},
				labels: []Feature{
					NewContinuous("Radio"),
					NewLevel("TV", "Low", "High"),
				},
			},
		},
		"length mismatch": {
			init: &Set{
				m: 4,
				set: map[string][]float64{
					"Radio": {1, 2, 3, 4},
				},
				labels: []Feature{NewContinuous("Radio")},
			},
			f:    NewContinuous("Social_Media"),
			data: []float64{1, 2},
			err:  ErrFeatureLenMismatch,
		},
		"duplicate": {
			init: &Set{
				m: 4,
				set: map[string][]float64{
					"Radio": {1, 2, 3, 4},
				},
				labels: []Feature{NewContinuous("Radio")},
			},
			f:    NewContinuous("Radio"),
			data: []float64{1, 2, 3, 4},
			err:  ErrDuplicateFeature,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			err := td.init.Add(td.f, td.data)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, td.init)
		})
	}
}

func TestSetMatrix(t *testing.T) {
	tv, err := OneHot("TV", []string{"High", "Low", "Medium"}, "High")
	require.Nil(t, err)

	s := NewSet()
	require.Nil(t, s.AddCategorical(tv))
	require.Nil(t, s.Add(NewContinuous("Radio"), []float64{10, 20, 30}))

	assert.Equal(t, []string{"Intercept", "TV[T.Low]", "TV[T.Medium]", "Radio"}, s.Labels(true).Strings())
	assert.Equal(t, []string{"TV[T.Low]", "TV[T.Medium]", "Radio"}, s.Labels(false).Strings())

	x, err := s.Matrix(true)
	require.Nil(t, err)
	expected := [][]float64{
		{1, 0, 0, 10},
		{1, 1, 0, 20},
		{1, 0, 1, 30},
	}
	for i, row := range expected {
		assert.Equal(t, row, mat.Row(nil, i, x))
	}

	x, err = s.Matrix(false)
	require.Nil(t, err)
	_, n := x.Dims()
	assert.Equal(t, 3, n)

	cols := s.MatrixSlice(true)
	require.Len(t, cols, 4)
	assert.Equal(t, []float64{1, 1, 1}, cols[0])
	assert.Equal(t, []float64{10, 20, 30}, cols[3])

	idx, ok := s.Labels(true).Index(NewContinuous("Radio"))
	assert.True(t, ok)
	assert.Equal(t, 3, idx)

	_, err = NewSet().Matrix(true)
	assert.ErrorIs(t, err, ErrEmptySet)
}
