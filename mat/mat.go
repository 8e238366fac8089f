package mat

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrColMismatch    = errors.New("column size mismatch")
	ErrRowMismatch    = errors.New("row size mismatch")
	ErrColOutOfBounds = errors.New("column is out of bounds")
)

// NewDenseFromArray builds a dense matrix from a slice of rows. All rows must have the
// same length.
func NewDenseFromArray(x [][]float64) (*mat.Dense, error) {
	m := len(x)

	n := -1
	for i, row := range x {
		if n >= 0 && len(row) != n {
			return nil, fmt.Errorf("at row %d, %w", i, ErrColMismatch)
		}
		if n < 0 {
			n = len(row)
		}
	}
	if n < 0 {
		n = 0
	}

	// flatten to row order
	data := make([]float64, 0, m*n)
	for _, row := range x {
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data), nil
}

// NewDenseFromColumns builds a dense matrix where each input slice becomes a column.
// All columns must have the same length.
func NewDenseFromColumns(cols [][]float64) (*mat.Dense, error) {
	n := len(cols)

	m := -1
	for j, col := range cols {
		if m >= 0 && len(col) != m {
			return nil, fmt.Errorf("at column %d, %w", j, ErrRowMismatch)
		}
		if m < 0 {
			m = len(col)
		}
	}
	if m < 0 {
		m = 0
	}

	data := make([]float64, m*n)
	for j, col := range cols {
		for i, v := range col {
			data[i*n+j] = v
		}
	}
	return mat.NewDense(m, n, data), nil
}

// WithoutCol returns a copy of x with column j removed
func WithoutCol(x mat.Matrix, j int) (*mat.Dense, error) {
	m, n := x.Dims()
	if j < 0 || j >= n {
		return nil, fmt.Errorf("column %d of %d, %w", j, n, ErrColOutOfBounds)
	}
	if n == 1 {
		return nil, fmt.Errorf("cannot remove the only column, %w", ErrColMismatch)
	}
	out := mat.NewDense(m, n-1, nil)
	c := 0
	for k := 0; k < n; k++ {
		if k == j {
			continue
		}
		out.SetCol(c, mat.Col(nil, k, x))
		c++
	}
	return out, nil
}

// PrependOnes returns a copy of x with a leading column of ones
func PrependOnes(x mat.Matrix) *mat.Dense {
	m, n := x.Dims()
	out := mat.NewDense(m, n+1, nil)
	for i := 0; i < m; i++ {
		out.Set(i, 0, 1.0)
		for j := 0; j < n; j++ {
			out.Set(i, j+1, x.At(i, j))
		}
	}
	return out
}

// ConstCol returns the index of the first column whose entries are all equal to val
// or -1 if none exist.
func ConstCol(x mat.Matrix, val float64) int {
	m, n := x.Dims()
	if m == 0 {
		return -1
	}
	for j := 0; j < n; j++ {
		isConst := true
		for i := 0; i < m; i++ {
			if x.At(i, j) != val {
				isConst = false
				break
			}
		}
		if isConst {
			return j
		}
	}
	return -1
}

// AllFinite reports whether no entry of x is NaN or infinite
func AllFinite(x mat.Matrix) bool {
	m, n := x.Dims()
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			v := x.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
