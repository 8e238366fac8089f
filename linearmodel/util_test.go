package linearmodel

import (
	"math/rand/v2"

	mat_ "github.com/aouyang1/go-salesreg/mat"

	"gonum.org/v1/gonum/mat"
)

// salesCoef is the generating model Sales = b0 + bLow*Low + bMedium*Medium + bRadio*Radio
var salesCoef = []float64{218.5261, -154.2971, -75.3120, 2.9669}

// generateSalesData builds an intercept, TV[T.Low], TV[T.Medium], Radio design matrix with
// High as the baseline tier and a target generated from salesCoef plus gaussian noise.
func generateSalesData(nObs int, noise float64, seed uint64) (*mat.Dense, []float64) {
	rng := rand.New(rand.NewPCG(seed, seed+1))

	rows := make([][]float64, nObs)
	y := make([]float64, nObs)
	for i := 0; i < nObs; i++ {
		var low, medium float64
		switch rng.IntN(3) {
		case 0:
			low = 1.0
		case 1:
			medium = 1.0
		}
		radio := rng.Float64() * 50.0
		rows[i] = []float64{1.0, low, medium, radio}
		y[i] = salesCoef[0] + salesCoef[1]*low + salesCoef[2]*medium + salesCoef[3]*radio + rng.NormFloat64()*noise
	}
	x, err := mat_.NewDenseFromArray(rows)
	if err != nil {
		panic(err)
	}
	return x, y
}

func generateBenchData(nObs, nFeat int) (*mat.Dense, []float64) {
	rng := rand.New(rand.NewPCG(1, 2))
	data := make([][]float64, nObs)
	y := make([]float64, nObs)
	for i := 0; i < nObs; i++ {
		data[i] = make([]float64, nFeat)
		data[i][0] = 1.0
		for j := 1; j < nFeat; j++ {
			data[i][j] = rng.NormFloat64()
			y[i] += float64(j) * data[i][j]
		}
		y[i] += rng.NormFloat64()
	}
	x, err := mat_.NewDenseFromArray(data)
	if err != nil {
		panic(err)
	}
	return x, y
}
