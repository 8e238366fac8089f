package dataset

import (
	"fmt"
	"math/rand/v2"
)

// Coefficients are the generating parameters of a simulated dataset with High as the TV
// baseline tier
type Coefficients struct {
	Intercept float64 `json:"intercept" yaml:"intercept"`
	Low       float64 `json:"low" yaml:"low"`
	Medium    float64 `json:"medium" yaml:"medium"`
	Radio     float64 `json:"radio" yaml:"radio"`
}

// SalesCoefficients are the estimates of the reference marketing analysis
var SalesCoefficients = Coefficients{
	Intercept: 218.5261,
	Low:       -154.2971,
	Medium:    -75.3120,
	Radio:     2.9669,
}

var (
	tiers       = []string{"High", "Low", "Medium"}
	influencers = []string{"Macro", "Mega", "Micro", "Nano"}
)

// Simulate generates n observations where Sales follows
// coef.Intercept + coef.Low*Low + coef.Medium*Medium + coef.Radio*Radio + N(0, noise).
// Radio spend rises with the TV tier and Social_Media tracks Radio so the predictors
// carry the moderate collinearity of real marketing budgets.
func Simulate(n int, coef Coefficients, noise float64, seed uint64) (*Dataset, error) {
	if n <= 0 {
		return nil, fmt.Errorf("requested %d observations, %w", n, ErrNoObservations)
	}
	if noise < 0 {
		return nil, fmt.Errorf("noise of %.3f, %w", noise, ErrNegativeNoise)
	}
	rng := rand.New(rand.NewPCG(seed, seed+1))

	obs := make([]Observation, n)
	for i := 0; i < n; i++ {
		tier := tiers[rng.IntN(len(tiers))]

		var low, medium, radioBase float64
		switch tier {
		case "Low":
			low = 1.0
			radioBase = 0.0
		case "Medium":
			medium = 1.0
			radioBase = 10.0
		default:
			radioBase = 20.0
		}
		radio := radioBase + rng.Float64()*30.0
		social := 0.1*radio + rng.Float64()*4.0

		sales := coef.Intercept + coef.Low*low + coef.Medium*medium + coef.Radio*radio + rng.NormFloat64()*noise
		obs[i] = Observation{
			TV:          tier,
			Radio:       radio,
			SocialMedia: social,
			Influencer:  influencers[rng.IntN(len(influencers))],
			Sales:       sales,
		}
	}
	return &Dataset{obs: obs}, nil
}
