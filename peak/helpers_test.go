package peak

import (
	"math"

	"github.com/uyouii/peakcal/model"
	"gonum.org/v1/gonum/stat/distuv"
)

// normalSample returns n deterministic draws placed at evenly spaced quantiles.
func normalSample(mu, sigma float64, n int) []float64 {
	dist := distuv.Normal{Mu: mu, Sigma: sigma}
	res := make([]float64, n)
	for i := range res {
		res[i] = dist.Quantile((float64(i) + 0.5) / float64(n))
	}
	return res
}

func gaussian(mu, sigma float64) func(float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma}.Prob
}

func toGrid(ys ...float64) []model.Density {
	res := make([]model.Density, len(ys))
	for i, y := range ys {
		res[i] = model.Density{X: float64(i) * 0.5, Value: y}
	}
	return res
}

// analytic full width at half maximum of a normal distribution
func fwhm(sigma float64) float64 {
	return 2 * math.Sqrt(2*math.Ln2) * sigma
}
