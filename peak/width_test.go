package peak

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/peakcal/common"
)

func TestWidthAtFractionGaussian(t *testing.T) {
	solver := NewWidthSolver(DefaultSearchStep)

	for _, sigma := range []float64{0.01, 0.3, 1, 4} {
		f := gaussian(3, sigma)
		interval, err := solver.WidthAtFraction(f, 3, f(3), 0.5)
		require.NoError(t, err, "sigma %v", sigma)

		assert.InEpsilon(t, fwhm(sigma), interval.Width(), 1e-6, "sigma %v", sigma)
		assert.InDelta(t, 3, (interval.Left+interval.Right)/2, 1e-6*sigma)
		assert.InDelta(t, f(3)/2, interval.Target, 1e-15)
		assert.True(t, interval.Encloses(3))
	}
}

func TestWidthAtFractionRatio(t *testing.T) {
	f := gaussian(0, 1)
	solver := NewWidthSolver(1)

	interval, err := solver.WidthAtFraction(f, 0, f(0), 0.75)
	require.NoError(t, err)
	// exp(-x^2/2) = 0.75
	want := math.Sqrt(-2 * math.Log(0.75))
	assert.InDelta(t, -want, interval.Left, 1e-7)
	assert.InDelta(t, want, interval.Right, 1e-7)
}

func TestWidthAtFractionNearestCrossing(t *testing.T) {
	left, right := gaussian(0, 0.05), gaussian(0.5, 0.05)
	f := func(x float64) float64 {
		return left(x) + right(x)
	}

	solver := NewWidthSolver(1)
	interval, err := solver.WidthAtFraction(f, 0.5, f(0.5), 0.5)
	require.NoError(t, err)

	half := fwhm(0.05) / 2
	assert.InDelta(t, 0.5-half, interval.Left, 1e-4)
	assert.InDelta(t, 0.5+half, interval.Right, 1e-4)
}

func TestWidthAtFractionUnavailable(t *testing.T) {
	solver := NewWidthSolver(1)
	constant := func(float64) float64 { return 1 }
	nan := func(x float64) float64 {
		if x < 0 {
			return math.NaN()
		}
		return math.Exp(-x * x)
	}
	f := gaussian(0, 1)

	tests := []struct {
		name    string
		f       func(float64) float64
		density float64
	}{
		{"never crosses", constant, 1},
		{"nan", nan, 1},
		{"target above peak", f, 3 * f(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := solver.WidthAtFraction(tt.f, 0, tt.density, 0.5)
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrorNoConvergence))
		})
	}
}

func TestWidthAtFractionSearchBudget(t *testing.T) {
	f := gaussian(0, 5)

	// crossing at 5.89, out of reach of one step
	solver := &WidthSolver{SearchStep: 1, MaxExpansions: 2}
	_, err := solver.WidthAtFraction(f, 0, f(0), 0.5)
	assert.True(t, errors.Is(err, common.ErrorNoConvergence))

	solver.MaxExpansions = 6
	interval, err := solver.WidthAtFraction(f, 0, f(0), 0.5)
	require.NoError(t, err)
	assert.InEpsilon(t, fwhm(5), interval.Width(), 1e-6)
}

func TestWidthAtFractionIterationCap(t *testing.T) {
	f := gaussian(0, 1)
	solver := &WidthSolver{SearchStep: 1, MaxExpansions: 2, MaxIterations: 1}
	_, err := solver.WidthAtFraction(f, 0, f(0), 0.5)
	assert.True(t, errors.Is(err, common.ErrorNoConvergence))
}

func TestWidthAtFractionInvalid(t *testing.T) {
	solver := NewWidthSolver(1)
	f := gaussian(0, 1)

	for _, ratio := range []float64{0, 1, -0.5, 1.5, math.NaN()} {
		_, err := solver.WidthAtFraction(f, 0, f(0), ratio)
		assert.True(t, errors.Is(err, common.ErrorInvalidValue), "ratio %v", ratio)
	}
	_, err := solver.WidthAtFraction(f, 0, 0, 0.5)
	assert.True(t, errors.Is(err, common.ErrorInvalidValue))
}
