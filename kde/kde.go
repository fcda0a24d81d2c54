package kde

import (
	"fmt"
	"math"

	"github.com/uyouii/peakcal/common"
	"github.com/uyouii/peakcal/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
)

// KDEUnivariate is a Gaussian kernel density estimate of a one dimensional sample.
type KDEUnivariate struct {
	// sorted copy of the sample
	Endog []float64

	// Divisor of the reference bandwidth. Larger values sharpen the fit,
	// smaller ones smooth it further.
	bwScale float64

	bw     float64
	kernel *GuassianKernel
}

// NewKDEUnivariate fits the estimate. bandWidth may be nil, Scott's rule is used then.
func NewKDEUnivariate(endog []float64, bwScale float64, bandWidth BandWidth) (*KDEUnivariate, error) {
	if len(endog) == 0 {
		return nil, fmt.Errorf("empty sample: %w", common.ErrorInvalidValue)
	}
	if !allFinite(endog) {
		return nil, fmt.Errorf("sample contains non finite values: %w", common.ErrorInvalidValue)
	}
	if !(bwScale > 0) || math.IsInf(bwScale, 0) {
		return nil, fmt.Errorf("bandwidth scale %v: %w", bwScale, common.ErrorInvalidValue)
	}

	sorted := model.Sample(endog).Sorted()
	if distinctCount(sorted, 2) < 2 {
		return nil, fmt.Errorf("sample needs at least 2 distinct values: %w", common.ErrorInvalidValue)
	}

	if bandWidth == nil {
		bandWidth = ScottBandWidth{}
	}

	bw := bandWidth.BandWidth(sorted) / bwScale
	if !(bw > 0) || math.IsInf(bw, 0) {
		return nil, fmt.Errorf("bandwidth %v: %w", bw, common.ErrorInvalidValue)
	}

	kernel := NewGuassianKernel()
	kernel.SetH(bw)

	return &KDEUnivariate{
		Endog:   sorted,
		bwScale: bwScale,
		bw:      bw,
		kernel:  kernel,
	}, nil
}

func (kde *KDEUnivariate) BandWidth() float64 {
	return kde.bw
}

func (kde *KDEUnivariate) Min() float64 {
	return kde.Endog[0]
}

func (kde *KDEUnivariate) Max() float64 {
	return kde.Endog[len(kde.Endog)-1]
}

// Density evaluates the estimate at x.
func (kde *KDEUnivariate) Density(x float64) float64 {
	return kde.kernel.Density(kde.Endog, x)
}

// Evaluate evaluates the estimate at every grid point.
func (kde *KDEUnivariate) Evaluate(grid []float64) []float64 {
	dens := make([]float64, len(grid))
	for i, x := range grid {
		dens[i] = kde.Density(x)
	}
	return dens
}

// Kdensity evaluates the estimate on gridSize evenly spaced points
// spanning [min(sample), max(sample)].
func (kde *KDEUnivariate) Kdensity(gridSize int) []model.Density {
	if gridSize <= 0 {
		gridSize = DefaultGridSize
	}
	grid := linspace(kde.Min(), kde.Max(), gridSize)
	dens := kde.Evaluate(grid)

	res := make([]model.Density, 0, len(grid))
	for i := 0; i < len(grid); i++ {
		res = append(res, model.Density{
			X:     grid[i],
			Value: dens[i],
		})
	}
	return res
}

// Mass integrates the estimate over [lower, upper]. The interval is split
// into bandwidth-wide segments so narrow bumps are not missed.
func (kde *KDEUnivariate) Mass(lower, upper float64) float64 {
	if !(upper > lower) {
		return 0
	}

	segments := int(math.Ceil((upper - lower) / kde.bw))
	segments = min(max(segments, 1), massMaxSegments)
	edges := linspace(lower, upper, segments+1)

	parts := make([]float64, 0, segments)
	for i := 1; i < len(edges); i++ {
		parts = append(parts, quad.Fixed(kde.Density, edges[i-1], edges[i], massQuadPoints, nil, 0))
	}
	return floats.Sum(parts)
}
