package peak

import (
	"fmt"
	"math"

	"github.com/uyouii/peakcal/common"
	"github.com/uyouii/peakcal/model"
)

// WidthSolver measures the width of a peak at a fraction of its height.
// Zero fields take the package defaults.
type WidthSolver struct {
	// SearchStep is the offset of the initial guesses from the peak.
	SearchStep    float64
	ScanDivisions int
	MaxExpansions int
	MaxIterations int
	Tolerance     float64
}

func NewWidthSolver(searchStep float64) *WidthSolver {
	return &WidthSolver{
		SearchStep:    searchStep,
		ScanDivisions: DefaultScanDivisions,
		MaxExpansions: DefaultMaxExpansions,
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
	}
}

func (s *WidthSolver) withDefaults() WidthSolver {
	res := *s
	if res.SearchStep <= 0 {
		res.SearchStep = DefaultSearchStep
	}
	if res.ScanDivisions <= 0 {
		res.ScanDivisions = DefaultScanDivisions
	}
	if res.MaxExpansions < 0 {
		res.MaxExpansions = 0
	}
	if res.MaxIterations <= 0 {
		res.MaxIterations = DefaultMaxIterations
	}
	if res.Tolerance <= 0 {
		res.Tolerance = DefaultTolerance
	}
	return res
}

// WidthAtFraction finds the crossings of ratio*peakDensity left and right of
// peakX. The search for each crossing is seeded at peakX -/+ SearchStep and
// only looks outward from the peak, so the crossing nearest the peak wins even
// when the density has other modes. Failures wrap common.ErrorNoConvergence.
func (s *WidthSolver) WidthAtFraction(density func(float64) float64,
	peakX, peakDensity, ratio float64) (model.WidthInterval, error) {
	if !(ratio > 0 && ratio < 1) {
		return model.WidthInterval{}, fmt.Errorf("height ratio %v: %w", ratio, common.ErrorInvalidValue)
	}
	if !(peakDensity > 0) || math.IsInf(peakDensity, 0) {
		return model.WidthInterval{}, fmt.Errorf("peak density %v: %w", peakDensity, common.ErrorInvalidValue)
	}

	c := levelCrossing{f: density, target: ratio * peakDensity}

	left, err := s.crossing(c, peakX, -1)
	if err != nil {
		return model.WidthInterval{}, fmt.Errorf("left crossing of peak at %v: %w", peakX, err)
	}
	right, err := s.crossing(c, peakX, 1)
	if err != nil {
		return model.WidthInterval{}, fmt.Errorf("right crossing of peak at %v: %w", peakX, err)
	}

	return model.WidthInterval{
		Left:   left,
		Right:  right,
		Target: c.target,
	}, nil
}

func (s *WidthSolver) crossing(c levelCrossing, peakX, dir float64) (float64, error) {
	cfg := s.withDefaults()
	step := cfg.SearchStep / float64(cfg.ScanDivisions)
	maxSteps := cfg.ScanDivisions * (1 + cfg.MaxExpansions)

	a, b, err := c.bracket(peakX, dir, step, maxSteps)
	if err != nil {
		return 0, err
	}
	return c.refine(a, b, cfg.MaxIterations, cfg.Tolerance)
}
