package peak

import (
	"fmt"
	"math"

	"github.com/uyouii/peakcal/common"
	"gonum.org/v1/gonum/diff/fd"
)

// levelCrossing is the residual f(x) - target. Its roots are the points
// where f crosses the target level.
type levelCrossing struct {
	f      func(float64) float64
	target float64
}

func (c levelCrossing) residual(x float64) float64 {
	return c.f(x) - c.target
}

// bracket walks away from origin in direction dir with the given step and
// returns the first interval [a, b] (a nearer origin) on which the residual
// changes sign. The residual at origin must be positive.
func (c levelCrossing) bracket(origin, dir, step float64, maxSteps int) (float64, float64, error) {
	ra := c.residual(origin)
	if math.IsNaN(ra) {
		return 0, 0, fmt.Errorf("residual is NaN at %v: %w", origin, common.ErrorNoConvergence)
	}
	if ra <= 0 {
		return 0, 0, fmt.Errorf("level %v is not below f(%v): %w", c.target, origin, common.ErrorNoConvergence)
	}

	a := origin
	for i := 1; i <= maxSteps; i++ {
		b := origin + dir*step*float64(i)
		rb := c.residual(b)
		if math.IsNaN(rb) {
			return 0, 0, fmt.Errorf("residual is NaN at %v: %w", b, common.ErrorNoConvergence)
		}
		if rb <= 0 {
			return a, b, nil
		}
		a = b
	}
	return 0, 0, fmt.Errorf("no crossing within %v of %v: %w",
		step*float64(maxSteps), origin, common.ErrorNoConvergence)
}

// refine finds the root inside a bracket with residual(a) > 0 >= residual(b).
// Newton steps are taken while they stay inside the bracket, bisection otherwise.
func (c levelCrossing) refine(a, b float64, maxIterations int, tolerance float64) (float64, error) {
	if c.residual(b) == 0 {
		return b, nil
	}

	// residual(lo) < 0 < residual(hi)
	lo, hi := b, a
	x := a + (b-a)/2
	settings := &fd.Settings{Formula: fd.Central}

	for i := 0; i < maxIterations; i++ {
		fx := c.residual(x)
		switch {
		case math.IsNaN(fx):
			return 0, fmt.Errorf("residual is NaN at %v: %w", x, common.ErrorNoConvergence)
		case fx == 0:
			return x, nil
		case fx < 0:
			lo = x
		default:
			hi = x
		}

		next := x - fx/fd.Derivative(c.residual, x, settings)
		if math.IsNaN(next) || math.IsInf(next, 0) || !between(next, lo, hi) {
			next = lo + (hi-lo)/2
		}

		eps := tolerance * (1 + math.Abs(x))
		if math.Abs(next-x) <= eps || math.Abs(hi-lo) <= eps {
			return next, nil
		}
		x = next
	}
	return 0, fmt.Errorf("no convergence after %d iterations in [%v, %v]: %w",
		maxIterations, a, b, common.ErrorNoConvergence)
}

// between reports whether x lies strictly inside the interval spanned by a and b.
func between(x, a, b float64) bool {
	if a > b {
		a, b = b, a
	}
	return a < x && x < b
}
