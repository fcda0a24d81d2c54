package kde

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

func factorial(n int) float64 {
	result := 1.0
	for i := 2; i <= n; i++ {
		result *= float64(i)
	}
	return result
}

func linspace(start, stop float64, num int) []float64 {
	if num < 2 {
		return []float64{start}
	}
	grid := floats.Span(make([]float64, num), start, stop)
	grid[num-1] = stop
	return grid
}

func allFinite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// distinctCount counts distinct values of a sorted slice, stopping at limit.
func distinctCount(sorted []float64, limit int) int {
	if len(sorted) == 0 {
		return 0
	}
	cnt := 1
	for i := 1; i < len(sorted) && cnt < limit; i++ {
		if sorted[i] != sorted[i-1] {
			cnt++
		}
	}
	return cnt
}
