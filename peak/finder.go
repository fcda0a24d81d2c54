package peak

import "github.com/uyouii/peakcal/model"

// FindPeaks returns the strict local maxima of an evaluated density grid in
// ascending x order. The first and last grid points are never peaks.
func FindPeaks(grid []model.Density) []model.Peak {
	peaks := []model.Peak{}
	for i := 1; i < len(grid)-1; i++ {
		if isMaximum(grid, i) {
			peaks = append(peaks, model.Peak{
				Index:   i,
				X:       grid[i].X,
				Density: grid[i].Value,
			})
		}
	}
	return peaks
}

func isMaximum(grid []model.Density, i int) bool {
	return grid[i].Value > grid[i-1].Value && grid[i].Value > grid[i+1].Value
}

// FilterPeaks keeps the peaks whose x lies in the closed range r.
func FilterPeaks(peaks []model.Peak, r model.Range) []model.Peak {
	res := []model.Peak{}
	for _, p := range peaks {
		if r.Contains(p.X) {
			res = append(res, p)
		}
	}
	return res
}
