package peak

import (
	"fmt"
	"math"

	"github.com/uyouii/peakcal/common"
	"github.com/uyouii/peakcal/model"
	"gonum.org/v1/gonum/stat"
)

// EstimateUncertainty summarizes the sample values in [r.Lower, r.Upper).
//
// The standard deviation is the population one (divided by n). The standard
// error of the peak position is std/sqrt(n) and of the width std/sqrt(2n).
func EstimateUncertainty(sample []float64, r model.Range) (*model.UncertaintySummary, error) {
	values := model.Sample(sample).Between(r)
	n := len(values)
	if n == 0 {
		return nil, fmt.Errorf("range [%v, %v): %w", r.Lower, r.Upper, common.ErrorEmptyRange)
	}

	mean, std := stat.PopMeanStdDev(values, nil)

	return &model.UncertaintySummary{
		Range:    r,
		Count:    n,
		Mean:     mean,
		StdDev:   std,
		SEMPeak:  std / math.Sqrt(float64(n)),
		SEMWidth: std / math.Sqrt(2*float64(n)),
	}, nil
}
