package kde

import (
	"fmt"
	"math"

	"github.com/uyouii/peakcal/common"
	"gonum.org/v1/gonum/stat"
)

const (
	BandWidthScott           = "scott"
	BandWidthNormalReference = "normal_reference"
)

// BandWidth computes the reference bandwidth of a sorted sample.
type BandWidth interface {
	BandWidth([]float64) float64
}

// NewBandWidth returns the bandwidth rule registered under name.
// An empty name selects Scott's rule.
func NewBandWidth(name string) (BandWidth, error) {
	switch name {
	case "", BandWidthScott:
		return ScottBandWidth{}, nil
	case BandWidthNormalReference:
		return NewNormalReferenceBandWidth(nil), nil
	}
	return nil, fmt.Errorf("unknown bandwidth rule %q: %w", name, common.ErrorInvalidValue)
}

// ScottBandWidth is sigma * n^(-1/5) with sigma the sample standard deviation.
type ScottBandWidth struct{}

func (ScottBandWidth) BandWidth(x []float64) float64 {
	return stat.StdDev(x, nil) * math.Pow(float64(len(x)), -0.2)
}

type NormalReferenceBandWidth struct {
	kernel Kernel
}

func NewNormalReferenceBandWidth(kernel Kernel) *NormalReferenceBandWidth {
	if kernel == nil {
		kernel = NewGuassianKernel()
	}
	return &NormalReferenceBandWidth{
		kernel: kernel,
	}
}

func (bw *NormalReferenceBandWidth) BandWidth(x []float64) float64 {
	C := bw.kernel.NormalReferenceConstant()
	A := selectSigma(x)
	n := len(x)
	return C * A * math.Pow(float64(n), -0.2)
}

func selectSigma(x []float64) float64 {
	normalize := 1.349

	q75 := stat.Quantile(0.75, stat.Empirical, x, nil)
	q25 := stat.Quantile(0.25, stat.Empirical, x, nil)
	iqr := (q75 - q25) / normalize

	stdDev := stat.StdDev(x, nil)

	if iqr > 0 {
		if stdDev < iqr {
			return stdDev
		}
		return iqr
	}
	return stdDev
}
