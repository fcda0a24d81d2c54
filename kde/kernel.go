package kde

import (
	"math"
)

type Kernel interface {
	NormalReferenceConstant() float64
}

type GuassianKernel struct {
	l2Norm                  float64
	kernelVar               float64
	order                   int
	normalReferenceConstant float64
	h                       float64
}

func NewGuassianKernel() *GuassianKernel {
	return &GuassianKernel{
		l2Norm:                  1.0 / (2.0 * math.Sqrt(math.Pi)),
		kernelVar:               1.0,
		order:                   2.0,
		normalReferenceConstant: 0,
		h:                       1.0,
	}
}

func (k *GuassianKernel) SetH(h float64) {
	k.h = h
}

func (k *GuassianKernel) H() float64 {
	return k.h
}

// Shape is the standard normal pdf.
func (k *GuassianKernel) Shape(x float64) float64 {
	return 0.3989422804014327 * math.Exp(-x*x/2.0)
}

func (k *GuassianKernel) NormalReferenceConstant() float64 {
	nu := k.order
	if k.normalReferenceConstant == 0 {
		numerator := math.Pow(math.Pi, 0.5) * math.Pow(factorial(nu), 3) * k.l2Norm
		denom := 2.0 * float64(nu) * factorial(2*nu) * math.Pow(k.Moments(nu), 2)
		C := 2 * math.Pow(numerator/denom, 1.0/float64(2*nu+1))
		k.normalReferenceConstant = C
	}
	return k.normalReferenceConstant
}

func (k *GuassianKernel) Moments(n int) float64 {
	if n == 1 {
		return 0
	}
	if n == 2 {
		return k.kernelVar
	}
	return 1.0
}

// Density evaluates the kernel sum of xs at x, normalized to unit area.
func (k *GuassianKernel) Density(xs []float64, x float64) float64 {
	n := len(xs)

	if len(xs) == 0 {
		return math.NaN()
	}

	h := k.h
	var sum float64 = 0.0
	for _, xi := range xs {
		u := (xi - x) / h
		sum += k.Shape(u)
	}
	return (1 / (h * float64(n))) * sum
}
