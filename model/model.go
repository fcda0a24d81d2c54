package model

import (
	"fmt"
	"sort"
)

// Sample holds the column values of the events selected for one category.
type Sample []float64

func (s Sample) IsEmpty() bool {
	return len(s) == 0
}

// Sorted returns a sorted copy, the sample itself is left untouched.
func (s Sample) Sorted() []float64 {
	res := make([]float64, len(s))
	copy(res, s)
	sort.Float64s(res)
	return res
}

// Between returns the values inside [lower, upper).
func (s Sample) Between(r Range) Sample {
	res := Sample{}
	for _, v := range s {
		if r.ContainsHalfOpen(v) {
			res = append(res, v)
		}
	}
	return res
}

type Range struct {
	Lower float64 `json:"min"`
	Upper float64 `json:"max"`
}

// Contains reports whether x lies in the closed range [Lower, Upper].
func (r Range) Contains(x float64) bool {
	return r.Lower <= x && x <= r.Upper
}

// ContainsHalfOpen reports whether x lies in [Lower, Upper).
func (r Range) ContainsHalfOpen(x float64) bool {
	return r.Lower <= x && x < r.Upper
}

func (r Range) Valid() bool {
	return r.Lower < r.Upper
}

func (r Range) String() string {
	return fmt.Sprintf("[%v, %v]", r.Lower, r.Upper)
}

// Category describes a particle type by its PDG code.
// ReferenceLines are the expected peak positions drawn by reporting layers.
type Category struct {
	Code           int       `json:"code" yaml:"code"`
	Name           string    `json:"name" yaml:"name"`
	ReferenceLines []float64 `json:"reference_lines,omitempty" yaml:"reference_lines,omitempty"`
}

func (c *Category) DebugString() string {
	return fmt.Sprintf("pdg: %v, name: %v, referenceLines: %+v", c.Code, c.Name, c.ReferenceLines)
}
