package utils

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

// Linspace returns N evenly spaced values from min to max, both included
func Linspace(N int, min, max float64) (v []float64) {
	switch {
	case N < 1:
		return nil
	case N == 1:
		return []float64{min}
	}
	return floats.Span(make([]float64, N), min, max)
}

// ScaleArray returns a copy of v multiplied by a
func ScaleArray(v []float64, a float64) (r []float64) {
	r = make([]float64, len(v))
	copy(r, v)
	floats.Scale(a, r)
	return
}

func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
