package dataset

import (
	"math/rand/v2"
)

// GenerateX produces n evenly spaced x-values starting at x0 with step dx.
func GenerateX(n int, x0, dx float64) []float64 {
	x := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		x = append(x, x0+dx*float64(i))
	}
	return x
}

// GenerateLine evaluates y = m*x + c over the given x-values.
func GenerateLine(x []float64, m, c float64) []float64 {
	y := make([]float64, 0, len(x))
	for _, xv := range x {
		y = append(y, m*xv+c)
	}
	return y
}

// GenerateNoise produces n samples of gaussian noise with the given scale.
func GenerateNoise(n int, scale float64) []float64 {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, rand.NormFloat64()*scale)
	}
	return y
}

// GenerateUniformErr produces an uncertainty series of n copies of val.
func GenerateUniformErr(n int, val float64) []float64 {
	e := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		e = append(e, val)
	}
	return e
}

// AddNoise returns a copy of y with gaussian noise of the given scale added
// to each element.
func AddNoise(y []float64, scale float64) []float64 {
	out := make([]float64, 0, len(y))
	for _, v := range y {
		out = append(out, v+rand.NormFloat64()*scale)
	}
	return out
}
