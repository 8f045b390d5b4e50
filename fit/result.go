// Package fit implements straight-line parameter estimation under three
// statistical models: ordinary least squares, weighted least squares with
// y-only uncertainty, and orthogonal distance regression with uncertainty in
// both axes. All estimators produce a Result which can feed a confidence
// Envelope.
package fit

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/aouyang1/go-linefit/dataset"
)

// Estimator fits a straight line to a dataset.
type Estimator interface {
	Fit(d *dataset.DataSet) (*Result, error)
}

// Result is the immutable outcome of a single estimator invocation.
type Result struct {
	// Params holds the fitted gradient and intercept, in that order.
	Params [2]float64

	// Covariance is the 2x2 covariance matrix of (gradient, intercept) at the
	// optimum. nil when the estimator cannot produce one, e.g. OLS which only
	// estimates the slope standard error.
	Covariance *mat.SymDense

	// StdErr holds the standard errors of the gradient and intercept. OLS
	// populates only the gradient entry and reports NaN for the intercept.
	StdErr [2]float64

	// R is the Pearson correlation coefficient of the observations. Only
	// populated by OLS, indicated by HasR.
	R    float64
	HasR bool

	// Chi2 is the objective value at the optimum and ReducedChi2 the same
	// divided by the degrees of freedom, zero when there are no free degrees.
	Chi2        float64
	ReducedChi2 float64

	// Iterations is the number of solver iterations used, zero for
	// closed-form fits. Converged is false only when an iterative solver
	// stopped at its cap, in which case Params holds the best iterate.
	Iterations int
	Converged  bool
}

// Gradient returns the fitted slope m.
func (r *Result) Gradient() float64 {
	return r.Params[0]
}

// Intercept returns the fitted intercept c.
func (r *Result) Intercept() float64 {
	return r.Params[1]
}

// stdErrFromCov derives element-wise standard errors from the covariance
// diagonal.
func stdErrFromCov(cov *mat.SymDense) [2]float64 {
	return [2]float64{
		math.Sqrt(cov.At(0, 0)),
		math.Sqrt(cov.At(1, 1)),
	}
}

// validCov reports whether a 2x2 covariance is finite with a non-negative
// diagonal. Estimators use this to avoid returning a result that looks valid
// but carries undefined uncertainty.
func validCov(cov *mat.SymDense) bool {
	for i := 0; i < 2; i++ {
		for j := i; j < 2; j++ {
			v := cov.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return cov.At(0, 0) >= 0 && cov.At(1, 1) >= 0
}
