// Package models is a collection of curve functions that can be fit by the
// estimators in the fit package. Estimators are written against the Curve
// interface and never query the concrete model, so additional model functions
// can be added without touching the solvers.
package models

// Curve represents a parameterized model function y = f(params, x). Eval and
// EvalSlice must agree on shared inputs. Implementations are pure and
// stateless; non-finite parameters or inputs produce non-finite outputs
// rather than errors.
type Curve interface {
	// NumParams returns the length of the parameter vector this curve expects.
	NumParams() int

	// Eval evaluates the curve at a single x.
	Eval(params []float64, x float64) float64

	// EvalSlice evaluates the curve at every x, storing results in dst. If dst
	// is nil a new slice is allocated. Returns the result slice.
	EvalSlice(dst, params, x []float64) []float64
}
