package fit

import (
	"fmt"

	"github.com/aouyang1/go-linefit/models"
)

// DefaultSigmaMultiplier is the envelope width used when no multiplier is
// given.
const DefaultSigmaMultiplier = 1.0

// Envelope bounds a fitted line by shifting each parameter k standard errors
// in both directions. The two bounding lines track maximal and minimal
// parameter excursions; they are not the extremal-gradient lines through a
// fixed pivot, nor true statistical min/max y-bounds.
type Envelope struct {
	// Upper holds gradient and intercept each shifted up by K standard
	// errors, Lower the same shifted down.
	Upper [2]float64
	Lower [2]float64

	// K is the sigma multiplier the envelope was built with.
	K float64
}

// NewEnvelope derives a confidence envelope from a fit result. k is the sigma
// multiplier; values <= 0 fall back to DefaultSigmaMultiplier. The result
// must carry a valid covariance matrix, so an OLS result (slope error only)
// is rejected with ErrMissingCovariance.
func NewEnvelope(res *Result, k float64) (*Envelope, error) {
	if res == nil {
		return nil, ErrNoResult
	}
	if res.Covariance == nil {
		return nil, ErrMissingCovariance
	}
	if !validCov(res.Covariance) {
		return nil, fmt.Errorf("covariance has invalid entries, %w", ErrMissingCovariance)
	}
	if k <= 0 {
		k = DefaultSigmaMultiplier
	}

	stderr := stdErrFromCov(res.Covariance)
	return &Envelope{
		Upper: [2]float64{res.Params[0] + k*stderr[0], res.Params[1] + k*stderr[1]},
		Lower: [2]float64{res.Params[0] - k*stderr[0], res.Params[1] - k*stderr[1]},
		K:     k,
	}, nil
}

// Curves evaluates the upper and lower bounding lines at every x.
func (e *Envelope) Curves(x []float64) (upper, lower []float64) {
	var line models.Line
	upper = line.EvalSlice(nil, e.Upper[:], x)
	lower = line.EvalSlice(nil, e.Lower[:], x)
	return upper, lower
}
