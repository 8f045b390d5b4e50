package fit

import (
	"errors"
)

var (
	// ErrNoDataset is returned when an estimator is invoked without data.
	ErrNoDataset = errors.New("no dataset")

	// ErrDegenerateInput is returned when the observations cannot determine a
	// line, e.g. all x-values identical making the normal equations singular.
	ErrDegenerateInput = errors.New("degenerate input data")

	// ErrInvalidUncertainty is returned when a zero or negative uncertainty is
	// supplied where a weight divisor is required.
	ErrInvalidUncertainty = errors.New("invalid uncertainty for weighting")

	// ErrNotConverged is returned when an iterative solver exhausts its
	// iteration limit or hits a singular system before reaching tolerance.
	ErrNotConverged = errors.New("solver did not converge")

	// ErrMissingCovariance is returned when a covariance matrix is required
	// but absent or fails a positive-definiteness check.
	ErrMissingCovariance = errors.New("no valid covariance matrix")

	ErrNoOptions          = errors.New("no initialized estimator options")
	ErrNegativeIterations = errors.New("negative iterations")
	ErrNegativeTolerance  = errors.New("negative tolerance")
	ErrNoResult           = errors.New("no fit result")
)
