// Package dataset provides the measured (x, y) observation container consumed
// by the fit estimators. A DataSet optionally carries per-point measurement
// uncertainties on either axis.
package dataset

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInsufficientData     = errors.New("need at least 2 observations")
	ErrDatasetLenMismatch   = errors.New("observation series have different lengths")
	ErrNegativeUncertainty  = errors.New("negative uncertainty value")
	ErrNonFiniteData        = errors.New("non-finite observation value")
	ErrNonFiniteUncertainty = errors.New("non-finite uncertainty value")
)

// DataSet stores aligned x and y observations along with optional per-point
// measurement uncertainties for each axis. XErr and YErr are either nil,
// meaning no uncertainty information for that axis, or the same length as X.
// A DataSet is treated as read-only once constructed; estimators borrow it and
// never mutate it.
type DataSet struct {
	X    []float64
	Y    []float64
	XErr []float64
	YErr []float64
}

// New creates a DataSet from the given series, copying all inputs. xerr and
// yerr may be nil. Uncertainties must be non-negative and finite; a zero
// uncertainty is accepted here and its interpretation is left to each
// estimator.
func New(x, y, xerr, yerr []float64) (*DataSet, error) {
	if len(x) < 2 {
		return nil, fmt.Errorf("got %d observations, %w", len(x), ErrInsufficientData)
	}
	if len(y) != len(x) {
		return nil, fmt.Errorf("x has length %d, but y has length %d, %w", len(x), len(y), ErrDatasetLenMismatch)
	}
	if xerr != nil && len(xerr) != len(x) {
		return nil, fmt.Errorf("x has length %d, but xerr has length %d, %w", len(x), len(xerr), ErrDatasetLenMismatch)
	}
	if yerr != nil && len(yerr) != len(x) {
		return nil, fmt.Errorf("x has length %d, but yerr has length %d, %w", len(x), len(yerr), ErrDatasetLenMismatch)
	}

	for i := 0; i < len(x); i++ {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return nil, fmt.Errorf("observation %d, %w", i, ErrNonFiniteData)
		}
	}
	if err := validateUncertainty(xerr); err != nil {
		return nil, fmt.Errorf("xerr: %w", err)
	}
	if err := validateUncertainty(yerr); err != nil {
		return nil, fmt.Errorf("yerr: %w", err)
	}

	d := &DataSet{
		X: append([]float64(nil), x...),
		Y: append([]float64(nil), y...),
	}
	if xerr != nil {
		d.XErr = append([]float64(nil), xerr...)
	}
	if yerr != nil {
		d.YErr = append([]float64(nil), yerr...)
	}
	return d, nil
}

func validateUncertainty(errs []float64) error {
	for i, e := range errs {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return fmt.Errorf("index %d, %w", i, ErrNonFiniteUncertainty)
		}
		if e < 0 {
			return fmt.Errorf("index %d has value %f, %w", i, e, ErrNegativeUncertainty)
		}
	}
	return nil
}

// Len returns the number of observations.
func (d *DataSet) Len() int {
	return len(d.X)
}

// HasXErr reports whether the dataset carries x-axis uncertainties.
func (d *DataSet) HasXErr() bool {
	return d.XErr != nil
}

// HasYErr reports whether the dataset carries y-axis uncertainties.
func (d *DataSet) HasYErr() bool {
	return d.YErr != nil
}

// Copy returns a deep copy of the dataset.
func (d *DataSet) Copy() *DataSet {
	cp := &DataSet{
		X: append([]float64(nil), d.X...),
		Y: append([]float64(nil), d.Y...),
	}
	if d.XErr != nil {
		cp.XErr = append([]float64(nil), d.XErr...)
	}
	if d.YErr != nil {
		cp.YErr = append([]float64(nil), d.YErr...)
	}
	return cp
}
