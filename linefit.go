// Package linefit fits a two-parameter straight line, y = m*x + c, to
// measured observations, optionally accounting for measurement uncertainty in
// y only or in both axes. A Fitter runs up to three estimators over the same
// dataset, ordinary least squares, weighted least squares, and orthogonal
// distance regression, and exposes the fitted parameters, their standard
// errors, and confidence envelopes around the fitted line.
package linefit

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aouyang1/go-linefit/dataset"
	"github.com/aouyang1/go-linefit/fit"
	"github.com/aouyang1/go-linefit/models"
)

var (
	ErrEmptyDataset = errors.New("no dataset or uninitialized")
	ErrNotFit       = errors.New("fitter has not been run yet")
	ErrNoEstimates  = errors.New("no estimator produced a result")
)

// Results collects the outcome of each estimator that ran on the dataset.
// Entries are nil for estimators that were skipped or failed outright.
type Results struct {
	OLS *fit.Result
	WLS *fit.Result
	ODR *fit.Result
}

// Best returns the preferred result: ODR when it converged, then WLS, then
// OLS. Returns nil when no estimator produced a result.
func (r *Results) Best() *fit.Result {
	if r == nil {
		return nil
	}
	if r.ODR != nil && r.ODR.Converged {
		return r.ODR
	}
	if r.WLS != nil && r.WLS.Converged {
		return r.WLS
	}
	return r.OLS
}

// Fitter fits a straight line to a dataset and can be used to evaluate the
// fitted line and its confidence envelope.
type Fitter struct {
	opt *Options

	data    *dataset.DataSet
	results *Results
}

// New creates a new instance of a Fitter using the provided options. If no
// options are provided a default is used.
func New(opt *Options) (*Fitter, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &Fitter{opt: opt}, nil
}

// Fit runs the estimators over the input dataset. OLS always runs and seeds
// the others. WLS requires y-uncertainties and ODR x-uncertainties; when a
// dataset lacks them the corresponding estimator is skipped with a warning.
// The estimators share no mutable state so WLS and ODR run concurrently.
// A non-converged iterative fit keeps its best iterate in Results while the
// error is still reported.
func (f *Fitter) Fit(d *dataset.DataSet) error {
	if d == nil || d.Len() == 0 {
		return ErrEmptyDataset
	}
	f.data = d.Copy()

	ols, err := fit.NewOLS(f.opt.OLS)
	if err != nil {
		return err
	}
	olsRes, err := ols.Fit(f.data)
	if err != nil {
		return fmt.Errorf("unable to fit ols estimate, %w", err)
	}

	res := &Results{OLS: olsRes}

	var wg sync.WaitGroup
	var wlsErr, odrErr error

	if f.data.HasYErr() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wls, err := fit.NewWLS(f.opt.WLS)
			if err != nil {
				wlsErr = err
				return
			}
			res.WLS, wlsErr = wls.Fit(f.data)
		}()
	} else {
		slog.Warn("dataset has no y uncertainties, skipping wls estimate")
	}

	if f.data.HasXErr() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			opt := fit.NewDefaultODROptions()
			if f.opt.ODR != nil {
				optCopy := *f.opt.ODR
				opt = &optCopy
			}
			if opt.InitialGuess == nil {
				opt.InitialGuess = []float64{olsRes.Params[0], olsRes.Params[1]}
			}
			odr, err := fit.NewODR(opt)
			if err != nil {
				odrErr = err
				return
			}
			res.ODR, odrErr = odr.Fit(f.data)
		}()
	} else {
		slog.Warn("dataset has no x uncertainties, skipping odr estimate")
	}
	wg.Wait()

	f.results = res
	return errors.Join(wlsErr, odrErr)
}

// Results returns the per-estimator fit results.
func (f *Fitter) Results() (*Results, error) {
	if f.results == nil {
		return nil, ErrNotFit
	}
	return f.results, nil
}

// Predict evaluates the preferred fitted line at every x.
func (f *Fitter) Predict(x []float64) ([]float64, error) {
	best, err := f.best()
	if err != nil {
		return nil, err
	}
	var line models.Line
	return line.EvalSlice(nil, best.Params[:], x), nil
}

// Envelope derives the k-sigma confidence envelope of the preferred result.
// k values <= 0 fall back to the configured SigmaMultiplier.
func (f *Fitter) Envelope(k float64) (*fit.Envelope, error) {
	best, err := f.best()
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		k = f.opt.SigmaMultiplier
	}
	return fit.NewEnvelope(best, k)
}

func (f *Fitter) best() (*fit.Result, error) {
	if f.results == nil {
		return nil, ErrNotFit
	}
	best := f.results.Best()
	if best == nil {
		return nil, ErrNoEstimates
	}
	return best, nil
}

// TrainingData returns a copy of the dataset the fitter was last fit with.
func (f *Fitter) TrainingData() (*dataset.DataSet, error) {
	if f.data == nil {
		return nil, ErrEmptyDataset
	}
	return f.data.Copy(), nil
}
