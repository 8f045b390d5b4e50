package fit

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/aouyang1/go-linefit/dataset"
	"github.com/aouyang1/go-linefit/models"
)

const (
	DefaultWLSIterations = 100
	DefaultWLSTolerance  = 1e-10
)

// WLSOptions represents input options for the weighted least squares
// estimator.
type WLSOptions struct {
	// AbsoluteSigma treats the y-uncertainties as calibrated physical
	// measurement errors and uses the covariance (A^T W A)^-1 directly. When
	// false the uncertainties are taken as relative weights and the
	// covariance is rescaled by the reduced chi-square of the fit.
	AbsoluteSigma bool

	// UseNormalEquations solves the weighted normal equations in closed form
	// instead of running the iterative solver. Both paths produce the same
	// parameters for the line; the solver path exists so future non-linear
	// curves fit through the same estimator.
	UseNormalEquations bool

	// Iterations is the maximum number of solver iterations.
	Iterations int

	// Tolerance is the relative parameter change below which the solver
	// stops iterating.
	Tolerance float64
}

// NewDefaultWLSOptions returns a default set of WLS options.
func NewDefaultWLSOptions() *WLSOptions {
	return &WLSOptions{
		Iterations: DefaultWLSIterations,
		Tolerance:  DefaultWLSTolerance,
	}
}

// Validate runs basic validation on WLS options.
func (w *WLSOptions) Validate() (*WLSOptions, error) {
	if w == nil {
		w = NewDefaultWLSOptions()
	}
	if w.Iterations < 0 {
		return nil, ErrNegativeIterations
	}
	if w.Tolerance < 0 {
		return nil, ErrNegativeTolerance
	}
	if w.Iterations == 0 {
		w.Iterations = DefaultWLSIterations
	}
	if w.Tolerance == 0 {
		w.Tolerance = DefaultWLSTolerance
	}
	return w, nil
}

// WLS computes the weighted least squares fit of a line, minimizing the sum
// of squared vertical residuals each scaled by its inverse y-uncertainty.
// Every y-uncertainty must be strictly positive; a zero value is rejected as
// ErrInvalidUncertainty rather than silently producing an infinite weight.
type WLS struct {
	opt *WLSOptions
}

// NewWLS initializes a WLS estimator. If opt is nil a default is used.
func NewWLS(opt *WLSOptions) (*WLS, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &WLS{opt: opt}, nil
}

// Fit estimates the gradient and intercept along with their covariance. The
// iterative path is seeded with the OLS estimate. When the dataset has fewer
// than 3 observations there are no free degrees, and the reduced chi-square
// and relative-sigma covariance scaling are reported as zero.
func (w *WLS) Fit(d *dataset.DataSet) (*Result, error) {
	if w.opt == nil {
		return nil, ErrNoOptions
	}
	if d == nil {
		return nil, ErrNoDataset
	}
	if !d.HasYErr() {
		return nil, fmt.Errorf("dataset has no y uncertainties, %w", ErrInvalidUncertainty)
	}
	for i, s := range d.YErr {
		if s <= 0 {
			return nil, fmt.Errorf("y uncertainty at %d is %f, %w", i, s, ErrInvalidUncertainty)
		}
	}

	var (
		params    [2]float64
		cov       *mat.SymDense
		iters     int
		converged bool
	)
	if w.opt.UseNormalEquations {
		var err error
		params, cov, err = weightedNormalEquations(d.X, d.Y, d.YErr)
		if err != nil {
			return nil, err
		}
		converged = true
	} else {
		ols, err := NewOLS(nil)
		if err != nil {
			return nil, err
		}
		seed, err := ols.Fit(d)
		if err != nil {
			return nil, fmt.Errorf("unable to seed solver with ols estimate, %w", err)
		}

		p, c, n, ok, err := gaussNewton(
			models.Line{}, d.X, d.Y, d.YErr, seed.Params[:],
			w.opt.Iterations, w.opt.Tolerance,
		)
		if err != nil {
			return nil, err
		}
		params = [2]float64{p[0], p[1]}
		cov = c
		iters = n
		converged = ok
	}

	chi2 := chi2Weighted(d.X, d.Y, d.YErr, params[0], params[1])
	var redChi2 float64
	if dof := d.Len() - 2; dof > 0 {
		redChi2 = chi2 / float64(dof)
	}
	if !w.opt.AbsoluteSigma {
		cov.ScaleSym(redChi2, cov)
	}
	if !validCov(cov) {
		return nil, fmt.Errorf("weighted fit produced non-finite covariance, %w", ErrMissingCovariance)
	}

	res := &Result{
		Params:      params,
		Covariance:  cov,
		StdErr:      stdErrFromCov(cov),
		Chi2:        chi2,
		ReducedChi2: redChi2,
		Iterations:  iters,
		Converged:   converged,
	}
	if !converged {
		return res, fmt.Errorf("stopped after %d iterations, %w", iters, ErrNotConverged)
	}
	return res, nil
}
