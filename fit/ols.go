package fit

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/aouyang1/go-linefit/dataset"
)

// OLSOptions represents input options for the ordinary least squares
// estimator.
type OLSOptions struct {
	// FitIntercept estimates the intercept when true. When false the line is
	// forced through the origin and only the gradient is estimated.
	FitIntercept bool
}

// NewDefaultOLSOptions returns a default set of OLS options.
func NewDefaultOLSOptions() *OLSOptions {
	return &OLSOptions{
		FitIntercept: true,
	}
}

// Validate runs basic validation on OLS options.
func (o *OLSOptions) Validate() (*OLSOptions, error) {
	if o == nil {
		o = NewDefaultOLSOptions()
	}
	return o, nil
}

// OLS computes the ordinary least squares fit of a line using the closed-form
// normal equations. Uncertainty series on the dataset are ignored. The
// estimator reports the Pearson correlation coefficient and the standard
// error of the gradient; the intercept standard error is not available from
// this method and callers needing it should use WLS.
type OLS struct {
	opt *OLSOptions
}

// NewOLS initializes an OLS estimator. If opt is nil a default is used.
func NewOLS(opt *OLSOptions) (*OLS, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &OLS{opt: opt}, nil
}

// Fit estimates the gradient and intercept minimizing the sum of squared
// vertical residuals. Identical x-values across all observations make the
// system singular and are reported as ErrDegenerateInput.
func (o *OLS) Fit(d *dataset.DataSet) (*Result, error) {
	if o.opt == nil {
		return nil, ErrNoOptions
	}
	if d == nil {
		return nil, ErrNoDataset
	}

	n := d.Len()
	xMean := stat.Mean(d.X, nil)
	if !o.opt.FitIntercept {
		// spread around zero rather than the mean for the through-origin fit
		xMean = 0
	}

	var sxx float64
	for _, xv := range d.X {
		dx := xv - xMean
		sxx += dx * dx
	}
	if sxx == 0 {
		return nil, ErrDegenerateInput
	}

	c, m := stat.LinearRegression(d.X, d.Y, nil, !o.opt.FitIntercept)
	if !o.opt.FitIntercept {
		// stat.LinearRegression returns the slope in beta for the
		// through-origin fit as well, with alpha fixed at zero.
		c = 0
	}

	var chi2 float64
	for i := 0; i < n; i++ {
		r := d.Y[i] - (m*d.X[i] + c)
		chi2 += r * r
	}

	dof := n - 2
	if !o.opt.FitIntercept {
		dof = n - 1
	}

	res := &Result{
		Params:    [2]float64{m, c},
		StdErr:    [2]float64{0, math.NaN()},
		R:         stat.Correlation(d.X, d.Y, nil),
		HasR:      true,
		Chi2:      chi2,
		Converged: true,
	}
	if dof > 0 {
		res.ReducedChi2 = chi2 / float64(dof)
		res.StdErr[0] = math.Sqrt(res.ReducedChi2 / sxx)
	}
	return res, nil
}
