package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/aouyang1/go-linefit/dataset"
)

const (
	DefaultODRIterations = 200
	DefaultODRTolerance  = 1e-10

	// hessStep is the relative step for the finite-difference Hessian of the
	// profiled objective, sized for second differences.
	hessStep = 6e-6
)

// ODROptions represents input options for the orthogonal distance regression
// estimator.
type ODROptions struct {
	// InitialGuess seeds the outer iteration with the given gradient and
	// intercept. When nil the OLS estimate is used.
	InitialGuess []float64

	// Iterations is the maximum number of outer iterations over the gradient.
	Iterations int

	// Tolerance is the relative parameter change below which the outer
	// iteration stops.
	Tolerance float64
}

// NewDefaultODROptions returns a default set of ODR options.
func NewDefaultODROptions() *ODROptions {
	return &ODROptions{
		Iterations: DefaultODRIterations,
		Tolerance:  DefaultODRTolerance,
	}
}

// Validate runs basic validation on ODR options.
func (o *ODROptions) Validate() (*ODROptions, error) {
	if o == nil {
		o = NewDefaultODROptions()
	}
	if o.Iterations < 0 {
		return nil, ErrNegativeIterations
	}
	if o.Tolerance < 0 {
		return nil, ErrNegativeTolerance
	}
	if o.InitialGuess != nil && len(o.InitialGuess) != 2 {
		return nil, fmt.Errorf("initial guess has %d values instead of 2, %w", len(o.InitialGuess), ErrNoOptions)
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultODRIterations
	}
	if o.Tolerance == 0 {
		o.Tolerance = DefaultODRTolerance
	}
	return o, nil
}

// ODR computes the orthogonal distance regression fit of a line, accounting
// for measurement uncertainty in both axes. For each candidate line the
// latent true-x of every observation has a closed-form orthogonal projection,
// which collapses the per-point weight to 1/(sigma_y^2 + m^2*sigma_x^2). The
// outer iteration re-solves the weighted line for the current gradient until
// the parameters stop moving.
//
// A zero or missing uncertainty on either axis is substituted with a unit
// weight for that axis, so a dataset with no uncertainty information degrades
// to an unweighted orthogonal fit.
type ODR struct {
	opt *ODROptions
}

// NewODR initializes an ODR estimator. If opt is nil a default is used.
func NewODR(opt *ODROptions) (*ODR, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &ODR{opt: opt}, nil
}

// Fit estimates the gradient and intercept minimizing the orthogonal distance
// objective. The covariance comes from the curvature of the profiled
// objective at the optimum rather than the weighted least squares formula,
// since eliminating the latent x-values changes the structure of the
// curvature. When the iteration cap is hit before reaching tolerance the best
// iterate is returned with Converged set to false alongside ErrNotConverged.
func (o *ODR) Fit(d *dataset.DataSet) (*Result, error) {
	if o.opt == nil {
		return nil, ErrNoOptions
	}
	if d == nil {
		return nil, ErrNoDataset
	}

	n := d.Len()
	sx2 := make([]float64, n)
	sy2 := make([]float64, n)
	for i := 0; i < n; i++ {
		sx2[i] = unitIfZero(d.XErr, i)
		sy2[i] = unitIfZero(d.YErr, i)
	}

	m, c, err := o.seed(d)
	if err != nil {
		return nil, err
	}

	objective := func(m, c float64) float64 {
		var s float64
		for i := 0; i < n; i++ {
			w := 1.0 / (sy2[i] + m*m*sx2[i])
			r := d.Y[i] - (m*d.X[i] + c)
			s += w * r * r
		}
		return s
	}

	converged := false
	var iters int
	for iters = 1; iters <= o.opt.Iterations; iters++ {
		mNext, cNext, err := odrStep(d.X, d.Y, sx2, sy2, m)
		if err != nil {
			return nil, err
		}

		dm := math.Abs(mNext - m)
		dc := math.Abs(cNext - c)
		m, c = mNext, cNext
		if dm <= o.opt.Tolerance*math.Max(math.Abs(m), 1.0) &&
			dc <= o.opt.Tolerance*math.Max(math.Abs(c), 1.0) {
			converged = true
			break
		}
	}
	if iters > o.opt.Iterations {
		iters = o.opt.Iterations
	}

	chi2 := objective(m, c)
	var redChi2 float64
	if dof := n - 2; dof > 0 {
		redChi2 = chi2 / float64(dof)
	}

	res := &Result{
		Params:      [2]float64{m, c},
		Chi2:        chi2,
		ReducedChi2: redChi2,
		Iterations:  iters,
		Converged:   converged,
	}
	if !converged {
		return res, fmt.Errorf("stopped after %d iterations, %w", iters, ErrNotConverged)
	}

	cov, err := profiledCov(objective, m, c, redChi2)
	if err != nil {
		return res, err
	}
	res.Covariance = cov
	res.StdErr = stdErrFromCov(cov)
	return res, nil
}

func (o *ODR) seed(d *dataset.DataSet) (float64, float64, error) {
	if o.opt.InitialGuess != nil {
		return o.opt.InitialGuess[0], o.opt.InitialGuess[1], nil
	}
	ols, err := NewOLS(nil)
	if err != nil {
		return 0, 0, err
	}
	seed, err := ols.Fit(d)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to seed with ols estimate, %w", err)
	}
	return seed.Params[0], seed.Params[1], nil
}

// odrStep solves the weighted line for the weights induced by the current
// gradient, following the York iteration.
func odrStep(x, y, sx2, sy2 []float64, m float64) (float64, float64, error) {
	n := len(x)

	var sw, swx, swy float64
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		w[i] = 1.0 / (sy2[i] + m*m*sx2[i])
		sw += w[i]
		swx += w[i] * x[i]
		swy += w[i] * y[i]
	}
	xBar := swx / sw
	yBar := swy / sw

	var num, den float64
	for i := 0; i < n; i++ {
		u := x[i] - xBar
		v := y[i] - yBar
		beta := w[i] * (u*sy2[i] + m*v*sx2[i])
		num += w[i] * beta * v
		den += w[i] * beta * u
	}
	if den == 0 || math.IsNaN(num/den) {
		return 0, 0, ErrDegenerateInput
	}

	mNext := num / den
	return mNext, yBar - mNext*xBar, nil
}

// profiledCov estimates the parameter covariance from a central
// finite-difference Hessian of the profiled objective, rescaled by the
// reduced chi-square. For a chi-square objective the covariance is twice the
// inverse Hessian.
func profiledCov(objective func(m, c float64) float64, m, c, redChi2 float64) (*mat.SymDense, error) {
	hm := hessStep * math.Max(math.Abs(m), 1.0)
	hc := hessStep * math.Max(math.Abs(c), 1.0)

	s0 := objective(m, c)
	hmm := (objective(m+hm, c) - 2*s0 + objective(m-hm, c)) / (hm * hm)
	hcc := (objective(m, c+hc) - 2*s0 + objective(m, c-hc)) / (hc * hc)
	hmc := (objective(m+hm, c+hc) - objective(m+hm, c-hc) -
		objective(m-hm, c+hc) + objective(m-hm, c-hc)) / (4 * hm * hc)

	det := hmm*hcc - hmc*hmc
	if hmm <= 0 || hcc <= 0 || det <= 0 {
		return nil, fmt.Errorf("objective curvature is not positive definite, %w", ErrMissingCovariance)
	}

	// invert the 2x2 Hessian; covariance is 2 H^-1 scaled by the reduced
	// chi-square so exact data reports vanishing uncertainty
	scale := 2 * redChi2
	cov := mat.NewSymDense(2, []float64{
		scale * hcc / det, -scale * hmc / det,
		-scale * hmc / det, scale * hmm / det,
	})
	if !validCov(cov) {
		return nil, fmt.Errorf("non-finite covariance from objective curvature, %w", ErrMissingCovariance)
	}
	return cov, nil
}

// unitIfZero returns the squared uncertainty at i, substituting a unit weight
// when the series is missing or the value is not positive.
func unitIfZero(errs []float64, i int) float64 {
	if errs == nil || errs[i] <= 0 {
		return 1.0
	}
	return errs[i] * errs[i]
}
