package fit

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/aouyang1/go-linefit/models"
)

// fdStep is the relative finite-difference step used for Jacobians.
const fdStep = 1e-7

// gaussNewton minimizes sum_i ((y_i - curve(p, x_i)) / sigma_i)^2 over the
// parameter vector p starting from p0. The Jacobian is taken by forward
// finite differences against the curve interface so the solver never relies
// on the concrete model. Each step is damped by halving until the objective
// does not increase.
//
// Returns the final parameters, the unscaled covariance (J^T J)^-1 at the
// solution, the iteration count, and whether the tolerance was met. A
// singular step system returns ErrDegenerateInput.
func gaussNewton(curve models.Curve, x, y, sigma, p0 []float64, maxIter int, tol float64) ([]float64, *mat.SymDense, int, bool, error) {
	n := len(x)
	np := curve.NumParams()

	p := append([]float64(nil), p0...)
	pred := make([]float64, n)
	pert := make([]float64, n)
	resid := mat.NewVecDense(n, nil)
	jac := mat.NewDense(n, np, nil)
	trial := make([]float64, np)

	objective := func(params []float64) float64 {
		curve.EvalSlice(pred, params, x)
		var s float64
		for i := 0; i < n; i++ {
			r := (y[i] - pred[i]) / sigma[i]
			s += r * r
		}
		return s
	}

	obj := objective(p)
	converged := false
	var iters int
	for iters = 1; iters <= maxIter; iters++ {
		curve.EvalSlice(pred, p, x)
		for i := 0; i < n; i++ {
			resid.SetVec(i, (y[i]-pred[i])/sigma[i])
		}

		for j := 0; j < np; j++ {
			h := fdStep * math.Max(math.Abs(p[j]), 1.0)
			orig := p[j]
			p[j] = orig + h
			curve.EvalSlice(pert, p, x)
			p[j] = orig
			for i := 0; i < n; i++ {
				jac.Set(i, j, (pert[i]-pred[i])/(h*sigma[i]))
			}
		}

		// solve the linearized least squares J dp = resid
		var dp mat.VecDense
		if err := dp.SolveVec(jac, resid); err != nil {
			return p, nil, iters, false, ErrDegenerateInput
		}

		// halve the step until the objective stops increasing
		scale := 1.0
		var next float64
		for k := 0; k < 30; k++ {
			for j := 0; j < np; j++ {
				trial[j] = p[j] + scale*dp.AtVec(j)
			}
			next = objective(trial)
			if next <= obj || math.IsNaN(obj) {
				break
			}
			scale /= 2
		}

		maxStep := 0.0
		maxParam := 0.0
		for j := 0; j < np; j++ {
			maxStep = math.Max(maxStep, math.Abs(trial[j]-p[j]))
			maxParam = math.Max(maxParam, math.Abs(trial[j]))
		}
		copy(p, trial)
		obj = next

		if maxStep <= tol*math.Max(maxParam, 1.0) {
			converged = true
			break
		}
	}
	if iters > maxIter {
		iters = maxIter
	}

	cov, err := unscaledCov(jac)
	if err != nil {
		return p, nil, iters, converged, err
	}
	return p, cov, iters, converged, nil
}

// unscaledCov computes (J^T J)^-1 from the final weighted Jacobian.
func unscaledCov(jac *mat.Dense) (*mat.SymDense, error) {
	_, np := jac.Dims()

	var jtj mat.Dense
	jtj.Mul(jac.T(), jac)

	var inv mat.Dense
	if err := inv.Inverse(&jtj); err != nil {
		return nil, ErrDegenerateInput
	}

	cov := mat.NewSymDense(np, nil)
	for i := 0; i < np; i++ {
		for j := i; j < np; j++ {
			// average the off-diagonal pair to keep the matrix exactly
			// symmetric under floating point
			cov.SetSym(i, j, (inv.At(i, j)+inv.At(j, i))/2)
		}
	}
	return cov, nil
}

// weightedNormalEquations solves the weighted least squares problem for the
// line in closed form, returning the parameters and the unscaled covariance
// (A^T W A)^-1 where A is the [x, 1] design matrix and W = diag(1/sigma^2).
func weightedNormalEquations(x, y, sigma []float64) ([2]float64, *mat.SymDense, error) {
	var sw, swx, swxx, swy, swxy float64
	for i := 0; i < len(x); i++ {
		w := 1.0 / (sigma[i] * sigma[i])
		sw += w
		swx += w * x[i]
		swxx += w * x[i] * x[i]
		swy += w * y[i]
		swxy += w * x[i] * y[i]
	}

	det := swxx*sw - swx*swx
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return [2]float64{}, nil, ErrDegenerateInput
	}

	m := (sw*swxy - swx*swy) / det
	c := (swxx*swy - swx*swxy) / det

	cov := mat.NewSymDense(2, []float64{
		sw / det, -swx / det,
		-swx / det, swxx / det,
	})
	return [2]float64{m, c}, cov, nil
}

// chi2Weighted computes the weighted sum of squared residuals for a line.
func chi2Weighted(x, y, sigma []float64, m, c float64) float64 {
	var s float64
	for i := 0; i < len(x); i++ {
		r := (y[i] - (m*x[i] + c)) / sigma[i]
		s += r * r
	}
	return s
}
