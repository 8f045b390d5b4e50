package linefit

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/aouyang1/go-linefit/fit"
)

// Estimate is the serializable snapshot of a single estimator result. Standard
// errors are pointers since not every estimator produces both, e.g. OLS has no
// intercept error.
type Estimate struct {
	Gradient  float64 `json:"gradient"`
	Intercept float64 `json:"intercept"`

	GradientErr  *float64 `json:"gradient_err,omitempty"`
	InterceptErr *float64 `json:"intercept_err,omitempty"`

	// Covariance is the row-major 2x2 covariance of (gradient, intercept)
	// when the estimator produced one.
	Covariance []float64 `json:"covariance,omitempty"`

	R *float64 `json:"r,omitempty"`

	Chi2        float64 `json:"chi2"`
	ReducedChi2 float64 `json:"reduced_chi2"`
	Iterations  int     `json:"iterations"`
	Converged   bool    `json:"converged"`
}

func newEstimate(res *fit.Result) *Estimate {
	if res == nil {
		return nil
	}
	e := &Estimate{
		Gradient:    res.Params[0],
		Intercept:   res.Params[1],
		Chi2:        res.Chi2,
		ReducedChi2: res.ReducedChi2,
		Iterations:  res.Iterations,
		Converged:   res.Converged,
	}
	if !math.IsNaN(res.StdErr[0]) {
		v := res.StdErr[0]
		e.GradientErr = &v
	}
	if !math.IsNaN(res.StdErr[1]) {
		v := res.StdErr[1]
		e.InterceptErr = &v
	}
	if res.HasR {
		v := res.R
		e.R = &v
	}
	if res.Covariance != nil {
		e.Covariance = []float64{
			res.Covariance.At(0, 0), res.Covariance.At(0, 1),
			res.Covariance.At(1, 0), res.Covariance.At(1, 1),
		}
	}
	return e
}

func (e *Estimate) result() *fit.Result {
	if e == nil {
		return nil
	}
	res := &fit.Result{
		Params:      [2]float64{e.Gradient, e.Intercept},
		StdErr:      [2]float64{math.NaN(), math.NaN()},
		Chi2:        e.Chi2,
		ReducedChi2: e.ReducedChi2,
		Iterations:  e.Iterations,
		Converged:   e.Converged,
	}
	if e.GradientErr != nil {
		res.StdErr[0] = *e.GradientErr
	}
	if e.InterceptErr != nil {
		res.StdErr[1] = *e.InterceptErr
	}
	if e.R != nil {
		res.R = *e.R
		res.HasR = true
	}
	if len(e.Covariance) == 4 {
		res.Covariance = mat.NewSymDense(2, []float64{
			e.Covariance[0], e.Covariance[1],
			e.Covariance[2], e.Covariance[3],
		})
	}
	return res
}

// Model is the serializable representation of a fitted Fitter. It can be
// marshaled to JSON and later rehydrated with NewFromModel for evaluating the
// fitted line without refitting.
type Model struct {
	Options *Options  `json:"options"`
	OLS     *Estimate `json:"ols,omitempty"`
	WLS     *Estimate `json:"wls,omitempty"`
	ODR     *Estimate `json:"odr,omitempty"`
}

// Model returns a snapshot of the fitter's options and estimates.
func (f *Fitter) Model() (Model, error) {
	if f.results == nil {
		return Model{}, ErrNotFit
	}
	return Model{
		Options: f.opt,
		OLS:     newEstimate(f.results.OLS),
		WLS:     newEstimate(f.results.WLS),
		ODR:     newEstimate(f.results.ODR),
	}, nil
}

// TablePrint writes a human readable summary of the model estimates.
func (m Model) TablePrint(w io.Writer) error {
	rows := []struct {
		name string
		est  *Estimate
	}{
		{"OLS", m.OLS},
		{"WLS", m.WLS},
		{"ODR", m.ODR},
	}
	for _, row := range rows {
		if row.est == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s:\n", row.name); err != nil {
			return err
		}
		if err := row.est.tablePrint(w); err != nil {
			return err
		}
	}
	return nil
}

func (e *Estimate) tablePrint(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "  Gradient: %.6f", e.Gradient); err != nil {
		return err
	}
	if e.GradientErr != nil {
		if _, err := fmt.Fprintf(w, " +/- %.6f", *e.GradientErr); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\n  Intercept: %.6f", e.Intercept); err != nil {
		return err
	}
	if e.InterceptErr != nil {
		if _, err := fmt.Fprintf(w, " +/- %.6f", *e.InterceptErr); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if e.R != nil {
		if _, err := fmt.Fprintf(w, "  R: %.6f\n", *e.R); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "  Chi2: %.6f    Reduced Chi2: %.6f    Iterations: %d    Converged: %t\n",
		e.Chi2, e.ReducedChi2, e.Iterations, e.Converged,
	)
	return err
}

// NewFromModel creates a new instance of a Fitter from a pre-existing model.
// This should be generated from a previous fitter call to Model(). The
// returned fitter can predict and build envelopes immediately.
func NewFromModel(model Model) (*Fitter, error) {
	opt, err := model.Options.Validate()
	if err != nil {
		return nil, err
	}
	f := &Fitter{
		opt: opt,
		results: &Results{
			OLS: model.OLS.result(),
			WLS: model.WLS.result(),
			ODR: model.ODR.result(),
		},
	}
	return f, nil
}
