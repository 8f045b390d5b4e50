package linefit

import (
	"github.com/aouyang1/go-linefit/fit"
)

// Options configures each estimator of a Fitter along with the default
// confidence envelope width.
type Options struct {
	OLS *fit.OLSOptions `json:"ols_options"`
	WLS *fit.WLSOptions `json:"wls_options"`
	ODR *fit.ODROptions `json:"odr_options"`

	// SigmaMultiplier sets the default envelope width in standard errors.
	SigmaMultiplier float64 `json:"sigma_multiplier"`
}

// NewDefaultOptions returns a default set of fitter options.
func NewDefaultOptions() *Options {
	return &Options{
		OLS:             fit.NewDefaultOLSOptions(),
		WLS:             fit.NewDefaultWLSOptions(),
		ODR:             fit.NewDefaultODROptions(),
		SigmaMultiplier: fit.DefaultSigmaMultiplier,
	}
}

// Validate runs basic validation on fitter options.
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}

	var err error
	if o.OLS, err = o.OLS.Validate(); err != nil {
		return nil, err
	}
	if o.WLS, err = o.WLS.Validate(); err != nil {
		return nil, err
	}
	if o.ODR, err = o.ODR.Validate(); err != nil {
		return nil, err
	}
	if o.SigmaMultiplier <= 0 {
		o.SigmaMultiplier = fit.DefaultSigmaMultiplier
	}
	return o, nil
}
