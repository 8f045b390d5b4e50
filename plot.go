package linefit

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/components"

	"github.com/aouyang1/go-linefit/models"
)

// PlotOpts lets the caller override the envelope width used when plotting.
type PlotOpts struct {
	SigmaMultiplier float64
}

// PlotFit uses the Apache Echarts library to generate an html file showing
// the resulting fit with its confidence envelope along with the fit
// residuals. The envelope chart is skipped when no estimator produced a
// covariance, e.g. an OLS-only fit.
func (f *Fitter) PlotFit(path string, opt *PlotOpts) error {
	best, err := f.best()
	if err != nil {
		return err
	}
	if f.data == nil {
		return ErrEmptyDataset
	}

	k := f.opt.SigmaMultiplier
	if opt != nil && opt.SigmaMultiplier > 0 {
		k = opt.SigmaMultiplier
	}

	env, err := f.Envelope(k)
	if err != nil {
		env = nil
	}

	var line models.Line
	fitted := line.EvalSlice(nil, best.Params[:], f.data.X)
	residuals := make([]float64, f.data.Len())
	for i := range residuals {
		residuals[i] = f.data.Y[i] - fitted[i]
	}

	page := components.NewPage()
	page.AddCharts(
		LineFit(f.data, best, env),
		LineSeries(
			"Fit Residual",
			[]string{"Residual"},
			f.data.X,
			[][]float64{residuals},
		),
	)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create plot file, %w", err)
	}
	defer file.Close()
	return page.Render(file)
}
