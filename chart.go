package linefit

import (
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/aouyang1/go-linefit/dataset"
	"github.com/aouyang1/go-linefit/fit"
	"github.com/aouyang1/go-linefit/models"
)

// LineSeries generates an echart multi-line chart for some arbitrary x/value
// combination. Every series in y must have the same length as x.
func LineSeries(title string, seriesName []string, x []float64, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	lineData := make([][]opts.LineData, len(y))
	for i := 0; i < len(y); i++ {
		lineData[i] = make([]opts.LineData, 0, len(y[i]))
		for j := 0; j < len(y[i]); j++ {
			if math.IsNaN(y[i][j]) {
				continue
			}
			lineData[i] = append(lineData[i], opts.LineData{Value: y[i][j]})
		}
	}

	line = line.SetXAxis(x)
	for i, series := range seriesName {
		line = line.AddSeries(series, lineData[i])
	}
	return line
}

// LineFit generates an echart line chart for a fit result plotting the
// observed values along with the fitted line and, when an envelope is given,
// the upper and lower bounding lines.
func LineFit(d *dataset.DataSet, res *fit.Result, env *fit.Envelope) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Line Fit",
			},
		),
	)

	var lm models.Line
	fitted := lm.EvalSlice(nil, res.Params[:], d.X)

	lineDataActual := make([]opts.LineData, 0, d.Len())
	lineDataFit := make([]opts.LineData, 0, d.Len())
	for i := 0; i < d.Len(); i++ {
		lineDataActual = append(lineDataActual, opts.LineData{Value: d.Y[i]})
		lineDataFit = append(lineDataFit, opts.LineData{Value: fitted[i]})
	}

	line = line.SetXAxis(d.X).
		AddSeries("Actual", lineDataActual).
		AddSeries("Fit", lineDataFit)

	if env != nil {
		upper, lower := env.Curves(d.X)
		lineDataUpper := make([]opts.LineData, 0, d.Len())
		lineDataLower := make([]opts.LineData, 0, d.Len())
		for i := 0; i < d.Len(); i++ {
			lineDataUpper = append(lineDataUpper, opts.LineData{Value: upper[i]})
			lineDataLower = append(lineDataLower, opts.LineData{Value: lower[i]})
		}
		line = line.AddSeries("Upper", lineDataUpper).
			AddSeries("Lower", lineDataLower)
	}
	return line
}
