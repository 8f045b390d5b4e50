package linefit

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aouyang1/go-linefit/dataset"
)

func generateExampleData() *dataset.DataSet {
	n := 50
	x := dataset.GenerateX(n, 0, 0.5)
	y := dataset.AddNoise(dataset.GenerateLine(x, 1.7, -4.2), 0.8)
	d, err := dataset.New(x, y,
		dataset.GenerateUniformErr(n, 0.2),
		dataset.GenerateUniformErr(n, 0.8),
	)
	if err != nil {
		panic(err)
	}
	return d
}

func TestFitExample(t *testing.T) {
	d := generateExampleData()

	f, err := New(nil)
	require.Nil(t, err)
	require.Nil(t, f.Fit(d))

	m, err := f.Model()
	require.Nil(t, err)
	require.Nil(t, m.TablePrint(os.Stderr))

	require.Nil(t, f.PlotFit("line_fit_example.html", nil))
}
