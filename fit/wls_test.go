package fit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aouyang1/go-linefit/dataset"
)

func TestWLSOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt      *WLSOptions
		err      error
		expected *WLSOptions
	}{
		"nil":   {nil, nil, NewDefaultWLSOptions()},
		"zeros": {&WLSOptions{}, nil, NewDefaultWLSOptions()},
		"negative iterations": {
			&WLSOptions{Iterations: -1},
			ErrNegativeIterations,
			nil,
		},
		"negative tolerance": {
			&WLSOptions{Tolerance: -1},
			ErrNegativeTolerance,
			nil,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			opt, err := td.opt.Validate()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, opt)
		})
	}
}

func TestWLSFitExactLine(t *testing.T) {
	d := mustDataSet(t,
		[]float64{0, 1, 2, 3, 4},
		[]float64{3, 5, 7, 9, 11},
		nil,
		[]float64{0.5, 0.5, 0.5, 0.5, 0.5},
	)

	wls, err := NewWLS(nil)
	require.Nil(t, err)
	res, err := wls.Fit(d)
	require.Nil(t, err)

	assert.InDelta(t, 2.0, res.Gradient(), 1e-6)
	assert.InDelta(t, 3.0, res.Intercept(), 1e-6)
	assert.InDelta(t, 0.0, res.StdErr[0], 1e-6)
	assert.InDelta(t, 0.0, res.StdErr[1], 1e-6)
	require.NotNil(t, res.Covariance)
	assert.True(t, res.Converged)
}

// A uniform positive uncertainty cannot change the optimum, so WLS must agree
// with OLS on the parameters.
func TestWLSMatchesOLSUnderUniformSigma(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5}
	y := []float64{0.1, 1.9, 4.2, 5.8, 8.1, 9.9}

	ols, err := NewOLS(nil)
	require.Nil(t, err)
	olsRes, err := ols.Fit(mustDataSet(t, x, y, nil, nil))
	require.Nil(t, err)

	for _, sigma := range []float64{0.1, 1.0, 7.5} {
		wls, err := NewWLS(nil)
		require.Nil(t, err)
		res, err := wls.Fit(mustDataSet(t, x, y, nil, dataset.GenerateUniformErr(len(x), sigma)))
		require.Nil(t, err)

		assert.InDelta(t, olsRes.Gradient(), res.Gradient(), 1e-6)
		assert.InDelta(t, olsRes.Intercept(), res.Intercept(), 1e-6)
	}
}

// The iterative solver path and the closed-form weighted normal equations
// must produce equivalent parameters and covariance for the line.
func TestWLSSolverMatchesNormalEquations(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5}
	y := []float64{0.3, 2.1, 3.8, 6.2, 7.9, 10.3}
	yerr := []float64{0.1, 0.3, 0.2, 0.4, 0.1, 0.5}

	solver, err := NewWLS(&WLSOptions{AbsoluteSigma: true})
	require.Nil(t, err)
	solverRes, err := solver.Fit(mustDataSet(t, x, y, nil, yerr))
	require.Nil(t, err)

	normal, err := NewWLS(&WLSOptions{AbsoluteSigma: true, UseNormalEquations: true})
	require.Nil(t, err)
	normalRes, err := normal.Fit(mustDataSet(t, x, y, nil, yerr))
	require.Nil(t, err)

	assert.InDelta(t, normalRes.Gradient(), solverRes.Gradient(), 1e-6)
	assert.InDelta(t, normalRes.Intercept(), solverRes.Intercept(), 1e-6)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, normalRes.Covariance.At(i, j), solverRes.Covariance.At(i, j), 1e-6)
		}
	}
}

// Relative-sigma covariance is the absolute-sigma covariance rescaled by the
// reduced chi-square.
func TestWLSSigmaScaling(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5}
	y := []float64{0.3, 2.1, 3.8, 6.2, 7.9, 10.3}
	yerr := dataset.GenerateUniformErr(len(x), 0.2)

	abs, err := NewWLS(&WLSOptions{AbsoluteSigma: true})
	require.Nil(t, err)
	absRes, err := abs.Fit(mustDataSet(t, x, y, nil, yerr))
	require.Nil(t, err)

	rel, err := NewWLS(nil)
	require.Nil(t, err)
	relRes, err := rel.Fit(mustDataSet(t, x, y, nil, yerr))
	require.Nil(t, err)

	require.Greater(t, absRes.ReducedChi2, 0.0)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			expected := absRes.Covariance.At(i, j) * absRes.ReducedChi2
			assert.InDelta(t, expected, relRes.Covariance.At(i, j), 1e-9)
		}
	}
}

func TestWLSFitZeroUncertainty(t *testing.T) {
	d := mustDataSet(t,
		[]float64{0, 1, 2},
		[]float64{1, 3, 5},
		nil,
		[]float64{0.1, 0.0, 0.1},
	)

	wls, err := NewWLS(nil)
	require.Nil(t, err)
	_, err = wls.Fit(d)
	assert.ErrorIs(t, err, ErrInvalidUncertainty)
}

func TestWLSFitNoYErr(t *testing.T) {
	d := mustDataSet(t, []float64{0, 1, 2}, []float64{1, 3, 5}, nil, nil)

	wls, err := NewWLS(nil)
	require.Nil(t, err)
	_, err = wls.Fit(d)
	assert.ErrorIs(t, err, ErrInvalidUncertainty)
}

func TestWLSFitDegenerate(t *testing.T) {
	d := mustDataSet(t,
		[]float64{3, 3, 3},
		[]float64{1, 2, 3},
		nil,
		[]float64{0.1, 0.1, 0.1},
	)

	wls, err := NewWLS(nil)
	require.Nil(t, err)
	_, err = wls.Fit(d)
	assert.ErrorIs(t, err, ErrDegenerateInput)
}
