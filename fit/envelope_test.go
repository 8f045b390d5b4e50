package fit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonum.org/v1/gonum/mat"
)

func testResultWithCov() *Result {
	cov := mat.NewSymDense(2, []float64{
		0.04, 0.01,
		0.01, 0.09,
	})
	return &Result{
		Params:     [2]float64{2.0, 3.0},
		Covariance: cov,
		StdErr:     stdErrFromCov(cov),
		Converged:  true,
	}
}

func TestNewEnvelope(t *testing.T) {
	res := testResultWithCov()

	env, err := NewEnvelope(res, 1.0)
	require.Nil(t, err)

	// stderr is sqrt of the covariance diagonal: 0.2 and 0.3
	assert.InDelta(t, 2.2, env.Upper[0], testTol)
	assert.InDelta(t, 3.3, env.Upper[1], testTol)
	assert.InDelta(t, 1.8, env.Lower[0], testTol)
	assert.InDelta(t, 2.7, env.Lower[1], testTol)
}

func TestNewEnvelopeDefaultMultiplier(t *testing.T) {
	res := testResultWithCov()

	env, err := NewEnvelope(res, 0)
	require.Nil(t, err)
	assert.Equal(t, DefaultSigmaMultiplier, env.K)

	explicit, err := NewEnvelope(res, 1.0)
	require.Nil(t, err)
	assert.Equal(t, explicit.Upper, env.Upper)
	assert.Equal(t, explicit.Lower, env.Lower)
}

// A larger sigma multiplier must produce an envelope at least as wide at
// every evaluation point.
func TestEnvelopeWidthMonotoneInK(t *testing.T) {
	res := testResultWithCov()
	x := []float64{0, 0.5, 1, 2, 5, 10}

	k1, err := NewEnvelope(res, 1.0)
	require.Nil(t, err)
	k2, err := NewEnvelope(res, 2.5)
	require.Nil(t, err)

	upper1, lower1 := k1.Curves(x)
	upper2, lower2 := k2.Curves(x)
	for i := range x {
		width1 := upper1[i] - lower1[i]
		width2 := upper2[i] - lower2[i]
		assert.GreaterOrEqual(t, width2, width1)
	}
}

// The bounding lines shift both parameters together, so they are not the
// extremal-gradient lines pivoting through a fixed point: the pair never
// crosses over the positive x range and their separation varies with x.
func TestEnvelopeNotPivotLines(t *testing.T) {
	res := testResultWithCov()

	env, err := NewEnvelope(res, 1.0)
	require.Nil(t, err)

	x := []float64{0, 1, 2, 4, 8}
	upper, lower := env.Curves(x)
	widths := make([]float64, len(x))
	for i := range x {
		assert.Greater(t, upper[i], lower[i])
		widths[i] = upper[i] - lower[i]
	}
	assert.Greater(t, widths[len(widths)-1], widths[0])
}

func TestNewEnvelopeErrors(t *testing.T) {
	testData := map[string]struct {
		res *Result
		err error
	}{
		"nil result": {nil, ErrNoResult},
		"no covariance": {
			&Result{Params: [2]float64{1, 0}, Converged: true},
			ErrMissingCovariance,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := NewEnvelope(td.res, 1.0)
			assert.ErrorIs(t, err, td.err)
		})
	}
}
