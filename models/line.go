package models

// Line is the straight line y = m*x + c with params ordered as [m, c].
type Line struct{}

// NumParams returns 2, the gradient and intercept.
func (Line) NumParams() int {
	return 2
}

// Eval returns params[0]*x + params[1].
func (Line) Eval(params []float64, x float64) float64 {
	return params[0]*x + params[1]
}

// EvalSlice evaluates the line at every x. The scalar and slice paths share
// the same arithmetic so both calling conventions produce identical results.
func (l Line) EvalSlice(dst, params, x []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(x))
	}
	for i, xv := range x {
		dst[i] = l.Eval(params, xv)
	}
	return dst
}
