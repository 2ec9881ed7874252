package arrayops_test

import "gonum.org/v1/gonum/mat"

// ramp returns an r x c matrix holding 1, 2, 3, ... in row-major order.
func ramp(r, c int) *mat.Dense {
	data := make([]float64, r*c)
	for i := range data {
		data[i] = float64(i + 1)
	}
	return mat.NewDense(r, c, data)
}

func row(vals ...float64) *mat.Dense {
	return mat.NewDense(1, len(vals), vals)
}

func rowOf(m mat.Matrix, i int) []float64 {
	return mat.Row(nil, i, m)
}
