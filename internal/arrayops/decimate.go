package arrayops

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"
)

// ClosestNumber returns how much n must grow to become a multiple of m.
func ClosestNumber(n, m int) int {
	if m <= 0 || n%m == 0 {
		return 0
	}
	return (n/m+1)*m - n
}

// Decimate averages groups of factor contiguous samples along axis.
//
// When the axis length is not a multiple of factor and pad is true, the
// axis is first padded up to the next multiple with PadAlongAxis, using
// opts (end-padding with zeros by default). Without pad the call fails
// with ErrNotMultiple.
func Decimate(m mat.Matrix, factor int, axis Axis, pad bool, opts ...PadOption) (*mat.Dense, error) {
	if err := checkAxis(axis); err != nil {
		return nil, err
	}
	if factor < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFactor, factor)
	}

	n := axis.Len(m)
	if n%factor != 0 {
		if !pad {
			return nil, fmt.Errorf("%w: length %d, factor %d", ErrNotMultiple, n, factor)
		}
		slog.Info("padding along axis", "axis", axis, "length", n, "factor", factor)
		padded, err := PadAlongAxis(m, n+ClosestNumber(n, factor), axis, opts...)
		if err != nil {
			return nil, err
		}
		m = padded
		n = axis.Len(m)
	}

	groups := n / factor
	across := axis.other(m)
	r, c := axis.shapeWith(m, groups)
	out := mat.NewDense(r, c, nil)
	scale := 1 / float64(factor)
	for g := 0; g < groups; g++ {
		for j := 0; j < across; j++ {
			var sum float64
			for k := g * factor; k < (g+1)*factor; k++ {
				sum += axis.at(m, k, j)
			}
			axis.set(out, g, j, sum*scale)
		}
	}
	return out, nil
}
