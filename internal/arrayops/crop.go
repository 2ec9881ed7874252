package arrayops

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

type slicer interface {
	Slice(i, k, j, l int) mat.Matrix
}

// Crop returns length samples along axis starting at start.
//
// A window strictly inside the data is returned as a view sharing m's
// backing store when m supports slicing. A length equal to the full axis
// returns m unchanged whatever start is. Every other window, including
// one that ends exactly on the last sample with a non-zero start, fails
// with ErrLengthExceedsData.
func Crop(m mat.Matrix, start, length int, axis Axis) (mat.Matrix, error) {
	if err := checkAxis(axis); err != nil {
		return nil, err
	}
	if start < 0 || length < 1 {
		return nil, fmt.Errorf("%w: start %d, length %d", ErrInvalidArgument, start, length)
	}

	n := axis.Len(m)
	switch {
	case n > start+length:
		return window(m, start, start+length, axis), nil
	case n == length:
		return m, nil
	default:
		return nil, fmt.Errorf("%w: start %d + length %d against %d samples", ErrLengthExceedsData, start, length, n)
	}
}

func window(m mat.Matrix, from, to int, axis Axis) mat.Matrix {
	r, c := m.Dims()
	if s, ok := m.(slicer); ok {
		if axis == AxisFreq {
			return s.Slice(0, r, from, to)
		}
		return s.Slice(from, to, 0, c)
	}

	rr, cc := axis.shapeWith(m, to-from)
	out := mat.NewDense(rr, cc, nil)
	across := axis.other(m)
	for i := from; i < to; i++ {
		for j := 0; j < across; j++ {
			axis.set(out, i-from, j, axis.at(m, i, j))
		}
	}
	return out
}
