package arrayops

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Axis selects the dimension an operation applies to.
type Axis int

const (
	// AxisTime runs along rows (spectra).
	AxisTime Axis = 0
	// AxisFreq runs along columns (channels).
	AxisFreq Axis = 1
)

func (a Axis) String() string {
	switch a {
	case AxisTime:
		return "time"
	case AxisFreq:
		return "freq"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// Valid reports whether a names one of the two matrix dimensions.
func (a Axis) Valid() bool {
	return a == AxisTime || a == AxisFreq
}

// Len returns the length of m along a.
func (a Axis) Len(m mat.Matrix) int {
	r, c := m.Dims()
	if a == AxisFreq {
		return c
	}
	return r
}

// shapeWith returns the dims of m with the length along a replaced by n.
func (a Axis) shapeWith(m mat.Matrix, n int) (int, int) {
	r, c := m.Dims()
	if a == AxisFreq {
		return r, n
	}
	return n, c
}

// at reads m with i indexing along a and j along the other axis.
func (a Axis) at(m mat.Matrix, i, j int) float64 {
	if a == AxisFreq {
		return m.At(j, i)
	}
	return m.At(i, j)
}

// set writes d with i indexing along a and j along the other axis.
func (a Axis) set(d *mat.Dense, i, j int, v float64) {
	if a == AxisFreq {
		d.Set(j, i, v)
		return
	}
	d.Set(i, j, v)
}

// other returns the length of m across a.
func (a Axis) other(m mat.Matrix) int {
	r, c := m.Dims()
	if a == AxisFreq {
		return r
	}
	return c
}

func checkAxis(a Axis) error {
	if !a.Valid() {
		return fmt.Errorf("%w: got %d", ErrInvalidAxis, int(a))
	}
	return nil
}
