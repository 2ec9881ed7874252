package arrayops

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// PadLocation places padding relative to the existing samples.
type PadLocation string

const (
	// PadStart inserts all padding before the first sample.
	PadStart PadLocation = "start"
	// PadEnd appends all padding after the last sample.
	PadEnd PadLocation = "end"
	// PadCentered splits padding between both ends. Any location other
	// than start or end is treated as centred.
	PadCentered PadLocation = "center"
)

// PadMode selects the fill values.
type PadMode string

const (
	// ModeConstant fills with a constant value (zero by default).
	ModeConstant PadMode = "constant"
	// ModeEdge repeats the edge sample.
	ModeEdge PadMode = "edge"
	// ModeReflect mirrors about the edge sample, excluding it.
	ModeReflect PadMode = "reflect"
	// ModeSymmetric mirrors about the edge, including the edge sample.
	ModeSymmetric PadMode = "symmetric"
	// ModeWrap repeats the data periodically.
	ModeWrap PadMode = "wrap"
)

// ParsePadMode maps a mode name to a PadMode.
func ParsePadMode(s string) (PadMode, error) {
	switch m := PadMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeConstant, ModeEdge, ModeReflect, ModeSymmetric, ModeWrap:
		return m, nil
	case "":
		return ModeConstant, nil
	default:
		return "", fmt.Errorf("%w: unknown pad mode %q", ErrInvalidArgument, s)
	}
}

type padConfig struct {
	loc   PadLocation
	mode  PadMode
	value float64
}

// PadOption configures PadAlongAxis and the padding step of Decimate.
type PadOption func(*padConfig)

// WithLocation sets where padding is placed.
func WithLocation(loc PadLocation) PadOption {
	return func(cfg *padConfig) {
		cfg.loc = loc
	}
}

// WithMode sets how padded samples are filled.
func WithMode(mode PadMode) PadOption {
	return func(cfg *padConfig) {
		if mode != "" {
			cfg.mode = mode
		}
	}
}

// WithConstant sets the fill value used by ModeConstant.
func WithConstant(v float64) PadOption {
	return func(cfg *padConfig) {
		cfg.value = v
	}
}

func defaultPadConfig() padConfig {
	return padConfig{loc: PadEnd, mode: ModeConstant}
}

// PadLocationOf returns the location opts select, PadEnd when unset.
func PadLocationOf(opts ...PadOption) PadLocation {
	cfg := defaultPadConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg.loc
}

// PadAlongAxis pads m along axis until it has target samples. When m is
// already at least target long it is returned as is; padding never
// truncates.
//
// With a centred location the padding is split as pad/2 before and the
// remainder after, so an odd amount puts one fewer sample at the start.
func PadAlongAxis(m mat.Matrix, target int, axis Axis, opts ...PadOption) (mat.Matrix, error) {
	if err := checkAxis(axis); err != nil {
		return nil, err
	}

	cfg := defaultPadConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	n := axis.Len(m)
	padSize := target - n
	if padSize <= 0 {
		return m, nil
	}

	var before int
	switch cfg.loc {
	case PadStart:
		before = padSize
	case PadEnd:
		before = 0
	default:
		before = padSize / 2
	}

	fill, err := fillFunc(cfg, n)
	if err != nil {
		return nil, err
	}

	r, c := axis.shapeWith(m, target)
	out := mat.NewDense(r, c, nil)
	across := axis.other(m)
	for i := 0; i < target; i++ {
		src := i - before
		for j := 0; j < across; j++ {
			var v float64
			if src >= 0 && src < n {
				v = axis.at(m, src, j)
			} else if k, ok := fill(src); ok {
				v = axis.at(m, k, j)
			} else {
				v = cfg.value
			}
			axis.set(out, i, j, v)
		}
	}
	return out, nil
}

// fillFunc returns a mapping from an out-of-range source index to the
// in-range index whose value it copies. ok is false for constant fill.
func fillFunc(cfg padConfig, n int) (func(int) (int, bool), error) {
	switch cfg.mode {
	case ModeConstant:
		return func(int) (int, bool) { return 0, false }, nil
	case ModeEdge:
		return func(i int) (int, bool) {
			if i < 0 {
				return 0, true
			}
			return n - 1, true
		}, nil
	case ModeReflect:
		return func(i int) (int, bool) { return reflectIndex(i, n), true }, nil
	case ModeSymmetric:
		return func(i int) (int, bool) { return symmetricIndex(i, n), true }, nil
	case ModeWrap:
		return func(i int) (int, bool) { return mod(i, n), true }, nil
	default:
		return nil, fmt.Errorf("%w: unknown pad mode %q", ErrInvalidArgument, cfg.mode)
	}
}

// reflectIndex mirrors i about the first and last samples without
// repeating them: -1 -> 1, n -> n-2.
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * (n - 1)
	j := mod(i, period)
	if j >= n {
		j = period - j
	}
	return j
}

// symmetricIndex mirrors i about the array edges, repeating the edge
// samples: -1 -> 0, n -> n-1.
func symmetricIndex(i, n int) int {
	period := 2 * n
	j := mod(i, period)
	if j >= n {
		j = period - 1 - j
	}
	return j
}

func mod(i, n int) int {
	return ((i % n) + n) % n
}
