package arrayops

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// gaussianTruncate is the kernel half-width in standard deviations.
const gaussianTruncate = 4.0

type resizeConfig struct {
	order     int
	boundary  PadMode
	antiAlias bool
	sigma     float64
}

// ResizeOption configures Resize.
type ResizeOption func(*resizeConfig)

// WithOrder selects nearest-neighbour (0) or linear (1) interpolation.
func WithOrder(order int) ResizeOption {
	return func(cfg *resizeConfig) {
		cfg.order = order
	}
}

// WithBoundary selects how samples beyond the edges are read. It accepts
// the same modes as padding; ModeConstant reads zeros.
func WithBoundary(mode PadMode) ResizeOption {
	return func(cfg *resizeConfig) {
		if mode != "" {
			cfg.boundary = mode
		}
	}
}

// WithAntiAliasing toggles Gaussian smoothing before downsampling.
func WithAntiAliasing(on bool) ResizeOption {
	return func(cfg *resizeConfig) {
		cfg.antiAlias = on
	}
}

// WithAntiAliasSigma overrides the smoothing width, in input samples.
func WithAntiAliasSigma(sigma float64) ResizeOption {
	return func(cfg *resizeConfig) {
		if sigma >= 0 {
			cfg.sigma = sigma
		}
	}
}

func defaultResizeConfig() resizeConfig {
	return resizeConfig{order: 1, boundary: ModeReflect, antiAlias: true, sigma: -1}
}

// Resize resamples m to size samples along axis, leaving the other axis
// as is.
//
// Output sample o is read at input coordinate (o+0.5)*n/size-0.5, which
// keeps pixel centres aligned. When shrinking, the input is first
// smoothed with a Gaussian of sigma (n/size-1)/2 unless anti-aliasing is
// disabled.
func Resize(m mat.Matrix, size int, axis Axis, opts ...ResizeOption) (*mat.Dense, error) {
	if err := checkAxis(axis); err != nil {
		return nil, err
	}
	if size < 1 {
		return nil, fmt.Errorf("%w: resize to %d samples", ErrInvalidArgument, size)
	}

	cfg := defaultResizeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.order != 0 && cfg.order != 1 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedOrder, cfg.order)
	}

	n := axis.Len(m)
	get, err := boundaryReader(cfg.boundary, n)
	if err != nil {
		return nil, err
	}

	scale := float64(n) / float64(size)
	var kernel []float64
	if cfg.antiAlias && scale > 1 {
		sigma := cfg.sigma
		if sigma < 0 {
			sigma = math.Max(0, (scale-1)/2)
		}
		kernel = gaussianKernel(sigma)
	}

	r, c := axis.shapeWith(m, size)
	out := mat.NewDense(r, c, nil)
	line := make([]float64, n)
	across := axis.other(m)
	for j := 0; j < across; j++ {
		for i := range line {
			line[i] = axis.at(m, i, j)
		}
		if kernel != nil {
			line = convolve(line, kernel, get)
		}
		for o := 0; o < size; o++ {
			x := (float64(o)+0.5)*scale - 0.5
			axis.set(out, o, j, sample(line, x, cfg.order, get))
		}
	}
	return out, nil
}

// boundaryReader returns a function reading line at any integer index,
// resolving out-of-range indices with mode.
func boundaryReader(mode PadMode, n int) (func(line []float64, i int) float64, error) {
	fill, err := fillFunc(padConfig{mode: mode}, n)
	if err != nil {
		return nil, err
	}
	return func(line []float64, i int) float64 {
		if i >= 0 && i < n {
			return line[i]
		}
		if k, ok := fill(i); ok {
			return line[k]
		}
		return 0
	}, nil
}

func sample(line []float64, x float64, order int, get func([]float64, int) float64) float64 {
	if order == 0 {
		return get(line, int(math.Floor(x+0.5)))
	}
	i0 := math.Floor(x)
	t := x - i0
	lo := get(line, int(i0))
	if t == 0 {
		return lo
	}
	return (1-t)*lo + t*get(line, int(i0)+1)
}

// gaussianKernel returns normalized weights for offsets -r..r.
func gaussianKernel(sigma float64) []float64 {
	if sigma == 0 {
		return nil
	}
	radius := int(gaussianTruncate*sigma + 0.5)
	dist := distuv.Normal{Mu: 0, Sigma: sigma}
	w := make([]float64, 2*radius+1)
	for k := -radius; k <= radius; k++ {
		w[k+radius] = dist.Prob(float64(k))
	}
	floats.Scale(1/floats.Sum(w), w)
	return w
}

func convolve(line, kernel []float64, get func([]float64, int) float64) []float64 {
	radius := len(kernel) / 2
	out := make([]float64, len(line))
	for i := range line {
		var acc float64
		for k, w := range kernel {
			acc += w * get(line, i+k-radius)
		}
		out[i] = acc
	}
	return out
}
