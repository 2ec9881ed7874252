package bandpass

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	// ErrLengthMismatch indicates inputs that do not cover the same channels.
	ErrLengthMismatch = errors.New("bandpass: length mismatch")
	// ErrFormat indicates an output extension no canvas can write.
	ErrFormat = errors.New("bandpass: unsupported image format")
)

// Source supplies the channel frequencies and naming of an observation.
type Source interface {
	// ChanFreqs returns the centre frequency of every channel in MHz.
	ChanFreqs() []float64
	// FrequencyOffset returns the channel width; negative when frequency
	// decreases with channel number.
	FrequencyOffset() float64
	// Basename names the default output file.
	Basename() string
}

const (
	defaultWidth  = 6.4 * vg.Inch
	defaultHeight = 4.8 * vg.Inch

	// axisMargin widens both axes beyond the data range by this fraction.
	axisMargin = 0.05
)

type config struct {
	chanNos []float64
	mask    []bool
	outDir  string
	outName string
	width   vg.Length
	height  vg.Length
}

// Option configures Save.
type Option func(*config)

// WithChannels sets the values shown on the channel axis. Defaults to
// 0..n-1.
func WithChannels(chans []float64) Option {
	return func(cfg *config) {
		cfg.chanNos = chans
	}
}

// WithMask marks flagged channels to overlay on the plot.
func WithMask(mask []bool) Option {
	return func(cfg *config) {
		cfg.mask = mask
	}
}

// WithOutDir sets the directory for the default file name.
func WithOutDir(dir string) Option {
	return func(cfg *config) {
		if dir != "" {
			cfg.outDir = dir
		}
	}
}

// WithOutName sets an explicit output path, overriding the directory and
// default name.
func WithOutName(name string) Option {
	return func(cfg *config) {
		cfg.outName = name
	}
}

// WithSize sets the canvas size.
func WithSize(width, height vg.Length) Option {
	return func(cfg *config) {
		if width > 0 && height > 0 {
			cfg.width, cfg.height = width, height
		}
	}
}

func defaultConfig() config {
	return config{outDir: "./", width: defaultWidth, height: defaultHeight}
}

// OutputPath returns where Save writes for src with opts.
func OutputPath(src Source, opts ...Option) string {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg.path(src)
}

func (c config) path(src Source) string {
	p := c.outName
	if p == "" {
		p = filepath.Join(c.outDir, src.Basename()+"_bandpass.png")
	}
	if filepath.Ext(p) == "" {
		p += ".png"
	}
	return p
}

// Save plots bp against the channel frequencies of src and writes the
// image, returning its path. The image format follows the extension.
// Flagged channels in the mask are overlaid as red markers and the
// frequency axis is inverted when channel frequencies descend.
func Save(src Source, bp []float64, opts ...Option) (string, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	freqs := src.ChanFreqs()
	if len(freqs) != len(bp) {
		return "", fmt.Errorf("%w: %d frequencies, %d bandpass values", ErrLengthMismatch, len(freqs), len(bp))
	}
	if cfg.chanNos == nil {
		cfg.chanNos = make([]float64, len(bp))
		for i := range cfg.chanNos {
			cfg.chanNos[i] = float64(i)
		}
	}
	if len(cfg.chanNos) != len(bp) {
		return "", fmt.Errorf("%w: %d channel numbers, %d bandpass values", ErrLengthMismatch, len(cfg.chanNos), len(bp))
	}
	if cfg.mask != nil && len(cfg.mask) != len(bp) {
		return "", fmt.Errorf("%w: %d mask values, %d bandpass values", ErrLengthMismatch, len(cfg.mask), len(bp))
	}

	p, err := newPlot(freqs, bp, cfg.mask, src.FrequencyOffset() < 0)
	if err != nil {
		return "", err
	}

	path := cfg.path(src)
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	cw, err := draw.NewFormattedCanvas(cfg.width, cfg.height, format)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrFormat, format)
	}
	drawWithChannelAxis(p, draw.New(cw), cfg.chanNos)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := cw.WriteTo(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	slog.Debug("saved bandpass plot", "path", path)
	return path, nil
}

func newPlot(freqs, bp []float64, mask []bool, invert bool) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "Frequency (MHz)"
	p.Y.Label.Text = "Arb. Units"
	p.Legend.Top = true

	line, err := plotter.NewLine(xys(freqs, bp, nil))
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = color.Black
	line.LineStyle.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add("Bandpass", line)

	if n := Flagged(mask); n > 0 {
		slog.Info("flagged channels", "count", n)
		points, err := plotter.NewScatter(xys(freqs, bp, mask))
		if err != nil {
			return nil, err
		}
		points.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		points.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(points)
		p.Legend.Add("Flagged Channels", points)
	}

	p.X.Min, p.X.Max = span(freqs)
	if invert {
		p.X.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	}
	return p, nil
}

// Flagged counts the true entries of mask.
func Flagged(mask []bool) int {
	n := 0
	for _, m := range mask {
		if m {
			n++
		}
	}
	return n
}

// xys pairs x and y, keeping only masked entries when keep is non-nil.
func xys(x, y []float64, keep []bool) plotter.XYs {
	pts := make(plotter.XYs, 0, len(x))
	for i := range x {
		if keep != nil && !keep[i] {
			continue
		}
		pts = append(pts, plotter.XY{X: x[i], Y: y[i]})
	}
	return pts
}

// span returns the range of v widened by axisMargin on each side.
func span(v []float64) (lo, hi float64) {
	if len(v) == 0 {
		return 0, 1
	}
	lo, hi = v[0], v[0]
	for _, x := range v[1:] {
		lo, hi = min(lo, x), max(hi, x)
	}
	if lo == hi {
		return lo - 0.5, hi + 0.5
	}
	pad := (hi - lo) * axisMargin
	return lo - pad, hi + pad
}
