// Package spectra models a dynamic spectrum read from a filterbank-style
// observation: a header describing the frequency and time sampling and a
// matrix of spectra (rows) by channels (columns).
package spectra

import (
	"encoding/json"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/radiotk/internal/arrayops"
	"github.com/san-kum/radiotk/internal/jsonenc"
)

var (
	// ErrShapeMismatch indicates a header that disagrees with its data.
	ErrShapeMismatch = errors.New("spectra: header does not match data shape")
	// ErrEmpty indicates an observation without data.
	ErrEmpty = errors.New("spectra: no data")
)

// Header describes how a dynamic spectrum was sampled.
type Header struct {
	Basename   string  `json:"basename" yaml:"basename"`
	SourceName string  `json:"source_name,omitempty" yaml:"source_name"`
	Fch1       float64 `json:"fch1" yaml:"fch1"`
	Foff       float64 `json:"foff" yaml:"foff"`
	Nchans     int     `json:"nchans" yaml:"nchans"`
	Tsamp      float64 `json:"tsamp" yaml:"tsamp"`
	Tstart     float64 `json:"tstart,omitempty" yaml:"tstart"`
	Nspectra   int     `json:"nspectra" yaml:"nspectra"`
}

// Observation is a header together with its spectra.
type Observation struct {
	Header Header
	Data   *mat.Dense
}

// New returns an observation over data, filling Nspectra and checking
// that the header's channel count matches. A zero Nchans is taken from
// the data.
func New(h Header, data *mat.Dense) (*Observation, error) {
	if data == nil || data.IsEmpty() {
		return nil, ErrEmpty
	}
	r, c := data.Dims()
	if h.Nchans == 0 {
		h.Nchans = c
	}
	if h.Nchans != c {
		return nil, fmt.Errorf("%w: nchans %d, data has %d channels", ErrShapeMismatch, h.Nchans, c)
	}
	h.Nspectra = r
	return &Observation{Header: h, Data: data}, nil
}

// ChanFreqs returns the centre frequency of every channel in MHz.
func (o *Observation) ChanFreqs() []float64 {
	freqs := make([]float64, o.Header.Nchans)
	for i := range freqs {
		freqs[i] = o.Header.Fch1 + float64(i)*o.Header.Foff
	}
	return freqs
}

// FrequencyOffset returns the channel width in MHz. A negative offset
// means frequencies descend with channel number.
func (o *Observation) FrequencyOffset() float64 { return o.Header.Foff }

// Basename returns the name output files are derived from.
func (o *Observation) Basename() string { return o.Header.Basename }

// Bandpass returns the time-averaged spectrum.
func (o *Observation) Bandpass() []float64 {
	_, c := o.Data.Dims()
	bp := make([]float64, c)
	col := make([]float64, o.Header.Nspectra)
	for j := range bp {
		mat.Col(col, j, o.Data)
		bp[j] = stat.Mean(col, nil)
	}
	return bp
}

// Decimate averages factor samples along axis, keeping the header in step.
func (o *Observation) Decimate(axis arrayops.Axis, factor int, pad bool, opts ...arrayops.PadOption) (*Observation, error) {
	d, err := arrayops.Decimate(o.Data, factor, axis, pad, opts...)
	if err != nil {
		return nil, err
	}
	h := o.Header
	switch axis {
	case arrayops.AxisTime:
		h.Tsamp *= float64(factor)
	case arrayops.AxisFreq:
		h.Fch1 += float64(factor-1) / 2 * h.Foff
		h.Foff *= float64(factor)
		h.Nchans = 0
	}
	return New(h, d)
}

// Crop keeps length samples along axis from start.
func (o *Observation) Crop(axis arrayops.Axis, start, length int) (*Observation, error) {
	m, err := arrayops.Crop(o.Data, start, length, axis)
	if err != nil {
		return nil, err
	}
	h := o.Header
	if m == mat.Matrix(o.Data) {
		return New(h, o.Data)
	}
	switch axis {
	case arrayops.AxisTime:
		h.Tstart += float64(start) * h.Tsamp / secondsPerDay
	case arrayops.AxisFreq:
		h.Fch1 += float64(start) * h.Foff
		h.Nchans = 0
	}
	return New(h, mat.DenseCopyOf(m))
}

// Pad extends axis to target samples. Padding placed before the data
// shifts the start time or first channel frequency accordingly.
func (o *Observation) Pad(axis arrayops.Axis, target int, opts ...arrayops.PadOption) (*Observation, error) {
	m, err := arrayops.PadAlongAxis(o.Data, target, axis, opts...)
	if err != nil {
		return nil, err
	}
	if m == mat.Matrix(o.Data) {
		return New(o.Header, o.Data)
	}
	padded := mat.DenseCopyOf(m)

	h := o.Header
	before := leadingPad(o.Data, padded, axis, opts)
	switch axis {
	case arrayops.AxisTime:
		h.Tstart -= float64(before) * h.Tsamp / secondsPerDay
	case arrayops.AxisFreq:
		h.Fch1 -= float64(before) * h.Foff
		h.Nchans = 0
	}
	return New(h, padded)
}

// Resize resamples axis to size samples. The sampling interval along the
// axis scales by the inverse ratio so the covered span is unchanged.
func (o *Observation) Resize(axis arrayops.Axis, size int, opts ...arrayops.ResizeOption) (*Observation, error) {
	m, err := arrayops.Resize(o.Data, size, axis, opts...)
	if err != nil {
		return nil, err
	}
	h := o.Header
	ratio := float64(axis.Len(o.Data)) / float64(size)
	switch axis {
	case arrayops.AxisTime:
		h.Tsamp *= ratio
	case arrayops.AxisFreq:
		h.Fch1 += (ratio - 1) / 2 * h.Foff
		h.Foff *= ratio
		h.Nchans = 0
	}
	return New(h, m)
}

const secondsPerDay = 86400

// leadingPad works out how many samples PadAlongAxis placed before the data.
func leadingPad(orig, padded mat.Matrix, axis arrayops.Axis, opts []arrayops.PadOption) int {
	total := axis.Len(padded) - axis.Len(orig)
	switch arrayops.PadLocationOf(opts...) {
	case arrayops.PadStart:
		return total
	case arrayops.PadEnd:
		return 0
	default:
		return total / 2
	}
}

type observationJSON struct {
	Header Header          `json:"header"`
	Data   json.RawMessage `json:"data"`
}

// MarshalJSON encodes the observation as {"header": ..., "data": [[...]]}.
func (o *Observation) MarshalJSON() ([]byte, error) {
	data, err := jsonenc.Marshal(o.Data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(observationJSON{Header: o.Header, Data: data})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (o *Observation) UnmarshalJSON(b []byte) error {
	var raw observationJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var rows [][]float64
	if err := json.Unmarshal(raw.Data, &rows); err != nil {
		return fmt.Errorf("spectra: data: %w", err)
	}
	data, err := FromRows(rows)
	if err != nil {
		return err
	}
	obs, err := New(raw.Header, data)
	if err != nil {
		return err
	}
	*o = *obs
	return nil
}

// FromRows builds a matrix from equal-length rows.
func FromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}
	c := len(rows[0])
	flat := make([]float64, 0, len(rows)*c)
	for i, r := range rows {
		if len(r) != c {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrShapeMismatch, i, len(r), c)
		}
		flat = append(flat, r...)
	}
	return mat.NewDense(len(rows), c, flat), nil
}
