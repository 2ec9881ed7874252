package spectra

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/radiotk/internal/arrayops"
)

func testObservation(t *testing.T) *Observation {
	t.Helper()
	data := mat.NewDense(4, 6, []float64{
		1, 2, 3, 4, 5, 6,
		1, 2, 3, 4, 5, 6,
		3, 4, 5, 6, 7, 8,
		3, 4, 5, 6, 7, 8,
	})
	obs, err := New(Header{
		Basename: "frb_test",
		Fch1:     1500,
		Foff:     -1,
		Tsamp:    0.001,
		Tstart:   60000,
	}, data)
	require.NoError(t, err)
	return obs
}

func TestNew(t *testing.T) {
	obs := testObservation(t)
	assert.Equal(t, 6, obs.Header.Nchans)
	assert.Equal(t, 4, obs.Header.Nspectra)

	_, err := New(Header{Nchans: 5}, mat.NewDense(2, 6, nil))
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = New(Header{}, nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestChanFreqs(t *testing.T) {
	obs := testObservation(t)
	assert.Equal(t, []float64{1500, 1499, 1498, 1497, 1496, 1495}, obs.ChanFreqs())
	assert.Equal(t, -1.0, obs.FrequencyOffset())
	assert.Equal(t, "frb_test", obs.Basename())
}

func TestBandpass(t *testing.T) {
	obs := testObservation(t)
	assert.Equal(t, []float64{2, 3, 4, 5, 6, 7}, obs.Bandpass())
}

func TestDecimateFrequency(t *testing.T) {
	obs := testObservation(t)
	dec, err := obs.Decimate(arrayops.AxisFreq, 2, false)
	require.NoError(t, err)

	assert.Equal(t, 3, dec.Header.Nchans)
	assert.Equal(t, -2.0, dec.Header.Foff)
	assert.Equal(t, 1499.5, dec.Header.Fch1)
	assert.Equal(t, []float64{1499.5, 1497.5, 1495.5}, dec.ChanFreqs())
	assert.Equal(t, []float64{2.5, 4.5, 6.5}, dec.Bandpass())

	// The source is left alone.
	assert.Equal(t, 6, obs.Header.Nchans)
}

func TestDecimateTime(t *testing.T) {
	obs := testObservation(t)
	dec, err := obs.Decimate(arrayops.AxisTime, 2, false)
	require.NoError(t, err)
	assert.Equal(t, 2, dec.Header.Nspectra)
	assert.InDelta(t, 0.002, dec.Header.Tsamp, 1e-15)

	_, err = obs.Decimate(arrayops.AxisTime, 3, false)
	assert.ErrorIs(t, err, arrayops.ErrNotMultiple)
}

func TestCrop(t *testing.T) {
	obs := testObservation(t)
	c, err := obs.Crop(arrayops.AxisFreq, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Header.Nchans)
	assert.Equal(t, 1499.0, c.Header.Fch1)
	assert.Equal(t, []float64{3, 4, 5}, c.Bandpass())

	same, err := obs.Crop(arrayops.AxisTime, 0, 4)
	require.NoError(t, err)
	assert.Same(t, obs.Data, same.Data)

	_, err = obs.Crop(arrayops.AxisTime, 1, 3)
	assert.ErrorIs(t, err, arrayops.ErrLengthExceedsData)
}

func TestPad(t *testing.T) {
	obs := testObservation(t)
	p, err := obs.Pad(arrayops.AxisFreq, 8, arrayops.WithLocation(arrayops.PadStart))
	require.NoError(t, err)
	assert.Equal(t, 8, p.Header.Nchans)
	assert.Equal(t, 1502.0, p.Header.Fch1)
	assert.Equal(t, []float64{0, 0, 2, 3, 4, 5, 6, 7}, p.Bandpass())

	end, err := obs.Pad(arrayops.AxisTime, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, end.Header.Nspectra)
	assert.Equal(t, obs.Header.Tstart, end.Header.Tstart)
}

func TestResize(t *testing.T) {
	obs := testObservation(t)
	r, err := obs.Resize(arrayops.AxisFreq, 3, arrayops.WithAntiAliasing(false))
	require.NoError(t, err)
	assert.Equal(t, 3, r.Header.Nchans)
	assert.Equal(t, -2.0, r.Header.Foff)
	assert.Equal(t, 1499.5, r.Header.Fch1)
}

func TestJSONRoundTrip(t *testing.T) {
	obs := testObservation(t)
	b, err := json.Marshal(obs)
	require.NoError(t, err)

	var back Observation
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, obs.Header, back.Header)
	assert.True(t, mat.Equal(obs.Data, back.Data))
}

func TestMarshalWithoutData(t *testing.T) {
	obs := &Observation{Header: Header{Basename: "empty"}}
	var b []byte
	var err error
	require.NotPanics(t, func() { b, err = json.Marshal(obs) })
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "null", string(raw["data"]))
}

func TestFromRows(t *testing.T) {
	_, err := FromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = FromRows(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}
