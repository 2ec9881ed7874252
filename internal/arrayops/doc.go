// Package arrayops implements shape manipulations on 2-D dynamic spectra:
// averaging decimation, interpolating resize, cropping and padding along
// a single axis.
//
// Arrays are gonum matrices with spectra (time samples) along rows and
// frequency channels along columns. Every function leaves the axis it is
// not asked to touch unchanged and never mutates its input.
//
// Common workflows:
//   - Decimate(m, factor, axis, pad, opts...)
//   - Resize(m, size, axis, opts...)
//   - Crop(m, start, length, axis)
//   - PadAlongAxis(m, target, axis, opts...)
package arrayops
