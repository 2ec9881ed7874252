package arrayops

import "errors"

var (
	// ErrInvalidAxis indicates an axis other than AxisTime or AxisFreq.
	ErrInvalidAxis = errors.New("arrayops: axis must be 0 or 1")

	// ErrInvalidFactor indicates a decimation factor below one.
	ErrInvalidFactor = errors.New("arrayops: decimate factor must be positive")

	// ErrNotMultiple indicates an axis length that the decimation factor
	// does not divide while padding was not requested.
	ErrNotMultiple = errors.New("arrayops: axis length must be a multiple of decimate_factor, use pad to force decimation")

	// ErrLengthExceedsData indicates a crop window that does not fit in the data.
	ErrLengthExceedsData = errors.New("arrayops: requested length exceeds data size")

	// ErrInvalidArgument indicates a size, start or length that cannot
	// describe a non-empty matrix.
	ErrInvalidArgument = errors.New("arrayops: invalid argument")

	// ErrUnsupportedOrder indicates an interpolation order other than 0 or 1.
	ErrUnsupportedOrder = errors.New("arrayops: unsupported interpolation order")
)
