package spectral

import "errors"

var (
	// ErrNilGrid reports a nil input grid.
	ErrNilGrid = errors.New("spectral: grid must not be nil")
	// ErrNaN reports input data containing NaNs.
	ErrNaN = errors.New("spectral: data must not contain NaNs")
	// ErrShapeMismatch reports two inputs whose dims or shapes differ.
	ErrShapeMismatch = errors.New("spectral: grids must share dims and shape")
	// ErrNotTwoDims reports an isotropic average over a dim count other
	// than two.
	ErrNotTwoDims = errors.New("spectral: isotropic averaging needs exactly 2 transform dims")
	// ErrGridTooSmall reports transform dims too short for the radial
	// bin factor.
	ErrGridTooSmall = errors.New("spectral: too few points along transform dims for the bin factor")
	// ErrChunkedTransformDim reports a chunk layout that splits a
	// transform dim.
	ErrChunkedTransformDim = errors.New("spectral: transform dims must not be chunked")
	// ErrLengthMismatch reports two slices whose lengths differ.
	ErrLengthMismatch = errors.New("spectral: inputs must share length")
	// ErrShortSeries reports a log-log fit over fewer than two samples.
	ErrShortSeries = errors.New("spectral: need at least 2 samples to fit")
	// ErrNonPositive reports log-log fit input that is zero or negative.
	ErrNonPositive = errors.New("spectral: log-log fit needs positive values")
)
