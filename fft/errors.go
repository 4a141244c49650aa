package fft

import "errors"

var (
	// ErrInvalidLength reports a transform length that is not positive.
	ErrInvalidLength = errors.New("fft: transform length must be positive")
	// ErrLengthMismatch reports dst and src slices of unequal length.
	ErrLengthMismatch = errors.New("fft: dst and src length mismatch")
	// ErrZeroSpacing reports a sample spacing of zero.
	ErrZeroSpacing = errors.New("fft: sample spacing must be nonzero")
)
