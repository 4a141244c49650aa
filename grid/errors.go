package grid

import "errors"

// Errors returned by grid operations.
var (
	ErrNoDims        = errors.New("grid: at least one dim is required")
	ErrUnknownDim    = errors.New("grid: unknown dim")
	ErrDuplicateDim  = errors.New("grid: duplicate dim")
	ErrShapeMismatch = errors.New("grid: shape mismatch")
	ErrUnevenSpacing = errors.New("grid: coordinate not evenly spaced")
)
