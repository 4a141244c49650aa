package fft

import "fmt"

// Frequencies returns the sample frequencies of an n-point transform
// over samples spaced d apart, in standard order: zero first, positive
// frequencies ascending, then negative frequencies.
func Frequencies(n int, d float64) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	if d == 0 {
		return nil, ErrZeroSpacing
	}

	out := make([]float64, n)
	scale := 1 / (float64(n) * d)
	half := (n + 1) / 2
	for i := 0; i < half; i++ {
		out[i] = float64(i) * scale
	}
	for i := half; i < n; i++ {
		out[i] = float64(i-n) * scale
	}
	return out, nil
}

// Shift reorders a standard-order spectrum so the zero-frequency bin
// sits at the center. The input is not modified.
func Shift[T any](v []T) []T {
	n := len(v)
	out := make([]T, n)
	half := (n + 1) / 2
	copy(out, v[half:])
	copy(out[n-half:], v[:half])
	return out
}

// InverseShift undoes Shift, restoring standard order. For even lengths
// the two are identical; for odd lengths they differ by one position.
func InverseShift[T any](v []T) []T {
	n := len(v)
	out := make([]T, n)
	half := n / 2
	copy(out, v[half:])
	copy(out[n-half:], v[:half])
	return out
}
