package fft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// engine is a fixed-length transform. dst and src must both have the
// engine's length; they may alias.
type engine interface {
	forward(dst, src []complex128) error
	inverse(dst, src []complex128) error
}

// pow2Engine wraps a radix-2 plan for power-of-two lengths.
type pow2Engine struct {
	plan *algofft.Plan[complex128]
}

func newPow2Engine(n int) (*pow2Engine, error) {
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("fft: failed to create FFT plan: %w", err)
	}
	return &pow2Engine{plan: plan}, nil
}

func (e *pow2Engine) forward(dst, src []complex128) error {
	return e.plan.Forward(dst, src)
}

func (e *pow2Engine) inverse(dst, src []complex128) error {
	return e.plan.Inverse(dst, src)
}

// mixedEngine wraps a general-length transform. Its inverse is
// unnormalized, so it rescales to match the radix-2 path.
type mixedEngine struct {
	fft *fourier.CmplxFFT
	n   int
}

func newMixedEngine(n int) *mixedEngine {
	return &mixedEngine{fft: fourier.NewCmplxFFT(n), n: n}
}

func (e *mixedEngine) forward(dst, src []complex128) error {
	e.fft.Coefficients(dst, src)
	return nil
}

func (e *mixedEngine) inverse(dst, src []complex128) error {
	e.fft.Sequence(dst, src)
	scale := complex(1/float64(e.n), 0)
	for i := range dst {
		dst[i] *= scale
	}
	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func newEngine(n int) (engine, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	if isPowerOfTwo(n) {
		return newPow2Engine(n)
	}
	return newMixedEngine(n), nil
}

// Transformer computes forward and inverse transforms of complex
// sequences, caching one plan per distinct length.
//
// A Transformer is not safe for concurrent use.
type Transformer struct {
	engines map[int]engine
}

// NewTransformer returns a Transformer with an empty plan cache.
func NewTransformer() *Transformer {
	return &Transformer{engines: make(map[int]engine)}
}

func (t *Transformer) engineFor(n int) (engine, error) {
	if e, ok := t.engines[n]; ok {
		return e, nil
	}
	e, err := newEngine(n)
	if err != nil {
		return nil, err
	}
	t.engines[n] = e
	return e, nil
}

// Forward computes the unnormalized forward transform of src into dst.
// The slices must have equal nonzero length and may alias.
func (t *Transformer) Forward(dst, src []complex128) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(dst), len(src))
	}
	e, err := t.engineFor(len(src))
	if err != nil {
		return err
	}
	return e.forward(dst, src)
}

// Inverse computes the inverse transform of src into dst, scaled by the
// reciprocal length so a Forward then Inverse round trip reproduces the
// input.
func (t *Transformer) Inverse(dst, src []complex128) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(dst), len(src))
	}
	e, err := t.engineFor(len(src))
	if err != nil {
		return err
	}
	return e.inverse(dst, src)
}

// Forward computes the forward transform of src into a new slice.
func Forward(src []complex128) ([]complex128, error) {
	dst := make([]complex128, len(src))
	if err := NewTransformer().Forward(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

// Inverse computes the inverse transform of src into a new slice.
func Inverse(src []complex128) ([]complex128, error) {
	dst := make([]complex128, len(src))
	if err := NewTransformer().Inverse(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}
