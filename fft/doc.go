// Package fft computes discrete Fourier transforms of complex sequences
// along with their frequency bookkeeping.
//
// Scaling follows the usual signal-processing convention: Forward is
// unnormalized and Inverse divides by the length, so a round trip
// reproduces the input. Power-of-two lengths run on a radix-2 plan;
// every other length falls back to a general mixed-radix transform with
// identical scaling, so callers never need to pad.
//
// # Usage
//
//	tr := fft.NewTransformer()
//	spec := make([]complex128, len(signal))
//	if err := tr.Forward(spec, signal); err != nil {
//		log.Fatal(err)
//	}
//	freqs, _ := fft.Frequencies(len(signal), 1.0/sampleRate)
//
// A Transformer caches one plan per length and is not safe for
// concurrent use; give each goroutine its own.
package fft
