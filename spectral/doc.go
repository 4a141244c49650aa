// Package spectral computes Fourier transforms and spectra of labeled
// grids.
//
// The operations share one set of conventions:
//
//   - Transform runs the DFT along chosen dims, renames them with the
//     freq_ prefix and attaches frequency coordinates
//   - PowerSpectrum and CrossSpectrum square or correlate transforms,
//     normalized to spectral density by default
//   - IsotropicPowerSpectrum and IsotropicCrossSpectrum reduce 2-d
//     spectra to radial profiles
//   - FitLogLog measures power-law slopes on log-log axes
//
// Coordinates drive the frequency axes. Each transform dim must be
// evenly spaced within a configurable tolerance, and its frequency
// step lands in the result as both a coordinate and a spacing attr.
// Detrending and windowing run per transform dim before the FFT, and
// large grids can be cut into blocks and spread over a worker pool
// with WithChunks.
//
// # Usage
//
//	spec, err := spectral.PowerSpectrum(g,
//		spectral.Along("x", "y"),
//		spectral.WithDetrend(detrend.ModeLinear),
//		spectral.WithHannWindow(),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
package spectral
