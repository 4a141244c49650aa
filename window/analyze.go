package window

import "math"

// Properties holds numerically computed spectral figures of a window.
type Properties struct {
	// CoherentGain is sum(w[n]) / N, the DC response of the window.
	CoherentGain float64
	// ENBW is the equivalent noise bandwidth in bins.
	ENBW float64
	// ScallopLossdB is the worst-case amplitude error for an off-bin tone.
	ScallopLossdB float64
	// HighestSidelobedB is the peak sidelobe level relative to DC in dB.
	HighestSidelobedB float64
}

// Analyze computes spectral properties of the given window coefficients
// by evaluating its DFT response numerically.
func Analyze(coeffs []float64) Properties {
	n := len(coeffs)
	if n == 0 {
		return Properties{}
	}

	// DC reference: |DFT(0)|^2.
	dcRef := dftMagSq(coeffs, 0)
	if dcRef == 0 {
		return Properties{}
	}

	sum := 0.0
	sumSq := 0.0
	for _, c := range coeffs {
		sum += c
		sumSq += c * c
	}

	// Scallop loss: response at half a bin off DC.
	halfBinMagSq := dftMagSq(coeffs, 0.5/float64(n))
	scallop := math.Inf(-1)
	if halfBinMagSq > 0 {
		scallop = 10 * math.Log10(halfBinMagSq/dcRef)
	}

	return Properties{
		CoherentGain:      sum / float64(n),
		ENBW:              float64(n) * sumSq / (sum * sum),
		ScallopLossdB:     scallop,
		HighestSidelobedB: highestSidelobe(coeffs, dcRef),
	}
}

// dftMagSq evaluates |DFT(freq)|^2 at a normalised frequency [0,1).
func dftMagSq(coeffs []float64, freq float64) float64 {
	re, im := 0.0, 0.0
	w := 2 * math.Pi * freq
	for k, c := range coeffs {
		phase := w * float64(k)
		re += c * math.Cos(phase)
		im -= c * math.Sin(phase)
	}
	return re*re + im*im
}

// highestSidelobe scans past the first spectral null for the peak
// sidelobe level in dB relative to DC.
func highestSidelobe(coeffs []float64, dcRef float64) float64 {
	n := float64(len(coeffs))
	step := 1.0 / (n * 8)

	// Walk down the main lobe until the response turns back up. The 10%
	// descent threshold avoids mistaking a flat-top plateau for a null.
	threshold := dcRef * 0.1
	prev := dcRef
	start := 0.5
	for freq := step; freq < 0.5; freq += step {
		val := dftMagSq(coeffs, freq)
		if prev < threshold && val > prev {
			start = freq
			break
		}
		prev = val
	}

	peak := 0.0
	for freq := start; freq < 0.5; freq += step {
		if val := dftMagSq(coeffs, freq); val > peak {
			peak = val
		}
	}

	if peak <= 0 {
		return math.Inf(-1)
	}
	return 10 * math.Log10(peak/dcRef)
}
