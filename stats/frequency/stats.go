// Package frequency computes summary statistics of power spectra on
// physical frequency axes.
//
// Unlike bin-indexed spectrum statistics, every descriptor here takes
// the frequency values themselves, so it works equally for a
// one-sided spectrum, the radial axis of an isotropic average, or any
// other monotonic frequency coordinate.
package frequency

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-gridfft/grid"
	"github.com/cwbudde/algo-gridfft/spectral"
)

var (
	// ErrEmpty reports an empty spectrum.
	ErrEmpty = errors.New("frequency: spectrum must not be empty")
	// ErrLengthMismatch reports freq and power slices of different
	// lengths.
	ErrLengthMismatch = errors.New("frequency: freq and power must share length")
	// ErrNotOneDim reports a grid input with more than one dim.
	ErrNotOneDim = errors.New("frequency: grid must have exactly one dim")
)

// Stats holds summary statistics of a power spectrum.
type Stats struct {
	BinCount int
	Sum      float64 // sum of power values
	Integral float64 // trapezoidal integral of power over frequency
	Average  float64
	Max      float64
	MaxFreq  float64 // frequency of the strongest bin
	Min      float64
	MinFreq  float64

	// Spectral shape descriptors.
	Centroid float64 // power-weighted mean frequency
	Spread   float64 // power-weighted standard deviation around the centroid
	Flatness float64 // geometric over arithmetic mean, 0..1
	Rolloff  float64 // frequency below which 85% of the power lies

	// Log-log power-law fit over the strictly positive samples.
	// HasSlope is false when fewer than two such samples exist.
	Slope     float64
	Intercept float64
	HasSlope  bool
}

// Calculate computes all statistics of a power spectrum sampled at the
// given frequencies. Both slices must share length and hold at least
// one sample; the frequencies are assumed ascending.
func Calculate(freq, power []float64) (Stats, error) {
	n := len(power)
	if n == 0 {
		return Stats{}, ErrEmpty
	}
	if len(freq) != n {
		return Stats{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(freq), n)
	}

	var s Stats
	s.BinCount = n
	s.Max = power[0]
	s.MaxFreq = freq[0]
	s.Min = power[0]
	s.MinFreq = freq[0]
	for i, v := range power {
		s.Sum += v
		if v > s.Max {
			s.Max = v
			s.MaxFreq = freq[i]
		}
		if v < s.Min {
			s.Min = v
			s.MinFreq = freq[i]
		}
	}
	s.Average = s.Sum / float64(n)
	s.Integral = integrate(freq, power)

	s.Centroid = centroid(freq, power, s.Sum)
	s.Spread = spread(freq, power, s.Centroid, s.Sum)
	s.Flatness = flatness(freq, power)
	s.Rolloff = rolloff(freq, power, 0.85, s.Sum)

	if slope, intercept, err := fitSlope(freq, power); err == nil {
		s.Slope = slope
		s.Intercept = intercept
		s.HasSlope = true
	}

	return s, nil
}

// FromGrid computes statistics of a 1-d spectrum grid using its
// coordinate as the frequency axis. Dims without a coordinate count
// from zero at unit spacing.
func FromGrid(g *grid.Grid[float64]) (Stats, error) {
	if g == nil {
		return Stats{}, ErrEmpty
	}
	if g.NumDims() != 1 {
		return Stats{}, fmt.Errorf("%w: got %d dims", ErrNotOneDim, g.NumDims())
	}
	freq, err := g.CoordOrIndex(g.Dims()[0])
	if err != nil {
		return Stats{}, err
	}
	return Calculate(freq, g.Data())
}

// integrate returns the trapezoidal integral of power over freq, which
// tolerates the unevenly spaced radial axes the isotropic averages
// produce. A single sample integrates to zero.
func integrate(freq, power []float64) float64 {
	total := 0.0
	for i := 1; i < len(freq); i++ {
		total += 0.5 * (power[i] + power[i-1]) * (freq[i] - freq[i-1])
	}
	return total
}

// Centroid returns the power-weighted mean frequency.
func Centroid(freq, power []float64) float64 {
	if len(freq) != len(power) {
		return 0
	}
	sum := 0.0
	for _, v := range power {
		sum += v
	}
	return centroid(freq, power, sum)
}

func centroid(freq, power []float64, sum float64) float64 {
	if len(power) < 2 || sum == 0 {
		return 0
	}
	weighted := 0.0
	for i, v := range power {
		weighted += freq[i] * v
	}
	return weighted / sum
}

func spread(freq, power []float64, cent, sum float64) float64 {
	if len(power) < 2 || sum == 0 {
		return 0
	}
	weighted := 0.0
	for i, v := range power {
		d := freq[i] - cent
		weighted += d * d * v
	}
	return math.Sqrt(weighted / sum)
}

// Flatness returns the spectral flatness (geometric mean over
// arithmetic mean) of the power values at nonzero frequencies. Bins at
// zero frequency play the DC role and are excluded; any zero power
// value makes the geometric mean, and so the flatness, zero.
func Flatness(freq, power []float64) float64 {
	if len(freq) != len(power) {
		return 0
	}
	return flatness(freq, power)
}

func flatness(freq, power []float64) float64 {
	count := 0
	sumLin := 0.0
	sumLog := 0.0
	hasZero := false
	for i, v := range power {
		if freq[i] == 0 {
			continue
		}
		count++
		sumLin += v
		if v > 0 {
			sumLog += math.Log(v)
		} else {
			hasZero = true
		}
	}
	if count == 0 {
		return 0
	}

	meanLin := sumLin / float64(count)
	if meanLin == 0 || hasZero {
		return 0
	}
	return math.Exp(sumLog/float64(count)) / meanLin
}

// Rolloff returns the frequency below which the given fraction of the
// summed power lies.
func Rolloff(freq, power []float64, fraction float64) float64 {
	if len(freq) != len(power) || len(power) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range power {
		sum += v
	}
	return rolloff(freq, power, fraction, sum)
}

func rolloff(freq, power []float64, fraction, sum float64) float64 {
	if len(power) < 2 || sum == 0 {
		return 0
	}
	threshold := fraction * sum
	cum := 0.0
	for i, v := range power {
		cum += v
		if cum >= threshold {
			return freq[i]
		}
	}
	return freq[len(freq)-1]
}

// fitSlope runs the log-log fit over the strictly positive samples.
func fitSlope(freq, power []float64) (float64, float64, error) {
	var fx, fy []float64
	for i, v := range power {
		if freq[i] > 0 && v > 0 {
			fx = append(fx, freq[i])
			fy = append(fy, v)
		}
	}
	_, slope, intercept, err := spectral.FitLogLog(fx, fy)
	return slope, intercept, err
}
