// Package moments computes summary statistics of gridded field data.
//
// Calculate makes a single pass over the samples, using Welford's
// online algorithm for numerical stability on the higher-order
// moments, so it stays exact-enough on large fields without a second
// traversal.
package moments

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-gridfft/grid"
)

// ErrEmpty reports a field with no samples.
var ErrEmpty = errors.New("moments: empty input")

// Stats holds summary statistics of a field.
type Stats struct {
	Count    int
	Mean     float64
	RMS      float64
	Energy   float64 // sum of squares
	Min      float64
	MinPos   int // flat sample position of the first minimum
	Max      float64
	MaxPos   int
	Range    float64 // Max - Min
	Variance float64
	Skewness float64
	Kurtosis float64 // excess kurtosis, 0 for a normal distribution

	// CrestFactor is max(|Min|, |Max|) / RMS, 0 when RMS is 0.
	CrestFactor float64

	// MinIndex and MaxIndex are the per-dim indices of the extrema.
	// Only FromGrid fills them.
	MinIndex []int
	MaxIndex []int
}

// Calculate computes the statistics of data in one pass.
func Calculate(data []float64) (Stats, error) {
	n := len(data)
	if n == 0 {
		return Stats{}, ErrEmpty
	}

	var mean, m2, m3, m4 float64
	var sumSq float64
	minVal, maxVal := data[0], data[0]
	minPos, maxPos := 0, 0

	for i, x := range data {
		// Welford update. M4 depends on the old M3 and M2, M3 on the
		// old M2, so the order below cannot change.
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += x * x

		if x > maxVal {
			maxVal = x
			maxPos = i
		}
		if x < minVal {
			minVal = x
			minPos = i
		}
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)
	peak := math.Max(math.Abs(maxVal), math.Abs(minVal))
	variance := m2 / nf

	var crest float64
	if rms > 0 {
		crest = peak / rms
	}

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	return Stats{
		Count:       n,
		Mean:        mean,
		RMS:         rms,
		Energy:      sumSq,
		Min:         minVal,
		MinPos:      minPos,
		Max:         maxVal,
		MaxPos:      maxPos,
		Range:       maxVal - minVal,
		Variance:    variance,
		Skewness:    skewness,
		Kurtosis:    kurtosis,
		CrestFactor: crest,
	}, nil
}

// FromGrid computes the statistics of a labeled grid and reports the
// extrema positions as per-dim indices.
func FromGrid(g *grid.Grid[float64]) (Stats, error) {
	if g == nil {
		return Stats{}, ErrEmpty
	}

	st, err := Calculate(g.Data())
	if err != nil {
		return Stats{}, err
	}
	st.MinIndex = unflatten(st.MinPos, g.Shape())
	st.MaxIndex = unflatten(st.MaxPos, g.Shape())
	return st, nil
}

// unflatten converts a flat row-major position into per-dim indices.
func unflatten(pos int, shape []int) []int {
	idx := make([]int, len(shape))
	for d := len(shape) - 1; d >= 0; d-- {
		idx[d] = pos % shape[d]
		pos /= shape[d]
	}
	return idx
}

// Streaming accumulates field statistics incrementally across blocks
// of samples. It updates per sample, so the result is bit-for-bit
// identical with [Calculate] over the concatenated blocks.
type Streaming struct {
	n       int
	mean    float64
	m2      float64
	m3      float64
	m4      float64
	sumSq   float64
	maxVal  float64
	maxPos  int
	minVal  float64
	minPos  int
	hasData bool
}

// NewStreaming creates an empty accumulator.
func NewStreaming() *Streaming {
	return &Streaming{}
}

// Reset discards all accumulated samples.
func (s *Streaming) Reset() {
	*s = Streaming{}
}

// Count returns the number of samples accumulated so far.
func (s *Streaming) Count() int { return s.n }

// Update adds a block of samples to the running statistics.
func (s *Streaming) Update(block []float64) {
	for _, x := range block {
		s.n++
		ni := float64(s.n)

		delta := x - s.mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(s.n-1)

		s.m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*s.m2 - 4*deltaN*s.m3
		s.m3 += term1*deltaN*(float64(s.n-1)-1) - 3*deltaN*s.m2
		s.m2 += term1
		s.mean += deltaN

		s.sumSq += x * x

		if !s.hasData {
			s.maxVal, s.minVal = x, x
			s.maxPos, s.minPos = s.n-1, s.n-1
			s.hasData = true
			continue
		}
		if x > s.maxVal {
			s.maxVal = x
			s.maxPos = s.n - 1
		}
		if x < s.minVal {
			s.minVal = x
			s.minPos = s.n - 1
		}
	}
}

// Result returns the statistics of everything accumulated so far.
func (s *Streaming) Result() (Stats, error) {
	if s.n == 0 {
		return Stats{}, ErrEmpty
	}

	nf := float64(s.n)
	rms := math.Sqrt(s.sumSq / nf)
	peak := math.Max(math.Abs(s.maxVal), math.Abs(s.minVal))
	variance := s.m2 / nf

	var crest float64
	if rms > 0 {
		crest = peak / rms
	}

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (s.m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (s.m4/nf)/(variance*variance) - 3
	}

	return Stats{
		Count:       s.n,
		Mean:        s.mean,
		RMS:         rms,
		Energy:      s.sumSq,
		Min:         s.minVal,
		MinPos:      s.minPos,
		Max:         s.maxVal,
		MaxPos:      s.maxPos,
		Range:       s.maxVal - s.minVal,
		Variance:    variance,
		Skewness:    skewness,
		Kurtosis:    kurtosis,
		CrestFactor: crest,
	}, nil
}

// Mean returns the mean of data using compensated summation. It
// returns 0 for empty input.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	var sum, c float64
	for _, x := range data {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	return sum / float64(len(data))
}

// RMS returns the root-mean-square of data, 0 for empty input.
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range data {
		sumSq += x * x
	}
	return math.Sqrt(sumSq / float64(len(data)))
}
