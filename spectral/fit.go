package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// FitLogLog fits a straight line to log2(y) against log2(x) and
// returns the fitted values in linear space together with the slope
// and intercept. Power-law spectra read their exponent directly off
// the slope. Both slices must share length, hold at least two samples
// and be strictly positive.
func FitLogLog(x, y []float64) (fit []float64, slope, intercept float64, err error) {
	if len(x) != len(y) {
		return nil, 0, 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}
	if len(x) < 2 {
		return nil, 0, 0, fmt.Errorf("%w: got %d", ErrShortSeries, len(x))
	}

	lx := make([]float64, len(x))
	ly := make([]float64, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			return nil, 0, 0, fmt.Errorf("%w: sample %d", ErrNaN, i)
		}
		if x[i] <= 0 || y[i] <= 0 {
			return nil, 0, 0, fmt.Errorf("%w: sample %d is (%v, %v)", ErrNonPositive, i, x[i], y[i])
		}
		lx[i] = math.Log2(x[i])
		ly[i] = math.Log2(y[i])
	}

	intercept, slope = stat.LinearRegression(lx, ly, nil, false)

	fit = make([]float64, len(x))
	for i, v := range lx {
		fit[i] = math.Exp2(slope*v + intercept)
	}
	return fit, slope, intercept, nil
}
