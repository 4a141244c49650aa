package spectral

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-gridfft/internal/testutil"
)

func TestFitLogLogExactPowerLaw(t *testing.T) {
	x := []float64{1, 2, 4, 8}
	y := []float64{3, 0.75, 0.1875, 0.046875}

	fit, slope, intercept, err := FitLogLog(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.RequireNearlyEqual(t, slope, -2, 1e-12)
	testutil.RequireNearlyEqual(t, intercept, math.Log2(3), 1e-12)
	testutil.RequireSliceNearlyEqual(t, fit, y, 1e-12)
}

func TestFitLogLogRecoversSlope(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 0.5 * math.Pow(v, 1.5)
	}

	_, slope, intercept, err := FitLogLog(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.RequireNearlyEqual(t, slope, 1.5, 1e-9)
	testutil.RequireNearlyEqual(t, intercept, -1, 1e-9)
}

func TestFitLogLogErrors(t *testing.T) {
	if _, _, _, err := FitLogLog([]float64{1, 2}, []float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
	if _, _, _, err := FitLogLog([]float64{2}, []float64{3}); !errors.Is(err, ErrShortSeries) {
		t.Errorf("expected ErrShortSeries, got %v", err)
	}
	if _, _, _, err := FitLogLog([]float64{1, 2}, []float64{0, 3}); !errors.Is(err, ErrNonPositive) {
		t.Errorf("expected ErrNonPositive, got %v", err)
	}
	if _, _, _, err := FitLogLog([]float64{-1, 2}, []float64{1, 3}); !errors.Is(err, ErrNonPositive) {
		t.Errorf("expected ErrNonPositive, got %v", err)
	}
	if _, _, _, err := FitLogLog([]float64{1, 2}, []float64{math.NaN(), 3}); !errors.Is(err, ErrNaN) {
		t.Errorf("expected ErrNaN, got %v", err)
	}
}
