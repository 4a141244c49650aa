package spectral

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-gridfft/detrend"
	"github.com/cwbudde/algo-gridfft/grid"
	"github.com/cwbudde/algo-gridfft/grid/chunk"
	"github.com/cwbudde/algo-gridfft/internal/testutil"
)

func mustGrid(t *testing.T, dims []string, shape []int, data []float64) *grid.Grid[float64] {
	t.Helper()
	g, err := grid.New[float64](dims, shape, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return g
}

func TestTransformConstant(t *testing.T) {
	g := mustGrid(t, []string{"x"}, []int{4}, []float64{2, 2, 2, 2})

	out, err := Transform(g, WithoutShift())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dims := out.Dims()
	if len(dims) != 1 || dims[0] != "freq_x" {
		t.Errorf("got dims %v, want [freq_x]", dims)
	}
	testutil.RequireComplexNearlyEqual(t, out.Data(), []complex128{8, 0, 0, 0}, 1e-9)
	testutil.RequireSliceNearlyEqual(t, out.Coord("freq_x"), []float64{0, 0.25, -0.5, -0.25}, 1e-12)

	dk, ok := out.Attr(SpacingAttr("x"))
	if !ok {
		t.Fatalf("missing attr %q", SpacingAttr("x"))
	}
	testutil.RequireNearlyEqual(t, dk, 0.25, 1e-12)
}

func TestTransformShiftCentersZero(t *testing.T) {
	g := mustGrid(t, []string{"x"}, []int{4}, []float64{2, 2, 2, 2})

	out, err := Transform(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.RequireComplexNearlyEqual(t, out.Data(), []complex128{0, 0, 8, 0}, 1e-9)
	testutil.RequireSliceNearlyEqual(t, out.Coord("freq_x"), []float64{-0.5, -0.25, 0, 0.25}, 1e-12)
}

func TestTransformSingleTone(t *testing.T) {
	n := 8
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Cos(2 * math.Pi * 2 * float64(i) / float64(n))
	}
	g := mustGrid(t, []string{"x"}, []int{n}, data)

	out, err := Transform(g, WithoutShift())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []complex128{0, 0, 4, 0, 0, 0, 4, 0}
	testutil.RequireComplexNearlyEqual(t, out.Data(), want, 1e-9)
}

func TestTransformSpacingFromCoords(t *testing.T) {
	g := mustGrid(t, []string{"x"}, []int{4}, []float64{1, 0, 0, 0})
	if err := g.SetCoord("x", []float64{0, 0.5, 1, 1.5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := Transform(g, WithoutShift())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, out.Coord(FreqDim("x")), []float64{0, 0.5, -1, -0.5}, 1e-12)

	dk, ok := out.Attr("freq_x_spacing")
	if !ok {
		t.Fatalf("missing attr freq_x_spacing")
	}
	testutil.RequireNearlyEqual(t, dk, 0.5, 1e-12)
}

func TestTransformTwoDims(t *testing.T) {
	g := mustGrid(t, []string{"y", "x"}, []int{2, 2}, []float64{1, 2, 3, 4})

	out, err := Transform(g, WithoutShift())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dims := out.Dims()
	if dims[0] != "freq_y" || dims[1] != "freq_x" {
		t.Errorf("got dims %v, want [freq_y freq_x]", dims)
	}
	testutil.RequireComplexNearlyEqual(t, out.Data(), []complex128{10, -2, -4, 0}, 1e-9)
}

func TestTransformCarriesOtherDims(t *testing.T) {
	g := mustGrid(t, []string{"time", "x"}, []int{2, 4},
		[]float64{1, 1, 1, 1, 2, 2, 2, 2})
	if err := g.SetCoord("time", []float64{10, 20}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g.SetAttr("source", 7)

	out, err := Transform(g, Along("x"), WithoutShift())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dims := out.Dims()
	if dims[0] != "time" || dims[1] != "freq_x" {
		t.Errorf("got dims %v, want [time freq_x]", dims)
	}
	testutil.RequireSliceNearlyEqual(t, out.Coord("time"), []float64{10, 20}, 0)
	if v, ok := out.Attr("source"); !ok || v != 7 {
		t.Errorf("attr source: got (%v, %v), want (7, true)", v, ok)
	}

	want := []complex128{4, 0, 0, 0, 8, 0, 0, 0}
	testutil.RequireComplexNearlyEqual(t, out.Data(), want, 1e-9)
}

func TestTransformDetrendRemovesMean(t *testing.T) {
	g := mustGrid(t, []string{"x"}, []int{4}, []float64{1, 2, 3, 4})

	out, err := Transform(g, WithDetrend(detrend.ModeConstant), WithoutShift())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dc := out.Data()[0]
	testutil.RequireNearlyEqual(t, real(dc), 0, 1e-9)
	testutil.RequireNearlyEqual(t, imag(dc), 0, 1e-9)

	// The input is never modified.
	testutil.RequireSliceNearlyEqual(t, g.Data(), []float64{1, 2, 3, 4}, 0)
}

func TestTransformHannWindow(t *testing.T) {
	g := mustGrid(t, []string{"x"}, []int{4}, []float64{1, 1, 1, 1})

	out, err := Transform(g, WithHannWindow(), WithoutShift())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Symmetric Hann of length 4 is [0 0.75 0.75 0], so the zero bin
	// holds its sum.
	dc := out.Data()[0]
	testutil.RequireNearlyEqual(t, real(dc), 1.5, 1e-12)
	testutil.RequireSliceNearlyEqual(t, g.Data(), []float64{1, 1, 1, 1}, 0)
}

func TestTransformErrors(t *testing.T) {
	if _, err := Transform(nil); !errors.Is(err, ErrNilGrid) {
		t.Errorf("expected ErrNilGrid, got %v", err)
	}

	bad := mustGrid(t, []string{"x"}, []int{3}, []float64{1, math.NaN(), 2})
	if _, err := Transform(bad); !errors.Is(err, ErrNaN) {
		t.Errorf("expected ErrNaN, got %v", err)
	}

	g := mustGrid(t, []string{"x"}, []int{4}, []float64{1, 2, 3, 4})
	if _, err := Transform(g, Along("q")); !errors.Is(err, grid.ErrUnknownDim) {
		t.Errorf("expected ErrUnknownDim, got %v", err)
	}

	if err := g.SetCoord("x", []float64{0, 1, 2.5, 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Transform(g); !errors.Is(err, grid.ErrUnevenSpacing) {
		t.Errorf("expected ErrUnevenSpacing, got %v", err)
	}

	even := mustGrid(t, []string{"time", "x"}, []int{4, 4}, nil)
	_, err := Transform(even, Along("x"), WithChunks(chunk.Spec{"x": 2}))
	if !errors.Is(err, ErrChunkedTransformDim) {
		t.Errorf("expected ErrChunkedTransformDim, got %v", err)
	}

	single := mustGrid(t, []string{"x"}, []int{1}, []float64{5})
	if _, err := Transform(single); !errors.Is(err, grid.ErrUnevenSpacing) {
		t.Errorf("expected ErrUnevenSpacing, got %v", err)
	}
}

func TestTransformChunkedMatchesSerial(t *testing.T) {
	nt, nx := 6, 8
	data := make([]float64, nt*nx)
	for ti := 0; ti < nt; ti++ {
		for j := 0; j < nx; j++ {
			data[ti*nx+j] = float64(ti) + math.Cos(2*math.Pi*float64(j)/float64(nx)) + 0.25*float64(j)
		}
	}
	g := mustGrid(t, []string{"time", "x"}, []int{nt, nx}, data)
	if err := g.SetCoord("time", grid.Linspace(0, 5, nt)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	serial, err := Transform(g, Along("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chunked, err := Transform(g, Along("x"),
		WithChunks(chunk.Spec{"time": 4}), WithWorkers(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.RequireComplexNearlyEqual(t, chunked.Data(), serial.Data(), 1e-12)
	testutil.RequireSliceNearlyEqual(t, chunked.Coord("time"), serial.Coord("time"), 0)
	testutil.RequireSliceNearlyEqual(t, chunked.Coord("freq_x"), serial.Coord("freq_x"), 0)

	ds, ok1 := serial.Attr(SpacingAttr("x"))
	dc, ok2 := chunked.Attr(SpacingAttr("x"))
	if !ok1 || !ok2 || ds != dc {
		t.Errorf("spacing attrs differ: (%v, %v) vs (%v, %v)", ds, ok1, dc, ok2)
	}
}
