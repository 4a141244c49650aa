package chunk

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-gridfft/grid"
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

func TestParseSpec(t *testing.T) {
	spec, err := ParseSpec(" time=8, y=4 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spec) != 2 || spec["time"] != 8 || spec["y"] != 4 {
		t.Errorf("got %v, want time=8 y=4", spec)
	}

	for _, bad := range []string{"", "time", "time=abc", "time=0", "=4"} {
		if _, err := ParseSpec(bad); err == nil {
			t.Errorf("ParseSpec(%q): expected error, got nil", bad)
		}
	}
}

func TestSpecString(t *testing.T) {
	s := Spec{"y": 4, "time": 8}
	if got := s.String(); got != "time=8,y=4" {
		t.Errorf("got %q, want %q", got, "time=8,y=4")
	}
}

func TestSplitRagged(t *testing.T) {
	data := make([]float64, 10)
	coord := make([]float64, 10)
	for i := range data {
		data[i] = float64(i)
		coord[i] = 0.5 * float64(i)
	}
	g := mustGrid(t, []string{"x"}, []int{10}, data)
	if err := g.SetCoord("x", coord); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, err := Split(g, Spec{"x": 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Blocks() != 3 {
		t.Fatalf("got %d blocks, want 3", c.Blocks())
	}

	wantLens := []int{4, 4, 2}
	wantStarts := []int{0, 4, 8}
	for i := 0; i < c.Blocks(); i++ {
		blk := c.Block(i)
		n, err := blk.Grid.Len("x")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != wantLens[i] {
			t.Errorf("block %d: len %d, want %d", i, n, wantLens[i])
		}
		if blk.Starts["x"] != wantStarts[i] {
			t.Errorf("block %d: start %d, want %d", i, blk.Starts["x"], wantStarts[i])
		}
		if got := blk.Grid.Coord("x")[0]; got != 0.5*float64(wantStarts[i]) {
			t.Errorf("block %d: coord[0] = %v, want %v", i, got, 0.5*float64(wantStarts[i]))
		}
	}
}

func TestSplitMultiDim(t *testing.T) {
	g := mustGrid(t, []string{"t", "y", "x"}, []int{4, 6, 3}, nil)

	c, err := Split(g, Spec{"t": 2, "y": 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Blocks() != 4 {
		t.Fatalf("got %d blocks, want 4", c.Blocks())
	}

	// Blocks iterate row-major: t block outermost.
	blk := c.Block(3)
	if blk.Starts["t"] != 2 || blk.Starts["y"] != 3 {
		t.Errorf("block 3 starts: got %v, want t=2 y=3", blk.Starts)
	}

	shape := blk.Grid.Shape()
	if shape[0] != 2 || shape[1] != 3 || shape[2] != 3 {
		t.Errorf("block 3 shape: got %v, want [2 3 3]", shape)
	}
}

func TestSplitOversizedChunk(t *testing.T) {
	g := mustGrid(t, []string{"x"}, []int{3}, []float64{1, 2, 3})
	c, err := Split(g, Spec{"x": 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Blocks() != 1 {
		t.Fatalf("got %d blocks, want 1", c.Blocks())
	}
	testutil.RequireSliceNearlyEqual(t, c.Block(0).Grid.Data(), []float64{1, 2, 3}, 0)
}

func TestSplitErrors(t *testing.T) {
	g := mustGrid(t, []string{"x"}, []int{4}, nil)

	if _, err := Split[float64](nil, Spec{"x": 2}); !errors.Is(err, ErrNilGrid) {
		t.Errorf("expected ErrNilGrid, got %v", err)
	}
	if _, err := Split(g, Spec{"q": 2}); !errors.Is(err, grid.ErrUnknownDim) {
		t.Errorf("expected ErrUnknownDim, got %v", err)
	}
	if _, err := Split(g, Spec{"x": 0}); !errors.Is(err, ErrBadLength) {
		t.Errorf("expected ErrBadLength, got %v", err)
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	data := make([]float64, 5*6)
	for i := range data {
		data[i] = float64(i) * 1.5
	}
	g := mustGrid(t, []string{"y", "x"}, []int{5, 6}, data)
	if err := g.SetCoord("y", grid.Linspace(0, 4, 5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.SetCoord("x", grid.Linspace(0, 10, 6)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g.SetAttr("gain", 3)

	c, err := Split(g, Spec{"y": 2, "x": 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Blocks() != 6 {
		t.Fatalf("got %d blocks, want 6", c.Blocks())
	}

	back, err := Join(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, back.Data(), g.Data(), 0)
	testutil.RequireSliceNearlyEqual(t, back.Coord("y"), g.Coord("y"), 0)
	testutil.RequireSliceNearlyEqual(t, back.Coord("x"), g.Coord("x"), 0)
	if v, ok := back.Attr("gain"); !ok || v != 3 {
		t.Errorf("attr: got (%v, %v), want (3, true)", v, ok)
	}
}

func TestJoinEmpty(t *testing.T) {
	if _, err := Join[float64](nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}
