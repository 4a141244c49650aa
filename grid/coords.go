package grid

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// DefaultSpacingTol is the relative tolerance under which a coordinate
// counts as evenly spaced.
const DefaultSpacingTol = 1e-3

// SetCoord attaches a coordinate vector to the named dim.
// The vector length must equal the dim size. The values are copied.
func (g *Grid[T]) SetCoord(dim string, vals []float64) error {
	n, err := g.Len(dim)
	if err != nil {
		return err
	}
	if len(vals) != n {
		return fmt.Errorf("%w: coordinate for %q has %d values, dim has %d", ErrShapeMismatch, dim, len(vals), n)
	}
	if g.coords == nil {
		g.coords = make(map[string][]float64)
	}
	g.coords[dim] = slices.Clone(vals)
	return nil
}

// Coord returns the coordinate vector attached to dim, or nil if none.
// The returned slice is the stored one; treat it as read-only.
func (g *Grid[T]) Coord(dim string) []float64 { return g.coords[dim] }

// HasCoord reports whether dim carries an explicit coordinate.
func (g *Grid[T]) HasCoord(dim string) bool {
	_, ok := g.coords[dim]
	return ok
}

// CoordOrIndex returns the coordinate for dim, materializing the default
// index coordinate 0, 1, 2, ... when none was set.
func (g *Grid[T]) CoordOrIndex(dim string) ([]float64, error) {
	n, err := g.Len(dim)
	if err != nil {
		return nil, err
	}
	if c, ok := g.coords[dim]; ok {
		return c, nil
	}
	c := make([]float64, n)
	for i := range c {
		c[i] = float64(i)
	}
	return c, nil
}

// SetAttr stores a scalar attribute under the given name.
func (g *Grid[T]) SetAttr(name string, v float64) {
	if g.attrs == nil {
		g.attrs = make(map[string]float64)
	}
	g.attrs[name] = v
}

// Attr returns the named scalar attribute.
func (g *Grid[T]) Attr(name string) (float64, bool) {
	v, ok := g.attrs[name]
	return v, ok
}

// Attrs returns a copy of all scalar attributes.
func (g *Grid[T]) Attrs() map[string]float64 {
	out := make(map[string]float64, len(g.attrs))
	for k, v := range g.attrs {
		out[k] = v
	}
	return out
}

// Spacing returns the step of the (evenly spaced) coordinate of dim.
//
// The coordinate must be even within relative tolerance rtol; rtol <= 0
// selects [DefaultSpacingTol]. A dim without an explicit coordinate has
// unit spacing. Uneven or degenerate coordinates are an error, because a
// Fourier transform along such a dim would attach meaningless
// frequencies.
func (g *Grid[T]) Spacing(dim string, rtol float64) (float64, error) {
	coord, err := g.CoordOrIndex(dim)
	if err != nil {
		return 0, err
	}
	if len(coord) < 2 {
		return 0, fmt.Errorf("%w: dim %q has fewer than 2 points", ErrUnevenSpacing, dim)
	}
	if rtol <= 0 {
		rtol = DefaultSpacingTol
	}

	step := coord[1] - coord[0]
	if step == 0 {
		return 0, fmt.Errorf("%w: dim %q has zero step", ErrUnevenSpacing, dim)
	}
	for i := 2; i < len(coord); i++ {
		d := coord[i] - coord[i-1]
		if math.Abs(d-step) > rtol*math.Abs(step) {
			return 0, fmt.Errorf("%w: dim %q steps by %g at index %d, %g elsewhere", ErrUnevenSpacing, dim, d, i, step)
		}
	}
	return step, nil
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// SecondsSince converts absolute times to seconds elapsed since the
// first entry, so a transform along a time dim yields frequencies in
// hertz.
func SecondsSince(ts []time.Time) []float64 {
	out := make([]float64, len(ts))
	if len(ts) == 0 {
		return out
	}
	t0 := ts[0]
	for i, t := range ts {
		out[i] = t.Sub(t0).Seconds()
	}
	return out
}

// DurationSeconds converts durations to seconds.
func DurationSeconds(ds []time.Duration) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = d.Seconds()
	}
	return out
}
