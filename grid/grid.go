package grid

import (
	"fmt"
	"math"
	"slices"
)

// Element enumerates the value types a Grid can hold.
type Element interface {
	~float64 | ~complex128
}

// Grid is an N-dimensional array with named dimensions.
//
// Data is stored row-major: the last dimension varies fastest. A Grid is
// not safe for concurrent mutation; concurrent reads are fine.
type Grid[T Element] struct {
	dims    []string
	shape   []int
	strides []int
	data    []T

	coords map[string][]float64
	attrs  map[string]float64
}

// New creates a grid with the given dimension names and sizes.
//
// If data is nil a zeroed block is allocated; otherwise the grid takes
// ownership of the slice, whose length must equal the product of shape.
func New[T Element](dims []string, shape []int, data []T) (*Grid[T], error) {
	if len(dims) == 0 {
		return nil, ErrNoDims
	}
	if len(dims) != len(shape) {
		return nil, fmt.Errorf("%w: %d dims for %d sizes", ErrShapeMismatch, len(dims), len(shape))
	}

	size := 1
	for i, n := range shape {
		if n <= 0 {
			return nil, fmt.Errorf("%w: dim %q has size %d", ErrShapeMismatch, dims[i], n)
		}
		size *= n
	}

	for i, d := range dims {
		if d == "" {
			return nil, fmt.Errorf("grid: empty dim name at axis %d", i)
		}
		if slices.Contains(dims[:i], d) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateDim, d)
		}
	}

	switch {
	case data == nil:
		data = make([]T, size)
	case len(data) != size:
		return nil, fmt.Errorf("%w: %d values for shape %v (want %d)", ErrShapeMismatch, len(data), shape, size)
	}

	return &Grid[T]{
		dims:    slices.Clone(dims),
		shape:   slices.Clone(shape),
		strides: rowMajorStrides(shape),
		data:    data,
	}, nil
}

func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}

// Dims returns the dimension names in axis order.
func (g *Grid[T]) Dims() []string { return slices.Clone(g.dims) }

// Shape returns the size of each dimension in axis order.
func (g *Grid[T]) Shape() []int { return slices.Clone(g.shape) }

// NumDims returns the number of dimensions.
func (g *Grid[T]) NumDims() int { return len(g.dims) }

// Size returns the total number of values.
func (g *Grid[T]) Size() int { return len(g.data) }

// Data returns the backing slice. Mutating it mutates the grid.
func (g *Grid[T]) Data() []T { return g.data }

// AxisOf returns the axis position of the named dim.
func (g *Grid[T]) AxisOf(dim string) (int, error) {
	for i, d := range g.dims {
		if d == dim {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDim, dim)
}

// AxesOf resolves dim names to axis positions, rejecting duplicates.
func (g *Grid[T]) AxesOf(dims []string) ([]int, error) {
	axes := make([]int, len(dims))
	for i, d := range dims {
		if slices.Contains(dims[:i], d) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateDim, d)
		}
		a, err := g.AxisOf(d)
		if err != nil {
			return nil, err
		}
		axes[i] = a
	}
	return axes, nil
}

// Len returns the size of the named dim.
func (g *Grid[T]) Len(dim string) (int, error) {
	a, err := g.AxisOf(dim)
	if err != nil {
		return 0, err
	}
	return g.shape[a], nil
}

// At returns the value at the given index, one entry per dim.
// Like slice indexing, it panics on an index count or range violation.
func (g *Grid[T]) At(idx ...int) T { return g.data[g.offset(idx)] }

// Set stores v at the given index, one entry per dim.
func (g *Grid[T]) Set(v T, idx ...int) { g.data[g.offset(idx)] = v }

func (g *Grid[T]) offset(idx []int) int {
	if len(idx) != len(g.shape) {
		panic(fmt.Sprintf("grid: %d indices for %d dims", len(idx), len(g.shape)))
	}
	off := 0
	for i, x := range idx {
		if x < 0 || x >= g.shape[i] {
			panic(fmt.Sprintf("grid: index %d out of range for dim %q (size %d)", x, g.dims[i], g.shape[i]))
		}
		off += x * g.strides[i]
	}
	return off
}

// Clone returns a deep copy, including coordinates and attributes.
func (g *Grid[T]) Clone() *Grid[T] {
	out := &Grid[T]{
		dims:    slices.Clone(g.dims),
		shape:   slices.Clone(g.shape),
		strides: slices.Clone(g.strides),
		data:    slices.Clone(g.data),
	}
	if g.coords != nil {
		out.coords = make(map[string][]float64, len(g.coords))
		for d, c := range g.coords {
			out.coords[d] = slices.Clone(c)
		}
	}
	if g.attrs != nil {
		out.attrs = make(map[string]float64, len(g.attrs))
		for k, v := range g.attrs {
			out.attrs[k] = v
		}
	}
	return out
}

// HasNaN reports whether any value of a real-valued grid is NaN.
func HasNaN(g *Grid[float64]) bool {
	for _, v := range g.data {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
