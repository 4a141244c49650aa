package grid

import (
	"fmt"
	"slices"
)

// Slice copies out a rectangular region, one start and size per dim.
// Coordinates are sliced along with the data and attributes are
// carried over.
func (g *Grid[T]) Slice(starts, sizes []int) (*Grid[T], error) {
	if len(starts) != len(g.shape) || len(sizes) != len(g.shape) {
		return nil, fmt.Errorf("%w: %d starts and %d sizes for %d dims",
			ErrShapeMismatch, len(starts), len(sizes), len(g.shape))
	}
	for i := range starts {
		if sizes[i] < 1 {
			return nil, fmt.Errorf("%w: size %d for dim %q", ErrShapeMismatch, sizes[i], g.dims[i])
		}
		if starts[i] < 0 || starts[i]+sizes[i] > g.shape[i] {
			return nil, fmt.Errorf("%w: [%d, %d) out of range for dim %q (size %d)",
				ErrShapeMismatch, starts[i], starts[i]+sizes[i], g.dims[i], g.shape[i])
		}
	}

	out, err := New[T](g.dims, sizes, nil)
	if err != nil {
		return nil, err
	}

	g.copyRegion(out.data, starts, sizes, true)

	for d, c := range g.coords {
		a, err := g.AxisOf(d)
		if err != nil {
			return nil, err
		}
		if err := out.SetCoord(d, c[starts[a]:starts[a]+sizes[a]]); err != nil {
			return nil, err
		}
	}
	for k, v := range g.attrs {
		out.SetAttr(k, v)
	}
	return out, nil
}

// Insert copies src into the region of g starting at starts. The two
// grids must have the same dims; coordinates are left untouched.
func (g *Grid[T]) Insert(src *Grid[T], starts []int) error {
	if src == nil {
		return fmt.Errorf("%w: nil source", ErrShapeMismatch)
	}
	if !slices.Equal(g.dims, src.dims) {
		return fmt.Errorf("%w: dims %v vs %v", ErrShapeMismatch, g.dims, src.dims)
	}
	if len(starts) != len(g.shape) {
		return fmt.Errorf("%w: %d starts for %d dims", ErrShapeMismatch, len(starts), len(g.shape))
	}
	for i := range starts {
		if starts[i] < 0 || starts[i]+src.shape[i] > g.shape[i] {
			return fmt.Errorf("%w: [%d, %d) out of range for dim %q (size %d)",
				ErrShapeMismatch, starts[i], starts[i]+src.shape[i], g.dims[i], g.shape[i])
		}
	}

	g.copyRegion(src.data, starts, src.shape, false)
	return nil
}

// copyRegion walks the region [starts, starts+sizes) of g in row-major
// order, pairing it with buf row by row. The last dim is contiguous, so
// rows move with copy. When read is true the region is copied into buf,
// otherwise buf is copied into the region.
func (g *Grid[T]) copyRegion(buf []T, starts, sizes []int, read bool) {
	last := len(sizes) - 1
	rowLen := sizes[last]
	idx := make([]int, len(sizes))
	flat := 0
	for {
		off := starts[last]
		for d := 0; d < last; d++ {
			off += (starts[d] + idx[d]) * g.strides[d]
		}
		if read {
			copy(buf[flat:flat+rowLen], g.data[off:off+rowLen])
		} else {
			copy(g.data[off:off+rowLen], buf[flat:flat+rowLen])
		}
		flat += rowLen

		d := last - 1
		for d >= 0 {
			idx[d]++
			if idx[d] < sizes[d] {
				break
			}
			idx[d] = 0
			d--
		}
		if d < 0 {
			return
		}
	}
}
