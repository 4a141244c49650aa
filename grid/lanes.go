package grid

import "fmt"

// EachLane visits every 1-D lane running along the given axis. For each
// lane it calls fn with the flat offset of the lane's first element and
// the stride between consecutive elements. Iteration stops at the first
// error, which is returned.
func (g *Grid[T]) EachLane(axis int, fn func(base, stride int) error) error {
	if axis < 0 || axis >= len(g.shape) {
		return fmt.Errorf("%w: axis %d of %d-d grid", ErrUnknownDim, axis, len(g.shape))
	}

	// Odometer over all dims except axis.
	idx := make([]int, len(g.shape))
	stride := g.strides[axis]
	for {
		base := 0
		for d, i := range idx {
			base += i * g.strides[d]
		}
		if err := fn(base, stride); err != nil {
			return err
		}

		d := len(idx) - 1
		for d >= 0 {
			if d == axis {
				d--
				continue
			}
			idx[d]++
			if idx[d] < g.shape[d] {
				break
			}
			idx[d] = 0
			d--
		}
		if d < 0 {
			return nil
		}
	}
}

// EachOuter visits every combination of indices over the dims NOT listed
// in axes, calling fn with the flat offset of the element whose listed
// axes are all zero. Combined with SubOffsets it walks a grid as a
// collection of equally shaped sub-blocks.
func (g *Grid[T]) EachOuter(axes []int, fn func(base int) error) error {
	inner := make([]bool, len(g.shape))
	for _, a := range axes {
		if a < 0 || a >= len(g.shape) {
			return fmt.Errorf("%w: axis %d of %d-d grid", ErrUnknownDim, a, len(g.shape))
		}
		if inner[a] {
			return fmt.Errorf("%w: axis %d listed twice", ErrDuplicateDim, a)
		}
		inner[a] = true
	}

	idx := make([]int, len(g.shape))
	for {
		base := 0
		for d, i := range idx {
			base += i * g.strides[d]
		}
		if err := fn(base); err != nil {
			return err
		}

		d := len(idx) - 1
		for d >= 0 {
			if inner[d] {
				d--
				continue
			}
			idx[d]++
			if idx[d] < g.shape[d] {
				break
			}
			idx[d] = 0
			d--
		}
		if d < 0 {
			return nil
		}
	}
}

// SubOffsets returns the flat offsets, relative to a block base, of
// every index combination over the listed axes in row-major order of
// those axes.
func (g *Grid[T]) SubOffsets(axes []int) ([]int, error) {
	seen := make(map[int]bool, len(axes))
	size := 1
	for _, a := range axes {
		if a < 0 || a >= len(g.shape) {
			return nil, fmt.Errorf("%w: axis %d of %d-d grid", ErrUnknownDim, a, len(g.shape))
		}
		if seen[a] {
			return nil, fmt.Errorf("%w: axis %d listed twice", ErrDuplicateDim, a)
		}
		seen[a] = true
		size *= g.shape[a]
	}

	out := make([]int, 0, size)
	idx := make([]int, len(axes))
	for {
		off := 0
		for d, i := range idx {
			off += i * g.strides[axes[d]]
		}
		out = append(out, off)

		d := len(idx) - 1
		for d >= 0 {
			idx[d]++
			if idx[d] < g.shape[axes[d]] {
				break
			}
			idx[d] = 0
			d--
		}
		if d < 0 {
			return out, nil
		}
	}
}
