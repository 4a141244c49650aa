// Package chunk splits grids into blocks along selected dims and runs
// per-block work on a bounded worker pool.
//
// A Spec names the dims to cut and the block length along each. Split
// produces the blocks with their coordinates sliced to match, Map
// applies a function to every block concurrently, and Join stitches
// the results back into one grid. Blocks are independent, so any
// per-block operation that does not look across chunk boundaries
// parallelizes this way.
//
// # Usage
//
//	c, err := chunk.Split(g, chunk.Spec{"time": 64})
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, err := chunk.Map(ctx, c, process, chunk.WithWorkers(4))
//	if err != nil {
//		log.Fatal(err)
//	}
//	joined, err := chunk.Join(out)
package chunk

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-gridfft/grid"
)

var (
	// ErrNilGrid reports a nil input grid.
	ErrNilGrid = errors.New("chunk: grid must not be nil")
	// ErrEmpty reports a chunked set with no blocks.
	ErrEmpty = errors.New("chunk: no blocks")
	// ErrBadLength reports a chunk length below 1.
	ErrBadLength = errors.New("chunk: chunk length must be >= 1")
	// ErrBadSpec reports a malformed chunk spec string.
	ErrBadSpec = errors.New("chunk: malformed spec")
	// ErrBlockShape reports a mapped block that changed size along a
	// chunked dim or dropped a chunked dim.
	ErrBlockShape = errors.New("chunk: block changed layout along a chunked dim")
)

// Spec maps dim names to the block length along that dim.
type Spec map[string]int

// ParseSpec parses a comma-separated "dim=length" list, e.g.
// "time=64,y=128".
func ParseSpec(s string) (Spec, error) {
	spec := make(Spec)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		dim, val, ok := strings.Cut(part, "=")
		dim = strings.TrimSpace(dim)
		if !ok || dim == "" {
			return nil, fmt.Errorf("%w: %q", ErrBadSpec, part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadSpec, part)
		}
		if n < 1 {
			return nil, fmt.Errorf("%w: %d for dim %q", ErrBadLength, n, dim)
		}
		spec[dim] = n
	}
	if len(spec) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrBadSpec, s)
	}
	return spec, nil
}

// String renders the spec as a canonical "dim=length" list.
func (s Spec) String() string {
	dims := make([]string, 0, len(s))
	for d := range s {
		dims = append(dims, d)
	}
	sort.Strings(dims)

	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = fmt.Sprintf("%s=%d", d, s[d])
	}
	return strings.Join(parts, ",")
}

// Block is one piece of a chunked grid.
type Block[T grid.Element] struct {
	// Grid holds the block's values with coordinates already sliced.
	Grid *grid.Grid[T]
	// Starts gives the block's global start index per chunked dim.
	Starts map[string]int
	// Index is the block's position in Chunked ordering.
	Index int
}

// Chunked is a grid cut into blocks along one or more dims. Blocks are
// ordered row-major over the chunked dims in source axis order.
type Chunked[T grid.Element] struct {
	chunkDims  []string
	chunkSizes []int
	counts     []int
	blocks     []*grid.Grid[T]
}

// Blocks returns the number of blocks.
func (c *Chunked[T]) Blocks() int { return len(c.blocks) }

// Block returns the i-th block with its global position filled in.
func (c *Chunked[T]) Block(i int) *Block[T] {
	starts := make(map[string]int, len(c.chunkDims))
	for d, idx := range c.blockIndex(i) {
		starts[c.chunkDims[d]] = idx * c.chunkSizes[d]
	}
	return &Block[T]{Grid: c.blocks[i], Starts: starts, Index: i}
}

// Spec returns the chunk lengths this set was split with.
func (c *Chunked[T]) Spec() Spec {
	spec := make(Spec, len(c.chunkDims))
	for i, d := range c.chunkDims {
		spec[d] = c.chunkSizes[i]
	}
	return spec
}

// blockIndex converts a flat block number to per-chunked-dim indices.
func (c *Chunked[T]) blockIndex(i int) []int {
	idx := make([]int, len(c.counts))
	for d := len(c.counts) - 1; d >= 0; d-- {
		idx[d] = i % c.counts[d]
		i /= c.counts[d]
	}
	return idx
}

// Split cuts g into blocks along the dims named in spec. The last block
// along a dim may be shorter when the dim size is not a multiple of the
// chunk length. Chunk lengths at or above the dim size yield a single
// block along that dim.
func Split[T grid.Element](g *grid.Grid[T], spec Spec) (*Chunked[T], error) {
	if g == nil {
		return nil, ErrNilGrid
	}

	for d, n := range spec {
		if _, err := g.AxisOf(d); err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, fmt.Errorf("%w: %d for dim %q", ErrBadLength, n, d)
		}
	}

	// Chunked dims in source axis order for a deterministic block order.
	var chunkDims []string
	var chunkSizes []int
	for _, d := range g.Dims() {
		if n, ok := spec[d]; ok {
			chunkDims = append(chunkDims, d)
			chunkSizes = append(chunkSizes, n)
		}
	}

	shape := g.Shape()
	axes, err := g.AxesOf(chunkDims)
	if err != nil {
		return nil, err
	}

	counts := make([]int, len(chunkDims))
	total := 1
	for i, a := range axes {
		counts[i] = (shape[a] + chunkSizes[i] - 1) / chunkSizes[i]
		total *= counts[i]
	}

	c := &Chunked[T]{
		chunkDims:  chunkDims,
		chunkSizes: chunkSizes,
		counts:     counts,
		blocks:     make([]*grid.Grid[T], 0, total),
	}

	idx := make([]int, len(chunkDims))
	starts := make([]int, len(shape))
	sizes := make([]int, len(shape))
	for {
		copy(sizes, shape)
		for i := range starts {
			starts[i] = 0
		}
		for i, a := range axes {
			start := idx[i] * chunkSizes[i]
			starts[a] = start
			if n := shape[a] - start; n < chunkSizes[i] {
				sizes[a] = n
			} else {
				sizes[a] = chunkSizes[i]
			}
		}

		blk, err := g.Slice(starts, sizes)
		if err != nil {
			return nil, err
		}
		c.blocks = append(c.blocks, blk)

		d := len(idx) - 1
		for d >= 0 {
			idx[d]++
			if idx[d] < counts[d] {
				break
			}
			idx[d] = 0
			d--
		}
		if d < 0 {
			return c, nil
		}
	}
}

// Join reassembles a chunked set into a single grid. All blocks must
// share dims, and their sizes along unchunked dims must agree; the
// chunked dims are concatenated in order. Coordinates for chunked dims
// are stitched from the blocks when every block carries them.
func Join[T grid.Element](c *Chunked[T]) (*grid.Grid[T], error) {
	if c == nil || len(c.blocks) == 0 {
		return nil, ErrEmpty
	}

	first := c.blocks[0]
	dims := first.Dims()
	axes, err := first.AxesOf(c.chunkDims)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBlockShape, err)
	}

	total := first.Shape()
	for i, a := range axes {
		n := 0
		for b := 0; b < c.counts[i]; b++ {
			blk := c.blocks[c.flatIndex(i, b)]
			n += blk.Shape()[a]
		}
		total[a] = n
	}

	out, err := grid.New[T](dims, total, nil)
	if err != nil {
		return nil, err
	}

	chunkedAxis := make([]bool, len(total))
	for _, a := range axes {
		chunkedAxis[a] = true
	}

	starts := make([]int, len(total))
	firstShape := first.Shape()
	for i, blk := range c.blocks {
		shape := blk.Shape()
		if len(shape) != len(total) {
			return nil, fmt.Errorf("%w: block %d has %d dims, want %d", ErrBlockShape, i, len(shape), len(total))
		}
		for a := range shape {
			if !chunkedAxis[a] && shape[a] != firstShape[a] {
				return nil, fmt.Errorf("%w: block %d size %d along %q, want %d",
					ErrBlockShape, i, shape[a], dims[a], firstShape[a])
			}
		}

		for d := range starts {
			starts[d] = 0
		}
		for d, bi := range c.blockIndex(i) {
			starts[axes[d]] = bi * c.chunkSizes[d]
		}
		if err := out.Insert(blk, starts); err != nil {
			return nil, fmt.Errorf("%w: block %d: %v", ErrBlockShape, i, err)
		}
	}

	if err := c.stitchCoords(out, first); err != nil {
		return nil, err
	}
	for k, v := range first.Attrs() {
		out.SetAttr(k, v)
	}
	return out, nil
}

// flatIndex returns the flat block number whose index along chunked
// dim d is b and zero along every other chunked dim.
func (c *Chunked[T]) flatIndex(d, b int) int {
	stride := 1
	for i := len(c.counts) - 1; i > d; i-- {
		stride *= c.counts[i]
	}
	return b * stride
}

// stitchCoords copies unchunked-dim coordinates from the first block
// and concatenates chunked-dim coordinates across blocks.
func (c *Chunked[T]) stitchCoords(out, first *grid.Grid[T]) error {
	chunked := make(map[string]bool, len(c.chunkDims))
	for _, d := range c.chunkDims {
		chunked[d] = true
	}

	for _, d := range first.Dims() {
		if chunked[d] || !first.HasCoord(d) {
			continue
		}
		if err := out.SetCoord(d, first.Coord(d)); err != nil {
			return err
		}
	}

	for i, d := range c.chunkDims {
		full := make([]float64, 0, 16)
		have := true
		for b := 0; b < c.counts[i]; b++ {
			blk := c.blocks[c.flatIndex(i, b)]
			if !blk.HasCoord(d) {
				have = false
				break
			}
			full = append(full, blk.Coord(d)...)
		}
		if !have {
			continue
		}
		if err := out.SetCoord(d, full); err != nil {
			return err
		}
	}
	return nil
}
