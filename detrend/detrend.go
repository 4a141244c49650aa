// Package detrend removes constant or linear trends from grid values
// along selected dimensions.
//
// Removing the trend before a Fourier transform keeps the lowest bins
// from swamping the rest of the spectrum. ModeConstant subtracts the
// mean over the selected dims; ModeLinear subtracts a least-squares
// line, plane, or hyperplane fitted over them. Both operate block by
// block: every combination of the remaining dims is treated as an
// independent fit.
package detrend

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-gridfft/grid"
)

// Mode selects the trend model to remove.
type Mode int

const (
	ModeNone Mode = iota
	ModeConstant
	ModeLinear
)

var (
	// ErrUnknownMode reports a mode name with no registered Mode.
	ErrUnknownMode = errors.New("detrend: unknown mode")
	// ErrTooManyDims reports a linear fit over more than three dims.
	ErrTooManyDims = errors.New("detrend: linear fit supports at most 3 dims")
	// ErrDimTooShort reports a linear fit along a single-point dim.
	ErrDimTooShort = errors.New("detrend: dim too short to fit a trend")
)

// Parse resolves a mode name. The empty string means ModeNone.
func Parse(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return ModeNone, nil
	case "constant", "mean":
		return ModeConstant, nil
	case "linear":
		return ModeLinear, nil
	default:
		return ModeNone, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// String returns the canonical name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeConstant:
		return "constant"
	case ModeLinear:
		return "linear"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Apply removes the selected trend from g in place.
func Apply(m Mode, g *grid.Grid[float64], dims []string) error {
	switch m {
	case ModeNone:
		return nil
	case ModeConstant:
		return Constant(g, dims)
	case ModeLinear:
		return Linear(g, dims)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
}

// Constant subtracts the mean over the given dims from g in place,
// separately for every combination of the remaining dims.
func Constant(g *grid.Grid[float64], dims []string) error {
	axes, err := g.AxesOf(dims)
	if err != nil {
		return err
	}

	offsets, err := g.SubOffsets(axes)
	if err != nil {
		return err
	}

	data := g.Data()
	inv := 1 / float64(len(offsets))
	return g.EachOuter(axes, func(base int) error {
		sum := 0.0
		for _, off := range offsets {
			sum += data[base+off]
		}
		mean := sum * inv
		for _, off := range offsets {
			data[base+off] -= mean
		}
		return nil
	})
}

// Linear subtracts a least-squares linear trend over the given dims
// from g in place, separately for every combination of the remaining
// dims. One dim removes a line, two a plane, three a hyperplane; more
// than three is not supported.
func Linear(g *grid.Grid[float64], dims []string) error {
	axes, err := g.AxesOf(dims)
	if err != nil {
		return err
	}
	if len(axes) > 3 {
		return fmt.Errorf("%w: got %d", ErrTooManyDims, len(axes))
	}

	shape := g.Shape()
	for i, a := range axes {
		if shape[a] < 2 {
			return fmt.Errorf("%w: %q has %d points", ErrDimTooShort, dims[i], shape[a])
		}
	}

	if len(axes) == 1 {
		return linearLanes(g, axes[0])
	}
	return linearBlocks(g, axes)
}

// linearLanes fits an ordinary least-squares line per lane.
func linearLanes(g *grid.Grid[float64], axis int) error {
	n := g.Shape()[axis]
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}

	data := g.Data()
	ys := make([]float64, n)
	return g.EachLane(axis, func(base, stride int) error {
		for i := range ys {
			ys[i] = data[base+i*stride]
		}
		alpha, beta := stat.LinearRegression(xs, ys, nil, false)
		for i := range ys {
			data[base+i*stride] -= alpha + beta*xs[i]
		}
		return nil
	})
}

// linearBlocks fits a plane (or hyperplane) per block via QR least
// squares. The design matrix depends only on the block shape, so it is
// built once and reused for every block.
func linearBlocks(g *grid.Grid[float64], axes []int) error {
	offsets, err := g.SubOffsets(axes)
	if err != nil {
		return err
	}

	shape := g.Shape()
	rows := len(offsets)
	cols := 1 + len(axes)

	design := mat.NewDense(rows, cols, nil)
	idx := make([]int, len(axes))
	for r := 0; r < rows; r++ {
		design.Set(r, 0, 1)
		for c, i := range idx {
			design.Set(r, c+1, float64(i))
		}

		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < shape[axes[d]] {
				break
			}
			idx[d] = 0
		}
	}

	data := g.Data()
	rhs := mat.NewVecDense(rows, nil)
	var coef, fitted mat.VecDense
	return g.EachOuter(axes, func(base int) error {
		for r, off := range offsets {
			rhs.SetVec(r, data[base+off])
		}
		if err := coef.SolveVec(design, rhs); err != nil {
			return fmt.Errorf("detrend: linear fit failed: %w", err)
		}
		fitted.MulVec(design, &coef)
		for r, off := range offsets {
			data[base+off] -= fitted.AtVec(r)
		}
		return nil
	})
}
