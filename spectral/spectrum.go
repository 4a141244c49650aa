package spectral

import (
	"fmt"
	"slices"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-gridfft/grid"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// PowerSpectrum returns |F|^2 of the transform of g along the
// configured dims, on the same frequency grid Transform produces.
//
// With density set (the default) the values are divided by the squared
// product of the transform dim lengths and by each frequency step, so
// that summing the result times the frequency steps recovers the mean
// square of the input. WithoutDensity leaves the raw squared
// magnitudes.
func PowerSpectrum(g *grid.Grid[float64], opts ...Option) (*grid.Grid[float64], error) {
	return powerSpectrum(g, newConfig(opts))
}

func powerSpectrum(g *grid.Grid[float64], cfg config) (*grid.Grid[float64], error) {
	daft, err := transform(g, cfg)
	if err != nil {
		return nil, err
	}

	vals := powerValues(daft.Data())
	if cfg.density {
		if err := normalizeDensity(vals, g, daft, transformDims(g, cfg)); err != nil {
			return nil, err
		}
	}
	return realLike(daft, vals)
}

// CrossSpectrum returns the real part of F(a)*conj(F(b)) along the
// configured dims. Both grids must share dims and shape. Density
// normalization follows PowerSpectrum.
func CrossSpectrum(a, b *grid.Grid[float64], opts ...Option) (*grid.Grid[float64], error) {
	return crossSpectrum(a, b, newConfig(opts))
}

func crossSpectrum(a, b *grid.Grid[float64], cfg config) (*grid.Grid[float64], error) {
	if a == nil || b == nil {
		return nil, ErrNilGrid
	}
	if !slices.Equal(a.Dims(), b.Dims()) || !slices.Equal(a.Shape(), b.Shape()) {
		return nil, fmt.Errorf("%w: %v%v vs %v%v",
			ErrShapeMismatch, a.Dims(), a.Shape(), b.Dims(), b.Shape())
	}

	fa, err := transform(a, cfg)
	if err != nil {
		return nil, err
	}
	fb, err := transform(b, cfg)
	if err != nil {
		return nil, err
	}

	vals := crossValues(fa.Data(), fb.Data())
	if cfg.density {
		if err := normalizeDensity(vals, a, fa, transformDims(a, cfg)); err != nil {
			return nil, err
		}
	}
	return realLike(fa, vals)
}

// powerValues computes re^2 + im^2 per bin.
func powerValues(f []complex128) []float64 {
	out := make([]float64, len(f))
	re, im, buf := getScratch(len(f))

	for i, c := range f {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// crossValues computes real(f1 * conj(f2)) = re1*re2 + im1*im2 per bin.
func crossValues(f1, f2 []complex128) []float64 {
	n := len(f1)
	out := make([]float64, n)
	re1, im1, buf1 := getScratch(n)
	re2, im2, buf2 := getScratch(n)

	for i := range f1 {
		re1[i] = real(f1[i])
		im1[i] = imag(f1[i])
		re2[i] = real(f2[i])
		im2[i] = imag(f2[i])
	}

	vecmath.MulBlock(out, re1, re2)
	vecmath.MulBlockInPlace(im1, im2)
	vecmath.AddBlockInPlace(out, im1)

	putScratch(buf1)
	putScratch(buf2)
	return out
}

// normalizeDensity rescales raw spectrum values to spectral density
// using the transform dim lengths of in and the frequency steps that
// daft carries.
func normalizeDensity(vals []float64, in *grid.Grid[float64], daft *grid.Grid[complex128], dims []string) error {
	total := 1.0
	for _, d := range dims {
		n, err := in.Len(d)
		if err != nil {
			return err
		}
		total *= float64(n)
	}

	scale := 1 / (total * total)
	for _, d := range dims {
		dk, ok := daft.Attr(SpacingAttr(d))
		if !ok {
			return fmt.Errorf("spectral: missing spacing attr %q", SpacingAttr(d))
		}
		scale /= dk
	}

	vecmath.ScaleBlock(vals, vals, scale)
	return nil
}

// realLike wraps vals in a grid carrying daft's dims, coordinates and
// attrs.
func realLike(daft *grid.Grid[complex128], vals []float64) (*grid.Grid[float64], error) {
	out, err := grid.New[float64](daft.Dims(), daft.Shape(), vals)
	if err != nil {
		return nil, err
	}
	if err := copyMeta(daft, out); err != nil {
		return nil, err
	}
	return out, nil
}

// copyMeta copies coordinates and attrs between grids of any element
// types. Dims present only in dst are left untouched.
func copyMeta[T, U grid.Element](src *grid.Grid[T], dst *grid.Grid[U]) error {
	for _, d := range src.Dims() {
		if !src.HasCoord(d) {
			continue
		}
		if err := dst.SetCoord(d, src.Coord(d)); err != nil {
			return err
		}
	}
	for k, v := range src.Attrs() {
		dst.SetAttr(k, v)
	}
	return nil
}
