package spectral

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/cwbudde/algo-gridfft/grid"
)

// RadialDim is the output dim of the isotropic averages.
const RadialDim = Prefix + "r"

// IsotropicPowerSpectrum azimuthally averages the power spectrum of g
// over its two transform dims. The spectrum is cut into concentric
// rings of radial wavenumber, one ring per nfactor grid points along
// the shorter dim, and each ring's mean value is scaled by its mean
// radius. The rings come back as a trailing freq_r dim whose
// coordinate holds the mean radii; rings no point falls into are
// dropped. Dims other than the two transform dims survive unchanged,
// so a stack of 2-d fields averages into a stack of radial profiles.
func IsotropicPowerSpectrum(g *grid.Grid[float64], opts ...Option) (*grid.Grid[float64], error) {
	cfg := newConfig(opts)
	if g == nil {
		return nil, ErrNilGrid
	}
	dims := transformDims(g, cfg)
	if len(dims) != 2 {
		return nil, fmt.Errorf("%w: got %d", ErrNotTwoDims, len(dims))
	}

	ps, err := powerSpectrum(g, cfg)
	if err != nil {
		return nil, err
	}
	return azimuthalAverage(ps, FreqDim(dims[0]), FreqDim(dims[1]), cfg.nfactor)
}

// IsotropicCrossSpectrum azimuthally averages the cross spectrum of a
// and b over their two transform dims, with the same ring layout as
// IsotropicPowerSpectrum.
func IsotropicCrossSpectrum(a, b *grid.Grid[float64], opts ...Option) (*grid.Grid[float64], error) {
	cfg := newConfig(opts)
	if a == nil || b == nil {
		return nil, ErrNilGrid
	}
	dims := transformDims(a, cfg)
	if len(dims) != 2 {
		return nil, fmt.Errorf("%w: got %d", ErrNotTwoDims, len(dims))
	}

	cs, err := crossSpectrum(a, b, cfg)
	if err != nil {
		return nil, err
	}
	return azimuthalAverage(cs, FreqDim(dims[0]), FreqDim(dims[1]), cfg.nfactor)
}

// azimuthalAverage bins a spectrum over the two named freq dims by
// radial wavenumber and reduces each outer block to one value per
// ring.
func azimuthalAverage(ps *grid.Grid[float64], fd0, fd1 string, nfactor int) (*grid.Grid[float64], error) {
	axes, err := ps.AxesOf([]string{fd0, fd1})
	if err != nil {
		return nil, err
	}
	l := ps.Coord(fd0)
	k := ps.Coord(fd1)

	nbins := min(len(l), len(k)) / nfactor
	if nbins < 1 {
		return nil, fmt.Errorf("%w: %dx%d points with bin factor %d",
			ErrGridTooSmall, len(l), len(k), nfactor)
	}
	edges := grid.Linspace(0, math.Min(slices.Max(l), slices.Max(k)), nbins)

	// Ring geometry depends only on the coordinates, so resolve the
	// ring of every (l, k) pair once and reuse it for all outer blocks.
	bins := make([]int, len(l)*len(k))
	area := make([]float64, nbins+1)
	radius := make([]float64, nbins+1)
	p := 0
	for i := range l {
		for j := range k {
			r := math.Hypot(l[i], k[j])
			b := digitize(r, edges)
			bins[p] = b
			area[b]++
			radius[b] += r
			p++
		}
	}

	keep := make([]int, 0, nbins)
	for b := 1; b <= nbins; b++ {
		if area[b] > 0 {
			keep = append(keep, b)
		}
	}
	kr := make([]float64, len(keep))
	for i, b := range keep {
		kr[i] = radius[b] / area[b]
	}

	offs, err := ps.SubOffsets(axes)
	if err != nil {
		return nil, err
	}

	isRing := make([]bool, ps.NumDims())
	for _, a := range axes {
		isRing[a] = true
	}
	inDims := ps.Dims()
	inShape := ps.Shape()
	var outDims []string
	var outShape []int
	for a, d := range inDims {
		if isRing[a] {
			continue
		}
		outDims = append(outDims, d)
		outShape = append(outShape, inShape[a])
	}
	outDims = append(outDims, RadialDim)
	outShape = append(outShape, len(keep))

	data := ps.Data()
	vals := make([]float64, 0, ps.Size()/len(offs)*len(keep))
	sums := make([]float64, nbins+1)
	err = ps.EachOuter(axes, func(base int) error {
		for i := range sums {
			sums[i] = 0
		}
		for p, off := range offs {
			sums[bins[p]] += data[base+off]
		}
		for i, b := range keep {
			vals = append(vals, sums[b]/area[b]*kr[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out, err := grid.New[float64](outDims, outShape, vals)
	if err != nil {
		return nil, err
	}
	for a, d := range inDims {
		if isRing[a] || !ps.HasCoord(d) {
			continue
		}
		if err := out.SetCoord(d, ps.Coord(d)); err != nil {
			return nil, err
		}
	}
	if err := out.SetCoord(RadialDim, kr); err != nil {
		return nil, err
	}
	return out, nil
}

// digitize returns the 1-based ring index of r over ascending edges,
// counting the edges at or below r.
func digitize(r float64, edges []float64) int {
	return sort.Search(len(edges), func(i int) bool { return edges[i] > r })
}
