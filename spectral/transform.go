package spectral

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-gridfft/detrend"
	"github.com/cwbudde/algo-gridfft/fft"
	"github.com/cwbudde/algo-gridfft/grid"
	"github.com/cwbudde/algo-gridfft/grid/chunk"
	"github.com/cwbudde/algo-gridfft/window"
)

// Prefix is prepended to a dim's name after transforming along it.
const Prefix = "freq_"

// FreqDim returns the output dim name for a transformed input dim.
func FreqDim(dim string) string { return Prefix + dim }

// SpacingAttr returns the attr key holding the frequency step of a
// transformed dim.
func SpacingAttr(dim string) string { return FreqDim(dim) + "_spacing" }

// Transform computes the discrete Fourier transform of g along the
// configured dims. Each transformed dim is renamed with the freq_
// prefix and carries its frequency values as a coordinate, centered on
// zero unless WithoutShift is set. The frequency step per dim is
// recorded as a grid attr under SpacingAttr(dim).
//
// Coordinates along every transform dim must be evenly spaced within
// the configured tolerance; dims without coordinates count from zero
// at unit spacing. Detrending runs before windowing, and both run on a
// copy so g is never modified.
func Transform(g *grid.Grid[float64], opts ...Option) (*grid.Grid[complex128], error) {
	cfg := newConfig(opts)
	return transform(g, cfg)
}

func transform(g *grid.Grid[float64], cfg config) (*grid.Grid[complex128], error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if grid.HasNaN(g) {
		return nil, ErrNaN
	}

	dims := transformDims(g, cfg)
	axes, err := g.AxesOf(dims)
	if err != nil {
		return nil, err
	}

	if len(cfg.chunks) > 0 {
		return transformChunked(g, dims, cfg)
	}
	return transformSerial(g, dims, axes, cfg)
}

// transformDims resolves the dims an operation works on, defaulting to
// every dim of g.
func transformDims(g *grid.Grid[float64], cfg config) []string {
	if len(cfg.dims) == 0 {
		return g.Dims()
	}
	return cfg.dims
}

func transformSerial(g *grid.Grid[float64], dims []string, axes []int, cfg config) (*grid.Grid[complex128], error) {
	shape := g.Shape()

	if cfg.logger != nil {
		cfg.logger.Debug("transforming grid",
			"dims", fmt.Sprint(dims),
			"shape", fmt.Sprint(shape),
			"detrend", cfg.detrend.String(),
			"windowed", cfg.windowed,
		)
	}

	// Validate spacing along every transform dim before touching data.
	spacings := make([]float64, len(dims))
	for i, d := range dims {
		dx, err := g.Spacing(d, cfg.rtol)
		if err != nil {
			return nil, err
		}
		spacings[i] = dx
	}

	work := g
	if cfg.detrend != detrend.ModeNone || cfg.windowed {
		work = g.Clone()
	}

	if cfg.detrend != detrend.ModeNone {
		if err := detrend.Apply(cfg.detrend, work, dims); err != nil {
			return nil, err
		}
	}
	if cfg.windowed {
		if err := applyWindow(work, axes, cfg); err != nil {
			return nil, err
		}
	}

	src := work.Data()
	cdata := make([]complex128, len(src))
	for i, v := range src {
		cdata[i] = complex(v, 0)
	}
	// Keep the input dim names until the transform passes are done so
	// lane iteration stays valid.
	cg, err := grid.New[complex128](g.Dims(), shape, cdata)
	if err != nil {
		return nil, err
	}

	tr := fft.NewTransformer()
	for _, a := range axes {
		if err := forwardAxis(cg, a, tr); err != nil {
			return nil, err
		}
	}
	if cfg.shift {
		for _, a := range axes {
			if err := shiftAxis(cg, a); err != nil {
				return nil, err
			}
		}
	}

	return assembleResult(g, cg, axes, spacings, cfg)
}

// applyWindow tapers work in-place along each transform axis with the
// configured window in symmetric form.
func applyWindow(work *grid.Grid[float64], axes []int, cfg config) error {
	shape := work.Shape()
	data := work.Data()
	for _, a := range axes {
		n := shape[a]
		w := window.Generate(cfg.winType, n, cfg.winOpts...)
		err := work.EachLane(a, func(base, stride int) error {
			if stride == 1 {
				vecmath.MulBlockInPlace(data[base:base+n], w)
				return nil
			}
			for i := 0; i < n; i++ {
				data[base+i*stride] *= w[i]
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// forwardAxis runs the forward FFT over every lane along one axis.
// Contiguous lanes transform in place, strided lanes go through a
// gather buffer.
func forwardAxis(cg *grid.Grid[complex128], axis int, tr *fft.Transformer) error {
	n := cg.Shape()[axis]
	data := cg.Data()
	buf := make([]complex128, n)
	return cg.EachLane(axis, func(base, stride int) error {
		if stride == 1 {
			seg := data[base : base+n]
			return tr.Forward(seg, seg)
		}
		for i := 0; i < n; i++ {
			buf[i] = data[base+i*stride]
		}
		if err := tr.Forward(buf, buf); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			data[base+i*stride] = buf[i]
		}
		return nil
	})
}

// shiftAxis rotates every lane along one axis so the zero-frequency
// bin lands in the middle.
func shiftAxis(cg *grid.Grid[complex128], axis int) error {
	n := cg.Shape()[axis]
	data := cg.Data()
	buf := make([]complex128, n)
	half := (n + 1) / 2
	return cg.EachLane(axis, func(base, stride int) error {
		for i := 0; i < n; i++ {
			buf[i] = data[base+i*stride]
		}
		for i := 0; i < n; i++ {
			data[base+i*stride] = buf[(i+half)%n]
		}
		return nil
	})
}

// assembleResult renames the transform dims, attaches frequency
// coordinates and spacing attrs, and carries everything else over
// from the input.
func assembleResult(in *grid.Grid[float64], cg *grid.Grid[complex128], axes []int, spacings []float64, cfg config) (*grid.Grid[complex128], error) {
	shape := cg.Shape()

	isTransform := make([]bool, len(shape))
	for _, a := range axes {
		isTransform[a] = true
	}

	outDims := in.Dims()
	for _, a := range axes {
		outDims[a] = FreqDim(outDims[a])
	}

	out, err := grid.New[complex128](outDims, shape, cg.Data())
	if err != nil {
		return nil, err
	}

	for a, d := range in.Dims() {
		if isTransform[a] || !in.HasCoord(d) {
			continue
		}
		if err := out.SetCoord(d, in.Coord(d)); err != nil {
			return nil, err
		}
	}
	for k, v := range in.Attrs() {
		out.SetAttr(k, v)
	}

	for i, a := range axes {
		freqs, err := fft.Frequencies(shape[a], spacings[i])
		if err != nil {
			return nil, err
		}
		if cfg.shift {
			freqs = fft.Shift(freqs)
		}
		if err := out.SetCoord(outDims[a], freqs); err != nil {
			return nil, err
		}
		out.SetAttr(SpacingAttr(in.Dims()[a]), freqs[1]-freqs[0])
	}

	return out, nil
}

// transformChunked splits g along the chunk dims, transforms each
// block on a worker pool, and stitches the spectra back together.
// Chunk dims never intersect the transform dims, so every block sees
// complete lanes and the result matches the serial path exactly.
func transformChunked(g *grid.Grid[float64], dims []string, cfg config) (*grid.Grid[complex128], error) {
	for _, d := range dims {
		if _, ok := cfg.chunks[d]; ok {
			return nil, fmt.Errorf("%w: %q", ErrChunkedTransformDim, d)
		}
	}

	split, err := chunk.Split(g, cfg.chunks)
	if err != nil {
		return nil, err
	}

	blockCfg := cfg
	blockCfg.chunks = nil
	blockCfg.logger = nil

	mapped, err := chunk.Map(context.Background(), split,
		func(_ context.Context, blk *chunk.Block[float64]) (*grid.Grid[complex128], error) {
			axes, err := blk.Grid.AxesOf(dims)
			if err != nil {
				return nil, err
			}
			return transformSerial(blk.Grid, dims, axes, blockCfg)
		},
		chunk.WithWorkers(cfg.workers),
		chunk.WithLogger(cfg.logger),
	)
	if err != nil {
		return nil, err
	}
	return chunk.Join(mapped)
}
