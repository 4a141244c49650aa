package spectral

import (
	"log/slog"

	"github.com/cwbudde/algo-gridfft/detrend"
	"github.com/cwbudde/algo-gridfft/grid"
	"github.com/cwbudde/algo-gridfft/grid/chunk"
	"github.com/cwbudde/algo-gridfft/window"
)

// DefaultBinFactor is the ratio of grid points to radial bins used by
// the isotropic averages.
const DefaultBinFactor = 4

// Option configures a spectral operation.
type Option func(*config)

type config struct {
	dims     []string
	shift    bool
	detrend  detrend.Mode
	winType  window.Type
	winOpts  []window.Option
	windowed bool
	density  bool
	rtol     float64
	nfactor  int
	chunks   chunk.Spec
	workers  int
	logger   *slog.Logger
}

func defaultConfig() config {
	return config{
		shift:   true,
		density: true,
		rtol:    grid.DefaultSpacingTol,
		nfactor: DefaultBinFactor,
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Along selects the dims to transform. Without it, every dim of the
// input is transformed.
func Along(dims ...string) Option {
	return func(c *config) {
		c.dims = append([]string(nil), dims...)
	}
}

// WithoutShift keeps spectra in standard order instead of centering
// the zero-frequency bin.
func WithoutShift() Option {
	return func(c *config) {
		c.shift = false
	}
}

// WithDetrend removes the given trend along the transform dims before
// transforming.
func WithDetrend(m detrend.Mode) Option {
	return func(c *config) {
		c.detrend = m
	}
}

// WithWindow tapers the data along each transform dim with the given
// window before transforming.
func WithWindow(t window.Type, opts ...window.Option) Option {
	return func(c *config) {
		c.windowed = true
		c.winType = t
		c.winOpts = append([]window.Option(nil), opts...)
	}
}

// WithHannWindow tapers with the default Hann window.
func WithHannWindow() Option {
	return WithWindow(window.TypeHann)
}

// WithoutDensity leaves power and cross spectra unnormalized instead
// of converting them to spectral density.
func WithoutDensity() Option {
	return func(c *config) {
		c.density = false
	}
}

// WithSpacingTolerance sets the relative tolerance for the
// even-spacing check on transform dim coordinates. Values <= 0 are
// ignored.
func WithSpacingTolerance(rtol float64) Option {
	return func(c *config) {
		if rtol > 0 {
			c.rtol = rtol
		}
	}
}

// WithBinFactor sets the ratio of grid points to radial bins for the
// isotropic averages. Values < 1 are ignored.
func WithBinFactor(nfactor int) Option {
	return func(c *config) {
		if nfactor >= 1 {
			c.nfactor = nfactor
		}
	}
}

// WithChunks splits the work into blocks along the given dims and runs
// them on a worker pool. Transform dims cannot be chunked.
func WithChunks(spec chunk.Spec) Option {
	return func(c *config) {
		c.chunks = spec
	}
}

// WithWorkers caps the worker count for chunked runs. Values < 1 mean
// one worker per CPU.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithLogger emits debug logs to l. A nil logger keeps operations
// silent, which is the default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
