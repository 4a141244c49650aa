package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-gridfft/field"
	"github.com/cwbudde/algo-gridfft/grid"
	"github.com/cwbudde/algo-gridfft/spectral"
	"github.com/cwbudde/algo-gridfft/stats/frequency"
	"github.com/cwbudde/algo-gridfft/stats/moments"
	"github.com/urfave/cli/v3"
)

func spectrumCommand() *cli.Command {
	return &cli.Command{
		Name:  "spectrum",
		Usage: "Isotropic power spectrum of a synthetic field",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "size",
				Usage: "Grid points per spatial dim",
				Value: 64,
			},
			&cli.StringFlag{
				Name:  "wavelength",
				Usage: "Plane wave length in coordinate units",
				Value: "8",
			},
			&cli.StringFlag{
				Name:  "noise",
				Usage: "White noise amplitude",
				Value: "0.25",
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Noise seed",
				Value: 1,
			},
			&cli.IntFlag{
				Name:  "frames",
				Usage: "Independent realizations along the time dim",
				Value: 1,
			},
			&cli.StringFlag{
				Name:    "profile",
				Aliases: []string{"p"},
				Usage:   "YAML profile with transform parameters",
				Value:   "",
			},
			&cli.StringFlag{
				Name:  "chunk",
				Usage: "Chunk spec like time=4 (overrides profile)",
				Value: "",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Worker cap for chunked runs (overrides profile)",
				Value: 0,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Debug logging on stderr",
				Value:   false,
			},
		},
		Action: runSpectrum,
	}
}

func runSpectrum(ctx context.Context, cmd *cli.Command) error {
	prof := DefaultProfile()
	if path := cmd.String("profile"); path != "" {
		var err error
		if prof, err = LoadProfile(path); err != nil {
			return err
		}
	}
	if s := cmd.String("chunk"); s != "" {
		prof.Chunks = s
	}
	if n := int(cmd.Int("workers")); n > 0 {
		prof.Workers = n
	}

	size := int(cmd.Int("size"))
	frames := int(cmd.Int("frames"))
	wavelength, err := strconv.ParseFloat(cmd.String("wavelength"), 64)
	if err != nil {
		return fmt.Errorf("parsing wavelength: %w", err)
	}
	noise, err := strconv.ParseFloat(cmd.String("noise"), 64)
	if err != nil {
		return fmt.Errorf("parsing noise amplitude: %w", err)
	}

	fld, err := buildField(size, frames, wavelength, noise, int64(cmd.Int("seed")))
	if err != nil {
		return err
	}
	fst, err := moments.FromGrid(fld)
	if err != nil {
		return err
	}
	fmt.Printf("field mean %.4g, rms %.4g, crest factor %.3g\n",
		fst.Mean, fst.RMS, fst.CrestFactor)

	opts, err := prof.Options()
	if err != nil {
		return err
	}
	if cmd.Bool("verbose") {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
		opts = append(opts, spectral.WithLogger(logger))
	}

	iso, err := spectral.IsotropicPowerSpectrum(fld, opts...)
	if err != nil {
		return err
	}

	return printSpectrum(iso, size, frames, wavelength)
}

// buildField generates a plane wave (diagonal wavevector, unit
// amplitude) plus white noise, one realization per frame.
func buildField(size, frames int, wavelength, noise float64, seed int64) (*grid.Grid[float64], error) {
	if wavelength <= 0 {
		return nil, fmt.Errorf("wavelength must be > 0: %g", wavelength)
	}
	if frames < 1 {
		return nil, fmt.Errorf("frames must be > 0: %d", frames)
	}

	k := 1 / (wavelength * math.Sqrt2)
	gen := field.NewGenerator(field.WithSeed(seed))
	wave, err := gen.Wave([]string{"y", "x"}, []int{size, size}, []float64{k, k}, 1)
	if err != nil {
		return nil, err
	}

	out, err := grid.New[float64]([]string{"time", "y", "x"}, []int{frames, size, size}, nil)
	if err != nil {
		return nil, err
	}

	per := size * size
	for f := 0; f < frames; f++ {
		dst := out.Data()[f*per : (f+1)*per]
		copy(dst, wave.Data())

		ns, err := field.NewGenerator(field.WithSeed(seed + int64(f))).
			WhiteNoise([]string{"y", "x"}, []int{size, size}, noise)
		if err != nil {
			return nil, err
		}
		for i, v := range ns.Data() {
			dst[i] += v
		}
	}

	if err := out.SetCoord("time", grid.Linspace(0, float64(frames-1), frames)); err != nil {
		return nil, err
	}
	for _, d := range []string{"y", "x"} {
		if err := out.SetCoord(d, wave.Coord(d)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// printSpectrum averages the spectrum over any leading dims and prints
// the radial profile plus summary statistics.
func printSpectrum(iso *grid.Grid[float64], size, frames int, wavelength float64) error {
	radii := iso.Coord(spectral.RadialDim)
	if radii == nil {
		return fmt.Errorf("spectrum is missing the %s coordinate", spectral.RadialDim)
	}

	nb := len(radii)
	rows := len(iso.Data()) / nb
	power := make([]float64, nb)
	for i, v := range iso.Data() {
		power[i%nb] += v
	}
	for i := range power {
		power[i] /= float64(rows)
	}

	fmt.Printf("isotropic power spectrum: %dx%d field, %d frame(s), wavelength %g\n\n",
		size, size, frames, wavelength)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Radius\tPower\n")
	fmt.Fprintf(tw, "------\t-----\n")
	for i, r := range radii {
		fmt.Fprintf(tw, "%.6g\t%.6g\n", r, power[i])
	}
	tw.Flush()

	st, err := frequency.Calculate(radii, power)
	if err != nil {
		return err
	}
	fmt.Printf("\npeak %.6g at radius %.6g, centroid %.6g\n", st.Max, st.MaxFreq, st.Centroid)
	if st.HasSlope {
		fmt.Printf("log-log slope %.3f\n", st.Slope)
	}
	return nil
}
