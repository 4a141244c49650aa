package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-gridfft/detrend"
	"github.com/cwbudde/algo-gridfft/grid/chunk"
	"github.com/cwbudde/algo-gridfft/spectral"
	"github.com/cwbudde/algo-gridfft/window"
	"gopkg.in/yaml.v3"
)

// Profile describes the transform parameters of a spectrum run. A
// profile file only needs the keys it changes from the defaults.
type Profile struct {
	// Dims selects the transform dims.
	Dims []string `yaml:"dims"`
	// Window names the taper applied before transforming (empty = none).
	Window string `yaml:"window"`
	// Alpha tunes parametric windows such as kaiser and tukey.
	Alpha float64 `yaml:"alpha"`
	// Detrend selects trend removal: "none", "constant" or "linear".
	Detrend string `yaml:"detrend"`
	// Density normalizes the spectrum to spectral density.
	Density bool `yaml:"density"`
	// BinFactor is the ratio of grid points to radial bins.
	BinFactor int `yaml:"bin_factor"`
	// Chunks holds a chunk spec like "time=4" (empty = serial).
	Chunks string `yaml:"chunks"`
	// Workers caps the worker pool for chunked runs (0 = one per CPU).
	Workers int `yaml:"workers"`
}

// DefaultProfile returns the parameters used when no profile is given.
func DefaultProfile() *Profile {
	return &Profile{
		Dims:      []string{"y", "x"},
		Density:   true,
		BinFactor: spectral.DefaultBinFactor,
	}
}

// LoadProfile loads a Profile from a YAML file, keeping defaults for
// absent keys.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	p := DefaultProfile()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return p, nil
}

// Options converts the profile into spectral options.
func (p *Profile) Options() ([]spectral.Option, error) {
	opts := []spectral.Option{spectral.Along(p.Dims...)}

	if p.Window != "" {
		t, err := window.Parse(p.Window)
		if err != nil {
			return nil, err
		}
		var wopts []window.Option
		if p.Alpha != 0 {
			wopts = append(wopts, window.WithAlpha(p.Alpha))
		}
		opts = append(opts, spectral.WithWindow(t, wopts...))
	}

	mode, err := detrend.Parse(p.Detrend)
	if err != nil {
		return nil, err
	}
	if mode != detrend.ModeNone {
		opts = append(opts, spectral.WithDetrend(mode))
	}

	if !p.Density {
		opts = append(opts, spectral.WithoutDensity())
	}
	if p.BinFactor >= 1 {
		opts = append(opts, spectral.WithBinFactor(p.BinFactor))
	}

	if p.Chunks != "" {
		spec, err := chunk.ParseSpec(p.Chunks)
		if err != nil {
			return nil, err
		}
		opts = append(opts, spectral.WithChunks(spec))
	}
	if p.Workers > 0 {
		opts = append(opts, spectral.WithWorkers(p.Workers))
	}

	return opts, nil
}
