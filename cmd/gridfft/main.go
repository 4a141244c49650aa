// Command gridfft explores labeled-grid spectra from the command line.
//
// Usage:
//
//	gridfft windows [-size N] [-alpha A] [-periodic] [name ...]
//	gridfft freqs [-n N] [-d DX] [-shift]
//	gridfft spectrum [-size N] [-wavelength L] [-noise A] [-seed S] [-frames T] [-profile FILE]
//
// Examples:
//
//	gridfft windows hann blackman
//	gridfft freqs -n 8 -d 0.5 -shift
//	gridfft spectrum -size 128 -wavelength 16 -noise 0.1
//	gridfft spectrum -frames 8 -chunk time=2 -workers 4 -verbose
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	root := &cli.Command{
		Name:    "gridfft",
		Usage:   "FFTs and power spectra on labeled grids",
		Version: version,
		Commands: []*cli.Command{
			windowsCommand(),
			freqsCommand(),
			spectrumCommand(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
