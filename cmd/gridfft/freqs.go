package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cwbudde/algo-gridfft/fft"
	"github.com/urfave/cli/v3"
)

func freqsCommand() *cli.Command {
	return &cli.Command{
		Name:  "freqs",
		Usage: "Print the frequency grid for a transform dim",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "n",
				Usage: "Number of samples",
				Value: 8,
			},
			&cli.StringFlag{
				Name:  "d",
				Usage: "Sample spacing in coordinate units",
				Value: "1",
			},
			&cli.BoolFlag{
				Name:  "shift",
				Usage: "Center the zero-frequency bin",
				Value: false,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			d, err := strconv.ParseFloat(cmd.String("d"), 64)
			if err != nil {
				return fmt.Errorf("parsing spacing: %w", err)
			}

			freqs, err := fft.Frequencies(int(cmd.Int("n")), d)
			if err != nil {
				return err
			}
			if cmd.Bool("shift") {
				freqs = fft.Shift(freqs)
			}

			for _, f := range freqs {
				fmt.Printf("%g\n", f)
			}
			return nil
		},
	}
}
