package fft_test

import (
	"fmt"

	"github.com/cwbudde/algo-gridfft/fft"
)

func ExampleForward() {
	spec, _ := fft.Forward([]complex128{1, 1, 1, 1})
	fmt.Printf("%.0f %.0f %.0f %.0f\n", real(spec[0]), real(spec[1]), real(spec[2]), real(spec[3]))
	// Output:
	// 4 0 0 0
}

func ExampleFrequencies() {
	freqs, _ := fft.Frequencies(4, 0.5)
	fmt.Println(freqs)
	// Output:
	// [0 0.5 -1 -0.5]
}

func ExampleShift() {
	freqs, _ := fft.Frequencies(4, 1)
	fmt.Println(fft.Shift(freqs))
	// Output:
	// [-0.5 -0.25 0 0.25]
}
