package fft

import "testing"

func BenchmarkTransformerForward(b *testing.B) {
	sizes := []struct {
		name string
		size int
	}{
		{"256", 256},
		{"240_mixed", 240},
		{"1K", 1024},
		{"1000_mixed", 1000},
		{"4K", 4096},
	}

	for _, testCase := range sizes {
		b.Run(testCase.name, func(b *testing.B) {
			src := rampSignal(testCase.size)
			dst := make([]complex128, testCase.size)
			tr := NewTransformer()

			b.SetBytes(int64(testCase.size * 16)) // complex128 = 16 bytes
			b.ResetTimer()

			for range b.N {
				if err := tr.Forward(dst, src); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkFrequencies(b *testing.B) {
	for range b.N {
		if _, err := Frequencies(4096, 0.25); err != nil {
			b.Fatal(err)
		}
	}
}
