package moments_test

import (
	"fmt"

	"github.com/cwbudde/algo-gridfft/grid"
	"github.com/cwbudde/algo-gridfft/stats/moments"
)

func ExampleCalculate() {
	st, err := moments.Calculate([]float64{1, -1, 1, -1})
	if err != nil {
		panic(err)
	}
	fmt.Printf("mean=%.1f rms=%.1f kurtosis=%.1f\n", st.Mean, st.RMS, st.Kurtosis)

	// Output:
	// mean=0.0 rms=1.0 kurtosis=-2.0
}

func ExampleFromGrid() {
	g, err := grid.New([]string{"y", "x"}, []int{2, 2}, []float64{0, 0, 0, 5})
	if err != nil {
		panic(err)
	}

	st, err := moments.FromGrid(g)
	if err != nil {
		panic(err)
	}
	fmt.Printf("peak %.0f at %v\n", st.Max, st.MaxIndex)

	// Output:
	// peak 5 at [1 1]
}

func ExampleStreaming() {
	s := moments.NewStreaming()
	s.Update([]float64{1, -1})
	s.Update([]float64{1, -1})

	st, err := s.Result()
	if err != nil {
		panic(err)
	}
	fmt.Printf("count=%d mean=%.1f\n", st.Count, st.Mean)

	// Output:
	// count=4 mean=0.0
}
