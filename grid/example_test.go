package grid_test

import (
	"fmt"

	"github.com/cwbudde/algo-gridfft/grid"
)

func ExampleNew() {
	g, _ := grid.New[float64]([]string{"y", "x"}, []int{2, 3}, []float64{0, 1, 2, 3, 4, 5})
	fmt.Println(g.Dims(), g.Shape(), g.At(1, 2))
	// Output:
	// [y x] [2 3] 5
}

func ExampleGrid_Spacing() {
	g, _ := grid.New[float64]([]string{"x"}, []int{5}, nil)
	_ = g.SetCoord("x", grid.Linspace(0, 1, 5))
	dx, _ := g.Spacing("x", 0)
	fmt.Printf("%.2f\n", dx)
	// Output:
	// 0.25
}

func ExampleLinspace() {
	fmt.Println(grid.Linspace(0, 2, 5))
	// Output:
	// [0 0.5 1 1.5 2]
}
