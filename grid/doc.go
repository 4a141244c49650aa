// Package grid provides labeled N-dimensional arrays.
//
// A Grid couples a row-major data block with named dimensions, optional
// per-dimension coordinate vectors, and scalar attributes. Operations in
// this module address axes by dimension name rather than position, and
// derived quantities (frequency grids, spacings) travel with the data as
// coordinates and attributes.
//
// # Usage
//
// Create a grid, attach coordinates, and read it back:
//
//	g, _ := grid.New[float64]([]string{"y", "x"}, []int{4, 8}, nil)
//	_ = g.SetCoord("x", grid.Linspace(0, 3.5, 8))
//	dx, _ := g.Spacing("x", 0)
//
// Coordinates are always float64. A dimension without an explicit
// coordinate behaves as the index coordinate 0, 1, 2, ... with unit
// spacing.
package grid
