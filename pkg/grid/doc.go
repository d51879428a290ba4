// Package grid provides the square symbol grid that Bongard problems are
// drawn on.
//
// A Grid is built once from a size×size matrix of values and never changes
// afterwards. Transforms such as Rotate and Mirror return new grids that go
// through the same validation as any other grid.
//
// Cells are addressed 1-indexed with the origin at the top left:
//
//	(1,1) (2,1) (3,1)
//	(1,2) (2,2) (3,2)
//	(1,3) (2,3) (3,3)
//
// Accessors take (col, row). Out-of-range lookups report absence through the
// boolean result rather than failing.
//
// Internally the cells live in a flat row-major slice. Neighbours are found by
// index arithmetic (±1 within a row, ±size across rows), so a Grid holds no
// back-references and can be shared freely between goroutines.
package grid
