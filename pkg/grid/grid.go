package grid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"reflect"
	"strings"

	"github.com/arthur-debert/bongard/pkg/errors"
)

// MinSize is the smallest accepted grid size.
const MinSize = 3

// Grid is an immutable size×size matrix of cells.
type Grid struct {
	size    int
	cells   []Cell
	edges   []int
	corners []int
	id      string
}

// New builds a Grid from a row-major matrix of values.
// It deep-copies the input. Returns ErrBelowMinimumSize if size < MinSize,
// ErrShape if the matrix is not size×size, ErrMissingValue if a row or value
// is nil and ErrUncomparableValue if a value cannot be compared with ==.
func New(values [][]any, size int) (*Grid, error) {
	if size < MinSize {
		return nil, errors.Newf(errors.ErrBelowMinimumSize, "size must be >= %d, got %d", MinSize, size).
			WithDetail("size", size)
	}
	if len(values) != size {
		return nil, errors.Newf(errors.ErrShape, "cell data has %d rows, want %d", len(values), size).
			WithDetail("size", size)
	}

	cells := make([]Cell, 0, size*size)
	for r, row := range values {
		if row == nil {
			return nil, errors.Newf(errors.ErrMissingValue, "row %d is nil", r+1)
		}
		if len(row) != size {
			return nil, errors.Newf(errors.ErrShape, "row %d has %d cells, want %d", r+1, len(row), size).
				WithDetail("row", r+1)
		}
		for c, v := range row {
			if v == nil {
				return nil, errors.Newf(errors.ErrMissingValue, "cell (%d,%d) is nil", c+1, r+1)
			}
			if !reflect.TypeOf(v).Comparable() {
				return nil, errors.Newf(errors.ErrUncomparableValue, "cell (%d,%d) holds uncomparable %T", c+1, r+1, v)
			}
			if v != v {
				return nil, errors.Newf(errors.ErrUncomparableValue, "cell (%d,%d) holds %v, which is not equal to itself", c+1, r+1, v)
			}
			cells = append(cells, Cell{Value: v, Col: c + 1, Row: r + 1, text: fmt.Sprint(v)})
		}
	}

	g := &Grid{size: size, cells: cells}
	g.edges = g.edgeIndices()
	g.corners = []int{
		g.index(1, 1),
		g.index(size, 1),
		g.index(1, size),
		g.index(size, size),
	}
	g.id = g.digest()
	return g, nil
}

// FromInts builds a Grid from an integer matrix, taking the size from the row count.
func FromInts(values [][]int) (*Grid, error) {
	rows := make([][]any, len(values))
	for r, row := range values {
		if row == nil {
			continue
		}
		rows[r] = make([]any, len(row))
		for c, v := range row {
			rows[r][c] = v
		}
	}
	return New(rows, len(values))
}

// FromStrings builds a Grid from a string matrix, taking the size from the row count.
func FromStrings(values [][]string) (*Grid, error) {
	rows := make([][]any, len(values))
	for r, row := range values {
		if row == nil {
			continue
		}
		rows[r] = make([]any, len(row))
		for c, v := range row {
			rows[r][c] = v
		}
	}
	return New(rows, len(values))
}

// mustNew rebuilds a grid from values derived from an existing valid grid.
func mustNew(values [][]any, size int) *Grid {
	g, err := New(values, size)
	if err != nil {
		panic(fmt.Sprintf("grid: transform produced an invalid grid: %v", err))
	}
	return g
}

// Size returns the number of rows (and columns).
func (g *Grid) Size() int { return g.size }

// Width is an alias for Size.
func (g *Grid) Width() int { return g.size }

// Height is an alias for Size.
func (g *Grid) Height() int { return g.size }

// ID returns a stable content identifier: equal grids share an ID.
func (g *Grid) ID() string { return g.id }

// InBounds reports whether (col,row) lies within the grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 1 && col <= g.size && row >= 1 && row <= g.size
}

// index maps 1-indexed (col,row) to the row-major slice index.
func (g *Grid) index(col, row int) int {
	return (row-1)*g.size + (col - 1)
}

// CellAt returns the cell at (col,row); ok is false when out of range.
func (g *Grid) CellAt(col, row int) (Cell, bool) {
	if !g.InBounds(col, row) {
		return Cell{}, false
	}
	return g.cells[g.index(col, row)], true
}

// Row returns a copy of the cells in row r, left to right.
func (g *Grid) Row(r int) ([]Cell, bool) {
	if r < 1 || r > g.size {
		return nil, false
	}
	out := make([]Cell, g.size)
	copy(out, g.cells[(r-1)*g.size:r*g.size])
	return out, true
}

// Column returns a copy of the cells in column c, top to bottom.
func (g *Grid) Column(c int) ([]Cell, bool) {
	if c < 1 || c > g.size {
		return nil, false
	}
	out := make([]Cell, g.size)
	for r := 1; r <= g.size; r++ {
		out[r-1] = g.cells[g.index(c, r)]
	}
	return out, true
}

// Rows returns a copy of every row.
func (g *Grid) Rows() [][]Cell {
	out := make([][]Cell, g.size)
	for r := 1; r <= g.size; r++ {
		out[r-1], _ = g.Row(r)
	}
	return out
}

// Columns returns a copy of every column.
func (g *Grid) Columns() [][]Cell {
	out := make([][]Cell, g.size)
	for c := 1; c <= g.size; c++ {
		out[c-1], _ = g.Column(c)
	}
	return out
}

// edgeIndices lists the top row, the bottom row, then the left and right
// columns without their corners so no cell is counted twice.
func (g *Grid) edgeIndices() []int {
	idx := make([]int, 0, 4*(g.size-1))
	for c := 1; c <= g.size; c++ {
		idx = append(idx, g.index(c, 1))
	}
	for c := 1; c <= g.size; c++ {
		idx = append(idx, g.index(c, g.size))
	}
	for r := 2; r < g.size; r++ {
		idx = append(idx, g.index(1, r))
	}
	for r := 2; r < g.size; r++ {
		idx = append(idx, g.index(g.size, r))
	}
	return idx
}

func (g *Grid) pick(indices []int) []Cell {
	out := make([]Cell, len(indices))
	for i, ix := range indices {
		out[i] = g.cells[ix]
	}
	return out
}

// Edges returns every cell on the border.
func (g *Grid) Edges() []Cell { return g.pick(g.edges) }

// Corners returns the cells at (1,1), (size,1), (1,size) and (size,size).
func (g *Grid) Corners() []Cell { return g.pick(g.corners) }

// Center returns the middle cell. Even-sized grids have none.
func (g *Grid) Center() (Cell, bool) {
	if g.size%2 == 0 {
		return Cell{}, false
	}
	half := (g.size + 1) / 2
	return g.CellAt(half, half)
}

// Neighbor returns the cell adjacent to c in direction d.
// ok is false at the boundary or when c does not belong to a grid of this size.
func (g *Grid) Neighbor(c Cell, d Direction) (Cell, bool) {
	if !g.InBounds(c.Col, c.Row) {
		return Cell{}, false
	}
	i := g.index(c.Col, c.Row)
	switch d {
	case Up:
		if i < g.size {
			return Cell{}, false
		}
		return g.cells[i-g.size], true
	case Down:
		if i+g.size >= len(g.cells) {
			return Cell{}, false
		}
		return g.cells[i+g.size], true
	case Left:
		if i%g.size == 0 {
			return Cell{}, false
		}
		return g.cells[i-1], true
	case Right:
		if i%g.size == g.size-1 {
			return Cell{}, false
		}
		return g.cells[i+1], true
	}
	return Cell{}, false
}

// Cells returns a copy of all cells in row-major order.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(Cell)) {
	for _, c := range g.cells {
		fn(c)
	}
}

// Any reports whether pred holds for at least one cell.
func (g *Grid) Any(pred func(Cell) bool) bool {
	for _, c := range g.cells {
		if pred(c) {
			return true
		}
	}
	return false
}

// All reports whether pred holds for every cell.
func (g *Grid) All(pred func(Cell) bool) bool {
	for _, c := range g.cells {
		if !pred(c) {
			return false
		}
	}
	return true
}

// Find returns the first cell, in row-major order, satisfying pred.
func (g *Grid) Find(pred func(Cell) bool) (Cell, bool) {
	for _, c := range g.cells {
		if pred(c) {
			return c, true
		}
	}
	return Cell{}, false
}

// FindAll returns every cell satisfying pred.
func (g *Grid) FindAll(pred func(Cell) bool) []Cell {
	var out []Cell
	for _, c := range g.cells {
		if pred(c) {
			out = append(out, c)
		}
	}
	return out
}

// Count returns the number of cells satisfying pred.
func (g *Grid) Count(pred func(Cell) bool) int {
	return CountCells(g.cells, pred)
}

// CountCells counts the cells in a subset (a row, the edges...) satisfying pred.
func CountCells(cells []Cell, pred func(Cell) bool) int {
	n := 0
	for _, c := range cells {
		if pred(c) {
			n++
		}
	}
	return n
}

// Values returns a copy of the underlying matrix.
func (g *Grid) Values() [][]any {
	out := make([][]any, g.size)
	for r := 0; r < g.size; r++ {
		out[r] = make([]any, g.size)
		for c := 0; c < g.size; c++ {
			out[r][c] = g.cells[r*g.size+c].Value
		}
	}
	return out
}

// Equal reports whether both grids hold element-wise equal matrices.
func (g *Grid) Equal(other *Grid) bool {
	if g == other {
		return true
	}
	if g == nil || other == nil || g.size != other.size {
		return false
	}
	for i := range g.cells {
		if g.cells[i].Value != other.cells[i].Value {
			return false
		}
	}
	return true
}

// String renders one line per row with space-separated values.
func (g *Grid) String() string {
	var b strings.Builder
	for r := 0; r < g.size; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < g.size; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(g.cells[r*g.size+c].text)
		}
	}
	return b.String()
}

// digest hashes the typed row-major values. Each value is written as its
// type and its length-prefixed canonical text, so 1 and "1" differ and no
// string value can spill into its neighbour.
func (g *Grid) digest() string {
	h := sha256.New()
	fmt.Fprintf(h, "%d", g.size)
	for _, c := range g.cells {
		text := canonicalText(c.Value, c.text)
		fmt.Fprintf(h, "|%T:%d:%s", c.Value, len(text), text)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// canonicalText gives equal values the same text. Negative zero equals zero
// but prints as "-0".
func canonicalText(v any, text string) string {
	switch x := v.(type) {
	case float64:
		if x == 0 {
			return "0"
		}
	case float32:
		if x == 0 {
			return "0"
		}
	}
	return text
}
