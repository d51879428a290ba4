package rules

import (
	"fmt"

	"github.com/arthur-debert/bongard/pkg/errors"
	"github.com/arthur-debert/bongard/pkg/grid"
	"github.com/arthur-debert/bongard/pkg/match"
	"github.com/arthur-debert/bongard/pkg/pattern"
)

// Count ranges used by the standard enumeration.
const (
	maxAnyCellCount = 4
	maxCornerCount  = 4
	minEdgeCount    = 5
	maxEdgeCount    = 7
	maxRotation     = 2
)

// Standard enumerates the full rule collection for grids of the given size
// holding the given varieties, followed by one rule per pattern.
func Standard(size int, varieties []any, patterns ...*pattern.Pattern) (*Set, error) {
	if size < grid.MinSize {
		return nil, errors.Newf(errors.ErrBelowMinimumSize, "size must be >= %d, got %d", grid.MinSize, size)
	}
	if len(varieties) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "at least one variety is required")
	}

	var all []Rule
	all = append(all, Rows(size, varieties)...)
	all = append(all, Columns(size, varieties)...)
	all = append(all, Anywhere(size, varieties)...)
	all = append(all, CornerCells(varieties)...)
	all = append(all, EdgeCells(varieties)...)
	all = append(all, Rotated()...)
	all = append(all, Mirrored()...)
	for _, p := range patterns {
		all = append(all, PatternRule(p))
	}
	return NewSet(all...)
}

func is(v any) func(grid.Cell) bool {
	return func(c grid.Cell) bool { return c.Is(v) }
}

// Rows: exactly n cells of variety v in row r.
func Rows(size int, varieties []any) []Rule {
	var out []Rule
	for row := 1; row <= size; row++ {
		for _, v := range varieties {
			for n := 0; n <= size; n++ {
				row, v, n := row, v, n
				out = append(out, MustNew(fmt.Sprintf("%d of variety %v @ row %d", n, v, row), func(g *grid.Grid) bool {
					cells, ok := g.Row(row)
					return ok && grid.CountCells(cells, is(v)) == n
				}))
			}
		}
	}
	return out
}

// Columns: exactly n cells of variety v in column c.
func Columns(size int, varieties []any) []Rule {
	var out []Rule
	for col := 1; col <= size; col++ {
		for _, v := range varieties {
			for n := 0; n <= size; n++ {
				col, v, n := col, v, n
				out = append(out, MustNew(fmt.Sprintf("%d of variety %v @ col %d", n, v, col), func(g *grid.Grid) bool {
					cells, ok := g.Column(col)
					return ok && grid.CountCells(cells, is(v)) == n
				}))
			}
		}
	}
	return out
}

// Anywhere: a variety at a given cell, exact counts over the whole grid, and
// presence anywhere.
func Anywhere(size int, varieties []any) []Rule {
	var out []Rule
	for _, v := range varieties {
		v := v
		for row := 1; row <= size; row++ {
			for col := 1; col <= size; col++ {
				col, row := col, row
				out = append(out, MustNew(fmt.Sprintf("variety %v @ [%d, %d]", v, col, row), func(g *grid.Grid) bool {
					c, ok := g.CellAt(col, row)
					return ok && c.Is(v)
				}))
			}
		}

		for n := 0; n <= maxAnyCellCount; n++ {
			n := n
			out = append(out, MustNew(fmt.Sprintf("%d of variety %v in any cell", n, v), func(g *grid.Grid) bool {
				return g.Count(is(v)) == n
			}))
		}

		out = append(out, MustNew(fmt.Sprintf("any of variety %v @ any cell", v), func(g *grid.Grid) bool {
			return g.Any(is(v))
		}))
	}
	return out
}

// CornerCells: exact counts and presence among the four corners.
func CornerCells(varieties []any) []Rule {
	var out []Rule
	for _, v := range varieties {
		v := v
		for n := 0; n <= maxCornerCount; n++ {
			n := n
			out = append(out, MustNew(fmt.Sprintf("%d of variety %v in corner cells", n, v), func(g *grid.Grid) bool {
				return grid.CountCells(g.Corners(), is(v)) == n
			}))
		}
		out = append(out, MustNew(fmt.Sprintf("variety %v @ any corner cell", v), func(g *grid.Grid) bool {
			return grid.CountCells(g.Corners(), is(v)) > 0
		}))
	}
	return out
}

// EdgeCells: exact counts and presence along the border.
func EdgeCells(varieties []any) []Rule {
	var out []Rule
	for _, v := range varieties {
		v := v
		for n := minEdgeCount; n <= maxEdgeCount; n++ {
			n := n
			out = append(out, MustNew(fmt.Sprintf("%d of variety %v in edge cells", n, v), func(g *grid.Grid) bool {
				return grid.CountCells(g.Edges(), is(v)) == n
			}))
		}
		out = append(out, MustNew(fmt.Sprintf("any of variety %v in edge cells", v), func(g *grid.Grid) bool {
			return grid.CountCells(g.Edges(), is(v)) > 0
		}))
	}
	return out
}

// Rotated: the grid looks the same after n clockwise quarter turns.
func Rotated() []Rule {
	var out []Rule
	for n := 1; n <= maxRotation; n++ {
		n := n
		out = append(out, MustNew(fmt.Sprintf("rotated clockwise # %d", n), func(g *grid.Grid) bool {
			return g.Rotate(grid.Clockwise, n).Equal(g)
		}))
	}
	return out
}

// Mirrored: the grid looks the same flipped about an axis.
func Mirrored() []Rule {
	var out []Rule
	for _, axis := range []grid.Axis{grid.Vertical, grid.Horizontal} {
		axis := axis
		out = append(out, MustNew(fmt.Sprintf("mirrored %s", axis), func(g *grid.Grid) bool {
			return g.Mirror(axis).Equal(g)
		}))
	}
	return out
}

// PatternRule: the pattern occurs somewhere in the grid.
func PatternRule(p *pattern.Pattern) Rule {
	return MustNew("pattern "+p.String(), func(g *grid.Grid) bool {
		return match.Matches(g, p)
	})
}
