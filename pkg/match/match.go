// Package match searches a grid for occurrences of a compiled pattern.
package match

import (
	"github.com/arthur-debert/bongard/pkg/grid"
	"github.com/arthur-debert/bongard/pkg/pattern"
)

// Matches reports whether p occurs anywhere in g: some starting cell from
// which every step's move stays on the grid and every step's test passes.
// Starting cells are tried in row-major order and the first full match wins.
func Matches(g *grid.Grid, p *pattern.Pattern) bool {
	_, ok := Find(g, p)
	return ok
}

// Find returns the starting cell of the first occurrence of p in g.
func Find(g *grid.Grid, p *pattern.Pattern) (grid.Cell, bool) {
	steps := p.Steps()
	for _, start := range g.Cells() {
		if matchFrom(g, start, steps) {
			return start, true
		}
	}
	return grid.Cell{}, false
}

// MatchString compiles selector and reports whether it occurs in g.
func MatchString(g *grid.Grid, selector string) (bool, error) {
	p, err := pattern.Compile(selector)
	if err != nil {
		return false, err
	}
	return Matches(g, p), nil
}

func matchFrom(g *grid.Grid, start grid.Cell, steps []pattern.Step) bool {
	current := start
	for _, step := range steps {
		next, ok := Walk(g, current, step.Horizontal(), step.Vertical())
		if !ok || !next.Match(step.Test) {
			return false
		}
		current = next
	}
	return true
}

// Walk moves from c by dx columns (positive is right) and dy rows (positive is
// down), one cell at a time, horizontally first. ok is false as soon as a move
// would leave the grid.
func Walk(g *grid.Grid, c grid.Cell, dx, dy int) (grid.Cell, bool) {
	current := c
	var ok bool

	hDir, hSteps := grid.Right, dx
	if dx < 0 {
		hDir, hSteps = grid.Left, -dx
	}
	for i := 0; i < hSteps; i++ {
		if current, ok = g.Neighbor(current, hDir); !ok {
			return grid.Cell{}, false
		}
	}

	vDir, vSteps := grid.Down, dy
	if dy < 0 {
		vDir, vSteps = grid.Up, -dy
	}
	for i := 0; i < vSteps; i++ {
		if current, ok = g.Neighbor(current, vDir); !ok {
			return grid.Cell{}, false
		}
	}
	return current, true
}
