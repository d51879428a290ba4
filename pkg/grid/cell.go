package grid

import (
	"fmt"
	"regexp"
)

// Direction names one of the four orthogonal neighbours of a cell.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the lower-case direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Cell is a single grid position and the symbol it holds.
// Col and Row are 1-indexed. Two cells hold the same symbol when their values
// are equal, wherever they sit in the grid.
type Cell struct {
	Value any
	Col   int
	Row   int

	text string
}

// String returns the textual form of the value, the form patterns test against.
func (c Cell) String() string {
	return c.text
}

// Is reports whether the cell holds v.
func (c Cell) Is(v any) bool {
	return c.Value == v
}

// SameValue reports whether both cells hold equal symbols.
func (c Cell) SameValue(other Cell) bool {
	return c.Value == other.Value
}

// Match reports whether re matches the textual form of the value.
func (c Cell) Match(re *regexp.Regexp) bool {
	return re.MatchString(c.text)
}
