package grid

// Rotation is the turning direction for Rotate.
type Rotation int

const (
	Clockwise Rotation = iota
	Anticlockwise
)

// String returns the lower-case rotation name.
func (r Rotation) String() string {
	if r == Anticlockwise {
		return "anticlockwise"
	}
	return "clockwise"
}

// Axis selects the flip performed by Mirror.
type Axis int

const (
	// Vertical reverses the row order (top/bottom flip).
	Vertical Axis = iota
	// Horizontal reverses each row (left/right flip).
	Horizontal
)

// String returns the lower-case axis name.
func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Rotate returns the grid turned n quarter turns in direction dir.
// A quarter turn clockwise is transpose followed by reversing each row;
// anticlockwise is the inverse. The period is four, so n is reduced mod 4.
func (g *Grid) Rotate(dir Rotation, n int) *Grid {
	turns := n % 4
	if turns < 0 {
		turns += 4
	}
	values := g.Values()
	for i := 0; i < turns; i++ {
		if dir == Anticlockwise {
			values = rotateAnticlockwise(values)
		} else {
			values = rotateClockwise(values)
		}
	}
	return mustNew(values, g.size)
}

// Mirror returns the grid flipped about axis.
func (g *Grid) Mirror(axis Axis) *Grid {
	values := g.Values()
	n := len(values)
	out := make([][]any, n)
	for r := 0; r < n; r++ {
		if axis == Vertical {
			out[r] = values[n-1-r]
			continue
		}
		row := make([]any, n)
		for c := 0; c < n; c++ {
			row[c] = values[r][n-1-c]
		}
		out[r] = row
	}
	return mustNew(out, g.size)
}

// rotateClockwise: out[r][c] = in[n-1-c][r].
func rotateClockwise(in [][]any) [][]any {
	n := len(in)
	out := make([][]any, n)
	for r := 0; r < n; r++ {
		out[r] = make([]any, n)
		for c := 0; c < n; c++ {
			out[r][c] = in[n-1-c][r]
		}
	}
	return out
}

// rotateAnticlockwise: out[r][c] = in[c][n-1-r].
func rotateAnticlockwise(in [][]any) [][]any {
	n := len(in)
	out := make([][]any, n)
	for r := 0; r < n; r++ {
		out[r] = make([]any, n)
		for c := 0; c < n; c++ {
			out[r][c] = in[c][n-1-r]
		}
	}
	return out
}
