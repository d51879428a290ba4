// Package pattern compiles pattern selectors: chains of relative moves and
// value tests used to look for a spatial motif in a grid.
//
// A selector is a series of ">" delimited steps, each a parenthesised list of
// comma separated parameters:
//
//	(?1)>(R2,?3)>(D1,?7)>(L1,?6)
//
// Movement parameters are a direction prefix (U, D, L or R) followed by a
// distance. A test parameter is "?" followed by an expression that must match
// the whole textual value of a cell, so ?1 matches "1" but not "10". A test
// ends at the first "," or ")", so neither can appear inside it.
//
// The first step only tests (it anchors the search); every later step moves
// at least one cell before testing.
package pattern

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/arthur-debert/bongard/pkg/errors"
)

// StepDelimiter separates the steps of a selector.
const StepDelimiter = ">"

// Each parameter is taken from its first occurrence in the step. A parameter
// starts after "(" or "," and runs to the next "," or ")".
var (
	upParam    = regexp.MustCompile(`[(,]U([^,)]*)[,)]`)
	downParam  = regexp.MustCompile(`[(,]D([^,)]*)[,)]`)
	leftParam  = regexp.MustCompile(`[(,]L([^,)]*)[,)]`)
	rightParam = regexp.MustCompile(`[(,]R([^,)]*)[,)]`)
	testParam  = regexp.MustCompile(`[(,]\?(.*?)[,)]`)
)

// Step is one link of a pattern: move, then test the cell arrived at.
type Step struct {
	Up    int
	Down  int
	Left  int
	Right int

	// Test matches the entire textual value of a cell.
	Test *regexp.Regexp
	// Expr is the test expression as written, without anchors.
	Expr string
}

// Horizontal returns the column displacement; positive moves right.
func (s Step) Horizontal() int { return s.Right - s.Left }

// Vertical returns the row displacement; positive moves down.
func (s Step) Vertical() int { return s.Down - s.Up }

// Moves reports whether any movement parameter is non-zero.
func (s Step) Moves() bool {
	return s.Up != 0 || s.Down != 0 || s.Left != 0 || s.Right != 0
}

// Pattern is a compiled, non-empty sequence of steps.
type Pattern struct {
	source string
	steps  []Step
}

// Compile parses a selector. It returns an ErrPatternSyntax error when a step
// has no test, a distance is not an unsigned integer, a test expression does
// not compile, the first step moves, or a later step does not.
func Compile(selector string) (*Pattern, error) {
	if strings.TrimSpace(selector) == "" {
		return nil, syntaxError(selector, "pattern is empty")
	}

	raw := strings.Split(selector, StepDelimiter)
	steps := make([]Step, 0, len(raw))
	for i, rawStep := range raw {
		step, err := compileStep(rawStep)
		if err != nil {
			return nil, syntaxError(selector, fmt.Sprintf("step %d: %s", i+1, err.Error())).
				WithDetail("step", i+1)
		}
		if i == 0 && step.Moves() {
			return nil, syntaxError(selector, "step 1 must not move").WithDetail("step", 1)
		}
		if i > 0 && !step.Moves() {
			return nil, syntaxError(selector, fmt.Sprintf("step %d must move at least one cell", i+1)).
				WithDetail("step", i+1)
		}
		steps = append(steps, step)
	}

	return &Pattern{source: selector, steps: steps}, nil
}

// MustCompile is like Compile but panics on error. Intended for selectors
// known at build time.
func MustCompile(selector string) *Pattern {
	p, err := Compile(selector)
	if err != nil {
		panic(err)
	}
	return p
}

func compileStep(raw string) (Step, error) {
	var step Step
	var err error

	if step.Up, err = distance(raw, upParam, "U"); err != nil {
		return Step{}, err
	}
	if step.Down, err = distance(raw, downParam, "D"); err != nil {
		return Step{}, err
	}
	if step.Left, err = distance(raw, leftParam, "L"); err != nil {
		return Step{}, err
	}
	if step.Right, err = distance(raw, rightParam, "R"); err != nil {
		return Step{}, err
	}

	m := testParam.FindStringSubmatch(raw)
	if m == nil {
		return Step{}, fmt.Errorf("missing test in %q", raw)
	}
	step.Expr = m[1]
	step.Test, err = regexp.Compile(`^(?:` + m[1] + `)$`)
	if err != nil {
		return Step{}, fmt.Errorf("bad test %q: %w", m[1], err)
	}
	return step, nil
}

// distance extracts a movement parameter; an absent parameter is zero.
func distance(raw string, re *regexp.Regexp, prefix string) (int, error) {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return 0, nil
	}
	n, err := strconv.ParseUint(m[1], 10, 31)
	if err != nil {
		return 0, fmt.Errorf("%s distance %q is not an unsigned integer", prefix, m[1])
	}
	return int(n), nil
}

func syntaxError(selector, msg string) *errors.BongardError {
	return errors.New(errors.ErrPatternSyntax, msg).WithDetail("pattern", selector)
}

// Steps returns a copy of the compiled steps.
func (p *Pattern) Steps() []Step {
	out := make([]Step, len(p.steps))
	copy(out, p.steps)
	return out
}

// Len returns the number of steps.
func (p *Pattern) Len() int { return len(p.steps) }

// String returns the selector the pattern was compiled from.
func (p *Pattern) String() string { return p.source }
