package pattern_test

import (
	"testing"

	"github.com/arthur-debert/bongard/pkg/errors"
	"github.com/arthur-debert/bongard/pkg/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Steps(t *testing.T) {
	p, err := pattern.Compile("(?1)>(R2,?3)>(D1,?7)>(L1,?6)")
	require.NoError(t, err)
	require.Equal(t, 4, p.Len())

	type deltas struct{ up, down, left, right int }
	want := []struct {
		d    deltas
		test string
	}{
		{deltas{0, 0, 0, 0}, "1"},
		{deltas{0, 0, 0, 2}, "3"},
		{deltas{0, 1, 0, 0}, "7"},
		{deltas{0, 0, 1, 0}, "6"},
	}

	for i, step := range p.Steps() {
		assert.Equal(t, want[i].d, deltas{step.Up, step.Down, step.Left, step.Right}, "step %d", i+1)
		assert.Equal(t, want[i].test, step.Expr)
		assert.True(t, step.Test.MatchString(want[i].test))
		assert.False(t, step.Test.MatchString(want[i].test+"0"), "test must match the whole value")
		assert.False(t, step.Test.MatchString("x"+want[i].test))
	}
	assert.Equal(t, "(?1)>(R2,?3)>(D1,?7)>(L1,?6)", p.String())
}

func TestCompile_Tests(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		matches  []string
		rejects  []string
	}{
		{"multi digit", "(?10)>(R20,?3)", []string{"10"}, []string{"1", "100"}},
		{"any value", "(?.+)>(R1,?3)", []string{"1", "abc"}, []string{""}},
		{"negated class", "(?[^1])>(R1,?3)", []string{"2", "x"}, []string{"1", "22"}},
		{"alternation is anchored as a whole", "(?a|b)>(R1,?3)", []string{"a", "b"}, []string{"ab", "xb"}},
		{"class instead of comma list", "(?[12])>(R1,?3)", []string{"1", "2"}, []string{"12", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := pattern.Compile(tt.selector)
			require.NoError(t, err)
			first := p.Steps()[0].Test
			for _, s := range tt.matches {
				assert.True(t, first.MatchString(s), "%q should match", s)
			}
			for _, s := range tt.rejects {
				assert.False(t, first.MatchString(s), "%q should not match", s)
			}
		})
	}
}

func TestCompile_Movement(t *testing.T) {
	p, err := pattern.Compile("(?1)>(R1,D3,?.+)>(U2,L4,?2)")
	require.NoError(t, err)
	steps := p.Steps()

	assert.Equal(t, 1, steps[1].Horizontal())
	assert.Equal(t, 3, steps[1].Vertical())
	assert.Equal(t, -4, steps[2].Horizontal())
	assert.Equal(t, -2, steps[2].Vertical())
	assert.False(t, steps[0].Moves())
	assert.True(t, steps[1].Moves())
}

func TestCompile_CancellingMovesStillMove(t *testing.T) {
	p, err := pattern.Compile("(?1)>(L1,R1,?1)")
	require.NoError(t, err)
	step := p.Steps()[1]
	assert.True(t, step.Moves())
	assert.Equal(t, 0, step.Horizontal())
}

func TestCompile_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		selector string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"first step moves", "(R1,?1)>(D1,?2)"},
		{"missing test in first step", "(U0)>(R1,?2)"},
		{"missing test in later step", "(?1)>(R1)"},
		{"later step does not move", "(?1)>(?2)"},
		{"later step with zero distance", "(?1)>(R0,?2)"},
		{"non numeric distance", "(?1)>(Rx,?2)"},
		{"negative distance", "(?1)>(D-1,?2)"},
		{"bad test expression", "(?[)>(R1,?2)"},
		{"no parentheses", "?1>R1,?2"},
		{"trailing delimiter", "(?1)>"},
		{"comma inside a test", "(?1)>(R1,?[1,2])"},
		{"group inside a test", "(?(1|2))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := pattern.Compile(tt.selector)
			assert.Nil(t, p)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrPatternSyntax), "got %v", err)
			assert.Equal(t, tt.selector, errors.GetErrorDetails(err)["pattern"])
		})
	}
}

func TestMustCompile(t *testing.T) {
	assert.NotPanics(t, func() { pattern.MustCompile("(?1)") })
	assert.Panics(t, func() { pattern.MustCompile("(R1,?1)") })
}

func TestSteps_ReturnsCopy(t *testing.T) {
	p := pattern.MustCompile("(?1)>(R1,?2)")
	steps := p.Steps()
	steps[1].Right = 99
	assert.Equal(t, 1, p.Steps()[1].Right)
}
