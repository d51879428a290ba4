package match_test

import (
	"testing"

	"github.com/arthur-debert/bongard/pkg/errors"
	"github.com/arthur-debert/bongard/pkg/grid"
	"github.com/arthur-debert/bongard/pkg/match"
	"github.com/arthur-debert/bongard/pkg/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sixteen(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.FromInts([][]int{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	})
	require.NoError(t, err)
	return g
}

func TestMatches(t *testing.T) {
	g := sixteen(t)

	tests := []struct {
		name     string
		selector string
		want     bool
	}{
		{"documented chain", "(?1)>(R2,?3)>(D1,?7)>(L1,?6)", true},
		{"value mismatch", "(?1)>(R2,?1)", false},
		{"single anchor", "(?11)", true},
		{"absent value", "(?17)", false},
		{"walks off the right edge", "(?4)>(R1,?.+)", false},
		{"walks off the bottom edge", "(?13)>(D1,?.+)", false},
		{"walks off the top edge", "(?2)>(U1,?.+)", false},
		{"walks off the left edge", "(?5)>(L1,?.+)", false},
		{"diagonal move", "(?6)>(R1,D1,?11)", true},
		{"up and left", "(?16)>(U3,L3,?1)", true},
		{"cancelling moves stay put", "(?6)>(L1,R1,?6)", true},
		{"any start works", "(?.+)>(R3,D3,?16)", true},
		{"regex class", "(?1[0-9])>(R1,?1[0-9])>(D1,?15)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := match.MatchString(g, tt.selector)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatches_OffGridIsFalseForThatStartOnly(t *testing.T) {
	g, err := grid.FromInts([][]int{
		{1, 0, 1},
		{0, 0, 0},
		{0, 0, 1},
	})
	require.NoError(t, err)

	// From (3,1) moving right leaves the grid, but (1,1) succeeds.
	p := pattern.MustCompile("(?1)>(R2,?1)")
	start, ok := match.Find(g, p)
	require.True(t, ok)
	assert.Equal(t, 1, start.Col)
	assert.Equal(t, 1, start.Row)

	// Only (3,1)->(3,3) fits; every other 1 would walk off the bottom.
	p = pattern.MustCompile("(?1)>(D2,?1)")
	start, ok = match.Find(g, p)
	require.True(t, ok)
	assert.Equal(t, 3, start.Col)
	assert.Equal(t, 1, start.Row)
}

func TestMatchString_SyntaxError(t *testing.T) {
	_, err := match.MatchString(sixteen(t), "(R1,?1)")
	assert.True(t, errors.IsErrorCode(err, errors.ErrPatternSyntax))
}

func TestWalk(t *testing.T) {
	g := sixteen(t)
	start, _ := g.CellAt(2, 2)

	end, ok := match.Walk(g, start, 2, 1)
	require.True(t, ok)
	assert.Equal(t, 12, end.Value)

	end, ok = match.Walk(g, start, -1, -1)
	require.True(t, ok)
	assert.Equal(t, 1, end.Value)

	_, ok = match.Walk(g, start, 3, 0)
	assert.False(t, ok)

	end, ok = match.Walk(g, start, 0, 0)
	require.True(t, ok)
	assert.Equal(t, 6, end.Value)
}
