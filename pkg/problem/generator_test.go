package problem_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/bongard/pkg/errors"
	"github.com/arthur-debert/bongard/pkg/grid"
	"github.com/arthur-debert/bongard/pkg/problem"
	"github.com/arthur-debert/bongard/pkg/rules"
	"github.com/arthur-debert/bongard/pkg/sampler"
)

// tagged builds a grid whose top-left cell decides the test rule and whose
// bottom-right cell keeps grids distinct.
func tagged(t *testing.T, corner, tag int) *grid.Grid {
	t.Helper()
	g, err := grid.FromInts([][]int{
		{corner, 0, 0},
		{0, 0, 0},
		{0, 0, tag},
	})
	require.NoError(t, err)
	return g
}

var cornerRule = rules.MustNew("variety 1 @ [1, 1]", func(g *grid.Grid) bool {
	c, _ := g.CellAt(1, 1)
	return c.Is(1)
})

// sequence replays grids in order, then keeps returning the last one.
func sequence(gs ...*grid.Grid) sampler.Sampler {
	i := 0
	return sampler.Func(func() *grid.Grid {
		g := gs[i]
		if i < len(gs)-1 {
			i++
		}
		return g
	})
}

// exhibits returns six followers (tags 1..6) then six rogues (tags 1..6).
func exhibits(t *testing.T) []*grid.Grid {
	var out []*grid.Grid
	for i := 1; i <= 6; i++ {
		out = append(out, tagged(t, 1, i))
	}
	for i := 1; i <= 6; i++ {
		out = append(out, tagged(t, 0, i))
	}
	return out
}

func newGenerator(t *testing.T, s sampler.Sampler, maxAttempts int) *problem.Generator {
	t.Helper()
	opts := problem.DefaultOptions()
	opts.MaxAttempts = maxAttempts
	gen, err := problem.NewGenerator(s, sampler.NewRand(7, 0), opts)
	require.NoError(t, err)
	return gen
}

func contains(gs []*grid.Grid, g *grid.Grid) bool {
	for _, have := range gs {
		if have.Equal(g) {
			return true
		}
	}
	return false
}

func TestGenerate_ScriptedDraws(t *testing.T) {
	tests := []struct {
		name           string
		answerDraws    func(t *testing.T) []*grid.Grid
		wantAttempts   int
		wantCorrectTag int
	}{
		{
			name: "fresh follower and fresh rogues",
			answerDraws: func(t *testing.T) []*grid.Grid {
				return []*grid.Grid{tagged(t, 1, 7), tagged(t, 0, 7), tagged(t, 0, 8)}
			},
			wantAttempts:   3,
			wantCorrectTag: 7,
		},
		{
			name: "shown rogue is pushed out by later draws",
			answerDraws: func(t *testing.T) []*grid.Grid {
				return []*grid.Grid{tagged(t, 1, 7), tagged(t, 0, 1), tagged(t, 0, 7), tagged(t, 0, 8)}
			},
			wantAttempts:   4,
			wantCorrectTag: 7,
		},
		{
			name: "shown follower is replaced by a later follower",
			answerDraws: func(t *testing.T) []*grid.Grid {
				return []*grid.Grid{tagged(t, 1, 1), tagged(t, 0, 7), tagged(t, 0, 8), tagged(t, 1, 9)}
			},
			wantAttempts:   4,
			wantCorrectTag: 9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draws := append(exhibits(t), tt.answerDraws(t)...)
			gen := newGenerator(t, sequence(draws...), 100)

			p, err := gen.Generate(context.Background(), cornerRule, nil)
			require.NoError(t, err)

			assert.Equal(t, 12, p.Stats.ExhibitAttempts)
			assert.Equal(t, tt.wantAttempts, p.Stats.AnswerAttempts)
			assert.Equal(t, 12+tt.wantAttempts, p.Stats.Attempts())
			assert.True(t, p.CorrectAnswer.Equal(tagged(t, 1, tt.wantCorrectTag)))
			require.Len(t, p.Answers, 3)
			idx := p.CorrectIndex()
			require.GreaterOrEqual(t, idx, 0)
			assert.True(t, p.Answers[idx].Equal(p.CorrectAnswer))
		})
	}
}

func TestGenerate_Invariants(t *testing.T) {
	varieties := []any{1, 2, 3}
	set, err := rules.Standard(3, varieties)
	require.NoError(t, err)

	for _, desc := range []string{"variety 1 @ [1, 1]", "2 of variety 1 @ row 2", "3 of variety 2 in any cell", "mirrored horizontal"} {
		t.Run(desc, func(t *testing.T) {
			target, ok := set.Get(desc)
			require.True(t, ok)
			others := set.Others(target)

			s, err := sampler.NewUniform(3, varieties, sampler.NewRand(42, 1))
			require.NoError(t, err)
			gen := newGenerator(t, s, problem.DefaultMaxAttempts)

			p, err := gen.Generate(context.Background(), target, others)
			require.NoError(t, err)

			require.Len(t, p.Followers, 6)
			require.Len(t, p.Rogues, 6)
			for _, f := range p.Followers {
				assert.True(t, target.Follower(f))
			}
			for _, r := range p.Rogues {
				assert.True(t, target.Rogue(r))
			}

			for _, other := range others {
				reproduced := true
				for _, f := range p.Followers {
					reproduced = reproduced && other.Follower(f)
				}
				for _, r := range p.Rogues {
					reproduced = reproduced && other.Rogue(r)
				}
				assert.False(t, reproduced, "split is also explained by %q", other.Description())
			}

			assert.False(t, contains(p.Followers, p.CorrectAnswer))
			require.Len(t, p.Answers, 3)
			following := 0
			for _, a := range p.Answers {
				if target.Follower(a) {
					following++
				} else {
					assert.False(t, contains(p.Rogues, a))
				}
			}
			assert.Equal(t, 1, following)
			assert.True(t, target.Follower(p.Answers[p.CorrectIndex()]))
		})
	}
}

func TestGenerate_ExhibitsBudgetExhausted(t *testing.T) {
	// A single repeated grid can never fill either reservoir.
	gen := newGenerator(t, sequence(tagged(t, 1, 1)), 50)

	_, err := gen.Generate(context.Background(), cornerRule, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrGenerationFailed))

	details := errors.GetErrorDetails(err)
	assert.Equal(t, "variety 1 @ [1, 1]", details["rule"])
	assert.Equal(t, "exhibits", details["phase"])
	assert.Equal(t, 50, details["attempts"])

	phase, ok := problem.FailedPhase(err)
	require.True(t, ok)
	assert.Equal(t, problem.PhaseExhibits, phase)
}

func TestGenerate_AlwaysAmbiguous(t *testing.T) {
	twin := rules.MustNew("same corner, other name", cornerRule.Follower)

	s, err := sampler.NewUniform(3, []any{0, 1}, sampler.NewRand(3, 3))
	require.NoError(t, err)
	gen := newGenerator(t, s, 500)

	_, err = gen.Generate(context.Background(), cornerRule, []rules.Rule{cornerRule, twin})
	require.Error(t, err)
	phase, ok := problem.FailedPhase(err)
	require.True(t, ok)
	assert.Equal(t, problem.PhaseExhibits, phase)
}

func TestGenerate_TargetInOthersIsIgnored(t *testing.T) {
	gen := newGenerator(t, sequence(append(exhibits(t), tagged(t, 1, 7), tagged(t, 0, 7), tagged(t, 0, 8))...), 100)

	p, err := gen.Generate(context.Background(), cornerRule, []rules.Rule{cornerRule})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stats.AmbiguousSplits)
}

func TestGenerate_AnswersBudgetExhausted(t *testing.T) {
	// After the exhibits, only already shown followers are drawn.
	draws := append(exhibits(t), tagged(t, 0, 7), tagged(t, 0, 8), tagged(t, 1, 1))
	gen := newGenerator(t, sequence(draws...), 30)

	_, err := gen.Generate(context.Background(), cornerRule, nil)
	require.Error(t, err)
	phase, ok := problem.FailedPhase(err)
	require.True(t, ok)
	assert.Equal(t, problem.PhaseAnswers, phase)
	assert.Equal(t, 30, errors.GetErrorDetails(err)["attempts"])
}

func TestGenerate_Context(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		gen := newGenerator(t, sequence(exhibits(t)...), 100)

		_, err := gen.Generate(ctx, cornerRule, nil)
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, errors.IsErrorCode(err, errors.ErrGenerationFailed))
	})

	t.Run("deadline passed", func(t *testing.T) {
		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()
		gen := newGenerator(t, sequence(exhibits(t)...), 100)

		_, err := gen.Generate(ctx, cornerRule, nil)
		assert.True(t, errors.IsErrorCode(err, errors.ErrGenerationFailed))
		assert.True(t, stderrors.Is(err, context.DeadlineExceeded))
	})
}

func TestNewGenerator_Validation(t *testing.T) {
	s := sequence(tagged(t, 1, 1))
	rng := sampler.NewRand(1, 1)

	_, err := problem.NewGenerator(nil, rng, problem.DefaultOptions())
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = problem.NewGenerator(s, nil, problem.DefaultOptions())
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	for _, opts := range []problem.Options{
		{ExhibitSize: 0, IncorrectAnswers: 2, MaxAttempts: 10},
		{ExhibitSize: 6, IncorrectAnswers: 0, MaxAttempts: 10},
		{ExhibitSize: 6, IncorrectAnswers: 2, MaxAttempts: 0},
	} {
		_, err = problem.NewGenerator(s, rng, opts)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "%+v", opts)
	}
}
