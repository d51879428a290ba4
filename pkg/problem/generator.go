package problem

import (
	"context"
	stderrors "errors"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/bongard/pkg/errors"
	"github.com/arthur-debert/bongard/pkg/grid"
	"github.com/arthur-debert/bongard/pkg/logging"
	"github.com/arthur-debert/bongard/pkg/rules"
	"github.com/arthur-debert/bongard/pkg/sampler"
)

// Phase names a stage of generation. It appears in GenerationFailed details
// and metric labels.
type Phase string

const (
	PhaseExhibits Phase = "exhibits"
	PhaseAnswers  Phase = "answers"
)

const (
	DefaultExhibitSize      = 6
	DefaultIncorrectAnswers = 2
	DefaultMaxAttempts      = 200000
)

// Options bounds a generation.
type Options struct {
	// ExhibitSize is the number of followers and of rogues shown.
	ExhibitSize int
	// IncorrectAnswers is the number of non-following answers.
	IncorrectAnswers int
	// MaxAttempts is the grid draw budget of each phase.
	MaxAttempts int
}

// DefaultOptions returns six exhibits per side, two wrong answers and the
// default attempt budget.
func DefaultOptions() Options {
	return Options{
		ExhibitSize:      DefaultExhibitSize,
		IncorrectAnswers: DefaultIncorrectAnswers,
		MaxAttempts:      DefaultMaxAttempts,
	}
}

func (o Options) validate() error {
	switch {
	case o.ExhibitSize < 1:
		return errors.Newf(errors.ErrInvalidInput, "exhibit size must be positive, got %d", o.ExhibitSize)
	case o.IncorrectAnswers < 1:
		return errors.Newf(errors.ErrInvalidInput, "incorrect answers must be positive, got %d", o.IncorrectAnswers)
	case o.MaxAttempts < 1:
		return errors.Newf(errors.ErrInvalidInput, "max attempts must be positive, got %d", o.MaxAttempts)
	}
	return nil
}

// Generator runs the two-phase search. A Generator owns its sampler and
// random source and must not be shared between goroutines.
type Generator struct {
	sampler sampler.Sampler
	rng     *rand.Rand
	opts    Options
	logger  zerolog.Logger
}

// NewGenerator returns a generator drawing grids from s and using rng for
// reservoir eviction and answer shuffling.
func NewGenerator(s sampler.Sampler, rng *rand.Rand, opts Options) (*Generator, error) {
	if s == nil {
		return nil, errors.New(errors.ErrInvalidInput, "sampler is required")
	}
	if rng == nil {
		return nil, errors.New(errors.ErrInvalidInput, "random source is required")
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Generator{
		sampler: s,
		rng:     rng,
		opts:    opts,
		logger:  logging.GetLogger("problem"),
	}, nil
}

// Generate builds a problem for target. others are the rules that must not
// reproduce the follower/rogue split; target itself is skipped if present.
//
// It returns an ErrGenerationFailed error when a phase runs out of attempts
// or ctx's deadline passes, and ctx.Err() when ctx is cancelled.
func (g *Generator) Generate(ctx context.Context, target rules.Rule, others []rules.Rule) (*Problem, error) {
	start := time.Now()
	logger := g.logger.With().Str("rule", target.Description()).Logger()

	followers, rogues, stats, err := g.exhibits(ctx, logger, target, others)
	if err != nil {
		return nil, err
	}

	correct, incorrect, attempts, err := g.answers(ctx, target, followers, rogues)
	stats.AnswerAttempts = attempts
	if err != nil {
		return nil, err
	}

	answers := append([]*grid.Grid{correct}, incorrect...)
	g.rng.Shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})
	stats.Duration = time.Since(start)

	logger.Debug().
		Int("exhibitAttempts", stats.ExhibitAttempts).
		Int("answerAttempts", stats.AnswerAttempts).
		Int("ambiguous", stats.AmbiguousSplits).
		Dur("duration", stats.Duration).
		Msg("Problem generated")

	return &Problem{
		Rule:          target,
		Followers:     followers.Grids(),
		Rogues:        rogues.Grids(),
		Answers:       answers,
		CorrectAnswer: correct,
		Stats:         stats,
	}, nil
}

func (g *Generator) exhibits(ctx context.Context, logger zerolog.Logger, target rules.Rule, others []rules.Rule) (*reservoir, *reservoir, Stats, error) {
	followers := newReservoir(g.opts.ExhibitSize, g.rng)
	rogues := newReservoir(g.opts.ExhibitSize, g.rng)
	var stats Stats

	// The split only needs rechecking after a reservoir changed.
	changed := false
	for stats.ExhibitAttempts < g.opts.MaxAttempts {
		if err := ctx.Err(); err != nil {
			return nil, nil, stats, g.interrupted(err, target, PhaseExhibits, stats.ExhibitAttempts)
		}
		stats.ExhibitAttempts++

		sample := g.sampler.Sample()
		if target.Follower(sample) {
			changed = followers.Add(sample) || changed
		} else {
			changed = rogues.Add(sample) || changed
		}

		if !changed || !followers.Full() || !rogues.Full() {
			continue
		}
		changed = false

		if conflict, ok := reproduces(others, target, followers, rogues); ok {
			stats.AmbiguousSplits++
			logger.Debug().Str("conflict", conflict.Description()).Msg("Conflict found, retrying")
			continue
		}

		logger.Trace().Int("attempts", stats.ExhibitAttempts).Msg("Exhibits chosen")
		return followers, rogues, stats, nil
	}
	return nil, nil, stats, generationFailed(target, PhaseExhibits, stats.ExhibitAttempts)
}

func (g *Generator) answers(ctx context.Context, target rules.Rule, followers, rogues *reservoir) (*grid.Grid, []*grid.Grid, int, error) {
	var correct *grid.Grid
	incorrect := newRecent(g.opts.IncorrectAnswers)

	attempts := 0
	for attempts < g.opts.MaxAttempts {
		if err := ctx.Err(); err != nil {
			return nil, nil, attempts, g.interrupted(err, target, PhaseAnswers, attempts)
		}
		attempts++

		sample := g.sampler.Sample()
		if target.Follower(sample) {
			correct = sample
		} else {
			incorrect.Add(sample)
		}

		if correct == nil || incorrect.Len() < g.opts.IncorrectAnswers || followers.Contains(correct) {
			continue
		}
		if overlaps(incorrect.Grids(), rogues) {
			continue
		}
		return correct, incorrect.Grids(), attempts, nil
	}
	return nil, nil, attempts, generationFailed(target, PhaseAnswers, attempts)
}

// reproduces returns the first other rule that every follower obeys and
// every rogue breaks.
func reproduces(others []rules.Rule, target rules.Rule, followers, rogues *reservoir) (rules.Rule, bool) {
	fs, rs := followers.Grids(), rogues.Grids()
	for _, other := range others {
		if other.Description() == target.Description() {
			continue
		}
		if all(fs, other.Follower) && all(rs, other.Rogue) {
			return other, true
		}
	}
	return rules.Rule{}, false
}

func all(gs []*grid.Grid, pred func(*grid.Grid) bool) bool {
	for _, g := range gs {
		if !pred(g) {
			return false
		}
	}
	return true
}

func overlaps(gs []*grid.Grid, r *reservoir) bool {
	for _, g := range gs {
		if r.Contains(g) {
			return true
		}
	}
	return false
}

func generationFailed(target rules.Rule, phase Phase, attempts int) error {
	return errors.Newf(errors.ErrGenerationFailed, "no %s found for %q after %d attempts", phase, target.Description(), attempts).
		WithDetail("rule", target.Description()).
		WithDetail("phase", string(phase)).
		WithDetail("attempts", attempts)
}

// interrupted maps a context error: a passed deadline is a generation
// failure for this rule, a cancellation is returned unchanged.
func (g *Generator) interrupted(err error, target rules.Rule, phase Phase, attempts int) error {
	if !stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errors.Wrapf(err, errors.ErrGenerationFailed, "deadline passed during %s for %q", phase, target.Description()).
		WithDetail("rule", target.Description()).
		WithDetail("phase", string(phase)).
		WithDetail("attempts", attempts)
}

// FailedPhase returns the phase recorded on a GenerationFailed error.
func FailedPhase(err error) (Phase, bool) {
	if !errors.IsErrorCode(err, errors.ErrGenerationFailed) {
		return "", false
	}
	p, ok := errors.GetErrorDetails(err)["phase"].(string)
	return Phase(p), ok
}
