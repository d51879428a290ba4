// Package batch generates one problem per rule, concurrently.
package batch

import (
	"context"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/bongard/pkg/errors"
	"github.com/arthur-debert/bongard/pkg/logging"
	"github.com/arthur-debert/bongard/pkg/metrics"
	"github.com/arthur-debert/bongard/pkg/problem"
	"github.com/arthur-debert/bongard/pkg/rules"
	"github.com/arthur-debert/bongard/pkg/sampler"
)

// SamplerFactory builds the sampler for one generator from its private
// random source.
type SamplerFactory func(rng *rand.Rand) (sampler.Sampler, error)

// Options configures a run.
type Options struct {
	// Workers bounds concurrent generators. 0 means runtime.NumCPU().
	Workers int
	// Seed is the base seed; rule i draws from stream i. 0 picks a random seed.
	Seed uint64
	// Timeout bounds each rule's generation. 0 means no limit.
	Timeout time.Duration
	// Problem bounds each generator.
	Problem problem.Options
}

// Failure is a rule whose generation failed.
type Failure struct {
	Rule     string
	Phase    problem.Phase
	Attempts int
	Err      error
}

// Result is the outcome of a run. Problems and Failures keep rule order.
type Result struct {
	RunID    uuid.UUID
	Seed     uint64
	Problems []*problem.Problem
	Failures []Failure
	Duration time.Duration
}

// Runner generates problems for rules drawn from one rule set.
type Runner struct {
	set        *rules.Set
	newSampler SamplerFactory
	opts       Options
	metrics    *metrics.Recorder
	logger     zerolog.Logger
}

// NewRunner returns a Runner. rec may be nil.
func NewRunner(set *rules.Set, newSampler SamplerFactory, opts Options, rec *metrics.Recorder) (*Runner, error) {
	if set == nil || set.Len() == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "rule set is empty")
	}
	if newSampler == nil {
		return nil, errors.New(errors.ErrInvalidInput, "sampler factory is required")
	}
	if opts.Workers < 0 {
		return nil, errors.Newf(errors.ErrInvalidInput, "workers must be >= 0, got %d", opts.Workers)
	}
	if opts.Timeout < 0 {
		return nil, errors.Newf(errors.ErrInvalidInput, "timeout must be >= 0, got %s", opts.Timeout)
	}
	if opts.Problem == (problem.Options{}) {
		opts.Problem = problem.DefaultOptions()
	}
	if opts.Workers == 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Runner{
		set:        set,
		newSampler: newSampler,
		opts:       opts,
		metrics:    rec,
		logger:     logging.GetLogger("batch"),
	}, nil
}

// Run generates a problem for every target, each checked against all the
// other rules of the set. A GenerationFailed error is recorded as a Failure
// and the run continues; any other error stops the run and is returned.
func (r *Runner) Run(ctx context.Context, targets []rules.Rule) (*Result, error) {
	start := time.Now()
	seed := r.opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	runID := uuid.New()
	logger := r.logger.With().Str("run", runID.String()).Uint64("seed", seed).Logger()
	done := logging.LogOperationStart(logger, "batch")
	defer done()

	logger.Info().Int("rules", len(targets)).Int("workers", r.opts.Workers).Msg("Generating problems")

	problems := make([]*problem.Problem, len(targets))
	failures := make([]*Failure, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			p, err := r.generate(gctx, seed, uint64(i), target)
			if err == nil {
				problems[i] = p
				r.metrics.ObserveProblem(p)
				return nil
			}
			if !errors.IsErrorCode(err, errors.ErrGenerationFailed) {
				return err
			}

			r.metrics.ObserveFailure(err)
			phase, _ := problem.FailedPhase(err)
			attempts, _ := errors.GetErrorDetails(err)["attempts"].(int)
			failures[i] = &Failure{Rule: target.Description(), Phase: phase, Attempts: attempts, Err: err}
			logger.Warn().Err(err).Str("rule", target.Description()).Msg("Generation failed")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{RunID: runID, Seed: seed, Duration: time.Since(start)}
	for i := range targets {
		if problems[i] != nil {
			res.Problems = append(res.Problems, problems[i])
		}
		if failures[i] != nil {
			res.Failures = append(res.Failures, *failures[i])
		}
	}

	logger.Info().
		Int("generated", len(res.Problems)).
		Int("failed", len(res.Failures)).
		Dur("duration", res.Duration).
		Msg("Generation finished")
	return res, nil
}

func (r *Runner) generate(ctx context.Context, seed, stream uint64, target rules.Rule) (*problem.Problem, error) {
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	rng := sampler.NewRand(seed, stream)
	s, err := r.newSampler(rng)
	if err != nil {
		return nil, err
	}
	gen, err := problem.NewGenerator(s, rng, r.opts.Problem)
	if err != nil {
		return nil, err
	}
	return gen.Generate(ctx, target, r.set.Others(target))
}

// UniformSamplers returns a factory of uniform samplers over size and varieties.
func UniformSamplers(size int, varieties []any) SamplerFactory {
	return func(rng *rand.Rand) (sampler.Sampler, error) {
		u, err := sampler.NewUniform(size, varieties, rng)
		if err != nil {
			return nil, err
		}
		return u, nil
	}
}
