package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/bongard/pkg/errors"
	"github.com/arthur-debert/bongard/pkg/metrics"
	"github.com/arthur-debert/bongard/pkg/problem"
)

func TestRecorder_WriteTextfile(t *testing.T) {
	rec := metrics.New()
	rec.ObserveProblem(&problem.Problem{Stats: problem.Stats{
		ExhibitAttempts: 40,
		AnswerAttempts:  5,
		AmbiguousSplits: 3,
		Duration:        20 * time.Millisecond,
	}})
	rec.ObserveFailure(errors.New(errors.ErrGenerationFailed, "gave up").
		WithDetail("phase", "answers").
		WithDetail("attempts", 10))
	rec.ObserveFailure(errors.New(errors.ErrInternal, "not a generation failure"))

	path := filepath.Join(t.TempDir(), "bongard.prom")
	require.NoError(t, rec.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `bongard_generation_attempts_total{phase="exhibits"} 40`)
	assert.Contains(t, out, `bongard_generation_attempts_total{phase="answers"} 15`)
	assert.Contains(t, out, "bongard_ambiguous_splits_total 3")
	assert.Contains(t, out, "bongard_problems_generated_total 1")
	assert.Contains(t, out, `bongard_generation_failures_total{phase="answers"} 1`)
	assert.Contains(t, out, "bongard_generation_duration_seconds_count 1")
}

func TestRecorder_Nil(t *testing.T) {
	var rec *metrics.Recorder
	assert.NotPanics(t, func() {
		rec.ObserveProblem(&problem.Problem{})
		rec.ObserveFailure(errors.New(errors.ErrGenerationFailed, "x"))
	})
	assert.NoError(t, rec.WriteTextfile(filepath.Join(t.TempDir(), "unused.prom")))
	assert.Nil(t, rec.Registry())
}

func TestRecorder_WriteTextfileError(t *testing.T) {
	rec := metrics.New()
	err := rec.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "m.prom"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))
}
