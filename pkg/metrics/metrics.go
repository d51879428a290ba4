// Package metrics records generation counters in a private Prometheus
// registry and writes them in the node-exporter textfile format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/arthur-debert/bongard/pkg/errors"
	"github.com/arthur-debert/bongard/pkg/problem"
)

const namespace = "bongard"

// Recorder holds the generation metrics of one run. A nil *Recorder
// discards every observation.
type Recorder struct {
	registry *prometheus.Registry

	// attempts counts grids drawn. Labels: phase (exhibits, answers)
	attempts *prometheus.CounterVec
	// ambiguous counts exhibit splits rejected because another rule explained them.
	ambiguous prometheus.Counter
	// generated counts problems produced.
	generated prometheus.Counter
	// failures counts rules given up on. Labels: phase
	failures *prometheus.CounterVec
	// duration measures time spent per problem.
	duration prometheus.Histogram
}

// New returns a Recorder with its own registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "attempts_total",
			Help:      "Random grids drawn by the problem generator",
		}, []string{"phase"}),
		ambiguous: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ambiguous_splits_total",
			Help:      "Follower/rogue splits rejected because another rule reproduced them",
		}),
		generated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "problems_generated_total",
			Help:      "Problems successfully generated",
		}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "failures_total",
			Help:      "Rules for which generation ran out of attempts",
		}, []string{"phase"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "Time taken to generate one problem",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveProblem records a successful generation.
func (r *Recorder) ObserveProblem(p *problem.Problem) {
	if r == nil || p == nil {
		return
	}
	r.generated.Inc()
	r.attempts.WithLabelValues(string(problem.PhaseExhibits)).Add(float64(p.Stats.ExhibitAttempts))
	r.attempts.WithLabelValues(string(problem.PhaseAnswers)).Add(float64(p.Stats.AnswerAttempts))
	r.ambiguous.Add(float64(p.Stats.AmbiguousSplits))
	r.duration.Observe(p.Stats.Duration.Seconds())
}

// ObserveFailure records a GenerationFailed error. Other errors are ignored.
func (r *Recorder) ObserveFailure(err error) {
	if r == nil {
		return
	}
	phase, ok := problem.FailedPhase(err)
	if !ok {
		return
	}
	r.failures.WithLabelValues(string(phase)).Inc()
	if n, ok := errors.GetErrorDetails(err)["attempts"].(int); ok {
		r.attempts.WithLabelValues(string(phase)).Add(float64(n))
	}
}

// WriteTextfile writes the registry to path, atomically replacing it.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write metrics to %s", path).
			WithDetail("path", path)
	}
	return nil
}
