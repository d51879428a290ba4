// Package ui renders command results for people (terminal, text) and for
// programs (json).
package ui

import (
	"io"
	"os"
	"time"

	"github.com/arthur-debert/bongard/pkg/errors"
)

// RunSummary describes a finished generate run.
type RunSummary struct {
	RunID       string        `json:"runId"`
	Seed        uint64        `json:"seed"`
	Dir         string        `json:"dir"`
	Format      string        `json:"format"`
	Generated   int           `json:"generated"`
	Failures    []Failure     `json:"failures,omitempty"`
	Duration    time.Duration `json:"duration"`
	MetricsFile string        `json:"metricsFile,omitempty"`
}

// Failure is a rule that produced no problem.
type Failure struct {
	Rule     string `json:"rule"`
	Phase    string `json:"phase"`
	Attempts int    `json:"attempts"`
}

// MatchResult is the outcome of testing a pattern against a grid.
type MatchResult struct {
	Pattern string `json:"pattern"`
	Grid    string `json:"grid"`
	Matched bool   `json:"matched"`
	// Col and Row locate the first matching start, 1-indexed, when Matched.
	Col int `json:"col,omitempty"`
	Row int `json:"row,omitempty"`
}

// Renderer is the common interface for all output renderers.
type Renderer interface {
	RenderRun(s *RunSummary) error
	RenderRules(descriptions []string) error
	RenderMatch(m *MatchResult) error
	RenderError(err error) error
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return newTerminal(output), nil
	case FormatText:
		return newText(output), nil
	case FormatJSON:
		return newJSON(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown display format: %v", format)
	}
}
