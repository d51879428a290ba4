package ui

import (
	"fmt"
	"io"
	"time"
)

// textRenderer writes plain text without colors or styling.
type textRenderer struct {
	out io.Writer
}

func newText(w io.Writer) *textRenderer {
	return &textRenderer{out: w}
}

func (r *textRenderer) RenderRun(s *RunSummary) error {
	if _, err := fmt.Fprintf(r.out, "%d problems written to %s\n", s.Generated, s.Dir); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.out, "run %s, seed %d, %s\n", s.RunID, s.Seed, s.Duration.Round(time.Millisecond)); err != nil {
		return err
	}
	if s.MetricsFile != "" {
		if _, err := fmt.Fprintf(r.out, "metrics written to %s\n", s.MetricsFile); err != nil {
			return err
		}
	}
	for _, f := range s.Failures {
		if _, err := fmt.Fprintf(r.out, "failed: %s (%s after %d attempts)\n", f.Rule, f.Phase, f.Attempts); err != nil {
			return err
		}
	}
	return nil
}

func (r *textRenderer) RenderRules(descriptions []string) error {
	for _, d := range descriptions {
		if _, err := fmt.Fprintln(r.out, d); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(r.out, "%d rules\n", len(descriptions))
	return err
}

func (r *textRenderer) RenderMatch(m *MatchResult) error {
	if !m.Matched {
		_, err := fmt.Fprintf(r.out, "no match for %s\n", m.Pattern)
		return err
	}
	_, err := fmt.Fprintf(r.out, "match for %s starting at [%d, %d]\n", m.Pattern, m.Col, m.Row)
	return err
}

func (r *textRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.out, "Error: %v\n", err)
	return werr
}

func (r *textRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.out, msg)
	return err
}
