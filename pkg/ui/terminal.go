package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

// terminalRenderer provides rich terminal output: lipgloss for text styles,
// pterm for tables.
type terminalRenderer struct {
	out io.Writer
	st  styles
}

func newTerminal(w io.Writer) *terminalRenderer {
	return &terminalRenderer{out: w, st: newStyles(w)}
}

func (r *terminalRenderer) RenderRun(s *RunSummary) error {
	var b strings.Builder
	b.WriteString(r.st.success.Render(fmt.Sprintf("%d problems", s.Generated)))
	b.WriteString(" written to ")
	b.WriteString(r.st.path.Render(s.Dir))
	b.WriteString("\n")
	b.WriteString(r.st.muted.Render(fmt.Sprintf("run %s · seed %d · %s · %s",
		s.RunID, s.Seed, s.Format, s.Duration.Round(time.Millisecond))))
	if s.MetricsFile != "" {
		b.WriteString("\n")
		b.WriteString(r.st.muted.Render("metrics: "))
		b.WriteString(r.st.path.Render(s.MetricsFile))
	}
	if _, err := fmt.Fprintln(r.out, r.st.box.Render(b.String())); err != nil {
		return err
	}

	if len(s.Failures) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(r.out, r.st.warning.Render(fmt.Sprintf("%d rules failed", len(s.Failures)))); err != nil {
		return err
	}
	data := pterm.TableData{{"Rule", "Phase", "Attempts"}}
	for _, f := range s.Failures {
		data = append(data, []string{f.Rule, f.Phase, strconv.Itoa(f.Attempts)})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.out, table)
	return err
}

func (r *terminalRenderer) RenderRules(descriptions []string) error {
	for _, d := range descriptions {
		if _, err := fmt.Fprintln(r.out, d); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(r.out, r.st.title.Render(fmt.Sprintf("%d rules", len(descriptions))))
	return err
}

func (r *terminalRenderer) RenderMatch(m *MatchResult) error {
	if _, err := fmt.Fprintln(r.out, r.st.box.Render(m.Grid)); err != nil {
		return err
	}
	if !m.Matched {
		_, err := fmt.Fprintf(r.out, "%s %s\n", r.st.err.Render("✗ no match"), m.Pattern)
		return err
	}
	_, err := fmt.Fprintf(r.out, "%s %s %s\n",
		r.st.success.Render("✓ match"), m.Pattern,
		r.st.muted.Render(fmt.Sprintf("from [%d, %d]", m.Col, m.Row)))
	return err
}

func (r *terminalRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.out, "%s %v\n", r.st.err.Render("Error:"), err)
	return werr
}

func (r *terminalRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.out, msg)
	return err
}
