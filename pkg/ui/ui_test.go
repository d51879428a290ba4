package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/bongard/pkg/errors"
	"github.com/arthur-debert/bongard/pkg/ui"
)

func summary() *ui.RunSummary {
	return &ui.RunSummary{
		RunID:     "5f0c6c1e-3d2a-4a5e-9b7f-0d1c2b3a4f5e",
		Seed:      42,
		Dir:       "/tmp/problems",
		Format:    "json",
		Generated: 150,
		Failures:  []ui.Failure{{Rule: "mirrored vertical", Phase: "exhibits", Attempts: 200000}},
		Duration:  1500 * time.Millisecond,
	}
}

func TestRenderers(t *testing.T) {
	for _, format := range []ui.Format{ui.FormatTerminal, ui.FormatText} {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			r, err := ui.NewRenderer(format, &buf)
			require.NoError(t, err)

			require.NoError(t, r.RenderRun(summary()))
			out := buf.String()
			assert.Contains(t, out, "150 problems")
			assert.Contains(t, out, "/tmp/problems")
			assert.Contains(t, out, "mirrored vertical")
			assert.Contains(t, out, "200000")

			buf.Reset()
			require.NoError(t, r.RenderRules([]string{"a", "b"}))
			assert.Contains(t, buf.String(), "2 rules")

			buf.Reset()
			require.NoError(t, r.RenderMatch(&ui.MatchResult{Pattern: "(?1)", Grid: "1 2 3", Matched: true, Col: 1, Row: 1}))
			assert.Contains(t, buf.String(), "[1, 1]")

			buf.Reset()
			require.NoError(t, r.RenderMatch(&ui.MatchResult{Pattern: "(?9)", Grid: "1 2 3"}))
			assert.Contains(t, buf.String(), "no match")

			buf.Reset()
			require.NoError(t, r.RenderError(errors.New(errors.ErrPatternSyntax, "bad")))
			assert.Contains(t, buf.String(), "Error:")
			assert.Contains(t, buf.String(), "PATTERN_SYNTAX")
		})
	}
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderRun(summary()))
	var got ui.RunSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *summary(), got)

	buf.Reset()
	require.NoError(t, r.RenderError(errors.New(errors.ErrGenerationFailed, "gave up").WithDetail("phase", "answers")))
	var obj map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &obj))
	assert.Equal(t, "GENERATION_FAILED", obj["code"])
	assert.Equal(t, "answers", obj["details"].(map[string]interface{})["phase"])
}

func TestNewRenderer_AutoOnBufferIsText(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatAuto, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderMessage("hello"))
	assert.Equal(t, "hello\n", buf.String())

	_, err = ui.NewRenderer(ui.Format(42), &buf)
	assert.Error(t, err)
}
