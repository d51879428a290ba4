package ui

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/bongard/pkg/errors"
)

// jsonRenderer provides JSON output for machine consumption
type jsonRenderer struct {
	encoder *json.Encoder
}

func newJSON(w io.Writer) *jsonRenderer {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return &jsonRenderer{encoder: encoder}
}

func (r *jsonRenderer) RenderRun(s *RunSummary) error {
	return r.encoder.Encode(s)
}

func (r *jsonRenderer) RenderRules(descriptions []string) error {
	return r.encoder.Encode(map[string]interface{}{
		"count": len(descriptions),
		"rules": descriptions,
	})
}

func (r *jsonRenderer) RenderMatch(m *MatchResult) error {
	return r.encoder.Encode(m)
}

func (r *jsonRenderer) RenderError(err error) error {
	obj := map[string]interface{}{
		"error": err.Error(),
		"code":  string(errors.GetErrorCode(err)),
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		obj["details"] = details
	}
	return r.encoder.Encode(obj)
}

func (r *jsonRenderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
