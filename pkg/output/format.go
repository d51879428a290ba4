package output

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/bongard/pkg/errors"
)

// Format is a record file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML}

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown output format: %s", s).
			WithDetail("format", s)
	}
}

// Ext returns the file extension, without the dot.
func (f Format) Ext() string { return string(f) }

// Marshal encodes v in format f.
func (f Format) Marshal(v any) ([]byte, error) {
	switch f {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatTOML:
		return toml.Marshal(v)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown output format: %s", string(f))
	}
}

// Unmarshal decodes data in format f into v.
func (f Format) Unmarshal(data []byte, v any) error {
	switch f {
	case FormatJSON:
		return json.Unmarshal(data, v)
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	case FormatTOML:
		return toml.Unmarshal(data, v)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown output format: %s", string(f))
	}
}
