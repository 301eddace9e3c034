package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonshape/internal/validator"
)

// Report is the serializable outcome of validating one document.
type Report struct {
	Source string `json:"source" yaml:"source"`
	Valid  bool   `json:"valid" yaml:"valid"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	Kind   string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Nodes  int    `json:"nodes" yaml:"nodes"`
	Depth  int    `json:"depth" yaml:"depth"`
}

// NewReport builds a Report from a validation result
func NewReport(source string, res validator.Result) Report {
	r := Report{
		Source: source,
		Valid:  res.Valid,
		Nodes:  res.Nodes,
		Depth:  res.Depth,
	}
	if !res.Valid {
		r.Reason = res.Reason.Code()
		r.Path = res.Path
		r.Kind = res.Kind.String()
	}
	return r
}

// Formatter renders reports
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format renders a report as text, json or yaml
func (f *Formatter) Format(r Report, format string) (string, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return f.formatText(r), nil
	case "json":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return "", fmt.Errorf("failed to encode report as JSON: %w", err)
		}
		return buf.String(), nil
	case "yaml":
		out, err := yaml.Marshal(r)
		if err != nil {
			return "", fmt.Errorf("failed to encode report as YAML: %w", err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unsupported output format '%s'", format)
	}
}

// formatText renders a single line, e.g.
//
//	invalid: data.json: cycle at $.a.b (mapping)
func (f *Formatter) formatText(r Report) string {
	source := r.Source
	if source == "" {
		source = "<stdin>"
	}
	if r.Valid {
		return fmt.Sprintf("valid: %s (%d nodes, depth %d)\n", source, r.Nodes, r.Depth)
	}
	return fmt.Sprintf("invalid: %s: %s at %s (%s)\n", source, r.Reason, r.Path, r.Kind)
}
