// serializer.go - Result serialization for responses and export
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/schema-scout/backend/internal/models"
	"gopkg.in/yaml.v3"
)

// Format identifies a result serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates an output_format form value. An empty value
// defaults to JSON.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "json":
		return FormatJSON, nil
	case "yaml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported output format: %q", s)
}

// MarshalJSON renders a processing result as 2-space indented JSON.
// Keys are emitted in sorted order, so output is byte-stable for a
// given result.
func MarshalJSON(result models.ProcessingResult) (string, error) {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding result JSON: %w", err)
	}
	return string(out), nil
}

// MarshalYAML renders a processing result as YAML with 2-space
// indentation.
func MarshalYAML(result models.ProcessingResult) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return "", fmt.Errorf("encoding result YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Marshal renders a processing result in the requested format.
func Marshal(result models.ProcessingResult, format Format) (string, error) {
	switch format {
	case FormatYAML:
		return MarshalYAML(result)
	default:
		return MarshalJSON(result)
	}
}
