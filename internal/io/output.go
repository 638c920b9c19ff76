package io

import (
	"encoding/json"
	"fmt"
	goio "io"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

// WriteResult encodes v as indented JSON or YAML.
func WriteResult(w goio.Writer, v any, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
}
