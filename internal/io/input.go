// Package io reads prediction requests and writes results and BOMs.
package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	yaml "go.yaml.in/yaml/v3"

	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
)

// ReadInput reads a flat indicator mapping (name -> number) from a JSON or
// YAML file. The format parameter can be "json", "yaml", or "auto" (default).
// If "auto", the format is determined from the file extension.
func ReadInput(path string, format string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Userf("cannot read input %s: %v", path, err)
	}
	actual, err := inputFormat(path, format)
	if err != nil {
		return nil, err
	}
	return DecodeInput(data, actual)
}

// DecodeInput decodes a JSON or YAML indicator mapping.
func DecodeInput(data []byte, format string) (map[string]float64, error) {
	var doc map[string]any
	switch format {
	case "yaml":
		err := yaml.Unmarshal(data, &doc)
		if err != nil {
			return nil, apperr.Userf("input is not a YAML mapping: %v", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, apperr.Userf("input is not a JSON object: %v", err)
		}
	}

	names := make([]string, 0, len(doc))
	for k := range doc {
		names = append(names, k)
	}
	sort.Strings(names)

	out := make(map[string]float64, len(doc))
	for _, name := range names {
		v, ok := toFloat(doc[name])
		if !ok {
			return nil, &apperr.ValidationError{Feature: name, Reason: fmt.Sprintf("value %v is not a number", doc[name])}
		}
		out[name] = v
	}
	return out, nil
}

// ParseAssignments turns repeated "Name=value" flags into an indicator
// mapping. A name given twice is rejected.
func ParseAssignments(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		name, val, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, apperr.Userf("invalid assignment %q, expected Name=value", p)
		}
		if _, dup := out[name]; dup {
			return nil, apperr.Userf("indicator %q given more than once", name)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, &apperr.ValidationError{Feature: name, Reason: fmt.Sprintf("value %q is not a number", val)}
		}
		out[name] = v
	}
	return out, nil
}

// Merge overlays b onto a and returns a new map.
func Merge(a, b map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func inputFormat(path, format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "", "auto":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			return "yaml", nil
		default:
			return "json", nil
		}
	case "json", "yaml":
		return f, nil
	case "yml":
		return "yaml", nil
	default:
		return "", apperr.Userf("unsupported input format: %q", format)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
