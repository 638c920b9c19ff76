package schema

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
)

// Build assembles the raw indicator mapping into a vector in schema order.
//
// Names that are not part of the schema are rejected first (sorted, so the
// reported error is stable), then every spec is checked in schema order:
// a missing required indicator or an out-of-domain value fails the request.
// Absent optional indicators take their spec default.
func (s *Schema) Build(raw map[string]float64) ([]float64, error) {
	if err := s.checkUnknown(raw); err != nil {
		return nil, err
	}

	vec := make([]float64, len(s.features))
	for i, spec := range s.features {
		v, ok := raw[spec.Name.String()]
		if !ok {
			if spec.Required {
				return nil, &apperr.ValidationError{
					Feature: spec.Name.String(),
					Min:     spec.Min,
					Max:     spec.Max,
					Reason:  "required indicator missing",
				}
			}
			vec[i] = spec.Default
			continue
		}
		if err := spec.check(v); err != nil {
			return nil, err
		}
		vec[i] = v
	}
	return vec, nil
}

// Check validates a single named value against its spec.
func (s *Schema) Check(name string, v float64) error {
	spec, _, ok := s.Lookup(name)
	if !ok {
		return s.unknown(name)
	}
	return spec.check(v)
}

// Defaulted returns, in schema order, the names Build fills from defaults.
func (s *Schema) Defaulted(raw map[string]float64) []string {
	var out []string
	for _, spec := range s.features {
		if _, ok := raw[spec.Name.String()]; !ok {
			out = append(out, spec.Name.String())
		}
	}
	return out
}

func (f FeatureSpec) check(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &apperr.ValidationError{
			Feature: f.Name.String(), Value: v, Min: f.Min, Max: f.Max,
			Reason: "value is not a finite number",
		}
	}
	if !f.InDomain(v) {
		return &apperr.ValidationError{
			Feature: f.Name.String(), Value: v, Min: f.Min, Max: f.Max,
			Reason: fmt.Sprintf("value %g out of range", v),
		}
	}
	return nil
}

// CheckNames rejects the first (in sorted order) name of raw that is not part
// of the schema, with a suggestion when one is close.
func (s *Schema) CheckNames(raw map[string]float64) error {
	return s.checkUnknown(raw)
}

func (s *Schema) checkUnknown(raw map[string]float64) error {
	var unknown []string
	for name := range raw {
		if _, ok := s.index[Feature(name)]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return s.unknown(unknown[0])
}

func (s *Schema) unknown(name string) error {
	return &apperr.ValidationError{
		Feature:    name,
		Reason:     fmt.Sprintf("unknown indicator for schema %q", s.name),
		Suggestion: s.Suggest(name),
	}
}

// Suggest returns the schema name closest to name, or "" when nothing is
// close enough.
func (s *Schema) Suggest(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	names := s.Names()
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return n
		}
	}
	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
