// Package schema describes the ordered indicator list a trained model expects
// and turns raw user input into a feature vector in that order.
package schema

import (
	"fmt"
	"math"
	"strings"
)

// FeatureSpec is a first-class definition of one indicator:
// - its position (implied by its index in the Schema)
// - whether callers must supply it
// - the value used when it is absent
// - the inclusive domain a supplied value must fall in
type FeatureSpec struct {
	Name        Feature `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Default     float64 `json:"default,omitempty" yaml:"default,omitempty"`
	Min         float64 `json:"min" yaml:"min"`
	Max         float64 `json:"max" yaml:"max"`
}

// InDomain reports whether v lies inside [Min, Max].
func (f FeatureSpec) InDomain(v float64) bool {
	return v >= f.Min && v <= f.Max
}

// Schema is an immutable, ordered list of feature specs. The order is the
// column order the scaler was fitted with and must never change.
type Schema struct {
	name     string
	features []FeatureSpec
	index    map[Feature]int
}

// New validates specs and returns a Schema preserving their order.
func New(name string, specs []FeatureSpec) (*Schema, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("schema %q: no features", name)
	}
	s := &Schema{
		name:     name,
		features: make([]FeatureSpec, len(specs)),
		index:    make(map[Feature]int, len(specs)),
	}
	for i, spec := range specs {
		spec.Name = Feature(strings.TrimSpace(spec.Name.String()))
		if spec.Name == "" {
			return nil, fmt.Errorf("schema %q: feature %d has no name", name, i)
		}
		if _, dup := s.index[spec.Name]; dup {
			return nil, fmt.Errorf("schema %q: duplicate feature %q", name, spec.Name)
		}
		if spec.Min == 0 && spec.Max == 0 {
			spec.Min, spec.Max = DefaultMin, DefaultMax
		}
		if !(spec.Min < spec.Max) || math.IsInf(spec.Min, 0) || math.IsInf(spec.Max, 0) {
			return nil, fmt.Errorf("schema %q: feature %q has invalid domain %g..%g", name, spec.Name, spec.Min, spec.Max)
		}
		if math.IsNaN(spec.Default) || math.IsInf(spec.Default, 0) {
			return nil, fmt.Errorf("schema %q: feature %q has non-finite default", name, spec.Name)
		}
		if spec.Default < spec.Min || spec.Default > spec.Max {
			return nil, fmt.Errorf("schema %q: feature %q default %g outside %g..%g", name, spec.Name, spec.Default, spec.Min, spec.Max)
		}
		s.features[i] = spec
		s.index[spec.Name] = i
	}
	return s, nil
}

// Name returns the schema name, e.g. "core" or "full".
func (s *Schema) Name() string { return s.name }

// Len returns the number of features.
func (s *Schema) Len() int { return len(s.features) }

// Features returns a copy of the ordered specs.
func (s *Schema) Features() []FeatureSpec {
	out := make([]FeatureSpec, len(s.features))
	copy(out, s.features)
	return out
}

// Names returns the feature names in schema order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.features))
	for i, f := range s.features {
		out[i] = f.Name.String()
	}
	return out
}

// Lookup returns the spec and position of name.
func (s *Schema) Lookup(name string) (FeatureSpec, int, bool) {
	i, ok := s.index[Feature(name)]
	if !ok {
		return FeatureSpec{}, -1, false
	}
	return s.features[i], i, true
}

// Required returns the names callers must always supply.
func (s *Schema) Required() []string {
	var out []string
	for _, f := range s.features {
		if f.Required {
			out = append(out, f.Name.String())
		}
	}
	return out
}
