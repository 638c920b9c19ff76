package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
	"github.com/idlab-discover/EconCluster-cli/internal/schema"
)

// IndicatorForm asks for every indicator of s, one input per feature, and
// checks each value against its domain as it is typed. Values already in
// prefill are offered as the starting text. Optional indicators may be left
// blank to use their default. A prefill name outside the schema is rejected
// before the form opens.
func IndicatorForm(s *schema.Schema, prefill map[string]float64) (map[string]float64, error) {
	form, values, err := newIndicatorForm(s, prefill)
	if err != nil {
		return nil, err
	}
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, apperr.ErrCancelled
		}
		return nil, err
	}
	return collectIndicators(s, values)
}

func newIndicatorForm(s *schema.Schema, prefill map[string]float64) (*huh.Form, map[schema.Feature]*string, error) {
	if err := s.CheckNames(prefill); err != nil {
		return nil, nil, err
	}
	values := make(map[schema.Feature]*string, s.Len())
	groups := []*huh.Group{huh.NewGroup(
		huh.NewNote().
			Title("Development indicators").
			Description(fmt.Sprintf("Schema %q: %d indicators.\nLeave optional indicators blank to use their default.", s.Name(), s.Len())).
			Next(true).
			NextLabel("Continue"),
	)}

	var fields []huh.Field
	for _, spec := range s.Features() {
		val := ""
		if v, ok := prefill[spec.Name.String()]; ok {
			val = strconv.FormatFloat(v, 'g', -1, 64)
		}
		values[spec.Name] = &val
		fields = append(fields, indicatorInput(s, spec, values[spec.Name]))
	}
	groups = append(groups, huh.NewGroup(fields...))
	return huh.NewForm(groups...), values, nil
}

func indicatorInput(s *schema.Schema, spec schema.FeatureSpec, value *string) huh.Field {
	title := spec.Name.String()
	placeholder := fmt.Sprintf("%g..%g", spec.Min, spec.Max)
	if spec.Required {
		title += " *"
	} else {
		placeholder += fmt.Sprintf(" (default %g)", spec.Default)
	}
	return huh.NewInput().
		Title(title).
		Description(spec.Description).
		Placeholder(placeholder).
		Value(value).
		Validate(func(str string) error {
			_, _, err := parseIndicator(s, spec, str)
			return err
		})
}

// parseIndicator returns ok=false for a blank optional indicator.
func parseIndicator(s *schema.Schema, spec schema.FeatureSpec, str string) (float64, bool, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		if spec.Required {
			return 0, false, fmt.Errorf("%s is required", spec.Name)
		}
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%q is not a number", str)
	}
	if err := s.Check(spec.Name.String(), v); err != nil {
		return 0, false, err
	}
	return v, true, nil
}

func collectIndicators(s *schema.Schema, values map[schema.Feature]*string) (map[string]float64, error) {
	out := make(map[string]float64, len(values))
	for _, spec := range s.Features() {
		ptr := values[spec.Name]
		if ptr == nil {
			continue
		}
		v, ok, err := parseIndicator(s, spec, *ptr)
		if err != nil {
			return nil, err
		}
		if ok {
			out[spec.Name.String()] = v
		}
	}
	return out, nil
}
