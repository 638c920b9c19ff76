// Package completeness reports how much of a schema a request actually
// supplied, as opposed to filled from defaults.
package completeness

import (
	"github.com/idlab-discover/EconCluster-cli/internal/schema"
)

// Report summarizes which schema features a request supplied.
type Report struct {
	Score float64 // 0..1

	Passed int
	Total  int

	// Absent indicators, in schema order.
	MissingRequired []schema.Feature
	MissingOptional []schema.Feature
}

// Check scores raw against s. Every schema feature has the same weight.
func Check(s *schema.Schema, raw map[string]float64) Report {
	var r Report
	for _, spec := range s.Features() {
		r.Total++
		if _, ok := raw[spec.Name.String()]; ok {
			r.Passed++
			continue
		}
		if spec.Required {
			r.MissingRequired = append(r.MissingRequired, spec.Name)
		} else {
			r.MissingOptional = append(r.MissingOptional, spec.Name)
		}
	}
	if r.Total > 0 {
		r.Score = float64(r.Passed) / float64(r.Total)
	}
	return r
}
