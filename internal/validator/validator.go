// Package validator checks that a set of model artifacts, a schema and a
// label table can serve predictions together.
package validator

import (
	"fmt"
	"slices"

	"github.com/idlab-discover/EconCluster-cli/internal/artifact"
	"github.com/idlab-discover/EconCluster-cli/internal/label"
	"github.com/idlab-discover/EconCluster-cli/internal/standardize"
)

type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string

	Schema   string
	Features int
	K        int
	Digests  []artifact.Digest
}

// ValidateArtifacts loads the artifacts described by opts with a fresh store
// and reports fatal problems as errors and suspicious ones as warnings.
// opts.Schema must be set; opts.K is taken from the label table.
func ValidateArtifacts(opts artifact.Options, labels []label.Label) ValidationResult {
	var r ValidationResult
	if opts.Schema == nil {
		r.Errors = append(r.Errors, "no schema given")
		return r
	}
	r.Schema = opts.Schema.Name()
	r.Features = opts.Schema.Len()

	resolver, err := label.NewResolver(labels)
	if err != nil {
		r.Errors = append(r.Errors, "labels: "+err.Error())
	} else {
		opts.K = resolver.K()
	}

	store := artifact.NewStore(opts)
	scaling, model, err := store.Load()
	if err != nil {
		r.Errors = append(r.Errors, err.Error())
		return r
	}
	r.K = model.K
	r.Digests = store.Digests()
	logf("loaded %d feature(s), k=%d", scaling.Len(), model.K)

	r.Warnings = append(r.Warnings, scalingWarnings(opts, scaling)...)
	r.Warnings = append(r.Warnings, centroidWarnings(opts, scaling, model)...)
	if resolver != nil {
		r.Warnings = append(r.Warnings, labelWarnings(resolver)...)
	}

	r.Valid = len(r.Errors) == 0
	return r
}

func scalingWarnings(opts artifact.Options, s *artifact.Scaling) []string {
	var out []string
	for i, f := range s.Features {
		if f.Constant {
			out = append(out, fmt.Sprintf("feature %s has zero scale; it never affects the assigned cluster", f.Name))
		}
		spec := opts.Schema.Features()[i]
		if !spec.InDomain(f.Mean) {
			out = append(out, fmt.Sprintf("feature %s has mean %g outside its domain [%g, %g]", f.Name, f.Mean, spec.Min, spec.Max))
		}
	}
	return out
}

func centroidWarnings(opts artifact.Options, s *artifact.Scaling, m *artifact.Model) []string {
	var out []string
	specs := opts.Schema.Features()
	for id, c := range m.Centroids {
		raw, err := standardize.Inverse(c, s)
		if err != nil {
			out = append(out, fmt.Sprintf("centroid %d: %v", id, err))
			continue
		}
		for i, v := range raw {
			if !specs[i].InDomain(v) {
				out = append(out, fmt.Sprintf("centroid %d maps %s to %.3g, outside [%g, %g]", id, specs[i].Name, v, specs[i].Min, specs[i].Max))
			}
		}
		for prev := 0; prev < id; prev++ {
			if slices.Equal(m.Centroids[prev], c) {
				out = append(out, fmt.Sprintf("centroid %d duplicates centroid %d and can never be assigned", id, prev))
				break
			}
		}
	}
	return out
}

func labelWarnings(r *label.Resolver) []string {
	var out []string
	seen := map[string]int{}
	for _, l := range r.All() {
		if prev, ok := seen[l.Name]; ok {
			out = append(out, fmt.Sprintf("clusters %d and %d share the label %q", prev, l.ID, l.Name))
			continue
		}
		seen[l.Name] = l.ID
	}
	return out
}
