// Package standardize applies the persisted z-score transform.
package standardize

import (
	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
	"github.com/idlab-discover/EconCluster-cli/internal/artifact"
)

// Transform returns (v[i]-mean[i])/scale[i] for every feature. Features the
// scaler marked constant map to 0. v is not modified.
func Transform(v []float64, s *artifact.Scaling) ([]float64, error) {
	if len(v) != s.Len() {
		return nil, &apperr.DimensionError{Stage: apperr.StageStandardize, Got: len(v), Want: s.Len()}
	}
	out := make([]float64, len(v))
	for i, f := range s.Features {
		if f.Constant {
			continue
		}
		out[i] = (v[i] - f.Mean) / f.Scale
	}
	return out, nil
}

// Inverse maps a standardized vector back to indicator space. Constant
// features map to their mean.
func Inverse(sv []float64, s *artifact.Scaling) ([]float64, error) {
	if len(sv) != s.Len() {
		return nil, &apperr.DimensionError{Stage: apperr.StageStandardize, Got: len(sv), Want: s.Len()}
	}
	out := make([]float64, len(sv))
	for i, f := range s.Features {
		if f.Constant {
			out[i] = f.Mean
			continue
		}
		out[i] = sv[i]*f.Scale + f.Mean
	}
	return out, nil
}
