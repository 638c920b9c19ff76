// Package cluster assigns a standardized vector to its nearest centroid.
package cluster

import (
	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
	"github.com/idlab-discover/EconCluster-cli/internal/artifact"
)

// Assign returns the id of the centroid with the smallest squared Euclidean
// distance to sv. Only a strictly smaller distance replaces the current best,
// so on an exact tie the lowest id wins.
func Assign(sv []float64, m *artifact.Model) (int, error) {
	if err := checkDim(sv, m); err != nil {
		return -1, err
	}
	best, bestDist := 0, squaredDistance(sv, m.Centroids[0])
	for id := 1; id < len(m.Centroids); id++ {
		if d := squaredDistance(sv, m.Centroids[id]); d < bestDist {
			best, bestDist = id, d
		}
	}
	return best, nil
}

// Distances returns the squared distance from sv to every centroid, indexed
// by cluster id.
func Distances(sv []float64, m *artifact.Model) ([]float64, error) {
	if err := checkDim(sv, m); err != nil {
		return nil, err
	}
	out := make([]float64, len(m.Centroids))
	for id, c := range m.Centroids {
		out[id] = squaredDistance(sv, c)
	}
	return out, nil
}

func checkDim(sv []float64, m *artifact.Model) error {
	if len(m.Centroids) == 0 {
		return &apperr.DimensionError{Stage: apperr.StageAssign, Got: len(sv), Want: 0}
	}
	if len(sv) != m.Dim() {
		return &apperr.DimensionError{Stage: apperr.StageAssign, Got: len(sv), Want: m.Dim()}
	}
	return nil
}

// squaredDistance sums in index order so results are reproducible bit for bit.
func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
