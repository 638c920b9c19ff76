package artifact

import "github.com/idlab-discover/EconCluster-cli/internal/schema"

// Example returns a small, hand-built scaler and three-cluster model for sch:
// every feature has mean 5 and scale 2, and the centroids sit at -2, 0 and +2
// standard deviations on every axis. Used to scaffold a working setup and in
// tests; it is not a trained model.
func Example(sch *schema.Schema) (*Scaling, *Model) {
	names := sch.Names()
	s := &Scaling{Features: make([]FeatureScale, len(names))}
	for i, n := range names {
		s.Features[i] = FeatureScale{Name: n, Mean: 5, Scale: 2}
	}

	m := &Model{Algorithm: "kmeans", K: 3, Centroids: make([][]float64, 3)}
	for k, level := range []float64{-2, 0, 2} {
		c := make([]float64, len(names))
		for i := range c {
			c[i] = level
		}
		m.Centroids[k] = c
	}
	return s, m
}
