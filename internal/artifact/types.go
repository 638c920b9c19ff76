package artifact

// FeatureScale holds the training-time standardization parameters of one
// feature. Constant is set at load time when Scale is zero; the standardized
// value of a constant feature is always 0.
type FeatureScale struct {
	Name     string  `json:"name" yaml:"name"`
	Mean     float64 `json:"mean" yaml:"mean"`
	Scale    float64 `json:"scale" yaml:"scale"`
	Constant bool    `json:"constant,omitempty" yaml:"constant,omitempty"`
}

// Scaling is the persisted z-score transform, one entry per schema feature in
// schema order. It is never mutated after Load returns it.
type Scaling struct {
	Features []FeatureScale `json:"features" yaml:"features"`
}

// Len returns the number of fitted features.
func (s *Scaling) Len() int { return len(s.Features) }

// Names returns the feature names in fitted order.
func (s *Scaling) Names() []string {
	out := make([]string, len(s.Features))
	for i, f := range s.Features {
		out[i] = f.Name
	}
	return out
}

// Model is the persisted clustering model: K centroids in standardized space
// assigned by nearest Euclidean distance.
type Model struct {
	Algorithm string      `json:"algorithm" yaml:"algorithm"`
	K         int         `json:"k" yaml:"k"`
	Centroids [][]float64 `json:"centroids" yaml:"centroids"`
}

// Dim returns the dimension of the centroids.
func (m *Model) Dim() int {
	if len(m.Centroids) == 0 {
		return 0
	}
	return len(m.Centroids[0])
}

// Digest identifies the exact bytes an artifact was loaded from.
type Digest struct {
	Artifact string `json:"artifact" yaml:"artifact"`
	Path     string `json:"path" yaml:"path"`
	Format   string `json:"format" yaml:"format"`
	SHA256   string `json:"sha256" yaml:"sha256"`
	Size     int64  `json:"size" yaml:"size"`
}

// On-disk layouts. Both accept the native layout written by this tool and the
// attribute names a scikit-learn export produces.
type scalerFile struct {
	Features     []FeatureScale `json:"features" yaml:"features"`
	FeatureNames []string       `json:"feature_names_in_,omitempty" yaml:"feature_names_in_,omitempty"`
	Mean         []float64      `json:"mean_,omitempty" yaml:"mean_,omitempty"`
	Scale        []float64      `json:"scale_,omitempty" yaml:"scale_,omitempty"`
}

type modelFile struct {
	Algorithm      string      `json:"algorithm" yaml:"algorithm"`
	K              int         `json:"k" yaml:"k"`
	Centroids      [][]float64 `json:"centroids" yaml:"centroids"`
	ClusterCenters [][]float64 `json:"cluster_centers_,omitempty" yaml:"cluster_centers_,omitempty"`
	NClusters      int         `json:"n_clusters,omitempty" yaml:"n_clusters,omitempty"`
}
