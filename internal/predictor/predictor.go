// Package predictor composes the inference pipeline:
// build -> standardize -> assign -> resolve.
package predictor

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
	"github.com/idlab-discover/EconCluster-cli/internal/artifact"
	"github.com/idlab-discover/EconCluster-cli/internal/cluster"
	"github.com/idlab-discover/EconCluster-cli/internal/label"
	"github.com/idlab-discover/EconCluster-cli/internal/schema"
	"github.com/idlab-discover/EconCluster-cli/internal/standardize"
)

// Result is the outcome of one prediction. Vectors are in schema order.
type Result struct {
	RequestID   string `json:"request_id" yaml:"request_id"`
	ClusterID   int    `json:"cluster_id" yaml:"cluster_id"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`

	Features           []string  `json:"features" yaml:"features"`
	RawVector          []float64 `json:"raw_vector" yaml:"raw_vector"`
	StandardizedVector []float64 `json:"standardized_vector" yaml:"standardized_vector"`
	// Squared distance to every centroid, indexed by cluster id.
	Distances []float64 `json:"distances" yaml:"distances"`
	// Indicators that were absent from the request and filled from defaults.
	Defaulted []string `json:"defaulted,omitempty" yaml:"defaulted,omitempty"`
}

// Predictor holds the immutable model state shared by every request. It is
// safe for concurrent use.
type Predictor struct {
	schema   *schema.Schema
	scaling  *artifact.Scaling
	model    *artifact.Model
	labels   *label.Resolver
	digests  []artifact.Digest
	newID    func() string
	loadTime time.Duration
}

// New loads the store (once) and checks that schema, artifacts and label
// table agree. Any error here is fatal: no prediction can be served.
func New(s *schema.Schema, store *artifact.Store, labels *label.Resolver) (*Predictor, error) {
	start := time.Now()
	scaling, model, err := store.Load()
	if err != nil {
		return nil, err
	}
	if scaling.Len() != s.Len() {
		return nil, apperr.Corrupt(artifact.ArtifactScaler, store.Options().ScalerPath,
			fmt.Sprintf("feature count %d, schema %q expects %d", scaling.Len(), s.Name(), s.Len()), nil)
	}
	if model.K != labels.K() {
		return nil, apperr.Corrupt(artifact.ArtifactCentroids, store.Options().CentroidsPath,
			fmt.Sprintf("model has k=%d, label table has %d clusters", model.K, labels.K()), nil)
	}
	p := &Predictor{
		schema:   s,
		scaling:  scaling,
		model:    model,
		labels:   labels,
		digests:  store.Digests(),
		newID:    uuid.NewString,
		loadTime: time.Since(start),
	}
	logf("", "ready: schema=%s features=%d k=%d", s.Name(), s.Len(), model.K)
	return p, nil
}

// Predict scores one request. On failure it returns a *apperr.StageError
// naming the failed stage and no partial result.
func (p *Predictor) Predict(raw map[string]float64) (*Result, error) {
	id := p.newID()

	vec, err := p.schema.Build(raw)
	if err != nil {
		return nil, p.fail(id, apperr.StageBuild, err)
	}
	sv, err := standardize.Transform(vec, p.scaling)
	if err != nil {
		return nil, p.fail(id, apperr.StageStandardize, err)
	}
	cid, err := cluster.Assign(sv, p.model)
	if err != nil {
		return nil, p.fail(id, apperr.StageAssign, err)
	}
	dists, err := cluster.Distances(sv, p.model)
	if err != nil {
		return nil, p.fail(id, apperr.StageAssign, err)
	}
	l, err := p.labels.Resolve(cid)
	if err != nil {
		return nil, p.fail(id, apperr.StageResolve, err)
	}

	logf(id, "cluster=%d label=%q", cid, l.Name)
	return &Result{
		RequestID:          id,
		ClusterID:          cid,
		Label:              l.Name,
		Description:        l.Description,
		Features:           p.schema.Names(),
		RawVector:          vec,
		StandardizedVector: sv,
		Distances:          dists,
		Defaulted:          p.schema.Defaulted(raw),
	}, nil
}

func (p *Predictor) fail(id, stage string, err error) error {
	logf(id, "%s failed: %v", stage, err)
	return &apperr.StageError{RequestID: id, Stage: stage, Err: err}
}

// Schema returns the indicator schema requests are validated against.
func (p *Predictor) Schema() *schema.Schema { return p.schema }

// Scaling returns the loaded standardization parameters.
func (p *Predictor) Scaling() *artifact.Scaling { return p.scaling }

// Model returns the loaded centroids.
func (p *Predictor) Model() *artifact.Model { return p.model }

// Labels returns the cluster label resolver.
func (p *Predictor) Labels() *label.Resolver { return p.labels }

// Digests returns the digests of the artifacts the predictor was built from.
func (p *Predictor) Digests() []artifact.Digest {
	out := make([]artifact.Digest, len(p.digests))
	copy(out, p.digests)
	return out
}

// LoadTime is how long New spent waiting for the artifacts.
func (p *Predictor) LoadTime() time.Duration { return p.loadTime }
