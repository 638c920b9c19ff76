// Package artifact loads the persisted scaler and cluster model once per
// process and hands out the immutable result.
package artifact

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
	"github.com/idlab-discover/EconCluster-cli/internal/schema"
)

// Options configures where artifacts live and what they are checked against.
type Options struct {
	ScalerPath    string
	CentroidsPath string
	// Format is "json", "yaml" or "auto" (by extension) for both files.
	Format string
	// Schema, when set, must match the scaler feature names and order.
	Schema *schema.Schema
	// K, when positive, is the number of clusters the label table knows.
	K int
}

// Store owns the loaded artifacts for the lifetime of the process.
// Load may be called from any goroutine; the files are read exactly once.
type Store struct {
	opts Options

	once    sync.Once
	scaling *Scaling
	model   *Model
	digests []Digest
	err     error
}

// NewStore returns a store for opts. Nothing is read until the first Load.
func NewStore(opts Options) *Store {
	return &Store{opts: opts}
}

// Load reads, decodes and cross-checks both artifacts on the first call and
// returns the cached outcome on every later call.
func (s *Store) Load() (*Scaling, *Model, error) {
	s.once.Do(func() {
		s.scaling, s.model, s.digests, s.err = load(s.opts)
	})
	return s.scaling, s.model, s.err
}

// Digests returns the digests of the loaded files in (scaler, centroids)
// order, or nil when loading failed. It loads the store if needed.
func (s *Store) Digests() []Digest {
	if _, _, err := s.Load(); err != nil || s.digests == nil {
		return nil
	}
	out := make([]Digest, len(s.digests))
	copy(out, s.digests)
	return out
}

// Options returns the options the store was created with.
func (s *Store) Options() Options { return s.opts }

func load(opts Options) (*Scaling, *Model, []Digest, error) {
	var (
		scaling *Scaling
		model   *Model
		digests = make([]Digest, 2)
		g       errgroup.Group
	)

	// Each read records its own error so that, when both fail, the scaler
	// error is the one reported.
	errs := make([]error, 2)
	g.Go(func() error {
		data, d, err := readArtifact(ArtifactScaler, opts.ScalerPath, opts.Format)
		if err == nil {
			digests[0] = d
			scaling, err = decodeScaling(data, d)
		}
		errs[0] = err
		return nil
	})
	g.Go(func() error {
		data, d, err := readArtifact(ArtifactCentroids, opts.CentroidsPath, opts.Format)
		if err == nil {
			digests[1] = d
			model, err = decodeModel(data, d)
		}
		errs[1] = err
		return nil
	})
	_ = g.Wait()
	for _, err := range errs {
		if err != nil {
			logf("load failed: %v", err)
			return nil, nil, nil, err
		}
	}

	if err := crossCheck(opts, scaling, model); err != nil {
		logf("load failed: %v", err)
		return nil, nil, nil, err
	}

	logf("loaded %s (%s) and %s (%s): %d features, k=%d",
		digests[0].Path, short(digests[0].SHA256), digests[1].Path, short(digests[1].SHA256), scaling.Len(), model.K)
	return scaling, model, digests, nil
}

func crossCheck(opts Options, scaling *Scaling, model *Model) error {
	if sch := opts.Schema; sch != nil {
		names := sch.Names()
		if scaling.Len() != len(names) {
			return apperr.Corrupt(ArtifactScaler, opts.ScalerPath,
				fmt.Sprintf("feature count %d, schema %q expects %d", scaling.Len(), sch.Name(), len(names)), nil)
		}
		for i, f := range scaling.Features {
			if f.Name != names[i] {
				return apperr.Corrupt(ArtifactScaler, opts.ScalerPath,
					fmt.Sprintf("feature %d is %q, schema %q expects %q", i, f.Name, sch.Name(), names[i]), nil)
			}
		}
	}
	if model.Dim() != scaling.Len() {
		return apperr.Corrupt(ArtifactCentroids, opts.CentroidsPath,
			fmt.Sprintf("centroid dimension %d, scaler has %d features", model.Dim(), scaling.Len()), nil)
	}
	if opts.K > 0 && model.K != opts.K {
		return apperr.Corrupt(ArtifactCentroids, opts.CentroidsPath,
			fmt.Sprintf("model has k=%d, label table has %d clusters", model.K, opts.K), nil)
	}
	return nil
}

func short(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}
