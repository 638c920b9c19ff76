// Package artifacttest writes model artifacts to a temporary directory for
// tests in other packages.
package artifacttest

import (
	"path/filepath"
	"testing"

	"github.com/idlab-discover/EconCluster-cli/internal/artifact"
	"github.com/idlab-discover/EconCluster-cli/internal/schema"
)

// Paths locates a written artifact pair.
type Paths struct {
	Scaler    string
	Centroids string
}

// Write stores s and m under t.TempDir() with the given extension
// (".json" or ".yaml").
func Write(t testing.TB, s *artifact.Scaling, m *artifact.Model, ext string) Paths {
	t.Helper()
	dir := t.TempDir()
	p := Paths{
		Scaler:    filepath.Join(dir, "scaler"+ext),
		Centroids: filepath.Join(dir, "kmeans_model"+ext),
	}
	if err := artifact.WriteScaling(p.Scaler, "auto", s); err != nil {
		t.Fatalf("WriteScaling: %v", err)
	}
	if err := artifact.WriteModel(p.Centroids, "auto", m); err != nil {
		t.Fatalf("WriteModel: %v", err)
	}
	return p
}

// WriteExample writes artifact.Example for sch.
func WriteExample(t testing.TB, sch *schema.Schema, ext string) Paths {
	t.Helper()
	s, m := artifact.Example(sch)
	return Write(t, s, m, ext)
}

// Store returns a store over the example artifacts for sch.
func Store(t testing.TB, sch *schema.Schema) *artifact.Store {
	t.Helper()
	p := WriteExample(t, sch, ".yaml")
	return artifact.NewStore(artifact.Options{ScalerPath: p.Scaler, CentroidsPath: p.Centroids, Schema: sch, K: 3})
}
