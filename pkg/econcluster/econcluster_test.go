package econcluster_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idlab-discover/EconCluster-cli/internal/artifact/artifacttest"
	"github.com/idlab-discover/EconCluster-cli/internal/schema"
	"github.com/idlab-discover/EconCluster-cli/pkg/econcluster"
)

func load(t *testing.T, labels ...econcluster.Label) *econcluster.Classifier {
	t.Helper()
	paths := artifacttest.WriteExample(t, schema.Core(), ".yaml")
	c, err := econcluster.Load(econcluster.Options{
		ScalerPath:    paths.Scaler,
		CentroidsPath: paths.Centroids,
		Labels:        labels,
	})
	require.NoError(t, err)
	return c
}

func TestClassify(t *testing.T) {
	c := load(t)
	assert.Equal(t, []string{"SafetySecurity", "Governance", "EconomicQuality", "LivingConditions"}, c.Features())

	res, err := c.Classify(map[string]float64{"SafetySecurity": 5, "Governance": 5, "EconomicQuality": 5, "LivingConditions": 5})
	require.NoError(t, err)
	assert.Equal(t, 1, res.ClusterID)
	assert.Equal(t, "Emerging/Berkembang", res.Label)

	_, err = c.Classify(map[string]float64{"SafetySecurity": 11, "Governance": 5, "EconomicQuality": 5, "LivingConditions": 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, econcluster.ErrValidation))
	assert.True(t, econcluster.IsRequestError(err))
	assert.Equal(t, "build", econcluster.FailedStage(err))
}

func TestLoad_LabelOverrides(t *testing.T) {
	c := load(t, econcluster.Label{ID: 2, Name: "High income"})

	res, err := c.Classify(map[string]float64{"SafetySecurity": 9, "Governance": 9, "EconomicQuality": 9, "LivingConditions": 9})
	require.NoError(t, err)
	assert.Equal(t, "High income", res.Label)
	assert.Equal(t, "Negara dengan Ekonomi Maju", res.Description)
	assert.Len(t, c.Labels(), 3)
}

func TestLoad_MissingArtifacts(t *testing.T) {
	dir := t.TempDir()
	_, err := econcluster.Load(econcluster.Options{
		ScalerPath:    filepath.Join(dir, "scaler.json"),
		CentroidsPath: filepath.Join(dir, "kmeans_model.json"),
	})
	assert.ErrorIs(t, err, econcluster.ErrArtifactMissing)
}

func TestCoverageAndBOM(t *testing.T) {
	c := load(t)

	cov := c.Coverage(map[string]float64{"SafetySecurity": 5})
	assert.Equal(t, 1, cov.Passed)
	assert.Equal(t, 4, cov.Total)
	assert.Len(t, cov.MissingRequired, 3)

	b, err := c.BOM("idn", "1")
	require.NoError(t, err)
	assert.Equal(t, "idn", b.Metadata.Component.Name)
}

func TestValidate(t *testing.T) {
	paths := artifacttest.WriteExample(t, schema.Core(), ".json")
	r, err := econcluster.Validate(econcluster.Options{ScalerPath: paths.Scaler, CentroidsPath: paths.Centroids})
	require.NoError(t, err)
	assert.True(t, r.Valid, r.Errors)
	assert.Equal(t, 3, r.K)

	_, err = econcluster.Validate(econcluster.Options{Schema: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.ErrorIs(t, err, econcluster.ErrArtifactMissing)
}
