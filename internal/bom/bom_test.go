package bom_test

import (
	"strings"
	"testing"
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idlab-discover/EconCluster-cli/internal/artifact/artifacttest"
	"github.com/idlab-discover/EconCluster-cli/internal/bom"
	"github.com/idlab-discover/EconCluster-cli/internal/label"
	"github.com/idlab-discover/EconCluster-cli/internal/predictor"
	"github.com/idlab-discover/EconCluster-cli/internal/schema"
)

func loaded(t *testing.T) *predictor.Predictor {
	t.Helper()
	sch := schema.Core()
	labels, err := label.NewResolver(label.Defaults())
	require.NoError(t, err)
	p, err := predictor.New(sch, artifacttest.Store(t, sch), labels)
	require.NoError(t, err)
	return p
}

func TestBuild_ModelComponent(t *testing.T) {
	p := loaded(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	b, err := bom.Build(p, bom.Options{ToolVersion: "v1.2.3", Now: func() time.Time { return fixed }})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(b.SerialNumber, "urn:uuid:"))
	assert.Equal(t, "2026-01-02T03:04:05Z", b.Metadata.Timestamp)

	comp := b.Metadata.Component
	require.NotNil(t, comp)
	assert.Equal(t, cdx.ComponentTypeMachineLearningModel, comp.Type)
	assert.Equal(t, bom.DefaultModelName, comp.Name)
	require.NotNil(t, comp.Hashes)
	centroids := p.Digests()[1]
	assert.Equal(t, centroids.SHA256, (*comp.Hashes)[0].Value)
	assert.Equal(t, centroids.SHA256[:12], comp.Version)

	mp := comp.ModelCard.ModelParameters
	assert.Equal(t, "clustering", mp.Task)
	assert.Equal(t, "k-means", mp.ArchitectureFamily)
	require.Len(t, *mp.Inputs, 4)
	assert.Equal(t, "SafetySecurity: number in [0, 10]", (*mp.Inputs)[0].Format)
	assert.Equal(t, "cluster-id: integer in [0, 3)", (*mp.Outputs)[0].Format)
	assert.Contains(t, *comp.ModelCard.Considerations.UseCases, "cluster 1: Emerging/Berkembang")

	props := map[string]string{}
	for _, pr := range *comp.Properties {
		props[pr.Name] = pr.Value
	}
	assert.Equal(t, "core", props["econcluster:schema"])
	assert.Equal(t, "3", props["econcluster:k"])
	assert.Equal(t, "mean=5 scale=2", props["econcluster:scaler:Governance"])
	assert.Equal(t, "Advanced/Maju", props["econcluster:label:2"])

	tools := *b.Metadata.Tools.Components
	require.Len(t, tools, 1)
	assert.Equal(t, bom.ToolName, tools[0].Name)
	assert.Equal(t, "v1.2.3", tools[0].Version)
}

func TestBuild_ArtifactComponentsAndDependencies(t *testing.T) {
	p := loaded(t)

	b, err := bom.Build(p, bom.Options{Name: "idn-clusters", Version: "2024.1"})
	require.NoError(t, err)
	assert.Equal(t, "idn-clusters", b.Metadata.Component.Name)
	assert.Equal(t, "2024.1", b.Metadata.Component.Version)

	require.NotNil(t, b.Components)
	files := *b.Components
	require.Len(t, files, 2)
	assert.Equal(t, "artifact:scaler", files[0].BOMRef)
	assert.Equal(t, cdx.ComponentTypeFile, files[0].Type)
	assert.Equal(t, cdx.HashAlgoSHA256, (*files[1].Hashes)[0].Algorithm)

	deps := *b.Dependencies
	require.Len(t, deps, 1)
	assert.Equal(t, b.Metadata.Component.BOMRef, deps[0].Ref)
	assert.Equal(t, []string{"artifact:scaler", "artifact:centroids"}, *deps[0].Dependencies)
}
