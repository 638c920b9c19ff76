// Package bom describes a loaded clustering model as a CycloneDX ML-BOM.
package bom

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/google/uuid"

	"github.com/idlab-discover/EconCluster-cli/internal/artifact"
	"github.com/idlab-discover/EconCluster-cli/internal/label"
	"github.com/idlab-discover/EconCluster-cli/internal/schema"
)

// Source is the loaded model state a BOM is built from. *predictor.Predictor
// satisfies it.
type Source interface {
	Schema() *schema.Schema
	Scaling() *artifact.Scaling
	Model() *artifact.Model
	Labels() *label.Resolver
	Digests() []artifact.Digest
}

type Options struct {
	// Name of the model component. Defaults to DefaultModelName.
	Name string
	// Version of the model component. Defaults to the first 12 hex digits of
	// the centroids digest.
	Version     string
	ToolVersion string
	Now         func() time.Time
}

const (
	DefaultModelName = "econcluster-kmeans"
	propPrefix       = "econcluster:"
)

// Build returns a BOM whose metadata component is the clustering model and
// whose components are the artifact files it was loaded from.
func Build(src Source, opts Options) (*cdx.BOM, error) {
	s, sc, m, labels := src.Schema(), src.Scaling(), src.Model(), src.Labels()
	if s == nil || sc == nil || m == nil || labels == nil {
		return nil, fmt.Errorf("bom: model is not loaded")
	}
	digests := src.Digests()
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	comp := &cdx.Component{
		Type:        cdx.ComponentTypeMachineLearningModel,
		BOMRef:      "urn:uuid:" + uuid.New().String(),
		Name:        firstNonEmpty(opts.Name, DefaultModelName),
		Version:     firstNonEmpty(opts.Version, modelVersion(digests)),
		Description: fmt.Sprintf("K-means clustering of %d development indicators into %d clusters", s.Len(), m.K),
		ModelCard:   modelCard(s, m, labels),
		Properties:  properties(s, sc, m, labels),
	}
	if h := hashFor(digests, artifact.ArtifactCentroids); h != nil {
		comp.Hashes = &[]cdx.Hash{*h}
	}

	bom := cdx.NewBOM()
	bom.Metadata = &cdx.Metadata{Component: comp}
	addSerialNumber(bom)
	addTimestamp(bom, now())
	addTool(bom, opts.ToolVersion)

	var files []cdx.Component
	var refs []string
	for _, d := range digests {
		ref := "artifact:" + d.Artifact
		files = append(files, cdx.Component{
			Type:    cdx.ComponentTypeFile,
			BOMRef:  ref,
			Name:    filepath.Base(d.Path),
			Version: shortDigest(d.SHA256),
			Hashes:  &[]cdx.Hash{{Algorithm: cdx.HashAlgoSHA256, Value: d.SHA256}},
			Properties: &[]cdx.Property{
				{Name: propPrefix + "artifact", Value: d.Artifact},
				{Name: propPrefix + "format", Value: d.Format},
				{Name: propPrefix + "size", Value: strconv.FormatInt(d.Size, 10)},
			},
		})
		refs = append(refs, ref)
	}
	if len(files) > 0 {
		bom.Components = &files
		bom.Dependencies = &[]cdx.Dependency{{Ref: comp.BOMRef, Dependencies: &refs}}
	}

	logf("built BOM for %s@%s with %d artifact(s)", comp.Name, comp.Version, len(files))
	return bom, nil
}

func modelCard(s *schema.Schema, m *artifact.Model, labels *label.Resolver) *cdx.MLModelCard {
	inputs := make([]cdx.MLInputOutputParameters, 0, s.Len())
	for _, f := range s.Features() {
		inputs = append(inputs, cdx.MLInputOutputParameters{
			Format: fmt.Sprintf("%s: number in [%g, %g]", f.Name, f.Min, f.Max),
		})
	}
	outputs := []cdx.MLInputOutputParameters{
		{Format: fmt.Sprintf("cluster-id: integer in [0, %d)", m.K)},
		{Format: "cluster-label"},
	}

	useCases := make([]string, 0, labels.K())
	for _, l := range labels.All() {
		useCases = append(useCases, fmt.Sprintf("cluster %d: %s", l.ID, l.Name))
	}
	limits := []string{
		"indicator values outside the schema domain are rejected",
		"missing optional indicators take their schema default before standardization",
	}

	return &cdx.MLModelCard{
		ModelParameters: &cdx.MLModelParameters{
			Approach:           &cdx.MLModelParametersApproach{Type: cdx.MLModelParametersApproachType("unsupervised")},
			Task:               "clustering",
			ArchitectureFamily: "k-means",
			ModelArchitecture:  "nearest centroid by squared euclidean distance over z-score standardized indicators",
			Inputs:             &inputs,
			Outputs:            &outputs,
		},
		Considerations: &cdx.MLModelCardConsiderations{
			UseCases:             &useCases,
			TechnicalLimitations: &limits,
		},
	}
}

func properties(s *schema.Schema, sc *artifact.Scaling, m *artifact.Model, labels *label.Resolver) *[]cdx.Property {
	props := []cdx.Property{
		{Name: propPrefix + "schema", Value: s.Name()},
		{Name: propPrefix + "algorithm", Value: m.Algorithm},
		{Name: propPrefix + "k", Value: strconv.Itoa(m.K)},
		{Name: propPrefix + "features", Value: strings.Join(s.Names(), ",")},
	}
	for _, f := range sc.Features {
		props = append(props, cdx.Property{
			Name:  propPrefix + "scaler:" + f.Name,
			Value: fmt.Sprintf("mean=%g scale=%g", f.Mean, f.Scale),
		})
	}
	for _, l := range labels.All() {
		props = append(props, cdx.Property{Name: fmt.Sprintf("%slabel:%d", propPrefix, l.ID), Value: l.Name})
	}
	return &props
}

func hashFor(digests []artifact.Digest, name string) *cdx.Hash {
	for _, d := range digests {
		if d.Artifact == name && d.SHA256 != "" {
			return &cdx.Hash{Algorithm: cdx.HashAlgoSHA256, Value: d.SHA256}
		}
	}
	return nil
}

func modelVersion(digests []artifact.Digest) string {
	for _, d := range digests {
		if d.Artifact == artifact.ArtifactCentroids {
			return shortDigest(d.SHA256)
		}
	}
	return "unversioned"
}

func shortDigest(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return strings.TrimSpace(a)
	}
	return b
}
