package artifact

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	yaml "go.yaml.in/yaml/v3"

	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
)

// Artifact names used in errors and digests.
const (
	ArtifactScaler    = "scaler"
	ArtifactCentroids = "centroids"
)

// ResolveFormat picks "json" or "yaml" for path. format may be "json",
// "yaml", or "auto"/"" to decide from the file extension.
func ResolveFormat(path, format string) (string, error) {
	actual := strings.ToLower(strings.TrimSpace(format))
	switch actual {
	case "", "auto":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			return "yaml", nil
		default:
			return "json", nil
		}
	case "json", "yaml":
		return actual, nil
	case "yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("unsupported artifact format: %q", format)
	}
}

// readArtifact reads path fully and records its digest. A missing file is
// reported as ErrArtifactMissing, any other read failure as
// ErrArtifactCorrupt.
func readArtifact(artifact, path, format string) ([]byte, Digest, error) {
	if strings.TrimSpace(path) == "" {
		return nil, Digest{}, apperr.Missing(artifact, path, fmt.Errorf("no path configured"))
	}
	fmtName, err := ResolveFormat(path, format)
	if err != nil {
		return nil, Digest{}, apperr.Corrupt(artifact, path, "", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, Digest{}, apperr.Missing(artifact, path, err)
		}
		return nil, Digest{}, apperr.Corrupt(artifact, path, "read failed", err)
	}
	sum := sha256.Sum256(data)
	return data, Digest{
		Artifact: artifact,
		Path:     path,
		Format:   fmtName,
		SHA256:   hex.EncodeToString(sum[:]),
		Size:     int64(len(data)),
	}, nil
}

func decodeInto(data []byte, format string, v any) error {
	if format == "yaml" {
		return yaml.NewDecoder(bytes.NewReader(data)).Decode(v)
	}
	return json.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// decodeScaling decodes and normalizes a scaler artifact. Zero scales are
// marked constant here, so inference never divides by zero.
func decodeScaling(data []byte, d Digest) (*Scaling, error) {
	var f scalerFile
	if err := decodeInto(data, d.Format, &f); err != nil {
		return nil, apperr.Corrupt(ArtifactScaler, d.Path, "decode failed", err)
	}

	features := f.Features
	if len(features) == 0 && len(f.Mean) > 0 {
		if len(f.FeatureNames) != len(f.Mean) || len(f.Scale) != len(f.Mean) {
			return nil, apperr.Corrupt(ArtifactScaler, d.Path,
				fmt.Sprintf("feature_names_in_/mean_/scale_ lengths differ (%d/%d/%d)", len(f.FeatureNames), len(f.Mean), len(f.Scale)), nil)
		}
		for i := range f.Mean {
			features = append(features, FeatureScale{Name: f.FeatureNames[i], Mean: f.Mean[i], Scale: f.Scale[i]})
		}
	}
	if len(features) == 0 {
		return nil, apperr.Corrupt(ArtifactScaler, d.Path, "no features", nil)
	}

	out := &Scaling{Features: make([]FeatureScale, len(features))}
	for i, fs := range features {
		fs.Name = strings.TrimSpace(fs.Name)
		switch {
		case fs.Name == "":
			return nil, apperr.Corrupt(ArtifactScaler, d.Path, fmt.Sprintf("feature %d has no name", i), nil)
		case !finite(fs.Mean):
			return nil, apperr.Corrupt(ArtifactScaler, d.Path, fmt.Sprintf("feature %q has non-finite mean", fs.Name), nil)
		case !finite(fs.Scale) || fs.Scale < 0:
			return nil, apperr.Corrupt(ArtifactScaler, d.Path, fmt.Sprintf("feature %q has invalid scale %g", fs.Name, fs.Scale), nil)
		}
		fs.Constant = fs.Scale == 0
		if fs.Constant {
			logf("feature %s has zero scale; standardized value fixed at 0", fs.Name)
		}
		out.Features[i] = fs
	}
	return out, nil
}

func decodeModel(data []byte, d Digest) (*Model, error) {
	var f modelFile
	if err := decodeInto(data, d.Format, &f); err != nil {
		return nil, apperr.Corrupt(ArtifactCentroids, d.Path, "decode failed", err)
	}

	m := &Model{Algorithm: strings.ToLower(strings.TrimSpace(f.Algorithm)), K: f.K, Centroids: f.Centroids}
	if len(m.Centroids) == 0 {
		m.Centroids = f.ClusterCenters
	}
	if m.K == 0 {
		m.K = f.NClusters
	}
	switch m.Algorithm {
	case "", "kmeans", "k-means":
		m.Algorithm = "kmeans"
	case "nearest-centroid":
	default:
		return nil, apperr.Corrupt(ArtifactCentroids, d.Path, fmt.Sprintf("unsupported algorithm %q", f.Algorithm), nil)
	}
	if len(m.Centroids) == 0 {
		return nil, apperr.Corrupt(ArtifactCentroids, d.Path, "no centroids", nil)
	}
	if m.K == 0 {
		m.K = len(m.Centroids)
	}
	if m.K != len(m.Centroids) {
		return nil, apperr.Corrupt(ArtifactCentroids, d.Path, fmt.Sprintf("k=%d but %d centroids", m.K, len(m.Centroids)), nil)
	}
	dim := len(m.Centroids[0])
	if dim == 0 {
		return nil, apperr.Corrupt(ArtifactCentroids, d.Path, "centroids are empty vectors", nil)
	}
	for i, c := range m.Centroids {
		if len(c) != dim {
			return nil, apperr.Corrupt(ArtifactCentroids, d.Path, fmt.Sprintf("centroid %d has %d values, want %d", i, len(c), dim), nil)
		}
		for j, v := range c {
			if !finite(v) {
				return nil, apperr.Corrupt(ArtifactCentroids, d.Path, fmt.Sprintf("centroid %d value %d is not finite", i, j), nil)
			}
		}
	}
	return m, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
