package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	yaml "go.yaml.in/yaml/v3"
)

// WriteScaling persists s in the native layout. The Constant flag is derived
// on load and is not written.
func WriteScaling(path, format string, s *Scaling) error {
	out := scalerFile{Features: make([]FeatureScale, len(s.Features))}
	for i, f := range s.Features {
		f.Constant = false
		out.Features[i] = f
	}
	return writeFile(path, format, out)
}

// WriteModel persists m in the native layout.
func WriteModel(path, format string, m *Model) error {
	return writeFile(path, format, modelFile{Algorithm: m.Algorithm, K: m.K, Centroids: m.Centroids})
}

func writeFile(path, format string, v any) error {
	actual, err := ResolveFormat(path, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	var data []byte
	if actual == "yaml" {
		data, err = yaml.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}
