package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "go.yaml.in/yaml/v3"

	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
)

// File is the on-disk form of a custom schema.
type File struct {
	Name     string        `json:"name" yaml:"name"`
	Features []FeatureSpec `json:"features" yaml:"features"`
}

// Resolve returns a built-in schema ("core", "full") or loads one from path.
// An empty ref selects the core schema.
func Resolve(ref string) (*Schema, error) {
	switch strings.ToLower(strings.TrimSpace(ref)) {
	case "", "core":
		return Core(), nil
	case "full":
		return Full(), nil
	}
	return Load(ref)
}

// Load reads a schema from a JSON or YAML file, chosen by extension.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.Missing("schema", path, err)
		}
		return nil, err
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&f)
	}
	if err != nil {
		return nil, apperr.Corrupt("schema", path, "decode failed", err)
	}

	name := strings.TrimSpace(f.Name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	s, err := New(name, f.Features)
	if err != nil {
		return nil, apperr.Corrupt("schema", path, fmt.Sprint(err), nil)
	}
	return s, nil
}
