// Package label maps cluster ids to the fixed economic classifications.
package label

import (
	"fmt"
	"sort"
	"strings"

	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
)

// Label is the human-readable classification of one cluster.
type Label struct {
	ID          int    `json:"id" yaml:"id" mapstructure:"id"`
	Name        string `json:"name" yaml:"name" mapstructure:"name"`
	Description string `json:"description" yaml:"description" mapstructure:"description"`
}

// Defaults is the label table shipped with the three-cluster model.
func Defaults() []Label {
	return []Label{
		{ID: 0, Name: "Developing/Tertinggal", Description: "Negara dengan Ekonomi Tertinggal"},
		{ID: 1, Name: "Emerging/Berkembang", Description: "Negara dengan Ekonomi Berkembang"},
		{ID: 2, Name: "Advanced/Maju", Description: "Negara dengan Ekonomi Maju"},
	}
}

// Resolver is an immutable id -> label table.
type Resolver struct {
	labels []Label
}

// NewResolver checks that labels cover ids 0..K-1 exactly once.
func NewResolver(labels []Label) (*Resolver, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("label table is empty")
	}
	sorted := make([]Label, len(labels))
	copy(sorted, labels)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for i, l := range sorted {
		if l.ID != i {
			return nil, fmt.Errorf("label table must cover ids 0..%d exactly once (found id %d at position %d)", len(sorted)-1, l.ID, i)
		}
		if strings.TrimSpace(l.Name) == "" {
			return nil, fmt.Errorf("label %d has no name", l.ID)
		}
	}
	return &Resolver{labels: sorted}, nil
}

// K returns the number of clusters the table knows.
func (r *Resolver) K() int { return len(r.labels) }

// Resolve returns the label for id, or an UnknownClusterError outside [0,K).
func (r *Resolver) Resolve(id int) (Label, error) {
	if id < 0 || id >= len(r.labels) {
		return Label{}, &apperr.UnknownClusterError{ID: id, K: len(r.labels)}
	}
	return r.labels[id], nil
}

// All returns the table in id order.
func (r *Resolver) All() []Label {
	out := make([]Label, len(r.labels))
	copy(out, r.labels)
	return out
}

// Merge overlays overrides onto base by id. Empty fields keep the base value.
func Merge(base, overrides []Label) []Label {
	out := make([]Label, len(base))
	copy(out, base)
	byID := make(map[int]int, len(out))
	for i, l := range out {
		byID[l.ID] = i
	}
	for _, o := range overrides {
		i, ok := byID[o.ID]
		if !ok {
			out = append(out, o)
			byID[o.ID] = len(out) - 1
			continue
		}
		if strings.TrimSpace(o.Name) != "" {
			out[i].Name = o.Name
		}
		if strings.TrimSpace(o.Description) != "" {
			out[i].Description = o.Description
		}
	}
	return out
}
