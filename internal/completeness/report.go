package completeness

import (
	"strings"

	"github.com/idlab-discover/EconCluster-cli/internal/schema"
)

// PrintReport writes the report to the configured logger writer.
// If no logger writer is configured, it produces no output.
func PrintReport(r Report) {
	logf("score=%.1f%% (%d/%d)", r.Score*100, r.Passed, r.Total)

	if len(r.MissingRequired) > 0 {
		logf("missing required: %s", joinFeatures(r.MissingRequired))
	}
	if len(r.MissingOptional) > 0 {
		logf("defaulted: %s", joinFeatures(r.MissingOptional))
	}
}

func joinFeatures(fs []schema.Feature) string {
	var b strings.Builder
	for i, f := range fs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.String())
	}
	return b.String()
}
