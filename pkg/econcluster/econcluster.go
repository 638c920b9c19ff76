// Package econcluster is the Go API behind econcluster-cli: load a persisted
// scaler and k-means model once, then classify indicator mappings from any
// number of goroutines.
package econcluster

import (
	cdx "github.com/CycloneDX/cyclonedx-go"

	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
	"github.com/idlab-discover/EconCluster-cli/internal/artifact"
	"github.com/idlab-discover/EconCluster-cli/internal/bom"
	"github.com/idlab-discover/EconCluster-cli/internal/completeness"
	"github.com/idlab-discover/EconCluster-cli/internal/label"
	"github.com/idlab-discover/EconCluster-cli/internal/predictor"
	"github.com/idlab-discover/EconCluster-cli/internal/schema"
	"github.com/idlab-discover/EconCluster-cli/internal/validator"
)

type (
	Result           = predictor.Result
	Label            = label.Label
	Coverage         = completeness.Report
	ValidationResult = validator.ValidationResult
)

// Errors matched with errors.Is.
var (
	ErrArtifactMissing   = apperr.ErrArtifactMissing
	ErrArtifactCorrupt   = apperr.ErrArtifactCorrupt
	ErrValidation        = apperr.ErrValidation
	ErrDimensionMismatch = apperr.ErrDimensionMismatch
	ErrUnknownCluster    = apperr.ErrUnknownCluster
)

// Options locates the model artifacts and selects the indicator schema.
type Options struct {
	ScalerPath    string
	CentroidsPath string
	// Format is "json", "yaml" or "auto" (by extension).
	Format string
	// Schema is "core" (default), "full" or the path of a schema file.
	Schema string
	// Labels overrides entries of the default label table by id.
	Labels []Label
}

func (o Options) resolve() (artifact.Options, []Label, error) {
	sch, err := schema.Resolve(o.Schema)
	if err != nil {
		return artifact.Options{}, nil, err
	}
	format := o.Format
	if format == "" {
		format = "auto"
	}
	return artifact.Options{
		ScalerPath:    o.ScalerPath,
		CentroidsPath: o.CentroidsPath,
		Format:        format,
		Schema:        sch,
	}, label.Merge(label.Defaults(), o.Labels), nil
}

// Classifier wraps a loaded model. It is safe for concurrent use.
type Classifier struct {
	p *predictor.Predictor
}

// Load reads and cross-checks the artifacts. Errors match ErrArtifactMissing
// or ErrArtifactCorrupt.
func Load(opts Options) (*Classifier, error) {
	aopts, labels, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	resolver, err := label.NewResolver(labels)
	if err != nil {
		return nil, err
	}
	aopts.K = resolver.K()
	p, err := predictor.New(aopts.Schema, artifact.NewStore(aopts), resolver)
	if err != nil {
		return nil, err
	}
	return &Classifier{p: p}, nil
}

// Classify assigns raw to a cluster. A rejected request leaves the
// classifier usable; FailedStage reports where it stopped.
func (c *Classifier) Classify(raw map[string]float64) (*Result, error) {
	return c.p.Predict(raw)
}

// Coverage reports which schema indicators raw supplies.
func (c *Classifier) Coverage(raw map[string]float64) Coverage {
	return completeness.Check(c.p.Schema(), raw)
}

// Features returns the indicator names in schema order.
func (c *Classifier) Features() []string { return c.p.Schema().Names() }

// Labels returns the label table in id order.
func (c *Classifier) Labels() []Label { return c.p.Labels().All() }

// BOM describes the loaded model as a CycloneDX ML-BOM.
func (c *Classifier) BOM(name, version string) (*cdx.BOM, error) {
	return bom.Build(c.p, bom.Options{Name: name, Version: version, ToolVersion: bom.ToolVersion()})
}

// Validate checks artifacts without keeping them loaded.
func Validate(opts Options) (ValidationResult, error) {
	aopts, labels, err := opts.resolve()
	if err != nil {
		return ValidationResult{}, err
	}
	return validator.ValidateArtifacts(aopts, labels), nil
}

// FailedStage returns the pipeline stage ("build", "standardize", "assign",
// "resolve") that rejected a Classify call, or "".
func FailedStage(err error) string { return apperr.FailedStage(err) }

// IsRequestError reports whether err rejected a single request rather than
// the model as a whole.
func IsRequestError(err error) bool { return apperr.IsRequest(err) }
