package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// ArtifactError reports a persisted model artifact that could not be loaded.
// Kind is either ErrArtifactMissing or ErrArtifactCorrupt.
type ArtifactError struct {
	Kind     error
	Artifact string // "scaler", "centroids", "schema"
	Path     string
	Reason   string
	Err      error
}

func (e *ArtifactError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())
	sb.WriteString(": ")
	sb.WriteString(e.Artifact)
	if e.Path != "" {
		fmt.Fprintf(&sb, " (%s)", e.Path)
	}
	if e.Reason != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Reason)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *ArtifactError) Is(target error) bool { return target == e.Kind }

func (e *ArtifactError) Unwrap() error { return e.Err }

// Missing builds an ErrArtifactMissing error for the named artifact.
func Missing(artifact, path string, err error) error {
	return &ArtifactError{Kind: ErrArtifactMissing, Artifact: artifact, Path: path, Err: err}
}

// Corrupt builds an ErrArtifactCorrupt error for the named artifact.
func Corrupt(artifact, path, reason string, err error) error {
	return &ArtifactError{Kind: ErrArtifactCorrupt, Artifact: artifact, Path: path, Reason: reason, Err: err}
}

// ValidationError reports a single rejected indicator value.
type ValidationError struct {
	Feature    string
	Value      float64
	Min, Max   float64
	Reason     string
	Suggestion string // closest known feature name, for unknown names
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid indicator %q: %s", e.Feature, e.Reason)
	if e.Min != 0 || e.Max != 0 {
		msg += fmt.Sprintf(" (expected %g..%g)", e.Min, e.Max)
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// DimensionError reports vectors whose lengths do not line up.
type DimensionError struct {
	Stage string
	Got   int
	Want  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: dimension mismatch: got %d values, want %d", e.Stage, e.Got, e.Want)
}

func (e *DimensionError) Is(target error) bool { return target == ErrDimensionMismatch }

// UnknownClusterError reports a cluster id outside of the label table.
type UnknownClusterError struct {
	ID int
	K  int
}

func (e *UnknownClusterError) Error() string {
	return fmt.Sprintf("cluster id %d outside of [0,%d)", e.ID, e.K)
}

func (e *UnknownClusterError) Is(target error) bool { return target == ErrUnknownCluster }

// Stage names used by StageError.
const (
	StageBuild       = "build"
	StageStandardize = "standardize"
	StageAssign      = "assign"
	StageResolve     = "resolve"
)

// StageError tags a prediction failure with the pipeline stage that raised it.
type StageError struct {
	RequestID string
	Stage     string
	Err       error
}

func (e *StageError) Error() string { return e.Stage + ": " + e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

// FailedStage returns the stage recorded on err, or "" when err carries none.
func FailedStage(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

// RequestID returns the request id recorded on err, or "".
func RequestID(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.RequestID
	}
	return ""
}

// IsFatal reports whether err means the model could not be loaded at all.
func IsFatal(err error) bool {
	return errors.Is(err, ErrArtifactMissing) || errors.Is(err, ErrArtifactCorrupt)
}

// IsRequest reports whether err rejects a single prediction request and can
// be surfaced to the caller for correction.
func IsRequest(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrDimensionMismatch)
}
