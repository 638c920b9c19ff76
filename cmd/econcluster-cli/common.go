package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"

	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
	"github.com/idlab-discover/EconCluster-cli/internal/artifact"
	"github.com/idlab-discover/EconCluster-cli/internal/bom"
	"github.com/idlab-discover/EconCluster-cli/internal/completeness"
	"github.com/idlab-discover/EconCluster-cli/internal/label"
	"github.com/idlab-discover/EconCluster-cli/internal/predictor"
	"github.com/idlab-discover/EconCluster-cli/internal/schema"
	"github.com/idlab-discover/EconCluster-cli/internal/server"
	"github.com/idlab-discover/EconCluster-cli/internal/validator"
)

// logLevel resolves <command>.log-level from config, env or flag.
func logLevel(command string) (string, error) {
	level := strings.ToLower(strings.TrimSpace(viper.GetString(command + ".log-level")))
	if level == "" {
		level = "standard"
	}
	switch level {
	case "quiet", "standard", "debug":
		return level, nil
	default:
		return "", apperr.Userf("invalid --log-level %q (expected quiet|standard|debug)", level)
	}
}

// wireLoggers points the package loggers at w in debug mode and silences
// them otherwise.
func wireLoggers(level string, w io.Writer) {
	if level != "debug" {
		w = nil
	}
	artifact.SetLogger(w)
	predictor.SetLogger(w)
	completeness.SetLogger(w)
	bom.SetLogger(w)
	validator.SetLogger(w)
	server.SetLogger(w)
}

// modelOptions builds the artifact options shared by every command from the
// model.* keys.
func modelOptions() (artifact.Options, error) {
	sch, err := schema.Resolve(viper.GetString("model.schema"))
	if err != nil {
		return artifact.Options{}, err
	}
	format := viper.GetString("model.format")
	if format == "" {
		format = "auto"
	}
	opts := artifact.Options{
		ScalerPath:    viper.GetString("model.scaler"),
		CentroidsPath: viper.GetString("model.centroids"),
		Format:        format,
		Schema:        sch,
	}
	if opts.ScalerPath == "" || opts.CentroidsPath == "" {
		return opts, apperr.User("both --scaler and --centroids are required")
	}
	return opts, nil
}

// loadLabels returns the default label table with any `labels` overrides
// from the config file applied.
func loadLabels() ([]label.Label, error) {
	var overrides []label.Label
	if err := viper.UnmarshalKey("labels", &overrides); err != nil {
		return nil, fmt.Errorf("config labels: %w", err)
	}
	return label.Merge(label.Defaults(), overrides), nil
}

// loadPredictor loads the artifacts once and returns a ready predictor.
func loadPredictor() (*predictor.Predictor, error) {
	opts, err := modelOptions()
	if err != nil {
		return nil, err
	}
	labels, err := loadLabels()
	if err != nil {
		return nil, err
	}
	resolver, err := label.NewResolver(labels)
	if err != nil {
		return nil, apperr.Userf("config labels: %v", err)
	}
	opts.K = resolver.K()
	return predictor.New(opts.Schema, artifact.NewStore(opts), resolver)
}
