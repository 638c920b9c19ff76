package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	yaml "go.yaml.in/yaml/v3"

	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
	"github.com/idlab-discover/EconCluster-cli/internal/artifact"
	"github.com/idlab-discover/EconCluster-cli/internal/label"
	"github.com/idlab-discover/EconCluster-cli/internal/schema"
	"github.com/idlab-discover/EconCluster-cli/internal/ui"
)

var (
	initDir    string
	initFormat string
	initForce  bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold example model artifacts and a config file",
	Long:  "Writes an example scaler (mean 5, scale 2 per indicator), a three-cluster centroid file and config/defaults.yaml pointing at them, so predict works out of the box. The example model is hand-built, not trained.",
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(viper.GetString("init.format")))
		switch format {
		case "json", "yaml":
		default:
			return apperr.Userf("invalid --format %q (expected json|yaml)", format)
		}
		schemaRef := viper.GetString("model.schema")
		if schemaRef == "" {
			schemaRef = "core"
		}
		sch, err := schema.Resolve(schemaRef)
		if err != nil {
			return err
		}

		dir := viper.GetString("init.dir")
		scalerPath := filepath.Join(dir, "models", "scaler."+format)
		modelPath := filepath.Join(dir, "models", "kmeans_model."+format)
		configPath := filepath.Join(dir, "config", "defaults.yaml")

		if !viper.GetBool("init.force") {
			for _, p := range []string{scalerPath, modelPath, configPath} {
				if _, err := os.Stat(p); err == nil {
					return apperr.Userf("%s already exists (use --force to overwrite)", p)
				}
			}
		}

		scaling, model := artifact.Example(sch)
		if err := artifact.WriteScaling(scalerPath, format, scaling); err != nil {
			return fmt.Errorf("write scaler: %w", err)
		}
		if err := artifact.WriteModel(modelPath, format, model); err != nil {
			return fmt.Errorf("write centroids: %w", err)
		}
		if err := writeDefaults(configPath, schemaRef, format); err != nil {
			return fmt.Errorf("write config: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, p := range []string{scalerPath, modelPath, configPath} {
			fmt.Fprintf(out, "%s %s\n", ui.GetCheckMark(), p)
		}
		return nil
	},
}

// defaultsFile is the layout of config/defaults.yaml. Artifact paths are
// relative to the directory the CLI runs from.
type defaultsFile struct {
	Model struct {
		Scaler    string `yaml:"scaler"`
		Centroids string `yaml:"centroids"`
		Format    string `yaml:"format"`
		Schema    string `yaml:"schema"`
	} `yaml:"model"`
	Labels  []label.Label     `yaml:"labels"`
	Predict map[string]string `yaml:"predict"`
}

func writeDefaults(path, schemaRef, format string) error {
	var cfg defaultsFile
	cfg.Model.Scaler = filepath.ToSlash(filepath.Join("models", "scaler."+format))
	cfg.Model.Centroids = filepath.ToSlash(filepath.Join("models", "kmeans_model."+format))
	cfg.Model.Format = "auto"
	cfg.Model.Schema = schemaRef
	cfg.Labels = label.Defaults()
	cfg.Predict = map[string]string{"log-level": "standard", "output": "text"}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func init() {
	initCmd.Flags().StringVar(&initDir, "dir", ".", "Directory to scaffold into")
	initCmd.Flags().StringVarP(&initFormat, "format", "f", "json", "Artifact format: json|yaml")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")

	viper.BindPFlag("init.dir", initCmd.Flags().Lookup("dir"))
	viper.BindPFlag("init.format", initCmd.Flags().Lookup("format"))
	viper.BindPFlag("init.force", initCmd.Flags().Lookup("force"))
}
