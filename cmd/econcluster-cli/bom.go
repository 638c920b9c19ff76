package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
	"github.com/idlab-discover/EconCluster-cli/internal/bom"
	bomio "github.com/idlab-discover/EconCluster-cli/internal/io"
	"github.com/idlab-discover/EconCluster-cli/internal/ui"
)

var (
	bomOutput       string
	bomFormat       string
	bomSpec         string
	bomName         string
	bomModelVersion string
	bomLogLevel     string
)

var bomCmd = &cobra.Command{
	Use:   "bom",
	Short: "Export a CycloneDX ML-BOM describing the clustering model",
	Long:  "Builds a CycloneDX machine-learning BOM for the loaded model: a model card (task, architecture, inputs and outputs), the scaling and label properties, and the SHA-256 hashes of the artifact files.",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logLevel("bom")
		if err != nil {
			return err
		}
		wireLoggers(level, cmd.ErrOrStderr())

		spec := viper.GetString("bom.spec")
		if _, ok := bomio.ParseSpecVersion(spec); !ok {
			return apperr.Userf("unsupported --spec %q (expected 1.5|1.6)", spec)
		}
		format := strings.ToLower(strings.TrimSpace(viper.GetString("bom.format")))

		p, err := loadPredictor()
		if err != nil {
			return err
		}
		b, err := bom.Build(p, bom.Options{
			Name:        viper.GetString("bom.name"),
			Version:     viper.GetString("bom.model-version"),
			ToolVersion: bom.ToolVersion(),
		})
		if err != nil {
			return err
		}

		output := viper.GetString("bom.output")
		if output == "-" {
			return bomio.EncodeBOM(cmd.OutOrStdout(), b, format, spec)
		}
		if output == "" {
			output = "dist/econcluster-bom.json"
			if format == "xml" {
				output = "dist/econcluster-bom.xml"
			}
		}
		if err := bomio.WriteBOM(b, output, format, spec); err != nil {
			return err
		}
		if level != "quiet" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote ML-BOM for %s to %s\n",
				ui.GetCheckMark(), b.Metadata.Component.Name, ui.Highlight.Render(output))
		}
		return nil
	},
}

func init() {
	f := bomCmd.Flags()
	f.StringVarP(&bomOutput, "output", "o", "", "Output path, or - for stdout (default dist/econcluster-bom.json)")
	f.StringVarP(&bomFormat, "format", "f", "auto", "BOM format: json|xml|auto")
	f.StringVar(&bomSpec, "spec", "1.6", "CycloneDX spec version: 1.5|1.6")
	f.StringVar(&bomName, "name", "", "Model component name (default "+bom.DefaultModelName+")")
	f.StringVar(&bomModelVersion, "model-version", "", "Model component version (default: centroids digest prefix)")
	f.StringVar(&bomLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	viper.BindPFlag("bom.output", f.Lookup("output"))
	viper.BindPFlag("bom.format", f.Lookup("format"))
	viper.BindPFlag("bom.spec", f.Lookup("spec"))
	viper.BindPFlag("bom.name", f.Lookup("name"))
	viper.BindPFlag("bom.model-version", f.Lookup("model-version"))
	viper.BindPFlag("bom.log-level", f.Lookup("log-level"))
}
