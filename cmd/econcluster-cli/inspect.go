package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
	"github.com/idlab-discover/EconCluster-cli/internal/artifact"
	bomio "github.com/idlab-discover/EconCluster-cli/internal/io"
	"github.com/idlab-discover/EconCluster-cli/internal/predictor"
	"github.com/idlab-discover/EconCluster-cli/internal/standardize"
	"github.com/idlab-discover/EconCluster-cli/internal/ui"
)

var (
	inspectOutput   string
	inspectLogLevel string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the loaded model: schema, scaling, centroids and labels",
	Long:  "Loads the scaler and centroid artifacts and prints the feature schema, the per-feature scaling, every centroid in standardized and raw indicator units, the cluster labels and the artifact digests.",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logLevel("inspect")
		if err != nil {
			return err
		}
		wireLoggers(level, cmd.ErrOrStderr())

		output := strings.ToLower(strings.TrimSpace(viper.GetString("inspect.output")))
		switch output {
		case "", "text", "json", "yaml":
		default:
			return apperr.Userf("invalid --output %q (expected text|json|yaml)", output)
		}

		p, err := loadPredictor()
		if err != nil {
			return err
		}
		report, err := modelReport(p)
		if err != nil {
			return err
		}

		if output == "json" || output == "yaml" {
			return bomio.WriteResult(cmd.OutOrStdout(), report, output)
		}
		ui.NewModelUI(cmd.OutOrStdout(), level == "quiet").PrintReport(report)
		return nil
	},
}

// modelReport maps every centroid back to indicator units so the clusters
// can be read on the same scale as the inputs.
func modelReport(p *predictor.Predictor) (ui.ModelReport, error) {
	sc := p.Scaling()
	r := ui.ModelReport{
		Schema:    p.Schema().Name(),
		Algorithm: p.Model().Algorithm,
		Digests:   digestRows(p.Digests()),
		LoadTime:  p.LoadTime().String(),
	}
	for i, spec := range p.Schema().Features() {
		fs := sc.Features[i]
		r.Features = append(r.Features, ui.ScaleRow{
			Name:     spec.Name.String(),
			Required: spec.Required,
			Default:  spec.Default,
			Mean:     fs.Mean,
			Scale:    fs.Scale,
			Constant: fs.Constant,
		})
	}
	for id, c := range p.Model().Centroids {
		raw, err := standardize.Inverse(c, sc)
		if err != nil {
			return ui.ModelReport{}, err
		}
		l, err := p.Labels().Resolve(id)
		if err != nil {
			return ui.ModelReport{}, err
		}
		r.Centroids = append(r.Centroids, ui.CentroidRow{
			ID:           id,
			Label:        l.Name,
			Description:  l.Description,
			Standardized: c,
			Raw:          raw,
		})
	}
	return r, nil
}

func digestRows(ds []artifact.Digest) []ui.DigestRow {
	out := make([]ui.DigestRow, len(ds))
	for i, d := range ds {
		out[i] = ui.DigestRow{Artifact: d.Artifact, Path: d.Path, Format: d.Format, SHA256: d.SHA256, Size: d.Size}
	}
	return out
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", "text", "Output: text|json|yaml")
	inspectCmd.Flags().StringVar(&inspectLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	viper.BindPFlag("inspect.output", inspectCmd.Flags().Lookup("output"))
	viper.BindPFlag("inspect.log-level", inspectCmd.Flags().Lookup("log-level"))
}
