package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
	"github.com/idlab-discover/EconCluster-cli/internal/ui"
	"github.com/idlab-discover/EconCluster-cli/internal/validator"
)

var (
	checkStrict       bool
	checkPlainSummary bool
	checkLogLevel     string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate model artifacts against the schema and label table",
	Long:  "Loads the scaler and centroid artifacts with the configured schema and label table and reports problems that would stop predictions (errors) or make them suspicious (warnings), such as constant features or centroids that can never be assigned.",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logLevel("check")
		if err != nil {
			return err
		}
		wireLoggers(level, cmd.ErrOrStderr())

		opts, err := modelOptions()
		if err != nil {
			return err
		}
		labels, err := loadLabels()
		if err != nil {
			return err
		}

		result := validator.ValidateArtifacts(opts, labels)
		validator.PrintReport(result)

		if viper.GetBool("check.plain-summary") {
			fmt.Fprintln(cmd.OutOrStdout(), validator.FormatSummary(result))
		} else {
			ui.NewValidationUI(cmd.OutOrStdout(), level == "quiet").PrintReport(validationReport(result))
		}

		if !result.Valid {
			return apperr.User("artifact check failed")
		}
		if viper.GetBool("check.strict") && len(result.Warnings) > 0 {
			return apperr.Userf("artifact check failed: %d warning(s) in strict mode", len(result.Warnings))
		}
		return nil
	},
}

func validationReport(r validator.ValidationResult) ui.ValidationReport {
	return ui.ValidationReport{
		Valid:    r.Valid,
		Errors:   r.Errors,
		Warnings: r.Warnings,
		Schema:   r.Schema,
		Features: r.Features,
		K:        r.K,
		Digests:  digestRows(r.Digests),
	}
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Strict mode: fail on warnings too")
	checkCmd.Flags().BoolVar(&checkPlainSummary, "plain-summary", false, "Print a single-line plain summary (no styling)")
	checkCmd.Flags().StringVar(&checkLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	viper.BindPFlag("check.strict", checkCmd.Flags().Lookup("strict"))
	viper.BindPFlag("check.plain-summary", checkCmd.Flags().Lookup("plain-summary"))
	viper.BindPFlag("check.log-level", checkCmd.Flags().Lookup("log-level"))
}
