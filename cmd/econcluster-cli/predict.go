package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
	"github.com/idlab-discover/EconCluster-cli/internal/audit"
	"github.com/idlab-discover/EconCluster-cli/internal/completeness"
	bomio "github.com/idlab-discover/EconCluster-cli/internal/io"
	"github.com/idlab-discover/EconCluster-cli/internal/predictor"
	"github.com/idlab-discover/EconCluster-cli/internal/schema"
	"github.com/idlab-discover/EconCluster-cli/internal/ui"
)

var (
	predictSet          []string
	predictInput        string
	predictInputFormat  string
	predictInteractive  bool
	predictOutput       string
	predictPlainSummary bool
	predictMinCoverage  float64
	predictAuditLog     string
	predictLogLevel     string
)

// predictCmd represents the predict command
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Assign a country's indicators to an economic cluster",
	Long: "Standardizes the supplied indicator scores with the persisted scaler, assigns them to the nearest k-means centroid and prints the economic classification. " +
		"Indicators come from repeated --set Name=value flags, an --input file, or an --interactive form.",
	Example: `  econcluster-cli predict --set SafetySecurity=5 --set Governance=5 --set EconomicQuality=5 --set LivingConditions=5
  econcluster-cli predict --input country.yaml --output json
  econcluster-cli predict --interactive --schema full`,
	RunE: runPredict,
}

func runPredict(cmd *cobra.Command, args []string) (err error) {
	level, err := logLevel("predict")
	if err != nil {
		return err
	}
	wireLoggers(level, cmd.ErrOrStderr())
	quiet := level == "quiet"

	output := strings.ToLower(strings.TrimSpace(viper.GetString("predict.output")))
	switch output {
	case "", "text":
		output = "text"
	case "json", "yaml":
	default:
		return apperr.Userf("invalid --output %q (expected text|json|yaml)", output)
	}
	plain := viper.GetBool("predict.plain-summary")
	if plain && output != "text" {
		return apperr.User("--plain-summary cannot be combined with --output json|yaml")
	}

	minCoverage := viper.GetFloat64("predict.min-coverage")
	if minCoverage < 0 || minCoverage > 1 {
		return apperr.Userf("invalid --min-coverage %g (expected 0..1)", minCoverage)
	}

	raw, err := collectRequest()
	if err != nil {
		return err
	}

	var tracker *ui.ProgressTracker
	if !quiet && !plain && output == "text" {
		tracker = ui.NewProgressTracker(cmd.ErrOrStderr(), "Classifying economy", []string{
			"Load model artifacts",
			"Check input coverage",
			"Assign cluster",
		})
	}
	tracker.Start()

	tracker.UpdateStep(0, ui.StatusRunning, "")
	p, err := loadPredictor()
	if err != nil {
		tracker.UpdateStep(0, ui.StatusFailed, err.Error())
		tracker.Complete(err)
		return err
	}
	tracker.UpdateStep(0, ui.StatusComplete, fmt.Sprintf("%d features, k=%d", p.Schema().Len(), p.Model().K))

	tracker.UpdateStep(1, ui.StatusRunning, "")
	cov := completeness.Check(p.Schema(), raw)
	completeness.PrintReport(cov)
	if cov.Score < minCoverage {
		err := apperr.Userf("input coverage %.0f%% is below --min-coverage %.0f%%", cov.Score*100, minCoverage*100)
		tracker.UpdateStep(1, ui.StatusFailed, err.Error())
		tracker.Complete(err)
		return err
	}
	tracker.UpdateStep(1, ui.StatusComplete, fmt.Sprintf("%d/%d supplied", cov.Passed, cov.Total))

	auditLog, err := audit.Open(viper.GetString("predict.audit-log"))
	if err != nil {
		tracker.Complete(err)
		return err
	}
	defer func() {
		if cerr := auditLog.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	tracker.UpdateStep(2, ui.StatusRunning, "")
	res, err := p.Predict(raw)
	if err != nil {
		auditLog.RecordFailure(err)
		tracker.UpdateStep(2, ui.StatusFailed, err.Error())
		tracker.Complete(err)
		return err
	}
	auditLog.Record(res)
	tracker.UpdateStep(2, ui.StatusComplete, res.Label)
	tracker.Complete(nil)

	switch {
	case output != "text":
		return bomio.WriteResult(cmd.OutOrStdout(), res, output)
	case plain || quiet:
		// Quiet drops styling and progress, never the answer itself.
		ui.NewPredictionUI(cmd.OutOrStdout(), quiet).PrintPlainSummary(predictionReport(p, res, cov))
	default:
		ui.NewPredictionUI(cmd.OutOrStdout(), quiet).PrintReport(predictionReport(p, res, cov))
	}
	return nil
}

// collectRequest merges --input and --set (which wins) and, with
// --interactive, lets the user complete the result in a form.
func collectRequest() (map[string]float64, error) {
	raw := map[string]float64{}
	if path := viper.GetString("predict.input"); path != "" {
		fromFile, err := bomio.ReadInput(path, viper.GetString("predict.input-format"))
		if err != nil {
			return nil, err
		}
		raw = fromFile
	}
	set, err := bomio.ParseAssignments(viper.GetStringSlice("predict.set"))
	if err != nil {
		return nil, err
	}
	raw = bomio.Merge(raw, set)

	if viper.GetBool("predict.interactive") {
		sch, err := schema.Resolve(viper.GetString("model.schema"))
		if err != nil {
			return nil, err
		}
		raw, err = ui.IndicatorForm(sch, raw)
		if err != nil {
			if errors.Is(err, apperr.ErrCancelled) {
				return nil, err
			}
			return nil, fmt.Errorf("interactive input: %w", err)
		}
	}

	if len(raw) == 0 {
		return nil, apperr.User("no indicators given: use --set Name=value, --input <file> or --interactive")
	}
	return raw, nil
}

// predictionReport converts a result into the UI's mirror types.
func predictionReport(p *predictor.Predictor, res *predictor.Result, cov completeness.Report) ui.PredictionReport {
	defaulted := make(map[string]bool, len(res.Defaulted))
	for _, n := range res.Defaulted {
		defaulted[n] = true
	}

	r := ui.PredictionReport{
		RequestID:   res.RequestID,
		ClusterID:   res.ClusterID,
		Label:       res.Label,
		Description: res.Description,
	}
	for i, spec := range p.Schema().Features() {
		r.Indicators = append(r.Indicators, ui.IndicatorRow{
			Name:         spec.Name.String(),
			Raw:          res.RawVector[i],
			Standardized: res.StandardizedVector[i],
			Min:          spec.Min,
			Max:          spec.Max,
			Defaulted:    defaulted[spec.Name.String()],
		})
	}
	for _, l := range p.Labels().All() {
		if l.ID < len(res.Distances) {
			r.Distances = append(r.Distances, ui.DistanceRow{ClusterID: l.ID, Label: l.Name, Distance: res.Distances[l.ID]})
		}
	}
	r.Coverage = coverageReport(cov)
	return r
}

func coverageReport(cov completeness.Report) *ui.CoverageReport {
	return &ui.CoverageReport{
		Score:           cov.Score,
		Passed:          cov.Passed,
		Total:           cov.Total,
		MissingRequired: fieldKeys(cov.MissingRequired),
		MissingOptional: fieldKeys(cov.MissingOptional),
	}
}

func fieldKeys(fs []schema.Feature) []ui.FieldKey {
	out := make([]ui.FieldKey, len(fs))
	for i, f := range fs {
		out[i] = f
	}
	return out
}

func init() {
	f := predictCmd.Flags()
	f.StringArrayVar(&predictSet, "set", nil, "Indicator value as Name=value (repeatable)")
	f.StringVarP(&predictInput, "input", "i", "", "Path to a JSON/YAML indicator mapping")
	f.StringVar(&predictInputFormat, "input-format", "auto", "Input format: json|yaml|auto")
	f.BoolVar(&predictInteractive, "interactive", false, "Enter indicators in an interactive form")
	f.StringVarP(&predictOutput, "output", "o", "text", "Output: text|json|yaml")
	f.BoolVar(&predictPlainSummary, "plain-summary", false, "Print a plain summary (no styling)")
	f.Float64Var(&predictMinCoverage, "min-coverage", 0, "Reject requests supplying less than this fraction of the schema (0..1)")
	f.StringVar(&predictAuditLog, "audit-log", "", "Append one JSON line per prediction to this file")
	f.StringVar(&predictLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	// Bind all flags to viper for config file support
	viper.BindPFlag("predict.set", f.Lookup("set"))
	viper.BindPFlag("predict.input", f.Lookup("input"))
	viper.BindPFlag("predict.input-format", f.Lookup("input-format"))
	viper.BindPFlag("predict.interactive", f.Lookup("interactive"))
	viper.BindPFlag("predict.output", f.Lookup("output"))
	viper.BindPFlag("predict.plain-summary", f.Lookup("plain-summary"))
	viper.BindPFlag("predict.min-coverage", f.Lookup("min-coverage"))
	viper.BindPFlag("predict.audit-log", f.Lookup("audit-log"))
	viper.BindPFlag("predict.log-level", f.Lookup("log-level"))
}
