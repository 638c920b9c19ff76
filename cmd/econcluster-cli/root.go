package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
	"github.com/idlab-discover/EconCluster-cli/internal/bom"
	"github.com/idlab-discover/EconCluster-cli/internal/ui"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "econcluster-cli",
	Short: "Classify a country's economy from its development indicators",
	Long:  longDescription,

	SilenceUsage: true,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.Init(viper.GetBool("no-color"))
		initUIAndBanner(cmd)
	},

	// When invoked without a subcommand, show help (with banner) instead of
	// printing a plain usage output.
	RunE: func(cmd *cobra.Command, args []string) error {
		initUIAndBanner(cmd)
		return cmd.Help()
	},
}

var (
	cfgFile string
	noColor bool

	modelScaler    string
	modelCentroids string
	modelFormat    string
	modelSchema    string
)

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	rootCmd.Version = v
	bom.Version = v
}

// GetRootCmd returns the root command for use with fang
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// ExitCode maps the error returned by the root command to a process exit
// status. An aborted interactive form exits 0.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, apperr.ErrCancelled) {
		return 0
	}
	return 1
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.econcluster-cli.yaml or ./config/defaults.yaml)")
	pf.BoolVar(&noColor, "no-color", false, "Disable coloured log prefixes")
	pf.StringVar(&modelScaler, "scaler", "models/scaler.json", "Path to the fitted scaler parameters")
	pf.StringVar(&modelCentroids, "centroids", "models/kmeans_model.json", "Path to the k-means centroids")
	pf.StringVar(&modelFormat, "model-format", "auto", "Artifact format: json|yaml|auto")
	pf.StringVar(&modelSchema, "schema", "core", "Indicator schema: core|full|<path>")

	viper.BindPFlag("no-color", pf.Lookup("no-color"))
	viper.BindPFlag("model.scaler", pf.Lookup("scaler"))
	viper.BindPFlag("model.centroids", pf.Lookup("centroids"))
	viper.BindPFlag("model.format", pf.Lookup("model-format"))
	viper.BindPFlag("model.schema", pf.Lookup("schema"))

	// Ensure `--help` (and help subcommands) show the banner consistently.
	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		initUIAndBanner(cmd)
		defaultHelp(cmd, args)
	})

	rootCmd.AddCommand(predictCmd, inspectCmd, checkCmd, bomCmd, serveCmd, initCmd)
}

func initConfig() {
	// Environment variables apply with or without a config file, e.g.
	// model.scaler -> ECONCLUSTER_MODEL_SCALER.
	viper.SetEnvPrefix("ECONCLUSTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			cobra.CheckErr(err)
		}
		reportConfig()
		return
	}

	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)
	viper.AddConfigPath("./config")

	// Try .econcluster-cli first
	viper.SetConfigName(".econcluster-cli")
	err = viper.ReadInConfig()

	// If not found, try defaults.yaml
	notFound := &viper.ConfigFileNotFoundError{}
	if err != nil && errors.As(err, notFound) {
		viper.SetConfigName("defaults")
		err = viper.ReadInConfig()
	}

	switch {
	case err != nil && !errors.As(err, notFound):
		cobra.CheckErr(err)
	case err == nil:
		reportConfig()
	}
}

func reportConfig() {
	configMsg := ui.Dim.Render("Using config file: ") + ui.Secondary.Render(viper.ConfigFileUsed())
	fmt.Fprintln(os.Stderr, configMsg)
}

const longDescription = "Classify a country's economy as Developing, Emerging or Advanced from its development indicators, using a persisted standard scaler and k-means centroids."

func initUIAndBanner(cmd *cobra.Command) {
	if cmd == nil {
		return
	}
	cmd.Root().Long = ui.RenderBanner(ui.BannerASCII) + "\n" + longDescription
}
