package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/EconCluster-cli/internal/audit"
	"github.com/idlab-discover/EconCluster-cli/internal/server"
)

var (
	serveAddr         string
	serveReadTimeout  time.Duration
	serveWriteTimeout time.Duration
	serveAuditLog     string
	serveLogLevel     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve predictions over HTTP",
	Long:  "Loads the model once and serves POST /predict, GET /model and GET /healthz until interrupted.",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		level, err := logLevel("serve")
		if err != nil {
			return err
		}
		wireLoggers(level, cmd.ErrOrStderr())
		if level != "quiet" {
			server.SetLogger(cmd.ErrOrStderr())
		}

		p, err := loadPredictor()
		if err != nil {
			return err
		}

		auditLog, err := audit.Open(viper.GetString("serve.audit-log"))
		if err != nil {
			return err
		}
		defer func() {
			if cerr := auditLog.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.New(p, server.Options{
			Addr:         viper.GetString("serve.addr"),
			ReadTimeout:  viper.GetDuration("serve.read-timeout"),
			WriteTimeout: viper.GetDuration("serve.write-timeout"),
			Audit:        auditLog,
		}).Run(ctx)
	},
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveAddr, "addr", ":8080", "Listen address")
	f.DurationVar(&serveReadTimeout, "read-timeout", 10*time.Second, "HTTP read timeout")
	f.DurationVar(&serveWriteTimeout, "write-timeout", 10*time.Second, "HTTP write timeout")
	f.StringVar(&serveAuditLog, "audit-log", "", "Append one JSON line per prediction to this file")
	f.StringVar(&serveLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	viper.BindPFlag("serve.addr", f.Lookup("addr"))
	viper.BindPFlag("serve.read-timeout", f.Lookup("read-timeout"))
	viper.BindPFlag("serve.write-timeout", f.Lookup("write-timeout"))
	viper.BindPFlag("serve.audit-log", f.Lookup("audit-log"))
	viper.BindPFlag("serve.log-level", f.Lookup("log-level"))
}
