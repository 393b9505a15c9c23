package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/config"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/logging"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/metrics"
)

// app holds the state shared by every subcommand.
type app struct {
	cfgFile  string
	envFile  string
	logLevel string

	cfg    config.Config
	log    *logrus.Logger
	out    io.Writer
	errOut io.Writer
	flush  func()
}

func newApp(out, errOut io.Writer) *app {
	return &app{out: out, errOut: errOut, flush: func() {}}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "retailetl",
		Short: "Retail store batch ETL",
		Long: `Profile the raw retail extracts, decide which cleaning and
transformation steps they need, apply them and load the result into a
relational store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Name() != "validate")
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "YAML config file (defaults and RETAILETL_* env when empty)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "dotenv file with secrets (default .env when present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	root.AddCommand(
		newCheckCmd(a),
		newTransformCmd(a),
		newLoadCmd(a),
		newRunCmd(a),
		newValidateCmd(a),
	)
	return root
}

// setup loads the configuration and builds the logger. When strict is set,
// configuration errors abort the command and the metrics backend is
// installed.
func (a *app) setup(strict bool) error {
	cfg, err := config.Load(a.cfgFile, a.envFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg
	a.log = logging.New(cfg.Log.Level, cfg.Log.Format, a.errOut)

	if !strict {
		return nil
	}
	if issues := config.Validate(cfg); config.HasErrors(issues) {
		for _, iss := range issues {
			fmt.Fprintf(a.errOut, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		}
		return fmt.Errorf("configuration is invalid")
	}

	flush, err := setupMetrics(cfg.Job, cfg.Metrics, a.log)
	if err != nil {
		a.log.WithError(err).Warn("metrics disabled")
		return nil
	}
	a.flush = flush
	return nil
}

// flushMetrics pushes buffered metrics and logs a failure.
func flushMetrics(log logrus.FieldLogger) {
	if err := metrics.Flush(); err != nil {
		log.WithError(err).Warn("metrics flush failed")
	}
}
