package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/config"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/pipeline"
	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/plan"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Profile the raw tables and write the pipeline plan",
		Example: `  retailetl check
  retailetl check --config retailetl.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := pipeline.New(a.cfg, a.log).Check(cmd.Context())
			if err != nil {
				return err
			}
			return plan.WriteSummary(a.out, res.Plan)
		},
	}
}

func newTransformCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "transform",
		Short: "Standardize, clean and enrich the raw tables as the plan says",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := pipeline.New(a.cfg, a.log).Transform(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Cleaned files: %d in %s\n", len(res.Written), a.cfg.Paths.CleanedDir)
			return nil
		},
	}
}

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Recreate the sink schema and load the cleaned tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := pipeline.New(a.cfg, a.log).Load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Rows inserted: %d\n", res.Load.Inserted)
			for _, c := range res.Verification.Mismatches() {
				fmt.Fprintf(a.out, "  mismatch %s: %d of %d rows\n", c.Table, c.Actual, c.Expected)
			}
			return nil
		},
	}
}

func newRunCmd(a *app) *cobra.Command {
	opts := &pipeline.RunOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run check, transform and load in order",
		Long: `Run every step in order and print the execution timeline.

Exit status is 0 when every step succeeded, 2 when the cleaned data was
written but loading failed, and 1 when check or transform failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep := pipeline.New(a.cfg, a.log).Run(cmd.Context(), *opts)
			if rep.Check != nil && rep.Check.Plan != nil {
				if err := plan.WriteSummary(a.out, rep.Check.Plan); err != nil {
					return err
				}
				fmt.Fprintln(a.out)
			}
			if err := rep.WriteSummary(a.out); err != nil {
				return err
			}
			if rep.Status != pipeline.Success {
				return &exitError{code: rep.Status.ExitCode()}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.SkipCheck, "skip-check", false, "reuse the existing plan file")
	cmd.Flags().BoolVar(&opts.SkipTransform, "skip-transform", false, "reuse the existing cleaned files")
	cmd.Flags().BoolVar(&opts.SkipLoad, "skip-load", false, "stop after writing the cleaned files")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			issues := config.Validate(a.cfg)
			for _, iss := range issues {
				fmt.Fprintf(a.out, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
			}
			if config.HasErrors(issues) {
				return fmt.Errorf("configuration is invalid")
			}
			fmt.Fprintln(a.out, "configuration is valid")
			return nil
		},
	}
}
