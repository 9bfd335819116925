package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/specval/internal/catalogue"
	"github.com/GriffinCanCode/specval/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/specval/internal/oracle"
	"github.com/GriffinCanCode/specval/internal/shared/utils"
)

func runFixtures(cmd *cobra.Command, f *flags, args []string) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Fixtures.Dir = args[0]
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	metrics := monitoring.NewMetrics()
	o := oracle.New(catalogue.New(), logger, metrics, oracle.Options{
		Pattern:      cfg.Fixtures.Pattern,
		DryRun:       cfg.Fixtures.DryRun,
		OutputDigits: cfg.Precision.OutputDigits,
		Workers:      cfg.Fixtures.Workers,
		Digest:       utils.HashAlgorithm(cfg.Fixtures.Digest),
	})

	report, runErr := o.Run(cmd.Context(), cfg.Fixtures.Dir)
	if report == nil {
		return runErr
	}

	if cfg.Metrics.File != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.File); err != nil {
			logger.Error("Failed to write metrics", zap.Error(err))
		}
	}
	if cfg.Fixtures.Report != "" {
		if err := report.WriteFile(cfg.Fixtures.Report); err != nil {
			logger.Error("Failed to write report", zap.Error(err))
		}
	}

	t := report.Totals
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d processed, %d skipped, %d failed; %d rows computed, %d copied, %d NaN; %d diagnostics\n",
		report.RunID,
		t.Files[monitoring.FileProcessed], t.Files[monitoring.FileSkipped], t.Files[monitoring.FileFailed],
		t.Rows[monitoring.OutcomeComputed], t.Rows[monitoring.OutcomeCopied], t.Rows[monitoring.OutcomeFailed],
		t.Diagnostics)
	return runErr
}
