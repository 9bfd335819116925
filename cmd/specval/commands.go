package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/specval/internal/config"
	"github.com/GriffinCanCode/specval/internal/logging"
)

// flags holds command line overrides; only flags set explicitly replace
// configuration values.
type flags struct {
	configPath  string
	pattern     string
	dryRun      bool
	dev         bool
	logLevel    string
	metricsFile string
	report      string
	digest      string
	digits      int
	workers     int
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:   "specval [fixture-dir]",
		Short: "Regenerate high-precision reference values for special-function fixtures",
		Long: `specval recomputes the expectedresult column of every supported fixture
at 500 significant digits and rewrites the files with 50-digit results.

Running specval without a subcommand is the same as "specval run".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixtures(cmd, f, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "TOML configuration file")
	pf.BoolVar(&f.dev, "dev", false, "human readable development logging")
	pf.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.IntVar(&f.digits, "digits", 0, "significant digits written for each result")

	runFlags := func(cmd *cobra.Command) {
		fl := cmd.Flags()
		fl.StringVar(&f.pattern, "pattern", "", `fixture file pattern, "**" recurses (default "*.csv")`)
		fl.BoolVar(&f.dryRun, "dry-run", false, "evaluate without rewriting fixtures")
		fl.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus textfile metrics to this path")
		fl.StringVar(&f.report, "report", "", "write a JSON run report to this path")
		fl.IntVarP(&f.workers, "workers", "j", 0, "fixtures processed concurrently (default GOMAXPROCS)")
		fl.StringVar(&f.digest, "digest", "", `content digest recorded per fixture, sha256 or xxh64 (default "sha256")`)
	}
	runFlags(root)

	run := &cobra.Command{
		Use:   "run [fixture-dir]",
		Short: "Regenerate every supported fixture in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixtures(cmd, f, args)
		},
	}
	runFlags(run)

	root.AddCommand(
		run,
		newEvalCmd(f),
		newCatalogueCmd(),
	)
	return root
}

// loadConfig resolves configuration from the environment, the optional
// config file and explicitly set flags, in increasing priority.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFile(f.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("pattern") {
		cfg.Fixtures.Pattern = f.pattern
	}
	if changed("dry-run") {
		cfg.Fixtures.DryRun = f.dryRun
	}
	if changed("report") {
		cfg.Fixtures.Report = f.report
	}
	if changed("workers") {
		cfg.Fixtures.Workers = f.workers
	}
	if changed("digest") {
		cfg.Fixtures.Digest = f.digest
	}
	if changed("metrics-file") {
		cfg.Metrics.File = f.metricsFile
	}
	if changed("dev") {
		cfg.Logging.Development = f.dev
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if changed("digits") {
		cfg.Precision.OutputDigits = f.digits
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	logCfg := logging.DefaultConfig()
	if cfg.Logging.Development {
		logCfg = logging.DevelopmentConfig()
	}
	if cfg.Logging.Level != "" {
		logCfg.Level = cfg.Logging.Level
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
