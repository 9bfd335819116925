package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/specval/internal/catalogue"
	"github.com/GriffinCanCode/specval/internal/oracle"
)

func newEvalCmd(f *flags) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "eval <fixture> <arg>...",
		Short: "Evaluate one function at the given arguments",
		Example: `  specval eval NormalCdf2 0 0 0.5
  specval eval Gamma.csv -- -2.5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			fixtureID := args[0]
			if !strings.HasSuffix(fixtureID, ".csv") {
				fixtureID += ".csv"
			}
			o := oracle.New(catalogue.New(), logger, nil, oracle.Options{
				OutputDigits: cfg.Precision.OutputDigits,
			})

			text, res, err := o.Evaluate(fixtureID, args[1:])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			if verbose && res.Reason != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), res.Reason)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "explain NaN results")
	return cmd
}
