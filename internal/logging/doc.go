// Package logging provides structured logging using uber/zap.
//
// This package offers two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Logs go to stderr so that command output on stdout stays clean.
//
// Example Usage:
//
//	logger := logging.NewDefault().ForRun(runID)
//	log := logger.ForFixture("Gamma.csv")
//	log.Info("Processing fixture")
//	log.ForRow(3, []string{"-2"}).Debug("No real value, setting result to NaN")
package logging
