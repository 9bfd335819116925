/*
Package monitoring collects run metrics for the fixture generator.

# Overview

A run is a short-lived batch job, so metrics live in a private Prometheus
registry and are written once at the end of the run in the node_exporter
textfile format instead of being scraped.

# Metrics

- specval_rows_total{fixture, outcome}: rows by outcome (computed, copied, failed)
- specval_files_total{outcome}: fixtures by outcome (processed, skipped, failed)
- specval_quadrature_diagnostics_total{function}: suspicious integration errors
- specval_row_duration_seconds{fixture}: evaluation latency per row
- specval_run_duration_seconds: wall time of the last run

# Usage

	metrics := monitoring.NewMetrics()

	timer := monitoring.NewTimer(metrics, "Gamma.csv")
	// ... evaluate the row ...
	timer.Stop(monitoring.OutcomeComputed)

	if err := metrics.WriteTextfile("specval.prom"); err != nil {
		// ...
	}
*/
package monitoring
