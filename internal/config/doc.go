// Package config provides 12-factor configuration management for specval.
//
// Configuration is loaded from environment variables with sensible defaults,
// optionally overlaid by a TOML file. CLI flags override both.
//
// Configuration Sections:
//   - Fixtures: fixture directory, file pattern, dry-run and report settings
//   - Precision: significant digits written to the fixtures
//   - Logging: Log level and output format
//   - Metrics: Prometheus textfile output
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Regenerating %s/%s\n", cfg.Fixtures.Dir, cfg.Fixtures.Pattern)
//
// Environment Variables:
//   - SPECVAL_FIXTURE_DIR, SPECVAL_PATTERN, SPECVAL_DRY_RUN, SPECVAL_REPORT_FILE
//   - SPECVAL_OUTPUT_DIGITS
//   - LOG_LEVEL, LOG_DEV
//   - SPECVAL_METRICS_FILE
package config
