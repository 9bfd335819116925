package oracle

import (
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/specval/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/specval/internal/shared/id"
)

// Report summarises a run.
type Report struct {
	RunID    string              `json:"run_id"`
	Dir      string              `json:"dir"`
	Pattern  string              `json:"pattern"`
	DryRun   bool                `json:"dry_run"`
	Started  time.Time           `json:"started"`
	Duration time.Duration       `json:"duration_ns"`
	Files    []FileReport        `json:"files"`
	Totals   monitoring.Snapshot `json:"totals"`
}

// FileReport summarises one fixture.
type FileReport struct {
	Name        string             `json:"name"`
	Path        string             `json:"path"`
	Status      string             `json:"status"`
	Reason      string             `json:"reason,omitempty"`
	Rows        int                `json:"rows"`
	Computed    int                `json:"computed"`
	Copied      int                `json:"copied"`
	Failed      int                `json:"failed"`
	Digest      string             `json:"digest,omitempty"`
	Changed     bool               `json:"changed"`
	Duration    time.Duration      `json:"duration_ns"`
	Diagnostics []DiagnosticRecord `json:"diagnostics,omitempty"`
}

// DiagnosticRecord is a quadrature diagnostic in report form.
type DiagnosticRecord struct {
	Function      string   `json:"function"`
	Args          []string `json:"args"`
	Row           []string `json:"row,omitempty"`
	Integral      string   `json:"integral"`
	ErrorEstimate string   `json:"error_estimate"`
	Result        string   `json:"result"`
}

func (fr FileReport) skip(m *monitoring.Metrics, reason string) FileReport {
	fr.Status = monitoring.FileSkipped
	fr.Reason = reason
	m.RecordFile(fr.Status)
	return fr
}

func (fr FileReport) fail(m *monitoring.Metrics, err error) FileReport {
	fr.Status = monitoring.FileFailed
	fr.Reason = err.Error()
	m.RecordFile(fr.Status)
	return fr
}

func (r *Report) finish(m *monitoring.Metrics) *Report {
	r.Duration = m.Finish()
	r.Totals = m.Snapshot()
	return r
}

// Encode renders the report as indented JSON.
func (r *Report) Encode() ([]byte, error) {
	return sonic.MarshalIndent(r, "", "  ")
}

// WriteFile writes the JSON report to path.
func (r *Report) WriteFile(path string) error {
	data, err := r.Encode()
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ReadReport loads a report written by WriteFile.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := sonic.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	if _, err := id.ParseRunID(r.RunID); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}
