package oracle

import (
	"math/big"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/specval/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/specval/internal/logging"
	"github.com/GriffinCanCode/specval/internal/math/quadrature"
	"github.com/GriffinCanCode/specval/internal/math/utilities"
)

// diagnosticSink logs quadrature diagnostics, counts them and attaches them to
// the report of the fixture being processed. A sink serves one fixture at a
// time; fixtures processed concurrently each get their own.
type diagnosticSink struct {
	logger  *logging.Logger
	metrics *monitoring.Metrics
	digits  int

	current *FileReport
	row     []string
}

func newDiagnosticSink(logger *logging.Logger, metrics *monitoring.Metrics, digits int, fr *FileReport) *diagnosticSink {
	return &diagnosticSink{logger: logger, metrics: metrics, digits: digits, current: fr}
}

// Report implements quadrature.DiagnosticSink.
func (s *diagnosticSink) Report(d quadrature.Diagnostic) {
	rec := DiagnosticRecord{
		Function:      d.Function,
		Args:          s.formatAll(d.Args),
		Row:           s.row,
		Integral:      s.format(d.Integral),
		ErrorEstimate: s.format(d.ErrorEstimate),
		Result:        s.format(d.Result),
	}

	s.metrics.RecordDiagnostic(d.Function)
	s.logger.Warn("Suspiciously big error when evaluating an integral",
		zap.String("function", rec.Function),
		zap.Strings("args", rec.Args),
		zap.String("integral", rec.Integral),
		zap.String("error_estimate", rec.ErrorEstimate),
		zap.String("result", rec.Result))

	if s.current != nil {
		s.current.Diagnostics = append(s.current.Diagnostics, rec)
	}
}

func (s *diagnosticSink) format(x *big.Float) string {
	if x == nil {
		return ""
	}
	return utilities.FormatFloat(x, s.digits)
}

func (s *diagnosticSink) formatAll(xs []*big.Float) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = s.format(x)
	}
	return out
}
