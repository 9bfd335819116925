package quadrature

import (
	"math/big"

	"github.com/GriffinCanCode/specval/internal/math/common"
)

// DiagnosticDigits is the number of digits the error estimate must stay below
// the integral before an evaluation is flagged.
const DiagnosticDigits = 50

// Estimate is an integral together with its estimated absolute error.
type Estimate struct {
	Value *big.Float
	Error *big.Float
}

// Suspicious reports whether 10^DiagnosticDigits·|Error| exceeds |Value|.
func (e Estimate) Suspicious() bool {
	if e.Error == nil || e.Error.Sign() == 0 {
		return false
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(DiagnosticDigits), nil)
	scaled := new(big.Float).SetPrec(e.Error.Prec() + 192).SetInt(scale)
	scaled.Mul(scaled, new(big.Float).Abs(e.Error))
	return scaled.Cmp(new(big.Float).Abs(e.Value)) > 0
}

// Diagnostic describes an integral whose error estimate is too large relative
// to its value. The evaluation still returns Result.
type Diagnostic struct {
	Function      string
	Args          []*big.Float
	Integral      *big.Float
	ErrorEstimate *big.Float
	Result        *big.Float
}

// DiagnosticSink receives diagnostics as they are raised.
type DiagnosticSink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to DiagnosticSink.
type SinkFunc func(d Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Adapter binds a tanh-sinh rule to a precision context and a diagnostic sink.
type Adapter struct {
	ctx  *common.Context
	rule *TanhSinh
	sink DiagnosticSink
}

// NewAdapter creates an adapter; a nil sink discards diagnostics.
func NewAdapter(c *common.Context, sink DiagnosticSink) *Adapter {
	if sink == nil {
		sink = SinkFunc(func(Diagnostic) {})
	}
	return &Adapter{ctx: c, rule: NewTanhSinh(c), sink: sink}
}

// Context returns the precision context integrals are computed at.
func (a *Adapter) Context() *common.Context { return a.ctx }

// Integrate returns the integral of f over consecutive points together with
// its error estimate.
func (a *Adapter) Integrate(f Integrand, points ...*big.Float) Estimate {
	return a.rule.Integrate(f, points...)
}

// Check reports a diagnostic for est when it is suspicious and returns
// whether it did.
func (a *Adapter) Check(function string, args []*big.Float, est Estimate, result *big.Float) bool {
	if !est.Suspicious() {
		return false
	}
	a.sink.Report(Diagnostic{
		Function:      function,
		Args:          args,
		Integral:      est.Value,
		ErrorEstimate: est.Error,
		Result:        result,
	})
	return true
}
