package catalogue

import (
	"fmt"
	"math/big"

	"github.com/GriffinCanCode/specval/internal/math/advanced"
	"github.com/GriffinCanCode/specval/internal/math/common"
	"github.com/GriffinCanCode/specval/internal/math/operations"
	"github.com/GriffinCanCode/specval/internal/math/quadrature"
	"github.com/GriffinCanCode/specval/internal/math/statistics"
)

// Env is the precision context and quadrature adapter evaluators run against.
type Env struct {
	Ctx  *common.Context
	Quad *quadrature.Adapter
}

// NewEnv binds a context to a quadrature adapter reporting to sink.
func NewEnv(c *common.Context, sink quadrature.DiagnosticSink) Env {
	return Env{Ctx: c, Quad: quadrature.NewAdapter(c, sink)}
}

// Evaluate computes the entry at args. Domain errors are returned wrapped
// around common.ErrDomain.
func (e Entry) Evaluate(env Env, args []*big.Float) (*big.Float, error) {
	if !e.Supported() {
		return nil, fmt.Errorf("%s: unsupported fixture", e.ID)
	}
	if len(args) != e.Arity() {
		return nil, fmt.Errorf("%s: got %d arguments, want %d: %w", e.ID, len(args), e.Arity(), ErrArity)
	}
	return evaluate(env, e.Function, args)
}

// Result evaluates the entry and classifies the outcome; errors become
// unrepresentable results.
func (e Entry) Result(env Env, args []*big.Float) common.Result {
	v, err := e.Evaluate(env, args)
	if err != nil {
		return common.Unrepresentable(err)
	}
	return common.Success(v)
}

// evaluate routes to the appropriate evaluator
func evaluate(env Env, f Function, args []*big.Float) (v *big.Float, err error) {
	defer common.Catch(&err)
	c := env.Ctx
	q := env.Quad

	switch f {
	// Gamma family
	case Gamma:
		return advanced.Gamma(c, args[0]), nil
	case GammaLn:
		return advanced.LogGamma(c, args[0]), nil
	case Digamma:
		return advanced.Digamma(c, args[0]), nil
	case Trigamma:
		return advanced.Trigamma(c, args[0]), nil
	case Tetragamma:
		return advanced.Tetragamma(c, args[0]), nil
	case GammaLower:
		return advanced.GammaLowerRegularized(c, args[0], args[1]), nil
	case GammaUpper:
		return advanced.GammaUpper(c, args[0], args[1]), nil
	case GammaUpperRegularized:
		return advanced.GammaUpperRegularized(c, args[0], args[1]), nil
	case GammaUpperScale:
		return advanced.GammaUpperScale(c, args[0], args[1]), nil

	// Bessel and error functions
	case BesselI:
		return advanced.BesselI(c, args[0], args[1]), nil
	case Erfc:
		return advanced.Erfc(c, args[0]), nil

	// Elementary compositions
	case ExpMinus1:
		return operations.Expm1(c, args[0]), nil
	case ExpMinus1RatioMinus1RatioMinusHalf:
		return operations.ExpMinus1RatioMinus1RatioMinusHalf(c, args[0]), nil
	case Log1MinusExp:
		return operations.Log1MinusExp(c, args[0]), nil
	case Log1Plus:
		return operations.Log1p(c, args[0]), nil
	case LogExpMinus1:
		return operations.LogExpMinus1(c, args[0]), nil
	case Logistic:
		return operations.Logistic(c, args[0]), nil
	case LogisticLn:
		return operations.LogisticLn(c, args[0]), nil
	case LogSumExp:
		return operations.LogSumExp(c, args[0], args[1]), nil

	// Normal family
	case NormalCdf:
		return statistics.NormalCdf(c, args[0]), nil
	case NormalCdfInv:
		return statistics.NormalCdfInv(c, args[0]), nil
	case NormalCdfLn:
		return statistics.NormalCdfLn(c, args[0]), nil
	case NormalCdfLogit:
		return statistics.NormalCdfLogit(c, args[0]), nil
	case NormalCdfMomentRatio:
		return statistics.NormalCdfMomentRatio(c, args[0], args[1]), nil
	case NormalCdf2:
		return statistics.NormalCdf2(q, args[0], args[1], args[2]), nil
	case NormalCdfLn2:
		return statistics.NormalCdfLn2(q, args[0], args[1], args[2]), nil

	// Logistic-Gaussian integrals
	case LogisticGaussian:
		return statistics.LogisticGaussian(q, args[0], args[1]), nil
	case LogisticGaussianDeriv:
		return statistics.LogisticGaussianDeriv(q, args[0], args[1]), nil
	case LogisticGaussianDeriv2:
		return statistics.LogisticGaussianDeriv2(q, args[0], args[1]), nil

	default:
		return nil, fmt.Errorf("unknown function %d", f)
	}
}
