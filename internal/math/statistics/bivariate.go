package statistics

import (
	"math/big"

	"github.com/GriffinCanCode/specval/internal/math/advanced"
	"github.com/GriffinCanCode/specval/internal/math/common"
	"github.com/GriffinCanCode/specval/internal/math/operations"
	"github.com/GriffinCanCode/specval/internal/math/quadrature"
	"github.com/GriffinCanCode/specval/internal/math/utilities"
)

// NormalCdf2 returns the standard bivariate normal CDF Φ₂(x, y; r).
func NormalCdf2(q *quadrature.Adapter, x, y, r *big.Float) *big.Float {
	c := q.Context()
	if r.IsInf() || common.CmpInt(r, 1) > 0 || common.CmpInt(r, -1) < 0 {
		common.Throw("normcdf2", "correlation %s outside [-1, 1]", r)
	}

	switch {
	case common.IsNegInf(x) || common.IsNegInf(y):
		return c.New()
	case common.IsPosInf(x):
		return NormalCdf(c, y)
	case common.IsPosInf(y):
		return NormalCdf(c, x)
	case common.CmpInt(r, 1) == 0:
		return NormalCdf(c, common.Min(x, y))
	case common.CmpInt(r, -1) == 0:
		// P(X <= x, -X <= y) = max(Φ(x) - Φ(-y), 0)
		d := c.Sub(NormalCdf(c, x), NormalCdf(c, c.Neg(y)))
		if d.Sign() < 0 {
			return c.New()
		}
		return d
	}

	// From r = -0.9 down the Plackett integrand becomes too peaked and the
	// erfc-based form is used instead. The threshold is -9/10 at the context
	// precision, so an argument read from "-0.9" lands on it exactly.
	if r.Cmp(c.Rat(-9, 10)) > 0 {
		return plackett(q, x, y, r)
	}
	return negativelyCorrelated(q, x, y, r)
}

// NormalCdfLn2 returns log Φ₂(x, y; r).
func NormalCdfLn2(q *quadrature.Adapter, x, y, r *big.Float) *big.Float {
	c := q.Context()
	w := c.WithGuard(16)
	return c.Round(operations.Log(w, NormalCdf2(q, x, y, r)))
}

// plackett integrates the bivariate density over the correlation:
// Φ₂(x, y; r) = ∫_{-1}^{r} exp(-(x²+y²-2txy)/(2(1-t²))) / (2π√(1-t²)) dt.
func plackett(q *quadrature.Adapter, x, y, r *big.Float) *big.Float {
	c := q.Context()
	if common.CmpAbs(y, x) > 0 {
		x, y = y, x
	}
	if c.Add(x, y).Sign() > 0 {
		// Φ₂(x, y; r) = Φ(y) - Φ₂(-x, y; -r)
		return c.Sub(NormalCdf(c, y), NormalCdf2(q, c.Neg(x), y, c.Neg(r)))
	}

	s2 := c.Add(c.Square(x), c.Square(y))
	xy2 := c.Ldexp(c.Mul(x, y), 1)
	twoPi := c.Ldexp(utilities.Pi(c), 1)
	f := func(t *big.Float) *big.Float {
		if common.CmpAbs(t, big.NewFloat(1)) == 0 {
			return c.New()
		}
		one := c.Int(1)
		omt2 := c.Mul(c.Sub(one, t), c.Add(one, t))
		arg := c.Quo(c.Sub(s2, c.Mul(t, xy2)), c.Ldexp(omt2, 1))
		return c.Quo(operations.Exp(c, c.Neg(arg)), c.Mul(twoPi, c.Sqrt(omt2)))
	}
	est := q.Integrate(f, c.Int(-1), r)
	q.Check("normal_cdf2", []*big.Float{x, y, r}, est, est.Value)
	return est.Value
}

// negativelyCorrelated integrates over u = atanh t:
// Φ₂ = (1 - comp - erf(-y/√2))/2 with
// comp = ∫_{tanh x}^{1} e^(-u²/2)·erfc((r·u - y)/√(2(1-r²))) / (1-t²) dt / √(2π).
// When that difference cancels below half the working precision the direct
// integral over [-1, tanh x] is used instead.
func negativelyCorrelated(q *quadrature.Adapter, x, y, r *big.Float) *big.Float {
	c := q.Context()
	if y.Cmp(x) < 0 {
		x, y = y, x
	}

	one := c.Int(1)
	s := c.Sqrt(c.Ldexp(c.Mul(c.Sub(one, r), c.Add(one, r)), 1))
	f := func(t *big.Float) *big.Float {
		if common.CmpAbs(t, big.NewFloat(1)) == 0 {
			return c.New()
		}
		u := operations.Atanh(c, t)
		g := operations.Exp(c, c.Neg(c.Half(c.Square(u))))
		e := advanced.Erfc(c, c.Quo(c.Sub(c.Mul(r, u), y), s))
		return c.Quo(c.Mul(g, e), c.Mul(c.Sub(one, t), c.Add(one, t)))
	}
	args := []*big.Float{x, y, r}
	upper := operations.Tanh(c, x)
	coef := utilities.InvSqrt2Pi(c)

	est := q.Integrate(f, upper, one)
	comp := c.Mul(coef, est.Value)
	full := advanced.Erf(c, c.Quo(c.Neg(y), utilities.Sqrt2(c)))
	rest := c.Sub(one, full)
	result := c.Half(c.Sub(rest, comp))

	lost := common.Exponent(rest) - common.Exponent(result)
	if result.Sign() <= 0 || lost > int(c.Prec())/2 {
		est = q.Integrate(f, c.Int(-1), upper)
		result = c.Half(c.Mul(coef, est.Value))
	}
	q.Check("normal_cdf2", args, est, result)
	return result
}
