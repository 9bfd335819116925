package statistics

import (
	"math/big"

	"github.com/GriffinCanCode/specval/internal/math/common"
	"github.com/GriffinCanCode/specval/internal/math/operations"
	"github.com/GriffinCanCode/specval/internal/math/quadrature"
	"github.com/GriffinCanCode/specval/internal/math/utilities"
)

// Beyond this ratio m²/v the logistic-Gaussian mean is 1 to working precision
// once tanh(m) has saturated.
const saturationRatio = 1040

// The integrals below substitute x = atanh(t) into
// ∫ N(x; m, v)·g(x) dx over the real line, mapping it onto (-1, 1).

// LogisticGaussian returns E[σ(X)] for X ~ N(m, v).
func LogisticGaussian(q *quadrature.Adapter, m, v *big.Float) *big.Float {
	c := q.Context()
	switch {
	case common.IsPosInf(m):
		if common.IsPosInf(v) {
			return c.Inf(1)
		}
		return c.Int(1)
	case common.IsPosInf(v):
		return c.Rat(1, 2)
	case common.IsNegInf(m):
		return c.New()
	}
	checkVariance("logistic_gaussian", v)
	if v.Sign() == 0 {
		return operations.Logistic(c, m)
	}

	split := operations.Tanh(c, m)
	if common.CmpInt(split, 1) == 0 && c.Square(m).Cmp(c.MulInt(v, saturationRatio)) > 0 {
		return c.Int(1)
	}

	gauss := gaussian(c, m, v)
	f := func(t *big.Float) *big.Float {
		if common.CmpAbs(t, big.NewFloat(1)) == 0 {
			return c.New()
		}
		one := c.Int(1)
		omt := c.Sub(one, t)
		sq := c.Sqrt(c.Mul(omt, c.Add(one, t)))
		return c.Quo(gauss(t), c.Mul(omt, c.Add(c.Add(one, t), sq)))
	}
	return logisticIntegral(q, "logistic_gaussian", m, v, split, c.Int(1), f)
}

// LogisticGaussianDeriv returns d/dm E[σ(X)] = E[σ'(X)] for X ~ N(m, v).
func LogisticGaussianDeriv(q *quadrature.Adapter, m, v *big.Float) *big.Float {
	c := q.Context()
	if m.IsInf() || v.IsInf() {
		return c.New()
	}
	checkVariance("logistic_gaussian_deriv", v)
	if v.Sign() == 0 {
		return operations.LogisticDeriv(c, m)
	}

	gauss := gaussian(c, m, v)
	f := func(t *big.Float) *big.Float {
		if common.CmpAbs(t, big.NewFloat(1)) == 0 {
			return c.New()
		}
		one := c.Int(1)
		omt2 := c.Mul(c.Sub(one, t), c.Add(one, t))
		return c.Quo(gauss(t), c.Add(omt2, c.Sqrt(omt2)))
	}
	return logisticIntegral(q, "logistic_gaussian_deriv", m, v, operations.Tanh(c, m), c.Rat(1, 2), f)
}

// LogisticGaussianDeriv2 returns d²/dm² E[σ(X)] = E[σ''(X)] for X ~ N(m, v).
func LogisticGaussianDeriv2(q *quadrature.Adapter, m, v *big.Float) *big.Float {
	c := q.Context()
	if m.IsInf() || v.IsInf() {
		return c.New()
	}
	checkVariance("logistic_gaussian_deriv2", v)
	if v.Sign() == 0 {
		return operations.LogisticDeriv2(c, m)
	}

	gauss := gaussian(c, m, v)
	f := func(t *big.Float) *big.Float {
		if common.CmpAbs(t, big.NewFloat(1)) == 0 {
			return c.New()
		}
		one := c.Int(1)
		omt := c.Sub(one, t)
		omt2 := c.Mul(omt, c.Add(one, t))
		sq := c.Sqrt(omt2)
		num := c.Mul(gauss(t), c.Sub(omt, sq))
		return c.Quo(num, c.Mul(c.Add(omt2, sq), c.Add(omt, sq)))
	}
	return logisticIntegral(q, "logistic_gaussian_deriv2", m, v, operations.Tanh(c, m), c.Rat(1, 2), f)
}

func checkVariance(function string, v *big.Float) {
	if v.Sign() < 0 {
		common.Throw(function, "negative variance %s", v)
	}
}

// gaussian returns t ↦ exp(-(atanh t - m)²/(2v)).
func gaussian(c *common.Context, m, v *big.Float) func(t *big.Float) *big.Float {
	twoV := c.Ldexp(v, 1)
	return func(t *big.Float) *big.Float {
		d := c.Sub(operations.Atanh(c, t), m)
		return operations.Exp(c, c.Neg(c.Quo(c.Square(d), twoV)))
	}
}

// logisticIntegral integrates f over (-1, 1), split at the image of the mean,
// and scales by coef/√(2πv).
func logisticIntegral(q *quadrature.Adapter, function string, m, v, split, coef *big.Float, f quadrature.Integrand) *big.Float {
	c := q.Context()
	one := c.Int(1)
	points := []*big.Float{c.Int(-1)}
	if common.CmpAbs(split, one) < 0 {
		points = append(points, split)
	}
	points = append(points, one)

	est := q.Integrate(f, points...)
	scale := c.Quo(coef, c.Sqrt(c.Mul(c.Ldexp(utilities.Pi(c), 1), v)))
	result := c.Mul(scale, est.Value)
	q.Check(function, []*big.Float{m, v}, est, result)
	return result
}
