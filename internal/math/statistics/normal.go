package statistics

import (
	gomath "math"
	"math/big"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/GriffinCanCode/specval/internal/math/advanced"
	"github.com/GriffinCanCode/specval/internal/math/common"
	"github.com/GriffinCanCode/specval/internal/math/operations"
	"github.com/GriffinCanCode/specval/internal/math/utilities"
)

const maxNewtonSteps = 64

// normalGuard covers the error amplification of e^(-x²/2) for large |x|.
func normalGuard(x *big.Float) uint {
	return 64 + uint(max(0, 2*common.Exponent(x)))
}

// NormalPdf returns the standard normal density φ(x).
func NormalPdf(c *common.Context, x *big.Float) *big.Float {
	if x.IsInf() {
		return c.New()
	}
	w := c.WithGuard(normalGuard(x))
	e := operations.Exp(w, w.Neg(w.Half(w.Square(x))))
	return c.Round(w.Mul(e, utilities.InvSqrt2Pi(w)))
}

// NormalCdf returns Φ(x) = erfc(-x/√2)/2.
func NormalCdf(c *common.Context, x *big.Float) *big.Float {
	switch {
	case common.IsPosInf(x):
		return c.Int(1)
	case common.IsNegInf(x):
		return c.New()
	}
	w := c.WithGuard(normalGuard(x))
	z := w.Quo(w.Neg(x), utilities.Sqrt2(w))
	return c.Round(w.Half(advanced.Erfc(w, z)))
}

// NormalCdfLn returns log Φ(x).
func NormalCdfLn(c *common.Context, x *big.Float) *big.Float {
	switch {
	case common.IsPosInf(x):
		return c.New()
	case common.IsNegInf(x):
		return c.Inf(-1)
	}
	w := c.WithGuard(normalGuard(x))
	if x.Sign() > 0 {
		// log(1 - Φ(-x))
		return c.Round(operations.Log1p(w, w.Neg(NormalCdf(w, w.Neg(x)))))
	}
	z := w.Quo(w.Neg(x), utilities.Sqrt2(w))
	return c.Round(w.Sub(advanced.LogErfc(w, z), utilities.Ln2(w)))
}

// NormalCdfLogit returns log Φ(x) - log Φ(-x).
func NormalCdfLogit(c *common.Context, x *big.Float) *big.Float {
	if x.IsInf() {
		return c.Round(x)
	}
	w := c.WithGuard(16)
	return c.Round(w.Sub(NormalCdfLn(w, x), NormalCdfLn(w, w.Neg(x))))
}

// NormalCdfInv returns the quantile Φ⁻¹(p) by Newton iteration on log Φ,
// seeded with a float64 quantile.
func NormalCdfInv(c *common.Context, p *big.Float) *big.Float {
	if p.Sign() < 0 || common.CmpInt(p, 1) > 0 {
		common.Throw("normcdfinv", "probability %s outside [0, 1]", p)
	}
	switch {
	case p.Sign() == 0:
		return c.Inf(-1)
	case common.CmpInt(p, 1) == 0:
		return c.Inf(1)
	case common.CmpFloat(p, 0.5) == 0:
		return c.New()
	}

	w := c.WithGuard(32)
	// work in the lower tail, where Φ keeps full relative precision
	q := w.Round(p)
	upper := common.CmpFloat(p, 0.5) > 0
	if upper {
		q = w.Sub(w.Int(1), p)
	}

	lnq := operations.Log(w, q)
	x := w.Float64(normalQuantileSeed(q))
	for i := 0; i < maxNewtonSteps; i++ {
		cdf := NormalCdf(w, x)
		f := w.Sub(operations.Log(w, cdf), lnq)
		step := w.Quo(w.Mul(f, cdf), NormalPdf(w, x))
		x = w.Sub(x, step)
		if step.Sign() == 0 || common.Exponent(step) < common.Exponent(x)-int(w.Prec())+2 {
			break
		}
	}
	if upper {
		x.Neg(x)
	}
	return c.Round(x)
}

// normalQuantileSeed returns a float64 approximation of Φ⁻¹(q) for q <= 1/2.
func normalQuantileSeed(q *big.Float) float64 {
	if qf := common.ToFloat64(q); qf > 0 {
		return distuv.UnitNormal.Quantile(qf)
	}
	// below the float64 range: Φ⁻¹(q) ≈ -√(L - log L - log 2π), L = -2·log q
	l := -2 * operations.Log2Abs(q) * gomath.Ln2
	return -gomath.Sqrt(l - gomath.Log(l) - gomath.Log(2*gomath.Pi))
}

// NormalCdfMomentRatio returns ∫₀^∞ tⁿ/n!·e^(-t²/2 + xt) dt. For n = 0 this is
// the Mills ratio Φ(x)/φ(x).
func NormalCdfMomentRatio(c *common.Context, n, x *big.Float) *big.Float {
	if n.IsInf() || n.Sign() < 0 {
		common.Throw("normcdfmomentratio", "order %s must be finite and non-negative", n)
	}
	switch {
	case common.IsPosInf(x):
		return c.Inf(1)
	case common.IsNegInf(x):
		return c.New()
	}

	w := c.WithGuard(normalGuard(x))
	half := w.Rat(1, 2)
	if x.Sign() < 0 {
		// 2^(-½ - n/2) · U(n/2 + ½, ½, x²/2)
		e := w.Neg(w.Add(half, w.Half(n)))
		pre := operations.Pow(w, w.Int(2), e)
		u := advanced.HypU(w, w.Add(w.Half(n), half), half, w.Half(w.Square(x)))
		return c.Round(w.Mul(pre, u))
	}
	// e^(x²/4) · pcfu(n + ½, -x)
	pre := operations.Exp(w, w.Ldexp(w.Square(x), -2))
	return c.Round(w.Mul(pre, advanced.PCFU(w, w.Add(n, half), w.Neg(x))))
}
