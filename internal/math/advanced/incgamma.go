package advanced

import (
	gomath "math"
	"math/big"

	"github.com/GriffinCanCode/specval/internal/math/common"
	"github.com/GriffinCanCode/specval/internal/math/operations"
)

// maxContinuationSteps bounds the downward recurrence used for s <= 0.
const maxContinuationSteps = 100000

// GammaLowerRegularized returns P(s, x) = γ(s, x)/Γ(s). For s <= 0 it is the
// analytic continuation 1 - Γ(s, x)/Γ(s).
func GammaLowerRegularized(c *common.Context, s, x *big.Float) *big.Float {
	checkIncompleteGamma("gammainc", s, x)
	switch {
	case common.IsPosInf(s):
		return c.New()
	case s.Sign() <= 0:
		return cancelling(c, 16, func(w *common.Context) (*big.Float, int) {
			one := w.Int(1)
			q := upperRegularizedContinued(w, "gammainc", s, x)
			return w.Sub(one, q), maxExponent(one, q)
		})
	case x.Sign() == 0:
		return c.New()
	case x.IsInf():
		return c.Int(1)
	}

	if incgammaAsymptotic(c, s, x) {
		w := c.WithGuard(16)
		return c.Round(w.Sub(w.Int(1), upperRegularizedAsymptotic(w, s, x)))
	}
	return c.Round(lowerRegularized(c.WithGuard(incgammaGuard(s, x)), s, x))
}

// GammaUpperRegularized returns Q(s, x) = 1 - P(s, x).
func GammaUpperRegularized(c *common.Context, s, x *big.Float) *big.Float {
	checkIncompleteGamma("gammaincc", s, x)
	switch {
	case common.IsPosInf(s):
		return c.Int(1)
	case s.Sign() <= 0:
		return c.Round(upperRegularizedContinued(c.WithGuard(16), "gammaincc", s, x))
	case x.Sign() == 0:
		return c.Int(1)
	case x.IsInf():
		return c.New()
	}

	if incgammaAsymptotic(c, s, x) {
		return c.Round(upperRegularizedAsymptotic(c.WithGuard(incgammaGuard(s, x)), s, x))
	}
	// 1 - P loses about x·log2(e) bits once x passes s
	guard := incgammaGuard(s, x)
	if xf := common.ToFloat64(x); xf > common.ToFloat64(s) {
		guard += uint(gomath.Ceil(xf * gomath.Log2E))
	}
	return cancelling(c, guard, func(w *common.Context) (*big.Float, int) {
		return w.Sub(w.Int(1), lowerRegularized(w, s, x)), 1
	})
}

// GammaUpper returns the non-regularized upper incomplete gamma Γ(s, x).
func GammaUpper(c *common.Context, s, x *big.Float) *big.Float {
	checkIncompleteGamma("uppergamma", s, x)
	switch {
	case common.IsPosInf(s):
		return c.Inf(1)
	case x.Sign() == 0:
		return Gamma(c, s)
	case x.IsInf():
		return c.New()
	}

	w := c.WithGuard(incgammaGuard(s, x))
	if incgammaAsymptotic(c, s, x) {
		// x^(s-1)·e^-x·Σ (s-1)(s-2)…(s-k)/x^k
		sm1 := w.Sub(s, w.Int(1))
		pre := operations.Exp(w, w.Sub(w.Mul(sm1, operations.Log(w, x)), x))
		return c.Round(w.Mul(pre, upperAsymptoticSum(w, s, x)))
	}
	if s.Sign() <= 0 {
		return upperContinued(c, s, x)
	}
	return c.Round(w.Mul(Gamma(w, s), GammaUpperRegularized(w, s, x)))
}

// GammaUpperScale returns x^s·e^-x/Γ(s), which vanishes at the poles of Γ.
func GammaUpperScale(c *common.Context, s, x *big.Float) *big.Float {
	checkIncompleteGamma("gammaupperscale", s, x)
	switch {
	case common.IsPosInf(s) || x.IsInf() || common.IsNonPositiveInt(s):
		return c.New()
	case x.Sign() == 0 && s.Sign() < 0:
		common.Throw("gammaupperscale", "0^%s is unbounded", s)
	case x.Sign() == 0:
		return c.New()
	}
	w := c.WithGuard(incgammaGuard(s, x))
	if s.Sign() < 0 {
		// Γ(s) changes sign between the poles, so no logarithm
		pw := operations.Exp(w, w.Sub(w.Mul(s, operations.Log(w, x)), x))
		return c.Round(w.Mul(pw, RGamma(w, s)))
	}
	return c.Round(operations.Exp(w, logScale(w, s, x)))
}

func checkIncompleteGamma(function string, s, x *big.Float) {
	if common.IsNegInf(s) {
		common.Throw(function, "shape -Inf")
	}
	if x.Sign() < 0 {
		common.Throw(function, "negative argument %s", x)
	}
}

// upperRegularizedContinued returns Q(s, x) = Γ(s, x)/Γ(s) for s <= 0. It is
// undefined at the poles of Γ and unbounded as x approaches 0.
func upperRegularizedContinued(w *common.Context, function string, s, x *big.Float) *big.Float {
	switch {
	case common.IsNonPositiveInt(s):
		panic(common.PoleError(function, s))
	case x.Sign() == 0:
		common.Throw(function, "shape %s is unbounded at x = 0", s)
	case x.IsInf():
		return w.New()
	}
	return w.Mul(GammaUpper(w, s, x), RGamma(w, s))
}

// upperContinued returns Γ(s, x) for s <= 0 and finite x > 0, running
// Γ(s, x) = (Γ(s+1, x) - x^s·e^-x)/s down from Γ(s+m, x) with s+m in (0, 1),
// or from Γ(0, x) = E1(x) when s is an integer.
func upperContinued(c *common.Context, s, x *big.Float) *big.Float {
	steps, _ := new(big.Float).Neg(s).Int64()
	if steps > maxContinuationSteps {
		common.Throw("uppergamma", "shape %s is too negative", s)
	}
	integer := common.IsInt(s)
	if !integer {
		steps++
	}
	return cancelling(c, 64, func(w *common.Context) (*big.Float, int) {
		var g, sk *big.Float
		if integer {
			g, sk = expIntegralE1(w, x), w.New()
		} else {
			sk = w.Add(s, w.Int(steps))
			g = GammaUpper(w, sk, x)
		}
		lx := operations.Log(w, x)
		one := w.Int(1)
		lost := 0
		for range steps {
			sk = w.Sub(sk, one)
			pw := operations.Exp(w, w.Sub(w.Mul(sk, lx), x))
			d := w.Sub(g, pw)
			if d.Sign() != 0 {
				lost += max(0, maxExponent(g, pw)-common.Exponent(d))
			}
			g = w.Quo(d, sk)
		}
		return g, common.Exponent(g) + lost
	})
}

// expIntegralE1 returns E1(x) = Γ(0, x) = -γ - log x - Σ (-x)^k/(k·k!) for x > 0.
func expIntegralE1(c *common.Context, x *big.Float) *big.Float {
	xf := common.ToFloat64(x)
	// terms peak near e^x while the sum falls like e^-x
	guard := uint(gomath.Ceil(2*xf*gomath.Log2E)) + 64
	return cancelling(c, guard, func(w *common.Context) (*big.Float, int) {
		term := w.Int(1)
		sum := w.New()
		scale := 0
		for k := int64(1); ; k++ {
			term = w.QuoInt(w.Mul(term, x), k)
			u := w.QuoInt(term, k)
			if k%2 == 1 {
				u = w.Neg(u)
			}
			if float64(k) > xf && common.Negligible(u, sum, w.Prec()) {
				break
			}
			scale = max(scale, common.Exponent(u))
			sum = w.Add(sum, u)
		}
		gamma, lx := eulerGamma(w), operations.Log(w, x)
		r := w.Neg(w.Add(w.Add(gamma, lx), sum))
		return r, max(scale, maxExponent(gamma, lx))
	})
}

// eulerGamma returns the Euler-Mascheroni constant γ = -ψ(1).
func eulerGamma(c *common.Context) *big.Float {
	return c.Memo("euler", func() any {
		return c.Neg(Digamma(c, c.Int(1)))
	}).(*big.Float)
}

// incgammaGuard covers the cancellation in s·log x - x - log Γ(s).
func incgammaGuard(s, x *big.Float) uint {
	m := gomath.Max(gomath.Abs(common.ToFloat64(s)), common.ToFloat64(x))
	return operations.GuardFor(m*gomath.Max(1, gomath.Log(m+1))) + 16
}

// incgammaAsymptotic reports whether x is far enough beyond s for the
// asymptotic expansion of Γ(s, x) to reach full precision.
func incgammaAsymptotic(c *common.Context, s, x *big.Float) bool {
	xf := common.ToFloat64(x)
	return xf > asymptoticFloor(c)+2*gomath.Abs(common.ToFloat64(s))
}

// logScale returns s·log x - x - log Γ(s).
func logScale(w *common.Context, s, x *big.Float) *big.Float {
	r := w.Sub(w.Mul(s, operations.Log(w, x)), x)
	return w.Sub(r, LogGamma(w, s))
}

// lowerRegularized returns P(s, x) = e^logScale · Σ x^k / (s(s+1)…(s+k)).
func lowerRegularized(w *common.Context, s, x *big.Float) *big.Float {
	term := w.Quo(w.Int(1), s)
	sum := w.Round(term)
	sk := w.Round(s)
	one := w.Int(1)
	for {
		sk = w.Add(sk, one)
		term = w.Quo(w.Mul(term, x), sk)
		// terms grow while s+k < x
		if sk.Cmp(x) > 0 && common.Negligible(term, sum, w.Prec()) {
			break
		}
		sum = w.Add(sum, term)
	}
	return w.Mul(operations.Exp(w, logScale(w, s, x)), sum)
}

// upperRegularizedAsymptotic returns Q(s, x) = e^logScale/x · Σ (s-1)…(s-k)/x^k.
func upperRegularizedAsymptotic(w *common.Context, s, x *big.Float) *big.Float {
	pre := operations.Exp(w, w.Sub(logScale(w, s, x), operations.Log(w, x)))
	return w.Mul(pre, upperAsymptoticSum(w, s, x))
}

func upperAsymptoticSum(w *common.Context, s, x *big.Float) *big.Float {
	term := w.Int(1)
	sum := w.Int(1)
	for k := int64(1); ; k++ {
		next := w.Quo(w.Mul(term, w.Sub(s, w.Int(k))), x)
		if common.Negligible(next, sum, w.Prec()) || common.CmpAbs(next, term) > 0 {
			return sum
		}
		term = next
		sum = w.Add(sum, term)
	}
}
