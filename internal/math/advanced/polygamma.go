package advanced

import (
	"math/big"

	"github.com/GriffinCanCode/specval/internal/math/common"
	"github.com/GriffinCanCode/specval/internal/math/operations"
	"github.com/GriffinCanCode/specval/internal/math/utilities"
)

// Negative arguments of higher-order polygammas are shifted up one step at a
// time; beyond this many steps the argument is rejected.
const maxPolygammaShift = 1 << 16

// Digamma returns ψ(x) = Γ'(x)/Γ(x).
func Digamma(c *common.Context, x *big.Float) *big.Float {
	switch {
	case common.IsPosInf(x):
		return c.Inf(1)
	case common.IsNegInf(x):
		common.Throw("digamma", "argument -Inf")
	case common.IsNonPositiveInt(x):
		panic(common.PoleError("digamma", x))
	}

	if x.Sign() < 0 {
		// ψ(x) = ψ(1-x) - π·cot(πx)
		return cancelling(c, 64, func(w *common.Context) (*big.Float, int) {
			p := Digamma(w, w.Sub(w.Int(1), x))
			cot := w.Quo(operations.CosPi(w, x), operations.SinPi(w, x))
			pc := w.Mul(utilities.Pi(w), cot)
			return w.Sub(p, pc), maxExponent(p, pc)
		})
	}

	return cancelling(c, 64, func(w *common.Context) (*big.Float, int) {
		// ψ(x) = ψ(x+n) - Σ 1/(x+k)
		one := w.Int(1)
		z := w.Round(x)
		acc := w.New()
		for target := stirlingShift(w); common.CmpInt(z, target) < 0; z = w.Add(z, one) {
			acc = w.Add(acc, w.Quo(one, z))
		}
		a := digammaAsymptotic(w, z)
		return w.Sub(a, acc), maxExponent(a, acc)
	})
}

// digammaAsymptotic returns log z - 1/(2z) - Σ B_2k / (2k·z^2k).
func digammaAsymptotic(w *common.Context, z *big.Float) *big.Float {
	zinv := w.Quo(w.Int(1), z)
	res := w.Sub(operations.Log(w, z), w.Half(zinv))
	z2inv := w.Square(zinv)
	p := z2inv
	for k, b := range bernoulliFloats(w) {
		n := int64(k + 1)
		term := w.QuoInt(w.Mul(b, p), 2*n)
		if common.Negligible(term, res, w.Prec()) {
			break
		}
		res = w.Sub(res, term)
		p = w.Mul(p, z2inv)
	}
	return res
}

// Trigamma returns ψ'(x).
func Trigamma(c *common.Context, x *big.Float) *big.Float {
	return Polygamma(c, 1, x)
}

// Tetragamma returns ψ''(x).
func Tetragamma(c *common.Context, x *big.Float) *big.Float {
	return Polygamma(c, 2, x)
}

// Polygamma returns ψ⁽ⁿ⁾(x) for n >= 1. At the poles odd orders tend to +Inf
// from both sides; even orders change sign and are domain errors.
func Polygamma(c *common.Context, n int, x *big.Float) *big.Float {
	if n < 1 {
		common.Throw("polygamma", "order %d below 1", n)
	}
	switch {
	case common.IsPosInf(x):
		return c.New()
	case common.IsNegInf(x):
		common.Throw("polygamma", "argument -Inf")
	case common.IsNonPositiveInt(x):
		if n%2 == 1 {
			return c.Inf(1)
		}
		panic(common.PoleError("polygamma", x))
	}

	if x.Sign() > 0 {
		return c.Round(polygammaShifted(c.WithGuard(32), n, x))
	}

	switch n {
	case 1:
		// ψ'(x) = π²/sin²(πx) - ψ'(1-x)
		return cancelling(c, 64, func(w *common.Context) (*big.Float, int) {
			p := Polygamma(w, 1, w.Sub(w.Int(1), x))
			s := w.Quo(utilities.Pi(w), operations.SinPi(w, x))
			r := w.Square(s)
			return w.Sub(r, p), maxExponent(r, p)
		})
	case 2:
		// ψ''(x) = ψ''(1-x) - 2π³·cos(πx)/sin³(πx)
		return cancelling(c, 64, func(w *common.Context) (*big.Float, int) {
			p := Polygamma(w, 2, w.Sub(w.Int(1), x))
			pi := utilities.Pi(w)
			s := operations.SinPi(w, x)
			r := w.Quo(w.Mul(w.Mul(w.Square(pi), pi), operations.CosPi(w, x)), w.Mul(w.Square(s), s))
			r = w.Ldexp(r, 1)
			return w.Sub(p, r), maxExponent(p, r)
		})
	}

	if common.CmpInt(x, -maxPolygammaShift) < 0 {
		common.Throw("polygamma", "order %d at %s is out of range", n, x)
	}
	return cancelling(c, 64, func(w *common.Context) (*big.Float, int) {
		r := polygammaShifted(w, n, x)
		return r, common.Exponent(r)
	})
}

// polygammaShifted evaluates ψ⁽ⁿ⁾(x) = ψ⁽ⁿ⁾(x+m) + (-1)^(n+1)·n!·Σ (x+k)^-(n+1)
// with the asymptotic series at x+m.
func polygammaShifted(w *common.Context, n int, x *big.Float) *big.Float {
	one := w.Int(1)
	z := w.Round(x)
	acc := w.New()
	for target := stirlingShift(w) + int64(8*n); common.CmpInt(z, target) < 0; z = w.Add(z, one) {
		acc = w.Add(acc, w.Quo(one, intPow(w, z, n+1)))
	}

	nf := Factorial(w, int64(n))
	res := w.Add(polygammaBracket(w, n, z), w.Mul(nf, acc))
	if n%2 == 0 {
		res.Neg(res)
	}
	return res
}

// polygammaBracket returns (n-1)!/z^n + n!/(2z^(n+1)) + Σ B_2k·(2k+n-1)!/(2k)!/z^(2k+n).
func polygammaBracket(w *common.Context, n int, z *big.Float) *big.Float {
	zinv := w.Quo(w.Int(1), z)
	zn := intPow(w, zinv, n)
	res := w.Mul(Factorial(w, int64(n-1)), zn)
	res = w.Add(res, w.Half(w.Mul(Factorial(w, int64(n)), w.Mul(zn, zinv))))

	z2inv := w.Square(zinv)
	p := w.Mul(zn, z2inv)
	for k, b := range bernoulliFloats(w) {
		j := int64(2 * (k + 1))
		f := new(big.Int).MulRange(j+1, j+int64(n)-1)
		term := w.Mul(w.Mul(b, w.New().SetInt(f)), p)
		if common.Negligible(term, res, w.Prec()) {
			break
		}
		res = w.Add(res, term)
		p = w.Mul(p, z2inv)
	}
	return res
}

// intPow returns x^n for n >= 0 by repeated squaring.
func intPow(w *common.Context, x *big.Float, n int) *big.Float {
	res := w.Int(1)
	base := w.Round(x)
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			res = w.Mul(res, base)
		}
		base = w.Square(base)
	}
	return res
}
