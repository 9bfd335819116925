package advanced

import (
	"math/big"

	"github.com/GriffinCanCode/specval/internal/math/common"
	"github.com/GriffinCanCode/specval/internal/math/operations"
	"github.com/GriffinCanCode/specval/internal/math/utilities"
)

// Integer arguments up to this bound use exact factorials.
const exactFactorialLimit = 2000

// HalfLog2Pi returns ½·log(2π).
func HalfLog2Pi(c *common.Context) *big.Float {
	return c.Memo("halflog2pi", func() any {
		w := c.WithGuard(16)
		return c.Round(w.Half(operations.Log(w, w.Ldexp(utilities.Pi(w), 1))))
	}).(*big.Float)
}

// Factorial returns n! at the context precision.
func Factorial(c *common.Context, n int64) *big.Float {
	if n < 0 {
		common.Throw("factorial", "negative argument %d", n)
	}
	return c.New().SetInt(new(big.Int).MulRange(1, n))
}

// Gamma returns Γ(x). Non-positive integers are poles.
func Gamma(c *common.Context, x *big.Float) *big.Float {
	switch {
	case common.IsPosInf(x):
		return c.Inf(1)
	case common.IsNegInf(x):
		common.Throw("gamma", "argument -Inf")
	case common.IsNonPositiveInt(x):
		panic(common.PoleError("gamma", x))
	}

	if common.IsInt(x) && common.CmpInt(x, exactFactorialLimit) <= 0 {
		n, _ := x.Int64()
		return Factorial(c, n-1)
	}

	// |log Γ(x)| is about |x|·log|x|
	w := c.WithGuard(64 + uint(max(0, common.Exponent(x)+8)))
	if x.Sign() > 0 {
		return c.Round(operations.Exp(w, LogGamma(w, x)))
	}

	// Γ(x) = π / (sin(πx)·Γ(1-x))
	g := Gamma(w, w.Sub(w.Int(1), x))
	s := operations.SinPi(w, x)
	return c.Round(w.Quo(utilities.Pi(w), w.Mul(s, g)))
}

// RGamma returns 1/Γ(x), which is 0 at the poles and at +Inf.
func RGamma(c *common.Context, x *big.Float) *big.Float {
	if common.IsNonPositiveInt(x) || common.IsPosInf(x) {
		return c.New()
	}
	w := c.WithGuard(16)
	return c.Round(w.Quo(w.Int(1), Gamma(w, x)))
}

// LogGamma returns log Γ(x) for x > 0. Poles give +Inf; negative
// non-integers, where the principal log-gamma is complex, are domain errors.
func LogGamma(c *common.Context, x *big.Float) *big.Float {
	switch {
	case common.IsPosInf(x):
		return c.Inf(1)
	case common.IsNonPositiveInt(x):
		return c.Inf(1)
	case x.Sign() < 0:
		common.Throw("loggamma", "negative argument %s", x)
	case common.CmpInt(x, 1) == 0 || common.CmpInt(x, 2) == 0:
		return c.New()
	}

	return cancelling(c, 64, func(w *common.Context) (*big.Float, int) {
		z, prod := shiftUp(w, x, stirlingShift(w))
		s := stirling(w, z)
		if prod == nil {
			return s, common.Exponent(s)
		}
		lp := operations.Log(w, prod)
		return w.Sub(s, lp), maxExponent(s, lp)
	})
}

// shiftUp returns z = x+n >= target and the product x(x+1)…(x+n-1), or a
// nil product when x already reaches target.
func shiftUp(w *common.Context, x *big.Float, target int64) (*big.Float, *big.Float) {
	z := w.Round(x)
	if common.CmpInt(z, target) >= 0 {
		return z, nil
	}
	one := w.Int(1)
	prod := w.Int(1)
	for common.CmpInt(z, target) < 0 {
		prod = w.Mul(prod, z)
		z = w.Add(z, one)
	}
	return z, prod
}

// stirling returns (z-½)·log z - z + ½·log 2π + Σ B_2k / (2k(2k-1)·z^(2k-1)).
func stirling(w *common.Context, z *big.Float) *big.Float {
	res := w.Sub(w.Mul(w.Sub(z, w.Rat(1, 2)), operations.Log(w, z)), z)
	res = w.Add(res, HalfLog2Pi(w))

	zinv := w.Quo(w.Int(1), z)
	z2inv := w.Square(zinv)
	p := zinv
	for k, b := range bernoulliFloats(w) {
		n := int64(k + 1)
		term := w.QuoInt(w.Mul(b, p), 2*n*(2*n-1))
		if common.Negligible(term, res, w.Prec()) {
			break
		}
		res = w.Add(res, term)
		p = w.Mul(p, z2inv)
	}
	return res
}
