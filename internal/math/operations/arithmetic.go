package operations

import (
	gomath "math"
	"math/big"

	"github.com/ALTree/bigfloat"

	"github.com/GriffinCanCode/specval/internal/math/common"
	"github.com/GriffinCanCode/specval/internal/math/utilities"
)

// |x| >= 2^expSaturation overflows or underflows the big.Float exponent range.
const expSaturation = 33

// Exp returns e^x.
func Exp(c *common.Context, x *big.Float) *big.Float {
	switch {
	case x.IsInf():
		if x.Sign() > 0 {
			return c.Inf(1)
		}
		return c.New()
	case x.Sign() == 0:
		return c.Int(1)
	}

	e := common.Exponent(x)
	if e > expSaturation {
		if x.Sign() > 0 {
			return c.Inf(1)
		}
		return c.New()
	}

	// e^x = 2^n · e^r with |r| <= ln2/2
	w := c.WithGuard(64 + uint(max(e, 0)))
	ln2 := utilities.Ln2(w)
	n := gomath.Round(common.ToFloat64(w.Quo(x, ln2)))
	r := w.Sub(x, w.Mul(ln2, w.Float64(n)))
	return c.New().SetMantExp(bigfloat.Exp(r), int(n))
}

// Log returns the natural logarithm of x. Negative x raises a domain error.
func Log(c *common.Context, x *big.Float) *big.Float {
	switch {
	case x.Sign() < 0:
		common.Throw("log", "negative argument %s", x)
	case x.Sign() == 0:
		return c.Inf(-1)
	case x.IsInf():
		return c.Inf(1)
	}

	w := c.WithGuard(64)
	d := w.Sub(x, w.Int(1))
	if d.Sign() == 0 {
		return c.New()
	}
	if common.Exponent(d) <= -2 {
		return c.Round(log1pSeries(w, d))
	}

	mant := new(big.Float)
	k := x.MantExp(mant)
	m := w.Round(mant)
	if common.CmpFloat(m, gomath.Sqrt2/2) < 0 {
		m = w.Ldexp(m, 1)
		k--
	}
	l := bigfloat.Log(m)
	if k != 0 {
		l = w.Add(l, w.MulInt(utilities.Ln2(w), int64(k)))
	}
	return c.Round(l)
}

// Log1p returns log(1+x), accurate for small x.
func Log1p(c *common.Context, x *big.Float) *big.Float {
	switch {
	case x.IsInf():
		if x.Sign() > 0 {
			return c.Inf(1)
		}
		common.Throw("log1p", "argument -Inf")
	case x.Sign() == 0:
		return c.New()
	}
	switch common.CmpInt(x, -1) {
	case -1:
		common.Throw("log1p", "argument %s below -1", x)
	case 0:
		return c.Inf(-1)
	}

	w := c.WithGuard(32)
	if common.Exponent(x) <= -1 {
		return c.Round(log1pSeries(w, x))
	}
	return c.Round(Log(w, w.Add(x, w.Int(1))))
}

// Expm1 returns e^x - 1, accurate for small x.
func Expm1(c *common.Context, x *big.Float) *big.Float {
	switch {
	case x.IsInf():
		if x.Sign() > 0 {
			return c.Inf(1)
		}
		return c.Int(-1)
	case x.Sign() == 0:
		return c.New()
	}

	w := c.WithGuard(32)
	if common.Exponent(x) <= -1 {
		sum := w.Round(x)
		term := w.Round(x)
		for k := int64(2); ; k++ {
			term = w.QuoInt(w.Mul(term, x), k)
			if common.Negligible(term, sum, w.Prec()) {
				break
			}
			sum = w.Add(sum, term)
		}
		return c.Round(sum)
	}
	return c.Round(w.Sub(Exp(w, x), w.Int(1)))
}

// Pow returns x^y for x > 0.
func Pow(c *common.Context, x, y *big.Float) *big.Float {
	if x.Sign() < 0 {
		common.Throw("pow", "negative base %s", x)
	}
	if y.Sign() == 0 || common.CmpInt(x, 1) == 0 {
		return c.Int(1)
	}
	if x.Sign() == 0 {
		if y.Sign() > 0 {
			return c.New()
		}
		return c.Inf(1)
	}
	if x.IsInf() || y.IsInf() {
		// x^y tends to 0 or +Inf depending on which side of 1 x lies
		grows := (common.CmpInt(x, 1) > 0) == (y.Sign() > 0)
		if grows {
			return c.Inf(1)
		}
		return c.New()
	}

	w := c.WithGuard(GuardFor(Log2Abs(x) * gomath.Abs(common.ToFloat64(y))))
	return c.Round(Exp(w, w.Mul(y, Log(w, x))))
}

// Log2Abs approximates log2|x| in float64 without overflowing.
func Log2Abs(x *big.Float) float64 {
	if x.Sign() == 0 {
		return gomath.Inf(-1)
	}
	if x.IsInf() {
		return gomath.Inf(1)
	}
	mant := new(big.Float)
	e := x.MantExp(mant)
	m, _ := mant.Float64()
	return float64(e) + gomath.Log2(gomath.Abs(m))
}

// GuardFor returns the guard bits needed to evaluate e^t to full relative
// precision when |t| is about magnitude.
func GuardFor(magnitude float64) uint {
	if magnitude <= 1 || gomath.IsNaN(magnitude) {
		return 64
	}
	if gomath.IsInf(magnitude, 1) || magnitude > 1<<40 {
		return 64 + 40
	}
	return 64 + uint(gomath.Ceil(gomath.Log2(magnitude)))
}

// log1pSeries returns log(1+x) = 2·atanh(x/(2+x)) for |x| < 1/2.
func log1pSeries(w *common.Context, x *big.Float) *big.Float {
	u := w.Quo(x, w.Add(w.Int(2), x))
	return w.Ldexp(atanhSeries(w, u), 1)
}

// atanhSeries returns atanh(u) = Σ u^(2k+1)/(2k+1) for |u| < 1/2.
func atanhSeries(w *common.Context, u *big.Float) *big.Float {
	u2 := w.Square(u)
	power := w.Round(u)
	sum := w.Round(u)
	for k := int64(1); ; k++ {
		power = w.Mul(power, u2)
		term := w.QuoInt(power, 2*k+1)
		if common.Negligible(term, sum, w.Prec()) {
			return sum
		}
		sum = w.Add(sum, term)
	}
}
