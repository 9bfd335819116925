package operations

import (
	"math/big"

	"github.com/GriffinCanCode/specval/internal/math/common"
)

// ExpMinus1RatioMinus1RatioMinusHalf returns ((e^x - 1)/x - 1)/x - 1/2,
// which is 0 at the origin.
func ExpMinus1RatioMinus1RatioMinusHalf(c *common.Context, x *big.Float) *big.Float {
	switch {
	case common.IsPosInf(x):
		return c.Inf(1)
	case common.IsNegInf(x):
		return c.Rat(-1, 2)
	case x.Sign() == 0:
		return c.New()
	}

	w := c.WithGuard(32)
	if common.Exponent(x) <= -1 {
		// Σ_{k>=3} x^(k-2)/k!
		term := w.QuoInt(x, 6)
		sum := w.Round(term)
		for k := int64(4); ; k++ {
			term = w.QuoInt(w.Mul(term, x), k)
			if common.Negligible(term, sum, w.Prec()) {
				return c.Round(sum)
			}
			sum = w.Add(sum, term)
		}
	}
	r := w.Quo(Expm1(w, x), x)
	r = w.Quo(w.Sub(r, w.Int(1)), x)
	return c.Round(w.Sub(r, w.Rat(1, 2)))
}

// Log1MinusExp returns log(1 - e^x) for x <= 0.
func Log1MinusExp(c *common.Context, x *big.Float) *big.Float {
	switch {
	case x.Sign() > 0:
		common.Throw("log1mexp", "positive argument %s", x)
	case x.Sign() == 0:
		return c.Inf(-1)
	case common.IsNegInf(x):
		return c.New()
	}

	w := c.WithGuard(16)
	// log(-expm1(x)) near zero, log1p(-e^x) further out
	if common.CmpFloat(x, -0.6931471805599453) > 0 {
		return c.Round(Log(w, w.Neg(Expm1(w, x))))
	}
	return c.Round(Log1p(w, w.Neg(Exp(w, x))))
}

// LogExpMinus1 returns log(e^x - 1) for x >= 0.
func LogExpMinus1(c *common.Context, x *big.Float) *big.Float {
	switch {
	case x.Sign() < 0:
		common.Throw("logexpm1", "negative argument %s", x)
	case x.Sign() == 0:
		return c.Inf(-1)
	case x.IsInf():
		return c.Inf(1)
	}

	w := c.WithGuard(16)
	if common.CmpInt(x, 1) <= 0 {
		return c.Round(Log(w, Expm1(w, x)))
	}
	// x + log1p(-e^-x)
	return c.Round(w.Add(x, Log1p(w, w.Neg(Exp(w, w.Neg(x))))))
}

// LogSumExp returns log(e^x + e^y).
func LogSumExp(c *common.Context, x, y *big.Float) *big.Float {
	switch {
	case common.IsPosInf(x) || common.IsPosInf(y):
		return c.Inf(1)
	case common.IsNegInf(x):
		return c.Round(y)
	case common.IsNegInf(y):
		return c.Round(x)
	}

	w := c.WithGuard(16)
	hi, lo := common.Max(x, y), common.Min(x, y)
	return c.Round(w.Add(hi, Log1p(w, Exp(w, w.Sub(lo, hi)))))
}

// Logistic returns 1/(1 + e^-x).
func Logistic(c *common.Context, x *big.Float) *big.Float {
	switch {
	case common.IsPosInf(x):
		return c.Int(1)
	case common.IsNegInf(x):
		return c.New()
	}

	w := c.WithGuard(16)
	one := w.Int(1)
	if x.Sign() >= 0 {
		return c.Round(w.Quo(one, w.Add(one, Exp(w, w.Neg(x)))))
	}
	e := Exp(w, x)
	return c.Round(w.Quo(e, w.Add(one, e)))
}

// LogisticLn returns log σ(x) = -log(1 + e^-x).
func LogisticLn(c *common.Context, x *big.Float) *big.Float {
	switch {
	case common.IsPosInf(x):
		return c.New()
	case common.IsNegInf(x):
		return c.Inf(-1)
	}

	w := c.WithGuard(16)
	if x.Sign() >= 0 {
		return c.Round(w.Neg(Log1p(w, Exp(w, w.Neg(x)))))
	}
	return c.Round(w.Sub(x, Log1p(w, Exp(w, x))))
}

// LogisticDeriv returns σ'(x) = σ(x)·σ(-x).
func LogisticDeriv(c *common.Context, x *big.Float) *big.Float {
	if x.IsInf() {
		return c.New()
	}
	w := c.WithGuard(16)
	return c.Round(w.Mul(Logistic(w, x), Logistic(w, w.Neg(x))))
}

// LogisticDeriv2 returns σ''(x) = σ(x)·σ(-x)·(1 - 2σ(x)) = -σ'(x)·tanh(x/2).
func LogisticDeriv2(c *common.Context, x *big.Float) *big.Float {
	if x.IsInf() {
		return c.New()
	}
	w := c.WithGuard(16)
	d := LogisticDeriv(w, x)
	return c.Round(w.Neg(w.Mul(d, Tanh(w, w.Half(x)))))
}
