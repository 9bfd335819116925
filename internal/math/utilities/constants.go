package utilities

import (
	"math/big"

	"github.com/GriffinCanCode/specval/internal/math/common"
)

// Pi returns π at the context precision.
func Pi(c *common.Context) *big.Float {
	return c.Memo("pi", func() any {
		w := c.WithGuard(32)
		// Machin: π = 16·atan(1/5) − 4·atan(1/239)
		a := w.Ldexp(atanInv(w, 5), 4)
		b := w.Ldexp(atanInv(w, 239), 2)
		return c.Round(w.Sub(a, b))
	}).(*big.Float)
}

// Ln2 returns ln 2 at the context precision.
func Ln2(c *common.Context) *big.Float {
	return c.Memo("ln2", func() any {
		w := c.WithGuard(32)
		// ln 2 = 2·atanh(1/3)
		return c.Round(w.Ldexp(atanhInv(w, 3), 1))
	}).(*big.Float)
}

// Sqrt2 returns √2.
func Sqrt2(c *common.Context) *big.Float {
	return c.Memo("sqrt2", func() any {
		return c.Sqrt(c.Int(2))
	}).(*big.Float)
}

// SqrtPi returns √π.
func SqrtPi(c *common.Context) *big.Float {
	return c.Memo("sqrtpi", func() any {
		return c.Sqrt(Pi(c))
	}).(*big.Float)
}

// Sqrt2Pi returns √(2π).
func Sqrt2Pi(c *common.Context) *big.Float {
	return c.Memo("sqrt2pi", func() any {
		return c.Sqrt(c.Ldexp(Pi(c), 1))
	}).(*big.Float)
}

// InvSqrt2Pi returns 1/√(2π), the standard normal density at 0.
func InvSqrt2Pi(c *common.Context) *big.Float {
	return c.Memo("invsqrt2pi", func() any {
		return c.Quo(c.Int(1), Sqrt2Pi(c))
	}).(*big.Float)
}

// atanInv returns atan(1/n) = Σ (−1)^k / ((2k+1)·n^(2k+1)).
func atanInv(w *common.Context, n int64) *big.Float {
	return inverseSeries(w, n, true)
}

// atanhInv returns atanh(1/n) = Σ 1 / ((2k+1)·n^(2k+1)).
func atanhInv(w *common.Context, n int64) *big.Float {
	return inverseSeries(w, n, false)
}

func inverseSeries(w *common.Context, n int64, alternate bool) *big.Float {
	n2 := w.Int(n * n)
	power := w.Rat(1, n)
	sum := w.Round(power)
	for k := int64(1); ; k++ {
		power = w.Quo(power, n2)
		term := w.QuoInt(power, 2*k+1)
		if common.Negligible(term, sum, w.Prec()) {
			return sum
		}
		if alternate && k%2 == 1 {
			sum = w.Sub(sum, term)
		} else {
			sum = w.Add(sum, term)
		}
	}
}
