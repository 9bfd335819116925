package common

import (
	"math/big"
)

// New returns a zero value at the context precision.
func (c *Context) New() *big.Float {
	return new(big.Float).SetPrec(c.prec)
}

// Int returns i at the context precision.
func (c *Context) Int(i int64) *big.Float {
	return c.New().SetInt64(i)
}

// Float64 returns f at the context precision. f must not be NaN.
func (c *Context) Float64(f float64) *big.Float {
	return c.New().SetFloat64(f)
}

// Rat returns a/b rounded to the context precision.
func (c *Context) Rat(a, b int64) *big.Float {
	return c.New().Quo(c.Int(a), c.Int(b))
}

// Round returns a copy of x rounded to the context precision.
func (c *Context) Round(x *big.Float) *big.Float {
	return c.New().Set(x)
}

// Inf returns +Inf for sign >= 0 and -Inf otherwise.
func (c *Context) Inf(sign int) *big.Float {
	return c.New().SetInf(sign < 0)
}

func (c *Context) Add(x, y *big.Float) *big.Float { return c.New().Add(x, y) }
func (c *Context) Sub(x, y *big.Float) *big.Float { return c.New().Sub(x, y) }
func (c *Context) Mul(x, y *big.Float) *big.Float { return c.New().Mul(x, y) }
func (c *Context) Quo(x, y *big.Float) *big.Float { return c.New().Quo(x, y) }
func (c *Context) Neg(x *big.Float) *big.Float    { return c.New().Neg(x) }
func (c *Context) Abs(x *big.Float) *big.Float    { return c.New().Abs(x) }

// Sqrt panics with big.ErrNaN for negative x.
func (c *Context) Sqrt(x *big.Float) *big.Float {
	if x.IsInf() {
		return c.Round(x)
	}
	return c.New().Sqrt(x)
}

// MulInt returns x·n.
func (c *Context) MulInt(x *big.Float, n int64) *big.Float {
	return c.New().Mul(x, c.Int(n))
}

// QuoInt returns x/n.
func (c *Context) QuoInt(x *big.Float, n int64) *big.Float {
	return c.New().Quo(x, c.Int(n))
}

// Square returns x².
func (c *Context) Square(x *big.Float) *big.Float {
	return c.New().Mul(x, x)
}

// Half returns x/2 exactly.
func (c *Context) Half(x *big.Float) *big.Float {
	if x.IsInf() || x.Sign() == 0 {
		return c.Round(x)
	}
	return c.New().SetMantExp(x, -1)
}

// Ldexp returns x·2^n.
func (c *Context) Ldexp(x *big.Float, n int) *big.Float {
	if x.IsInf() || x.Sign() == 0 {
		return c.Round(x)
	}
	return c.New().SetMantExp(x, n)
}

// Exponent returns e such that 2^(e-1) <= |x| < 2^e. Zero and infinities
// report 0 and are expected to be screened by the caller.
func Exponent(x *big.Float) int {
	if x.Sign() == 0 || x.IsInf() {
		return 0
	}
	return x.MantExp(nil)
}

// Negligible reports whether term no longer changes sum at prec bits.
func Negligible(term, sum *big.Float, prec uint) bool {
	if term.Sign() == 0 {
		return true
	}
	if sum.Sign() == 0 {
		return false
	}
	return Exponent(term) < Exponent(sum)-int(prec)-1
}

// IsPosInf reports whether x is +Inf.
func IsPosInf(x *big.Float) bool { return x.IsInf() && x.Sign() > 0 }

// IsNegInf reports whether x is -Inf.
func IsNegInf(x *big.Float) bool { return x.IsInf() && x.Sign() < 0 }

// IsInt reports whether x is a finite integer.
func IsInt(x *big.Float) bool { return !x.IsInf() && x.IsInt() }

// IsNonPositiveInt reports whether x is 0, -1, -2, ...
func IsNonPositiveInt(x *big.Float) bool { return IsInt(x) && x.Sign() <= 0 }

// CmpInt compares x against the integer i.
func CmpInt(x *big.Float, i int64) int {
	return x.Cmp(new(big.Float).SetInt64(i))
}

// CmpFloat compares x against f.
func CmpFloat(x *big.Float, f float64) int {
	return x.Cmp(big.NewFloat(f))
}

// Min returns the smaller of x and y.
func Min(x, y *big.Float) *big.Float {
	if x.Cmp(y) <= 0 {
		return x
	}
	return y
}

// Max returns the larger of x and y.
func Max(x, y *big.Float) *big.Float {
	if x.Cmp(y) >= 0 {
		return x
	}
	return y
}

// ToFloat64 returns the nearest float64, saturating to ±Inf or ±0.
func ToFloat64(x *big.Float) float64 {
	f, _ := x.Float64()
	return f
}

// CmpAbs compares |x| and |y|.
func CmpAbs(x, y *big.Float) int {
	return new(big.Float).Abs(x).Cmp(new(big.Float).Abs(y))
}
