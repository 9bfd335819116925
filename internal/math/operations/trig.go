package operations

import (
	"math/big"

	"github.com/GriffinCanCode/specval/internal/math/common"
	"github.com/GriffinCanCode/specval/internal/math/utilities"
)

// SinPi returns sin(πx). The argument is reduced exactly, so integers give 0.
func SinPi(c *common.Context, x *big.Float) *big.Float {
	return sinCosPi(c, x, true)
}

// CosPi returns cos(πx). Half-integers give 0.
func CosPi(c *common.Context, x *big.Float) *big.Float {
	return sinCosPi(c, x, false)
}

func sinCosPi(c *common.Context, x *big.Float, sine bool) *big.Float {
	if x.IsInf() {
		common.Throw("sinpi", "infinite argument")
	}

	negate := false
	a := x
	if x.Sign() < 0 {
		a = new(big.Float).Abs(x)
		negate = sine
	}
	f := reduceMod2(a)

	// fold [0, 2) onto [0, 1/2]
	one := big.NewFloat(1)
	half := big.NewFloat(0.5)
	if f.Cmp(one) >= 0 {
		f.Sub(f, one)
		negate = !negate
	}
	if f.Cmp(half) > 0 {
		f.Sub(one, f)
		if !sine {
			negate = !negate
		}
	}
	useSine := sine
	if f.Cmp(big.NewFloat(0.25)) > 0 {
		f.Sub(half, f)
		useSine = !useSine
	}
	if f.Sign() == 0 {
		if useSine {
			return c.New()
		}
		v := c.Int(1)
		if negate {
			v.Neg(v)
		}
		return v
	}

	w := c.WithGuard(32)
	theta := w.Mul(utilities.Pi(w), f)
	var v *big.Float
	if useSine {
		v = sinSeries(w, theta)
	} else {
		v = cosSeries(w, theta)
	}
	if negate {
		v.Neg(v)
	}
	return c.Round(v)
}

// reduceMod2 returns a - 2·floor(a/2) for a >= 0, computed exactly.
func reduceMod2(a *big.Float) *big.Float {
	prec := max(a.Prec(), 64) + 8
	if a.Sign() == 0 {
		return new(big.Float).SetPrec(prec)
	}
	e := common.Exponent(a)
	if e-int(a.Prec()) >= 1 {
		// every representable bit weighs at least 2
		return new(big.Float).SetPrec(prec)
	}
	if e <= 1 {
		return new(big.Float).SetPrec(prec).Set(a)
	}

	half := new(big.Float).SetPrec(prec).SetMantExp(a, -1)
	k := new(big.Int)
	half.Int(k)
	twoK := new(big.Float).SetPrec(prec + uint(k.BitLen()) + 1).SetInt(k)
	twoK.SetMantExp(twoK, 1)
	return new(big.Float).SetPrec(prec).Sub(a, twoK)
}

// sinSeries returns sin θ for |θ| <= π/4.
func sinSeries(w *common.Context, theta *big.Float) *big.Float {
	t2 := w.Square(theta)
	term := w.Round(theta)
	sum := w.Round(theta)
	for k := int64(1); ; k++ {
		term = w.Neg(w.QuoInt(w.Mul(term, t2), (2*k)*(2*k+1)))
		if common.Negligible(term, sum, w.Prec()) {
			return sum
		}
		sum = w.Add(sum, term)
	}
}

// cosSeries returns cos θ for |θ| <= π/4.
func cosSeries(w *common.Context, theta *big.Float) *big.Float {
	t2 := w.Square(theta)
	term := w.Int(1)
	sum := w.Int(1)
	for k := int64(1); ; k++ {
		term = w.Neg(w.QuoInt(w.Mul(term, t2), (2*k-1)*(2*k)))
		if common.Negligible(term, sum, w.Prec()) {
			return sum
		}
		sum = w.Add(sum, term)
	}
}

// Tanh returns the hyperbolic tangent of x.
func Tanh(c *common.Context, x *big.Float) *big.Float {
	switch {
	case x.IsInf():
		return c.Int(int64(x.Sign()))
	case x.Sign() == 0:
		return c.New()
	}

	w := c.WithGuard(16)
	a := w.Abs(x)
	em := Expm1(w, w.Neg(w.Ldexp(a, 1)))
	t := w.Quo(w.Neg(em), w.Add(w.Int(2), em))
	if x.Sign() < 0 {
		t.Neg(t)
	}
	return c.Round(t)
}

// Atanh returns the inverse hyperbolic tangent of t for |t| <= 1.
func Atanh(c *common.Context, t *big.Float) *big.Float {
	if t.Sign() == 0 {
		return c.New()
	}
	a := new(big.Float).Abs(t)
	switch common.CmpInt(a, 1) {
	case 1:
		common.Throw("atanh", "argument %s outside [-1, 1]", t)
	case 0:
		return c.Inf(t.Sign())
	}

	w := c.WithGuard(16)
	if common.Exponent(t) <= -1 {
		return c.Round(atanhSeries(w, t))
	}
	// atanh t = ½·log1p(2t/(1-t))
	r := w.Quo(w.Ldexp(t, 1), w.Sub(w.Int(1), t))
	return c.Round(w.Half(Log1p(w, r)))
}
