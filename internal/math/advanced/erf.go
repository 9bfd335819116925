package advanced

import (
	gomath "math"
	"math/big"

	"github.com/GriffinCanCode/specval/internal/math/common"
	"github.com/GriffinCanCode/specval/internal/math/operations"
	"github.com/GriffinCanCode/specval/internal/math/utilities"
)

// Erf returns the error function.
func Erf(c *common.Context, x *big.Float) *big.Float {
	switch {
	case x.IsInf():
		return c.Int(int64(x.Sign()))
	case x.Sign() == 0:
		return c.New()
	}

	a := new(big.Float).Abs(x)
	var v *big.Float
	if common.CmpInt(a, 1) >= 0 {
		w := c.WithGuard(16)
		v = w.Sub(w.Int(1), Erfc(w, a))
	} else {
		v = erfSeries(c.WithGuard(32), a)
	}
	if x.Sign() < 0 {
		v.Neg(v)
	}
	return c.Round(v)
}

// Erfc returns the complementary error function 1 - erf(x).
func Erfc(c *common.Context, x *big.Float) *big.Float {
	switch {
	case common.IsPosInf(x):
		return c.New()
	case common.IsNegInf(x):
		return c.Int(2)
	case x.Sign() == 0:
		return c.Int(1)
	case x.Sign() < 0:
		w := c.WithGuard(16)
		return c.Round(w.Add(w.Int(1), Erf(w, w.Neg(x))))
	}

	x2 := exactSquare(x)
	t := common.ToFloat64(x2)
	if t > asymptoticFloor(c) {
		return c.Round(erfcAsymptotic(c.WithGuard(32), x, x2))
	}
	// 1 - erf(x) cancels about x²·log2(e) bits
	w := c.WithGuard(64 + uint(gomath.Ceil(t*gomath.Log2E)))
	return c.Round(w.Sub(w.Int(1), erfSeries(w, x)))
}

// LogErfc returns log(erfc(x)), staying finite where erfc underflows.
func LogErfc(c *common.Context, x *big.Float) *big.Float {
	if common.IsPosInf(x) {
		return c.Inf(-1)
	}
	if x.Sign() > 0 {
		x2 := exactSquare(x)
		if common.ToFloat64(x2) > asymptoticFloor(c) {
			// -x² - log(x·√π) + log(Σ)
			w := c.WithGuard(32 + uint(max(0, common.Exponent(x2))))
			sum := erfcAsymptoticSum(w, x2)
			r := w.Sub(operations.Log(w, sum), x2)
			r = w.Sub(r, operations.Log(w, w.Mul(x, utilities.SqrtPi(w))))
			return c.Round(r)
		}
	}
	w := c.WithGuard(16)
	return c.Round(operations.Log(w, Erfc(w, x)))
}

// erfSeries returns erf(x) for x >= 0 as
// 2/√π · e^(-x²) · Σ 2^k x^(2k+1) / (2k+1)!!.
func erfSeries(w *common.Context, x *big.Float) *big.Float {
	x2 := w.Square(x)
	twoX2 := w.Ldexp(x2, 1)
	term := w.Round(x)
	sum := w.Round(x)
	for k := int64(1); ; k++ {
		term = w.QuoInt(w.Mul(term, twoX2), 2*k+1)
		if common.Negligible(term, sum, w.Prec()) {
			break
		}
		sum = w.Add(sum, term)
	}
	scale := w.Quo(w.Ldexp(operations.Exp(w, w.Neg(x2)), 1), utilities.SqrtPi(w))
	return w.Mul(scale, sum)
}

// erfcAsymptotic returns e^(-x²)/(x√π) · Σ (-1)^n (2n-1)!! / (2x²)^n.
func erfcAsymptotic(w *common.Context, x, x2 *big.Float) *big.Float {
	sum := erfcAsymptoticSum(w, x2)
	e := operations.Exp(w, new(big.Float).Neg(x2))
	return w.Quo(w.Mul(e, sum), w.Mul(x, utilities.SqrtPi(w)))
}

func erfcAsymptoticSum(w *common.Context, x2 *big.Float) *big.Float {
	inv := w.Quo(w.Int(1), w.Ldexp(x2, 1))
	term := w.Int(1)
	sum := w.Int(1)
	for n := int64(1); ; n++ {
		next := w.Neg(w.Mul(w.MulInt(term, 2*n-1), inv))
		if common.Negligible(next, sum, w.Prec()) || common.CmpAbs(next, term) >= 0 {
			return sum
		}
		term = next
		sum = w.Add(sum, term)
	}
}

// exactSquare returns x² without rounding.
func exactSquare(x *big.Float) *big.Float {
	return new(big.Float).SetPrec(2*max(x.Prec(), 1) + 2).Mul(x, x)
}
