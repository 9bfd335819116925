package advanced

import (
	gomath "math"
	"math/big"

	"github.com/GriffinCanCode/specval/internal/math/common"
	"github.com/GriffinCanCode/specval/internal/math/operations"
	"github.com/GriffinCanCode/specval/internal/math/utilities"
)

// Hyp1F1 returns Kummer's confluent hypergeometric function M(a, b, z).
func Hyp1F1(c *common.Context, a, b, z *big.Float) *big.Float {
	switch {
	case a.IsInf() || b.IsInf() || z.IsInf():
		common.Throw("hyp1f1", "infinite parameter")
	case common.IsNonPositiveInt(b):
		panic(common.PoleError("hyp1f1", b))
	case z.Sign() == 0 || a.Sign() == 0:
		return c.Int(1)
	}

	if z.Sign() < 0 {
		// Kummer transformation M(a, b, z) = e^z · M(b-a, b, -z)
		w := c.WithGuard(32)
		m := Hyp1F1(w, w.Sub(b, a), b, w.Neg(z))
		return c.Round(w.Mul(operations.Exp(w, z), m))
	}

	if hypAsymptotic(c, z, a, b) && !common.IsNonPositiveInt(a) {
		return c.Round(hyp1f1Asymptotic(c.WithGuard(64), a, b, z))
	}
	return cancelling(c, 64, func(w *common.Context) (*big.Float, int) {
		return hyp1f1Series(w, a, b, z)
	})
}

// hyp1f1Series returns Σ (a)_k/(b)_k · z^k/k! and the largest term exponent.
func hyp1f1Series(w *common.Context, a, b, z *big.Float) (*big.Float, int) {
	term := w.Int(1)
	sum := w.Int(1)
	scale := 1
	ak := w.Round(a)
	bk := w.Round(b)
	one := w.Int(1)
	// the term ratio (a+k)z/((b+k)(k+1)) falls below one past this index
	settle := gomath.Abs(common.ToFloat64(z)) + gomath.Abs(common.ToFloat64(a)) + gomath.Abs(common.ToFloat64(b))
	for k := int64(1); ; k++ {
		term = w.Quo(w.Mul(w.Mul(term, ak), z), w.MulInt(bk, k))
		ak = w.Add(ak, one)
		bk = w.Add(bk, one)
		if term.Sign() == 0 {
			return sum, scale
		}
		scale = max(scale, common.Exponent(term))
		if float64(k) > settle && common.Negligible(term, sum, w.Prec()) {
			return sum, scale
		}
		sum = w.Add(sum, term)
	}
}

// hyp1f1Asymptotic returns Γ(b)/Γ(a) · e^z · z^(a-b) · Σ (b-a)_k (1-a)_k / (k!·z^k).
func hyp1f1Asymptotic(w *common.Context, a, b, z *big.Float) *big.Float {
	one := w.Int(1)
	p := w.Sub(b, a)
	q := w.Sub(one, a)
	term := w.Int(1)
	sum := w.Int(1)
	for k := int64(1); ; k++ {
		next := w.Quo(w.Mul(term, w.Mul(p, q)), w.MulInt(z, k))
		if common.Negligible(next, sum, w.Prec()) || common.CmpAbs(next, term) > 0 {
			break
		}
		term = next
		sum = w.Add(sum, term)
		p = w.Add(p, one)
		q = w.Add(q, one)
	}
	// e^z·z^(a-b) folded into one exponential
	e := operations.Exp(w, w.Add(z, w.Mul(w.Sub(a, b), operations.Log(w, z))))
	g := w.Mul(Gamma(w, b), RGamma(w, a))
	return w.Mul(w.Mul(g, e), sum)
}

// HypU returns Tricomi's confluent hypergeometric function U(a, b, z) for
// z > 0 and non-integer b.
func HypU(c *common.Context, a, b, z *big.Float) *big.Float {
	switch {
	case a.IsInf() || b.IsInf():
		common.Throw("hyperu", "infinite parameter")
	case z.Sign() <= 0:
		common.Throw("hyperu", "argument %s must be positive", z)
	case common.IsInt(b):
		common.Throw("hyperu", "integer b = %s is not supported", b)
	case common.IsPosInf(z):
		return c.New()
	case a.Sign() == 0:
		return c.Int(1)
	}

	if hypAsymptotic(c, z, a, b) {
		return c.Round(hypUAsymptotic(c.WithGuard(64), a, b, z))
	}

	// the two Kummer terms grow like e^z and cancel down to about z^-a
	guard := 64 + uint(gomath.Ceil(common.ToFloat64(z)*gomath.Log2E))
	return cancelling(c, guard, func(w *common.Context) (*big.Float, int) {
		one := w.Int(1)
		amb1 := w.Add(w.Sub(a, b), one)
		t1 := w.Mul(w.Mul(Gamma(w, w.Sub(one, b)), RGamma(w, amb1)), Hyp1F1(w, a, b, z))
		t2 := w.Mul(Gamma(w, w.Sub(b, one)), RGamma(w, a))
		if t2.Sign() != 0 {
			zp := operations.Pow(w, z, w.Sub(one, b))
			t2 = w.Mul(w.Mul(t2, zp), Hyp1F1(w, amb1, w.Sub(w.Int(2), b), z))
		}
		return w.Add(t1, t2), maxExponent(t1, t2)
	})
}

// hypUAsymptotic returns z^-a · Σ (a)_k (a-b+1)_k / k! · (-1/z)^k.
func hypUAsymptotic(w *common.Context, a, b, z *big.Float) *big.Float {
	one := w.Int(1)
	p := w.Round(a)
	q := w.Add(w.Sub(a, b), one)
	term := w.Int(1)
	sum := w.Int(1)
	for k := int64(1); ; k++ {
		next := w.Neg(w.Quo(w.Mul(term, w.Mul(p, q)), w.MulInt(z, k)))
		if common.Negligible(next, sum, w.Prec()) || common.CmpAbs(next, term) > 0 {
			break
		}
		term = next
		sum = w.Add(sum, term)
		p = w.Add(p, one)
		q = w.Add(q, one)
	}
	return w.Mul(operations.Pow(w, z, w.Neg(a)), sum)
}

// hypAsymptotic reports whether z is large enough, relative to the
// parameters, for the large-argument expansions.
func hypAsymptotic(c *common.Context, z, a, b *big.Float) bool {
	zf := common.ToFloat64(z)
	af := gomath.Abs(common.ToFloat64(a))
	bf := gomath.Abs(common.ToFloat64(b))
	return zf > asymptoticFloor(c)+2*(af+bf)
}

// PCFU returns the parabolic cylinder function U(a, z) = D_(-a-½)(z).
func PCFU(c *common.Context, a, z *big.Float) *big.Float {
	switch {
	case a.IsInf():
		common.Throw("pcfu", "infinite order")
	case common.IsPosInf(z):
		return c.New()
	case common.IsNegInf(z):
		common.Throw("pcfu", "argument -Inf")
	}

	w := c.WithGuard(32 + uint(max(0, 2*common.Exponent(z))))
	quarter := w.Rat(1, 4)
	half := w.Rat(1, 2)
	ah := w.Half(a)
	z2 := exactSquare(z)
	t := w.Half(z2)
	gauss := operations.Exp(w, w.Neg(w.Ldexp(z2, -2)))
	// 2^(-a/2 - 1/4)
	pow2 := operations.Pow(w, w.Int(2), w.Neg(w.Add(ah, quarter)))

	if z.Sign() > 0 {
		// D_ν(z) = 2^(ν/2)·e^(-z²/4)·U(-ν/2, ½, z²/2)
		u := HypU(w, w.Add(ah, quarter), half, t)
		return c.Round(w.Mul(w.Mul(pow2, gauss), u))
	}

	// D_ν(z) = 2^(ν/2)·√π·e^(-z²/4)·[M(-ν/2, ½, z²/2)/Γ((1-ν)/2) - √2·z·M((1-ν)/2, 3/2, z²/2)/Γ(-ν/2)]
	return cancelling(c, 64, func(v *common.Context) (*big.Float, int) {
		a1 := v.Add(ah, quarter)
		a2 := v.Add(ah, v.Rat(3, 4))
		t1 := v.Mul(Hyp1F1(v, a1, half, t), RGamma(v, a2))
		t2 := v.Mul(v.Mul(utilities.Sqrt2(v), z), RGamma(v, a1))
		if t2.Sign() != 0 {
			t2 = v.Mul(t2, Hyp1F1(v, a2, v.Rat(3, 2), t))
		}
		br := v.Sub(t1, t2)
		pre := v.Mul(v.Mul(pow2, utilities.SqrtPi(v)), gauss)
		return v.Mul(pre, br), maxExponent(t1, t2) + common.Exponent(pre)
	})
}
