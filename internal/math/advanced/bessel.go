package advanced

import (
	gomath "math"
	"math/big"

	"github.com/GriffinCanCode/specval/internal/math/common"
	"github.com/GriffinCanCode/specval/internal/math/operations"
	"github.com/GriffinCanCode/specval/internal/math/utilities"
)

// BesselI returns the modified Bessel function of the first kind I_ν(x).
// Negative x is accepted for integer orders only.
func BesselI(c *common.Context, nu, x *big.Float) *big.Float {
	if nu.IsInf() {
		common.Throw("besseli", "infinite order")
	}
	integer := common.IsInt(nu)
	if integer && nu.Sign() < 0 {
		// I_-n = I_n
		nu = new(big.Float).Neg(nu)
	}
	odd := integer && isOdd(nu)

	switch {
	case common.IsPosInf(x):
		return c.Inf(1)
	case common.IsNegInf(x):
		if !integer {
			common.Throw("besseli", "order %s at -Inf", nu)
		}
		if odd {
			return c.Inf(-1)
		}
		return c.Inf(1)
	case x.Sign() == 0:
		switch nu.Sign() {
		case 0:
			return c.Int(1)
		case 1:
			return c.New()
		}
		panic(common.PoleError("besseli", nu))
	case x.Sign() < 0:
		if !integer {
			common.Throw("besseli", "non-integer order %s at negative argument", nu)
		}
		v := BesselI(c, nu, new(big.Float).Neg(x))
		if odd {
			v.Neg(v)
		}
		return v
	}

	if besselAsymptotic(c, nu, x) {
		return c.Round(besselIAsymptotic(c.WithGuard(32), nu, x))
	}
	return cancelling(c, 64, func(w *common.Context) (*big.Float, int) {
		return besselISeries(w, nu, x)
	})
}

func isOdd(n *big.Float) bool {
	i, _ := n.Int(nil)
	return i.Bit(0) == 1
}

func besselAsymptotic(c *common.Context, nu, x *big.Float) bool {
	xf := common.ToFloat64(x)
	nf := common.ToFloat64(nu)
	return xf > asymptoticFloor(c)/2 && xf > 4*nf*nf+16
}

// besselISeries returns (x/2)^ν · Σ (x²/4)^k / (k!·Γ(ν+k+1)) and the largest
// term exponent.
func besselISeries(w *common.Context, nu, x *big.Float) (*big.Float, int) {
	q := w.Ldexp(w.Square(x), -2)
	term := RGamma(w, w.Add(nu, w.Int(1)))
	sum := w.Round(term)
	scale := maxExponent(term)
	absNu := gomath.Abs(common.ToFloat64(nu))
	nk := w.Round(nu)
	one := w.Int(1)
	for k := int64(1); ; k++ {
		nk = w.Add(nk, one)
		term = w.Quo(w.Mul(term, q), w.MulInt(nk, k))
		scale = max(scale, maxExponent(term))
		if float64(k) > absNu && common.Negligible(term, sum, w.Prec()) {
			break
		}
		sum = w.Add(sum, term)
	}
	if nu.Sign() == 0 {
		return sum, scale
	}
	p := operations.Pow(w, w.Half(x), nu)
	return w.Mul(p, sum), scale + common.Exponent(p)
}

// besselIAsymptotic returns e^x/√(2πx) · Σ (-1)^k a_k(ν)/x^k.
func besselIAsymptotic(w *common.Context, nu, x *big.Float) *big.Float {
	mu := w.Ldexp(w.Square(nu), 2)
	term := w.Int(1)
	sum := w.Int(1)
	eightX := w.Ldexp(x, 3)
	for k := int64(1); ; k++ {
		odd := w.Int((2*k - 1) * (2*k - 1))
		next := w.Quo(w.Mul(term, w.Sub(odd, mu)), w.MulInt(eightX, k))
		if common.Negligible(next, sum, w.Prec()) || common.CmpAbs(next, term) > 0 {
			break
		}
		term = next
		sum = w.Add(sum, term)
	}
	pre := w.Quo(operations.Exp(w, x), w.Sqrt(w.Mul(w.Ldexp(utilities.Pi(w), 1), x)))
	return w.Mul(pre, sum)
}
