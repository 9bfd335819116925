package advanced

import (
	"math/big"

	"github.com/GriffinCanCode/specval/internal/math/common"
)

const maxEscalations = 5

// cancelling evaluates fn with growing guard bits until the bits lost to
// cancellation fit inside the guard. fn returns its result together with the
// binary exponent of the largest intermediate it combined.
func cancelling(c *common.Context, guard uint, fn func(w *common.Context) (*big.Float, int)) *big.Float {
	if guard < 64 {
		guard = 64
	}
	var res *big.Float
	for attempt := 0; attempt < maxEscalations; attempt++ {
		var scale int
		res, scale = fn(c.WithGuard(guard))
		if res.IsInf() {
			break
		}
		if res.Sign() == 0 {
			guard = 2*guard + 64
			continue
		}
		lost := scale - common.Exponent(res)
		if lost < int(guard)-32 {
			break
		}
		guard = uint(lost) + 64
	}
	return c.Round(res)
}

// maxExponent returns the largest binary exponent among the non-zero finite xs.
func maxExponent(xs ...*big.Float) int {
	m := -1 << 31
	for _, x := range xs {
		if x == nil || x.Sign() == 0 || x.IsInf() {
			continue
		}
		m = max(m, common.Exponent(x))
	}
	return m
}

// asymptoticFloor is the magnitude beyond which an asymptotic expansion whose
// smallest term behaves like e^-t reaches full precision.
func asymptoticFloor(c *common.Context) float64 {
	return float64(c.Prec())*0.6931471805599453 + 32
}
