package advanced

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/GriffinCanCode/specval/internal/math/common"
)

var bernoulliTable struct {
	sync.Mutex
	b []*big.Rat // b[k-1] = B_2k
}

// BernoulliRat returns B_2, B_4, ..., B_2n as exact rationals.
func BernoulliRat(n int) []*big.Rat {
	bernoulliTable.Lock()
	defer bernoulliTable.Unlock()
	if len(bernoulliTable.b) >= n {
		return bernoulliTable.b[:n]
	}

	t := tangentNumbers(n)
	b := make([]*big.Rat, n)
	for k := 1; k <= n; k++ {
		// B_2k = (-1)^(k-1) · 2k · T_k / (4^k · (4^k - 1))
		num := new(big.Int).Mul(big.NewInt(int64(2*k)), t[k])
		if k%2 == 0 {
			num.Neg(num)
		}
		four := new(big.Int).Lsh(big.NewInt(1), uint(2*k))
		den := new(big.Int).Sub(four, big.NewInt(1))
		den.Mul(den, four)
		b[k-1] = new(big.Rat).SetFrac(num, den)
	}
	bernoulliTable.b = b
	return b
}

// tangentNumbers returns T_1..T_n (index 0 unused) by the Brent-Harvey recurrence.
func tangentNumbers(n int) []*big.Int {
	t := make([]*big.Int, n+1)
	if n < 1 {
		return t
	}
	t[1] = big.NewInt(1)
	for k := 2; k <= n; k++ {
		t[k] = new(big.Int).Mul(big.NewInt(int64(k-1)), t[k-1])
	}
	for k := 2; k <= n; k++ {
		for j := k; j <= n; j++ {
			a := new(big.Int).Mul(big.NewInt(int64(j-k)), t[j-1])
			b := new(big.Int).Mul(big.NewInt(int64(j-k+2)), t[j])
			t[j] = a.Add(a, b)
		}
	}
	return t
}

// stirlingTerms is enough Bernoulli terms for the asymptotic series at
// arguments beyond stirlingShift.
func stirlingTerms(c *common.Context) int {
	return int(c.Prec())/7 + 8
}

// stirlingShift is the argument beyond which the Stirling-type series
// converge to the context precision.
func stirlingShift(c *common.Context) int64 {
	return int64(float64(c.Prec())*0.6931471805599453/3.141592653589793) + 2
}

// bernoulliFloats returns B_2..B_2n rounded to the context precision.
func bernoulliFloats(c *common.Context) []*big.Float {
	n := stirlingTerms(c)
	return c.Memo(fmt.Sprintf("bernoulli/%d", n), func() any {
		rats := BernoulliRat(n)
		out := make([]*big.Float, n)
		for i, r := range rats {
			out[i] = c.New().SetRat(r)
		}
		return out
	}).([]*big.Float)
}
