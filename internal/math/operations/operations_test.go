package operations

import (
	gomath "math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/specval/internal/math/common"
)

var ctx = common.NewContext(50)

func num(s string) *big.Float {
	x, _, err := ctx.New().Parse(s, 10)
	if err != nil {
		panic(err)
	}
	return x
}

// assertDigits checks that got agrees with the decimal want to the given
// number of significant digits.
func assertDigits(t *testing.T, want string, got *big.Float, digits int) {
	t.Helper()
	require.False(t, got.IsInf(), "want %s, got %s", want, got)
	w, _, err := new(big.Float).SetPrec(512).Parse(want, 10)
	require.NoError(t, err)
	diff := new(big.Float).SetPrec(512).Sub(got, w)
	diff.Abs(diff)
	tol := new(big.Float).SetPrec(512).Abs(w)
	for i := 0; i < digits; i++ {
		tol.Quo(tol, big.NewFloat(10))
	}
	assert.True(t, diff.Cmp(tol) <= 0, "want %s, got %s", want, got.Text('g', digits+5))
}

func TestExp(t *testing.T) {
	assertDigits(t, "2.71828182845904523536028747135266249775724709369995957496697", Exp(ctx, num("1")), 48)
	assertDigits(t, "6.73794699908546709663604842314842424884958502735508543030553e-3", Exp(ctx, num("-5")), 48)
	assertDigits(t, "2.68811714181613544841262555158001358736111187737419224151916e+43", Exp(ctx, num("100")), 48)

	assert.Equal(t, 0, Exp(ctx, ctx.New()).Cmp(ctx.Int(1)))
	assert.True(t, common.IsPosInf(Exp(ctx, ctx.Inf(1))))
	assert.Equal(t, 0, Exp(ctx, ctx.Inf(-1)).Sign())

	huge := ctx.Ldexp(ctx.Int(1), 40)
	assert.True(t, common.IsPosInf(Exp(ctx, huge)))
	assert.Equal(t, 0, Exp(ctx, ctx.Neg(huge)).Sign())

	// e^x·e^-x = 1
	x := num("37.25")
	assertDigits(t, "1", ctx.Mul(Exp(ctx, x), Exp(ctx, ctx.Neg(x))), 48)
}

func TestLog(t *testing.T) {
	assertDigits(t, "2.30258509299404568401799145468436420760110148862877297603333", Log(ctx, num("10")), 48)
	assertDigits(t, "4.05465108108164381978013115464349136571990423462494197614014e-1", Log(ctx, num("1.5")), 48)
	assertDigits(t, "-6.93147180559945309417232121458176568075500134360255254120680e-1", Log(ctx, num("0.5")), 48)

	assert.Equal(t, 0, Log(ctx, ctx.Int(1)).Sign())
	assert.True(t, common.IsNegInf(Log(ctx, ctx.New())))
	assert.True(t, common.IsPosInf(Log(ctx, ctx.Inf(1))))
	assert.Panics(t, func() { Log(ctx, ctx.Int(-1)) })

	// log(e^x) = x far from 1
	x := num("-123.5")
	assertDigits(t, "-123.5", Log(ctx, Exp(ctx, x)), 47)
}

func TestLog1pExpm1(t *testing.T) {
	assertDigits(t, "9.99999999999999999999999999999500000000000000000000000000000e-31", Log1p(ctx, num("1e-30")), 48)
	assertDigits(t, "1.00000000000000000000500000000000000000001666666666666666667e-20", Expm1(ctx, num("1e-20")), 48)
	assertDigits(t, "6.93147180559945309417232121458176568075500134360255254120680e-1", Log1p(ctx, num("1")), 48)
	assertDigits(t, "1.71828182845904523536028747135266249775724709369995957496697", Expm1(ctx, num("1")), 48)

	assert.True(t, common.IsNegInf(Log1p(ctx, ctx.Int(-1))))
	assert.Panics(t, func() { Log1p(ctx, ctx.Int(-2)) })
	assert.Equal(t, 0, Expm1(ctx, ctx.Inf(-1)).Cmp(ctx.Int(-1)))

	// round trip
	x := num("0.3125")
	assertDigits(t, "0.3125", Log1p(ctx, Expm1(ctx, x)), 48)
}

func TestPow(t *testing.T) {
	assertDigits(t, "1.41421356237309504880168872420969807856967187537694807317668", Pow(ctx, num("2"), num("0.5")), 48)
	assertDigits(t, "1.55884572681198956417470170735528513024852472842934256525023e+1", Pow(ctx, num("3"), num("2.5")), 48)

	assert.Equal(t, 0, Pow(ctx, num("7"), ctx.New()).Cmp(ctx.Int(1)))
	assert.Equal(t, 0, Pow(ctx, ctx.New(), num("2")).Sign())
	assert.True(t, common.IsPosInf(Pow(ctx, ctx.New(), num("-2"))))
	assert.True(t, common.IsPosInf(Pow(ctx, num("2"), ctx.Inf(1))))
	assert.Equal(t, 0, Pow(ctx, num("2"), ctx.Inf(-1)).Sign())
	assert.Equal(t, 0, Pow(ctx, num("0.5"), ctx.Inf(1)).Sign())
	assert.Panics(t, func() { Pow(ctx, num("-2"), num("0.5")) })
}

func TestLog2AbsAndGuard(t *testing.T) {
	assert.InDelta(t, 10.0, Log2Abs(num("1024")), 1e-12)
	assert.InDelta(t, 3000*gomath.Log2(10), Log2Abs(num("-1e3000")), 1e-6)
	assert.True(t, gomath.IsInf(Log2Abs(ctx.New()), -1))

	assert.Equal(t, uint(64), GuardFor(0.5))
	assert.Equal(t, uint(74), GuardFor(1000))
	assert.Equal(t, uint(104), GuardFor(gomath.Inf(1)))
}

func TestTrig(t *testing.T) {
	assertDigits(t, "0.5", SinPi(ctx, ctx.Rat(1, 6)), 48)
	assertDigits(t, "0.5", CosPi(ctx, ctx.Rat(1, 3)), 48)
	assertDigits(t, "0.707106781186547524400844362104849039284835937688474036588340", SinPi(ctx, ctx.Rat(1, 4)), 48)
	assertDigits(t, "-0.5", SinPi(ctx, ctx.Rat(-1, 6)), 48)
	assertDigits(t, "-0.5", CosPi(ctx, ctx.Rat(2, 3)), 48)

	t.Run("exact zeros", func(t *testing.T) {
		for _, x := range []string{"0", "1", "-3", "1e40"} {
			assert.Equal(t, 0, SinPi(ctx, num(x)).Sign(), x)
		}
		assert.Equal(t, 0, CosPi(ctx, num("0.5")).Sign())
		assert.Equal(t, 0, CosPi(ctx, num("-7.5")).Sign())
		assert.Equal(t, 0, CosPi(ctx, num("1")).Cmp(ctx.Int(-1)))
	})

	t.Run("large arguments reduce exactly", func(t *testing.T) {
		assertDigits(t, "1", SinPi(ctx, num("1000000.5")), 48)
		assertDigits(t, "-1", SinPi(ctx, num("1000001.5")), 48)
	})

	assert.Panics(t, func() { SinPi(ctx, ctx.Inf(1)) })
}

func TestHyperbolic(t *testing.T) {
	assertDigits(t, "7.61594155955764888119458282604793590412768597257936551596811e-1", Tanh(ctx, num("1")), 48)
	assertDigits(t, "-7.61594155955764888119458282604793590412768597257936551596811e-1", Tanh(ctx, num("-1")), 48)
	assertDigits(t, "5.49306144334054845697622618461262852323745278911374725867347e-1", Atanh(ctx, num("0.5")), 48)
	assertDigits(t, "1e-30", Tanh(ctx, num("1e-30")), 48)

	assert.Equal(t, 0, Tanh(ctx, ctx.Inf(-1)).Cmp(ctx.Int(-1)))
	assert.Equal(t, 0, Tanh(ctx, num("1000")).Cmp(ctx.Int(1)))
	assert.True(t, common.IsPosInf(Atanh(ctx, ctx.Int(1))))
	assert.True(t, common.IsNegInf(Atanh(ctx, ctx.Int(-1))))
	assert.Panics(t, func() { Atanh(ctx, num("1.5")) })

	// atanh(tanh x) = x
	assertDigits(t, "0.875", Atanh(ctx, Tanh(ctx, num("0.875"))), 47)
}

func TestLogExpFamily(t *testing.T) {
	t.Run("ExpMinus1RatioMinus1RatioMinusHalf", func(t *testing.T) {
		assertDigits(t, "2.18281828459045235360287471352662497757247093699959574966968e-1", ExpMinus1RatioMinus1RatioMinusHalf(ctx, num("1")), 48)
		assertDigits(t, "1.70918075647624811707826490246668224547194737518718792863289e-2", ExpMinus1RatioMinus1RatioMinusHalf(ctx, num("0.1")), 48)
		// x/6 + x²/24 near zero
		assertDigits(t, "1.66666666666666666666666666666666666666666666666666666666667e-40", ExpMinus1RatioMinus1RatioMinusHalf(ctx, num("1e-39")), 45)
		assert.Equal(t, 0, ExpMinus1RatioMinus1RatioMinusHalf(ctx, ctx.New()).Sign())
		assert.True(t, common.IsPosInf(ExpMinus1RatioMinus1RatioMinusHalf(ctx, ctx.Inf(1))))
		assert.Equal(t, 0, ExpMinus1RatioMinus1RatioMinusHalf(ctx, ctx.Inf(-1)).Cmp(ctx.Rat(-1, 2)))
	})

	t.Run("Log1MinusExp", func(t *testing.T) {
		assertDigits(t, "-4.58675145387081891021643645067329701876977906692194144834998e-1", Log1MinusExp(ctx, num("-1")), 48)
		assert.True(t, common.IsNegInf(Log1MinusExp(ctx, ctx.New())))
		assert.Equal(t, 0, Log1MinusExp(ctx, ctx.Inf(-1)).Sign())
		assert.Panics(t, func() { Log1MinusExp(ctx, num("0.5")) })
	})

	t.Run("LogExpMinus1", func(t *testing.T) {
		assertDigits(t, "1.85458654213114094302735184990052594003830217897815422988407", LogExpMinus1(ctx, num("2")), 48)
		assert.True(t, common.IsNegInf(LogExpMinus1(ctx, ctx.New())))
		assert.True(t, common.IsPosInf(LogExpMinus1(ctx, ctx.Inf(1))))
		assert.Panics(t, func() { LogExpMinus1(ctx, num("-0.5")) })
	})

	t.Run("LogSumExp", func(t *testing.T) {
		assertDigits(t, "2.31326168751822283404899549496785564191528008567034837471906", LogSumExp(ctx, num("1"), num("2")), 48)
		assertDigits(t, "2.31326168751822283404899549496785564191528008567034837471906", LogSumExp(ctx, num("2"), num("1")), 48)
		assert.True(t, common.IsPosInf(LogSumExp(ctx, ctx.Inf(1), num("1"))))
		assert.Equal(t, 0, LogSumExp(ctx, ctx.Inf(-1), num("3")).Cmp(num("3")))
		assert.True(t, common.IsNegInf(LogSumExp(ctx, ctx.Inf(-1), ctx.Inf(-1))))
	})

	t.Run("Logistic", func(t *testing.T) {
		assertDigits(t, "7.31058578630004879251159241821836274365144640165056519276366e-1", Logistic(ctx, num("1")), 48)
		assertDigits(t, "2.68941421369995120748840758178163725634855359834943480723634e-1", Logistic(ctx, num("-1")), 48)
		assert.Equal(t, 0, Logistic(ctx, ctx.New()).Cmp(ctx.Rat(1, 2)))
		assert.Equal(t, 0, Logistic(ctx, ctx.Inf(1)).Cmp(ctx.Int(1)))
		assert.Equal(t, 0, Logistic(ctx, ctx.Inf(-1)).Sign())
	})

	t.Run("LogisticLn", func(t *testing.T) {
		assertDigits(t, "-1.31326168751822283404899549496785564191528008567034837471906", LogisticLn(ctx, num("-1")), 48)
		assertDigits(t, "-3.13261687518222834048995494967855641915280085670348374719060e-1", LogisticLn(ctx, num("1")), 48)
		assert.Equal(t, 0, LogisticLn(ctx, ctx.Inf(1)).Sign())
		assert.True(t, common.IsNegInf(LogisticLn(ctx, ctx.Inf(-1))))
	})

	t.Run("derivatives", func(t *testing.T) {
		assert.Equal(t, 0, LogisticDeriv(ctx, ctx.New()).Cmp(ctx.Rat(1, 4)))
		assert.Equal(t, 0, LogisticDeriv2(ctx, ctx.New()).Sign())
		assert.Equal(t, 0, LogisticDeriv(ctx, ctx.Inf(1)).Sign())

		for _, x := range []float64{-3, -0.5, 0.75, 4} {
			s := 1 / (1 + gomath.Exp(-x))
			d1 := s * (1 - s)
			d2 := d1 * (1 - 2*s)
			assert.InEpsilon(t, d1, common.ToFloat64(LogisticDeriv(ctx, ctx.Float64(x))), 1e-14)
			assert.InEpsilon(t, d2, common.ToFloat64(LogisticDeriv2(ctx, ctx.Float64(x))), 1e-13)
		}
	})
}
