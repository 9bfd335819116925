package utilities

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/specval/internal/math/common"
)

// assertDigits checks that got agrees with the decimal want to the given
// number of significant digits.
func assertDigits(t *testing.T, want string, got *big.Float, digits int) {
	t.Helper()
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

func TestConstants(t *testing.T) {
	c := common.NewContext(60)

	assertDigits(t, "3.14159265358979323846264338327950288419716939937510582097494", Pi(c), 58)
	assertDigits(t, "0.693147180559945309417232121458176568075500134360255254120680", Ln2(c), 58)
	assertDigits(t, "1.41421356237309504880168872420969807856967187537694807317668", Sqrt2(c), 58)
	assertDigits(t, "1.77245385090551602729816748334114518279754945612238712821381", SqrtPi(c), 58)
	assertDigits(t, "2.50662827463100050241576528481104525300698674060993831662992", Sqrt2Pi(c), 58)
	assertDigits(t, "0.398942280401432677939946059934381868475858631164934657665926", InvSqrt2Pi(c), 58)

	assert.Same(t, Pi(c), Pi(c), "constants are memoized")
	assert.Equal(t, c.Prec(), Pi(c).Prec())
}

func TestParseToken(t *testing.T) {
	tests := []struct {
		text string
		kind common.Kind
		ok   bool
	}{
		{"NaN", common.KindUnrepresentable, true},
		{"Infinity", common.KindPosInf, true},
		{"-Infinity", common.KindNegInf, true},
		{"nan", 0, false},
		{"inf", 0, false},
		{"1.5", 0, false},
	}

	for _, tt := range tests {
		r, ok := ParseToken(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		if ok {
			assert.Equal(t, tt.kind, r.Kind, tt.text)
		}
	}
}

func TestTokenRoundTrip(t *testing.T) {
	for _, tok := range []string{TokenNaN, TokenPosInf, TokenNegInf} {
		r, ok := ParseToken(tok)
		require.True(t, ok)
		assert.Equal(t, tok, FormatResult(r, common.OutputDigits))
	}
}

func TestParseArgument(t *testing.T) {
	c := common.NewContext(60)

	t.Run("decimal at working precision", func(t *testing.T) {
		x, err := ParseArgument(c, "0.1")
		require.NoError(t, err)
		assert.Equal(t, c.Prec(), x.Prec())
		// 0.1 is not a float64: the parsed value must be far closer than 2^-53
		assertDigits(t, "0.1", x, 55)
	})

	t.Run("exponent", func(t *testing.T) {
		x, err := ParseArgument(c, "-2.5e-300")
		require.NoError(t, err)
		assertDigits(t, "-2.5e-300", x, 55)
	})

	t.Run("infinities", func(t *testing.T) {
		x, err := ParseArgument(c, "Infinity")
		require.NoError(t, err)
		assert.True(t, common.IsPosInf(x))

		x, err = ParseArgument(c, "-Infinity")
		require.NoError(t, err)
		assert.True(t, common.IsNegInf(x))
	})

	t.Run("errors", func(t *testing.T) {
		_, err := ParseArgument(c, "NaN")
		assert.ErrorIs(t, err, ErrNaNArgument)

		_, err = ParseArgument(c, "")
		assert.ErrorIs(t, err, ErrInvalidNumber)

		_, err = ParseArgument(c, "1.2.3")
		assert.ErrorIs(t, err, ErrInvalidNumber)
	})
}

func TestFormatFloat(t *testing.T) {
	c := common.NewContext(60)
	zeros := func(n int) string { return strings.Repeat("0", n) }
	parse := func(s string) *big.Float {
		x, _, err := c.New().Parse(s, 10)
		require.NoError(t, err)
		return x
	}

	tests := []struct {
		name   string
		value  string
		digits int
		want   string
	}{
		{"half", "0.5", 50, "0.5" + zeros(49)},
		{"integer part", "24", 50, "24." + zeros(48)},
		{"negative", "-0.25", 3, "-0.250"},
		{"rounds", "123.456", 5, "123.46"},
		{"all digits left of the point", "12345", 5, "12345."},
		{"large switches to exponent", "123456", 5, "1.2346e+5"},
		{"small stays fixed", "1e-5", 50, "0.00001" + zeros(49)},
		{"fixed range shrinks with fewer digits", "1e-5", 6, "1.00000e-5"},
		{"tiny switches to exponent", "1e-20", 3, "1.00e-20"},
		{"huge", "2.5e60", 4, "2.500e+60"},
		{"fixed down to 1e-4", "0.000123", 3, "0.000123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(parse(tt.value), tt.digits))
		})
	}

	t.Run("zero", func(t *testing.T) {
		assert.Equal(t, "0.0", FormatFloat(c.New(), 50))
		assert.Equal(t, "0.0", FormatResult(common.Success(c.New()), 50))
	})

	t.Run("infinities", func(t *testing.T) {
		assert.Equal(t, TokenPosInf, FormatFloat(c.Inf(1), 50))
		assert.Equal(t, TokenNegInf, FormatResult(common.Success(c.Inf(-1)), 50))
	})

	t.Run("unrepresentable", func(t *testing.T) {
		assert.Equal(t, TokenNaN, FormatResult(common.Unrepresentable(common.ErrDomain), 50))
	})

	t.Run("thirds", func(t *testing.T) {
		third := c.Quo(c.Int(1), c.Int(3))
		assert.Equal(t, "0."+strings.Repeat("3", 50), FormatFloat(third, 50))
		assert.Equal(t, "-6."+strings.Repeat("6", 48)+"7", FormatFloat(c.Neg(c.Quo(c.Int(20), c.Int(3))), 50))
	})
}
