package utilities

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/specval/internal/math/common"
)

// Persisted tokens for values that have no finite decimal form.
const (
	TokenNaN    = "NaN"
	TokenPosInf = "Infinity"
	TokenNegInf = "-Infinity"
)

var (
	// ErrNaNArgument is returned when an argument cell holds NaN.
	ErrNaNArgument = errors.New("NaN argument")

	// ErrInvalidNumber is returned for cells that are neither a token nor a decimal.
	ErrInvalidNumber = errors.New("invalid number")
)

// ParseToken recognises the three special tokens.
func ParseToken(text string) (common.Result, bool) {
	switch strings.TrimSpace(text) {
	case TokenNaN:
		return common.Unrepresentable(ErrNaNArgument), true
	case TokenPosInf:
		return common.Result{Kind: common.KindPosInf}, true
	case TokenNegInf:
		return common.Result{Kind: common.KindNegInf}, true
	default:
		return common.Result{}, false
	}
}

// ParseArgument converts a fixture cell into a value at the context precision.
// Infinities never enter arithmetic; NaN is rejected with ErrNaNArgument.
func ParseArgument(c *common.Context, text string) (*big.Float, error) {
	if r, ok := ParseToken(text); ok {
		if r.IsNaN() {
			return nil, ErrNaNArgument
		}
		return c.Round(r.Float()), nil
	}

	s := strings.TrimSpace(text)
	if s == "" {
		return nil, fmt.Errorf("%w: empty cell", ErrInvalidNumber)
	}
	x, _, err := c.New().Parse(s, 10)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidNumber, text, err)
	}
	return x, nil
}

// FormatResult renders r with the given number of significant digits.
//
// Finite values use fixed notation when the decimal exponent e of the leading
// digit satisfies -16 < e < digits and d.ddd…e±X otherwise. All digits are
// kept, trailing zeros included.
func FormatResult(r common.Result, digits int) string {
	switch r.Kind {
	case common.KindUnrepresentable:
		return TokenNaN
	case common.KindPosInf:
		return TokenPosInf
	case common.KindNegInf:
		return TokenNegInf
	}
	return FormatFloat(r.Value, digits)
}

// FormatFloat renders a finite x with the given number of significant digits.
func FormatFloat(x *big.Float, digits int) string {
	if x.IsInf() {
		if x.Sign() > 0 {
			return TokenPosInf
		}
		return TokenNegInf
	}
	if x.Sign() == 0 {
		return "0.0"
	}
	if digits < 1 {
		digits = 1
	}

	// "-d.ddddde+XX"
	text := x.Text('e', digits-1)
	sign := ""
	if text[0] == '-' {
		sign, text = "-", text[1:]
	}
	mant, expText, _ := strings.Cut(text, "e")
	exponent, err := strconv.Atoi(expText)
	if err != nil {
		return sign + text
	}
	ds := strings.Replace(mant, ".", "", 1)

	minFixed := min(-(digits / 3), -5)
	if minFixed < exponent && exponent < digits {
		var split int
		if exponent < 0 {
			ds = strings.Repeat("0", -exponent) + ds
			split = 1
		} else {
			split = exponent + 1
		}
		return sign + ds[:split] + "." + ds[split:]
	}

	out := sign + ds[:1] + "." + ds[1:]
	if exponent >= 0 {
		return out + "e+" + strconv.Itoa(exponent)
	}
	return out + "e" + strconv.Itoa(exponent)
}
