package common

import (
	gomath "math"
	"math/big"
	"sync"
)

const (
	// WorkingDigits is the decimal precision every reference value is computed at.
	WorkingDigits = 500

	// OutputDigits is the number of significant digits written to fixtures.
	OutputDigits = 50

	baseGuardBits = 32
)

// Context carries the binary precision of an evaluation. It is immutable once
// built and safe to share between goroutines.
type Context struct {
	digits int
	prec   uint
}

type memoKey struct {
	name string
	prec uint
}

// Constants are cached per (name, precision) so that derived contexts with the
// same precision share π, ln 2, Bernoulli tables and quadrature nodes.
var memo sync.Map

var (
	working     *Context
	workingOnce sync.Once
)

// NewContext creates a context for the given number of decimal digits.
func NewContext(digits int) *Context {
	if digits < 1 {
		digits = 1
	}
	bits := uint(gomath.Ceil(float64(digits)*gomath.Log2(10))) + baseGuardBits
	return &Context{digits: digits, prec: bits}
}

// Working returns the process-wide working context (WorkingDigits digits).
func Working() *Context {
	workingOnce.Do(func() {
		working = NewContext(WorkingDigits)
	})
	return working
}

// Digits returns the decimal digits the context was created for.
func (c *Context) Digits() int { return c.digits }

// Prec returns the binary precision in bits.
func (c *Context) Prec() uint { return c.prec }

// WithGuard returns a context carrying extra guard bits. The total precision is
// rounded up to a multiple of 64 so that nearby requests share memoized values.
func (c *Context) WithGuard(bits uint) *Context {
	prec := (c.prec + bits + 63) &^ 63
	return &Context{digits: c.digits, prec: prec}
}

// Memo returns the cached value for key at this precision, computing it with fn
// on first use. fn may run more than once under contention; only one result is kept.
func (c *Context) Memo(key string, fn func() any) any {
	k := memoKey{name: key, prec: c.prec}
	if v, ok := memo.Load(k); ok {
		return v
	}
	v, _ := memo.LoadOrStore(k, fn())
	return v
}

// Epsilon returns 2^-prec.
func (c *Context) Epsilon() *big.Float {
	return new(big.Float).SetPrec(c.prec).SetMantExp(big.NewFloat(1), -int(c.prec))
}
