package common

import (
	"math/big"
)

// Kind classifies an evaluation outcome.
type Kind uint8

const (
	KindFinite Kind = iota
	KindPosInf
	KindNegInf
	KindUnrepresentable
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindFinite:
		return "finite"
	case KindPosInf:
		return "+inf"
	case KindNegInf:
		return "-inf"
	default:
		return "unrepresentable"
	}
}

// Result is the outcome of evaluating one fixture row.
type Result struct {
	Kind   Kind
	Value  *big.Float
	Reason error
}

// Success classifies v as finite or infinite.
func Success(v *big.Float) Result {
	switch {
	case IsPosInf(v):
		return Result{Kind: KindPosInf}
	case IsNegInf(v):
		return Result{Kind: KindNegInf}
	default:
		return Result{Kind: KindFinite, Value: v}
	}
}

// Unrepresentable creates a NaN result carrying the reason.
func Unrepresentable(reason error) Result {
	return Result{Kind: KindUnrepresentable, Reason: reason}
}

// Float returns the value as a big.Float; infinities map to ±Inf and
// unrepresentable results to nil.
func (r Result) Float() *big.Float {
	switch r.Kind {
	case KindFinite:
		return r.Value
	case KindPosInf:
		return new(big.Float).SetInf(false)
	case KindNegInf:
		return new(big.Float).SetInf(true)
	default:
		return nil
	}
}

// IsNaN reports whether the result is unrepresentable.
func (r Result) IsNaN() bool { return r.Kind == KindUnrepresentable }
