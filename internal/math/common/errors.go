package common

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrDomain marks arguments for which a function has no real value.
	ErrDomain = errors.New("argument outside the real domain")

	// ErrPole marks arguments at a pole where the sign of the infinity is undefined.
	ErrPole = fmt.Errorf("%w: pole", ErrDomain)
)

// DomainError wraps ErrDomain with the function name and a short reason.
func DomainError(function, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", function, ErrDomain, fmt.Sprintf(format, args...))
}

// PoleError wraps ErrPole with the function name.
func PoleError(function string, x fmt.Stringer) error {
	return fmt.Errorf("%s(%s): %w", function, x, ErrPole)
}

// Throw aborts an evaluation from inside a numerical kernel. The panic is
// turned back into an error by Catch at the evaluator boundary.
func Throw(function, format string, args ...any) {
	panic(DomainError(function, format, args...))
}

// Catch recovers panics raised by Throw and the big.ErrNaN panics raised by
// math/big, storing them in *err. Any other panic propagates.
func Catch(err *error) {
	switch r := recover().(type) {
	case nil:
	case big.ErrNaN:
		*err = fmt.Errorf("%w: %s", ErrDomain, r.Error())
	case error:
		if !errors.Is(r, ErrDomain) {
			panic(r)
		}
		*err = r
	default:
		panic(r)
	}
}
