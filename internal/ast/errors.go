package ast

import (
	"errors"
	"fmt"
)

// ErrContract is wrapped by every panic raised when a factory precondition
// does not hold. Callers (semantic analysis) must validate before building,
// so these are programming errors, not user diagnostics.
var ErrContract = errors.New("ast: contract violation")

func contractf(op, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrContract, op, fmt.Sprintf(format, args...))
}
