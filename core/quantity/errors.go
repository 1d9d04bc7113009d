package quantity

import (
	"errors"
	"fmt"
)

var (
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrUnknownUnit       = errors.New("unknown unit")
)

// DimensionError describes an operation whose operands carry incompatible
// dimensions. Arithmetic panics with a *DimensionError; conversions return one.
type DimensionError struct {
	Op          string
	Left, Right Dimension
}

func (e *DimensionError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s: [%s] vs [%s]", ErrDimensionMismatch, e.Op, e.Left, e.Right)
}

func (e *DimensionError) Unwrap() error { return ErrDimensionMismatch }

func mismatch(op string, l, r Dimension) *DimensionError {
	return &DimensionError{Op: op, Left: l, Right: r}
}
