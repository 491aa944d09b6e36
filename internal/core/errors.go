package core

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is reported when a boundary head vector does not match the
// arity of the host's boundary table.
var ErrShapeMismatch = errors.New("boundary head vector length does not match boundary table")

// ShapeMismatchError carries the expected and supplied lengths.
type ShapeMismatchError struct {
	Want int
	Got  int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%v: table has %d entries, vector has %d", ErrShapeMismatch, e.Want, e.Got)
}

// Is lets errors.Is match against ErrShapeMismatch.
func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}
