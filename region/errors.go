package region

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

/*
Errors that can be returned by region operations. Pointer construction and
slicing errors come from the bitptr package unchanged.
*/

////////////////////////////////////////////////////////////////////////////////

// ErrNullPointer is returned when a null pointer is passed to a region.
var ErrNullPointer = errors.New("null bit pointer")

// OutOfRegionError is returned when a pointer's live bits are not all inside
// the region.
type OutOfRegionError struct {
	Addr uintptr
	Base uintptr
	End  uintptr
}

// Error returns a string representation of the error.
func (e OutOfRegionError) Error() string {
	return fmt.Sprintf("span at %#x is outside region [%#x, %#x)", e.Addr, e.Base, e.End)
}

// Is returns true if the target error is an OutOfRegionError.
func (e OutOfRegionError) Is(target error) bool {
	_, ok := target.(OutOfRegionError)
	return ok
}

// LengthMismatchError is returned when a transfer between two spans, or
// between a span and a bitset, finds the source and destination sizes differ.
type LengthMismatchError struct {
	Dst uintptr
	Src uintptr
}

// Error returns a string representation of the error.
func (e LengthMismatchError) Error() string {
	return fmt.Sprintf("length mismatch: destination has %d bits, source has %d", e.Dst, e.Src)
}

// Is returns true if the target error is a LengthMismatchError.
func (e LengthMismatchError) Is(target error) bool {
	_, ok := target.(LengthMismatchError)
	return ok
}
