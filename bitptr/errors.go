package bitptr

import "fmt"

/*
Errors that can be returned by pointer construction and slicing. Each error is
a value type whose Is method matches any instance of the same type, so callers
can test with errors.Is(err, MisalignedError{}).
*/

////////////////////////////////////////////////////////////////////////////////

// MisalignedError is returned when an element address is not a multiple of
// the element's alignment.
type MisalignedError struct {
	Addr  uintptr
	Align uintptr
}

// Error returns a string representation of the error.
func (e MisalignedError) Error() string {
	return fmt.Sprintf("address %#x is not aligned to %d bytes", e.Addr, e.Align)
}

// Is returns true if the target error is a MisalignedError.
func (e MisalignedError) Is(target error) bool {
	_, ok := target.(MisalignedError)
	return ok
}

// LengthOverflowError is returned when a bit count does not fit in the length
// field, or when the span would run past the end of the address space.
type LengthOverflowError struct {
	Bits uint64
	Max  uint64
}

// Error returns a string representation of the error.
func (e LengthOverflowError) Error() string {
	return fmt.Sprintf("bit count %d exceeds addressable maximum %d", e.Bits, e.Max)
}

// Is returns true if the target error is a LengthOverflowError.
func (e LengthOverflowError) Is(target error) bool {
	_, ok := target.(LengthOverflowError)
	return ok
}

// InvalidNullConstructionError is returned when construction is attempted at
// the zero address. Only None produces the null pointer.
type InvalidNullConstructionError struct {
	Bits uintptr
}

// Error returns a string representation of the error.
func (e InvalidNullConstructionError) Error() string {
	return fmt.Sprintf("cannot construct a %d-bit span at the null address", e.Bits)
}

// Is returns true if the target error is an InvalidNullConstructionError.
func (e InvalidNullConstructionError) Is(target error) bool {
	_, ok := target.(InvalidNullConstructionError)
	return ok
}

// HeadOverflowError is returned when a head byte or head bit does not fit in
// its field.
type HeadOverflowError struct {
	HeadByte uint8
	HeadBit  uint8
	Align    uintptr
}

// Error returns a string representation of the error.
func (e HeadOverflowError) Error() string {
	return fmt.Sprintf(
		"head byte %d bit %d out of range for %d-byte element", e.HeadByte, e.HeadBit, e.Align,
	)
}

// Is returns true if the target error is a HeadOverflowError.
func (e HeadOverflowError) Is(target error) bool {
	_, ok := target.(HeadOverflowError)
	return ok
}

// RangeError is returned when slicing bounds fall outside [0, len].
type RangeError struct {
	Start uintptr
	End   uintptr
	Len   uintptr
}

// Error returns a string representation of the error.
func (e RangeError) Error() string {
	return fmt.Sprintf("range [%d, %d) out of bounds for span of %d bits", e.Start, e.End, e.Len)
}

// Is returns true if the target error is a RangeError.
func (e RangeError) Is(target error) bool {
	_, ok := target.(RangeError)
	return ok
}
