package cursor

import "fmt"

// IndexOutOfRangeError is carried by the panic raised when a cursor is asked
// about an index that does not fit in the element. It always indicates a bug
// in the caller's index arithmetic.
type IndexOutOfRangeError struct {
	Index uint8
	Width uint8
}

func (e IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("bit index %d out of range for %d-bit element", e.Index, e.Width)
}

// Is returns true if the target error is an IndexOutOfRangeError.
func (e IndexOutOfRangeError) Is(target error) bool {
	_, ok := target.(IndexOutOfRangeError)
	return ok
}
