package cursor

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/wkalt/bitptr/store"
)

/*
Cursors map a logical bit index inside one storage element to the physical bit
that holds it, expressed as numeric significance (bit p is the bit with value
1 << p). The mapping is independent of the machine's byte order; where a bit
lands in memory is handled separately by Locate.

Cursors are empty structs used as type parameters, so the pair of cursor and
element width is fixed at compile time for every pointer.
*/

////////////////////////////////////////////////////////////////////////////////

// Cursor is a bit-ordering convention.
type Cursor interface {
	// Position returns the significance of the bit holding index. It panics
	// with an assertion failure if index >= width.
	Position(width, index uint8) uint8

	// Index is the inverse of Position.
	Index(width, position uint8) uint8

	String() string
}

// Lsb0 orders bits from the least significant to the most significant.
type Lsb0 struct{}

// Msb0 orders bits from the most significant to the least significant.
type Msb0 struct{}

// Widths lists the element widths a cursor accepts.
var Widths = []uint8{8, 16, 32, 64}

// Cursors lists every cursor.
var Cursors = []Cursor{Lsb0{}, Msb0{}}

func (Lsb0) Position(width, index uint8) uint8 {
	checkIndex(width, index)
	return index
}

func (Lsb0) Index(width, position uint8) uint8 {
	checkIndex(width, position)
	return position
}

func (Lsb0) String() string {
	return "Lsb0"
}

func (Msb0) Position(width, index uint8) uint8 {
	checkIndex(width, index)
	return width - 1 - index
}

func (Msb0) Index(width, position uint8) uint8 {
	checkIndex(width, position)
	return width - 1 - position
}

func (Msb0) String() string {
	return "Msb0"
}

// ByName returns the cursor with the given name, ignoring case.
func ByName(name string) (Cursor, error) {
	for _, c := range Cursors {
		if strings.EqualFold(c.String(), name) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("unknown cursor %q", name)
}

// Mask returns the element with only the bit holding index set.
func Mask[T store.Element, C Cursor](index uint8) T {
	var c C
	return T(1) << c.Position(store.Bits[T](), index)
}

// RangeMask returns the element with the bits holding indices [from, to) set.
// Both cursors map a contiguous run of indices onto a contiguous run of
// positions, so the mask is a single shifted run of ones.
func RangeMask[T store.Element, C Cursor](from, to uint8) T {
	width := store.Bits[T]()
	if from > to || to > width {
		panic(errors.AssertionFailedf("cursor: mask range [%d, %d) exceeds width %d", from, to, width))
	}
	if from == to {
		return 0
	}
	n := to - from
	if n == width {
		return store.Ones[T]()
	}
	var c C
	lo := min(c.Position(width, from), c.Position(width, to-1))
	return T((uint64(1)<<n - 1) << lo)
}

func checkIndex(width, index uint8) {
	switch width {
	case 8, 16, 32, 64:
	default:
		panic(errors.AssertionFailedf("cursor: unsupported element width %d", width))
	}
	if index >= width {
		panic(errors.WithAssertionFailure(IndexOutOfRangeError{Index: index, Width: width}))
	}
}
