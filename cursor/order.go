package cursor

import (
	"fmt"

	"golang.org/x/sys/cpu"
)

/*
Byte order and memory traversal. A cursor fixes which numeric bit holds each
index; the machine's byte order then fixes which byte of the element in memory
holds that numeric bit. Single-byte elements have no inter-byte order, so their
traversal is the same on every machine.
*/

////////////////////////////////////////////////////////////////////////////////

// ByteOrder is the order in which a machine lays out the bytes of an element.
type ByteOrder uint8

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

// ByteOrders lists both byte orders.
var ByteOrders = []ByteOrder{LittleEndian, BigEndian}

// Native is the byte order of the running machine.
var Native = func() ByteOrder {
	if cpu.IsBigEndian {
		return BigEndian
	}
	return LittleEndian
}()

func (o ByteOrder) String() string {
	switch o {
	case LittleEndian:
		return "little"
	case BigEndian:
		return "big"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(o))
	}
}

// ParseByteOrder parses "little", "big", or "native".
func ParseByteOrder(s string) (ByteOrder, error) {
	switch s {
	case "little":
		return LittleEndian, nil
	case "big":
		return BigEndian, nil
	case "native":
		return Native, nil
	default:
		return 0, fmt.Errorf("unknown byte order %q", s)
	}
}

// Location is the place in memory of one bit of an element: a byte offset from
// the element's address and a bit within that byte.
type Location struct {
	Byte uint8
	Bit  uint8
}

// Offset returns the location as a bit offset from the element's address.
func (l Location) Offset() uint8 {
	return 8*l.Byte + l.Bit
}

// Locate returns the memory location of index within a width-bit element
// stored in the given byte order.
func Locate(c Cursor, width uint8, order ByteOrder, index uint8) Location {
	pos := c.Position(width, index)
	b := pos / 8
	if order == BigEndian {
		b = width/8 - 1 - b
	}
	return Location{Byte: b, Bit: pos % 8}
}

// Table is the complete traversal of one element: Bytes[i] and Bits[i] locate
// index i.
type Table struct {
	Cursor string `json:"cursor"`
	Width  uint8  `json:"width"`
	Order  string `json:"order"`
	Bytes  []int  `json:"bytes"`
	Bits   []int  `json:"bits"`
}

// Key identifies the table's cursor, width and byte order.
func (t Table) Key() string {
	return fmt.Sprintf("%s/%d/%s", t.Cursor, t.Width, t.Order)
}

// Traversal computes the table for a cursor, width and byte order.
func Traversal(c Cursor, width uint8, order ByteOrder) Table {
	t := Table{
		Cursor: c.String(),
		Width:  width,
		Order:  order.String(),
		Bytes:  make([]int, width),
		Bits:   make([]int, width),
	}
	for i := uint8(0); i < width; i++ {
		loc := Locate(c, width, order, i)
		t.Bytes[i] = int(loc.Byte)
		t.Bits[i] = int(loc.Bit)
	}
	return t
}

// Traversals computes every table, ordered by cursor, width, then byte order.
func Traversals() []Table {
	tables := make([]Table, 0, len(Cursors)*len(Widths)*len(ByteOrders))
	for _, c := range Cursors {
		for _, w := range Widths {
			for _, o := range ByteOrders {
				tables = append(tables, Traversal(c, w, o))
			}
		}
	}
	return tables
}
