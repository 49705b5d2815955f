package bitset

import "math/bits"

/*
Bitset is a compact bit sequence stored least significant bit first within
each byte. It is the portable exchange format for span contents: bit i of a
span is bit i%8 of byte i/8, whatever the span's element type and cursor.
*/

////////////////////////////////////////////////////////////////////////////////

type Bitset []byte

// New returns a zeroed bitset able to hold n bits.
func New(n int) Bitset {
	return make([]byte, (n+7)/8)
}

// Bits returns the capacity of the bitset in bits.
func (b Bitset) Bits() int {
	return 8 * len(b)
}

func (b Bitset) SetBit(i int) {
	b[i/8] |= 1 << (i % 8)
}

func (b Bitset) ClearBit(i int) {
	b[i/8] &^= 1 << (i % 8)
}

// Put sets or clears bit i.
func (b Bitset) Put(i int, v bool) {
	if v {
		b.SetBit(i)
	} else {
		b.ClearBit(i)
	}
}

func (b Bitset) HasBit(i int) bool {
	return b[i/8]&(1<<(i%8)) != 0
}

// Count returns the number of set bits.
func (b Bitset) Count() int {
	n := 0
	for _, v := range b {
		n += bits.OnesCount8(v)
	}
	return n
}
