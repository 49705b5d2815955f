package store

import "math/bits"

/*
Storage elements are the fundamental unsigned integers that may back a bit
span. Every helper here is a pure function of the element type; nothing is
looked up at runtime beyond the type parameter.
*/

////////////////////////////////////////////////////////////////////////////////

// Element is the set of integer types that may back a bit span.
type Element interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Ones returns an element with every bit set.
func Ones[T Element]() T {
	return ^T(0)
}

// Zero returns an element with every bit clear.
func Zero[T Element]() T {
	return 0
}

// Fill extends a single bit to every bit of an element.
func Fill[T Element](bit bool) T {
	if bit {
		return Ones[T]()
	}
	return 0
}

// Bits returns the width of T in bits.
func Bits[T Element]() uint8 {
	return uint8(bits.OnesCount64(uint64(Ones[T]())))
}

// Bytes returns the width of T in bytes.
func Bytes[T Element]() uintptr {
	return uintptr(Bits[T]() / 8)
}

// Align returns the alignment of T in bytes. Elements are always naturally
// aligned, so this is the byte width, independent of what the platform ABI
// would choose for the type.
func Align[T Element]() uintptr {
	return Bytes[T]()
}

// IndexBits returns log2 of the bit width, the number of bits needed to name
// a bit inside an element.
func IndexBits[T Element]() uint8 {
	return uint8(bits.TrailingZeros8(Bits[T]()))
}

// AlignBits returns log2 of the alignment, the number of low address bits
// that are always zero for an element address.
func AlignBits[T Element]() uint8 {
	return IndexBits[T]() - 3
}

// CountOnes counts the set bits in x.
func CountOnes[T Element](x T) int {
	return bits.OnesCount64(uint64(x))
}

// CountZeros counts the clear bits in x.
func CountZeros[T Element](x T) int {
	return int(Bits[T]()) - CountOnes(x)
}

// Name returns the short name of T's width class, such as "u16".
func Name[T Element]() string {
	switch Bits[T]() {
	case 8:
		return "u8"
	case 16:
		return "u16"
	case 32:
		return "u32"
	default:
		return "u64"
	}
}
