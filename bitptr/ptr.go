package bitptr

import (
	"math"

	"github.com/wkalt/bitptr/cursor"
	"github.com/wkalt/bitptr/store"
)

/*
Package bitptr implements a packed bit pointer: a two-word handle naming a span
of bits inside typed storage.

The pointer word holds the byte address of the span's first live bit. Because
element addresses are aligned, the low log2(alignment) bits of that address are
free to carry the byte offset of the head within its element:

	pointer word:  [ element address .......... | head byte ]
	length word:   [ live bit count ................ | head bit (3) ]

The element-relative head index is 8*headByte + headBit, and the logical bit
address of the span is 8*byteAddress + headBit. Slicing works on logical bit
addresses and re-derives the packed fields from them, so a slice may start in a
different byte or element than its parent.

The all-zero value is the null pointer. No validated construction produces it.
*/

////////////////////////////////////////////////////////////////////////////////

// BitAddr is an absolute bit offset: eight times a byte address plus a bit
// within that byte.
type BitAddr uint64

const (
	headBits = 3
	headMask = 1<<headBits - 1
)

// MaxBits is the largest bit count a pointer can describe.
const MaxBits = ^uintptr(0) >> headBits

// maxByteAddr is the highest byte address whose bits have a BitAddr.
const maxByteAddr = math.MaxUint64 >> headBits

// Ptr is a packed pointer to a span of bits in storage of element type T,
// ordered by cursor C. It is a plain value: it describes memory but does not
// own or synchronize it.
type Ptr[T store.Element, C cursor.Cursor] struct {
	ptr uintptr
	len uintptr
}

// None returns the null pointer.
func None[T store.Element, C cursor.Cursor]() Ptr[T, C] {
	return Ptr[T, C]{}
}

// Dangling returns the canonical empty pointer. Its address is the alignment
// of T, which is non-null and aligned but never dereferenced.
func Dangling[T store.Element, C cursor.Cursor]() Ptr[T, C] {
	return Ptr[T, C]{ptr: store.Align[T]()}
}

// EmptyAt returns an empty pointer positioned at addr. The address need not be
// aligned; its sub-element bytes become the head. A zero address, or one too
// high for its bits to have a BitAddr, yields the canonical dangling pointer.
func EmptyAt[T store.Element, C cursor.Cursor](addr uintptr) Ptr[T, C] {
	if addr == 0 || uint64(addr) > maxByteAddr {
		return Dangling[T, C]()
	}
	return Ptr[T, C]{ptr: addr}
}

// New constructs a pointer to bits live bits starting at bit headBit of byte
// headByte of the element at addr. Only the null address with a zero head byte
// is refused as null; the element at address zero is otherwise addressable.
func New[T store.Element, C cursor.Cursor](
	addr uintptr,
	headByte uint8,
	headBit uint8,
	bits uintptr,
) (Ptr[T, C], error) {
	align := store.Align[T]()
	if addr == 0 && headByte == 0 {
		return Ptr[T, C]{}, InvalidNullConstructionError{Bits: bits}
	}
	if addr&(align-1) != 0 {
		return Ptr[T, C]{}, MisalignedError{Addr: addr, Align: align}
	}
	if uintptr(headByte) >= align || headBit >= 8 {
		return Ptr[T, C]{}, HeadOverflowError{HeadByte: headByte, HeadBit: headBit, Align: align}
	}
	if bits > MaxBits {
		return Ptr[T, C]{}, LengthOverflowError{Bits: uint64(bits), Max: uint64(MaxBits)}
	}
	byteAddr := uint64(addr) + uint64(headByte)
	if byteAddr > maxByteAddr {
		return Ptr[T, C]{}, LengthOverflowError{Bits: uint64(bits), Max: 0}
	}
	start := byteAddr<<headBits | uint64(headBit)
	if uint64(bits) > math.MaxUint64-start {
		return Ptr[T, C]{}, LengthOverflowError{Bits: uint64(bits), Max: math.MaxUint64 - start}
	}
	return Ptr[T, C]{
		ptr: addr | uintptr(headByte),
		len: bits<<headBits | uintptr(headBit),
	}, nil
}

// FromBitAddr constructs a pointer to bits live bits starting at the logical
// bit address addr.
func FromBitAddr[T store.Element, C cursor.Cursor](addr BitAddr, bits uintptr) (Ptr[T, C], error) {
	byteAddr := uint64(addr >> headBits)
	if byteAddr > uint64(^uintptr(0)) {
		return Ptr[T, C]{}, LengthOverflowError{Bits: uint64(bits), Max: 0}
	}
	align := uint64(store.Align[T]())
	return New[T, C](
		uintptr(byteAddr&^(align-1)),
		uint8(byteAddr&(align-1)),
		uint8(addr&headMask),
		bits,
	)
}

// FromRaw reassembles a pointer from the words returned by Raw, validating
// them as New does.
func FromRaw[T store.Element, C cursor.Cursor](ptr, length uintptr) (Ptr[T, C], error) {
	if ptr == 0 {
		if length != 0 {
			return Ptr[T, C]{}, InvalidNullConstructionError{Bits: length >> headBits}
		}
		return None[T, C](), nil
	}
	align := store.Align[T]()
	return New[T, C](ptr&^(align-1), uint8(ptr&(align-1)), uint8(length&headMask), length>>headBits)
}

// Raw returns the pointer and length words.
func (p Ptr[T, C]) Raw() (ptr uintptr, length uintptr) {
	return p.ptr, p.len
}

// ElementPointer returns the address of the element holding the first live
// bit.
func (p Ptr[T, C]) ElementPointer() uintptr {
	return p.ptr &^ (store.Align[T]() - 1)
}

// BytePointer returns the address of the byte holding the first live bit.
func (p Ptr[T, C]) BytePointer() uintptr {
	return p.ptr
}

// HeadByte returns the byte offset of the head within its element.
func (p Ptr[T, C]) HeadByte() uint8 {
	return uint8(p.ptr & (store.Align[T]() - 1))
}

// HeadBit returns the bit offset of the head within its byte.
func (p Ptr[T, C]) HeadBit() uint8 {
	return uint8(p.len & headMask)
}

// Head returns the index of the first live bit within its element.
func (p Ptr[T, C]) Head() uint8 {
	return p.HeadByte()<<headBits | p.HeadBit()
}

// Len returns the number of live bits.
func (p Ptr[T, C]) Len() uintptr {
	return p.len >> headBits
}

// BitAddr returns the logical bit address of the first live bit.
func (p Ptr[T, C]) BitAddr() BitAddr {
	return BitAddr(p.ptr)<<headBits | BitAddr(p.HeadBit())
}

// Elements returns the number of elements holding at least one live bit.
func (p Ptr[T, C]) Elements() uintptr {
	n := p.Len()
	if n == 0 {
		return 0
	}
	w := uintptr(store.Bits[T]())
	return (uintptr(p.Head()) + n + w - 1) / w
}

// IsNull reports whether p is the null sentinel.
func (p Ptr[T, C]) IsNull() bool {
	return p.ptr == 0
}

// IsEmpty reports whether p is a non-null pointer with no live bits.
func (p Ptr[T, C]) IsEmpty() bool {
	return p.ptr != 0 && p.Len() == 0
}

// IsUninhabited reports whether p has no live bits, null or not.
func (p Ptr[T, C]) IsUninhabited() bool {
	return p.Len() == 0
}

// IsInhabited reports whether p has at least one live bit.
func (p Ptr[T, C]) IsInhabited() bool {
	return p.Len() > 0
}

// IsDangling reports whether p is the canonical empty pointer.
func (p Ptr[T, C]) IsDangling() bool {
	return p == Dangling[T, C]()
}

// Subrange returns the pointer to bits [start, end) of p.
func (p Ptr[T, C]) Subrange(start, end uintptr) (Ptr[T, C], error) {
	if start > end || end > p.Len() {
		return Ptr[T, C]{}, RangeError{Start: start, End: end, Len: p.Len()}
	}
	if p.IsUninhabited() {
		return p, nil
	}
	return FromBitAddr[T, C](p.BitAddr()+BitAddr(start), end-start)
}
