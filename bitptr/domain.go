package bitptr

import (
	"fmt"

	"github.com/wkalt/bitptr/cursor"
	"github.com/wkalt/bitptr/store"
)

/*
Domain resolution splits a span into the elements it touches. Partially
covered elements come with a mask of the live bits; fully covered elements are
grouped into a contiguous body. Writers must treat partial elements as masked
read-modify-write targets, since another pointer may own the remaining bits.
Body elements belong to the span alone and may be stored whole.
*/

////////////////////////////////////////////////////////////////////////////////

// Kind classifies a span.
type Kind uint8

const (
	// Empty spans have no live bits.
	Empty Kind = iota
	// Minor spans fit within a single element.
	Minor
	// Spanning spans cross at least one element boundary.
	Spanning
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Minor:
		return "minor"
	case Spanning:
		return "spanning"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Partial is an element of which only the bits under Mask are live.
type Partial[T store.Element] struct {
	Addr uintptr
	Mask T
}

// Body is a run of fully live elements.
type Body struct {
	Addr  uintptr
	Count uintptr
}

// Domain is the element decomposition of a span. For a Minor span the single
// element is reported as Head. Absent parts are zero; a present partial
// element always has a nonzero mask.
type Domain[T store.Element] struct {
	Kind Kind
	Head Partial[T]
	Body Body
	Tail Partial[T]
}

// HasHead reports whether the domain has a partial head element.
func (d Domain[T]) HasHead() bool {
	return d.Head.Mask != 0
}

// HasBody reports whether the domain has at least one full element.
func (d Domain[T]) HasBody() bool {
	return d.Body.Count != 0
}

// HasTail reports whether the domain has a partial tail element.
func (d Domain[T]) HasTail() bool {
	return d.Tail.Mask != 0
}

// Bits returns the number of live bits covered by the domain.
func (d Domain[T]) Bits() uintptr {
	w := uintptr(store.Bits[T]())
	return uintptr(store.CountOnes(d.Head.Mask)) + w*d.Body.Count + uintptr(store.CountOnes(d.Tail.Mask))
}

// Domain resolves the span of p.
func (p Ptr[T, C]) Domain() Domain[T] {
	n := p.Len()
	if n == 0 {
		return Domain[T]{Kind: Empty}
	}
	w := uintptr(store.Bits[T]())
	size := store.Bytes[T]()
	h := uintptr(p.Head())
	addr := p.ElementPointer()
	if h+n <= w {
		return Domain[T]{
			Kind: Minor,
			Head: Partial[T]{Addr: addr, Mask: cursor.RangeMask[T, C](uint8(h), uint8(h+n))},
		}
	}

	d := Domain[T]{Kind: Spanning}
	rest := n
	if h != 0 {
		d.Head = Partial[T]{Addr: addr, Mask: cursor.RangeMask[T, C](uint8(h), uint8(w))}
		rest -= w - h
		addr += size
	}
	d.Body = Body{Addr: addr, Count: rest / w}
	addr += d.Body.Count * size
	if tail := rest % w; tail != 0 {
		d.Tail = Partial[T]{Addr: addr, Mask: cursor.RangeMask[T, C](0, uint8(tail))}
	}
	return d
}
