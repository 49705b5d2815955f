package region

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/wkalt/bitptr/bitptr"
	"github.com/wkalt/bitptr/cursor"
	"github.com/wkalt/bitptr/store"
	"github.com/wkalt/bitptr/util"
	"github.com/wkalt/bitptr/util/log"
)

/*
Package region provides typed element storage that bit pointers can address.

A bit pointer is a pure value describing memory by address. A Region owns a
slice of elements, hands out pointers into it, and resolves those pointers back
to element reads and writes. Every operation validates that the pointer's live
bits lie inside the region before touching memory, and every write to a
partially live element is a masked read-modify-write, so bits outside the
span are never disturbed.

Regions are not safe for concurrent mutation. Two pointers may share an
element at their boundary; callers writing through such pointers from
different goroutines must synchronize.
*/

////////////////////////////////////////////////////////////////////////////////

// Region is a block of elements of type T addressed in cursor order C.
type Region[T store.Element, C cursor.Cursor] struct {
	name string
	buf  []T
	base uintptr
	all  bitptr.Ptr[T, C]
}

// New allocates a zeroed region of the given number of elements.
func New[T store.Element, C cursor.Cursor](ctx context.Context, elements int, opts ...Option) (*Region[T, C], error) {
	if elements < 0 {
		return nil, fmt.Errorf("invalid region size %d", elements)
	}
	return Wrap[T, C](ctx, make([]T, elements), opts...)
}

// Wrap constructs a region over an existing slice. The region and the caller
// share the slice's memory.
func Wrap[T store.Element, C cursor.Cursor](ctx context.Context, buf []T, opts ...Option) (*Region[T, C], error) {
	cfg := config{name: uuid.New().String()}
	for _, opt := range opts {
		opt(&cfg)
	}
	r := &Region[T, C]{
		name: cfg.name,
		buf:  buf,
		all:  bitptr.Dangling[T, C](),
	}
	if len(buf) > 0 {
		r.base = uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
		bits := uint64(len(buf)) * uint64(store.Bits[T]())
		if bits > uint64(bitptr.MaxBits) {
			return nil, bitptr.LengthOverflowError{Bits: bits, Max: uint64(bitptr.MaxBits)}
		}
		all, err := bitptr.New[T, C](r.base, 0, 0, uintptr(bits))
		if err != nil {
			return nil, fmt.Errorf("failed to address region: %w", err)
		}
		r.all = all
	}
	var c C
	ctx = log.AddTags(ctx, "region", r.name)
	log.Debugw(ctx, "region ready",
		"elements", len(buf),
		"element", store.Name[T](),
		"cursor", c.String(),
		"size", util.HumanBytes(uint64(len(buf))*uint64(store.Bytes[T]())),
		"base", fmt.Sprintf("%#x", r.base),
	)
	return r, nil
}

// Name returns the region's name.
func (r *Region[T, C]) Name() string {
	return r.name
}

// Len returns the number of elements in the region.
func (r *Region[T, C]) Len() int {
	return len(r.buf)
}

// Bits returns the number of bits in the region.
func (r *Region[T, C]) Bits() uintptr {
	return r.all.Len()
}

// Elements returns the region's backing slice.
func (r *Region[T, C]) Elements() []T {
	return r.buf
}

// Raw returns the region's memory as bytes, in native byte order.
func (r *Region[T, C]) Raw() []byte {
	if len(r.buf) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(r.buf))), uintptr(len(r.buf))*store.Bytes[T]())
}

// All returns a pointer to every bit in the region. An empty region yields
// the dangling pointer.
func (r *Region[T, C]) All() bitptr.Ptr[T, C] {
	return r.all
}

// Span returns a pointer to bits [start, end) of the region.
func (r *Region[T, C]) Span(start, end uintptr) (bitptr.Ptr[T, C], error) {
	return r.all.Subrange(start, end)
}

// Contains reports whether every live bit of p lies inside the region. Empty
// pointers touch no memory and are always contained; the null pointer is not.
func (r *Region[T, C]) Contains(p bitptr.Ptr[T, C]) bool {
	return r.check(p) == nil
}

func (r *Region[T, C]) end() uintptr {
	return r.base + uintptr(len(r.buf))*store.Bytes[T]()
}

func (r *Region[T, C]) check(p bitptr.Ptr[T, C]) error {
	if p.IsNull() {
		return ErrNullPointer
	}
	if p.IsEmpty() {
		return nil
	}
	start := uint64(p.BitAddr())
	if len(r.buf) == 0 || start < 8*uint64(r.base) || start+uint64(p.Len()) > 8*uint64(r.end()) {
		return errors.Wrapf(OutOfRegionError{Addr: p.BytePointer(), Base: r.base, End: r.end()}, "region %s", r.name)
	}
	return nil
}

// index returns the slice index of the element at addr.
func (r *Region[T, C]) index(addr uintptr) int {
	return int((addr - r.base) / store.Bytes[T]())
}

// locate returns the slice index and mask of bit i of p.
func (r *Region[T, C]) locate(p bitptr.Ptr[T, C], i uintptr) (int, T) {
	w := uint64(store.Bits[T]())
	rel := uint64(p.BitAddr()) + uint64(i) - 8*uint64(r.base)
	return int(rel / w), cursor.Mask[T, C](uint8(rel % w))
}

func (r *Region[T, C]) get(p bitptr.Ptr[T, C], i uintptr) bool {
	idx, mask := r.locate(p, i)
	return r.buf[idx]&mask != 0
}

func (r *Region[T, C]) set(p bitptr.Ptr[T, C], i uintptr, v bool) {
	idx, mask := r.locate(p, i)
	r.buf[idx] = r.buf[idx]&^mask | store.Fill[T](v)&mask
}

// merge writes the bits of v under e's mask into e's element.
func (r *Region[T, C]) merge(e bitptr.Partial[T], v T) {
	idx := r.index(e.Addr)
	r.buf[idx] = r.buf[idx]&^e.Mask | v&e.Mask
}

func (r *Region[T, C]) body(b bitptr.Body) []T {
	idx := r.index(b.Addr)
	return r.buf[idx : idx+int(b.Count)]
}
