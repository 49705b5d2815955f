package region

import (
	"slices"

	"github.com/wkalt/bitptr/bitptr"
	"github.com/wkalt/bitptr/store"
	"github.com/wkalt/bitptr/util/bitset"
)

/*
Span operations. Operations that walk whole spans resolve the pointer's domain
and work element-at-a-time: partial elements through their masks, body
elements as whole stores. Transfers between spans whose heads are at different
element indices fall back to bit-at-a-time.
*/

////////////////////////////////////////////////////////////////////////////////

// Get returns bit i of the span p.
func (r *Region[T, C]) Get(p bitptr.Ptr[T, C], i uintptr) (bool, error) {
	if err := r.checkIndex(p, i); err != nil {
		return false, err
	}
	return r.get(p, i), nil
}

// Set writes bit i of the span p. Other bits of the containing element are
// preserved.
func (r *Region[T, C]) Set(p bitptr.Ptr[T, C], i uintptr, v bool) error {
	if err := r.checkIndex(p, i); err != nil {
		return err
	}
	r.set(p, i, v)
	return nil
}

func (r *Region[T, C]) checkIndex(p bitptr.Ptr[T, C], i uintptr) error {
	if err := r.check(p); err != nil {
		return err
	}
	if i >= p.Len() {
		return bitptr.RangeError{Start: i, End: i + 1, Len: p.Len()}
	}
	return nil
}

// Fill sets every live bit of p to v.
func (r *Region[T, C]) Fill(p bitptr.Ptr[T, C], v bool) error {
	if err := r.check(p); err != nil {
		return err
	}
	fill := store.Fill[T](v)
	d := p.Domain()
	if d.HasHead() {
		r.merge(d.Head, fill)
	}
	if d.HasBody() {
		body := r.body(d.Body)
		for i := range body {
			body[i] = fill
		}
	}
	if d.HasTail() {
		r.merge(d.Tail, fill)
	}
	return nil
}

// CountOnes returns the number of set bits in p.
func (r *Region[T, C]) CountOnes(p bitptr.Ptr[T, C]) (uintptr, error) {
	if err := r.check(p); err != nil {
		return 0, err
	}
	d := p.Domain()
	var n int
	if d.HasHead() {
		n += store.CountOnes(r.buf[r.index(d.Head.Addr)] & d.Head.Mask)
	}
	if d.HasBody() {
		for _, x := range r.body(d.Body) {
			n += store.CountOnes(x)
		}
	}
	if d.HasTail() {
		n += store.CountOnes(r.buf[r.index(d.Tail.Addr)] & d.Tail.Mask)
	}
	return uintptr(n), nil
}

// CountZeros returns the number of clear bits in p.
func (r *Region[T, C]) CountZeros(p bitptr.Ptr[T, C]) (uintptr, error) {
	ones, err := r.CountOnes(p)
	if err != nil {
		return 0, err
	}
	return p.Len() - ones, nil
}

// Equal reports whether the spans a and b hold the same bit sequence.
func (r *Region[T, C]) Equal(a, b bitptr.Ptr[T, C]) (bool, error) {
	if err := r.check(a); err != nil {
		return false, err
	}
	if err := r.check(b); err != nil {
		return false, err
	}
	if a.Len() != b.Len() {
		return false, nil
	}
	if a.Head() != b.Head() {
		for i := uintptr(0); i < a.Len(); i++ {
			if r.get(a, i) != r.get(b, i) {
				return false, nil
			}
		}
		return true, nil
	}
	da, db := a.Domain(), b.Domain()
	partialEqual := func(x, y bitptr.Partial[T]) bool {
		return r.buf[r.index(x.Addr)]&x.Mask == r.buf[r.index(y.Addr)]&y.Mask
	}
	if da.HasHead() && !partialEqual(da.Head, db.Head) {
		return false, nil
	}
	if da.HasBody() && !slices.Equal(r.body(da.Body), r.body(db.Body)) {
		return false, nil
	}
	if da.HasTail() && !partialEqual(da.Tail, db.Tail) {
		return false, nil
	}
	return true, nil
}

// Copy copies the bits of src into dst. The spans must have equal length and
// may overlap.
func (r *Region[T, C]) Copy(dst, src bitptr.Ptr[T, C]) error {
	if err := r.check(dst); err != nil {
		return err
	}
	if err := r.check(src); err != nil {
		return err
	}
	if dst.Len() != src.Len() {
		return LengthMismatchError{Dst: dst.Len(), Src: src.Len()}
	}
	n := dst.Len()
	if n == 0 {
		return nil
	}
	forward := dst.BitAddr() <= src.BitAddr()
	if dst.Head() != src.Head() {
		if forward {
			for i := uintptr(0); i < n; i++ {
				r.set(dst, i, r.get(src, i))
			}
		} else {
			for i := n; i > 0; i-- {
				r.set(dst, i-1, r.get(src, i-1))
			}
		}
		return nil
	}

	dd, sd := dst.Domain(), src.Domain()
	head := func() {
		if dd.HasHead() {
			r.merge(dd.Head, r.buf[r.index(sd.Head.Addr)])
		}
	}
	body := func() {
		if dd.HasBody() {
			copy(r.body(dd.Body), r.body(sd.Body))
		}
	}
	tail := func() {
		if dd.HasTail() {
			r.merge(dd.Tail, r.buf[r.index(sd.Tail.Addr)])
		}
	}
	if forward {
		head()
		body()
		tail()
	} else {
		tail()
		body()
		head()
	}
	return nil
}

// Export returns the bits of p as a bitset, bit i of the span at index i.
func (r *Region[T, C]) Export(p bitptr.Ptr[T, C]) (bitset.Bitset, error) {
	if err := r.check(p); err != nil {
		return nil, err
	}
	bs := bitset.New(int(p.Len()))
	for i := uintptr(0); i < p.Len(); i++ {
		if r.get(p, i) {
			bs.SetBit(int(i))
		}
	}
	return bs, nil
}

// Import writes the first p.Len() bits of bs into p.
func (r *Region[T, C]) Import(p bitptr.Ptr[T, C], bs bitset.Bitset) error {
	if err := r.check(p); err != nil {
		return err
	}
	if uintptr(bs.Bits()) < p.Len() {
		return LengthMismatchError{Dst: p.Len(), Src: uintptr(bs.Bits())}
	}
	for i := uintptr(0); i < p.Len(); i++ {
		r.set(p, i, bs.HasBit(int(i)))
	}
	return nil
}
