package bitptr_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wkalt/bitptr/bitptr"
	"github.com/wkalt/bitptr/cursor"
	"github.com/wkalt/bitptr/store"
)

func TestNew(t *testing.T) {
	p, err := bitptr.New[uint16, cursor.Lsb0](0x1000, 1, 3, 20)
	require.NoError(t, err)

	assert.Equal(t, uintptr(0x1000), p.ElementPointer())
	assert.Equal(t, uintptr(0x1001), p.BytePointer())
	assert.Equal(t, uint8(1), p.HeadByte())
	assert.Equal(t, uint8(3), p.HeadBit())
	assert.Equal(t, uint8(11), p.Head())
	assert.Equal(t, uintptr(20), p.Len())
	assert.Equal(t, bitptr.BitAddr(8*0x1001+3), p.BitAddr())
	assert.Equal(t, uintptr(2), p.Elements())

	ptr, length := p.Raw()
	assert.Equal(t, uintptr(0x1001), ptr)
	assert.Equal(t, uintptr(20<<3|3), length)

	assert.False(t, p.IsNull())
	assert.False(t, p.IsEmpty())
	assert.False(t, p.IsUninhabited())
	assert.True(t, p.IsInhabited())
	assert.False(t, p.IsDangling())
}

func TestNewErrors(t *testing.T) {
	cases := []struct {
		assertion string
		construct func() error
		expected  error
	}{
		{
			"null address with bits",
			construct[uint8](0, 0, 0, 8),
			bitptr.InvalidNullConstructionError{},
		},
		{
			"null address without bits",
			construct[uint32](0, 0, 0, 0),
			bitptr.InvalidNullConstructionError{},
		},
		{
			"head byte past u8 alignment",
			construct[uint8](0x1000, 1, 0, 8),
			bitptr.HeadOverflowError{},
		},
		{
			"head byte past u16 alignment",
			construct[uint16](0x1000, 2, 0, 8),
			bitptr.HeadOverflowError{},
		},
		{
			"head bit past byte",
			construct[uint64](0x1000, 0, 8, 8),
			bitptr.HeadOverflowError{},
		},
		{
			"length past field",
			construct[uint8](0x1000, 0, 0, bitptr.MaxBits+1),
			bitptr.LengthOverflowError{},
		},
		{
			"span past end of address space",
			construct[uint8](^uintptr(0)>>3, 0, 0, bitptr.MaxBits),
			bitptr.LengthOverflowError{},
		},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			require.ErrorIs(t, c.construct(), c.expected)
		})
	}
}

func construct[T store.Element](addr uintptr, headByte, headBit uint8, bits uintptr) func() error {
	return func() error {
		_, err := bitptr.New[T, cursor.Lsb0](addr, headByte, headBit, bits)
		return err
	}
}

func TestMisaligned(t *testing.T) {
	checkMisaligned[uint16](t)
	checkMisaligned[uint32](t)
	checkMisaligned[uint64](t)

	t.Run("every byte address is aligned for u8", func(t *testing.T) {
		for addr := uintptr(0x1000); addr < 0x1010; addr++ {
			_, err := bitptr.New[uint8, cursor.Msb0](addr, 0, 0, 1)
			require.NoError(t, err)
		}
	})
}

func checkMisaligned[T store.Element](t *testing.T) {
	t.Helper()
	align := store.Align[T]()
	t.Run(store.Name[T](), func(t *testing.T) {
		for addr := uintptr(0x1000); addr < 0x1000+4*align; addr++ {
			_, err := bitptr.New[T, cursor.Msb0](addr, 0, 0, 1)
			if addr%align == 0 {
				require.NoError(t, err, "%#x", addr)
				continue
			}
			require.ErrorIs(t, err, bitptr.MisalignedError{}, "%#x", addr)
			require.Equal(t, bitptr.MisalignedError{Addr: addr, Align: align}, err)
		}
	})
}

func TestNullAndEmpty(t *testing.T) {
	t.Run("none is the all-zero value", func(t *testing.T) {
		p := bitptr.None[uint32, cursor.Lsb0]()
		ptr, length := p.Raw()
		require.Zero(t, ptr)
		require.Zero(t, length)
		require.True(t, p.IsNull())
		require.False(t, p.IsEmpty())
		require.True(t, p.IsUninhabited())
		require.False(t, p.IsInhabited())
		require.Equal(t, bitptr.Ptr[uint32, cursor.Lsb0]{}, p)
	})
	t.Run("zero-length construction is empty, not null", func(t *testing.T) {
		for addr := uintptr(8); addr < 0x100; addr += 8 {
			for head := uint8(0); head < 8; head++ {
				p, err := bitptr.New[uint64, cursor.Msb0](addr, head, head, 0)
				require.NoError(t, err)
				ptr, length := p.Raw()
				require.NotZero(t, ptr)
				require.Equal(t, uintptr(head), length)
				require.True(t, p.IsEmpty())
				require.True(t, p.IsUninhabited())
				require.False(t, p.IsNull())
			}
		}
	})
	t.Run("dangling", func(t *testing.T) {
		p := bitptr.Dangling[uint32, cursor.Lsb0]()
		require.True(t, p.IsDangling())
		require.True(t, p.IsEmpty())
		require.Equal(t, uintptr(4), p.ElementPointer())
		require.Zero(t, p.Head())
	})
	t.Run("empty at zero is dangling", func(t *testing.T) {
		p := bitptr.EmptyAt[uint16, cursor.Lsb0](0)
		require.True(t, p.IsDangling())
		require.False(t, p.IsNull())
	})
	t.Run("empty at an unaligned address keeps the byte", func(t *testing.T) {
		p := bitptr.EmptyAt[uint32, cursor.Msb0](0x1003)
		require.True(t, p.IsEmpty())
		require.False(t, p.IsDangling())
		require.Equal(t, uintptr(0x1000), p.ElementPointer())
		require.Equal(t, uint8(3), p.HeadByte())
		require.Equal(t, bitptr.BitAddr(8*0x1003), p.BitAddr())
		require.Zero(t, p.Elements())
	})
}

func TestEmptyAtEdgeAddresses(t *testing.T) {
	t.Run("below alignment", func(t *testing.T) {
		checkEmptyBelowAlign[uint16, cursor.Lsb0](t)
		checkEmptyBelowAlign[uint32, cursor.Msb0](t)
		checkEmptyBelowAlign[uint64, cursor.Lsb0](t)
	})
	t.Run("past the last addressable byte", func(t *testing.T) {
		if ^uintptr(0)>>32 == 0 {
			t.Skip("every 32-bit address is addressable")
		}
		p := bitptr.EmptyAt[uint8, cursor.Lsb0](^uintptr(0) >> 2)
		require.True(t, p.IsDangling())
		require.Equal(t, bitptr.BitAddr(8), p.BitAddr())
		q, err := p.Subrange(0, 0)
		require.NoError(t, err)
		require.Equal(t, p, q)
	})
	t.Run("inhabited span in the zero element", func(t *testing.T) {
		p, err := bitptr.New[uint16, cursor.Lsb0](0, 1, 3, 8)
		require.NoError(t, err)
		require.False(t, p.IsNull())
		require.Equal(t, uintptr(1), p.BytePointer())
		d := p.Domain()
		require.Equal(t, bitptr.Spanning, d.Kind)
		require.True(t, d.HasHead())
		require.True(t, d.HasTail())
		require.Equal(t, uintptr(8), d.Bits())
	})
}

func checkEmptyBelowAlign[T store.Element, C cursor.Cursor](t *testing.T) {
	t.Helper()
	for addr := uintptr(1); addr < store.Align[T](); addr++ {
		p := bitptr.EmptyAt[T, C](addr)
		require.True(t, p.IsEmpty())
		require.False(t, p.IsDangling())
		require.Equal(t, addr, p.BytePointer())
		require.Equal(t, bitptr.BitAddr(8*addr), p.BitAddr())

		q, err := p.Subrange(0, 0)
		require.NoError(t, err, "%#x", addr)
		require.Equal(t, p, q)

		r, err := bitptr.FromRaw[T, C](p.Raw())
		require.NoError(t, err, "%#x", addr)
		require.Equal(t, p, r)

		data, err := p.MarshalBinary()
		require.NoError(t, err)
		var decoded bitptr.Ptr[T, C]
		require.NoError(t, decoded.UnmarshalBinary(data), "%#x", addr)
		require.Equal(t, p, decoded)

		_, err = bitptr.New[T, C](0, uint8(addr), 0, 0)
		require.NoError(t, err, "%#x", addr)
	}
}

func TestBitAddrRoundTrip(t *testing.T) {
	checkRoundTrip[uint8, cursor.Lsb0](t)
	checkRoundTrip[uint16, cursor.Msb0](t)
	checkRoundTrip[uint32, cursor.Lsb0](t)
	checkRoundTrip[uint64, cursor.Msb0](t)
}

func checkRoundTrip[T store.Element, C cursor.Cursor](t *testing.T) {
	t.Helper()
	align := store.Align[T]()
	t.Run(store.Name[T](), func(t *testing.T) {
		for _, addr := range []uintptr{align, 0x1000, 0x7ff0, 1 << 20} {
			for headByte := uint8(0); uintptr(headByte) < align; headByte++ {
				for headBit := uint8(0); headBit < 8; headBit++ {
					for _, bits := range []uintptr{0, 1, 7, 8, 63, 64, 65, 1000} {
						p, err := bitptr.New[T, C](addr, headByte, headBit, bits)
						require.NoError(t, err)
						expected := bitptr.BitAddr(8*(uint64(addr)+uint64(headByte)) + uint64(headBit))
						require.Equal(t, expected, p.BitAddr())

						q, err := bitptr.FromBitAddr[T, C](p.BitAddr(), bits)
						require.NoError(t, err)
						require.Equal(t, p, q)

						r, err := bitptr.FromRaw[T, C](p.Raw())
						require.NoError(t, err)
						require.Equal(t, p, r)
					}
				}
			}
		}
	})
}

func TestFromRaw(t *testing.T) {
	p, err := bitptr.FromRaw[uint16, cursor.Lsb0](0, 0)
	require.NoError(t, err)
	require.True(t, p.IsNull())

	_, err = bitptr.FromRaw[uint16, cursor.Lsb0](0, 8<<3)
	require.ErrorIs(t, err, bitptr.InvalidNullConstructionError{})

	_, err = bitptr.FromRaw[uint16, cursor.Lsb0](0, 5)
	require.ErrorIs(t, err, bitptr.InvalidNullConstructionError{})
}

func TestFromBitAddr(t *testing.T) {
	_, err := bitptr.FromBitAddr[uint8, cursor.Lsb0](7, 1)
	require.ErrorIs(t, err, bitptr.InvalidNullConstructionError{})

	p, err := bitptr.FromBitAddr[uint64, cursor.Lsb0](8*0x100d+6, 3)
	require.NoError(t, err)
	require.Equal(t, uintptr(0x1008), p.ElementPointer())
	require.Equal(t, uint8(5), p.HeadByte())
	require.Equal(t, uint8(6), p.HeadBit())
	require.Equal(t, uint8(46), p.Head())
}

func TestSubrange(t *testing.T) {
	base, err := bitptr.New[uint16, cursor.Lsb0](0x1000, 1, 6, 40)
	require.NoError(t, err)

	t.Run("crosses into the next element", func(t *testing.T) {
		p, err := base.Subrange(3, 10)
		require.NoError(t, err)
		require.Equal(t, uintptr(0x1002), p.ElementPointer())
		require.Equal(t, uint8(0), p.HeadByte())
		require.Equal(t, uint8(1), p.HeadBit())
		require.Equal(t, uintptr(7), p.Len())
		require.Equal(t, base.BitAddr()+3, p.BitAddr())
	})
	t.Run("whole span is identity", func(t *testing.T) {
		p, err := base.Subrange(0, base.Len())
		require.NoError(t, err)
		require.Equal(t, base, p)
	})
	t.Run("shrinking to zero keeps the position", func(t *testing.T) {
		p, err := base.Subrange(7, 7)
		require.NoError(t, err)
		require.True(t, p.IsEmpty())
		require.Equal(t, base.BitAddr()+7, p.BitAddr())
	})
	t.Run("start after end", func(t *testing.T) {
		_, err := base.Subrange(5, 4)
		require.ErrorIs(t, err, bitptr.RangeError{})
	})
	t.Run("end past length", func(t *testing.T) {
		_, err := base.Subrange(0, 41)
		require.Equal(t, bitptr.RangeError{Start: 0, End: 41, Len: 40}, err)
	})
	t.Run("null", func(t *testing.T) {
		null := bitptr.None[uint16, cursor.Lsb0]()
		p, err := null.Subrange(0, 0)
		require.NoError(t, err)
		require.True(t, p.IsNull())
		_, err = null.Subrange(0, 1)
		require.ErrorIs(t, err, bitptr.RangeError{})
	})
}

func TestSubrangeAssociativity(t *testing.T) {
	checkAssociativity[uint8, cursor.Msb0](t, 0x1000, 0, 3, 24)
	checkAssociativity[uint16, cursor.Lsb0](t, 0x1002, 1, 7, 40)
	checkAssociativity[uint32, cursor.Msb0](t, 0x1004, 3, 5, 70)
	checkAssociativity[uint64, cursor.Lsb0](t, 0x1008, 7, 1, 140)
}

func checkAssociativity[T store.Element, C cursor.Cursor](
	t *testing.T,
	addr uintptr,
	headByte, headBit uint8,
	bits uintptr,
) {
	t.Helper()
	p, err := bitptr.New[T, C](addr, headByte, headBit, bits)
	require.NoError(t, err)
	step := bits/12 + 1
	t.Run(fmt.Sprintf("%s/%d", store.Name[T](), bits), func(t *testing.T) {
		for a := uintptr(0); a <= bits; a += step {
			for b := a; b <= bits; b += step {
				for c := b; c <= bits; c += step {
					for d := c; d <= bits; d += step {
						outer, err := p.Subrange(a, d)
						require.NoError(t, err)
						nested, err := outer.Subrange(b-a, c-a)
						require.NoError(t, err)
						direct, err := p.Subrange(b, c)
						require.NoError(t, err)
						require.Equal(t, direct, nested, "a=%d b=%d c=%d d=%d", a, b, c, d)
					}
				}
			}
		}
	})
}
