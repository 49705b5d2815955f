package bitptr

import (
	"fmt"
	"io"

	"github.com/wkalt/bitptr/util"
)

/*
Binary form of a pointer: the pointer word followed by the length word, each
a little-endian uint64. Field placement within the words is the in-memory
layout, so two builds for the same pointer width exchange values losslessly.
Decoding validates the words exactly as construction does.
*/

////////////////////////////////////////////////////////////////////////////////

// EncodedSize is the length of a pointer's binary form.
const EncodedSize = 16

// MarshalBinary encodes p.
func (p Ptr[T, C]) MarshalBinary() ([]byte, error) {
	buf := make([]byte, EncodedSize)
	n := util.U64(buf, uint64(p.ptr))
	util.U64(buf[n:], uint64(p.len))
	return buf, nil
}

// UnmarshalBinary decodes a pointer encoded by MarshalBinary.
func (p *Ptr[T, C]) UnmarshalBinary(data []byte) error {
	if len(data) != EncodedSize {
		return fmt.Errorf("invalid pointer encoding: expected %d bytes, got %d", EncodedSize, len(data))
	}
	var ptr, length uint64
	n := util.ReadU64(data, &ptr)
	util.ReadU64(data[n:], &length)
	return p.setWords(ptr, length)
}

// WriteTo writes the binary form of p to w. On failure the count includes
// any bytes of a word w accepted before failing.
func (p Ptr[T, C]) WriteTo(w io.Writer) (int64, error) {
	cw := util.NewCountingWriter(w)
	if err := util.EncodeU64(cw, uint64(p.ptr)); err != nil {
		return cw.Count(), err
	}
	if err := util.EncodeU64(cw, uint64(p.len)); err != nil {
		return cw.Count(), err
	}
	return cw.Count(), nil
}

// ReadFrom reads the binary form of a pointer from r.
func (p *Ptr[T, C]) ReadFrom(r io.Reader) (int64, error) {
	ptr, err := util.DecodeU64(r)
	if err != nil {
		return 0, err
	}
	length, err := util.DecodeU64(r)
	if err != nil {
		return 8, err
	}
	return EncodedSize, p.setWords(ptr, length)
}

func (p *Ptr[T, C]) setWords(ptr, length uint64) error {
	if ptr > uint64(^uintptr(0)) || length > uint64(^uintptr(0)) {
		return fmt.Errorf("invalid pointer encoding: words %#x, %#x exceed the platform word", ptr, length)
	}
	q, err := FromRaw[T, C](uintptr(ptr), uintptr(length))
	if err != nil {
		return fmt.Errorf("invalid pointer encoding: %w", err)
	}
	*p = q
	return nil
}
