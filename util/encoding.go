package util

/*
Encoding utilities for fixed-width words. The write and read functions do not
check lengths - it is necessary to ensure buffers are large enough, or a panic
may result. Words are little-endian regardless of the host byte order.
*/

import (
	"encoding/binary"
	"fmt"
	"io"
)

// U64 writes a uint64 to dst and returns the written length.
func U64(dst []byte, src uint64) int {
	binary.LittleEndian.PutUint64(dst, src)
	return 8
}

// ReadU64 reads a uint64 from src and stores it in x, returning the read length.
func ReadU64(src []byte, x *uint64) int {
	*x = binary.LittleEndian.Uint64(src)
	return 8
}

// EncodeU64 writes a uint64 to w.
func EncodeU64(w io.Writer, x uint64) error {
	buf := make([]byte, 8)
	U64(buf, x)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to encode uint64: %w", err)
	}
	return nil
}

// DecodeU64 reads a uint64 from r.
func DecodeU64(r io.Reader) (uint64, error) {
	var x uint64
	if err := binary.Read(r, binary.LittleEndian, &x); err != nil {
		return 0, fmt.Errorf("failed to decode uint64: %w", err)
	}
	return x, nil
}
