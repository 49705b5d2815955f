package testutils

import "github.com/wkalt/bitptr/store"

/*
General purpose test utilities.
*/

////////////////////////////////////////////////////////////////////////////////

// Span is a head index and a length, the two inputs that determine the shape
// of a span's domain.
type Span struct {
	Head uint8
	Len  uintptr
}

// Spans enumerates every head index of a width-bit element paired with every
// length from zero to maxLen inclusive.
func Spans(width uint8, maxLen uintptr) []Span {
	spans := make([]Span, 0, int(width)*int(maxLen+1))
	for h := uint8(0); h < width; h++ {
		for n := uintptr(0); n <= maxLen; n++ {
			spans = append(spans, Span{Head: h, Len: n})
		}
	}
	return spans
}

// Pattern returns n elements of deterministic, irregular bit content.
func Pattern[T store.Element](n int, seed uint64) []T {
	x := seed | 1
	out := make([]T, n)
	for i := range out {
		x ^= x << 13
		x ^= x >> 7
		x ^= x << 17
		out[i] = T(x)
	}
	return out
}
