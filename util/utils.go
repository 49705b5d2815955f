package util

import (
	"cmp"
	"slices"
	"strconv"

	"golang.org/x/exp/maps"
)

/*
Utility functions.
*/

////////////////////////////////////////////////////////////////////////////////

// Okeys returns the keys of a map in sorted order.
func Okeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// HumanBytes returns a human-readable representation of a number of bytes.
func HumanBytes(n uint64) string {
	suffix := []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}
	i := 0
	for n >= 1024 && i < len(suffix)-1 {
		n /= 1024
		i++
	}
	return strconv.FormatUint(n, 10) + " " + suffix[i]
}

// When returns a if cond is true, otherwise b.
func When[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}
