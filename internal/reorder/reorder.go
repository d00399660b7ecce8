// Package reorder implements index moves over ordered sequences.
package reorder

import "fmt"

// MoveItem returns a new slice with the element at from removed and
// reinserted at to, where to is an index into the post-removal sequence.
// The input is never modified. Indices outside [0, len(seq)) panic: callers
// derive them from the same sequence, so a bad index is a programming error.
func MoveItem[T any](seq []T, from, to int) []T {
	if !InRange(len(seq), from, to) {
		panic(fmt.Sprintf("reorder: move %d -> %d out of range for length %d", from, to, len(seq)))
	}

	out := make([]T, 0, len(seq))
	item := seq[from]
	out = append(out, seq[:from]...)
	out = append(out, seq[from+1:]...)

	out = append(out, item)
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = item
	return out
}

// InRange reports whether a move between from and to is valid for length n.
func InRange(n, from, to int) bool {
	return from >= 0 && from < n && to >= 0 && to < n
}
