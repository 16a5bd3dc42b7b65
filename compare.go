package segdeque

import "cmp"

/*****************************************************************************
 * COMPARISONS AND SEARCH
 *****************************************************************************/

// Equal reports whether a and b hold the same elements in the same order.
// It can't be a method because it needs T to be comparable. Either argument
// may be nil; nil equals nil and any empty deque.
func Equal[T comparable](a, b *Deque[T]) bool {
	if a.Len() != b.Len() {
		return false
	}
	if a.Len() == 0 {
		return true
	}
	i := 0
	for v := range b.Values() {
		if *a.ptr(i) != v {
			return false
		}
		i++
	}
	return true
}

// EqualFunc is Equal with a caller-supplied element predicate, for element
// types that are not comparable.
func (d *Deque[T]) EqualFunc(o *Deque[T], eq func(a, b T) bool) bool {
	if d.Len() != o.Len() {
		return false
	}
	if d.Len() == 0 {
		return true
	}
	i := 0
	for v := range o.Values() {
		if !eq(*d.ptr(i), v) {
			return false
		}
		i++
	}
	return true
}

// Compare orders a and b lexicographically: the first unequal element pair
// decides, and a prefix orders before anything it prefixes. It can't be a
// method because it needs T to be ordered.
func Compare[T cmp.Ordered](a, b *Deque[T]) int {
	n := min(a.Len(), b.Len())
	for i := 0; i < n; i++ {
		if c := cmp.Compare(*a.ptr(i), *b.ptr(i)); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.Len(), b.Len())
}

// CompareFunc is Compare with a caller-supplied element ordering.
func (d *Deque[T]) CompareFunc(o *Deque[T], compare func(a, b T) int) int {
	n := min(d.Len(), o.Len())
	for i := 0; i < n; i++ {
		if c := compare(*d.ptr(i), *o.ptr(i)); c != 0 {
			return c
		}
	}
	return cmp.Compare(d.Len(), o.Len())
}

// Index returns the position of the first element equal to v, or -1. It
// can't be a method because it needs T to be comparable.
func Index[T comparable](d *Deque[T], v T) int {
	for i, e := range d.All() {
		if e == v {
			return i
		}
	}
	return -1
}

// IndexFunc returns the position of the first element satisfying match, or
// -1.
func (d *Deque[T]) IndexFunc(match func(T) bool) int {
	for i, e := range d.All() {
		if match(e) {
			return i
		}
	}
	return -1
}

// Contains reports whether v occurs in d. It can't be a method because it
// needs T to be comparable.
func Contains[T comparable](d *Deque[T], v T) bool {
	return Index(d, v) >= 0
}

// ContainsFunc reports whether any element satisfies match.
func (d *Deque[T]) ContainsFunc(match func(T) bool) bool {
	return d.IndexFunc(match) >= 0
}
